package checkout

import "time"

// VisitDateLayout is the wire format for visit dates.
const VisitDateLayout = "2006-01-02"

// ClosingHour returns the hour (24h clock, local time) at which ticket
// sales for that day stop. The museum stays open late Friday and Saturday.
func ClosingHour(day time.Weekday) int {
	switch day {
	case time.Friday, time.Saturday:
		return 20
	default:
		return 17
	}
}

// SalesClosedForToday reports whether a same-day visit can no longer be
// booked because the museum has already closed. Future visit dates are
// always bookable.
func SalesClosedForToday(now time.Time, visitDate string) bool {
	parsed, err := time.ParseInLocation(VisitDateLayout, visitDate, now.Location())
	if err != nil {
		return false
	}
	if parsed.Year() != now.Year() || parsed.YearDay() != now.YearDay() {
		return false
	}
	return now.Hour() >= ClosingHour(now.Weekday())
}
