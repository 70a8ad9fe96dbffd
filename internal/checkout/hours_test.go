package checkout

import (
	"testing"
	"time"
)

func TestClosingHour(t *testing.T) {
	t.Parallel()

	cases := map[time.Weekday]int{
		time.Sunday:    17,
		time.Monday:    17,
		time.Tuesday:   17,
		time.Wednesday: 17,
		time.Thursday:  17,
		time.Friday:    20,
		time.Saturday:  20,
	}
	for day, want := range cases {
		if got := ClosingHour(day); got != want {
			t.Fatalf("ClosingHour(%s) = %d, want %d", day, got, want)
		}
	}
}

func TestSalesClosedForToday(t *testing.T) {
	t.Parallel()

	// 2026-03-12 is a Thursday.
	thursdayEvening := time.Date(2026, time.March, 12, 18, 0, 0, 0, time.UTC)

	if !SalesClosedForToday(thursdayEvening, "2026-03-12") {
		t.Fatal("expected same-day sales to be closed after 17:00 on a Thursday")
	}
	if SalesClosedForToday(thursdayEvening, "2026-03-13") {
		t.Fatal("future visit dates are always bookable")
	}
	if SalesClosedForToday(thursdayEvening, "not-a-date") {
		t.Fatal("unparseable dates are handled by the date rule, not the clock rule")
	}
}
