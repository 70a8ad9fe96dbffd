package membership

import (
	"time"

	"github.com/lakeshoremuseum/museum-backend/pkg/enums"
	"github.com/lakeshoremuseum/museum-backend/pkg/types"
)

// Record is the normalized transport shape for one membership row. The
// boolean-ish legacy encodings (true, 1, "1") are normalized by FlexBool at
// the boundary, so everything past this struct sees canonical booleans.
type Record struct {
	MembershipType     string         `json:"membership_type"`
	IsActive           types.FlexBool `json:"is_active"`
	DiscountPercentage int            `json:"discount_percentage"`
	ExpirationDate     *time.Time     `json:"expiration_date"`
	UnlimitedVisits    types.FlexBool `json:"unlimited_visits"`
}

// Resolved is the eligibility decision derived from a membership record.
type Resolved struct {
	Active             bool
	DiscountPercentage int
	TicketQuota        int
	UnlimitedVisits    bool
}

// Resolve determines membership standing as of today. A nil record (guest,
// or no membership on file) resolves to inactive with zero discount and
// zero quota.
//
// The expiration comparison is date-only: a membership expiring today is
// still active for the whole day regardless of wall-clock time.
func Resolve(record *Record, today time.Time) Resolved {
	if record == nil {
		return Resolved{}
	}

	active := record.IsActive.Bool()
	if active && record.ExpirationDate != nil {
		active = !dateOnly(*record.ExpirationDate).Before(dateOnly(today))
	}
	if !active {
		return Resolved{}
	}

	membershipType, err := enums.ParseMembershipType(record.MembershipType)
	if err != nil {
		// Unrecognized tiers stay active but earn no ticket quota.
		return Resolved{
			Active:             true,
			DiscountPercentage: clampPercentage(record.DiscountPercentage),
			UnlimitedVisits:    record.UnlimitedVisits.Bool(),
		}
	}

	return Resolved{
		Active:             true,
		DiscountPercentage: clampPercentage(record.DiscountPercentage),
		TicketQuota:        policyFor(membershipType).TicketQuota,
		UnlimitedVisits:    record.UnlimitedVisits.Bool(),
	}
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func clampPercentage(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
