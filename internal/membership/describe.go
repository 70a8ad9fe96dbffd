package membership

import (
	"fmt"

	"github.com/lakeshoremuseum/museum-backend/pkg/enums"
)

// tierPolicy is the fixed per-tier purchasing policy. The quota and its
// adult/child breakdown live in one table so the number the gate enforces
// and the description shown to members can never drift apart.
type tierPolicy struct {
	TicketQuota int
	Adults      int
	Children    int
}

var policyByType = map[enums.MembershipType]tierPolicy{
	enums.MembershipTypeIndividual: {TicketQuota: 1, Adults: 1},
	enums.MembershipTypeDual:       {TicketQuota: 2, Adults: 2},
	enums.MembershipTypeFamily:     {TicketQuota: 6, Adults: 2, Children: 4},
	enums.MembershipTypePatron:     {TicketQuota: 10, Adults: 4, Children: 6},
}

func policyFor(t enums.MembershipType) tierPolicy {
	return policyByType[t]
}

// QuotaFor returns the member-ticket quota for a tier; unknown tiers get 0.
func QuotaFor(membershipType string) int {
	parsed, err := enums.ParseMembershipType(membershipType)
	if err != nil {
		return 0
	}
	return policyFor(parsed).TicketQuota
}

// Describe renders the human-readable purchasing summary for a tier,
// driven by the same policy table the resolver uses.
func Describe(membershipType string) string {
	parsed, err := enums.ParseMembershipType(membershipType)
	if err != nil {
		return "this membership does not include member tickets"
	}

	policy := policyFor(parsed)
	switch {
	case policy.TicketQuota == 0:
		return "this membership does not include member tickets"
	case policy.TicketQuota == 1:
		return "you can purchase 1 member ticket"
	case policy.Children > 0:
		return fmt.Sprintf("you can purchase %d member tickets (%d adults and %d children)",
			policy.TicketQuota, policy.Adults, policy.Children)
	default:
		return fmt.Sprintf("you can purchase %d member tickets (%d adults)",
			policy.TicketQuota, policy.Adults)
	}
}
