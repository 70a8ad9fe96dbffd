package enums

import (
	"fmt"
	"strings"
)

// MembershipType names the membership tiers sold by the museum.
type MembershipType string

const (
	MembershipTypeIndividual MembershipType = "individual"
	MembershipTypeDual       MembershipType = "dual"
	MembershipTypeFamily     MembershipType = "family"
	MembershipTypePatron     MembershipType = "patron"
)

var validMembershipTypes = []MembershipType{
	MembershipTypeIndividual,
	MembershipTypeDual,
	MembershipTypeFamily,
	MembershipTypePatron,
}

// String implements fmt.Stringer.
func (m MembershipType) String() string {
	return string(m)
}

// IsValid reports whether the value matches a known MembershipType.
func (m MembershipType) IsValid() bool {
	for _, candidate := range validMembershipTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMembershipType converts raw input into a MembershipType.
// Matching is case-insensitive because membership rows arrive from
// legacy data with mixed casing.
func ParseMembershipType(value string) (MembershipType, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validMembershipTypes {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid membership type %q", value)
}
