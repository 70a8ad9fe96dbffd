package enums

import "fmt"

// LineKind distinguishes the two purchasable cart line types.
type LineKind string

const (
	LineKindGiftItem LineKind = "gift_item"
	LineKindTicket   LineKind = "ticket"
)

var validLineKinds = []LineKind{
	LineKindGiftItem,
	LineKindTicket,
}

// String implements fmt.Stringer.
func (k LineKind) String() string {
	return string(k)
}

// IsValid reports whether the value matches a known LineKind.
func (k LineKind) IsValid() bool {
	for _, candidate := range validLineKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseLineKind converts raw input into a LineKind.
func ParseLineKind(value string) (LineKind, error) {
	for _, candidate := range validLineKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid line kind %q", value)
}
