package enums

import "fmt"

// CheckoutMode selects which transaction flow an order goes through.
type CheckoutMode string

const (
	CheckoutModeGiftShop   CheckoutMode = "gift_shop"
	CheckoutModeCombined   CheckoutMode = "combined"
	CheckoutModeMembership CheckoutMode = "membership"
)

var validCheckoutModes = []CheckoutMode{
	CheckoutModeGiftShop,
	CheckoutModeCombined,
	CheckoutModeMembership,
}

// String implements fmt.Stringer.
func (m CheckoutMode) String() string {
	return string(m)
}

// IsValid reports whether the value matches a known CheckoutMode.
func (m CheckoutMode) IsValid() bool {
	for _, candidate := range validCheckoutModes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseCheckoutMode converts raw input into a CheckoutMode.
func ParseCheckoutMode(value string) (CheckoutMode, error) {
	for _, candidate := range validCheckoutModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkout mode %q", value)
}
