package checkout

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	pkgerrors "github.com/lakeshoremuseum/museum-backend/pkg/errors"
)

// BillingDetails carries the visitor-entered checkout form fields. Card
// data is format-validated only and never forwarded to a processor.
type BillingDetails struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone_number"`
	CardNumber string `json:"card_number"`
	CVV        string `json:"cvv"`
	ZipCode    string `json:"zip_code"`
	CardExpiry string `json:"card_expiry"` // MM/YYYY
}

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{4})$`)
)

// ValidateBillingDetails returns a field→message map of everything wrong
// with the form. An empty map means the details pass.
func ValidateBillingDetails(details BillingDetails, now time.Time) map[string]string {
	problems := map[string]string{}

	if len(strings.TrimSpace(details.FirstName)) < 2 {
		problems["first_name"] = "must be at least 2 characters"
	}
	if len(strings.TrimSpace(details.LastName)) < 2 {
		problems["last_name"] = "must be at least 2 characters"
	}
	if !emailPattern.MatchString(strings.TrimSpace(details.Email)) {
		problems["email"] = "must be a valid email"
	}
	if len(digitsOf(details.Phone)) != 10 {
		problems["phone_number"] = "must be a 10-digit phone number"
	}
	if len(digitsOf(details.CardNumber)) != 16 {
		problems["card_number"] = "must be a 16-digit card number"
	}
	if cvv := digitsOf(details.CVV); len(cvv) < 3 || len(cvv) > 4 || cvv != strings.TrimSpace(details.CVV) {
		problems["cvv"] = "must be 3 or 4 digits"
	}
	if zip := digitsOf(details.ZipCode); len(zip) != 5 || zip != strings.TrimSpace(details.ZipCode) {
		problems["zip_code"] = "must be a 5-digit ZIP code"
	}
	if msg, ok := validateExpiry(details.CardExpiry, now); !ok {
		problems["card_expiry"] = msg
	}

	return problems
}

// FieldValidationError wraps a non-empty problem map in the coded error
// surfaced to clients.
func FieldValidationError(problems map[string]string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeFieldValidation, "some fields are invalid").WithDetails(problems)
}

func validateExpiry(raw string, now time.Time) (string, bool) {
	match := expiryPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if match == nil {
		return "must be in MM/YYYY format", false
	}
	month, _ := strconv.Atoi(match[1])
	year, _ := strconv.Atoi(match[2])
	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return "card is expired", false
	}
	return "", true
}

func digitsOf(value string) string {
	var b strings.Builder
	for _, r := range value {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
