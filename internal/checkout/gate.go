package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/lakeshoremuseum/museum-backend/internal/cart"
	"github.com/lakeshoremuseum/museum-backend/internal/membership"
	"github.com/lakeshoremuseum/museum-backend/pkg/enums"
	pkgerrors "github.com/lakeshoremuseum/museum-backend/pkg/errors"
)

// GateInput is everything the purchase gate needs to decide whether a
// checkout may proceed. Authentication is resolved by the caller and passed
// in as a plain flag so the gate itself stays pure.
type GateInput struct {
	Lines         []cart.Line
	Membership    membership.Resolved
	Mode          enums.CheckoutMode
	Authenticated bool
	Renewal       bool
	Billing       BillingDetails
	Now           time.Time
}

// Validate runs the checkout rules in order and returns the first failure,
// or nil when the order may be submitted. Every rule fires before any
// network or database write.
func Validate(input GateInput) error {
	if err := checkVisitDates(input.Lines); err != nil {
		return err
	}

	if len(input.Lines) == 0 && input.Mode != enums.CheckoutModeMembership {
		return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}

	if err := checkMemberTickets(input); err != nil {
		return err
	}

	if input.Mode == enums.CheckoutModeMembership && !input.Renewal && input.Membership.Active {
		return pkgerrors.New(pkgerrors.CodeMembershipAlreadyActive, "an active membership already exists; choose renewal instead")
	}

	if date, ok := sharedVisitDate(input.Lines); ok && SalesClosedForToday(input.Now, date) {
		return pkgerrors.New(pkgerrors.CodeSalesClosedForToday,
			fmt.Sprintf("ticket sales for today closed at %d:00", ClosingHour(input.Now.Weekday())))
	}

	if problems := ValidateBillingDetails(input.Billing, input.Now); len(problems) > 0 {
		return FieldValidationError(problems)
	}

	return nil
}

// checkVisitDates enforces one visit date per order: every ticket line must
// carry the same parseable date.
func checkVisitDates(lines []cart.Line) error {
	dates := map[string]struct{}{}
	for _, line := range lines {
		if line.Kind != enums.LineKindTicket {
			continue
		}
		date := strings.TrimSpace(line.VisitDate)
		if date == "" {
			return pkgerrors.New(pkgerrors.CodeTicketDateInvalid, "ticket line is missing a visit date")
		}
		if _, err := time.Parse(VisitDateLayout, date); err != nil {
			return pkgerrors.New(pkgerrors.CodeTicketDateInvalid, fmt.Sprintf("invalid visit date %q", date))
		}
		dates[date] = struct{}{}
	}
	if len(dates) > 1 {
		distinct := make([]string, 0, len(dates))
		for date := range dates {
			distinct = append(distinct, date)
		}
		return pkgerrors.New(pkgerrors.CodeTicketDateInvalid, "all tickets in an order must share one visit date").
			WithDetails(map[string]any{"visit_dates": distinct})
	}
	return nil
}

func checkMemberTickets(input GateInput) error {
	requested := 0
	for _, line := range input.Lines {
		if line.MemberTicket() {
			requested += line.Quantity
		}
	}
	if requested == 0 {
		return nil
	}

	if !input.Authenticated {
		return pkgerrors.New(pkgerrors.CodeMemberTicketLoginRequired, "sign in to purchase member tickets")
	}
	if !input.Membership.Active {
		return pkgerrors.New(pkgerrors.CodeMemberTicketMembership, "an active membership is required to purchase member tickets")
	}
	if requested > input.Membership.TicketQuota {
		return pkgerrors.New(pkgerrors.CodeMemberTicketQuotaExceeded,
			fmt.Sprintf("membership allows %d member tickets per visit", input.Membership.TicketQuota)).
			WithDetails(map[string]int{
				"allowed":   input.Membership.TicketQuota,
				"requested": requested,
			})
	}
	return nil
}

// sharedVisitDate returns the single visit date when ticket lines exist.
// Call only after checkVisitDates has passed.
func sharedVisitDate(lines []cart.Line) (string, bool) {
	for _, line := range lines {
		if line.Kind == enums.LineKindTicket {
			return line.VisitDate, true
		}
	}
	return "", false
}
