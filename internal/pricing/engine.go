package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/lakeshoremuseum/museum-backend/internal/cart"
	"github.com/lakeshoremuseum/museum-backend/internal/membership"
	"github.com/lakeshoremuseum/museum-backend/pkg/enums"
	pkgerrors "github.com/lakeshoremuseum/museum-backend/pkg/errors"
)

// TaxRate is the sales tax applied to the post-discount subtotal. The
// museum charges one fixed rate; it is not configurable per region.
var TaxRate = decimal.RequireFromString("0.0825")

var oneHundred = decimal.NewFromInt(100)

// Totals carries the unrounded order amounts. Rounding happens only when a
// value is formatted for display or persisted as cents; recomputing from
// rounded intermediates drifts by cents and is deliberately impossible here.
type Totals struct {
	SubtotalBeforeDiscount decimal.Decimal
	GiftSubtotal           decimal.Decimal
	TicketSubtotal         decimal.Decimal
	DiscountAmount         decimal.Decimal
	Subtotal               decimal.Decimal
	Tax                    decimal.Decimal
	Total                  decimal.Decimal
}

// Compute prices the cart against the resolved membership.
//
// The membership percentage discounts gift items only. Members get cheaper
// admission through dedicated member ticket types priced in the catalog;
// the two mechanisms never combine on a ticket line.
func Compute(lines []cart.Line, resolved membership.Resolved) (Totals, error) {
	var gift, ticket decimal.Decimal

	for _, line := range lines {
		if line.Quantity <= 0 {
			return Totals{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("line %q has non-positive quantity", line.ItemID))
		}
		if line.UnitPrice.IsNegative() {
			return Totals{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("line %q has negative unit price", line.ItemID))
		}

		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		switch line.Kind {
		case enums.LineKindGiftItem:
			gift = gift.Add(lineTotal)
		case enums.LineKindTicket:
			ticket = ticket.Add(lineTotal)
		default:
			return Totals{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("line %q has unknown kind %q", line.ItemID, line.Kind))
		}
	}

	discount := decimal.Zero
	if resolved.Active && resolved.DiscountPercentage > 0 {
		discount = gift.Mul(decimal.NewFromInt(int64(resolved.DiscountPercentage))).Div(oneHundred)
	}

	before := gift.Add(ticket)
	subtotal := before.Sub(discount)
	tax := subtotal.Mul(TaxRate)

	return Totals{
		SubtotalBeforeDiscount: before,
		GiftSubtotal:           gift,
		TicketSubtotal:         ticket,
		DiscountAmount:         discount,
		Subtotal:               subtotal,
		Tax:                    tax,
		Total:                  subtotal.Add(tax),
	}, nil
}
