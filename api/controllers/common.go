package controllers

import (
	"time"

	"github.com/google/uuid"

	"github.com/lakeshoremuseum/museum-backend/internal/cart"
	"github.com/lakeshoremuseum/museum-backend/internal/pricing"
)

type nowFunc func() time.Time

// cartLineRequest is one requested line as submitted by the website. Prices
// are optional echoes of what the client displayed; the catalog wins.
type cartLineRequest struct {
	GiftProductID *uuid.UUID `json:"gift_product_id,omitempty" validate:"omitempty"`
	TicketTypeID  *uuid.UUID `json:"ticket_type_id,omitempty" validate:"omitempty"`
	Quantity      int        `json:"quantity" validate:"required,min=1"`
	VisitDate     string     `json:"visit_date,omitempty"`
	UnitPrice     *string    `json:"unit_price,omitempty"`
}

func toLineInputs(lines []cartLineRequest) []cart.LineInput {
	inputs := make([]cart.LineInput, 0, len(lines))
	for _, line := range lines {
		inputs = append(inputs, cart.LineInput{
			GiftProductID: line.GiftProductID,
			TicketTypeID:  line.TicketTypeID,
			Quantity:      line.Quantity,
			VisitDate:     line.VisitDate,
			UnitPrice:     line.UnitPrice,
		})
	}
	return inputs
}

type lineResponse struct {
	ItemID         string `json:"item_id"`
	Kind           string `json:"kind"`
	Name           string `json:"name"`
	UnitPrice      string `json:"unit_price"`
	Quantity       int    `json:"quantity"`
	VisitDate      string `json:"visit_date,omitempty"`
	TicketTypeName string `json:"ticket_type_name,omitempty"`
	IsMemberTicket bool   `json:"is_member_ticket"`
}

type totalsResponse struct {
	SubtotalBeforeDiscount string `json:"subtotal_before_discount"`
	Discount               string `json:"discount"`
	Subtotal               string `json:"subtotal"`
	Tax                    string `json:"tax"`
	Total                  string `json:"total"`
	TotalCents             int    `json:"total_cents"`
}

func newLineResponses(lines []cart.Line) []lineResponse {
	out := make([]lineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, lineResponse{
			ItemID:         line.ItemID,
			Kind:           string(line.Kind),
			Name:           line.Name,
			UnitPrice:      pricing.FormatUSD(line.UnitPrice),
			Quantity:       line.Quantity,
			VisitDate:      line.VisitDate,
			TicketTypeName: line.TicketTypeName,
			IsMemberTicket: line.MemberTicket(),
		})
	}
	return out
}

func newTotalsResponse(totals pricing.Totals) totalsResponse {
	return totalsResponse{
		SubtotalBeforeDiscount: pricing.FormatUSD(totals.SubtotalBeforeDiscount),
		Discount:               pricing.FormatUSD(totals.DiscountAmount),
		Subtotal:               pricing.FormatUSD(totals.Subtotal),
		Tax:                    pricing.FormatUSD(totals.Tax),
		Total:                  pricing.FormatUSD(totals.Total),
		TotalCents:             pricing.ToCents(totals.Total),
	}
}
