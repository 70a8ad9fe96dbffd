package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lakeshoremuseum/museum-backend/internal/cart"
	"github.com/lakeshoremuseum/museum-backend/internal/membership"
	"github.com/lakeshoremuseum/museum-backend/pkg/enums"
	pkgerrors "github.com/lakeshoremuseum/museum-backend/pkg/errors"
)

func giftLine(id, price string, qty int) cart.Line {
	return cart.Line{
		ItemID:    id,
		Kind:      enums.LineKindGiftItem,
		Name:      "gift " + id,
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

func ticketLine(id, price string, qty int) cart.Line {
	return cart.Line{
		ItemID:         id,
		Kind:           enums.LineKindTicket,
		Name:           "ticket " + id,
		UnitPrice:      decimal.RequireFromString(price),
		Quantity:       qty,
		VisitDate:      "2026-10-01",
		TicketTypeName: "Adult Day Pass",
	}
}

func TestComputeEmptyCartIsZero(t *testing.T) {
	t.Parallel()

	totals, err := Compute(nil, membership.Resolved{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !totals.Total.IsZero() || !totals.Tax.IsZero() || !totals.DiscountAmount.IsZero() {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}

func TestComputeDiscountAppliesToGiftSubtotalOnly(t *testing.T) {
	t.Parallel()

	lines := []cart.Line{
		giftLine("mug", "20.00", 1),
		ticketLine("adult", "30.00", 2),
	}
	resolved := membership.Resolved{Active: true, DiscountPercentage: 10}

	totals, err := Compute(lines, resolved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := decimal.RequireFromString("2"); !totals.DiscountAmount.Equal(want) {
		t.Fatalf("discount = %s, want %s", totals.DiscountAmount, want)
	}
	if want := decimal.RequireFromString("80"); !totals.SubtotalBeforeDiscount.Equal(want) {
		t.Fatalf("subtotal before discount = %s, want %s", totals.SubtotalBeforeDiscount, want)
	}
	if want := decimal.RequireFromString("78"); !totals.Subtotal.Equal(want) {
		t.Fatalf("subtotal = %s, want %s", totals.Subtotal, want)
	}
	// Tax is computed on the post-discount subtotal.
	if want := decimal.RequireFromString("6.435"); !totals.Tax.Equal(want) {
		t.Fatalf("tax = %s, want %s", totals.Tax, want)
	}
	if want := decimal.RequireFromString("84.435"); !totals.Total.Equal(want) {
		t.Fatalf("total = %s, want %s", totals.Total, want)
	}
}

func TestComputeInactiveMembershipGetsNoDiscount(t *testing.T) {
	t.Parallel()

	lines := []cart.Line{giftLine("mug", "20.00", 1)}

	totals, err := Compute(lines, membership.Resolved{Active: false, DiscountPercentage: 15})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !totals.DiscountAmount.IsZero() {
		t.Fatalf("expected zero discount, got %s", totals.DiscountAmount)
	}
}

func TestComputeKeepsUnroundedIntermediates(t *testing.T) {
	t.Parallel()

	// 18.00 gift, no discount: tax = 1.485, total = 19.485. The internals
	// must stay exact; only the display string rounds.
	lines := []cart.Line{giftLine("tee", "18.00", 1)}

	totals, err := Compute(lines, membership.Resolved{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := decimal.RequireFromString("1.485"); !totals.Tax.Equal(want) {
		t.Fatalf("tax = %s, want %s", totals.Tax, want)
	}
	if want := decimal.RequireFromString("19.485"); !totals.Total.Equal(want) {
		t.Fatalf("total = %s, want %s", totals.Total, want)
	}
	if got := FormatUSD(totals.Total); got != "$19.49" {
		t.Fatalf("FormatUSD(total) = %s, want $19.49", got)
	}
	if got := ToCents(totals.Total); got != 1949 {
		t.Fatalf("ToCents(total) = %d, want 1949", got)
	}
}

func TestComputeRejectsBadLines(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		line cart.Line
	}{
		{"zero quantity", giftLine("mug", "5.00", 0)},
		{"negative quantity", giftLine("mug", "5.00", -1)},
		{"negative price", giftLine("mug", "-5.00", 1)},
		{"unknown kind", cart.Line{ItemID: "x", Kind: "bundle", UnitPrice: decimal.NewFromInt(1), Quantity: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compute([]cart.Line{tc.line}, membership.Resolved{})
			if err == nil {
				t.Fatal("expected error")
			}
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestFormatUSDRoundsHalfAwayFromZero(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"19.485": "$19.49",
		"19.484": "$19.48",
		"0":      "$0.00",
		"2.005":  "$2.01",
	}
	for input, want := range cases {
		if got := FormatUSD(decimal.RequireFromString(input)); got != want {
			t.Fatalf("FormatUSD(%s) = %s, want %s", input, got, want)
		}
	}
}
