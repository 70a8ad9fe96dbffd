package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lakeshoremuseum/museum-backend/pkg/enums"
	pkgerrors "github.com/lakeshoremuseum/museum-backend/pkg/errors"
)

func testGiftLine(id string, qty int) Line {
	return Line{
		ItemID:    id,
		Kind:      enums.LineKindGiftItem,
		Name:      "gift " + id,
		UnitPrice: decimal.NewFromInt(10),
		Quantity:  qty,
	}
}

func testTicketLine(qty int) Line {
	return Line{
		ItemID:         TicketItemID("tt-1", "2026-03-20"),
		Kind:           enums.LineKindTicket,
		Name:           "Adult Day Pass",
		UnitPrice:      decimal.NewFromInt(25),
		Quantity:       qty,
		VisitDate:      "2026-03-20",
		TicketTypeName: "Adult Day Pass",
	}
}

func TestAddLineMergesSameItem(t *testing.T) {
	t.Parallel()

	c := New()
	if err := c.AddLine(testGiftLine("mug", 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.AddLine(testGiftLine("mug", 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := c.Snapshot()
	if len(lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("quantity = %d, want 3", lines[0].Quantity)
	}
}

func TestAddLineTicketQuantityBound(t *testing.T) {
	t.Parallel()

	c := New()
	if err := c.AddLine(testTicketLine(MaxTicketQuantity)); err != nil {
		t.Fatalf("max quantity should be allowed: %v", err)
	}
	if err := c.AddLine(testTicketLine(1)); err == nil {
		t.Fatal("expected merge past the ticket bound to fail")
	}

	c2 := New()
	if err := c2.AddLine(testTicketLine(MaxTicketQuantity + 1)); err == nil {
		t.Fatal("expected oversized ticket line to fail")
	}
}

func TestAddLineSameTicketDifferentDatesStaySeparate(t *testing.T) {
	t.Parallel()

	c := New()
	first := testTicketLine(1)
	second := testTicketLine(1)
	second.ItemID = TicketItemID("tt-1", "2026-03-21")
	second.VisitDate = "2026-03-21"

	if err := c.AddLine(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.AddLine(second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(c.Snapshot()); got != 2 {
		t.Fatalf("expected 2 lines, got %d", got)
	}
}

func TestUpdateQuantity(t *testing.T) {
	t.Parallel()

	c := New()
	if err := c.AddLine(testGiftLine("mug", 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.UpdateQuantity("mug", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Snapshot()[0].Quantity; got != 5 {
		t.Fatalf("quantity = %d, want 5", got)
	}

	// Zero removes the line.
	if err := c.UpdateQuantity("mug", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.IsEmpty() {
		t.Fatal("expected empty cart")
	}

	if err := c.UpdateQuantity("mug", 1); err == nil {
		t.Fatal("expected missing line error")
	} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSnapshotSurvivesClear(t *testing.T) {
	t.Parallel()

	c := New()
	if err := c.AddLine(testGiftLine("mug", 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snapshot := c.Snapshot()
	c.Clear()

	if !c.IsEmpty() {
		t.Fatal("expected cleared cart to be empty")
	}
	if len(snapshot) != 1 || snapshot[0].ItemID != "mug" {
		t.Fatalf("snapshot mutated by clear: %+v", snapshot)
	}
}

func TestValidateLineRules(t *testing.T) {
	t.Parallel()

	c := New()

	noDate := testTicketLine(1)
	noDate.VisitDate = ""
	if err := c.AddLine(noDate); err == nil {
		t.Fatal("ticket without visit date should fail")
	}

	noID := testGiftLine("", 1)
	if err := c.AddLine(noID); err == nil {
		t.Fatal("line without item id should fail")
	}

	badKind := testGiftLine("mug", 1)
	badKind.Kind = "bundle"
	if err := c.AddLine(badKind); err == nil {
		t.Fatal("unknown kind should fail")
	}
}

func TestParseUnitPrice(t *testing.T) {
	t.Parallel()

	price, err := ParseUnitPrice(" 19.99 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !price.Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("price = %s", price)
	}

	if _, err := ParseUnitPrice("abc"); err == nil {
		t.Fatal("expected parse failure")
	}
	if _, err := ParseUnitPrice("-1"); err == nil {
		t.Fatal("expected negative rejection")
	}
}

func TestIsMemberTicketName(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"Member Adult Day Pass": true,
		"MEMBERSHIP SPECIAL":    true,
		"Adult Day Pass":        false,
		"Remember the Alamo":    true, // substring match is deliberately blunt
		"":                      false,
	}
	for name, want := range cases {
		if got := IsMemberTicketName(name); got != want {
			t.Fatalf("IsMemberTicketName(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestMemberTicketIgnoresGiftLines(t *testing.T) {
	t.Parallel()

	line := testGiftLine("mug", 1)
	line.IsMemberTicket = true
	if line.MemberTicket() {
		t.Fatal("gift lines are never member tickets")
	}
}
