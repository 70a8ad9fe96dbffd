package cart

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lakeshoremuseum/museum-backend/pkg/enums"
	pkgerrors "github.com/lakeshoremuseum/museum-backend/pkg/errors"
)

// MaxTicketQuantity bounds how many tickets a single line may hold.
const MaxTicketQuantity = 20

// Line is one purchasable unit in the cart.
type Line struct {
	ItemID         string
	Kind           enums.LineKind
	Name           string
	UnitPrice      decimal.Decimal
	Quantity       int
	VisitDate      string // tickets only, YYYY-MM-DD
	TicketTypeName string // tickets only
	IsMemberTicket bool
}

// MemberTicket reports whether the line sells a members-only ticket type.
// The explicit flag is canonical; the name match covers legacy catalog rows
// that predate the flag.
func (l Line) MemberTicket() bool {
	if l.Kind != enums.LineKindTicket {
		return false
	}
	return l.IsMemberTicket || IsMemberTicketName(l.TicketTypeName)
}

// IsMemberTicketName applies the legacy convention: a ticket type is a
// member type when its name contains "member", case-insensitively.
func IsMemberTicketName(name string) bool {
	return strings.Contains(strings.ToLower(name), "member")
}

// TicketItemID builds the composite line id for a ticket type on a visit date.
func TicketItemID(ticketTypeID, visitDate string) string {
	return fmt.Sprintf("%s:%s", ticketTypeID, visitDate)
}

// ParseUnitPrice converts a client-supplied price into a decimal. Numeric
// strings are accepted; anything unparseable or negative is rejected rather
// than treated as zero.
func ParseUnitPrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("unit price %q is not a number", raw))
	}
	if price.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "unit price cannot be negative")
	}
	return price, nil
}

// Cart is the explicit aggregate for one shopper's pending order. All
// mutations go through methods; callers never touch lines directly.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddLine appends a line, merging quantity into an existing line with the
// same item id.
func (c *Cart) AddLine(line Line) error {
	if err := validateLine(line); err != nil {
		return err
	}

	for i := range c.lines {
		if c.lines[i].ItemID == line.ItemID {
			merged := c.lines[i].Quantity + line.Quantity
			if line.Kind == enums.LineKindTicket && merged > MaxTicketQuantity {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("at most %d tickets per line", MaxTicketQuantity))
			}
			c.lines[i].Quantity = merged
			return nil
		}
	}

	c.lines = append(c.lines, line)
	return nil
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero
// removes the line.
func (c *Cart) UpdateQuantity(itemID string, quantity int) error {
	if quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	for i := range c.lines {
		if c.lines[i].ItemID != itemID {
			continue
		}
		if quantity == 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
		if c.lines[i].Kind == enums.LineKindTicket && quantity > MaxTicketQuantity {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("at most %d tickets per line", MaxTicketQuantity))
		}
		c.lines[i].Quantity = quantity
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("cart line %q not found", itemID))
}

// Remove deletes a line by item id.
func (c *Cart) Remove(itemID string) error {
	return c.UpdateQuantity(itemID, 0)
}

// Clear empties the cart. Callers needing the contents afterwards must
// snapshot first.
func (c *Cart) Clear() {
	c.lines = nil
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Snapshot returns an independent copy of the lines. The copy stays valid
// after the live cart is cleared.
func (c *Cart) Snapshot() []Line {
	if len(c.lines) == 0 {
		return nil
	}
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func validateLine(line Line) error {
	if strings.TrimSpace(line.ItemID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "line item id is required")
	}
	if !line.Kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid line kind %q", line.Kind))
	}
	if line.Quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if line.UnitPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unit price cannot be negative")
	}
	if line.Kind == enums.LineKindTicket {
		if line.Quantity > MaxTicketQuantity {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("at most %d tickets per line", MaxTicketQuantity))
		}
		if strings.TrimSpace(line.VisitDate) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "ticket lines require a visit date")
		}
	}
	return nil
}
