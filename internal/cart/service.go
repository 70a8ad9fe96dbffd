package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lakeshoremuseum/museum-backend/pkg/db/models"
	"github.com/lakeshoremuseum/museum-backend/pkg/enums"
	pkgerrors "github.com/lakeshoremuseum/museum-backend/pkg/errors"
)

type giftProductLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.GiftProduct, error)
}

type ticketTypeLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.TicketType, error)
}

// LineInput is one requested cart line as submitted by the client.
type LineInput struct {
	GiftProductID *uuid.UUID
	TicketTypeID  *uuid.UUID
	Quantity      int
	VisitDate     string
	// UnitPrice is the price the client displayed. When present it must
	// parse and match the catalog price; the catalog is authoritative.
	UnitPrice *string
}

// Builder materializes client line inputs into a Cart, pricing every line
// from the catalog and enforcing stock and per-line bounds.
type Builder interface {
	Build(ctx context.Context, inputs []LineInput) (*Cart, error)
}

type builder struct {
	gifts   giftProductLoader
	tickets ticketTypeLoader
}

// NewBuilder wires a cart builder over the two catalog loaders.
func NewBuilder(gifts giftProductLoader, tickets ticketTypeLoader) (Builder, error) {
	if gifts == nil {
		return nil, fmt.Errorf("gift product loader required")
	}
	if tickets == nil {
		return nil, fmt.Errorf("ticket type loader required")
	}
	return &builder{gifts: gifts, tickets: tickets}, nil
}

func (b *builder) Build(ctx context.Context, inputs []LineInput) (*Cart, error) {
	c := New()
	for _, input := range inputs {
		line, err := b.materialize(ctx, input)
		if err != nil {
			return nil, err
		}
		if err := c.AddLine(line); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (b *builder) materialize(ctx context.Context, input LineInput) (Line, error) {
	switch {
	case input.GiftProductID != nil && input.TicketTypeID != nil:
		return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "line cannot reference both a gift product and a ticket type")
	case input.GiftProductID != nil:
		return b.giftLine(ctx, input)
	case input.TicketTypeID != nil:
		return b.ticketLine(ctx, input)
	default:
		return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "line must reference a gift product or a ticket type")
	}
}

func (b *builder) giftLine(ctx context.Context, input LineInput) (Line, error) {
	product, err := b.gifts.FindByID(ctx, *input.GiftProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Line{}, pkgerrors.New(pkgerrors.CodeNotFound, "gift product not found")
		}
		return Line{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load gift product")
	}
	if !product.IsActive {
		return Line{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s is not available", product.Name))
	}
	if input.Quantity > product.StockQty {
		return Line{}, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("only %d of %s in stock", product.StockQty, product.Name))
	}

	price := centsToDecimal(product.PriceCents)
	if err := verifyClientPrice(input.UnitPrice, price); err != nil {
		return Line{}, err
	}

	return Line{
		ItemID:    product.ID.String(),
		Kind:      enums.LineKindGiftItem,
		Name:      product.Name,
		UnitPrice: price,
		Quantity:  input.Quantity,
	}, nil
}

func (b *builder) ticketLine(ctx context.Context, input LineInput) (Line, error) {
	ticketType, err := b.tickets.FindByID(ctx, *input.TicketTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Line{}, pkgerrors.New(pkgerrors.CodeNotFound, "ticket type not found")
		}
		return Line{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ticket type")
	}
	if !ticketType.IsActive {
		return Line{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s is not on sale", ticketType.Name))
	}

	price := centsToDecimal(ticketType.BasePriceCents)
	if err := verifyClientPrice(input.UnitPrice, price); err != nil {
		return Line{}, err
	}

	return Line{
		ItemID:         TicketItemID(ticketType.ID.String(), input.VisitDate),
		Kind:           enums.LineKindTicket,
		Name:           ticketType.Name,
		UnitPrice:      price,
		Quantity:       input.Quantity,
		VisitDate:      input.VisitDate,
		TicketTypeName: ticketType.Name,
		IsMemberTicket: ticketType.IsMemberTicket || IsMemberTicketName(ticketType.Name),
	}, nil
}

func verifyClientPrice(raw *string, catalog decimal.Decimal) error {
	if raw == nil {
		return nil
	}
	client, err := ParseUnitPrice(*raw)
	if err != nil {
		return err
	}
	if !client.Equal(catalog) {
		return pkgerrors.New(pkgerrors.CodeConflict, "price changed since the cart was built").WithDetails(map[string]string{
			"cart_price":    client.StringFixed(2),
			"current_price": catalog.StringFixed(2),
		})
	}
	return nil
}

func centsToDecimal(cents int) decimal.Decimal {
	return decimal.New(int64(cents), -2)
}
