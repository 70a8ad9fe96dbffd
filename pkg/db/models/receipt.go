package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lakeshoremuseum/museum-backend/pkg/enums"
)

// ReceiptLine is a frozen copy of one cart line at the moment of purchase.
type ReceiptLine struct {
	ItemID         string         `json:"item_id"`
	Kind           enums.LineKind `json:"kind"`
	Name           string         `json:"name"`
	UnitPrice      string         `json:"unit_price"`
	Quantity       int            `json:"quantity"`
	VisitDate      string         `json:"visit_date,omitempty"`
	TicketTypeName string         `json:"ticket_type_name,omitempty"`
}

// Receipt is the order confirmation snapshot. It is captured when a checkout
// succeeds and never reads from the live cart afterwards.
type Receipt struct {
	ID     uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID *uuid.UUID         `gorm:"column:user_id;type:uuid;index"`
	Mode   enums.CheckoutMode `gorm:"column:mode;type:text;not null"`

	SubtotalBeforeDiscountCents int `gorm:"column:subtotal_before_discount_cents;not null"`
	DiscountCents               int `gorm:"column:discount_cents;not null"`
	SubtotalCents               int `gorm:"column:subtotal_cents;not null"`
	TaxCents                    int `gorm:"column:tax_cents;not null"`
	TotalCents                  int `gorm:"column:total_cents;not null"`

	VisitDate *string       `gorm:"column:visit_date"`
	Lines     []ReceiptLine `gorm:"column:lines;type:jsonb;serializer:json"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
