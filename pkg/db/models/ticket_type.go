package models

import (
	"time"

	"github.com/google/uuid"
)

// TicketType is one catalog entry for admission tickets.
//
// IsMemberTicket is the canonical flag; legacy rows imported without it are
// backfilled from the name (see internal/tickets).
type TicketType struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string    `gorm:"column:name;not null;uniqueIndex"`
	BasePriceCents int       `gorm:"column:base_price_cents;not null"`
	IsMemberTicket bool      `gorm:"column:is_member_ticket;not null;default:false"`
	IsActive       bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
