package tickets

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lakeshoremuseum/museum-backend/internal/cart"
	"github.com/lakeshoremuseum/museum-backend/internal/pricing"
	"github.com/lakeshoremuseum/museum-backend/pkg/db/models"
)

// TicketTypeDTO is the API shape for one ticket type.
type TicketTypeDTO struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	BasePriceCents int       `json:"base_price_cents"`
	Price          string    `json:"price"`
	IsMemberTicket bool      `json:"is_member_ticket"`
}

// ToDTO maps a catalog row. Legacy rows that predate the member flag are
// backfilled from the name.
func ToDTO(m models.TicketType) TicketTypeDTO {
	return TicketTypeDTO{
		ID:             m.ID,
		Name:           m.Name,
		BasePriceCents: m.BasePriceCents,
		Price:          pricing.FormatUSD(decimal.New(int64(m.BasePriceCents), -2)),
		IsMemberTicket: m.IsMemberTicket || cart.IsMemberTicketName(m.Name),
	}
}

// ToDTOs maps a slice of catalog rows.
func ToDTOs(rows []models.TicketType) []TicketTypeDTO {
	dtos := make([]TicketTypeDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, ToDTO(row))
	}
	return dtos
}
