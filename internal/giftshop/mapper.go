package giftshop

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lakeshoremuseum/museum-backend/internal/pricing"
	"github.com/lakeshoremuseum/museum-backend/pkg/db/models"
)

// GiftProductDTO is the API shape for one gift-shop product.
type GiftProductDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	PriceCents int       `json:"price_cents"`
	Price      string    `json:"price"`
	StockQty   int       `json:"stock_qty"`
}

// ToDTO maps a catalog row.
func ToDTO(m models.GiftProduct) GiftProductDTO {
	return GiftProductDTO{
		ID:         m.ID,
		Name:       m.Name,
		PriceCents: m.PriceCents,
		Price:      pricing.FormatUSD(decimal.New(int64(m.PriceCents), -2)),
		StockQty:   m.StockQty,
	}
}

// ToDTOs maps a slice of catalog rows.
func ToDTOs(rows []models.GiftProduct) []GiftProductDTO {
	dtos := make([]GiftProductDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, ToDTO(row))
	}
	return dtos
}
