package tickets

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lakeshoremuseum/museum-backend/pkg/db/models"
)

// Repository exposes ticket type catalog reads.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns the ticket types currently on sale, cheapest first.
func (r *Repository) ListActive(ctx context.Context) ([]models.TicketType, error) {
	var ticketTypes []models.TicketType
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("base_price_cents").
		Find(&ticketTypes).Error
	if err != nil {
		return nil, err
	}
	return ticketTypes, nil
}

// FindByID loads one ticket type.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.TicketType, error) {
	var ticketType models.TicketType
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ticketType).Error
	if err != nil {
		return nil, err
	}
	return &ticketType, nil
}
