package receipts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lakeshoremuseum/museum-backend/pkg/db/models"
)

// Repository persists and loads checkout receipts.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateTx writes a receipt inside the given transaction.
func (r *Repository) CreateTx(ctx context.Context, tx *gorm.DB, receipt *models.Receipt) error {
	return tx.WithContext(ctx).Create(receipt).Error
}

// FindByID loads one receipt.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Receipt, error) {
	var receipt models.Receipt
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&receipt).Error
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

// ListForUser returns a user's receipts, newest first.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Receipt, error) {
	var rows []models.Receipt
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
