package giftshop

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lakeshoremuseum/museum-backend/pkg/db/models"
	pkgerrors "github.com/lakeshoremuseum/museum-backend/pkg/errors"
)

// Repository exposes gift-shop catalog reads and stock mutations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns the products currently for sale.
func (r *Repository) ListActive(ctx context.Context) ([]models.GiftProduct, error) {
	var products []models.GiftProduct
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID loads one product.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.GiftProduct, error) {
	var product models.GiftProduct
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DecrementStock takes qty units out of stock inside the given transaction.
// The guard on stock_qty makes concurrent checkouts fail instead of driving
// stock negative.
func (r *Repository) DecrementStock(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return nil
	}
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for stock decrement")
	}

	res := tx.WithContext(ctx).Exec(`
		UPDATE gift_products
		SET stock_qty = stock_qty - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND stock_qty >= ?
	`, qty, productID, qty)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "decrement stock")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "product out of stock")
	}
	return nil
}
