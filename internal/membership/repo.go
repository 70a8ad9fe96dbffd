package membership

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lakeshoremuseum/museum-backend/pkg/db/models"
	"github.com/lakeshoremuseum/museum-backend/pkg/enums"
)

// Repository exposes membership persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListForUser returns all membership records for a user, most recent first.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.MembershipRecord, error) {
	var records []models.MembershipRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// LatestForUser returns the newest membership record, or nil when the user
// has never held one.
func (r *Repository) LatestForUser(ctx context.Context, userID uuid.UUID) (*models.MembershipRecord, error) {
	var record models.MembershipRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateRecord persists a new membership record.
func (r *Repository) CreateRecord(ctx context.Context, record *models.MembershipRecord) (*models.MembershipRecord, error) {
	if !record.MembershipType.IsValid() {
		return nil, fmt.Errorf("invalid membership type %q", record.MembershipType)
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// CreateRecordTx persists a new membership record inside the given transaction.
func (r *Repository) CreateRecordTx(ctx context.Context, tx *gorm.DB, record *models.MembershipRecord) error {
	_, err := r.WithTx(tx).CreateRecord(ctx, record)
	return err
}

// ListPlans returns the purchasable membership plans.
func (r *Repository) ListPlans(ctx context.Context) ([]models.MembershipPlan, error) {
	var plans []models.MembershipPlan
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price_cents").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// FindPlanByType returns the plan for a membership tier.
func (r *Repository) FindPlanByType(ctx context.Context, membershipType enums.MembershipType) (*models.MembershipPlan, error) {
	var plan models.MembershipPlan
	err := r.db.WithContext(ctx).
		Where("membership_type = ? AND is_active = ?", membershipType, true).
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ResolveForUser loads the newest record and resolves eligibility as of today.
func (r *Repository) ResolveForUser(ctx context.Context, userID uuid.UUID, today time.Time) (Resolved, error) {
	record, err := r.LatestForUser(ctx, userID)
	if err != nil {
		return Resolved{}, err
	}
	return Resolve(ToRecord(record), today), nil
}
