package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lakeshoremuseum/museum-backend/pkg/enums"
)

// MembershipRecord is one owned membership row for a user. A user can
// accumulate several rows over the years; the newest one wins.
type MembershipRecord struct {
	ID                 uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID             uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index"`
	MembershipType     enums.MembershipType `gorm:"column:membership_type;type:text;not null"`
	IsActive           bool                 `gorm:"column:is_active;not null;default:false"`
	DiscountPercentage int                  `gorm:"column:discount_percentage;not null;default:0"`
	// ExpirationDate nil means the membership never expires.
	ExpirationDate  *time.Time `gorm:"column:expiration_date"`
	UnlimitedVisits bool       `gorm:"column:unlimited_visits;not null;default:false"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// MembershipPlan is a purchasable membership product.
type MembershipPlan struct {
	ID                 uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	MembershipType     enums.MembershipType `gorm:"column:membership_type;type:text;not null;uniqueIndex"`
	Name               string               `gorm:"column:name;not null"`
	PriceCents         int                  `gorm:"column:price_cents;not null"`
	DurationMonths     int                  `gorm:"column:duration_months;not null;default:12"`
	DiscountPercentage int                  `gorm:"column:discount_percentage;not null;default:0"`
	UnlimitedVisits    bool                 `gorm:"column:unlimited_visits;not null;default:false"`
	IsActive           bool                 `gorm:"column:is_active;not null;default:true"`
	CreatedAt          time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
