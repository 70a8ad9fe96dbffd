package membership

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lakeshoremuseum/museum-backend/pkg/db/models"
	"github.com/lakeshoremuseum/museum-backend/pkg/enums"
)

func setupMembershipTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	records := `
CREATE TABLE IF NOT EXISTS membership_records (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  membership_type TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 0,
  discount_percentage INTEGER NOT NULL DEFAULT 0,
  expiration_date DATETIME,
  unlimited_visits INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	plans := `
CREATE TABLE IF NOT EXISTS membership_plans (
  id TEXT PRIMARY KEY,
  membership_type TEXT NOT NULL,
  name TEXT NOT NULL,
  price_cents INTEGER NOT NULL,
  duration_months INTEGER NOT NULL DEFAULT 12,
  discount_percentage INTEGER NOT NULL DEFAULT 0,
  unlimited_visits INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(records).Error)
	require.NoError(t, db.Exec(plans).Error)
	return db
}

func createRecord(t *testing.T, db *gorm.DB, userID uuid.UUID, membershipType enums.MembershipType, active bool, created time.Time, expires *time.Time) *models.MembershipRecord {
	t.Helper()

	record := &models.MembershipRecord{
		ID:                 uuid.New(),
		UserID:             userID,
		MembershipType:     membershipType,
		IsActive:           active,
		DiscountPercentage: 10,
		ExpirationDate:     expires,
		CreatedAt:          created,
		UpdatedAt:          created,
	}
	require.NoError(t, db.Create(record).Error)
	return record
}

func createPlan(t *testing.T, db *gorm.DB, membershipType enums.MembershipType, priceCents int, active bool) *models.MembershipPlan {
	t.Helper()

	plan := &models.MembershipPlan{
		ID:                 uuid.New(),
		MembershipType:     membershipType,
		Name:               string(membershipType) + " membership",
		PriceCents:         priceCents,
		DurationMonths:     12,
		DiscountPercentage: 10,
		IsActive:           active,
	}
	require.NoError(t, db.Create(plan).Error)
	return plan
}

func TestRepositoryLatestForUser_newestWins(t *testing.T) {
	db := setupMembershipTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	base := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	createRecord(t, db, userID, enums.MembershipTypeIndividual, false, base, nil)
	newest := createRecord(t, db, userID, enums.MembershipTypeFamily, true, base.AddDate(1, 0, 0), nil)

	got, err := repo.LatestForUser(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, newest.ID, got.ID)
	assert.Equal(t, enums.MembershipTypeFamily, got.MembershipType)

	list, err := repo.ListForUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newest.ID, list[0].ID)
}

func TestRepositoryLatestForUser_noRecord(t *testing.T) {
	db := setupMembershipTestDB(t)
	repo := NewRepository(db)

	got, err := repo.LatestForUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRepositoryCreateRecord_rejectsUnknownTier(t *testing.T) {
	db := setupMembershipTestDB(t)
	repo := NewRepository(db)

	_, err := repo.CreateRecord(context.Background(), &models.MembershipRecord{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		MembershipType: "platinum",
	})
	require.Error(t, err)
}

func TestRepositoryCreateRecordTx_visibleAfterCommit(t *testing.T) {
	db := setupMembershipTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	record := &models.MembershipRecord{
		ID:             uuid.New(),
		UserID:         userID,
		MembershipType: enums.MembershipTypeDual,
		IsActive:       true,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return repo.CreateRecordTx(ctx, tx, record)
	})
	require.NoError(t, err)

	got, err := repo.LatestForUser(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record.ID, got.ID)
}

func TestRepositoryFindPlanByType(t *testing.T) {
	db := setupMembershipTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	createPlan(t, db, enums.MembershipTypeIndividual, 7500, true)
	createPlan(t, db, enums.MembershipTypePatron, 50000, false)

	plan, err := repo.FindPlanByType(ctx, enums.MembershipTypeIndividual)
	require.NoError(t, err)
	assert.Equal(t, 7500, plan.PriceCents)

	// Inactive plans are not purchasable.
	_, err = repo.FindPlanByType(ctx, enums.MembershipTypePatron)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListPlans_activeOrderedByPrice(t *testing.T) {
	db := setupMembershipTestDB(t)
	repo := NewRepository(db)

	createPlan(t, db, enums.MembershipTypeFamily, 15000, true)
	createPlan(t, db, enums.MembershipTypeDual, 11000, true)
	retired := createPlan(t, db, enums.MembershipTypePatron, 50000, false)

	plans, err := repo.ListPlans(context.Background())
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(plans), 2)
	for i := 1; i < len(plans); i++ {
		assert.LessOrEqual(t, plans[i-1].PriceCents, plans[i].PriceCents)
	}
	for _, plan := range plans {
		assert.NotEqual(t, retired.ID, plan.ID)
	}
}

func TestRepositoryResolveForUser(t *testing.T) {
	db := setupMembershipTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	today := time.Date(2026, time.March, 12, 14, 0, 0, 0, time.UTC)

	userID := uuid.New()
	expires := today.AddDate(0, 6, 0)
	createRecord(t, db, userID, enums.MembershipTypeFamily, true, today.AddDate(0, -6, 0), &expires)

	resolved, err := repo.ResolveForUser(ctx, userID, today)
	require.NoError(t, err)
	assert.True(t, resolved.Active)
	assert.Equal(t, 10, resolved.DiscountPercentage)
	assert.Equal(t, QuotaFor(string(enums.MembershipTypeFamily)), resolved.TicketQuota)

	guest, err := repo.ResolveForUser(ctx, uuid.New(), today)
	require.NoError(t, err)
	assert.False(t, guest.Active)
	assert.Zero(t, guest.TicketQuota)
}
