package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"construlink/internal/domain/subscription"
	vo "construlink/internal/domain/subscription/valueobjects"
	"construlink/internal/domain/supplier"
	"construlink/internal/infrastructure/persistence/models"
	"construlink/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Serialize access: in-memory sqlite returns busy errors under
	// concurrent writers, which the MySQL target never does.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.SupplierModel{}, &models.SubscriptionModel{}, &models.PlanUsageModel{})
	require.NoError(t, err)

	return db
}

func createTestSubscription(t *testing.T, supplierID uint, planID vo.PlanID) *subscription.Subscription {
	t.Helper()

	plan, err := subscription.GetPlan(planID)
	require.NoError(t, err)
	sub, err := subscription.NewSubscription(supplierID, plan, vo.CycleMonthly, time.Now().UTC())
	require.NoError(t, err)
	return sub
}

func TestSubscriptionRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("create assigns ID and prefixed SID", func(t *testing.T) {
		sub := createTestSubscription(t, 1, vo.PlanBasic)

		err := repo.Create(ctx, sub)
		require.NoError(t, err)
		assert.NotZero(t, sub.ID())
		assert.Contains(t, sub.SID(), "sub_")
	})

	t.Run("second subscription for same supplier fails", func(t *testing.T) {
		first := createTestSubscription(t, 2, vo.PlanBasic)
		require.NoError(t, repo.Create(ctx, first))

		second := createTestSubscription(t, 2, vo.PlanProfessional)
		err := repo.Create(ctx, second)
		assert.Error(t, err)
	})
}

func TestSubscriptionRepository_Get(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, logger.NewLogger())
	ctx := context.Background()

	sub := createTestSubscription(t, 10, vo.PlanProfessional)
	require.NoError(t, repo.Create(ctx, sub))

	t.Run("get by ID round-trips the aggregate", func(t *testing.T) {
		found, err := repo.GetByID(ctx, sub.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, sub.SID(), found.SID())
		assert.Equal(t, vo.PlanProfessional, found.Plan())
		assert.Equal(t, vo.StatusTrialing, found.Status())
		assert.Equal(t, sub.MonthlyAmount(), found.MonthlyAmount())
		require.NotNil(t, found.TrialEndDate())
	})

	t.Run("get by SID", func(t *testing.T) {
		found, err := repo.GetBySID(ctx, sub.SID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, sub.ID(), found.ID())
	})

	t.Run("get by supplier ID", func(t *testing.T) {
		found, err := repo.GetBySupplierID(ctx, 10)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, sub.ID(), found.ID())
	})

	t.Run("missing records return nil without error", func(t *testing.T) {
		found, err := repo.GetByID(ctx, 99999)
		assert.NoError(t, err)
		assert.Nil(t, found)

		found, err = repo.GetBySID(ctx, "sub_doesnotexist")
		assert.NoError(t, err)
		assert.Nil(t, found)

		found, err = repo.GetBySupplierID(ctx, 99999)
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestSubscriptionRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("update persists state transitions", func(t *testing.T) {
		sub := createTestSubscription(t, 20, vo.PlanBasic)
		require.NoError(t, repo.Create(ctx, sub))

		require.NoError(t, sub.Activate(time.Now().UTC()))
		require.NoError(t, repo.Update(ctx, sub))

		found, err := repo.GetByID(ctx, sub.ID())
		require.NoError(t, err)
		assert.Equal(t, vo.StatusActive, found.Status())
		assert.Equal(t, sub.Version(), found.Version())
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		sub := createTestSubscription(t, 21, vo.PlanBasic)
		require.NoError(t, repo.Create(ctx, sub))

		copy1, err := repo.GetByID(ctx, sub.ID())
		require.NoError(t, err)
		copy2, err := repo.GetByID(ctx, sub.ID())
		require.NoError(t, err)

		require.NoError(t, copy1.Activate(time.Now().UTC()))
		require.NoError(t, repo.Update(ctx, copy1))

		require.NoError(t, copy2.Cancel("changing provider", false, time.Now().UTC()))
		err = repo.Update(ctx, copy2)
		assert.Error(t, err)
	})
}

func TestSubscriptionRepository_ListByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, logger.NewLogger())
	ctx := context.Background()

	trialing := createTestSubscription(t, 30, vo.PlanBasic)
	require.NoError(t, repo.Create(ctx, trialing))

	active := createTestSubscription(t, 31, vo.PlanEnterprise)
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, active.Activate(time.Now().UTC()))
	require.NoError(t, repo.Update(ctx, active))

	got, err := repo.ListByStatus(ctx, vo.StatusTrialing)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, trialing.ID(), got[0].ID())

	got, err = repo.ListByStatus(ctx, vo.StatusActive)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, active.ID(), got[0].ID())

	got, err = repo.ListByStatus(ctx, vo.StatusExpired)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPlanUsageRepository_IncrementUsage(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanUsageRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("first increment creates the month row", func(t *testing.T) {
		usage, err := repo.IncrementUsage(ctx, 1, "2026-08", vo.ResourceProducts, 1, vo.FiniteLimit(10))
		require.NoError(t, err)
		assert.Equal(t, 1, usage.Count(vo.ResourceProducts))
		assert.Equal(t, 0, usage.Count(vo.ResourceQuotes))
	})

	t.Run("subsequent increments accumulate", func(t *testing.T) {
		usage, err := repo.IncrementUsage(ctx, 1, "2026-08", vo.ResourceProducts, 3, vo.FiniteLimit(10))
		require.NoError(t, err)
		assert.Equal(t, 4, usage.Count(vo.ResourceProducts))
	})

	t.Run("increment past a finite cap is rejected", func(t *testing.T) {
		_, err := repo.IncrementUsage(ctx, 1, "2026-08", vo.ResourceProducts, 7, vo.FiniteLimit(10))
		assert.ErrorIs(t, err, subscription.ErrLimitExceeded)

		// Counter untouched by the rejected increment.
		usage, err := repo.GetUsage(ctx, 1, "2026-08")
		require.NoError(t, err)
		assert.Equal(t, 4, usage.Count(vo.ResourceProducts))
	})

	t.Run("increment exactly up to the cap succeeds", func(t *testing.T) {
		usage, err := repo.IncrementUsage(ctx, 1, "2026-08", vo.ResourceProducts, 6, vo.FiniteLimit(10))
		require.NoError(t, err)
		assert.Equal(t, 10, usage.Count(vo.ResourceProducts))

		_, err = repo.IncrementUsage(ctx, 1, "2026-08", vo.ResourceProducts, 1, vo.FiniteLimit(10))
		assert.ErrorIs(t, err, subscription.ErrLimitExceeded)
	})

	t.Run("unlimited cap never rejects", func(t *testing.T) {
		usage, err := repo.IncrementUsage(ctx, 1, "2026-08", vo.ResourceQuotes, 5000, vo.UnlimitedLimit())
		require.NoError(t, err)
		assert.Equal(t, 5000, usage.Count(vo.ResourceQuotes))
	})

	t.Run("first increment over the cap is rejected", func(t *testing.T) {
		_, err := repo.IncrementUsage(ctx, 2, "2026-08", vo.ResourcePhotos, 25, vo.FiniteLimit(20))
		assert.ErrorIs(t, err, subscription.ErrLimitExceeded)

		usage, err := repo.GetUsage(ctx, 2, "2026-08")
		require.NoError(t, err)
		assert.Nil(t, usage)
	})

	t.Run("months are isolated", func(t *testing.T) {
		_, err := repo.IncrementUsage(ctx, 1, "2026-09", vo.ResourceProducts, 2, vo.FiniteLimit(10))
		require.NoError(t, err)

		aug, err := repo.GetUsage(ctx, 1, "2026-08")
		require.NoError(t, err)
		assert.Equal(t, 10, aug.Count(vo.ResourceProducts))

		sep, err := repo.GetUsage(ctx, 1, "2026-09")
		require.NoError(t, err)
		assert.Equal(t, 2, sep.Count(vo.ResourceProducts))
	})

	t.Run("invalid delta is rejected", func(t *testing.T) {
		_, err := repo.IncrementUsage(ctx, 1, "2026-08", vo.ResourceProducts, 0, vo.FiniteLimit(10))
		assert.Error(t, err)
		assert.False(t, errors.Is(err, subscription.ErrLimitExceeded))
	})
}

func TestPlanUsageRepository_ConcurrentIncrements(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanUsageRepository(db, logger.NewLogger())
	ctx := context.Background()

	const writers = 100

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.IncrementUsage(ctx, 50, "2026-08", vo.ResourceQuotes, 1, vo.UnlimitedLimit())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	usage, err := repo.GetUsage(ctx, 50, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, writers, usage.Count(vo.ResourceQuotes))
}

func TestPlanUsageRepository_ConcurrentIncrementsRespectCap(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanUsageRepository(db, logger.NewLogger())
	ctx := context.Background()

	const writers = 30
	const limit = 10

	var wg sync.WaitGroup
	var accepted, rejected int
	var mu sync.Mutex
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.IncrementUsage(ctx, 60, "2026-08", vo.ResourceProducts, 1, vo.FiniteLimit(limit))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, subscription.ErrLimitExceeded):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, accepted)
	assert.Equal(t, writers-limit, rejected)

	usage, err := repo.GetUsage(ctx, 60, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, limit, usage.Count(vo.ResourceProducts))
}

// registerRowAppearance inserts a usage row the moment the repository runs
// its row-existence check, simulating a concurrent writer that wins the
// first insert of the month in the window between the conditional UPDATE
// and the check.
func registerRowAppearance(t *testing.T, db *gorm.DB, row *models.PlanUsageModel) {
	t.Helper()

	armed := true
	err := db.Callback().Query().Before("gorm:query").Register("test_row_appearance", func(tx *gorm.DB) {
		if !armed || tx.Statement.Table != "plan_usages" {
			return
		}
		armed = false
		require.NoError(t, db.Create(row).Error)
	})
	require.NoError(t, err)
}

func TestPlanUsageRepository_FirstIncrementLosesInsertRace(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("unlimited cap retries against the new row", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlanUsageRepository(db, logger.NewLogger())
		registerRowAppearance(t, db, &models.PlanUsageModel{
			SupplierID: 70, MonthKey: "2026-08", Products: 7,
			CreatedAt: now, UpdatedAt: now,
		})

		usage, err := repo.IncrementUsage(ctx, 70, "2026-08", vo.ResourceProducts, 1, vo.UnlimitedLimit())
		require.NoError(t, err)
		assert.Equal(t, 8, usage.Count(vo.ResourceProducts))
	})

	t.Run("finite cap with headroom retries against the new row", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlanUsageRepository(db, logger.NewLogger())
		registerRowAppearance(t, db, &models.PlanUsageModel{
			SupplierID: 71, MonthKey: "2026-08", Products: 7,
			CreatedAt: now, UpdatedAt: now,
		})

		usage, err := repo.IncrementUsage(ctx, 71, "2026-08", vo.ResourceProducts, 1, vo.FiniteLimit(10))
		require.NoError(t, err)
		assert.Equal(t, 8, usage.Count(vo.ResourceProducts))
	})

	t.Run("finite cap already filled by the racing writer rejects", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlanUsageRepository(db, logger.NewLogger())
		registerRowAppearance(t, db, &models.PlanUsageModel{
			SupplierID: 72, MonthKey: "2026-08", Products: 10,
			CreatedAt: now, UpdatedAt: now,
		})

		_, err := repo.IncrementUsage(ctx, 72, "2026-08", vo.ResourceProducts, 1, vo.FiniteLimit(10))
		require.ErrorIs(t, err, subscription.ErrLimitExceeded)

		usage, err := repo.GetUsage(ctx, 72, "2026-08")
		require.NoError(t, err)
		assert.Equal(t, 10, usage.Count(vo.ResourceProducts))
	})
}

func TestSupplierRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSupplierRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("create and fetch", func(t *testing.T) {
		s, err := supplier.NewSupplier("Ferretería El Progreso", "María Santos", "maria@elprogreso.do", "130-12345-6")
		require.NoError(t, err)

		require.NoError(t, repo.Create(ctx, s))
		assert.NotZero(t, s.ID())
		assert.Contains(t, s.SID(), "sup_")

		found, err := repo.GetByID(ctx, s.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Ferretería El Progreso", found.BusinessName())
		assert.Equal(t, "María Santos", found.DisplayName())

		bySID, err := repo.GetBySID(ctx, s.SID())
		require.NoError(t, err)
		require.NotNil(t, bySID)
		assert.Equal(t, s.ID(), bySID.ID())
	})

	t.Run("missing supplier returns nil", func(t *testing.T) {
		found, err := repo.GetByID(ctx, 4242)
		assert.NoError(t, err)
		assert.Nil(t, found)
	})
}
