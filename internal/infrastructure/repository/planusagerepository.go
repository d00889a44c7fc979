package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"construlink/internal/domain/subscription"
	vo "construlink/internal/domain/subscription/valueobjects"
	"construlink/internal/infrastructure/persistence/models"
	"construlink/internal/shared/biztime"
	apperrors "construlink/internal/shared/errors"
	"construlink/internal/shared/logger"
)

// usageColumns maps resource types onto their counter columns. Column names
// come from this fixed table only, never from request input.
var usageColumns = map[vo.ResourceType]string{
	vo.ResourceProducts:    "products",
	vo.ResourceQuotes:      "quotes",
	vo.ResourceSpecialties: "specialties",
	vo.ResourcePhotos:      "photos",
}

type PlanUsageRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPlanUsageRepository(db *gorm.DB, logger logger.Interface) subscription.UsageRepository {
	return &PlanUsageRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *PlanUsageRepositoryImpl) GetUsage(ctx context.Context, supplierID uint, monthKey string) (*subscription.PlanUsage, error) {
	var model models.PlanUsageModel
	err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND month_key = ?", supplierID, monthKey).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan usage", "error", err, "supplier_id", supplierID, "month_key", monthKey)
		return nil, fmt.Errorf("failed to get plan usage: %w", err)
	}

	return r.toEntity(&model)
}

// IncrementUsage adds delta to one counter with the cap check folded into the
// same UPDATE, so concurrent writers serialize on the row and none can slip
// past a finite cap. A missing supplier-month row is inserted on first use;
// the insert/update race is resolved by retrying the update once the row is
// known to exist.
func (r *PlanUsageRepositoryImpl) IncrementUsage(ctx context.Context, supplierID uint, monthKey string, resource vo.ResourceType, delta int, cap vo.Limit) (*subscription.PlanUsage, error) {
	column, ok := usageColumns[resource]
	if !ok {
		return nil, fmt.Errorf("invalid resource type: %s", resource)
	}
	if delta <= 0 {
		return nil, fmt.Errorf("delta must be positive")
	}

	// rowExisted records that the supplier-month row was already present
	// before the current attempt's UPDATE ran. A zero-row UPDATE is only a
	// cap rejection when that is known; otherwise the row may simply be
	// missing, or a concurrent writer may have inserted it after the UPDATE.
	rowExisted := false

	for attempt := 0; attempt < 3; attempt++ {
		tx := r.db.WithContext(ctx).
			Model(&models.PlanUsageModel{}).
			Where("supplier_id = ? AND month_key = ?", supplierID, monthKey)
		if !cap.IsUnlimited() {
			tx = tx.Where(fmt.Sprintf("%s + ? <= ?", column), delta, cap.Value())
		}

		result := tx.Updates(map[string]interface{}{
			column:       gorm.Expr(fmt.Sprintf("%s + ?", column), delta),
			"updated_at": biztime.NowUTC(),
		})
		if result.Error != nil {
			r.logger.Errorw("failed to increment plan usage", "error", result.Error, "supplier_id", supplierID, "resource", resource)
			return nil, fmt.Errorf("failed to increment plan usage: %w", result.Error)
		}
		if result.RowsAffected == 1 {
			return r.GetUsage(ctx, supplierID, monthKey)
		}

		if !cap.IsUnlimited() && rowExisted {
			// The row predates this UPDATE, so only the cap condition
			// could have rejected it.
			return nil, subscription.ErrLimitExceeded
		}

		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.PlanUsageModel{}).
			Where("supplier_id = ? AND month_key = ?", supplierID, monthKey).
			Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to check plan usage row: %w", err)
		}
		if count > 0 {
			// The row is there now but was not updated. It may have been
			// inserted by a concurrent writer after our UPDATE ran, so a
			// cap verdict here would be premature. Retry the update
			// against the now-existing row.
			rowExisted = true
			continue
		}

		if !cap.IsUnlimited() && delta > cap.Value() {
			return nil, subscription.ErrLimitExceeded
		}

		now := biztime.NowUTC()
		model := &models.PlanUsageModel{
			SupplierID: supplierID,
			MonthKey:   monthKey,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		switch resource {
		case vo.ResourceProducts:
			model.Products = delta
		case vo.ResourceQuotes:
			model.Quotes = delta
		case vo.ResourceSpecialties:
			model.Specialties = delta
		case vo.ResourcePhotos:
			model.Photos = delta
		}

		err := r.db.WithContext(ctx).Create(model).Error
		if err == nil {
			return r.toEntity(model)
		}
		if apperrors.IsDuplicateError(err) {
			// Another writer inserted the row first; retry the update path.
			rowExisted = true
			continue
		}
		r.logger.Errorw("failed to create plan usage row", "error", err, "supplier_id", supplierID, "month_key", monthKey)
		return nil, fmt.Errorf("failed to create plan usage row: %w", err)
	}

	return nil, fmt.Errorf("failed to increment plan usage for supplier %d after retry", supplierID)
}

func (r *PlanUsageRepositoryImpl) toEntity(model *models.PlanUsageModel) (*subscription.PlanUsage, error) {
	if model == nil {
		return nil, nil
	}
	return subscription.ReconstructPlanUsage(
		model.ID,
		model.SupplierID,
		model.MonthKey,
		model.Products,
		model.Quotes,
		model.Specialties,
		model.Photos,
		model.UpdatedAt,
	)
}
