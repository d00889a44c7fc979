package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"construlink/internal/domain/subscription"
	vo "construlink/internal/domain/subscription/valueobjects"
	"construlink/internal/infrastructure/persistence/models"
	"construlink/internal/shared/id"
	"construlink/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.Repository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, sub *subscription.Subscription) error {
	model, err := r.toModel(sub)
	if err != nil {
		return fmt.Errorf("failed to convert subscription to model: %w", err)
	}

	if model.SID == "" {
		model.SID = id.MustGenerateWithPrefix(id.PrefixSubscription, id.DefaultLength)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription", "error", err, "supplier_id", sub.SupplierID())
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := sub.SetID(model.ID); err != nil {
		return err
	}
	if err := sub.SetSID(model.SID); err != nil {
		return err
	}

	r.logger.Infow("subscription created", "subscription_id", model.ID, "sid", model.SID, "supplier_id", sub.SupplierID())
	return nil
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, sub *subscription.Subscription) error {
	model, err := r.toModel(sub)
	if err != nil {
		return fmt.Errorf("failed to convert subscription to model: %w", err)
	}

	// Optimistic locking: the update only lands if nobody bumped the
	// version since this aggregate was loaded.
	result := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"plan":                 model.Plan,
			"billing_cycle":        model.BillingCycle,
			"status":               model.Status,
			"trial_end_date":       model.TrialEndDate,
			"trial_days":           model.TrialDays,
			"current_period_start": model.CurrentPeriodStart,
			"current_period_end":   model.CurrentPeriodEnd,
			"monthly_amount":       model.MonthlyAmount,
			"cancelled_at":         model.CancelledAt,
			"cancel_reason":        model.CancelReason,
			"metadata":             model.Metadata,
			"version":              model.Version,
			"updated_at":           model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "error", result.Error, "subscription_id", model.ID)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("subscription %d was modified concurrently", model.ID)
	}

	return nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, subID uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	err := r.db.WithContext(ctx).First(&model, subID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription", "error", err, "subscription_id", subID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.toEntity(&model)
}

func (r *SubscriptionRepositoryImpl) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by SID", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get subscription by SID: %w", err)
	}

	return r.toEntity(&model)
}

func (r *SubscriptionRepositoryImpl) GetBySupplierID(ctx context.Context, supplierID uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	err := r.db.WithContext(ctx).Where("supplier_id = ?", supplierID).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by supplier", "error", err, "supplier_id", supplierID)
		return nil, fmt.Errorf("failed to get subscription by supplier: %w", err)
	}

	return r.toEntity(&model)
}

func (r *SubscriptionRepositoryImpl) ListByStatus(ctx context.Context, status vo.Status) ([]*subscription.Subscription, error) {
	var subModels []*models.SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("status = ?", status.String()).
		Order("id ASC").
		Find(&subModels).Error
	if err != nil {
		r.logger.Errorw("failed to list subscriptions by status", "error", err, "status", status)
		return nil, fmt.Errorf("failed to list subscriptions by status: %w", err)
	}

	subs := make([]*subscription.Subscription, 0, len(subModels))
	for _, model := range subModels {
		sub, err := r.toEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to convert model ID %d: %w", model.ID, err)
		}
		subs = append(subs, sub)
	}

	return subs, nil
}

func (r *SubscriptionRepositoryImpl) toEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	var metadata map[string]interface{}
	if len(model.Metadata) > 0 {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal subscription metadata: %w", err)
		}
	}

	return subscription.ReconstructSubscription(subscription.ReconstructParams{
		ID:                 model.ID,
		SID:                model.SID,
		SupplierID:         model.SupplierID,
		Plan:               vo.PlanID(model.Plan),
		BillingCycle:       vo.BillingCycle(model.BillingCycle),
		Status:             vo.Status(model.Status),
		TrialEndDate:       model.TrialEndDate,
		TrialDays:          model.TrialDays,
		CurrentPeriodStart: model.CurrentPeriodStart,
		CurrentPeriodEnd:   model.CurrentPeriodEnd,
		MonthlyAmount:      model.MonthlyAmount,
		CancelledAt:        model.CancelledAt,
		CancelReason:       model.CancelReason,
		Metadata:           metadata,
		Version:            model.Version,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	})
}

func (r *SubscriptionRepositoryImpl) toModel(sub *subscription.Subscription) (*models.SubscriptionModel, error) {
	if sub == nil {
		return nil, nil
	}

	var metadata datatypes.JSON
	if len(sub.Metadata()) > 0 {
		raw, err := json.Marshal(sub.Metadata())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal subscription metadata: %w", err)
		}
		metadata = raw
	}

	return &models.SubscriptionModel{
		ID:                 sub.ID(),
		SID:                sub.SID(),
		SupplierID:         sub.SupplierID(),
		Plan:               sub.Plan().String(),
		BillingCycle:       sub.BillingCycle().String(),
		Status:             sub.Status().String(),
		TrialEndDate:       sub.TrialEndDate(),
		TrialDays:          sub.TrialDays(),
		CurrentPeriodStart: sub.CurrentPeriodStart(),
		CurrentPeriodEnd:   sub.CurrentPeriodEnd(),
		MonthlyAmount:      sub.MonthlyAmount(),
		CancelledAt:        sub.CancelledAt(),
		CancelReason:       sub.CancelReason(),
		Metadata:           metadata,
		Version:            sub.Version(),
		CreatedAt:          sub.CreatedAt(),
		UpdatedAt:          sub.UpdatedAt(),
	}, nil
}
