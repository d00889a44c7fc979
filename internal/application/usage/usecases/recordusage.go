package usecases

import (
	"context"
	"errors"
	"fmt"

	"construlink/internal/domain/subscription"
	vo "construlink/internal/domain/subscription/valueobjects"
	"construlink/internal/domain/supplier"
	"construlink/internal/shared/biztime"
	apperrors "construlink/internal/shared/errors"
	"construlink/internal/shared/logger"
)

type RecordUsageCommand struct {
	SupplierSID string
	Resource    string
	Delta       int
}

type RecordUsageResult struct {
	Usage    *subscription.PlanUsage
	Resource vo.ResourceType
	Limit    vo.Limit
}

// RecordUsageUseCase is the enforcement point: the increment and the cap
// check happen in one atomic storage operation, so concurrent writers can
// neither lose updates nor slip past a finite limit.
type RecordUsageUseCase struct {
	subscriptionRepo subscription.Repository
	usageRepo        subscription.UsageRepository
	supplierRepo     supplier.Repository
	clock            Clock
	logger           logger.Interface
}

func NewRecordUsageUseCase(
	subscriptionRepo subscription.Repository,
	usageRepo subscription.UsageRepository,
	supplierRepo supplier.Repository,
	clock Clock,
	logger logger.Interface,
) *RecordUsageUseCase {
	return &RecordUsageUseCase{
		subscriptionRepo: subscriptionRepo,
		usageRepo:        usageRepo,
		supplierRepo:     supplierRepo,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *RecordUsageUseCase) Execute(ctx context.Context, cmd RecordUsageCommand) (*RecordUsageResult, error) {
	resource, err := vo.ParseResourceType(cmd.Resource)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if cmd.Delta <= 0 {
		return nil, apperrors.NewValidationError("delta must be positive")
	}

	sup, err := uc.supplierRepo.GetBySID(ctx, cmd.SupplierSID)
	if err != nil {
		uc.logger.Errorw("failed to get supplier", "error", err, "supplier_sid", cmd.SupplierSID)
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	if sup == nil {
		return nil, apperrors.NewNotFoundError("supplier not found")
	}

	sub, err := uc.subscriptionRepo.GetBySupplierID(ctx, sup.ID())
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "supplier_id", sup.ID())
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("supplier has no subscription")
	}

	now := uc.clock.Now()
	if !sub.HasAccess(now) {
		return nil, apperrors.NewInvalidStateError("subscription is not active")
	}

	plan, err := subscription.GetPlan(sub.Plan())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve plan: %w", err)
	}
	limit := plan.Limit(resource)

	usage, err := uc.usageRepo.IncrementUsage(ctx, sup.ID(), biztime.MonthKey(now), resource, cmd.Delta, limit)
	if err != nil {
		if errors.Is(err, subscription.ErrLimitExceeded) {
			current := 0
			if snapshot, getErr := uc.usageRepo.GetUsage(ctx, sup.ID(), biztime.MonthKey(now)); getErr == nil && snapshot != nil {
				current = snapshot.Count(resource)
			}
			return nil, apperrors.NewLimitExceededError(
				limitMessage(resource, current, limit, false, plan.ID()),
			)
		}
		uc.logger.Errorw("failed to increment usage", "error", err, "supplier_id", sup.ID(), "resource", resource)
		return nil, fmt.Errorf("failed to increment usage: %w", err)
	}

	uc.logger.Debugw("usage recorded",
		"supplier_id", sup.ID(),
		"resource", resource,
		"delta", cmd.Delta,
		"current", usage.Count(resource),
	)

	return &RecordUsageResult{
		Usage:    usage,
		Resource: resource,
		Limit:    limit,
	}, nil
}
