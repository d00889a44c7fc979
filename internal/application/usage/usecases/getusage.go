package usecases

import (
	"context"
	"fmt"

	"construlink/internal/domain/subscription"
	vo "construlink/internal/domain/subscription/valueobjects"
	"construlink/internal/domain/supplier"
	"construlink/internal/shared/biztime"
	apperrors "construlink/internal/shared/errors"
	"construlink/internal/shared/logger"
)

type GetUsageQuery struct {
	SupplierSID string
	// MonthKey selects a billing month (YYYY-MM); empty means current.
	MonthKey string
}

type ResourceUsage struct {
	Resource vo.ResourceType
	Current  int
	Limit    vo.Limit
}

type GetUsageResult struct {
	MonthKey  string
	Resources []ResourceUsage
}

type GetUsageUseCase struct {
	subscriptionRepo subscription.Repository
	usageRepo        subscription.UsageRepository
	supplierRepo     supplier.Repository
	clock            Clock
	logger           logger.Interface
}

func NewGetUsageUseCase(
	subscriptionRepo subscription.Repository,
	usageRepo subscription.UsageRepository,
	supplierRepo supplier.Repository,
	clock Clock,
	logger logger.Interface,
) *GetUsageUseCase {
	return &GetUsageUseCase{
		subscriptionRepo: subscriptionRepo,
		usageRepo:        usageRepo,
		supplierRepo:     supplierRepo,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *GetUsageUseCase) Execute(ctx context.Context, query GetUsageQuery) (*GetUsageResult, error) {
	monthKey := query.MonthKey
	if monthKey == "" {
		monthKey = biztime.MonthKey(uc.clock.Now())
	} else if err := biztime.ValidateMonthKey(monthKey); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	sup, err := uc.supplierRepo.GetBySID(ctx, query.SupplierSID)
	if err != nil {
		uc.logger.Errorw("failed to get supplier", "error", err, "supplier_sid", query.SupplierSID)
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

	plan, err := subscription.GetPlan(sub.Plan())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve plan: %w", err)
	}

	usage, err := uc.usageRepo.GetUsage(ctx, sup.ID(), monthKey)
	if err != nil {
		uc.logger.Errorw("failed to get usage", "error", err, "supplier_id", sup.ID(), "month_key", monthKey)
		return nil, fmt.Errorf("failed to get usage: %w", err)
	}

	resources := make([]ResourceUsage, 0, len(vo.AllResourceTypes))
	for _, resource := range vo.AllResourceTypes {
		current := 0
		if usage != nil {
			current = usage.Count(resource)
		}
		resources = append(resources, ResourceUsage{
			Resource: resource,
			Current:  current,
			Limit:    plan.Limit(resource),
		})
	}

	return &GetUsageResult{
		MonthKey:  monthKey,
		Resources: resources,
	}, nil
}
