package usecases

import (
	"context"
	"fmt"

	"construlink/internal/domain/subscription"
	vo "construlink/internal/domain/subscription/valueobjects"
	"construlink/internal/domain/supplier"
	apperrors "construlink/internal/shared/errors"
	"construlink/internal/shared/logger"
)

type CreateSubscriptionCommand struct {
	SupplierID   uint   // Internal supplier ID (used if SupplierSID is empty)
	SupplierSID  string // Stripe-style supplier SID (takes precedence over SupplierID)
	Plan         string
	BillingCycle string
}

type CreateSubscriptionResult struct {
	Subscription *subscription.Subscription
}

type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	supplierRepo     supplier.Repository
	notifier         Notifier
	clock            Clock
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	supplierRepo supplier.Repository,
	notifier Notifier,
	clock Clock,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		supplierRepo:     supplierRepo,
		notifier:         notifier,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*CreateSubscriptionResult, error) {
	sup, err := uc.resolveSupplier(ctx, cmd)
	if err != nil {
		return nil, err
	}

	existing, err := uc.subscriptionRepo.GetBySupplierID(ctx, sup.ID())
	if err != nil {
		uc.logger.Errorw("failed to check existing subscription", "error", err, "supplier_id", sup.ID())
		return nil, fmt.Errorf("failed to check existing subscription: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("supplier already has a subscription", existing.SID())
	}

	planID, err := vo.ParsePlanID(cmd.Plan)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	plan, err := subscription.GetPlan(planID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	cycle, err := vo.NewBillingCycle(cmd.BillingCycle)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	sub, err := subscription.NewSubscription(sup.ID(), plan, cycle, uc.clock.Now())
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.subscriptionRepo.Create(ctx, sub); err != nil {
		if apperrors.IsDuplicateError(err) {
			return nil, apperrors.NewConflictError("supplier already has a subscription")
		}
		uc.logger.Errorw("failed to create subscription", "error", err, "supplier_id", sup.ID())
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	if sent := uc.notifier.SendWelcomeEmail(sup.Email(), sup.DisplayName(), plan.Name(), plan.TrialDays()); !sent {
		uc.logger.Warnw("welcome email not sent", "supplier_id", sup.ID(), "subscription_sid", sub.SID())
	}

	uc.logger.Infow("subscription created",
		"subscription_sid", sub.SID(),
		"supplier_id", sup.ID(),
		"plan", plan.ID(),
		"billing_cycle", cycle,
	)

	return &CreateSubscriptionResult{Subscription: sub}, nil
}

func (uc *CreateSubscriptionUseCase) resolveSupplier(ctx context.Context, cmd CreateSubscriptionCommand) (*supplier.Supplier, error) {
	var sup *supplier.Supplier
	var err error

	if cmd.SupplierSID != "" {
		sup, err = uc.supplierRepo.GetBySID(ctx, cmd.SupplierSID)
	} else {
		sup, err = uc.supplierRepo.GetByID(ctx, cmd.SupplierID)
	}
	if err != nil {
		uc.logger.Errorw("failed to get supplier", "error", err, "supplier_id", cmd.SupplierID, "supplier_sid", cmd.SupplierSID)
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	if sup == nil {
		return nil, apperrors.NewNotFoundError("supplier not found")
	}
	return sup, nil
}
