package usecases

import (
	"context"
	"fmt"

	"construlink/internal/domain/subscription"
	vo "construlink/internal/domain/subscription/valueobjects"
	apperrors "construlink/internal/shared/errors"
	"construlink/internal/shared/logger"
)

type ChangePlanCommand struct {
	SubscriptionSID string
	Plan            string
	BillingCycle    string
}

// ChangePlanResult carries the rewritten subscription plus the proration
// breakdown the billing side charges from.
type ChangePlanResult struct {
	Subscription *subscription.Subscription
	Proration    subscription.Proration
}

type ChangePlanUseCase struct {
	subscriptionRepo subscription.Repository
	clock            Clock
	logger           logger.Interface
}

func NewChangePlanUseCase(
	subscriptionRepo subscription.Repository,
	clock Clock,
	logger logger.Interface,
) *ChangePlanUseCase {
	return &ChangePlanUseCase{
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *ChangePlanUseCase) Execute(ctx context.Context, cmd ChangePlanCommand) (*ChangePlanResult, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, cmd.SubscriptionSID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "sid", cmd.SubscriptionSID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("subscription not found")
	}

	planID, err := vo.ParsePlanID(cmd.Plan)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	newPlan, err := subscription.GetPlan(planID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	newCycle, err := vo.NewBillingCycle(cmd.BillingCycle)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	currentPlan, err := subscription.GetPlan(sub.Plan())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current plan: %w", err)
	}

	now := uc.clock.Now()

	// Proration is computed against the pre-change period; ApplyPlanChange
	// resets the period, so the order here matters.
	proration := subscription.CalculateProration(sub, currentPlan, newPlan, newCycle, now)

	if err := sub.ApplyPlanChange(newPlan, newCycle, now); err != nil {
		return nil, apperrors.NewInvalidStateError(err.Error())
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "sid", cmd.SubscriptionSID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	uc.logger.Infow("plan changed",
		"subscription_sid", sub.SID(),
		"plan", newPlan.ID(),
		"billing_cycle", newCycle,
		"amount_to_pay", proration.AmountToPay,
		"is_upgrade", proration.IsUpgrade,
	)

	return &ChangePlanResult{
		Subscription: sub,
		Proration:    proration,
	}, nil
}
