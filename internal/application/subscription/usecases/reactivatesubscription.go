package usecases

import (
	"context"
	"fmt"

	"construlink/internal/domain/subscription"
	apperrors "construlink/internal/shared/errors"
	"construlink/internal/shared/logger"
)

type ReactivateSubscriptionCommand struct {
	SubscriptionSID string
}

type ReactivateSubscriptionResult struct {
	Subscription *subscription.Subscription
}

type ReactivateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	clock            Clock
	logger           logger.Interface
}

func NewReactivateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	clock Clock,
	logger logger.Interface,
) *ReactivateSubscriptionUseCase {
	return &ReactivateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *ReactivateSubscriptionUseCase) Execute(ctx context.Context, cmd ReactivateSubscriptionCommand) (*ReactivateSubscriptionResult, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, cmd.SubscriptionSID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "sid", cmd.SubscriptionSID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("subscription not found")
	}

	if err := sub.Reactivate(uc.clock.Now()); err != nil {
		return nil, apperrors.NewInvalidStateError(err.Error())
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "sid", cmd.SubscriptionSID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	uc.logger.Infow("subscription reactivated", "subscription_sid", sub.SID(), "period_end", sub.CurrentPeriodEnd())

	return &ReactivateSubscriptionResult{Subscription: sub}, nil
}
