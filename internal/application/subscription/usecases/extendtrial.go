package usecases

import (
	"context"
	"fmt"

	"construlink/internal/domain/subscription"
	apperrors "construlink/internal/shared/errors"
	"construlink/internal/shared/logger"
)

type ExtendTrialCommand struct {
	SubscriptionSID string
	AdditionalDays  int
}

type ExtendTrialResult struct {
	Subscription *subscription.Subscription
}

type ExtendTrialUseCase struct {
	subscriptionRepo subscription.Repository
	clock            Clock
	logger           logger.Interface
}

func NewExtendTrialUseCase(
	subscriptionRepo subscription.Repository,
	clock Clock,
	logger logger.Interface,
) *ExtendTrialUseCase {
	return &ExtendTrialUseCase{
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *ExtendTrialUseCase) Execute(ctx context.Context, cmd ExtendTrialCommand) (*ExtendTrialResult, error) {
	if cmd.AdditionalDays <= 0 {
		return nil, apperrors.NewValidationError("additional days must be positive")
	}

	sub, err := uc.subscriptionRepo.GetBySID(ctx, cmd.SubscriptionSID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "sid", cmd.SubscriptionSID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("subscription not found")
	}

	if err := sub.ExtendTrial(cmd.AdditionalDays, uc.clock.Now()); err != nil {
		return nil, apperrors.NewInvalidStateError(err.Error())
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "sid", cmd.SubscriptionSID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	uc.logger.Infow("trial extended",
		"subscription_sid", sub.SID(),
		"additional_days", cmd.AdditionalDays,
		"trial_end_date", sub.TrialEndDate(),
	)

	return &ExtendTrialResult{Subscription: sub}, nil
}
