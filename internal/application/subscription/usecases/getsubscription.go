package usecases

import (
	"context"
	"fmt"

	"construlink/internal/domain/subscription"
	apperrors "construlink/internal/shared/errors"
	"construlink/internal/shared/logger"
)

type GetSubscriptionQuery struct {
	SID string
}

type GetSubscriptionResult struct {
	Subscription *subscription.Subscription
	HasAccess    bool
}

type GetSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	clock            Clock
	logger           logger.Interface
}

func NewGetSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	clock Clock,
	logger logger.Interface,
) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, query GetSubscriptionQuery) (*GetSubscriptionResult, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, query.SID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "sid", query.SID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("subscription not found")
	}

	return &GetSubscriptionResult{
		Subscription: sub,
		HasAccess:    sub.HasAccess(uc.clock.Now()),
	}, nil
}
