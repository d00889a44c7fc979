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

type CancelSubscriptionCommand struct {
	SubscriptionSID string
	Reason          string
	Immediate       bool
}

type CancelSubscriptionResult struct {
	Subscription *subscription.Subscription
}

type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	supplierRepo     supplier.Repository
	notifier         Notifier
	clock            Clock
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	supplierRepo supplier.Repository,
	notifier Notifier,
	clock Clock,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		supplierRepo:     supplierRepo,
		notifier:         notifier,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*CancelSubscriptionResult, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, cmd.SubscriptionSID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "sid", cmd.SubscriptionSID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("subscription not found")
	}

	alreadyCancelled := sub.Status() == vo.StatusCancelled

	if err := sub.Cancel(cmd.Reason, cmd.Immediate, uc.clock.Now()); err != nil {
		return nil, apperrors.NewInvalidStateError(err.Error())
	}

	if alreadyCancelled {
		return &CancelSubscriptionResult{Subscription: sub}, nil
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "sid", cmd.SubscriptionSID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	uc.notifyCancellation(ctx, sub)

	uc.logger.Infow("subscription cancelled",
		"subscription_sid", sub.SID(),
		"immediate", cmd.Immediate,
		"reason", cmd.Reason,
	)

	return &CancelSubscriptionResult{Subscription: sub}, nil
}

func (uc *CancelSubscriptionUseCase) notifyCancellation(ctx context.Context, sub *subscription.Subscription) {
	sup, err := uc.supplierRepo.GetByID(ctx, sub.SupplierID())
	if err != nil || sup == nil {
		uc.logger.Warnw("skipping cancellation email, supplier unavailable", "error", err, "supplier_id", sub.SupplierID())
		return
	}

	accessUntil := sub.CurrentPeriodEnd().Format("02/01/2006")
	if sent := uc.notifier.SendSubscriptionCancelled(sup.Email(), sup.DisplayName(), accessUntil); !sent {
		uc.logger.Warnw("cancellation email not sent", "supplier_id", sup.ID(), "subscription_sid", sub.SID())
	}
}
