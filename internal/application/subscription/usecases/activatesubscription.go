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

type ActivateSubscriptionCommand struct {
	SubscriptionSID string
	// AmountPaid is what the payment processor collected, in DOP centavos.
	// Zero means "use the subscription's cycle price" (trial conversions).
	AmountPaid int64
}

type ActivateSubscriptionResult struct {
	Subscription *subscription.Subscription
}

// ActivateSubscriptionUseCase is the payment-success glue: the gateway
// confirms a charge and the subscription moves from trialing to active.
type ActivateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	supplierRepo     supplier.Repository
	notifier         Notifier
	clock            Clock
	logger           logger.Interface
}

func NewActivateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	supplierRepo supplier.Repository,
	notifier Notifier,
	clock Clock,
	logger logger.Interface,
) *ActivateSubscriptionUseCase {
	return &ActivateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		supplierRepo:     supplierRepo,
		notifier:         notifier,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *ActivateSubscriptionUseCase) Execute(ctx context.Context, cmd ActivateSubscriptionCommand) (*ActivateSubscriptionResult, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, cmd.SubscriptionSID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "sid", cmd.SubscriptionSID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("subscription not found")
	}

	if sub.Status() == vo.StatusActive {
		return &ActivateSubscriptionResult{Subscription: sub}, nil
	}

	if err := sub.Activate(uc.clock.Now()); err != nil {
		return nil, apperrors.NewInvalidStateError(err.Error())
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "sid", cmd.SubscriptionSID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	uc.notifyPayment(ctx, sub, cmd.AmountPaid)

	uc.logger.Infow("subscription activated", "subscription_sid", sub.SID(), "supplier_id", sub.SupplierID())

	return &ActivateSubscriptionResult{Subscription: sub}, nil
}

func (uc *ActivateSubscriptionUseCase) notifyPayment(ctx context.Context, sub *subscription.Subscription, amountPaid int64) {
	sup, err := uc.supplierRepo.GetByID(ctx, sub.SupplierID())
	if err != nil || sup == nil {
		uc.logger.Warnw("skipping payment email, supplier unavailable", "error", err, "supplier_id", sub.SupplierID())
		return
	}

	amount := amountPaid
	if amount == 0 {
		if plan, planErr := subscription.GetPlan(sub.Plan()); planErr == nil {
			amount = plan.PriceFor(sub.BillingCycle())
		}
	}

	if sent := uc.notifier.SendPaymentSuccess(sup.Email(), sup.DisplayName(), amount); !sent {
		uc.logger.Warnw("payment success email not sent", "supplier_id", sup.ID(), "subscription_sid", sub.SID())
	}
}
