package usecases

import (
	"context"
	"fmt"

	"construlink/internal/domain/subscription"
	"construlink/internal/domain/supplier"
	apperrors "construlink/internal/shared/errors"
	"construlink/internal/shared/logger"
)

type RecordPaymentFailureCommand struct {
	SubscriptionSID string
	// AmountDue is the charge the payment processor could not collect, in
	// DOP centavos. Zero means "use the subscription's cycle price".
	AmountDue int64
}

type RecordPaymentFailureResult struct {
	Subscription *subscription.Subscription
}

// RecordPaymentFailureUseCase is the payment-failure counterpart of the
// activate glue: the gateway reports a declined charge and the supplier is
// told to update their payment method. The subscription keeps its state;
// the gateway retries the charge on its own schedule and access lapses
// naturally at period end if every retry fails.
type RecordPaymentFailureUseCase struct {
	subscriptionRepo subscription.Repository
	supplierRepo     supplier.Repository
	notifier         Notifier
	logger           logger.Interface
}

func NewRecordPaymentFailureUseCase(
	subscriptionRepo subscription.Repository,
	supplierRepo supplier.Repository,
	notifier Notifier,
	logger logger.Interface,
) *RecordPaymentFailureUseCase {
	return &RecordPaymentFailureUseCase{
		subscriptionRepo: subscriptionRepo,
		supplierRepo:     supplierRepo,
		notifier:         notifier,
		logger:           logger,
	}
}

func (uc *RecordPaymentFailureUseCase) Execute(ctx context.Context, cmd RecordPaymentFailureCommand) (*RecordPaymentFailureResult, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, cmd.SubscriptionSID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "sid", cmd.SubscriptionSID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("subscription not found")
	}

	sup, err := uc.supplierRepo.GetByID(ctx, sub.SupplierID())
	if err != nil || sup == nil {
		uc.logger.Warnw("skipping payment failure email, supplier unavailable", "error", err, "supplier_id", sub.SupplierID())
		return &RecordPaymentFailureResult{Subscription: sub}, nil
	}

	amount := cmd.AmountDue
	if amount == 0 {
		if plan, planErr := subscription.GetPlan(sub.Plan()); planErr == nil {
			amount = plan.PriceFor(sub.BillingCycle())
		}
	}

	if sent := uc.notifier.SendPaymentFailed(sup.Email(), sup.DisplayName(), amount); !sent {
		uc.logger.Warnw("payment failure email not sent", "supplier_id", sup.ID(), "subscription_sid", sub.SID())
	}

	uc.logger.Infow("payment failure recorded", "subscription_sid", sub.SID(), "supplier_id", sub.SupplierID())

	return &RecordPaymentFailureResult{Subscription: sub}, nil
}
