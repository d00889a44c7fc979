package usecases

import (
	"context"
	"fmt"
	"time"

	"construlink/internal/domain/subscription"
	vo "construlink/internal/domain/subscription/valueobjects"
	"construlink/internal/domain/supplier"
	"construlink/internal/shared/biztime"
	"construlink/internal/shared/logger"
)

// Dedup kinds, keyed per subscription per day.
const (
	reminderKindTrialReminder = "trial_reminder"
	reminderKindTrialEnded    = "trial_ended"
)

// TrialSweepResult reports what one sweep pass did.
type TrialSweepResult struct {
	Scanned       int
	RemindersSent int
	TrialsEnded   int
}

// ProcessTrialRemindersUseCase walks all trialing subscriptions and fires
// the countdown notifications: a reminder when exactly reminderDays of
// trial remain, and a trial-ended transition to expired when none do.
// The sweep is externally clocked and safe to rerun: the dedup store
// suppresses duplicate emails within the same day, and the expired
// transition is a one-way state change.
type ProcessTrialRemindersUseCase struct {
	subscriptionRepo subscription.Repository
	supplierRepo     supplier.Repository
	notifier         Notifier
	deduper          ReminderDeduper
	clock            Clock
	reminderDays     int
	logger           logger.Interface
}

func NewProcessTrialRemindersUseCase(
	subscriptionRepo subscription.Repository,
	supplierRepo supplier.Repository,
	notifier Notifier,
	deduper ReminderDeduper,
	clock Clock,
	reminderDays int,
	logger logger.Interface,
) *ProcessTrialRemindersUseCase {
	return &ProcessTrialRemindersUseCase{
		subscriptionRepo: subscriptionRepo,
		supplierRepo:     supplierRepo,
		notifier:         notifier,
		deduper:          deduper,
		clock:            clock,
		reminderDays:     reminderDays,
		logger:           logger,
	}
}

func (uc *ProcessTrialRemindersUseCase) Execute(ctx context.Context) (*TrialSweepResult, error) {
	trialing, err := uc.subscriptionRepo.ListByStatus(ctx, vo.StatusTrialing)
	if err != nil {
		return nil, fmt.Errorf("failed to list trialing subscriptions: %w", err)
	}

	now := uc.clock.Now()
	result := &TrialSweepResult{Scanned: len(trialing)}

	for _, sub := range trialing {
		trialEnd := sub.TrialEndDate()
		if trialEnd == nil {
			uc.logger.Warnw("trialing subscription without trial end date", "subscription_sid", sub.SID())
			continue
		}

		daysRemaining := biztime.DaysUntil(now, *trialEnd)
		switch {
		case daysRemaining == 0:
			if uc.endTrial(ctx, sub, now) {
				result.TrialsEnded++
			}
		case daysRemaining == uc.reminderDays:
			if uc.remind(ctx, sub, daysRemaining, now) {
				result.RemindersSent++
			}
		}
	}

	uc.logger.Infow("trial sweep finished",
		"scanned", result.Scanned,
		"reminders_sent", result.RemindersSent,
		"trials_ended", result.TrialsEnded,
	)

	return result, nil
}

func (uc *ProcessTrialRemindersUseCase) remind(ctx context.Context, sub *subscription.Subscription, daysLeft int, now time.Time) bool {
	if !uc.deduper.MarkSent(ctx, sub.ID(), reminderKindTrialReminder, now) {
		return false
	}

	sup, err := uc.supplierRepo.GetByID(ctx, sub.SupplierID())
	if err != nil || sup == nil {
		uc.logger.Warnw("skipping trial reminder, supplier unavailable", "error", err, "supplier_id", sub.SupplierID())
		uc.deduper.Release(ctx, sub.ID(), reminderKindTrialReminder, now)
		return false
	}

	plan, err := subscription.GetPlan(sub.Plan())
	if err != nil {
		uc.logger.Errorw("trialing subscription references unknown plan", "error", err, "subscription_sid", sub.SID())
		uc.deduper.Release(ctx, sub.ID(), reminderKindTrialReminder, now)
		return false
	}

	if sent := uc.notifier.SendTrialReminder(sup.Email(), sup.DisplayName(), plan.Name(), daysLeft, plan.MonthlyPrice()); !sent {
		uc.logger.Warnw("trial reminder not sent", "subscription_sid", sub.SID(), "supplier_id", sup.ID())
		uc.deduper.Release(ctx, sub.ID(), reminderKindTrialReminder, now)
		return false
	}

	uc.logger.Debugw("trial reminder sent", "subscription_sid", sub.SID(), "days_left", daysLeft)
	return true
}

func (uc *ProcessTrialRemindersUseCase) endTrial(ctx context.Context, sub *subscription.Subscription, now time.Time) bool {
	if err := sub.MarkTrialExpired(now); err != nil {
		uc.logger.Warnw("failed to expire trial",
			"subscription_sid", sub.SID(),
			"current_status", sub.Status().String(),
			"error", err,
		)
		return false
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update expired subscription", "error", err, "subscription_sid", sub.SID())
		return false
	}

	// Email after the transition is durable; the dedup key guards reruns
	// that race the status change.
	if uc.deduper.MarkSent(ctx, sub.ID(), reminderKindTrialEnded, now) {
		sent := false
		if sup, err := uc.supplierRepo.GetByID(ctx, sub.SupplierID()); err == nil && sup != nil {
			planName := sub.Plan().String()
			if plan, planErr := subscription.GetPlan(sub.Plan()); planErr == nil {
				planName = plan.Name()
			}
			if sent = uc.notifier.SendTrialEnded(sup.Email(), sup.DisplayName(), planName); !sent {
				uc.logger.Warnw("trial ended email not sent", "subscription_sid", sub.SID(), "supplier_id", sup.ID())
			}
		}
		if !sent {
			uc.deduper.Release(ctx, sub.ID(), reminderKindTrialEnded, now)
		}
	}

	uc.logger.Infow("trial expired", "subscription_sid", sub.SID(), "supplier_id", sub.SupplierID())
	return true
}
