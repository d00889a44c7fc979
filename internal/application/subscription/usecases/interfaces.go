package usecases

import (
	"context"
	"time"

	"construlink/internal/shared/biztime"
)

// Notifier sends lifecycle emails. All sends are best effort: a false
// return means the email did not go out, and callers log and move on.
type Notifier interface {
	SendWelcomeEmail(to, supplierName, planName string, trialDays int) bool
	SendTrialReminder(to, supplierName, planName string, daysLeft int, monthlyPrice int64) bool
	SendTrialEnded(to, supplierName, planName string) bool
	SendPaymentSuccess(to, supplierName string, amount int64) bool
	SendPaymentFailed(to, supplierName string, amount int64) bool
	SendSubscriptionCancelled(to, supplierName string, accessUntil string) bool
}

// ReminderDeduper suppresses duplicate trial notifications when the sweep
// reruns within the same day. Implementations must fail open: on store
// errors they report true so a notification is never silently dropped.
// Release gives the day's claim back when the send did not go out, so a
// later rerun can retry instead of staying suppressed until tomorrow.
type ReminderDeduper interface {
	MarkSent(ctx context.Context, subscriptionID uint, kind string, day time.Time) bool
	Release(ctx context.Context, subscriptionID uint, kind string, day time.Time)
}

// Clock abstracts wall-clock time so lifecycle rules can be tested at
// fixed instants.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return biztime.NowUTC() }

// SystemClock returns a Clock backed by the wall clock in UTC.
func SystemClock() Clock { return realClock{} }
