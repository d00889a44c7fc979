// Package cache holds Redis-backed stores supporting the sweep machinery.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"construlink/internal/shared/logger"
)

const (
	reminderDedupPrefix = "trial_sweep:sent:"
	reminderDedupTTL    = 48 * time.Hour
)

// ReminderDedupStore suppresses duplicate trial notifications when the sweep
// runs more than once on the same calendar day. Keys are SETNX'd per
// (subscription, kind, day); if Redis is unreachable the sweep degrades to
// at-least-once rather than skipping notifications.
type ReminderDedupStore struct {
	client *redis.Client
	logger logger.Interface
}

func NewReminderDedupStore(client *redis.Client, logger logger.Interface) *ReminderDedupStore {
	return &ReminderDedupStore{
		client: client,
		logger: logger.Named("reminder-dedup"),
	}
}

// MarkSent records that a notification of the given kind went out for the
// subscription today. Returns true when this caller won the key, false when
// an earlier sweep already sent it. Redis errors report true so the
// notification is never silently dropped.
func (s *ReminderDedupStore) MarkSent(ctx context.Context, subscriptionID uint, kind string, day time.Time) bool {
	key := fmt.Sprintf("%s%s:%d:%s", reminderDedupPrefix, kind, subscriptionID, day.UTC().Format("2006-01-02"))

	won, err := s.client.SetNX(ctx, key, 1, reminderDedupTTL).Result()
	if err != nil {
		s.logger.Warnw("dedup check failed, sending anyway", "error", err, "key", key)
		return true
	}
	return won
}

// Release gives the day's key back after a failed send so a rerun can retry
// the notification. Best effort: if the delete fails the key expires with
// its TTL and the notification waits until the next day.
func (s *ReminderDedupStore) Release(ctx context.Context, subscriptionID uint, kind string, day time.Time) {
	key := fmt.Sprintf("%s%s:%d:%s", reminderDedupPrefix, kind, subscriptionID, day.UTC().Format("2006-01-02"))

	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.Warnw("failed to release dedup key", "error", err, "key", key)
	}
}
