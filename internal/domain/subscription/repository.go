package subscription

import (
	"context"

	vo "construlink/internal/domain/subscription/valueobjects"
)

// Repository is the persistence contract for subscriptions.
// Implementations return (nil, nil) when a record does not exist.
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	Update(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	GetBySID(ctx context.Context, sid string) (*Subscription, error)
	GetBySupplierID(ctx context.Context, supplierID uint) (*Subscription, error)
	ListByStatus(ctx context.Context, status vo.Status) ([]*Subscription, error)
}

// UsageRepository is the persistence contract for monthly usage counters.
type UsageRepository interface {
	// GetUsage returns the usage row for a supplier-month, or (nil, nil)
	// when the supplier has consumed nothing that month. Callers treat
	// absence as all-zero counters, not as an error.
	GetUsage(ctx context.Context, supplierID uint, monthKey string) (*PlanUsage, error)

	// IncrementUsage atomically upserts the supplier-month row and adds
	// delta to the named counter, enforcing cap inside the same storage
	// operation. A finite cap that would be passed aborts the increment
	// with ErrLimitExceeded; concurrent increments must serialize so no
	// update is lost. Pass an unlimited cap to skip enforcement.
	IncrementUsage(ctx context.Context, supplierID uint, monthKey string, resource vo.ResourceType, delta int, cap vo.Limit) (*PlanUsage, error)
}
