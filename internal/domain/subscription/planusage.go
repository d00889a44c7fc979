package subscription

import (
	"errors"
	"fmt"
	"time"

	"construlink/internal/shared/biztime"

	vo "construlink/internal/domain/subscription/valueobjects"
)

// ErrLimitExceeded is returned by the usage repository when an increment
// would pass a finite plan cap.
var ErrLimitExceeded = errors.New("plan limit exceeded")

// PlanUsage tracks resources a supplier consumed in one calendar month.
// Counters are append-only within a month: deleting a product does not free
// its slot, usage means "created this month". A new month gets a fresh row;
// old rows are superseded, never merged.
type PlanUsage struct {
	id         uint
	supplierID uint
	monthKey   string
	counters   map[vo.ResourceType]int
	updatedAt  time.Time
}

// NewPlanUsage creates an all-zero usage record for a supplier-month.
func NewPlanUsage(supplierID uint, monthKey string) (*PlanUsage, error) {
	if supplierID == 0 {
		return nil, fmt.Errorf("supplier ID cannot be zero")
	}
	if err := biztime.ValidateMonthKey(monthKey); err != nil {
		return nil, err
	}

	return &PlanUsage{
		supplierID: supplierID,
		monthKey:   monthKey,
		counters:   zeroCounters(),
		updatedAt:  biztime.NowUTC(),
	}, nil
}

// ReconstructPlanUsage rebuilds a usage record from persistence.
func ReconstructPlanUsage(id, supplierID uint, monthKey string, products, quotes, specialties, photos int, updatedAt time.Time) (*PlanUsage, error) {
	if id == 0 {
		return nil, fmt.Errorf("usage ID cannot be zero")
	}
	if supplierID == 0 {
		return nil, fmt.Errorf("supplier ID cannot be zero")
	}
	if err := biztime.ValidateMonthKey(monthKey); err != nil {
		return nil, err
	}
	if products < 0 || quotes < 0 || specialties < 0 || photos < 0 {
		return nil, fmt.Errorf("usage counters cannot be negative")
	}

	return &PlanUsage{
		id:         id,
		supplierID: supplierID,
		monthKey:   monthKey,
		counters: map[vo.ResourceType]int{
			vo.ResourceProducts:    products,
			vo.ResourceQuotes:      quotes,
			vo.ResourceSpecialties: specialties,
			vo.ResourcePhotos:      photos,
		},
		updatedAt: updatedAt,
	}, nil
}

func zeroCounters() map[vo.ResourceType]int {
	counters := make(map[vo.ResourceType]int, len(vo.AllResourceTypes))
	for _, r := range vo.AllResourceTypes {
		counters[r] = 0
	}
	return counters
}

func (u *PlanUsage) ID() uint             { return u.id }
func (u *PlanUsage) SupplierID() uint     { return u.supplierID }
func (u *PlanUsage) MonthKey() string     { return u.monthKey }
func (u *PlanUsage) UpdatedAt() time.Time { return u.updatedAt }

// Count returns the consumed amount for one resource.
func (u *PlanUsage) Count(resource vo.ResourceType) int {
	return u.counters[resource]
}

// Increment adds delta to a counter. Deltas must be positive; usage never
// decreases within a month.
func (u *PlanUsage) Increment(resource vo.ResourceType, delta int) error {
	if !resource.IsValid() {
		return fmt.Errorf("invalid resource type: %s", resource)
	}
	if delta <= 0 {
		return fmt.Errorf("delta must be positive")
	}
	u.counters[resource] += delta
	u.updatedAt = biztime.NowUTC()
	return nil
}

// HasUsage reports whether any counter is non-zero.
func (u *PlanUsage) HasUsage() bool {
	for _, n := range u.counters {
		if n > 0 {
			return true
		}
	}
	return false
}

// SetID sets the usage ID (only for persistence layer use)
func (u *PlanUsage) SetID(id uint) error {
	if id == 0 {
		return fmt.Errorf("usage ID cannot be zero")
	}
	u.id = id
	return nil
}
