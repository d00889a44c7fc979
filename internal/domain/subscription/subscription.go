package subscription

import (
	"fmt"
	"time"

	vo "construlink/internal/domain/subscription/valueobjects"
)

// Subscription is the aggregate root for a supplier's paid membership.
// All state changes go through methods that consult the status transition
// table; callers never mutate fields directly.
type Subscription struct {
	id                 uint
	sid                string
	supplierID         uint
	plan               vo.PlanID
	billingCycle       vo.BillingCycle
	status             vo.Status
	trialEndDate       *time.Time
	trialDays          int
	currentPeriodStart time.Time
	currentPeriodEnd   time.Time
	monthlyAmount      int64
	cancelledAt        *time.Time
	cancelReason       *string
	metadata           map[string]interface{}
	version            int
	createdAt          time.Time
	updatedAt          time.Time
}

// NewSubscription creates a trialing subscription for a supplier.
// The first billing period starts immediately; the trial clock runs from
// the plan's trial length.
func NewSubscription(supplierID uint, plan *Plan, cycle vo.BillingCycle, now time.Time) (*Subscription, error) {
	if supplierID == 0 {
		return nil, fmt.Errorf("supplier ID is required")
	}
	if plan == nil {
		return nil, fmt.Errorf("plan is required")
	}
	if !cycle.IsValid() {
		return nil, fmt.Errorf("invalid billing cycle: %s", cycle)
	}

	now = now.UTC()
	trialEnd := now.AddDate(0, 0, plan.TrialDays())

	return &Subscription{
		supplierID:         supplierID,
		plan:               plan.ID(),
		billingCycle:       cycle,
		status:             vo.StatusTrialing,
		trialEndDate:       &trialEnd,
		trialDays:          plan.TrialDays(),
		currentPeriodStart: now,
		currentPeriodEnd:   now.AddDate(0, 0, cycle.PeriodDays()),
		monthlyAmount:      plan.MonthlyPrice(),
		metadata:           make(map[string]interface{}),
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// ReconstructParams carries persisted state back into the aggregate.
type ReconstructParams struct {
	ID                 uint
	SID                string
	SupplierID         uint
	Plan               vo.PlanID
	BillingCycle       vo.BillingCycle
	Status             vo.Status
	TrialEndDate       *time.Time
	TrialDays          int
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	MonthlyAmount      int64
	CancelledAt        *time.Time
	CancelReason       *string
	Metadata           map[string]interface{}
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(p ReconstructParams) (*Subscription, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if p.SupplierID == 0 {
		return nil, fmt.Errorf("supplier ID is required")
	}
	if !p.Plan.IsValid() {
		return nil, fmt.Errorf("invalid plan: %s", p.Plan)
	}
	if !p.BillingCycle.IsValid() {
		return nil, fmt.Errorf("invalid billing cycle: %s", p.BillingCycle)
	}
	if !vo.ValidStatuses[p.Status] {
		return nil, fmt.Errorf("invalid subscription status: %s", p.Status)
	}
	if p.Status == vo.StatusTrialing && p.TrialEndDate == nil {
		return nil, fmt.Errorf("trialing subscription must have a trial end date")
	}

	metadata := p.Metadata
	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &Subscription{
		id:                 p.ID,
		sid:                p.SID,
		supplierID:         p.SupplierID,
		plan:               p.Plan,
		billingCycle:       p.BillingCycle,
		status:             p.Status,
		trialEndDate:       p.TrialEndDate,
		trialDays:          p.TrialDays,
		currentPeriodStart: p.CurrentPeriodStart,
		currentPeriodEnd:   p.CurrentPeriodEnd,
		monthlyAmount:      p.MonthlyAmount,
		cancelledAt:        p.CancelledAt,
		cancelReason:       p.CancelReason,
		metadata:           metadata,
		version:            p.Version,
		createdAt:          p.CreatedAt,
		updatedAt:          p.UpdatedAt,
	}, nil
}

func (s *Subscription) ID() uint                      { return s.id }
func (s *Subscription) SID() string                   { return s.sid }
func (s *Subscription) SupplierID() uint              { return s.supplierID }
func (s *Subscription) Plan() vo.PlanID               { return s.plan }
func (s *Subscription) BillingCycle() vo.BillingCycle { return s.billingCycle }
func (s *Subscription) Status() vo.Status             { return s.status }
func (s *Subscription) TrialEndDate() *time.Time      { return s.trialEndDate }
func (s *Subscription) TrialDays() int                { return s.trialDays }
func (s *Subscription) CurrentPeriodStart() time.Time { return s.currentPeriodStart }
func (s *Subscription) CurrentPeriodEnd() time.Time   { return s.currentPeriodEnd }
func (s *Subscription) MonthlyAmount() int64          { return s.monthlyAmount }
func (s *Subscription) CancelledAt() *time.Time       { return s.cancelledAt }
func (s *Subscription) CancelReason() *string         { return s.cancelReason }
func (s *Subscription) Metadata() map[string]interface{} { return s.metadata }
func (s *Subscription) Version() int                  { return s.version }
func (s *Subscription) CreatedAt() time.Time          { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time          { return s.updatedAt }

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// SetSID sets the external identifier (only for persistence layer use)
func (s *Subscription) SetSID(sid string) error {
	if s.sid != "" {
		return fmt.Errorf("subscription SID is already set")
	}
	if sid == "" {
		return fmt.Errorf("subscription SID cannot be empty")
	}
	s.sid = sid
	return nil
}

func (s *Subscription) transitionTo(target vo.Status) error {
	if !s.status.CanTransitionTo(target) {
		return fmt.Errorf("invalid status transition from %s to %s", s.status, target)
	}
	s.status = target
	return nil
}

func (s *Subscription) touch(now time.Time) {
	s.updatedAt = now.UTC()
	s.version++
}

// Activate converts a trialing subscription into a paying one, typically
// after a successful first payment. A cancelled subscription is revived
// through Reactivate, which resets the period and clears the cancellation;
// this path only resolves trials.
func (s *Subscription) Activate(now time.Time) error {
	if s.status == vo.StatusActive {
		return nil
	}
	if s.status != vo.StatusTrialing {
		return fmt.Errorf("cannot activate subscription with status %s: subscription must be trialing", s.status)
	}
	if err := s.transitionTo(vo.StatusActive); err != nil {
		return err
	}
	s.touch(now)
	return nil
}

// ApplyPlanChange rewrites the subscription with a new plan and cycle and a
// fresh billing period starting now. Trialing subscriptions cannot change
// plan; the trial must resolve first.
func (s *Subscription) ApplyPlanChange(newPlan *Plan, newCycle vo.BillingCycle, now time.Time) error {
	if newPlan == nil {
		return fmt.Errorf("new plan is required")
	}
	if !newCycle.IsValid() {
		return fmt.Errorf("invalid billing cycle: %s", newCycle)
	}
	if s.status == vo.StatusTrialing {
		return fmt.Errorf("cannot change plan while trialing: subscription must be active")
	}
	if s.status != vo.StatusActive {
		return fmt.Errorf("cannot change plan with status %s: subscription must be active", s.status)
	}

	now = now.UTC()
	s.plan = newPlan.ID()
	s.billingCycle = newCycle
	s.monthlyAmount = newPlan.MonthlyPrice()
	s.currentPeriodStart = now
	s.currentPeriodEnd = now.AddDate(0, 0, newCycle.PeriodDays())
	s.touch(now)
	return nil
}

// Cancel ends the subscription. Immediate cancellation revokes access right
// away by collapsing the period end to now; otherwise the period end is left
// untouched and access survives until it lapses.
func (s *Subscription) Cancel(reason string, immediate bool, now time.Time) error {
	if s.status == vo.StatusCancelled {
		return nil
	}
	if err := s.transitionTo(vo.StatusCancelled); err != nil {
		return err
	}

	now = now.UTC()
	s.cancelledAt = &now
	if reason != "" {
		s.cancelReason = &reason
	}
	if immediate {
		s.currentPeriodEnd = now
	}
	s.touch(now)
	return nil
}

// Reactivate restores a cancelled subscription with a brand-new period
// starting now. Remaining time from the cancelled period is forfeited.
func (s *Subscription) Reactivate(now time.Time) error {
	if s.status != vo.StatusCancelled {
		return fmt.Errorf("cannot reactivate subscription with status %s: subscription must be cancelled", s.status)
	}
	if err := s.transitionTo(vo.StatusActive); err != nil {
		return err
	}

	now = now.UTC()
	s.cancelledAt = nil
	s.cancelReason = nil
	s.currentPeriodStart = now
	s.currentPeriodEnd = now.AddDate(0, 0, s.billingCycle.PeriodDays())
	s.touch(now)
	return nil
}

// ExtendTrial pushes the trial end date out by additionalDays and keeps the
// running trial total in step.
func (s *Subscription) ExtendTrial(additionalDays int, now time.Time) error {
	if s.status != vo.StatusTrialing {
		return fmt.Errorf("cannot extend trial with status %s: subscription must be trialing", s.status)
	}
	if additionalDays <= 0 {
		return fmt.Errorf("additional days must be positive")
	}

	extended := s.trialEndDate.AddDate(0, 0, additionalDays)
	s.trialEndDate = &extended
	s.trialDays += additionalDays
	s.touch(now)
	return nil
}

// MarkTrialExpired ends an unconverted trial.
func (s *Subscription) MarkTrialExpired(now time.Time) error {
	if s.status != vo.StatusTrialing {
		return fmt.Errorf("cannot expire trial with status %s: subscription must be trialing", s.status)
	}
	if err := s.transitionTo(vo.StatusExpired); err != nil {
		return err
	}
	s.touch(now)
	return nil
}

// HasAccess reports whether the supplier may use paid features at the given
// instant. A subscription cancelled at period end keeps access until the
// original period lapses.
func (s *Subscription) HasAccess(now time.Time) bool {
	if s.status.CanUseService() {
		return true
	}
	return s.status == vo.StatusCancelled && now.UTC().Before(s.currentPeriodEnd)
}

// Validate performs domain-level validation
func (s *Subscription) Validate() error {
	if s.supplierID == 0 {
		return fmt.Errorf("supplier ID is required")
	}
	if !s.plan.IsValid() {
		return fmt.Errorf("invalid plan: %s", s.plan)
	}
	if !vo.ValidStatuses[s.status] {
		return fmt.Errorf("invalid status: %s", s.status)
	}
	if s.status == vo.StatusTrialing && s.trialEndDate == nil {
		return fmt.Errorf("trialing subscription must have a trial end date")
	}
	if s.currentPeriodEnd.Before(s.currentPeriodStart) {
		return fmt.Errorf("current period end must be after current period start")
	}
	return nil
}
