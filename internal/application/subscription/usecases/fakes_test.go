package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"construlink/internal/domain/subscription"
	vo "construlink/internal/domain/subscription/valueobjects"
	"construlink/internal/domain/supplier"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type memSubscriptionRepo struct {
	mu     sync.Mutex
	byID   map[uint]*subscription.Subscription
	nextID uint
}

func newMemSubscriptionRepo() *memSubscriptionRepo {
	return &memSubscriptionRepo{byID: make(map[uint]*subscription.Subscription), nextID: 1}
}

func (r *memSubscriptionRepo) Create(ctx context.Context, sub *subscription.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.SupplierID() == sub.SupplierID() {
			return fmt.Errorf("UNIQUE constraint failed: subscriptions.supplier_id")
		}
	}

	id := r.nextID
	r.nextID++
	if err := sub.SetID(id); err != nil {
		return err
	}
	if err := sub.SetSID(fmt.Sprintf("sub_test%06d", id)); err != nil {
		return err
	}
	r.byID[id] = sub
	return nil
}

func (r *memSubscriptionRepo) Update(ctx context.Context, sub *subscription.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[sub.ID()]; !ok {
		return fmt.Errorf("subscription %d not found", sub.ID())
	}
	r.byID[sub.ID()] = sub
	return nil
}

func (r *memSubscriptionRepo) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *memSubscriptionRepo) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sub := range r.byID {
		if sub.SID() == sid {
			return sub, nil
		}
	}
	return nil, nil
}

func (r *memSubscriptionRepo) GetBySupplierID(ctx context.Context, supplierID uint) (*subscription.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sub := range r.byID {
		if sub.SupplierID() == supplierID {
			return sub, nil
		}
	}
	return nil, nil
}

func (r *memSubscriptionRepo) ListByStatus(ctx context.Context, status vo.Status) ([]*subscription.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*subscription.Subscription
	for id := uint(1); id < r.nextID; id++ {
		if sub, ok := r.byID[id]; ok && sub.Status() == status {
			out = append(out, sub)
		}
	}
	return out, nil
}

type memSupplierRepo struct {
	mu     sync.Mutex
	byID   map[uint]*supplier.Supplier
	nextID uint
}

func newMemSupplierRepo() *memSupplierRepo {
	return &memSupplierRepo{byID: make(map[uint]*supplier.Supplier), nextID: 1}
}

func (r *memSupplierRepo) Create(ctx context.Context, s *supplier.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	if err := s.SetID(id); err != nil {
		return err
	}
	if err := s.SetSID(fmt.Sprintf("sup_test%06d", id)); err != nil {
		return err
	}
	r.byID[id] = s
	return nil
}

func (r *memSupplierRepo) GetByID(ctx context.Context, id uint) (*supplier.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *memSupplierRepo) GetBySID(ctx context.Context, sid string) (*supplier.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.byID {
		if s.SID() == sid {
			return s, nil
		}
	}
	return nil, nil
}

type notifierCall struct {
	kind string
	to   string
}

type fakeNotifier struct {
	mu       sync.Mutex
	calls    []notifierCall
	failNext bool
}

func (n *fakeNotifier) record(kind, to string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failNext {
		n.failNext = false
		return false
	}
	n.calls = append(n.calls, notifierCall{kind: kind, to: to})
	return true
}

func (n *fakeNotifier) sent(kind string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, c := range n.calls {
		if c.kind == kind {
			count++
		}
	}
	return count
}

func (n *fakeNotifier) SendWelcomeEmail(to, supplierName, planName string, trialDays int) bool {
	return n.record("welcome", to)
}

func (n *fakeNotifier) SendTrialReminder(to, supplierName, planName string, daysLeft int, monthlyPrice int64) bool {
	return n.record("trial_reminder", to)
}

func (n *fakeNotifier) SendTrialEnded(to, supplierName, planName string) bool {
	return n.record("trial_ended", to)
}

func (n *fakeNotifier) SendPaymentSuccess(to, supplierName string, amount int64) bool {
	return n.record("payment_success", to)
}

func (n *fakeNotifier) SendPaymentFailed(to, supplierName string, amount int64) bool {
	return n.record("payment_failed", to)
}

func (n *fakeNotifier) SendSubscriptionCancelled(to, supplierName string, accessUntil string) bool {
	return n.record("cancelled", to)
}

type fakeDeduper struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newFakeDeduper() *fakeDeduper {
	return &fakeDeduper{seen: make(map[string]bool)}
}

func (d *fakeDeduper) MarkSent(ctx context.Context, subscriptionID uint, kind string, day time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := fmt.Sprintf("%s:%d:%s", kind, subscriptionID, day.UTC().Format("2006-01-02"))
	if d.seen[key] {
		return false
	}
	d.seen[key] = true
	return true
}

func (d *fakeDeduper) Release(ctx context.Context, subscriptionID uint, kind string, day time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.seen, fmt.Sprintf("%s:%d:%s", kind, subscriptionID, day.UTC().Format("2006-01-02")))
}
