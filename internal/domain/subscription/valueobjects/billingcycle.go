package valueobjects

import (
	"fmt"
	"strings"
)

// BillingCycle is the cadence a subscription is billed on.
type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleAnnual  BillingCycle = "annual"
)

func (b BillingCycle) String() string {
	return string(b)
}

func (b BillingCycle) IsValid() bool {
	return b == CycleMonthly || b == CycleAnnual
}

// PeriodDays returns the length of one billing period in days.
// Monthly periods are a fixed 30 days, annual periods 365.
func (b BillingCycle) PeriodDays() int {
	if b == CycleAnnual {
		return 365
	}
	return 30
}

// NewBillingCycle parses and validates a raw billing cycle value.
func NewBillingCycle(raw string) (BillingCycle, error) {
	b := BillingCycle(strings.ToLower(strings.TrimSpace(raw)))
	if !b.IsValid() {
		return "", fmt.Errorf("invalid billing cycle: %q", raw)
	}
	return b, nil
}
