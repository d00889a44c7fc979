package subscription

import (
	"time"

	"construlink/internal/shared/biztime"

	vo "construlink/internal/domain/subscription/valueobjects"
)

// Proration is the cost breakdown of a mid-period plan change. Amounts are
// in DOP centavos. Payment collection is the gateway's job; this type only
// reports what is owed.
type Proration struct {
	DaysRemaining      int
	TotalDays          int
	CreditAmount       int64
	NewPlanRemaining   int64
	AmountToPay        int64
	IsUpgrade          bool
}

// CalculateProration determines the charge for switching a subscription to
// newPlan/newCycle at the given instant.
//
// The unused slice of the current period is credited at the current plan's
// daily rate, and the same remaining window is priced at the new plan's
// daily rate; the supplier pays the difference, floored at zero. Days
// remaining are counted in whole days, rounded up, and clamped to
// [0, totalDays] so an already-lapsed period yields no credit rather than a
// negative one.
func CalculateProration(sub *Subscription, currentPlan, newPlan *Plan, newCycle vo.BillingCycle, now time.Time) Proration {
	totalDays := sub.BillingCycle().PeriodDays()
	newTotalDays := newCycle.PeriodDays()

	daysRemaining := biztime.DaysUntil(now, sub.CurrentPeriodEnd())
	if daysRemaining > totalDays {
		daysRemaining = totalDays
	}

	currentPrice := currentPlan.PriceFor(sub.BillingCycle())
	newPrice := newPlan.PriceFor(newCycle)

	credit := dailyShare(currentPrice, totalDays, daysRemaining)
	newRemaining := dailyShare(newPrice, newTotalDays, daysRemaining)

	amountToPay := newRemaining - credit
	if amountToPay < 0 {
		amountToPay = 0
	}

	return Proration{
		DaysRemaining:    daysRemaining,
		TotalDays:        totalDays,
		CreditAmount:     credit,
		NewPlanRemaining: newRemaining,
		AmountToPay:      amountToPay,
		IsUpgrade:        newPlan.MonthlyPrice() > currentPlan.MonthlyPrice(),
	}
}

// dailyShare prices days out of a period worth price centavos, rounding to
// the nearest centavo.
func dailyShare(price int64, periodDays, days int) int64 {
	if periodDays <= 0 || days <= 0 {
		return 0
	}
	return (price*int64(days) + int64(periodDays)/2) / int64(periodDays)
}
