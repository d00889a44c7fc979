package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "construlink/internal/domain/subscription/valueobjects"
)

func activeSubWithPeriod(t *testing.T, plan vo.PlanID, cycle vo.BillingCycle, start time.Time) *Subscription {
	t.Helper()
	sub, err := NewSubscription(1, mustPlan(t, plan), cycle, start)
	require.NoError(t, err)
	require.NoError(t, sub.Activate(start))
	return sub
}

func TestCalculateProration(t *testing.T) {
	t.Run("upgrade halfway through a monthly period", func(t *testing.T) {
		start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
		sub := activeSubWithPeriod(t, vo.PlanBasic, vo.CycleMonthly, start)
		now := start.AddDate(0, 0, 15) // 15 of 30 days remain

		basic := mustPlan(t, vo.PlanBasic)
		professional := mustPlan(t, vo.PlanProfessional)

		p := CalculateProration(sub, basic, professional, vo.CycleMonthly, now)

		assert.Equal(t, 15, p.DaysRemaining)
		assert.Equal(t, 30, p.TotalDays)
		// basic 100000/30*15 = 50000, professional 250000/30*15 = 125000
		assert.Equal(t, int64(50000), p.CreditAmount)
		assert.Equal(t, int64(125000), p.NewPlanRemaining)
		assert.Equal(t, int64(75000), p.AmountToPay)
		assert.True(t, p.IsUpgrade)
	})

	t.Run("downgrade never charges", func(t *testing.T) {
		start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
		sub := activeSubWithPeriod(t, vo.PlanProfessional, vo.CycleMonthly, start)
		now := start.AddDate(0, 0, 15)

		professional := mustPlan(t, vo.PlanProfessional)
		basic := mustPlan(t, vo.PlanBasic)

		p := CalculateProration(sub, professional, basic, vo.CycleMonthly, now)

		assert.Equal(t, int64(0), p.AmountToPay)
		assert.False(t, p.IsUpgrade)
		assert.Greater(t, p.CreditAmount, p.NewPlanRemaining)
	})

	t.Run("lapsed period yields zero days and no credit", func(t *testing.T) {
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		sub := activeSubWithPeriod(t, vo.PlanBasic, vo.CycleMonthly, start)
		now := start.AddDate(0, 0, 45) // period ended 15 days ago

		basic := mustPlan(t, vo.PlanBasic)
		professional := mustPlan(t, vo.PlanProfessional)

		p := CalculateProration(sub, basic, professional, vo.CycleMonthly, now)

		assert.Equal(t, 0, p.DaysRemaining)
		assert.Equal(t, int64(0), p.CreditAmount)
		assert.Equal(t, int64(0), p.NewPlanRemaining)
		assert.Equal(t, int64(0), p.AmountToPay)
	})

	t.Run("partial day remaining rounds up", func(t *testing.T) {
		start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
		sub := activeSubWithPeriod(t, vo.PlanBasic, vo.CycleMonthly, start)
		// 14 days and 6 hours remain: counts as 15 days
		now := sub.CurrentPeriodEnd().Add(-14*24*time.Hour - 6*time.Hour)

		basic := mustPlan(t, vo.PlanBasic)
		professional := mustPlan(t, vo.PlanProfessional)

		p := CalculateProration(sub, basic, professional, vo.CycleMonthly, now)
		assert.Equal(t, 15, p.DaysRemaining)
	})

	t.Run("days remaining clamps to period length", func(t *testing.T) {
		start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
		sub := activeSubWithPeriod(t, vo.PlanBasic, vo.CycleMonthly, start)
		// querying before the period even started cannot credit more than a full period
		now := start.AddDate(0, 0, -5)

		basic := mustPlan(t, vo.PlanBasic)
		professional := mustPlan(t, vo.PlanProfessional)

		p := CalculateProration(sub, basic, professional, vo.CycleMonthly, now)
		assert.Equal(t, 30, p.DaysRemaining)
		assert.Equal(t, basic.MonthlyPrice(), p.CreditAmount)
	})

	t.Run("annual to monthly uses each cycle's own period length", func(t *testing.T) {
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		sub := activeSubWithPeriod(t, vo.PlanEnterprise, vo.CycleAnnual, start)
		now := start.AddDate(0, 0, 335) // 30 of 365 days remain

		enterprise := mustPlan(t, vo.PlanEnterprise)
		professional := mustPlan(t, vo.PlanProfessional)

		p := CalculateProration(sub, enterprise, professional, vo.CycleMonthly, now)

		assert.Equal(t, 30, p.DaysRemaining)
		assert.Equal(t, 365, p.TotalDays)
		// credit: 4800000/365*30 rounded; new: 250000/30*30 = full month
		assert.Equal(t, int64(394521), p.CreditAmount)
		assert.Equal(t, int64(250000), p.NewPlanRemaining)
		assert.Equal(t, int64(0), p.AmountToPay)
		assert.False(t, p.IsUpgrade)
	})
}

func TestDailyShare(t *testing.T) {
	assert.Equal(t, int64(500), dailyShare(1000, 30, 15))
	assert.Equal(t, int64(1250), dailyShare(2500, 30, 15))
	assert.Equal(t, int64(0), dailyShare(1000, 30, 0))
	assert.Equal(t, int64(0), dailyShare(1000, 0, 15))
	// rounds to nearest centavo
	assert.Equal(t, int64(333), dailyShare(999, 30, 10))
}
