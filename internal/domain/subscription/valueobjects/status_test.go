package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusTrialing, StatusActive, true},
		{StatusTrialing, StatusCancelled, true},
		{StatusTrialing, StatusExpired, true},
		{StatusActive, StatusCancelled, true},
		{StatusActive, StatusTrialing, false},
		{StatusActive, StatusExpired, false},
		{StatusCancelled, StatusActive, true},
		{StatusCancelled, StatusTrialing, false},
		{StatusCancelled, StatusExpired, false},
		{StatusExpired, StatusActive, false},
		{StatusExpired, StatusTrialing, false},
	}

	for _, tc := range cases {
		t.Run(tc.from.String()+"_to_"+tc.to.String(), func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestStatusCanUseService(t *testing.T) {
	assert.True(t, StatusTrialing.CanUseService())
	assert.True(t, StatusActive.CanUseService())
	assert.False(t, StatusCancelled.CanUseService())
	assert.False(t, StatusExpired.CanUseService())
}

func TestLimit(t *testing.T) {
	t.Run("finite limit allows below cap", func(t *testing.T) {
		l := FiniteLimit(5)
		assert.True(t, l.Allows(0))
		assert.True(t, l.Allows(4))
		assert.False(t, l.Allows(5))
		assert.False(t, l.Allows(6))
		assert.Equal(t, "5", l.String())
	})

	t.Run("unlimited always allows", func(t *testing.T) {
		l := UnlimitedLimit()
		assert.True(t, l.Allows(0))
		assert.True(t, l.Allows(1000000))
		assert.True(t, l.IsUnlimited())
		assert.Equal(t, "unlimited", l.String())
	})

	t.Run("negative cap clamps to zero", func(t *testing.T) {
		l := FiniteLimit(-3)
		assert.Equal(t, 0, l.Value())
		assert.False(t, l.Allows(0))
	})

	t.Run("at least ordering", func(t *testing.T) {
		assert.True(t, UnlimitedLimit().AtLeast(FiniteLimit(100)))
		assert.True(t, UnlimitedLimit().AtLeast(UnlimitedLimit()))
		assert.False(t, FiniteLimit(100).AtLeast(UnlimitedLimit()))
		assert.True(t, FiniteLimit(10).AtLeast(FiniteLimit(5)))
		assert.False(t, FiniteLimit(5).AtLeast(FiniteLimit(10)))
	})
}

func TestNewBillingCycle(t *testing.T) {
	monthly, err := NewBillingCycle("Monthly")
	assert.NoError(t, err)
	assert.Equal(t, CycleMonthly, monthly)
	assert.Equal(t, 30, monthly.PeriodDays())

	annual, err := NewBillingCycle(" annual ")
	assert.NoError(t, err)
	assert.Equal(t, CycleAnnual, annual)
	assert.Equal(t, 365, annual.PeriodDays())

	_, err = NewBillingCycle("weekly")
	assert.Error(t, err)
}

func TestParseResourceType(t *testing.T) {
	for _, raw := range []string{"products", "quotes", "specialties", "photos"} {
		r, err := ParseResourceType(raw)
		assert.NoError(t, err)
		assert.Equal(t, raw, r.String())
	}

	_, err := ParseResourceType("downloads")
	assert.Error(t, err)
}

func TestParsePlanID(t *testing.T) {
	for _, raw := range []string{"basic", "professional", "enterprise"} {
		p, err := ParsePlanID(raw)
		assert.NoError(t, err)
		assert.Equal(t, raw, p.String())
	}

	_, err := ParsePlanID("platinum")
	assert.Error(t, err)
}
