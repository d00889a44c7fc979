package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "construlink/internal/domain/subscription/valueobjects"
)

func TestGetPlan(t *testing.T) {
	t.Run("returns catalog entry for each tier", func(t *testing.T) {
		for _, id := range []vo.PlanID{vo.PlanBasic, vo.PlanProfessional, vo.PlanEnterprise} {
			plan, err := GetPlan(id)
			require.NoError(t, err)
			require.NotNil(t, plan)
			assert.Equal(t, id, plan.ID())
		}
	})

	t.Run("rejects unknown plan", func(t *testing.T) {
		plan, err := GetPlan(vo.PlanID("platinum"))
		assert.Nil(t, plan)
		assert.ErrorIs(t, err, ErrUnknownPlan)
	})
}

func TestGetPlanByName(t *testing.T) {
	plan, err := GetPlanByName("professional")
	require.NoError(t, err)
	assert.Equal(t, vo.PlanProfessional, plan.ID())

	_, err = GetPlanByName("gold")
	assert.ErrorIs(t, err, ErrUnknownPlan)
}

func TestPlanLimits(t *testing.T) {
	basic, err := GetPlan(vo.PlanBasic)
	require.NoError(t, err)
	professional, err := GetPlan(vo.PlanProfessional)
	require.NoError(t, err)
	enterprise, err := GetPlan(vo.PlanEnterprise)
	require.NoError(t, err)

	t.Run("basic has finite caps on everything", func(t *testing.T) {
		assert.Equal(t, 10, basic.Limit(vo.ResourceProducts).Value())
		assert.Equal(t, 5, basic.Limit(vo.ResourceQuotes).Value())
		assert.Equal(t, 3, basic.Limit(vo.ResourceSpecialties).Value())
		assert.Equal(t, 5, basic.Limit(vo.ResourcePhotos).Value())
		for _, r := range vo.AllResourceTypes {
			assert.False(t, basic.Limit(r).IsUnlimited(), "basic %s should be finite", r)
		}
	})

	t.Run("professional is unlimited on products and quotes only", func(t *testing.T) {
		assert.True(t, professional.Limit(vo.ResourceProducts).IsUnlimited())
		assert.True(t, professional.Limit(vo.ResourceQuotes).IsUnlimited())
		assert.Equal(t, 5, professional.Limit(vo.ResourceSpecialties).Value())
		assert.Equal(t, 20, professional.Limit(vo.ResourcePhotos).Value())
	})

	t.Run("enterprise is unlimited on every resource", func(t *testing.T) {
		for _, r := range vo.AllResourceTypes {
			assert.True(t, enterprise.Limit(r).IsUnlimited(), "enterprise %s should be unlimited", r)
		}
	})

	t.Run("generosity never decreases across tiers", func(t *testing.T) {
		tiers := AllPlans()
		require.Len(t, tiers, 3)
		for i := 1; i < len(tiers); i++ {
			for _, r := range vo.AllResourceTypes {
				assert.True(t, tiers[i].Limit(r).AtLeast(tiers[i-1].Limit(r)),
					"%s %s cap is less generous than %s", tiers[i].ID(), r, tiers[i-1].ID())
			}
			assert.GreaterOrEqual(t, tiers[i].MonthlyPrice(), tiers[i-1].MonthlyPrice())
		}
	})
}

func TestPlanPricing(t *testing.T) {
	t.Run("annual price is 20 percent off twelve months", func(t *testing.T) {
		for _, plan := range AllPlans() {
			expected := plan.MonthlyPrice() * 12 * 8 / 10
			assert.Equal(t, expected, plan.AnnualPrice(), "plan %s", plan.ID())
		}
	})

	t.Run("price for cycle", func(t *testing.T) {
		basic, err := GetPlan(vo.PlanBasic)
		require.NoError(t, err)
		assert.Equal(t, basic.MonthlyPrice(), basic.PriceFor(vo.CycleMonthly))
		assert.Equal(t, basic.AnnualPrice(), basic.PriceFor(vo.CycleAnnual))
	})
}

func TestPlanFeatures(t *testing.T) {
	basic, _ := GetPlan(vo.PlanBasic)
	professional, _ := GetPlan(vo.PlanProfessional)
	enterprise, _ := GetPlan(vo.PlanEnterprise)

	assert.False(t, basic.HasPriority())
	assert.False(t, basic.HasAnalytics())
	assert.False(t, basic.HasAPIAccess())

	assert.True(t, professional.HasPriority())
	assert.True(t, professional.HasAnalytics())
	assert.False(t, professional.HasAPIAccess())

	assert.True(t, enterprise.HasPriority())
	assert.True(t, enterprise.HasAnalytics())
	assert.True(t, enterprise.HasAPIAccess())
}

func TestPlanTrialDays(t *testing.T) {
	basic, _ := GetPlan(vo.PlanBasic)
	professional, _ := GetPlan(vo.PlanProfessional)
	enterprise, _ := GetPlan(vo.PlanEnterprise)

	assert.Equal(t, 14, basic.TrialDays())
	assert.Equal(t, 14, professional.TrialDays())
	assert.Equal(t, 30, enterprise.TrialDays())
}
