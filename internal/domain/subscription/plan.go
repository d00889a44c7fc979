package subscription

import (
	"errors"
	"fmt"

	vo "construlink/internal/domain/subscription/valueobjects"
)

// ErrUnknownPlan is returned when a plan identifier is not in the catalog.
var ErrUnknownPlan = errors.New("unknown plan")

// annualDiscount is the fraction of twelve monthly payments an annual
// subscriber actually pays. Catalog annual prices materialize this rate.
const annualDiscount = 0.80

// Plan is one catalog tier. Plans are immutable: the catalog is built once
// at package init and only read afterwards.
type Plan struct {
	id           vo.PlanID
	name         string
	monthlyPrice int64 // DOP centavos
	annualPrice  int64 // DOP centavos
	trialDays    int
	limits       map[vo.ResourceType]vo.Limit
	hasPriority  bool
	hasAnalytics bool
	hasAPIAccess bool
}

func (p *Plan) ID() vo.PlanID        { return p.id }
func (p *Plan) Name() string         { return p.name }
func (p *Plan) MonthlyPrice() int64  { return p.monthlyPrice }
func (p *Plan) AnnualPrice() int64   { return p.annualPrice }
func (p *Plan) TrialDays() int       { return p.trialDays }
func (p *Plan) HasPriority() bool    { return p.hasPriority }
func (p *Plan) HasAnalytics() bool   { return p.hasAnalytics }
func (p *Plan) HasAPIAccess() bool   { return p.hasAPIAccess }

// Limit returns the cap for the given resource.
func (p *Plan) Limit(resource vo.ResourceType) vo.Limit {
	limit, ok := p.limits[resource]
	if !ok {
		// Unknown resources are never limited; callers validate resource
		// types before reaching the catalog.
		return vo.UnlimitedLimit()
	}
	return limit
}

// PriceFor returns the price in centavos for one period of the given cycle.
func (p *Plan) PriceFor(cycle vo.BillingCycle) int64 {
	if cycle == vo.CycleAnnual {
		return p.annualPrice
	}
	return p.monthlyPrice
}

func annualPrice(monthly int64) int64 {
	return int64(float64(monthly*12) * annualDiscount)
}

// catalog holds the three tiers sold to suppliers. Limits cover the
// directory resources a supplier consumes each month: published products,
// received quote requests, listed specialties, and project photos.
var catalog = map[vo.PlanID]*Plan{
	vo.PlanBasic: {
		id:           vo.PlanBasic,
		name:         "Basic",
		monthlyPrice: 100000,
		annualPrice:  annualPrice(100000),
		trialDays:    14,
		limits: map[vo.ResourceType]vo.Limit{
			vo.ResourceProducts:    vo.FiniteLimit(10),
			vo.ResourceQuotes:      vo.FiniteLimit(5),
			vo.ResourceSpecialties: vo.FiniteLimit(3),
			vo.ResourcePhotos:      vo.FiniteLimit(5),
		},
	},
	vo.PlanProfessional: {
		id:           vo.PlanProfessional,
		name:         "Professional",
		monthlyPrice: 250000,
		annualPrice:  annualPrice(250000),
		trialDays:    14,
		limits: map[vo.ResourceType]vo.Limit{
			vo.ResourceProducts:    vo.UnlimitedLimit(),
			vo.ResourceQuotes:      vo.UnlimitedLimit(),
			vo.ResourceSpecialties: vo.FiniteLimit(5),
			vo.ResourcePhotos:      vo.FiniteLimit(20),
		},
		hasPriority:  true,
		hasAnalytics: true,
	},
	vo.PlanEnterprise: {
		id:           vo.PlanEnterprise,
		name:         "Enterprise",
		monthlyPrice: 500000,
		annualPrice:  annualPrice(500000),
		trialDays:    30,
		limits: map[vo.ResourceType]vo.Limit{
			vo.ResourceProducts:    vo.UnlimitedLimit(),
			vo.ResourceQuotes:      vo.UnlimitedLimit(),
			vo.ResourceSpecialties: vo.UnlimitedLimit(),
			vo.ResourcePhotos:      vo.UnlimitedLimit(),
		},
		hasPriority:  true,
		hasAnalytics: true,
		hasAPIAccess: true,
	},
}

// planOrder lists tiers from least to most generous.
var planOrder = []vo.PlanID{vo.PlanBasic, vo.PlanProfessional, vo.PlanEnterprise}

// GetPlan looks up a catalog tier by identifier.
func GetPlan(id vo.PlanID) (*Plan, error) {
	plan, ok := catalog[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlan, id)
	}
	return plan, nil
}

// GetPlanByName parses and looks up a tier from a raw identifier.
func GetPlanByName(raw string) (*Plan, error) {
	id, err := vo.ParsePlanID(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlan, raw)
	}
	return GetPlan(id)
}

// AllPlans returns the catalog ordered basic, professional, enterprise.
func AllPlans() []*Plan {
	plans := make([]*Plan, 0, len(planOrder))
	for _, id := range planOrder {
		plans = append(plans, catalog[id])
	}
	return plans
}
