package handlers

import (
	"github.com/gin-gonic/gin"

	"construlink/internal/domain/subscription"
	vo "construlink/internal/domain/subscription/valueobjects"
	apperrors "construlink/internal/shared/errors"
	"construlink/internal/shared/logger"
	"construlink/internal/shared/utils"
)

// PlanHandler serves the compiled-in plan catalog: the public pricing page
// reads from here.
type PlanHandler struct {
	logger logger.Interface
}

func NewPlanHandler() *PlanHandler {
	return &PlanHandler{
		logger: logger.NewLogger(),
	}
}

type PlanResponse struct {
	ID                  string                 `json:"id"`
	Name                string                 `json:"name"`
	MonthlyPrice        int64                  `json:"monthly_price"`
	AnnualPrice         int64                  `json:"annual_price"`
	Currency            string                 `json:"currency"`
	MonthlyPriceDisplay string                 `json:"monthly_price_display"`
	AnnualPriceDisplay  string                 `json:"annual_price_display"`
	TrialDays           int                    `json:"trial_days"`
	Limits              map[string]interface{} `json:"limits"`
	HasPriority         bool                   `json:"has_priority"`
	HasAnalytics        bool                   `json:"has_analytics"`
	HasAPIAccess        bool                   `json:"has_api_access"`
}

func toPlanResponse(plan *subscription.Plan) PlanResponse {
	limits := make(map[string]interface{}, len(vo.AllResourceTypes))
	for _, resource := range vo.AllResourceTypes {
		limits[resource.String()] = limitValue(plan.Limit(resource))
	}

	return PlanResponse{
		ID:                  plan.ID().String(),
		Name:                plan.Name(),
		MonthlyPrice:        plan.MonthlyPrice(),
		AnnualPrice:         plan.AnnualPrice(),
		Currency:            "DOP",
		MonthlyPriceDisplay: utils.FormatPrice(plan.MonthlyPrice(), "DOP"),
		AnnualPriceDisplay:  utils.FormatPrice(plan.AnnualPrice(), "DOP"),
		TrialDays:           plan.TrialDays(),
		Limits:              limits,
		HasPriority:         plan.HasPriority(),
		HasAnalytics:        plan.HasAnalytics(),
		HasAPIAccess:        plan.HasAPIAccess(),
	}
}

// limitValue renders a limit for JSON: a number, or "unlimited".
func limitValue(l vo.Limit) interface{} {
	if l.IsUnlimited() {
		return "unlimited"
	}
	return l.Value()
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans := subscription.AllPlans()
	responses := make([]PlanResponse, 0, len(plans))
	for _, plan := range plans {
		responses = append(responses, toPlanResponse(plan))
	}

	utils.OKResponse(c, gin.H{"plans": responses})
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	plan, err := subscription.GetPlanByName(c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, apperrors.NewNotFoundError("plan not found", c.Param("id")))
		return
	}

	utils.OKResponse(c, toPlanResponse(plan))
}
