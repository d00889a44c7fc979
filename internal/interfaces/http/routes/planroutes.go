package routes

import (
	"github.com/gin-gonic/gin"

	"construlink/internal/interfaces/http/handlers"
)

type PlanRouteConfig struct {
	PlanHandler *handlers.PlanHandler
}

func SetupPlanRoutes(api *gin.RouterGroup, config *PlanRouteConfig) {
	plans := api.Group("/plans")
	{
		plans.GET("", config.PlanHandler.ListPlans)
		plans.GET("/:id", config.PlanHandler.GetPlan)
	}
}
