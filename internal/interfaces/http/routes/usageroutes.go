package routes

import (
	"github.com/gin-gonic/gin"

	"construlink/internal/interfaces/http/handlers"
)

type UsageRouteConfig struct {
	UsageHandler *handlers.UsageHandler
}

func SetupUsageRoutes(api *gin.RouterGroup, config *UsageRouteConfig) {
	suppliers := api.Group("/suppliers")
	{
		suppliers.GET("/:sid/limits/:resource", config.UsageHandler.CheckLimit)
		suppliers.POST("/:sid/usage", config.UsageHandler.RecordUsage)
		suppliers.GET("/:sid/usage", config.UsageHandler.GetUsage)
	}
}
