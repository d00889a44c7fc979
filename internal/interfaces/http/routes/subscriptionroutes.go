package routes

import (
	"github.com/gin-gonic/gin"

	"construlink/internal/interfaces/http/handlers"
)

type SubscriptionRouteConfig struct {
	SubscriptionHandler *handlers.SubscriptionHandler
}

func SetupSubscriptionRoutes(api *gin.RouterGroup, config *SubscriptionRouteConfig) {
	subs := api.Group("/subscriptions")
	{
		subs.POST("", config.SubscriptionHandler.CreateSubscription)

		// Action endpoints come before the generic :sid fetch.
		subs.POST("/:sid/change-plan", config.SubscriptionHandler.ChangePlan)
		subs.POST("/:sid/cancel", config.SubscriptionHandler.CancelSubscription)
		subs.POST("/:sid/reactivate", config.SubscriptionHandler.ReactivateSubscription)
		subs.POST("/:sid/extend-trial", config.SubscriptionHandler.ExtendTrial)
		subs.POST("/:sid/activate", config.SubscriptionHandler.ActivateSubscription)
		subs.POST("/:sid/payment-failed", config.SubscriptionHandler.PaymentFailed)

		subs.GET("/:sid", config.SubscriptionHandler.GetSubscription)
	}
}
