package handlers

import (
	"github.com/gin-gonic/gin"

	"construlink/internal/application/subscription/usecases"
	apperrors "construlink/internal/shared/errors"
	"construlink/internal/shared/logger"
	"construlink/internal/shared/utils"
)

type SubscriptionHandler struct {
	createUC         *usecases.CreateSubscriptionUseCase
	getUC            *usecases.GetSubscriptionUseCase
	changePlanUC     *usecases.ChangePlanUseCase
	cancelUC         *usecases.CancelSubscriptionUseCase
	reactivateUC     *usecases.ReactivateSubscriptionUseCase
	extendUC         *usecases.ExtendTrialUseCase
	activateUC       *usecases.ActivateSubscriptionUseCase
	paymentFailureUC *usecases.RecordPaymentFailureUseCase
	logger           logger.Interface
}

func NewSubscriptionHandler(
	createUC *usecases.CreateSubscriptionUseCase,
	getUC *usecases.GetSubscriptionUseCase,
	changePlanUC *usecases.ChangePlanUseCase,
	cancelUC *usecases.CancelSubscriptionUseCase,
	reactivateUC *usecases.ReactivateSubscriptionUseCase,
	extendUC *usecases.ExtendTrialUseCase,
	activateUC *usecases.ActivateSubscriptionUseCase,
	paymentFailureUC *usecases.RecordPaymentFailureUseCase,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createUC:         createUC,
		getUC:            getUC,
		changePlanUC:     changePlanUC,
		cancelUC:         cancelUC,
		reactivateUC:     reactivateUC,
		extendUC:         extendUC,
		activateUC:       activateUC,
		paymentFailureUC: paymentFailureUC,
		logger:           logger.NewLogger(),
	}
}

type CreateSubscriptionRequest struct {
	SupplierID   uint   `json:"supplier_id"`
	SupplierSID  string `json:"supplier_sid"`
	Plan         string `json:"plan" binding:"required"`
	BillingCycle string `json:"billing_cycle" binding:"required,oneof=monthly annual"`
}

type ChangePlanRequest struct {
	Plan         string `json:"plan" binding:"required"`
	BillingCycle string `json:"billing_cycle" binding:"required,oneof=monthly annual"`
}

type CancelSubscriptionRequest struct {
	Immediate bool   `json:"immediate"`
	Reason    string `json:"reason" binding:"max=500"`
}

type ExtendTrialRequest struct {
	Days int `json:"days" binding:"required,min=1,max=90"`
}

type ActivateSubscriptionRequest struct {
	AmountPaid int64 `json:"amount_paid" binding:"min=0"`
}

type PaymentFailedRequest struct {
	AmountDue int64 `json:"amount_due" binding:"min=0"`
}

func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}
	if req.SupplierID == 0 && req.SupplierSID == "" {
		utils.ErrorResponseWithError(c, apperrors.NewValidationError("supplier_id or supplier_sid is required"))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateSubscriptionCommand{
		SupplierID:   req.SupplierID,
		SupplierSID:  req.SupplierSID,
		Plan:         req.Plan,
		BillingCycle: req.BillingCycle,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toSubscriptionResponse(result.Subscription), "Subscription created")
}

func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetSubscriptionQuery{
		SID: c.Param("sid"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, toSubscriptionResponseWithAccess(result.Subscription, result.HasAccess))
}

func (h *SubscriptionHandler) ChangePlan(c *gin.Context) {
	var req ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.changePlanUC.Execute(c.Request.Context(), usecases.ChangePlanCommand{
		SubscriptionSID: c.Param("sid"),
		Plan:            req.Plan,
		BillingCycle:    req.BillingCycle,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{
		"subscription": toSubscriptionResponse(result.Subscription),
		"proration":    toProrationResponse(result.Proration),
	})
}

func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	var req CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.cancelUC.Execute(c.Request.Context(), usecases.CancelSubscriptionCommand{
		SubscriptionSID: c.Param("sid"),
		Reason:          req.Reason,
		Immediate:       req.Immediate,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, toSubscriptionResponse(result.Subscription), "Subscription cancelled")
}

func (h *SubscriptionHandler) ReactivateSubscription(c *gin.Context) {
	result, err := h.reactivateUC.Execute(c.Request.Context(), usecases.ReactivateSubscriptionCommand{
		SubscriptionSID: c.Param("sid"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, toSubscriptionResponse(result.Subscription), "Subscription reactivated")
}

func (h *SubscriptionHandler) ExtendTrial(c *gin.Context) {
	var req ExtendTrialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.extendUC.Execute(c.Request.Context(), usecases.ExtendTrialCommand{
		SubscriptionSID: c.Param("sid"),
		AdditionalDays:  req.Days,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, toSubscriptionResponse(result.Subscription), "Trial extended")
}

func (h *SubscriptionHandler) ActivateSubscription(c *gin.Context) {
	var req ActivateSubscriptionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, utils.BindingError(err))
			return
		}
	}

	result, err := h.activateUC.Execute(c.Request.Context(), usecases.ActivateSubscriptionCommand{
		SubscriptionSID: c.Param("sid"),
		AmountPaid:      req.AmountPaid,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, toSubscriptionResponse(result.Subscription), "Subscription activated")
}

func (h *SubscriptionHandler) PaymentFailed(c *gin.Context) {
	var req PaymentFailedRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, utils.BindingError(err))
			return
		}
	}

	result, err := h.paymentFailureUC.Execute(c.Request.Context(), usecases.RecordPaymentFailureCommand{
		SubscriptionSID: c.Param("sid"),
		AmountDue:       req.AmountDue,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, toSubscriptionResponse(result.Subscription), "Payment failure recorded")
}
