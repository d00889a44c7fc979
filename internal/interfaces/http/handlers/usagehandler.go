package handlers

import (
	"github.com/gin-gonic/gin"

	"construlink/internal/application/usage/usecases"
	"construlink/internal/shared/logger"
	"construlink/internal/shared/utils"
)

type UsageHandler struct {
	checkLimitUC *usecases.CheckLimitUseCase
	recordUC     *usecases.RecordUsageUseCase
	getUsageUC   *usecases.GetUsageUseCase
	logger       logger.Interface
}

func NewUsageHandler(
	checkLimitUC *usecases.CheckLimitUseCase,
	recordUC *usecases.RecordUsageUseCase,
	getUsageUC *usecases.GetUsageUseCase,
) *UsageHandler {
	return &UsageHandler{
		checkLimitUC: checkLimitUC,
		recordUC:     recordUC,
		getUsageUC:   getUsageUC,
		logger:       logger.NewLogger(),
	}
}

type RecordUsageRequest struct {
	Resource string `json:"resource" binding:"required,oneof=products quotes specialties photos"`
	Delta    int    `json:"delta" binding:"required,min=1"`
}

type LimitCheckResponse struct {
	Allowed  bool        `json:"allowed"`
	Resource string      `json:"resource"`
	Current  int         `json:"current"`
	Limit    interface{} `json:"limit"`
	Message  string      `json:"message"`
}

type ResourceUsageResponse struct {
	Resource string      `json:"resource"`
	Current  int         `json:"current"`
	Limit    interface{} `json:"limit"`
}

func (h *UsageHandler) CheckLimit(c *gin.Context) {
	result, err := h.checkLimitUC.Execute(c.Request.Context(), usecases.CheckLimitQuery{
		SupplierSID: c.Param("sid"),
		Resource:    c.Param("resource"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, LimitCheckResponse{
		Allowed:  result.Allowed,
		Resource: result.Resource.String(),
		Current:  result.Current,
		Limit:    limitValue(result.Limit),
		Message:  result.Message,
	})
}

func (h *UsageHandler) RecordUsage(c *gin.Context) {
	var req RecordUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.recordUC.Execute(c.Request.Context(), usecases.RecordUsageCommand{
		SupplierSID: c.Param("sid"),
		Resource:    req.Resource,
		Delta:       req.Delta,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, ResourceUsageResponse{
		Resource: result.Resource.String(),
		Current:  result.Usage.Count(result.Resource),
		Limit:    limitValue(result.Limit),
	}, "Usage recorded")
}

func (h *UsageHandler) GetUsage(c *gin.Context) {
	result, err := h.getUsageUC.Execute(c.Request.Context(), usecases.GetUsageQuery{
		SupplierSID: c.Param("sid"),
		MonthKey:    c.Query("month"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	resources := make([]ResourceUsageResponse, 0, len(result.Resources))
	for _, ru := range result.Resources {
		resources = append(resources, ResourceUsageResponse{
			Resource: ru.Resource.String(),
			Current:  ru.Current,
			Limit:    limitValue(ru.Limit),
		})
	}

	utils.OKResponse(c, gin.H{
		"month":     result.MonthKey,
		"resources": resources,
	})
}
