package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construlink/internal/shared/utils"
)

func setupPlanRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handler := NewPlanHandler()
	engine.GET("/api/v1/plans", handler.ListPlans)
	engine.GET("/api/v1/plans/:id", handler.GetPlan)
	return engine
}

func TestPlanHandler_ListPlans(t *testing.T) {
	engine := setupPlanRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/plans", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Plans []PlanResponse `json:"plans"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data.Plans, 3)

	// Ordered least to most generous.
	assert.Equal(t, "basic", resp.Data.Plans[0].ID)
	assert.Equal(t, "professional", resp.Data.Plans[1].ID)
	assert.Equal(t, "enterprise", resp.Data.Plans[2].ID)

	basic := resp.Data.Plans[0]
	assert.Equal(t, int64(100000), basic.MonthlyPrice)
	assert.Equal(t, int64(960000), basic.AnnualPrice)
	assert.Equal(t, "RD$1,000.00", basic.MonthlyPriceDisplay)
	assert.Equal(t, float64(10), basic.Limits["products"])

	enterprise := resp.Data.Plans[2]
	assert.Equal(t, "unlimited", enterprise.Limits["products"])
	assert.True(t, enterprise.HasAPIAccess)
}

func TestPlanHandler_GetPlan(t *testing.T) {
	engine := setupPlanRouter()

	t.Run("known plan", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/plans/professional", nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool         `json:"success"`
			Data    PlanResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "professional", resp.Data.ID)
		assert.Equal(t, "unlimited", resp.Data.Limits["quotes"])
		assert.Equal(t, float64(5), resp.Data.Limits["specialties"])
		assert.Equal(t, 14, resp.Data.TrialDays)
	})

	t.Run("unknown plan returns 404 envelope", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/plans/platinum", nil)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)

		var resp utils.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "not_found", resp.Error.Type)
	})
}
