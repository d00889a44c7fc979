package utils

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "construlink/internal/shared/errors"
)

func TestBindingError(t *testing.T) {
	validate := validator.New()

	type changePlanRequest struct {
		Plan         string `json:"plan" validate:"required"`
		BillingCycle string `json:"billing_cycle" validate:"required,oneof=monthly annual"`
	}

	t.Run("names fields in snake case", func(t *testing.T) {
		err := validate.Struct(changePlanRequest{BillingCycle: "weekly"})
		require.Error(t, err)

		appErr := BindingError(err)
		require.True(t, apperrors.IsValidationError(appErr))
		assert.Contains(t, appErr.Details, "plan is required")
		assert.Contains(t, appErr.Details, "billing_cycle must be one of [monthly annual]")
	})

	t.Run("non validator errors pass through", func(t *testing.T) {
		appErr := BindingError(errors.New("unexpected EOF"))
		require.True(t, apperrors.IsValidationError(appErr))
		assert.Equal(t, "unexpected EOF", appErr.Details)
	})
}
