package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-leave/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps status code and reason", func(t *testing.T) {
		err := apperror.NewWithReason(apperror.CodeInvalidInput, "DocumentRequired", "document required", http.StatusBadRequest)

		got := apperror.ToHTTP(fmt.Errorf("create: %w", err))

		assert.Equal(t, http.StatusBadRequest, got.Status)
		assert.Equal(t, apperror.CodeInvalidInput, got.Code)
		assert.Equal(t, "document required", got.Message)
		assert.Equal(t, map[string]string{"reason": "DocumentRequired"}, got.Details)
	})

	t.Run("unknown error becomes internal error", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
		assert.Equal(t, "Internal server error", got.Message)
		assert.Nil(t, got.Details)
	})
}

func TestCodeOfAndReasonOf(t *testing.T) {
	err := apperror.NewWithReason(apperror.CodeInvalidState, "Stale", "stale", http.StatusBadRequest)

	assert.Equal(t, apperror.CodeInvalidState, apperror.CodeOf(err))
	assert.Equal(t, "Stale", apperror.ReasonOf(err))
	assert.Equal(t, apperror.CodeInternalError, apperror.CodeOf(errors.New("boom")))
	assert.Empty(t, apperror.ReasonOf(errors.New("boom")))
}

func TestMapValidationError(t *testing.T) {
	type payload struct {
		LeaveType string `validate:"required"`
		Email     string `validate:"email"`
	}
	v := validator.New()

	err := v.Struct(payload{Email: "ok@example.com"})
	mapped := apperror.MapValidationError(err)
	assert.Equal(t, "Leavetype is required", mapped.Error())

	err = v.Struct(payload{LeaveType: "PTO", Email: "nope"})
	mapped = apperror.MapValidationError(err)
	assert.Equal(t, "Email is invalid", mapped.Error())

	mapped = apperror.MapValidationError(errors.New("bad json"))
	assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(mapped))
}
