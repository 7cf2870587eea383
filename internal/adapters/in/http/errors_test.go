package http

import (
	"fmt"
	"net/http"
	"testing"

	"bakery/internal/core/domain/model/review"
	"bakery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestToError(t *testing.T) {
	tests := map[string]struct {
		err  error
		code int
		kind string
	}{
		"validation":        {errs.NewValueIsRequiredError("name"), http.StatusBadRequest, "validation"},
		"unauthorized":      {errs.NewUnauthorizedError(3, "customer", "assign"), http.StatusForbidden, "unauthorized"},
		"not found":         {errs.NewObjectNotFoundError("order", 9), http.StatusNotFound, "not_found"},
		"conflict":          {errs.NewConflictError("order", 9), http.StatusConflict, "conflict"},
		"reviewed":          {fmt.Errorf("submit: %w", review.ErrOrderAlreadyReviewed), http.StatusConflict, "already_reviewed"},
		"invalid move":      {errs.NewInvalidTransitionError("pending", "delivered"), http.StatusUnprocessableEntity, "invalid_transition"},
		"failed transition": {errs.NewTransitionFailedError("decide", errs.NewConflictError("user", 1)), http.StatusInternalServerError, "transition_failed"},
		"echo error":        {echo.NewHTTPError(http.StatusTooManyRequests, "slow down"), http.StatusTooManyRequests, "http"},
		"unknown":           {fmt.Errorf("disk on fire"), http.StatusInternalServerError, "internal"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := toError(tt.err)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.kind, got.Kind)
		})
	}
}

func TestToErrorHidesInternalDetails(t *testing.T) {
	got := toError(fmt.Errorf("password=hunter2"))
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), got.Message)

	got = toError(errs.NewTransitionFailedError("assign order", fmt.Errorf("pq: relation orders is locked")))
	assert.Equal(t, "transition_failed", got.Kind)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), got.Message)
	assert.NotContains(t, got.Message, "pq:")
}

func TestToErrorKeepsClientFacingMessages(t *testing.T) {
	got := toError(errs.NewValueIsRequiredError("reason"))
	assert.Equal(t, "value is required: reason", got.Message)
}
