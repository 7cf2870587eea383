package http

import (
	"errors"
	"log/slog"
	"net/http"

	"bakery/internal/core/domain/model/review"
	"bakery/internal/core/domain/model/user"
	"bakery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorClass struct {
	target error
	status int
	kind   string
}

// errorClasses is checked in order. TransitionFailed comes first because it
// also unwraps to its cause.
var errorClasses = []errorClass{
	{errs.ErrTransitionFailed, http.StatusInternalServerError, "transition_failed"},
	{errs.ErrValueIsRequired, http.StatusBadRequest, "validation"},
	{errs.ErrValueIsInvalid, http.StatusBadRequest, "validation"},
	{errs.ErrValueIsOutOfRange, http.StatusBadRequest, "validation"},
	{errs.ErrUnauthorized, http.StatusForbidden, "unauthorized"},
	{errs.ErrObjectNotFound, http.StatusNotFound, "not_found"},
	{errs.ErrConflict, http.StatusConflict, "conflict"},
	{errs.ErrAlreadyDecided, http.StatusConflict, "already_decided"},
	{errs.ErrDuplicatePendingApplication, http.StatusConflict, "duplicate_pending_application"},
	{user.ErrEmailAlreadyRegistered, http.StatusConflict, "email_already_registered"},
	{review.ErrOrderAlreadyReviewed, http.StatusConflict, "already_reviewed"},
	{errs.ErrInvalidTransition, http.StatusUnprocessableEntity, "invalid_transition"},
	{errs.ErrAssignmentPrecondition, http.StatusUnprocessableEntity, "assignment_precondition"},
	{errs.ErrNotEligible, http.StatusUnprocessableEntity, "not_eligible"},
	{errs.ErrStaleRole, http.StatusUnprocessableEntity, "stale_role"},
}

func toError(err error) Error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return Error{Code: httpErr.Code, Kind: "http", Message: msg}
	}

	for _, class := range errorClasses {
		if errors.Is(err, class.target) {
			msg := err.Error()
			if class.status >= http.StatusInternalServerError {
				msg = http.StatusText(class.status)
			}
			return Error{Code: class.status, Kind: class.kind, Message: msg}
		}
	}
	return Error{
		Code:    http.StatusInternalServerError,
		Kind:    "internal",
		Message: http.StatusText(http.StatusInternalServerError),
	}
}

// ErrorHandler renders errors returned by handlers and middleware as Error
// bodies. Server-side failures are logged with their full text.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := toError(err)
		if body.Code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(body.Code)
		} else {
			writeErr = c.JSON(body.Code, body)
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", "error", writeErr)
		}
	}
}
