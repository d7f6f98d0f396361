package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/taskmanager-api/internal/api/shared"
	"github.com/phrazzld/taskmanager-api/internal/domain"
	"github.com/phrazzld/taskmanager-api/internal/service"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

// Client-facing error messages.
const (
	MsgTaskNotFound       = "Task not found"
	MsgNotFound           = "Not found"
	MsgInvalidRequest     = "Invalid request format"
	MsgInvalidEntity      = "Invalid entity data"
	MsgConflict           = "Task already exists"
	MsgUnexpectedError    = "An unexpected error occurred"
	MsgServiceUnavailable = "Service unavailable"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return MsgUnexpectedError
	}

	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, domain.ErrInvalidID):
		return MsgTaskNotFound

	case errors.Is(err, domain.ErrValidation):
		return shared.ValidationErrorMessage

	case errors.Is(err, domain.ErrInvalidFormat):
		return MsgInvalidRequest

	case errors.Is(err, store.ErrInvalidEntity):
		return MsgInvalidEntity

	case errors.Is(err, store.ErrDuplicate):
		return MsgConflict

	default:
		return MsgUnexpectedError
	}
}

// HandleAPIError writes the response for err. Validation errors carry their
// field messages; everything else gets a mapped status and a safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		shared.RespondWithValidationErrors(w, r, verrs)
		return
	}

	var notObject *shared.NotObjectError
	if errors.As(err, &notObject) {
		shared.RespondWithValidationErrors(w, r,
			domain.NewValidationError(domain.NonFieldErrorsKey, notObject.Error()))
		return
	}

	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
