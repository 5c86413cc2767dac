package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/templui/goalmaster/internal/apierr"
	"github.com/templui/goalmaster/internal/logger"
	"github.com/templui/goalmaster/internal/repository"
	"github.com/templui/goalmaster/internal/service"
	"github.com/templui/goalmaster/internal/validation"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(payload)
	if err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// WriteError answers with the status and code err maps to. Causes of 5xx
// errors are logged but never sent to the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := toAPIError(err)

	if apiErr.Status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
	}

	WriteJSON(w, apiErr.Status, errorEnvelope{Error: errorBody{
		Message: apiErr.Message(),
		Code:    apiErr.Code,
	}})
}

func toAPIError(err error) *apierr.Error {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return apierr.Validation(vErr)
	}

	switch {
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrInvalidCredentials):
		return apierr.Unauthenticated(rootMessage(err))
	case errors.Is(err, repository.ErrGoalNotFound),
		errors.Is(err, repository.ErrProgressLogNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return apierr.NotFound(rootMessage(err))
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return apierr.New(http.StatusBadRequest, apierr.CodeConflict, err)
	case errors.Is(err, service.ErrStorageUnavailable):
		return apierr.New(http.StatusServiceUnavailable, apierr.CodeServiceUnavailable, err)
	default:
		return apierr.Internal(err)
	}
}

// rootMessage strips wrapping context so clients see the sentinel text only.
func rootMessage(err error) error {
	for _, sentinel := range []error{
		service.ErrUnauthenticated,
		service.ErrInvalidCredentials,
		repository.ErrGoalNotFound,
		repository.ErrProgressLogNotFound,
		repository.ErrUserNotFound,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return err
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &validation.Error{Message: "request body is required"}
		}
		return &validation.Error{Message: fmt.Sprintf("invalid JSON body: %v", err)}
	}

	return nil
}
