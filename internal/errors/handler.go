package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"pulsecli/internal/dataset"
	"pulsecli/internal/numfit"
)

// ErrorHandler provides centralized error handling for HTTP handlers.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError logs err, maps it to an APIError, and renders the response.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetReqID(r.Context())
	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	render.Render(w, r, Classify(err))
}

// Classify maps any error to an APIError. Known domain errors from the
// dataset and fitting layers keep their message as detail; everything else
// becomes an opaque internal error.
func Classify(err error) *APIError {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return New(http.StatusGatewayTimeout, "TIMEOUT", "The request took too long to process")
	case errors.Is(err, dataset.ErrColumnNotFound):
		return NewWithDetails(ErrColumnNotFound.StatusCode, ErrColumnNotFound.ErrorCode, ErrColumnNotFound.Message, err.Error())
	case errors.Is(err, dataset.ErrNotNumeric):
		return NewWithDetails(ErrColumnNotNumeric.StatusCode, ErrColumnNotNumeric.ErrorCode, ErrColumnNotNumeric.Message, err.Error())
	case errors.Is(err, dataset.ErrEmptyTable):
		return NewWithDetails(ErrDatasetEmpty.StatusCode, ErrDatasetEmpty.ErrorCode, ErrDatasetEmpty.Message, err.Error())
	case errors.Is(err, numfit.ErrInsufficientData),
		errors.Is(err, numfit.ErrDegenerate),
		errors.Is(err, numfit.ErrMismatchedLength):
		return NewWithDetails(ErrFitFailed.StatusCode, ErrFitFailed.ErrorCode, ErrFitFailed.Message, err.Error())
	default:
		return ErrInternalServer
	}
}
