package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "pulsecli/internal/errors"
)

// DatasetHandler serves dataset inspection and reload endpoints.
type DatasetHandler struct {
	service      ChartServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	// onReload, when set, runs after a successful reload. The server uses
	// it to notify websocket subscribers.
	onReload func()
}

// NewDatasetHandler creates a dataset handler. onReload may be nil.
func NewDatasetHandler(service ChartServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, onReload func()) *DatasetHandler {
	return &DatasetHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dataset_handler")),
		errorHandler: errorHandler,
		onReload:     onReload,
	}
}

// Routes returns the dataset routes.
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.Summary)
	r.Post("/reload", h.Reload)

	return r
}

// Summary handles GET /api/dataset/summary.
func (h *DatasetHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// Reload handles POST /api/dataset/reload.
func (h *DatasetHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reload(r.Context()); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.logger.InfoContext(r.Context(), "dataset reload requested",
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	if h.onReload != nil {
		h.onReload()
	}
	render.JSON(w, r, map[string]string{"status": "reloaded"})
}
