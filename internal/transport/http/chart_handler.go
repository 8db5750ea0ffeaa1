package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"pulsecli/internal/charts"
	apierrors "pulsecli/internal/errors"
)

// ChartHandler serves the chart-building endpoints.
type ChartHandler struct {
	service      ChartServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewChartHandler creates a chart handler.
func NewChartHandler(service ChartServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ChartHandler {
	return &ChartHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "chart_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the chart routes.
func (h *ChartHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/histogram", h.Histogram)
	r.Post("/cumulative", h.Cumulative)
	r.Post("/scatter", h.Scatter)
	r.Post("/polyfit", h.PolyFit)
	r.Post("/regression", h.Regression)
	r.Post("/interactive", h.Interactive)

	return r
}

// Histogram handles POST /api/charts/histogram.
func (h *ChartHandler) Histogram(w http.ResponseWriter, r *http.Request) {
	var req HistogramRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	env, err := h.service.Histogram(r.Context(), req.X, req.Category)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.respond(w, r, env.ID)
	render.JSON(w, r, env)
}

// Cumulative handles POST /api/charts/cumulative.
func (h *ChartHandler) Cumulative(w http.ResponseWriter, r *http.Request) {
	var req CumulativeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	env, err := h.service.Cumulative(r.Context(), req.Y, req.Category)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.respond(w, r, env.ID)
	render.JSON(w, r, env)
}

// Scatter handles POST /api/charts/scatter.
func (h *ChartHandler) Scatter(w http.ResponseWriter, r *http.Request) {
	var req ScatterRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	opts := charts.ScatterOptions{
		Fits:     req.Fits,
		XLog:     req.XLog,
		YLog:     req.YLog,
		Category: req.Category,
		Scale:    req.Scale,
		SizeRef:  req.SizeRef,
	}
	env, err := h.service.Scatter(r.Context(), req.X, req.Y, opts)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.respond(w, r, env.ID)
	render.JSON(w, r, env)
}

// PolyFit handles POST /api/charts/polyfit.
func (h *ChartHandler) PolyFit(w http.ResponseWriter, r *http.Request) {
	var req PolyfitRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	env, err := h.service.PolyFits(r.Context(), req.X, req.Y, req.Degree)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.respond(w, r, env.ID)
	render.JSON(w, r, env)
}

// Regression handles POST /api/charts/regression.
func (h *ChartHandler) Regression(w http.ResponseWriter, r *http.Request) {
	var req RegressionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	env, err := h.service.Regression(r.Context(), req.X, req.Y, req.InterceptZero)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.respond(w, r, env.ID)
	render.JSON(w, r, env)
}

// Interactive handles POST /api/charts/interactive.
func (h *ChartHandler) Interactive(w http.ResponseWriter, r *http.Request) {
	var req InteractiveRequest
	if err := decodeAndValidate(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	opts := charts.InteractiveOptions{TimeAxis: req.TimeAxis}
	if len(req.EqPos) == 2 {
		opts.EqPos = [2]float64{req.EqPos[0], req.EqPos[1]}
	}
	env, err := h.service.Interactive(r.Context(), req.X, req.Y, req.Title, opts)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.respond(w, r, env.ID)
	render.JSON(w, r, env)
}

func (h *ChartHandler) respond(w http.ResponseWriter, r *http.Request, figureID string) {
	h.logger.InfoContext(r.Context(), "figure served",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("figure_id", figureID),
		slog.String("path", r.URL.Path),
	)
}
