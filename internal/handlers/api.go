package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"submission-routing-engine/internal/models"
	"submission-routing-engine/internal/services/pipeline"
	"submission-routing-engine/internal/services/router"
	"submission-routing-engine/internal/services/scheduler"
	"submission-routing-engine/internal/utils"
)

const maxBodyBytes = 1 << 20

// API serves the routing engine over HTTP.
type API struct {
	underwriters router.UnderwriterSource
	router       *router.Service
	scheduler    *scheduler.Scheduler
	engine       *pipeline.Engine
	processor    *SubmissionProcessor
	health       http.Handler
	uploads      http.Handler
}

// APIConfig wires the API's collaborators. Health and Uploads are optional.
type APIConfig struct {
	Underwriters router.UnderwriterSource
	Router       *router.Service
	Scheduler    *scheduler.Scheduler
	Engine       *pipeline.Engine
	Processor    *SubmissionProcessor
	Health       http.Handler
	Uploads      http.Handler
}

// NewAPI creates the HTTP API.
func NewAPI(cfg APIConfig) *API {
	processor := cfg.Processor
	if processor == nil {
		processor = NewSubmissionProcessor(cfg.Engine, nil)
	}
	health := cfg.Health
	if health == nil {
		health = NewHealthHandler(nil, "", "")
	}
	return &API{
		underwriters: cfg.Underwriters,
		router:       cfg.Router,
		scheduler:    cfg.Scheduler,
		engine:       cfg.Engine,
		processor:    processor,
		health:       health,
		uploads:      cfg.Uploads,
	}
}

// Handler returns the chi router with CORS applied.
func (a *API) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Method(http.MethodGet, "/health", a.health)
	r.Method(http.MethodGet, "/api/health", a.health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/underwriters", a.listUnderwriters)
		r.Post("/route", a.route)
		r.Post("/schedule", a.schedule)
		r.Post("/submissions", a.createSubmission)
		r.Get("/submissions/{id}", a.getSubmission)
		r.Patch("/submissions/{id}/state", a.updateState)
		r.Get("/pending-actions", a.pendingActions)
		if a.uploads != nil {
			r.Method(http.MethodGet, "/upload-url", a.uploads)
		}
	})

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}

func (a *API) listUnderwriters(w http.ResponseWriter, r *http.Request) {
	list, err := a.underwriters.ListUnderwriters(r.Context())
	if err != nil {
		utils.Logger.Error("Failed to list underwriters", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch underwriters")
		return
	}

	if r.URL.Query().Get("view") == "summary" {
		summaries := make([]models.UnderwriterSummary, len(list))
		for i, uw := range list {
			summaries[i] = uw.ToSummary()
		}
		writeData(w, http.StatusOK, summaries)
		return
	}
	writeData(w, http.StatusOK, list)
}

func (a *API) route(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if !a.decode(w, r, routeSchema, &req) {
		return
	}

	var (
		result *router.RoutingResult
		err    error
	)
	if req.TopN > 0 {
		result, err = a.router.RouteTop(r.Context(), req.Form, req.TopN)
	} else {
		result, err = a.router.Route(r.Context(), req.Form)
	}
	if err != nil {
		utils.Logger.Error("Routing failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Routing failed")
		return
	}

	writeData(w, http.StatusOK, result)
}

func (a *API) schedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if !a.decode(w, r, scheduleSchema, &req) {
		return
	}

	now := a.scheduler.Now()
	if req.Now != nil {
		now = *req.Now
	}

	writeData(w, http.StatusOK, a.scheduler.ScheduleAt(req.SocialContext, now))
}

func (a *API) createSubmission(w http.ResponseWriter, r *http.Request) {
	var req SubmissionRequest
	if !a.decode(w, r, submissionSchema, &req) {
		return
	}

	result, err := a.processor.Process(r.Context(), req)
	if err != nil {
		utils.Logger.Error("Failed to process submission", zap.Error(err))
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Submission processed",
		Data:    result,
	})
}

func (a *API) getSubmission(w http.ResponseWriter, r *http.Request) {
	status, err := a.engine.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeData(w, http.StatusOK, status)
}

func (a *API) updateState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if !a.decode(w, r, stateSchema, &req) {
		return
	}

	status, err := a.engine.UpdateState(r.Context(), chi.URLParam(r, "id"), req.State, req.Notes)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeData(w, http.StatusOK, status)
}

func (a *API) pendingActions(w http.ResponseWriter, r *http.Request) {
	now := a.scheduler.Now()
	if raw := r.URL.Query().Get("now"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "now must be an RFC 3339 timestamp")
			return
		}
		now = parsed
	}

	pending, err := a.engine.PendingActions(r.Context(), now)
	if err != nil {
		utils.Logger.Error("Failed to list pending actions", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to list pending actions")
		return
	}
	writeData(w, http.StatusOK, pending)
}

// decode reads and validates the request body, writing a 400 on failure.
func (a *API) decode(w http.ResponseWriter, r *http.Request, schema *gojsonschema.Schema, v interface{}) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "Failed to read request body")
		return false
	}

	if err := decodeRequest(schema, body, v); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		utils.Logger.Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
