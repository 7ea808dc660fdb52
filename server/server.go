// Package server exposes the analysis engine over HTTP. The server is
// stateless: every analyze call is a pure function of its request body.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/sigmaflow-org/sigmaflow/analysis"
	"github.com/sigmaflow-org/sigmaflow/config"
	"github.com/sigmaflow-org/sigmaflow/recommend"
	"github.com/sigmaflow-org/sigmaflow/tools"
)

// Router holds the wired engine pieces behind the HTTP handlers.
type Router struct {
	registry    *tools.Registry
	recommender *recommend.Recommender
	maxBody     int64
}

// NewRouter builds the HTTP handler: CORS, request ids, request logging,
// and the API routes.
func NewRouter(cfg *config.Config, registry *tools.Registry) http.Handler {
	r := &Router{
		registry:    registry,
		recommender: recommend.New(registry),
		maxBody:     cfg.Server.MaxBodyBytes,
	}

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	mux.Use(requestID)
	mux.Use(logRequests)

	mux.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})

	mux.Route("/api/v1", func(rt chi.Router) {
		rt.Get("/tools", r.wrap(r.handleTools))
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Post("/recommend", r.wrap(r.handleRecommend))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap converts handler errors to JSON responses. Input and unknown-tool
// errors map to 400, everything else to 500.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		status := http.StatusInternalServerError
		kind := analysis.KindOf(err)
		if kind == analysis.KindInvalidInput || kind == analysis.KindUnknownTool {
			status = http.StatusBadRequest
		}
		var ae *analysis.Error
		message := err.Error()
		if errors.As(err, &ae) {
			message = ae.Message
		}
		writeJSON(w, status, map[string]any{
			"status": "error",
			"error": map[string]any{
				"kind":    kind.String(),
				"message": message,
			},
		})
	}
}

// AnalyzeRequest is the body of POST /api/v1/analyze.
type AnalyzeRequest struct {
	ToolName   string           `json:"tool_name"`
	Data       []map[string]any `json:"data"`
	Parameters analysis.Params  `json:"parameters"`
}

// RecommendRequest is the body of POST /api/v1/recommend.
type RecommendRequest struct {
	Phase       string `json:"phase"`
	Description string `json:"description"`
}

// POST /api/v1/analyze
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body AnalyzeRequest
	if err := r.decode(req, &body); err != nil {
		return err
	}
	if body.ToolName == "" {
		return analysis.Invalidf("tool_name is required")
	}

	result, err := r.registry.Run(body.ToolName, body.Data, body.Parameters)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, result)
	return nil
}

// POST /api/v1/recommend
func (r *Router) handleRecommend(w http.ResponseWriter, req *http.Request) error {
	var body RecommendRequest
	if err := r.decode(req, &body); err != nil {
		return err
	}
	recs, err := r.recommender.Recommend(body.Phase, body.Description)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "success",
		"recommendations": recs,
	})
	return nil
}

// GET /api/v1/tools
func (r *Router) handleTools(w http.ResponseWriter, req *http.Request) error {
	type toolInfo struct {
		ID          string   `json:"id"`
		Name        string   `json:"name"`
		Aliases     []string `json:"aliases,omitempty"`
		Phases      string   `json:"phases"`
		Description string   `json:"description"`
	}
	all := r.registry.All()
	out := make([]toolInfo, 0, len(all))
	for _, d := range all {
		out = append(out, toolInfo{
			ID:          d.ID,
			Name:        d.Name,
			Aliases:     d.Aliases,
			Phases:      d.Phases,
			Description: d.Description,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": out, "count": len(out)})
	return nil
}

func (r *Router) decode(req *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, req.Body, r.maxBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return analysis.Invalidf("invalid request body: %v", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("response encode error: %v", err)
	}
}

// ctxKey namespaces context values set by middleware.
type ctxKey string

const requestIDKey ctxKey = "request_id"

// requestID tags every request with a fresh id, echoed in X-Request-ID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, req.WithContext(context.WithValue(req.Context(), requestIDKey, id)))
	})
}

// logRequests logs method, path, and duration per request.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		id, _ := req.Context().Value(requestIDKey).(string)
		log.Printf("%s %s %s (%s)", req.Method, req.URL.Path, time.Since(start), id)
	})
}

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully within the configured timeout.
func Serve(cfg *config.Config, registry *tools.Registry) error {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      NewRouter(cfg, registry),
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	log.Printf("shutting down")
	return srv.Shutdown(ctx)
}
