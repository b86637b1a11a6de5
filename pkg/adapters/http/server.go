package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxBodySize bounds request bodies; machines are small text files.
const MaxBodySize = 1 << 20

// LockTTL bounds how long a client-supplied run ID stays locked.
const LockTTL = 30 * time.Second

// Config wires the server to its collaborators. Only Logger is defaulted.
type Config struct {
	// Machine answers requests that do not carry their own machine.
	Machine *turing.Engine

	// StepLimit caps every run; requests may only lower it.
	StepLimit int

	Store    ports.RunStore
	Locker   ports.DistributedLocker
	Metrics  *observability.Metrics
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Server serves the turing HTTP API.
type Server struct {
	cfg Config
}

// NewHandler creates the HTTP handler:
//
//	GET    /healthz
//	GET    /metrics
//	GET    /v1/machine
//	POST   /v1/run
//	POST   /v1/validate
//	POST   /v1/encode
//	GET    /v1/runs
//	GET    /v1/runs/{id}
//	DELETE /v1/runs/{id}
func NewHandler(cfg Config) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.StepLimit <= 0 {
		cfg.StepLimit = 500
	}
	s := &Server{cfg: cfg}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(enableCORS)

	r.Get("/healthz", s.Health)
	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/machine", s.Machine)
		r.Post("/run", s.Run)
		r.Post("/validate", s.Validate)
		r.Post("/encode", s.Encode)
		r.Get("/runs", s.ListRuns)
		r.Get("/runs/{id}", s.GetRun)
		r.Delete("/runs/{id}", s.DeleteRun)
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.cfg.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.cfg.Store.(interface{ Ping(context.Context) error }); ok {
		if err := p.Ping(r.Context()); err != nil {
			s.cfg.Logger.Warn("health: store unreachable", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// MachineResponse describes the server's default machine.
type MachineResponse struct {
	Definition  domain.Definition `json:"definition"`
	Start       string            `json:"start"`
	Blank       string            `json:"blank"`
	States      []string          `json:"states"`
	Transitions any               `json:"transitions"`
}

// Machine handles GET /v1/machine.
func (s *Server) Machine(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Machine == nil {
		writeError(w, http.StatusNotFound, errors.New("no default machine loaded"))
		return
	}
	m := s.cfg.Machine.Machine()
	writeJSON(w, http.StatusOK, MachineResponse{
		Definition:  s.cfg.Machine.Definition(),
		Start:       m.StartName(),
		Blank:       m.BlankName(),
		States:      m.States.Names(),
		Transitions: m.Transitions(),
	})
}

// RunRequest is the body of POST /v1/run.
type RunRequest struct {
	// Machine is a machine source, text or YAML. Empty selects the default machine.
	Machine string `json:"machine,omitempty"`

	// Input is a tape line; Symbols the same tape already split. At most one is set.
	Input   string   `json:"input,omitempty"`
	Symbols []string `json:"symbols,omitempty"`

	StepLimit int `json:"step_limit,omitempty"`

	// ID makes the request idempotent: a run already stored under ID is
	// returned instead of running again.
	ID string `json:"id,omitempty"`

	Save bool `json:"save,omitempty"`
}

// Run handles POST /v1/run.
func (s *Server) Run(w http.ResponseWriter, r *http.Request) {
	var body RunRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.Input != "" && len(body.Symbols) > 0 {
		writeError(w, http.StatusBadRequest, errors.New("set either input or symbols, not both"))
		return
	}

	limit := s.cfg.StepLimit
	if body.StepLimit > 0 && body.StepLimit < limit {
		limit = body.StepLimit
	}
	eng, ok := s.engine(w, body.Machine, turing.WithStepLimit(limit))
	if !ok {
		return
	}

	alphabet := eng.Machine().Symbols.Names()
	var input []string
	var err error
	if len(body.Symbols) > 0 {
		input, err = runner.SanitizeSymbols(body.Symbols, alphabet)
	} else {
		input, err = runner.SanitizeInput(body.Input, alphabet)
	}
	if err != nil {
		s.cfg.Logger.Warn("run: input rejected", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ctx := r.Context()
	if body.ID != "" && s.cfg.Store != nil {
		if s.cfg.Locker != nil {
			unlock, err := s.cfg.Locker.Lock(ctx, body.ID, LockTTL)
			if err != nil {
				writeError(w, http.StatusServiceUnavailable, err)
				return
			}
			defer func() { _ = unlock(context.WithoutCancel(ctx)) }()
		}
		if rec, err := s.cfg.Store.Load(ctx, body.ID); err == nil {
			w.Header().Set("X-Turing-Replayed", "true")
			writeJSON(w, http.StatusOK, rec)
			return
		} else if !errors.Is(err, domain.ErrRunNotFound) {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}

	res, err := eng.Run(ctx, input)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	rec := eng.Record(input, res)
	if body.ID != "" {
		rec.ID = body.ID
	}

	if (body.Save || body.ID != "") && s.cfg.Store != nil {
		if err := s.cfg.Store.Save(ctx, rec); err != nil {
			s.cfg.Logger.Error("run: save failed", "error", err, "id", rec.ID)
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, rec)
}

// MachineRequest is the body of POST /v1/validate and POST /v1/encode.
type MachineRequest struct {
	Machine string `json:"machine,omitempty"`
	Strict  bool   `json:"strict,omitempty"`
}

// ValidateResponse reports the problems of a machine.
type ValidateResponse struct {
	Valid  bool          `json:"valid"`
	Report turing.Report `json:"report"`
	Errors []string      `json:"errors,omitempty"`
}

// Validate handles POST /v1/validate. A machine that does not compile is a 422.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body MachineRequest
	if !s.decode(w, r, &body) {
		return
	}
	eng, ok := s.engine(w, body.Machine)
	if !ok {
		return
	}
	rep, err := eng.Validate(body.Strict)
	resp := ValidateResponse{Valid: err == nil, Report: rep}
	for _, e := range domain.Errors(err) {
		resp.Errors = append(resp.Errors, e.Error())
	}
	writeJSON(w, http.StatusOK, resp)
}

// Encode handles POST /v1/encode.
func (s *Server) Encode(w http.ResponseWriter, r *http.Request) {
	var body MachineRequest
	if !s.decode(w, r, &body) {
		return
	}
	eng, ok := s.engine(w, body.Machine)
	if !ok {
		return
	}
	word, err := eng.Encode()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"word": word, "length": len(word)})
}

// ListRuns handles GET /v1/runs.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	ids, err := s.cfg.Store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"runs": ids})
}

// GetRun handles GET /v1/runs/{id}.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	rec, err := s.cfg.Store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// DeleteRun handles DELETE /v1/runs/{id}.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.cfg.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.cfg.Store == nil {
		writeError(w, http.StatusNotImplemented, errors.New("no run store configured"))
		return false
	}
	return true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.cfg.Logger.Warn("invalid request body", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return false
	}
	return true
}

// engine compiles src, or derives from the default machine when src is empty.
func (s *Server) engine(w http.ResponseWriter, src string, opts ...turing.Option) (*turing.Engine, bool) {
	if s.cfg.Metrics != nil {
		opts = append(opts, turing.WithLifecycleHooks(s.cfg.Metrics.Hooks()))
	}
	opts = append(opts, turing.WithLogger(s.cfg.Logger))

	if src == "" {
		if s.cfg.Machine == nil {
			writeError(w, http.StatusBadRequest, errors.New("no machine given and no default machine loaded"))
			return nil, false
		}
		return s.cfg.Machine.With(opts...), true
	}

	eng, err := turing.Parse(src, opts...)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return nil, false
	}
	return eng, true
}

func statusOf(err error) int {
	if errors.Is(err, domain.ErrRunNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
