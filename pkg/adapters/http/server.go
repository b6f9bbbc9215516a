// Package http exposes the simulation engine over a small JSON API:
// POST /simulate runs a definition, GET /runs lists stored results, and
// /metrics serves prometheus collectors.
package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mendelian/mendel"
	"github.com/mendelian/mendel/internal/definition"
	"github.com/mendelian/mendel/pkg/domain"
	"github.com/mendelian/mendel/pkg/observability"
	"github.com/mendelian/mendel/pkg/ports"
)

// maxBodyBytes bounds definition payloads.
const maxBodyBytes = 1 << 20

// maxWorkers caps the worker count a request may ask for; each worker costs
// an independent random stream and a goroutine.
func maxWorkers() int { return runtime.NumCPU() }

// Server handles the HTTP surface around the simulation core.
type Server struct {
	store   ports.ResultStore
	metrics *observability.Metrics
	logger  *slog.Logger
}

// SimulateResponse is the body returned by POST /simulate.
type SimulateResponse struct {
	Result        *ports.RunResult   `json:"result"`
	Probabilities map[string]float64 `json:"probabilities"`
}

// NewHandler wires the routes. The registry backs both the /metrics endpoint
// and the run counters.
func NewHandler(store ports.ResultStore, logger *slog.Logger, reg *prometheus.Registry) http.Handler {
	s := &Server{
		store:   store,
		metrics: observability.NewMetrics(reg),
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Post("/simulate", s.Simulate)
	r.Get("/runs", s.ListRuns)
	r.Get("/runs/{id}", s.GetRun)
	r.Delete("/runs/{id}", s.DeleteRun)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return r
}

// Simulate runs the experiment definition in the request body and stores the
// finalized result.
func (s *Server) Simulate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "reading request body", http.StatusBadRequest)
		return
	}

	def, err := definition.ParseJSON(body)
	if err != nil {
		s.fail(w, "parse", err)
		return
	}
	exp, err := def.Compile()
	if err != nil {
		s.fail(w, "compile", err)
		return
	}

	opts := []mendel.Option{}
	if def.Seed != nil {
		opts = append(opts, mendel.WithSeed(*def.Seed))
	}
	policy, err := mendel.ParseErrorPolicy(def.Policy)
	if err != nil {
		s.fail(w, "policy", err)
		return
	}
	opts = append(opts, mendel.WithErrorPolicy(policy))
	if def.Workers > 1 {
		opts = append(opts, mendel.WithWorkers(min(def.Workers, maxWorkers())))
	}

	start := time.Now()
	dist, err := mendel.Simulate(r.Context(), exp, def.Trials, opts...)
	s.metrics.Duration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.Simulations.WithLabelValues("error").Inc()
		s.fail(w, "simulate", err)
		return
	}
	s.metrics.Simulations.WithLabelValues("ok").Inc()
	s.metrics.Trials.Add(float64(dist.TotalTrials()))

	result := snapshot(def, dist)
	if err := s.store.Save(r.Context(), result); err != nil {
		s.logger.Error("saving run result", "error", err, "run_id", result.ID)
		http.Error(w, "storing result", http.StatusInternalServerError)
		return
	}

	probs := make(map[string]float64, len(result.Labels))
	for label := range dist.Labels() {
		probs[label] = dist.ProbabilityOf(label)
	}
	writeJSON(w, http.StatusOK, SimulateResponse{Result: result, Probabilities: probs})
}

// ListRuns returns the IDs of all stored runs.
func (s *Server) ListRuns(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("listing runs", "error", err)
		http.Error(w, "listing runs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"runs": ids})
}

// GetRun returns one stored run result.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	result, err := s.store.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrRunNotFound) {
			http.Error(w, "run not found", http.StatusNotFound)
			return
		}
		s.logger.Error("loading run", "error", err, "run_id", id)
		http.Error(w, "loading run", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// DeleteRun removes a stored run result.
func (s *Server) DeleteRun(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.logger.Error("deleting run", "error", err)
		http.Error(w, "deleting run", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fail maps core error kinds to HTTP statuses.
func (s *Server) fail(w http.ResponseWriter, stage string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrConfiguration),
		errors.Is(err, domain.ErrInvalidOutcomeSpace),
		errors.Is(err, domain.ErrInvalidTrialCount):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrEvaluation),
		errors.Is(err, domain.ErrExhaustedRetries):
		status = http.StatusUnprocessableEntity
	}
	s.logger.Warn("simulate request failed", "stage", stage, "error", err)
	http.Error(w, err.Error(), status)
}

// snapshot converts a finalized distribution into its persistable form.
func snapshot(def *definition.File, dist *mendel.Distribution) *ports.RunResult {
	result := &ports.RunResult{
		ID:        uuid.NewString(),
		Name:      def.Name,
		Trials:    dist.TotalTrials(),
		Seed:      def.Seed,
		Counts:    make(map[string]uint64),
		CreatedAt: time.Now().UTC(),
	}
	for label := range dist.Labels() {
		result.Labels = append(result.Labels, label)
		result.Counts[label] = dist.Count(label)
	}
	return result
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
