// Package health implements liveness and readiness probes for the API server.
//
// Probes are evaluated on demand when the endpoint is hit, each with its own
// timeout, so a wedged dependency shows up as a failed check rather than a
// hung endpoint.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTimeout bounds a single probe evaluation.
const DefaultTimeout = 3 * time.Second

// Probe reports nil when the checked component is healthy.
type Probe func(ctx context.Context) error

type check struct {
	name    string
	timeout time.Duration
	probe   Probe
}

// Handler exposes /livez and /readyz style endpoints.
//
// Liveness covers the process itself; readiness additionally gates on manual
// ready state, toggled off during graceful shutdown to drain traffic.
type Handler struct {
	ready atomic.Bool

	mu        sync.RWMutex
	liveness  []check
	readiness []check
}

// NewHandler returns a Handler in the not-ready state. Call SetReady(true)
// once initialization completes.
func NewHandler() *Handler {
	return &Handler{}
}

// AddLiveness registers a liveness probe under the given name.
func (h *Handler) AddLiveness(name string, probe Probe) {
	h.add(&h.liveness, name, probe)
}

// AddReadiness registers a readiness probe under the given name.
func (h *Handler) AddReadiness(name string, probe Probe) {
	h.add(&h.readiness, name, probe)
}

func (h *Handler) add(dst *[]check, name string, probe Probe) {
	h.mu.Lock()
	defer h.mu.Unlock()
	*dst = append(*dst, check{name: name, timeout: DefaultTimeout, probe: probe})
}

// SetReady toggles the manual readiness gate. Set false during shutdown so
// the load balancer stops routing new requests.
func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}

// LiveEndpoint serves the liveness probe.
func (h *Handler) LiveEndpoint(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	checks := append([]check(nil), h.liveness...)
	h.mu.RUnlock()

	writeStatus(w, evaluate(r.Context(), checks))
}

// ReadyEndpoint serves the readiness probe. It fails while the manual ready
// gate is off, regardless of probe results.
func (h *Handler) ReadyEndpoint(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	checks := append([]check(nil), h.readiness...)
	h.mu.RUnlock()

	failures := evaluate(r.Context(), checks)
	if !h.ready.Load() {
		failures["_ready"] = "service is not ready"
	}
	writeStatus(w, failures)
}

// evaluate runs all checks concurrently and returns name → error message for
// each failure.
func evaluate(ctx context.Context, checks []check) map[string]string {
	type result struct {
		name string
		err  error
	}
	results := make(chan result, len(checks))

	var wg sync.WaitGroup
	for _, c := range checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			probeCtx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()
			results <- result{name: c.name, err: c.probe(probeCtx)}
		}()
	}
	wg.Wait()
	close(results)

	failures := make(map[string]string)
	for res := range results {
		if res.err != nil {
			failures[res.name] = res.err.Error()
		}
	}
	return failures
}

type statusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func writeStatus(w http.ResponseWriter, failures map[string]string) {
	resp := statusResponse{Status: "ok"}
	code := http.StatusOK
	if len(failures) > 0 {
		resp.Status = "unhealthy"
		resp.Checks = failures
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
