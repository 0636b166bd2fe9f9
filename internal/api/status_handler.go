package api

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pulkitkochar/Book-Vaccine/internal/service"
)

// StatusHandler exposes a read-only view of the running poller on a local
// port: liveness, the scheduler snapshot and prometheus metrics.
type StatusHandler struct {
	Poller *service.PollService
}

func NewStatusHandler(poller *service.PollService) *StatusHandler {
	return &StatusHandler{Poller: poller}
}

func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Poller.Snapshot())
}

// Router wires the status endpoints with logging and panic recovery.
func (h *StatusHandler) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.Health).Methods("GET")
	r.HandleFunc("/status", h.Status).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	return handlers.RecoveryHandler()(handlers.LoggingHandler(os.Stdout, r))
}
