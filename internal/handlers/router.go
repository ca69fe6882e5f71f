package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sya-pos/possyncgo/internal/buildinfo"
	"github.com/sya-pos/possyncgo/internal/config"
	"github.com/sya-pos/possyncgo/internal/database"
	"github.com/sya-pos/possyncgo/internal/middleware"
	"github.com/sya-pos/possyncgo/internal/relay"
	"github.com/sya-pos/possyncgo/internal/sync"
)

// Router wraps the mux router and the server's long-lived dependencies
type Router struct {
	*mux.Router
	db  *database.DB
	hub *relay.Hub
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, hub *relay.Hub, svc *sync.Service, cfg *config.Config) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		db:     db,
		hub:    hub,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", r.getStatus).Methods("GET")
	api.HandleFunc("/stats", r.getRelayStats).Methods("GET")

	// Sync ingestion routes (device token when a secret is configured)
	syncRouter := r.PathPrefix("/api/sync").Subrouter()
	syncRouter.Use(middleware.DeviceAuth(cfg.JWTSecret))
	NewSyncHandler(svc).RegisterRoutes(syncRouter)

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Realtime relay
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		relay.ServeWS(hub, w, req)
	})

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// getStatus returns the current build/status information
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "running",
		"commit":    buildinfo.CommitHash,
		"buildTime": buildinfo.BuildTime,
		"startTime": buildinfo.StartTime,
	})
}

// getRelayStats returns the presence snapshot over plain HTTP, matching
// what the websocket get_stats event reports.
func (r *Router) getRelayStats(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, r.hub.Presence().Snapshot())
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
