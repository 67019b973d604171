// Package web wires the HTTP surface: public pages, the contact API,
// and the session-gated admin dashboard.
package web

import (
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"atelier/internal/config"
	"atelier/internal/render"
	"atelier/internal/session"
	"atelier/internal/store"
)

//go:embed static
var staticFiles embed.FS

// Server holds the handles every handler needs. Nothing is reached
// through package globals.
type Server struct {
	cfg      *config.Config
	store    *store.Store
	sessions *session.Manager
	logger   *zap.Logger
	renderer *render.Renderer
	registry *prometheus.Registry
	metrics  *metrics
}

func NewServer(cfg *config.Config, st *store.Store, sessions *session.Manager, logger *zap.Logger, registry *prometheus.Registry) *Server {
	return &Server{
		cfg:      cfg,
		store:    st,
		sessions: sessions,
		logger:   logger,
		renderer: render.New(),
		registry: registry,
		metrics:  newMetrics(registry),
	}
}

// Routes builds the router. Admin mutations live behind the session
// guard; login and logout stay outside it so a signed-out visitor can
// reach them.
func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()
	router.Use(s.instrument)
	router.Use(s.logRequests)

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	router.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	router.HandleFunc("/post/{slug}", s.handlePostDetail).Methods(http.MethodGet)
	router.HandleFunc("/feed", s.handleFeed).Methods(http.MethodGet)
	router.HandleFunc("/api/contact", s.handleContact).Methods(http.MethodPost)
	router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	router.HandleFunc("/admin/login", s.handleLoginForm).Methods(http.MethodGet)
	router.HandleFunc("/admin/login", s.handleLogin).Methods(http.MethodPost)
	router.HandleFunc("/admin/logout", s.handleLogout).Methods(http.MethodGet)

	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(s.requireAuth)
	admin.HandleFunc("", s.handleDashboard).Methods(http.MethodGet)
	admin.HandleFunc("/posts", s.handleSavePost).Methods(http.MethodPost)
	admin.HandleFunc("/posts/delete", s.handleDeletePost).Methods(http.MethodPost)
	admin.HandleFunc("/messages/delete", s.handleDeleteMessage).Methods(http.MethodPost)
	admin.HandleFunc("/settings", s.handleSaveSettings).Methods(http.MethodPost)

	return router
}

func respondJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			return
		}
	}
}

func (s *Server) httpError(w http.ResponseWriter, message string, status int, err error) {
	s.logger.Error(message, zap.Int("status", status), zap.Error(err))
	http.Error(w, message, status)
}
