package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"donormatch/internal/matcher"
	"donormatch/internal/store"
	"donormatch/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const requestTimeout = 5 * time.Second

type Service struct {
	logger  *logrus.Logger
	config  *types.Config
	records *store.Store
	matcher matcher.Matcher

	// runs before every reset, nil when archiving is off
	resetHook store.ResetHook

	registry *prometheus.Registry
	metrics  *metrics
	routes   map[string]bool

	handler http.Handler
	server  *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	records *store.Store,
	m matcher.Matcher,
	resetHook store.ResetHook,
) (*Service, error) {
	if records == nil {
		return nil, fmt.Errorf("server requires a record store")
	}
	if m == nil {
		return nil, fmt.Errorf("server requires a matcher")
	}

	registry := prometheus.NewRegistry()
	met, err := newMetrics(registry)
	if err != nil {
		return nil, err
	}

	s := &Service{
		logger:    logger,
		config:    config,
		records:   records,
		matcher:   m,
		resetHook: resetHook,
		registry:  registry,
		metrics:   met,
		routes:    make(map[string]bool),
	}

	mux := flow.New()
	mux.NotFound = http.HandlerFunc(s.handleNotFound)
	mux.MethodNotAllowed = http.HandlerFunc(s.handleMethodNotAllowed)
	s.buildRouter(mux)

	// Cross-cutting middleware wraps the whole mux so unmatched routes and
	// CORS preflights are logged and measured too.
	s.handler = s.RequestID(s.LoggingMiddleware(s.MetricsMiddleware(s.CORS(s.StripTrailingSlash(mux)))))

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", config.ServerPort),
		Handler:           s.handler,
		ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the fully wrapped router.
func (s *Service) Handler() http.Handler {
	return s.handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	s.handle(r, "/", s.handleHome, http.MethodGet)
	s.handle(r, "/healthz", s.handleHealth, http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}), http.MethodGet)
	s.routes["/metrics"] = true

	s.handle(r, "/api/victims", s.handleCreateVictim, http.MethodPost)
	s.handle(r, "/api/victims", s.handleListVictims, http.MethodGet)
	s.handle(r, "/api/donors", s.handleCreateDonor, http.MethodPost)
	s.handle(r, "/api/donors", s.handleListDonors, http.MethodGet)
	s.handle(r, "/api/matches", s.handleMatches, http.MethodGet)
	s.handle(r, "/api/reset", s.handleReset, http.MethodDelete)
}

func (s *Service) handle(r *flow.Mux, pattern string, h http.HandlerFunc, methods ...string) {
	r.HandleFunc(pattern, h, methods...)
	s.routes[pattern] = true
}
