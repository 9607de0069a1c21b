// Package server provides the HTTP server for the rosterd activity
// signup service.
//
// The server exposes a small REST API over an in-memory activity
// registry, plus operational endpoints for health, status, metrics,
// configuration, and the roster change log.
//
// # Endpoints
//
//   - GET / - Redirects to the static signup page
//   - GET /activities - Full activity listing keyed by name
//   - POST /activities/{name}/signup?email= - Sign a student up
//   - DELETE /activities/{name}/unregister?email= - Remove a student
//   - GET /health - Simple health check, returns "ok"
//   - GET /api/status - Build info, uptime, roster totals, next push
//   - GET /api/events - Recent roster changes, newest first
//   - GET /metrics - Prometheus scrape endpoint
//   - GET /config - Returns current configuration as YAML
//   - POST /reload - Reloads configuration from disk
//
// # Architecture
//
// Config-derived dependencies (the config itself and the metrics push
// client) are swapped atomically on reload. The activity registry is
// seeded once at startup and deliberately survives reloads: reseeding
// would silently drop signups.
//
// # Example
//
//	srv, err := server.New("/etc/rosterd/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server

import (
	"context"
	"crypto/tls"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/mergington/rosterd/audit"
	"github.com/mergington/rosterd/config"
	"github.com/mergington/rosterd/logging"
	"github.com/mergington/rosterd/metrics"
	"github.com/mergington/rosterd/registry"
	"github.com/mergington/rosterd/server/cron"
	"github.com/mergington/rosterd/server/handlers"
)

//go:embed static
var staticFiles embed.FS

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultShutdownTimeout = 5 * time.Second

	jobName = "rosterd"
)

// serverDeps holds config-derived dependencies that are swapped atomically on reload.
type serverDeps struct {
	config     *config.Config
	pushClient *metrics.Client
}

// Server is the HTTP server for the activity signup service.
type Server struct {
	configPath string
	logger     *slog.Logger
	logLevel   *slog.LevelVar
	deps       atomic.Pointer[serverDeps]
	httpServer *http.Server

	registry *registry.Registry
	audit    *audit.Store
	scrape   *metrics.ScrapeRegistry
	roster   *metrics.RosterMetrics

	pushTrigger *cron.Trigger
	startedAt   time.Time
	hostname    string
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger replaces the config-built logger, mainly for tests.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		s.logger = logger
		return nil
	}
}

// New creates a Server from the config file at configPath. An empty path
// runs on defaults. The activity registry is seeded here, once.
func New(configPath string, opts ...Option) (*Server, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, logLevel, err := logging.New(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Output:    cfg.Logging.Output,
		AddSource: cfg.Logging.AddSource,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	s := &Server{
		configPath: configPath,
		logger:     logger,
		logLevel:   logLevel,
		startedAt:  time.Now(),
		hostname:   hostname,
	}

	seed := registry.DefaultSeed()
	if cfg.SeedFile != "" {
		seed, err = registry.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
	}
	s.registry, err = registry.New(seed)
	if err != nil {
		return nil, fmt.Errorf("seeding registry: %w", err)
	}

	s.audit = audit.NewStore(cfg.MaxAuditEvents)

	s.scrape, err = metrics.NewScrapeRegistry()
	if err != nil {
		return nil, err
	}
	s.roster, err = metrics.NewRosterMetrics(s.scrape)
	if err != nil {
		return nil, err
	}
	for _, occ := range s.registry.Occupancies() {
		s.roster.SetRoster(occ.Activity, occ.Participants, occ.Capacity)
	}

	s.storeDeps(cfg)

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	activities, participants := s.registry.Stats()
	s.logger.Info("registry seeded",
		"activities", activities,
		"participants", participants,
		"seed_file", cfg.SeedFile,
	)

	return s, nil
}

// Logger returns the server's logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// Reload reads the config from disk and swaps config-derived dependencies.
// The activity registry is left untouched.
func (s *Server) Reload() error {
	cfg, err := config.LoadConfig(s.configPath)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	s.logLevel.Set(level)

	s.storeDeps(cfg)

	s.logger.Info("configuration loaded", "config_path", s.configPath)
	return nil
}

func (s *Server) storeDeps(cfg *config.Config) {
	var client *metrics.Client
	if cfg.Monitoring.VictoriaMetricsURL != "" {
		client = metrics.NewClient(cfg.Monitoring.VictoriaMetricsURL,
			metrics.WithPrefix(cfg.Monitoring.MetricsPrefix),
			metrics.WithJob(jobName),
			metrics.WithInstance(s.hostname),
		)
	}
	s.deps.Store(&serverDeps{
		config:     cfg,
		pushClient: client,
	})
}

// Config returns the current configuration.
func (s *Server) Config() *config.Config {
	return s.deps.Load().config
}

func (s *Server) pushClient() *metrics.Client {
	return s.deps.Load().pushClient
}

// RosterChanged implements handlers.Recorder. It records the audit event,
// bumps the operation counter, and refreshes the occupancy gauges for the
// affected activity.
func (s *Server) RosterChanged(action audit.Action, activity, email string) {
	s.audit.Record(audit.Event{
		Action:   action,
		Activity: activity,
		Email:    email,
	})

	switch action {
	case audit.ActionSignup:
		s.roster.SignupAccepted()
	case audit.ActionUnregister:
		s.roster.UnregisterAccepted()
	}

	if participants, capacity, ok := s.registry.Roster(activity); ok {
		s.roster.SetRoster(activity, participants, capacity)
	}
}

// RequestRejected implements handlers.Recorder.
func (s *Server) RequestRejected(reason string) {
	s.roster.RequestRejected(reason)
}

// Stats implements handlers.StatusProvider.
func (s *Server) Stats() (activities, participants int) {
	return s.registry.Stats()
}

// StartedAt implements handlers.StatusProvider.
func (s *Server) StartedAt() time.Time {
	return s.startedAt
}

// Hostname implements handlers.StatusProvider.
func (s *Server) Hostname() string {
	return s.hostname
}

// NextPush implements handlers.StatusProvider. Returns nil when no push
// endpoint is configured.
func (s *Server) NextPush() *time.Time {
	if s.pushTrigger == nil || s.pushClient() == nil {
		return nil
	}
	next := s.pushTrigger.NextRun()
	return &next
}

// Handler builds the full HTTP handler, including the access log wrapper.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return accessLog(s.logger, mux)
}

// Run starts the HTTP server and blocks until the context is cancelled.
// It performs a graceful shutdown when the context is done. The scheduled
// metrics push starts here as well.
func (s *Server) Run(ctx context.Context) error {
	cfg := s.Config()

	s.httpServer = &http.Server{
		Addr:         cfg.Listener.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	}

	pusher := &rosterPusher{
		registry: s.registry,
		server:   s,
		logger:   s.logger,
	}
	trigger, err := cron.NewTrigger(cfg.Monitoring.PushSchedule, pusher, s.logger)
	if err != nil {
		return fmt.Errorf("creating push trigger: %w", err)
	}
	s.pushTrigger = trigger
	trigger.Start(ctx)

	useTLS := cfg.Listener.TLSCert != ""
	if useTLS {
		loader, err := NewCertLoader(cfg.Listener.TLSCert, cfg.Listener.TLSKey, s.logger)
		if err != nil {
			return fmt.Errorf("loading TLS certificate: %w", err)
		}
		s.httpServer.TLSConfig = &tls.Config{
			GetCertificate: loader.GetCertificate,
		}
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server",
			"addr", cfg.Listener.Addr,
			"tls", useTLS,
			"config_path", s.configPath,
		)
		var err error
		if useTLS {
			err = s.httpServer.ListenAndServeTLS("", "")
		} else {
			err = s.httpServer.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	// API endpoints
	mux.Handle("GET /activities", handlers.NewActivitiesHandler(s.registry))
	mux.Handle("POST /activities/{name}/signup", handlers.NewSignupHandler(s.logger, s.registry, s))
	mux.Handle("DELETE /activities/{name}/unregister", handlers.NewUnregisterHandler(s.logger, s.registry, s))
	mux.HandleFunc("GET /health", handlers.HandleHealth)
	mux.Handle("GET /api/status", handlers.NewStatusHandler(s))
	mux.Handle("GET /api/events", handlers.NewEventsHandler(s.audit))
	mux.Handle("GET /config", handlers.NewConfigHandler(s))
	mux.Handle("POST /reload", handlers.NewReloadHandler(s.logger, s))
	mux.Handle("GET /metrics", s.scrape.Handler())

	// Static files (signup web UI)
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		s.logger.Error("failed to create static file system", "error", err)
		return
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	mux.Handle("GET /{$}", http.RedirectHandler("/static/index.html", http.StatusTemporaryRedirect))
}
