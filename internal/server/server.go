package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/yigit/registrar/internal/bootstrap"
	"github.com/yigit/registrar/internal/config"
)

// renderBudget is the time allowed for building a transcript PDF after its
// rows are loaded.
const renderBudget = 15 * time.Second

// RevocationPurger deletes logout records whose token has expired anyway
type RevocationPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// Timeouts bounds each phase of an HTTP exchange
type Timeouts struct {
	Read     time.Duration
	Write    time.Duration
	Idle     time.Duration
	Shutdown time.Duration
}

// TimeoutsFor derives server timeouts from the database settings. The slowest
// response is a transcript: one transaction-bounded read plus rendering.
func TimeoutsFor(cfg *config.Config) Timeouts {
	tx := cfg.TxTimeout()
	if tx <= 0 {
		tx = 30 * time.Second
	}
	return Timeouts{
		Read:     10 * time.Second,
		Write:    tx + renderBudget,
		Idle:     120 * time.Second,
		Shutdown: tx,
	}
}

// Server holds the state for the HTTP server.
type Server struct {
	config   *config.Config
	handler  http.Handler
	dbPool   *pgxpool.Pool
	purger   RevocationPurger
	timeouts Timeouts
	logger   zerolog.Logger
	http     *http.Server
	stop     context.CancelFunc
}

// NewServer loads configuration, prepares the database and wires the
// registrar's routes.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, dbPool, lgr)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)
	lgr.Info().
		Str("term", cfg.Academic.CurrentTerm).
		Strs("termOrder", cfg.Academic.TermOrder).
		Int("routes", len(router.Routes())).
		Msg("Registrar routes ready")

	s := New(cfg, router, deps.Repos.TokenRepository, lgr)
	s.dbPool = dbPool
	return s, nil
}

// New assembles a Server around an already built handler. purger may be nil.
func New(cfg *config.Config, handler http.Handler, purger RevocationPurger, lgr zerolog.Logger) *Server {
	return &Server{
		config:   cfg,
		handler:  handler,
		purger:   purger,
		timeouts: TimeoutsFor(cfg),
		logger:   lgr,
	}
}

// Run starts the HTTP server and the revocation janitor, then blocks until
// the server fails or a shutdown signal arrives.
func (s *Server) Run() error {
	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.handler,
		ReadTimeout:  s.timeouts.Read,
		WriteTimeout: s.timeouts.Write,
		IdleTimeout:  s.timeouts.Idle,
	}

	var janitorCtx context.Context
	janitorCtx, s.stop = context.WithCancel(context.Background())
	go s.purgeRevocations(janitorCtx, s.config.RevocationPurgeInterval())

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("addr", s.http.Addr).
			Dur("writeTimeout", s.timeouts.Write).
			Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			s.stop()
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// purgeRevocations deletes expired revocations every interval until ctx ends.
// A non-positive interval disables it.
func (s *Server) purgeRevocations(ctx context.Context, interval time.Duration) {
	if s.purger == nil || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.purgeOnce(ctx, now)
		}
	}
}

func (s *Server) purgeOnce(ctx context.Context, now time.Time) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Shutdown)
	defer cancel()

	purged, err := s.purger.PurgeExpired(ctx, now)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to purge expired token revocations")
		return
	}
	if purged > 0 {
		s.logger.Info().Int64("purged", purged).Msg("Expired token revocations removed")
	}
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.Shutdown)
	defer cancel()

	if s.stop != nil {
		s.stop()
	}

	var shutdownErr error
	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownErr = fmt.Errorf("server shutdown completed with errors: %w", err)
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	// in-flight registrations finish before their pool goes away
	if s.dbPool != nil {
		s.dbPool.Close()
		s.logger.Info().Msg("Database connection pool closed.")
	}

	return shutdownErr
}
