package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/brooklinpub/brooklin/pkg/cache"
	"github.com/brooklinpub/brooklin/pkg/curve"
	"github.com/brooklinpub/brooklin/pkg/placement"
	"github.com/brooklinpub/brooklin/pkg/specials"
)

// Limits applied to query parameters.
const (
	MaxCount     = 200
	MaxDimension = 10000.0
)

// Specials is the part of specials.Client the server uses.
type Specials interface {
	Active(ctx context.Context, refresh bool) ([]specials.Special, error)
}

// Options configures a Server.
type Options struct {
	// Path is SVG path data for the curve. Empty uses curve.DefaultPath.
	Path string

	Placement placement.Options

	// Cache stores rendered placements. Nil disables caching.
	Cache cache.Cache

	Keyer cache.Keyer

	// TTL bounds cached renders. Zero keeps them until evicted.
	TTL time.Duration

	// Specials labels hotspots. Nil serves unlabelled placements.
	Specials Specials

	Logger *log.Logger
}

// Server handles placement requests.
type Server struct {
	router   chi.Router
	path     *curve.Polyline
	pathHash string
	opts     placement.Options
	cache    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	specials Specials
	logger   *log.Logger
}

// New parses the curve and builds the router.
func New(opts Options) (*Server, error) {
	d := opts.Path
	if d == "" {
		d = curve.DefaultPath
	}
	path, err := curve.ParsePath(d)
	if err != nil {
		return nil, err
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	s := &Server{
		path:     path,
		pathHash: cache.Hash([]byte(d)),
		opts:     opts.Placement.WithDefaults(),
		cache:    opts.Cache,
		keyer:    opts.Keyer,
		ttl:      opts.TTL,
		specials: opts.Specials,
		logger:   opts.Logger,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Get("/placements", s.handlePlacements)
	r.Get("/specials/active", s.handleActiveSpecials)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully, giving in-flight requests up to five seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}
