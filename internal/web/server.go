// Package web serves the holonet search pages and JSON API.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/mwiater/holonet/internal/logging"
	"github.com/mwiater/holonet/internal/search"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:embed templates/*.html
var templateFS embed.FS

const shutdownTimeout = 5 * time.Second

// Runner produces the enriched, sorted outcome for a query.
// *search.Pipeline satisfies it.
type Runner interface {
	Run(ctx context.Context, query string) (search.Outcome, error)
}

// Server renders search results over HTTP.
type Server struct {
	runner    Runner
	indexed   int
	templates *template.Template
	handler   http.Handler
}

// New parses the embedded templates and wires the routes. indexed is the
// number of names in the startup index, reported by /healthz.
func New(runner Runner, indexed int) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s := &Server{runner: runner, indexed: indexed, templates: tmpl}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /search", s.handleSearchForm)
	mux.HandleFunc("GET /search-character/{query}", s.handleSearchCharacter)
	mux.HandleFunc("GET /api/search-character/{query}", s.handleAPISearchCharacter)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.handler = withRequestID(mux)
	return s, nil
}

// Handler returns the root handler, including request-ID middleware.
func (s *Server) Handler() http.Handler { return s.handler }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.LogEvent("listening on %s (%d names indexed)", ln.Addr(), s.indexed)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logging.LogEvent("shutting down web server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("X-Indexed-Names", strconv.Itoa(s.indexed))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func requestLogger(r *http.Request) *zap.Logger {
	return logging.L().With(zap.String("request_id", RequestID(r.Context())))
}
