// Package server exposes the portfolio page over HTTP with gin.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tasneemkhan/portfolio/internal/view"
	"github.com/tasneemkhan/portfolio/internal/visitors"
)

// EventPath is where nav controls post their actions.
const EventPath = "/ui"

// HitTracker receives page views. *visitors.Tracker satisfies it.
type HitTracker interface {
	Track(h visitors.Hit) bool
}

// Options holds the listener settings. The gin mode is process-wide and
// is set by the caller before New.
type Options struct {
	Port              int
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	// TrustedProxies may set X-Forwarded-For. Empty trusts nobody.
	TrustedProxies    []string
}

// Server wires the renderer into a gin engine.
type Server struct {
	opts     Options
	log      *zap.Logger
	renderer *view.Renderer
	tracker  HitTracker
	engine   *gin.Engine
}

// New builds the engine. tracker may be nil to disable visit tracking.
func New(opts Options, renderer *view.Renderer, tracker HitTracker, logger *zap.Logger) (s *Server, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s = &Server{
		opts:     opts,
		log:      logger,
		renderer: renderer,
		tracker:  tracker,
	}
	s.engine, err = s.buildEngine()
	if err != nil {
		return nil, err
	}
	return s, err
}

func (s *Server) buildEngine() (r *gin.Engine, err error) {
	r = gin.New()
	err = r.SetTrustedProxies(s.opts.TrustedProxies)
	if err != nil {
		err = errors.Wrap(err, "invalid trusted proxies")
		return nil, err
	}

	r.Use(recovery(s.log))
	r.Use(requestID())
	r.Use(requestLogger(s.log))
	if s.tracker != nil {
		r.Use(visitorTracking(s.tracker))
	}

	r.StaticFS("/static", http.FS(view.Assets()))

	r.GET("/", s.handleIndex)
	r.POST(EventPath+"/:action", s.handleEvent)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r, err
}

// Handler returns the HTTP handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) (err error) {
	addr := fmt.Sprintf(":%d", s.opts.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: s.opts.ReadHeaderTimeout,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("portfolio listening", zap.String("addr", addr))

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
			return err
		}
		err = errors.Wrap(err, "http server failed")
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down", zap.Duration("timeout", s.opts.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		err = errors.Wrap(err, "graceful shutdown failed")
		return err
	}
	if lerr := <-errCh; lerr != nil && !errors.Is(lerr, http.ErrServerClosed) {
		err = errors.Wrap(lerr, "http server failed")
	}
	return err
}
