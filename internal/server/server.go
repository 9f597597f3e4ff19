// Package server exposes the unified content as a read-only JSON API for
// local preview.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/smartymode/folio/pkg/core"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

// Reader is the read API served over HTTP. site.Service satisfies it.
type Reader interface {
	ListAllDocuments(ctx context.Context, collection core.Collection) ([]core.Document, error)
	GetDocument(ctx context.Context, collection core.Collection, slug string) (core.Document, error)
	ByCategory(ctx context.Context, collection core.Collection, category string) ([]core.Document, error)
	Categories(ctx context.Context, collection core.Collection) ([]string, error)
}

// Server routes HTTP requests to a Reader.
type Server struct {
	echo   *echo.Echo
	reader Reader
	logger *slog.Logger
}

// New builds the router.
func New(r Reader, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{echo: echo.New(), reader: r, logger: logger.With("component", "server")}
	e := s.echo
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := c.Request().Context()
			if v.Error == nil {
				s.logger.DebugContext(ctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				s.logger.WarnContext(ctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(noCache())

	e.GET("/healthz", s.health)
	api := e.Group("/api")
	api.GET("/:collection", s.list)
	api.GET("/:collection/categories", s.categories)
	api.GET("/:collection/:slug", s.get)
	return s
}

// Handler returns the router as a plain http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	lifecycle.Go(ctx, func(context.Context) error {
		s.logger.Info("listening", "addr", addr)
		errCh <- s.echo.Start(addr)
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		s.logger.Error("server panic", "error", err)
	}))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	return s.echo.Shutdown(shutdownCtx)
}

// noCache keeps browsers from holding on to preview responses while
// content is being edited.
func noCache() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("Cache-Control", "no-store")
			h.Set("X-Content-Type-Options", "nosniff")
			return next(c)
		}
	}
}
