// Package server собирает HTTP API песочницы хранилища документов.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/homeblocks/internal/server/handlers"
	"github.com/iudanet/homeblocks/internal/server/jwt"
	"github.com/iudanet/homeblocks/internal/server/middleware"
	"github.com/iudanet/homeblocks/internal/server/storage"
)

const healthPath = "/v1/health"

// Config параметры HTTP сервера песочницы
type Config struct {
	Addr            string
	Version         string
	RateLimit       int
	RateWindow      time.Duration
	ShutdownTimeout time.Duration
}

// Server HTTP сервер песочницы
type Server struct {
	httpServer *http.Server
	limiter    *middleware.RateLimiter
	logger     *slog.Logger
	cfg        Config
}

// New создает сервер поверх хранилища узлов и сервиса токенов
func New(cfg Config, store storage.NodeStorage, tokens *jwt.Service, logger *slog.Logger) *Server {
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = time.Second
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		logger: logger,
		cfg:    cfg,
	}
	if cfg.RateLimit > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow, logger)
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.routes(store, tokens),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	return s
}

// Handler возвращает корневой http.Handler со всеми middleware
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) routes(store storage.NodeStorage, tokens *jwt.Service) http.Handler {
	health := handlers.NewHealthHandler(s.logger, store, s.cfg.Version)
	blocks := handlers.NewBlocksHandler(s.logger, store)
	pages := handlers.NewPagesHandler(s.logger, store)

	// Порядок: лимит по IP, проверка версии, аутентификация.
	// Лимит стоит первым, чтобы перебор токенов тоже упирался в него.
	protected := func(h http.HandlerFunc) http.Handler {
		var next http.Handler = h
		next = middleware.AuthMiddleware(s.logger, tokens)(next)
		next = middleware.VersionMiddleware(s.logger)(next)
		if s.limiter != nil {
			next = middleware.RateLimitMiddleware(s.limiter, s.logger)(next)
		}
		return next
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+healthPath, health.Health)
	mux.Handle("POST /v1/pages", protected(pages.CreatePage))
	mux.Handle("GET /v1/blocks/{id}", protected(blocks.GetBlock))
	mux.Handle("PATCH /v1/blocks/{id}", protected(blocks.UpdateBlock))
	mux.Handle("DELETE /v1/blocks/{id}", protected(blocks.DeleteBlock))
	mux.Handle("GET /v1/blocks/{id}/children", protected(blocks.ListChildren))
	mux.Handle("PATCH /v1/blocks/{id}/children", protected(blocks.AppendChildren))

	var handler http.Handler = mux
	handler = middleware.LoggingWithSkip(s.logger, []string{healthPath})(handler)
	return middleware.RecoveryMiddleware(s.logger)(handler)
}

// Run обслуживает запросы до отмены ctx, затем корректно останавливает сервер
func (s *Server) Run(ctx context.Context) error {
	defer s.stopLimiter()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Sandbox server listening", "addr", s.cfg.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down sandbox server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// Close освобождает ресурсы сервера, если Run не вызывался
func (s *Server) Close() {
	s.stopLimiter()
}

func (s *Server) stopLimiter() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}
