package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Yimmi-urbano/dencia-app-front/internal/api/handlers/http/composer"
	"github.com/Yimmi-urbano/dencia-app-front/internal/api/handlers/http/feed"
	"github.com/Yimmi-urbano/dencia-app-front/internal/api/handlers/http/pages"
	"github.com/Yimmi-urbano/dencia-app-front/internal/api/handlers/http/system"
	"github.com/Yimmi-urbano/dencia-app-front/internal/config"
	"github.com/Yimmi-urbano/dencia-app-front/internal/middleware"
	"github.com/Yimmi-urbano/dencia-app-front/internal/service"
)

const apiBase = "/api/v1"

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, svc *service.Service, renderer pages.Renderer, redis system.Pinger) *Server {
	composerHandler := composer.NewHandler(logger, svc.Composer)
	feedHandler := feed.NewHandler(logger, svc.Feed)
	pagesHandler := pages.NewHandler(logger, renderer, apiBase)
	systemHandler := system.NewHandler(logger, redis)

	r := InitRouter(cfg, composerHandler, feedHandler, pagesHandler, systemHandler, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(
	cfg *config.Config,
	composerHandler *composer.Handler,
	feedHandler *feed.Handler,
	pagesHandler *pages.Handler,
	systemHandler *system.Handler,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Metrics)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	r.Get("/", pagesHandler.Feed)
	r.Get("/reportar", pagesHandler.Composer)

	r.Route(apiBase, func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.Web.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			MaxAge:         300,
		}))

		// COMPOSER
		api.Route("/drafts", func(dr chi.Router) {
			dr.Post("/", composerHandler.DraftCreate)

			dr.Route("/{id}", func(rr chi.Router) {
				rr.Get("/", composerHandler.DraftGet)
				rr.Patch("/", composerHandler.DraftEdit)
				rr.Delete("/", composerHandler.DraftDiscard)
				rr.Post("/location/address", composerHandler.DraftResolveAddress)
				rr.Post("/location/device", composerHandler.DraftResolveDevice)
				rr.Put("/location/pin", composerHandler.DraftMovePin)
				rr.Post("/submit", composerHandler.DraftSubmit)
			})
		})

		// FEED
		api.Route("/feed", func(fr chi.Router) {
			fr.Post("/", feedHandler.FeedOpen)

			fr.Route("/{id}", func(rr chi.Router) {
				rr.Get("/", feedHandler.FeedGet)
				rr.Post("/reload", feedHandler.FeedReload)
				rr.Post("/markers/{markerID}/focus", feedHandler.FeedFocus)
				rr.Put("/view", feedHandler.FeedSetView)
			})
		})

		// SYSTEM
		api.Get("/health", systemHandler.SystemHealth)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
