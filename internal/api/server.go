// Package api assembles the HTTP server: it wires the catalog, torrent
// search, watch list, and notification services onto an Echo router.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/nyanbar/nyanbar/internal/config"
	"github.com/nyanbar/nyanbar/internal/database"
	"github.com/nyanbar/nyanbar/internal/episodes"
	"github.com/nyanbar/nyanbar/internal/kvstore"
	"github.com/nyanbar/nyanbar/internal/metadata"
	"github.com/nyanbar/nyanbar/internal/metadata/anilist"
	"github.com/nyanbar/nyanbar/internal/torrents"
	"github.com/nyanbar/nyanbar/internal/torrents/nyaa"
	"github.com/nyanbar/nyanbar/internal/watchlist"
)

// Server handles HTTP requests for the nyanbar API.
type Server struct {
	echo   *echo.Echo
	logger zerolog.Logger
	cfg    *config.Config

	// Services
	anilistClient    *anilist.Client
	metadataService  *metadata.Service
	torrentService   *torrents.Service
	watchlistService *watchlist.Service
	notifier         *episodes.Notifier
	checker          *episodes.Checker
}

// NewServer creates a new API server instance.
func NewServer(db *database.DB, cfg *config.Config, logger zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:   e,
		logger: logger,
		cfg:    cfg,
	}

	store := kvstore.New(db.Conn(), logger)

	s.anilistClient = anilist.NewClient(cfg.AniList, logger)
	s.metadataService = metadata.NewService(s.anilistClient, time.Duration(cfg.AniList.CacheTTL)*time.Minute, logger)

	nyaaClient := nyaa.NewClient(cfg.Nyaa, logger)
	s.torrentService = torrents.NewService(nyaaClient, logger)

	s.watchlistService = watchlist.NewService(store, logger)

	s.notifier = episodes.NewNotifier(store, logger)
	s.checker = episodes.NewChecker(s.torrentService, s.watchlistService, s.notifier.Notify, logger)

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures Echo middleware.
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())

	s.echo.Use(middleware.RequestID())

	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogMethod:   true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				s.logger.Error().
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Err(v.Error).
					Msg("request error")
			} else {
				s.logger.Info().
					Str("method", v.Method).
					Str("uri", v.URI).
					Int("status", v.Status).
					Dur("latency", v.Latency).
					Msg("request")
			}
			return nil
		},
	}))

	s.echo.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
}

// setupRoutes configures API routes.
func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)

	api := s.echo.Group("/api")
	api.GET("/health", s.healthCheck)

	metadataHandlers := metadata.NewHandlers(s.metadataService)
	metadataHandlers.RegisterRoutes(api)

	torrentHandlers := torrents.NewHandlers(s.torrentService)
	torrentHandlers.RegisterRoutes(api)

	watchlistHandlers := watchlist.NewHandlers(s.watchlistService)
	watchlistHandlers.RegisterRoutes(api)

	episodeHandlers := episodes.NewHandlers(s.checker, s.notifier)
	episodeHandlers.RegisterRoutes(api)
}

// Checker returns the episode checker for lifecycle management.
func (s *Server) Checker() *episodes.Checker {
	return s.checker
}

// AniListClient returns the catalog client for startup verification.
func (s *Server) AniListClient() *anilist.Client {
	return s.anilistClient
}

// Echo returns the underlying Echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start begins listening for HTTP requests.
func (s *Server) Start(address string) error {
	s.logger.Info().Str("address", address).Msg("starting HTTP server")
	return s.echo.Start(address)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": config.Version,
	})
}
