// Package api exposes the REST surface consumed by the browser extension.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"recruiterpro/internal/auth"
	"recruiterpro/internal/common/config"
	"recruiterpro/internal/common/logger"
	"recruiterpro/internal/common/observability"
	"recruiterpro/internal/extractor"
	"recruiterpro/internal/feedback"
	"recruiterpro/internal/storage"
	"recruiterpro/internal/wallet"
)

// Server is the HTTP front of the service.
type Server struct {
	config    *config.Config
	router    *gin.Engine
	server    *http.Server
	logger    logger.Logger
	auth      *auth.Service
	extractor *extractor.Extractor
	feedback  *feedback.Service
	wallet    *wallet.Service
	store     storage.Store
	obs       *observability.Observability
	fetcher   *extractor.Fetcher
	retryOpts extractor.RetryOptions
}

// Dependencies collects the services the API routes.
type Dependencies struct {
	Auth      *auth.Service
	Extractor *extractor.Extractor
	Feedback  *feedback.Service
	Wallet    *wallet.Service
	Store     storage.Store
	Logger    logger.Logger
	Obs       *observability.Observability
}

// NewServer builds the router and binds all routes.
func NewServer(cfg *config.Config, deps Dependencies) *Server {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	s := &Server{
		config:    cfg,
		router:    router,
		logger:    deps.Logger.WithFields(map[string]interface{}{"component": "api"}),
		auth:      deps.Auth,
		extractor: deps.Extractor,
		feedback:  deps.Feedback,
		wallet:    deps.Wallet,
		store:     deps.Store,
		obs:       deps.Obs,
		fetcher:   extractor.NewFetcher(time.Duration(cfg.Extraction.FetchTimeout) * time.Millisecond),
		retryOpts: extractor.RetryOptions{
			Delay:       time.Duration(cfg.Extraction.ObserveDelay) * time.Millisecond,
			MaxAttempts: cfg.Extraction.MaxAttempts,
		},
	}

	router.Use(s.observeMiddleware())

	router.GET("/healthz", s.handleHealthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/register", s.handleRegister)
		authGroup.POST("/login", s.handleLogin)
		authGroup.POST("/logout", s.handleLogout)
		authGroup.GET("/me", s.requireSession(), s.handleMe)

		authed := api.Group("")
		authed.Use(s.requireSession())
		authed.POST("/searches", s.handleCreateSearch)
		authed.GET("/searches", s.handleListSearches)
		authed.POST("/feedback", s.handleSubmitFeedback)
		authed.GET("/wallet", s.handleWallet)
		authed.GET("/settings", s.handleGetSettings)
		authed.PUT("/settings", s.handleUpdateSettings)
	}

	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Millisecond,
	}

	return s
}

// Router exposes the gin engine for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving and blocks until the listener closes.
func (s *Server) Start() error {
	s.logger.Info("http server starting", map[string]interface{}{"addr": s.server.Addr})
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
