package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "audio-minutes/internal/api/errors"
	"audio-minutes/internal/api/middleware"
	v1routes "audio-minutes/internal/api/v1/routes"
	"audio-minutes/internal/api/v1/services"
	"audio-minutes/internal/app/api"
	"audio-minutes/internal/config"
)

const idleTimeout = 120 * time.Second

// Server represents the API server
type Server struct {
	config     *config.Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer creates a new API server
func NewServer(
	cfg *config.Config,
	pipeline services.Pipeline,
	providerInfo api.ProviderInfo,
	metricsHandler http.Handler,
	logger *zap.Logger,
) *Server {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.CORS(cfg.CORS))

	v1routes.RegisterRoutes(router, &v1routes.ServiceContainer{
		MinutesService: services.NewMinutesService(pipeline, "", logger.Named("minutes")),
		ProviderInfo:   providerInfo,
		MetricsHandler: metricsHandler,
	})
	router.NoRoute(func(c *gin.Context) {
		middleware.HandleError(c, apierrors.NewNotFoundError(c.Request.URL.Path))
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  idleTimeout,
	}

	return &Server{
		config:     cfg,
		router:     router,
		httpServer: httpServer,
		logger:     logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully. TLS is
// used when https.enabled is set.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	scheme := "http"
	if s.config.HTTPS.Enabled {
		scheme = "https"
	}
	s.logger.Info("Starting API server",
		zap.String("address", s.httpServer.Addr),
		zap.String("scheme", scheme),
		zap.String("environment", s.config.Server.Environment),
	)

	errCh := make(chan error, 1)
	go func() {
		var err error
		if s.config.HTTPS.Enabled {
			err = s.httpServer.ListenAndServeTLS(s.config.HTTPS.CertFile, s.config.HTTPS.KeyFile)
		} else {
			err = s.httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.logger.Error("Failed to start server", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	s.logger.Info("API server shutdown complete")
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
