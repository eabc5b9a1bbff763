// Package http hosts the echo server of the public API.
package http

import (
	"context"
	"log/slog"
	"net"
	"strconv"
	"time"

	"lamsa/config"
	"lamsa/internal/delivery"
	sharedmiddleware "lamsa/internal/delivery/middleware"

	httpmiddleware "lamsa/internal/delivery/http/middleware"
	"lamsa/internal/delivery/http/router"
	"lamsa/internal/delivery/http/validator"
	"lamsa/internal/domain/lifecycle"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	slogecho "github.com/samber/slog-echo"
	"go.uber.org/fx"
	"golang.org/x/time/rate"
)

type HTTPParams struct {
	fx.In
	fx.Lifecycle

	Config       *config.Config
	Logger       *slog.Logger
	RouterParams router.RouterParams
}

type httpServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

func NewServer(params HTTPParams) (delivery.Delivery, error) {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.Validator = validator.New()

	echoServer.Use(middleware.Recover())
	echoServer.Use(middleware.CORS())

	requestIDMiddleware := sharedmiddleware.NewRequestIDMiddleware(params.Logger)
	echoServer.Use(requestIDMiddleware.Process)

	echoServer.Use(slogecho.New(params.Logger))

	if params.Config.HTTP.RateLimit.Enabled {
		echoServer.Use(rateLimiter(params.Config.HTTP.RateLimit))
	}

	errorMiddleware := httpmiddleware.NewErrorMiddleware(params.Logger, params.Config)
	echoServer.HTTPErrorHandler = errorMiddleware.HandleHTTPError

	router.NewRouter(params.RouterParams).RegisterRoutes(echoServer)

	delivery := &httpServer{
		cfg:    params.Config,
		logger: params.Logger,
		server: echoServer,
	}

	params.Append(fx.Hook{
		OnStop: delivery.stop,
	})

	return delivery, nil
}

// rateLimiter applies the per-IP limit to every route. The identity is the
// proxy-aware client IP echo derives from the request.
func rateLimiter(cfg config.RateLimitConfig) echo.MiddlewareFunc {
	window := cfg.Window
	if window <= 0 {
		window = 15 * time.Minute
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(cfg.Requests) / window.Seconds()),
			Burst:     cfg.Requests,
			ExpiresIn: window,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
	})
}

func (s *httpServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting HTTP server", slog.String("hostPort", hostPort))

	s.server.Server.ReadTimeout = s.cfg.HTTP.Timeouts.ReadTimeout
	s.server.Server.ReadHeaderTimeout = s.cfg.HTTP.Timeouts.ReadHeaderTimeout
	s.server.Server.WriteTimeout = s.cfg.HTTP.Timeouts.WriteTimeout
	s.server.Server.IdleTimeout = s.cfg.HTTP.Timeouts.IdleTimeout

	if err := s.server.Start(hostPort); err != nil {
		return errors.Wrap(err, "failed to serve http")
	}

	return nil
}

func (s *httpServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
