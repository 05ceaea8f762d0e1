// Package http hosts the echo HTTP server for the listing service.
package http

import (
	"context"
	"log/slog"
	"net"
	"strconv"

	"rentease/config"
	"rentease/internal/delivery"
	"rentease/internal/delivery/http/middleware"
	"rentease/internal/delivery/http/router"
	"rentease/internal/delivery/http/validator"
	"rentease/internal/domain/lifecycle"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	slogecho "github.com/samber/slog-echo"
	"go.uber.org/fx"
)

// requestBodyLimit caps a whole multipart submission: five images of five
// MiB each plus the form fields.
const requestBodyLimit = "30M"

type HTTPParams struct {
	fx.In
	fx.Lifecycle

	Config          *config.Config
	Logger          *slog.Logger
	RouterParams    router.RouterParams
	ErrorMiddleware *middleware.ErrorMiddleware
	RequestID       *middleware.RequestIDMiddleware
}

type httpServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

func NewServer(params HTTPParams) (delivery.Delivery, error) {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HTTPErrorHandler = params.ErrorMiddleware.HandleHTTPError
	echoServer.Validator = validator.New()
	echoServer.Use(params.RequestID.Handle)
	echoServer.Use(slogecho.New(params.Logger))
	echoServer.Use(echomiddleware.Recover())
	echoServer.Use(echomiddleware.CORS())
	echoServer.Use(echomiddleware.BodyLimit(requestBodyLimit))

	timeouts := params.Config.HTTP.Timeouts
	echoServer.Server.ReadTimeout = timeouts.ReadTimeout
	echoServer.Server.ReadHeaderTimeout = timeouts.ReadHeaderTimeout
	echoServer.Server.WriteTimeout = timeouts.WriteTimeout
	echoServer.Server.IdleTimeout = timeouts.IdleTimeout

	if media := params.Config.Media; media != nil {
		echoServer.Static("/"+media.PublicPrefix, media.Dir)
	}

	router := router.NewRouter(params.RouterParams)
	router.RegisterRoutes(echoServer)

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

func (s *httpServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting HTTP server", slog.String("hostPort", hostPort))
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
