package main

import (
	"context"
	"log/slog"
	"os"

	"rentease/config"
	"rentease/internal/delivery"
	"rentease/internal/delivery/http"
	"rentease/internal/delivery/http/middleware"
	"rentease/internal/delivery/http/router/handler"
	"rentease/internal/domain/service"
	"rentease/internal/infra/auth"
	logs "rentease/internal/infra/log"
	"rentease/internal/infra/media"
	"rentease/internal/infra/persistence/gormdb"
	"rentease/internal/infra/qrcode"
	"rentease/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		gormdb.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			gormdb.NewUserRepository,
			gormdb.NewListingRepository,
			gormdb.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			media.NewLocalStore,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return qrcode.NewQRCodeService(cfg.HTTP.BaseURL, 256, "M")
	}

	return qrcode.NewQRCodeService(cfg.HTTP.BaseURL, cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewListingService,
			impl.NewAdminService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewListingHandler,
			handler.NewAdminHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
