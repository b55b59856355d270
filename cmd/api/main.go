package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/SteampunkGill/Docker-final-assignment/internal/config"
	"github.com/SteampunkGill/Docker-final-assignment/internal/handler"
	"github.com/SteampunkGill/Docker-final-assignment/internal/infra/db"
	"github.com/SteampunkGill/Docker-final-assignment/internal/infra/event"
	infraRepo "github.com/SteampunkGill/Docker-final-assignment/internal/infra/repository"
	"github.com/SteampunkGill/Docker-final-assignment/internal/infra/token"
	"github.com/SteampunkGill/Docker-final-assignment/internal/logging"
	"github.com/SteampunkGill/Docker-final-assignment/internal/server"
	"github.com/SteampunkGill/Docker-final-assignment/internal/usecase"
	auth "github.com/SteampunkGill/Docker-final-assignment/internal/usecase/auth_usecase"
	"github.com/SteampunkGill/Docker-final-assignment/internal/validator"
)

type eventPublisher interface {
	usecase.OrderEventPublisher
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logging.New("info", false, os.Stderr)
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log := logging.New(cfg.LogLevel, cfg.LogPretty, os.Stdout)
	log.Info().Str("db_driver", cfg.DBDriver).Msg("shop api starting...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB
	gormDB, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if cfg.DBDriver == config.DriverPostgres {
		if err := db.Migrate(gormDB, log); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	// events
	var publisher eventPublisher = event.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = event.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrderTopic)
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaOrderTopic).Msg("order events enabled")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close event publisher")
		}
	}()

	// repositories
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartLineGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	clock := usecase.SystemClock{}

	// usecases
	registerUC := auth.NewRegisterUserUsecase(userRepo, validator.NewAuthValidator(userRepo), auth.NewBcryptPasswordHasher(12))
	loginUC := auth.NewLoginUsecase(userRepo, auth.NewBcryptPasswordVerifier(), token.NewJWTIssuer(cfg.JWTSecret, cfg.JWTTTL), clock)
	checkoutUC := usecase.NewCheckoutUsecase(txm, usecase.TimestampOrderNo{}, clock, publisher)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, orderItemRepo, clock, publisher)

	e := server.New(cfg, log, server.Handlers{
		Auth:    handler.NewAuthHandler(registerUC, loginUC, auth.NewGetProfileUsecase(userRepo)),
		Product: handler.NewProductHandler(usecase.NewProductUsecase(productRepo)),
		Cart:    handler.NewCartHandler(usecase.NewCartUsecase(cartRepo, productRepo)),
		Address: handler.NewAddressHandler(usecase.NewAddressUsecase(addressRepo)),
		Order:   handler.NewOrderHandler(checkoutUC, orderUC),
	})

	if err := server.Start(ctx, e, cfg.Addr(), log); err != nil {
		log.Error().Err(err).Msg("server failed")
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
