package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/SergeyBogomolovv/water-sales-service/docs"
	"github.com/SergeyBogomolovv/water-sales-service/internal/app"
	"github.com/SergeyBogomolovv/water-sales-service/internal/config"
	"github.com/SergeyBogomolovv/water-sales-service/internal/handler"
	"github.com/SergeyBogomolovv/water-sales-service/internal/postgres"
	"github.com/SergeyBogomolovv/water-sales-service/internal/publisher"
	"github.com/SergeyBogomolovv/water-sales-service/internal/repo"
	"github.com/SergeyBogomolovv/water-sales-service/internal/service"
	"github.com/SergeyBogomolovv/water-sales-service/pkg/cache"
	"github.com/SergeyBogomolovv/water-sales-service/pkg/trm"

	"github.com/joho/godotenv"
)

// @title           Water Sales Service API
// @version         1.0
// @description     Документация HTTP API: заказы, оплата, доставка и списание остатков
// @BasePath        /
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := postgres.New(ctx, conf.Postgres)
	panicIfErr("failed to connect to db", err)
	logger.Info("postgres connected")

	orderRepo := repo.NewOrderRepo(db)
	cache := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)
	events := publisher.NewKafkaPublisher(logger, conf.Kafka)

	deps := service.Deps{
		TxManager:  trm.NewManager(db),
		Orders:     orderRepo,
		Deliveries: orderRepo,
		Catalog:    repo.NewCatalogRepo(db),
		Customers:  repo.NewCustomerRepo(db),
		Users:      repo.NewUserRepo(db),
		Publisher:  events,
	}

	orderService := service.NewOrderService(logger, deps)
	deliveryService := service.NewDeliveryService(logger, deps)
	queryService := service.NewQueryService(logger, deps, conf.Listing.MaxPerPage)

	handler.RegisterMetrics()
	httpHandler := handler.NewHTTPHandler(logger, orderService, deliveryService, queryService)
	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, orderService, cache)

	app := app.New(logger, conf)

	app.SetHTTPHandlers(httpHandler)
	app.SetConsumers(kafkaHandler)
	app.SetStarters(postgres.NewMigrator(db, logger))
	app.SetClosers(events, db)

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}
