//go:build wireinject
// +build wireinject

package di

import (
	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/infras/redis"
	"lodge/infras/s3"
	"lodge/shared/cache"
	"lodge/transport/http"
	"lodge/transport/http/middleware"
	"lodge/transport/http/router"

	bookingRepository "lodge/internal/domains/booking/repository"
	inventoryRepository "lodge/internal/domains/inventory/repository"
	inventoryService "lodge/internal/domains/inventory/service"
	propertyRepository "lodge/internal/domains/property/repository"
	"lodge/internal/domains/sweeper"
	inventoryHandler "lodge/internal/handlers/inventory"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.TxRunner), new(*postgres.Connection)),
	otel.New,
	redis.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var propertyDomain = wire.NewSet(
	propertyRepository.New,
)

var inventoryDomain = wire.NewSet(
	inventoryRepository.New,
	inventoryService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
)

var sweeperDomain = wire.NewSet(
	sweeper.New,
	sweeper.NewScheduler,
)

var domains = wire.NewSet(
	propertyDomain,
	inventoryDomain,
	bookingDomain,
	sweeperDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	inventoryHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
