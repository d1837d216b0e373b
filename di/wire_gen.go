// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"github.com/google/wire"
	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/infras/redis"
	"lodge/infras/s3"
	repository3 "lodge/internal/domains/booking/repository"
	"lodge/internal/domains/inventory/repository"
	"lodge/internal/domains/inventory/service"
	repository2 "lodge/internal/domains/property/repository"
	"lodge/internal/domains/sweeper"
	"lodge/internal/handlers/inventory"
	"lodge/shared/cache"
	"lodge/transport/http"
	"lodge/transport/http/middleware"
	"lodge/transport/http/router"
)

// Injectors from wire.go:

func InitializeService() *http.HTTP {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	repositoryInventory := repository.New(connection, otelOtel)
	property := repository2.New(connection, otelOtel)
	client := redis.New(configConfig)
	redisCache := cache.NewRedisCache(client, otelOtel)
	s3S3 := s3.New(configConfig, otelOtel)
	serviceInventory := service.New(configConfig, connection, repositoryInventory, property, redisCache, s3S3, otelOtel)
	booking := repository3.New(connection, otelOtel)
	kafkaClient := kafka.New(configConfig)
	sweeperSweeper := sweeper.New(configConfig, connection, booking, serviceInventory, kafkaClient, redisCache, otelOtel)
	handler := inventory.New(serviceInventory, sweeperSweeper, otelOtel)
	domainHandlers := router.DomainHandlers{
		Inventory: handler,
	}
	routerRouter := router.New(domainHandlers)
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	scheduler := sweeper.NewScheduler(configConfig, sweeperSweeper)
	httpHTTP := http.New(configConfig, routerRouter, appMiddleware, scheduler)
	return httpHTTP
}

// wire.go:

var configurations = wire.NewSet(config.Get)

var infrastructures = wire.NewSet(postgres.New, wire.Bind(new(postgres.TxRunner), new(*postgres.Connection)), otel.New, redis.New, kafka.New, s3.New)

var middlewares = wire.NewSet(middleware.NewAppMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache)

var propertyDomain = wire.NewSet(repository2.New)

var inventoryDomain = wire.NewSet(repository.New, service.New)

var bookingDomain = wire.NewSet(repository3.New)

var sweeperDomain = wire.NewSet(sweeper.New, sweeper.NewScheduler)

var domains = wire.NewSet(
	propertyDomain,
	inventoryDomain,
	bookingDomain,
	sweeperDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), inventory.New, router.New)
