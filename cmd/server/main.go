package main

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/predictionmarkets/pm-clob/internal/api"
	"github.com/predictionmarkets/pm-clob/internal/cache"
	"github.com/predictionmarkets/pm-clob/internal/config"
	"github.com/predictionmarkets/pm-clob/internal/core"
	"github.com/predictionmarkets/pm-clob/internal/logging"
	"github.com/predictionmarkets/pm-clob/internal/publish"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)
	defer logger.Sync()

	pub := newPublisher(cfg)
	defer pub.Close()

	depthCache := newDepthCache(cfg)
	defer depthCache.Close()

	registry := core.NewRegistry()
	matcher := core.NewMatcher(registry)

	app := fiber.New()
	api.InitializeRoutes(app, registry, matcher, pub, depthCache, logger, cfg.DepthLevels)

	log.Fatal(app.Listen(cfg.ListenAddr))
}

func newPublisher(cfg config.Config) publish.TradePublisher {
	switch cfg.PublisherKind {
	case "redis":
		return publish.NewRedisPublisher(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisStream)
	case "kafka":
		return publish.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	default:
		return publish.Noop{}
	}
}

func newDepthCache(cfg config.Config) cache.DepthCache {
	switch cfg.DepthCacheKind {
	case "redis":
		return cache.NewRedisDepthCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default:
		return cache.Noop{}
	}
}
