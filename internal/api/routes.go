package api

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/predictionmarkets/pm-clob/internal/cache"
	"github.com/predictionmarkets/pm-clob/internal/core"
	"github.com/predictionmarkets/pm-clob/internal/publish"
)

// InitializeRoutes mounts the matching core's HTTP surface on app.
func InitializeRoutes(app *fiber.App, registry *core.Registry, matcher *core.Matcher, pub publish.TradePublisher, depthCache cache.DepthCache, log *zap.Logger, depthLevels int) {
	ctx := context.Background()

	app.Post("/v1/markets/:marketId/orders", PlaceOrderHandler(ctx, matcher, pub, log))
	app.Get("/v1/markets/:marketId/orderbook", GetOrderbookHandler(ctx, registry, depthLevels, depthCache))
	app.Post("/v1/markets/:marketId/orders/:orderId/cancel", CancelOrderHandler(matcher))
}
