package api

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/predictionmarkets/pm-clob/internal/cache"
	"github.com/predictionmarkets/pm-clob/internal/core"
	"github.com/predictionmarkets/pm-clob/internal/publish"
)

// depthCacheTTL bounds how stale a cached depth snapshot may be: a caller
// polling GetOrderbook never sees the book lag behind by more than two
// seconds.
const depthCacheTTL = 2 * time.Second

// errStatus maps a core error to the HTTP status the frontend reports it
// with. Any error not in this table is treated as internal.
func errStatus(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidArgument), errors.Is(err, core.ErrInvalidOrder):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, core.ErrSelfTrade):
		return fiber.StatusConflict
	case errors.Is(err, core.ErrNotFound), errors.Is(err, core.ErrOrderNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, core.ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, core.ErrOrderNotCancellable):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func errJSON(c fiber.Ctx, err error) error {
	return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
}

// PlaceOrderHandler parses and validates a PlaceOrderRequest, submits it to
// matcher, publishes the resulting executions and returns the order's
// final state plus every trade it caused (§6 PlaceOrder).
func PlaceOrderHandler(ctx context.Context, matcher *core.Matcher, pub publish.TradePublisher, log *zap.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		marketID := c.Params("marketId")
		if marketID == "" {
			return fiber.ErrBadRequest
		}

		var req PlaceOrderRequest
		if err := c.Bind().Body(&req); err != nil {
			return fiber.ErrBadRequest
		}
		if err := validateInput(&req); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}

		side, ok := toSide(req.Side)
		if !ok {
			return errJSON(c, core.ErrInvalidArgument)
		}
		outcome, ok := toOutcome(req.Outcome)
		if !ok {
			return errJSON(c, core.ErrInvalidArgument)
		}
		orderType, ok := toOrderType(req.OrderType)
		if !ok {
			return errJSON(c, core.ErrInvalidArgument)
		}
		price, ok := toDecimal(req.Price)
		if !ok {
			return errJSON(c, core.ErrInvalidArgument)
		}
		qty, ok := toDecimal(req.Quantity)
		if !ok {
			return errJSON(c, core.ErrInvalidArgument)
		}

		order := core.NewOrder(req.UserID, marketID, side, outcome, orderType, price, qty, req.ReservationID)

		result, err := matcher.PlaceOrder(order)
		if err != nil {
			return errJSON(c, err)
		}

		if len(result.Trades) > 0 || len(result.Complementary) > 0 {
			if pubErr := pub.Publish(ctx, toExecution(result)); pubErr != nil {
				log.Warn("publish execution failed", zap.String("order_id", order.OrderID), zap.Error(pubErr))
			}
		}

		return c.Status(fiber.StatusCreated).JSON(resultToResponse(result))
	}
}

// GetOrderbookHandler returns the current bid/ask depth ladder for the
// requested outcome of a market, bounded to the requested number of levels
// (§6 GetOrderbook: `GetOrderbook(market_id, outcome, levels) -> depth`).
// depthCache is consulted first and populated on a miss; the core's own
// GetDepth is always the value served on a miss, so a cold or disabled
// cache never changes the answer, only how often it is recomputed.
func GetOrderbookHandler(ctx context.Context, registry *core.Registry, defaultDepthLevels int, depthCache cache.DepthCache) fiber.Handler {
	return func(c fiber.Ctx) error {
		marketID := c.Params("marketId")
		if marketID == "" {
			return fiber.ErrBadRequest
		}

		outcome, ok := toOutcome(c.Query("outcome"))
		if !ok {
			return errJSON(c, core.ErrInvalidArgument)
		}
		levels, ok := toLevels(c.Query("levels"), defaultDepthLevels)
		if !ok {
			return errJSON(c, core.ErrInvalidArgument)
		}

		// The cached payload is bounded by levels, so the level count is
		// part of the cache key alongside the outcome.
		cacheVariant := string(outcome) + ":" + strconv.Itoa(levels)
		if cached, ok := depthCache.Get(ctx, marketID, cacheVariant); ok {
			c.Response().Header.SetContentType(fiber.MIMEApplicationJSON)
			return c.Send(cached)
		}

		book, ok := registry.Get(marketID)
		if !ok {
			return errJSON(c, core.ErrNotFound)
		}

		resp := OrderbookResponse{
			MarketID: marketID,
			Outcome:  string(outcome),
			Depth:    depthToView(book.GetDepth(outcome, levels)),
		}
		depthCache.Set(ctx, marketID, cacheVariant, resp, depthCacheTTL)
		return c.JSON(resp)
	}
}

// CancelOrderHandler cancels a resting order on behalf of its owner.
func CancelOrderHandler(matcher *core.Matcher) fiber.Handler {
	return func(c fiber.Ctx) error {
		marketID := c.Params("marketId")
		orderID := c.Params("orderId")
		if marketID == "" || orderID == "" {
			return fiber.ErrBadRequest
		}

		var req struct {
			UserID string `json:"user_id" validate:"required"`
		}
		if err := c.Bind().Body(&req); err != nil {
			return fiber.ErrBadRequest
		}
		if err := validateInput(&req); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		}

		order, err := matcher.CancelOrder(marketID, orderID, req.UserID)
		if err != nil {
			return errJSON(c, err)
		}
		return c.JSON(orderToView(order))
	}
}

func toExecution(result *core.PlaceResult) publish.Execution {
	trades := make([]TradeView, 0, len(result.Trades))
	for _, t := range result.Trades {
		trades = append(trades, tradeToView(t))
	}
	comp := make([]ComplementaryMatchView, 0, len(result.Complementary))
	for _, m := range result.Complementary {
		comp = append(comp, complementaryToView(m))
	}
	return publish.Execution{
		MarketID:      result.Order.MarketID,
		OrderID:       result.Order.OrderID,
		Trades:        trades,
		Complementary: comp,
	}
}

func resultToResponse(result *core.PlaceResult) PlaceOrderResponse {
	trades := make([]TradeView, 0, len(result.Trades))
	for _, t := range result.Trades {
		trades = append(trades, tradeToView(t))
	}
	comp := make([]ComplementaryMatchView, 0, len(result.Complementary))
	for _, m := range result.Complementary {
		comp = append(comp, complementaryToView(m))
	}
	return PlaceOrderResponse{
		Order:         orderToView(result.Order),
		Trades:        trades,
		Complementary: comp,
	}
}
