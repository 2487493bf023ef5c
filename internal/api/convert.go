package api

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/predictionmarkets/pm-clob/internal/core"
)

func toSide(s string) (core.Side, bool) {
	switch core.Side(s) {
	case core.Buy, core.Sell:
		return core.Side(s), true
	default:
		return "", false
	}
}

func toOutcome(s string) (core.Outcome, bool) {
	switch core.Outcome(s) {
	case core.Yes, core.No:
		return core.Outcome(s), true
	default:
		return "", false
	}
}

func toOrderType(s string) (core.OrderType, bool) {
	switch core.OrderType(s) {
	case core.Limit, core.Market, core.PostOnly:
		return core.OrderType(s), true
	default:
		return "", false
	}
}

func toDecimal(s string) (decimal.Decimal, bool) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return v, true
}

// toLevels parses the caller-supplied levels query parameter, falling back
// to def when it is absent. A present-but-invalid value is rejected rather
// than silently defaulted.
func toLevels(s string, def int) (int, bool) {
	if s == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func orderToView(o *core.Order) OrderView {
	return OrderView{
		OrderID:   o.OrderID,
		UserID:    o.UserID,
		MarketID:  o.MarketID,
		Side:      string(o.Side),
		Outcome:   string(o.Outcome),
		OrderType: string(o.OrderType),
		Price:     o.Price.String(),
		Quantity:  o.Quantity.String(),
		Filled:    o.Filled.String(),
		Status:    string(o.Status),
	}
}

func tradeToView(t *core.Trade) TradeView {
	return TradeView{
		TradeID:         t.TradeID,
		MarketID:        t.MarketID,
		Outcome:         string(t.Outcome),
		TradeType:       string(t.TradeType),
		BuyerID:         t.BuyerID,
		SellerID:        t.SellerID,
		BuyOrderID:      t.BuyOrderID,
		SellOrderID:     t.SellOrderID,
		BuyReservation:  t.BuyReservation,
		SellReservation: t.SellReservation,
		Quantity:        t.Quantity.String(),
		Price:           t.Price.String(),
		Timestamp:       t.Timestamp.Format(time.RFC3339),
	}
}

func complementaryToView(m *core.ComplementaryMatch) ComplementaryMatchView {
	return ComplementaryMatchView{
		TradeID:        m.TradeID,
		MarketID:       m.MarketID,
		YesBuyerID:     m.YesBuyerID,
		NoBuyerID:      m.NoBuyerID,
		YesOrderID:     m.YesOrderID,
		NoOrderID:      m.NoOrderID,
		YesReservation: m.YesReservation,
		NoReservation:  m.NoReservation,
		Quantity:       m.Quantity.String(),
		YesPrice:       m.YesPrice.String(),
		NoPrice:        m.NoPrice.String(),
		Timestamp:      m.Timestamp.Format(time.RFC3339),
	}
}

func depthToView(d core.Depth) DepthView {
	return DepthView{
		Bids: levelsToView(d.Bids),
		Asks: levelsToView(d.Asks),
	}
}

func levelsToView(levels []core.LevelDepth) []LevelView {
	out := make([]LevelView, 0, len(levels))
	for _, l := range levels {
		out = append(out, LevelView{
			Price:      l.Price.String(),
			Quantity:   l.Quantity.String(),
			OrderCount: l.OrderCount,
		})
	}
	return out
}
