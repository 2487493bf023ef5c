package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trade is a secondary execution: a transfer of existing shares of one
// outcome between two users at a single price (§3, GLOSSARY).
type Trade struct {
	TradeID         string
	MarketID        string
	Outcome         Outcome
	TradeType       TradeType
	BuyerID         string
	SellerID        string
	BuyOrderID      string
	SellOrderID     string
	BuyReservation  string
	SellReservation string
	Quantity        decimal.Decimal
	Price           decimal.Decimal
	Timestamp       time.Time
}

func newTrade(marketID string, outcome Outcome, tradeType TradeType, buyer, seller *Order, qty, price decimal.Decimal) *Trade {
	return &Trade{
		TradeID:         uuid.NewString(),
		MarketID:        marketID,
		Outcome:         outcome,
		TradeType:       tradeType,
		BuyerID:         buyer.UserID,
		SellerID:        seller.UserID,
		BuyOrderID:      buyer.OrderID,
		SellOrderID:     seller.OrderID,
		BuyReservation:  buyer.ReservationID,
		SellReservation: seller.ReservationID,
		Quantity:        qty,
		Price:           price,
		Timestamp:       time.Now().UTC(),
	}
}

// ComplementaryMatch is a mint-pair execution: a YES-buyer paired with a
// NO-buyer whose prices sum to at least 1 (§3, §4.4, GLOSSARY).
type ComplementaryMatch struct {
	TradeID        string
	MarketID       string
	YesBuyerID     string
	NoBuyerID      string
	YesOrderID     string
	NoOrderID      string
	YesReservation string
	NoReservation  string
	Quantity       decimal.Decimal
	YesPrice       decimal.Decimal
	NoPrice        decimal.Decimal
	Timestamp      time.Time
}

// CollateralRequired returns the collateral a complementary match locks up
// on mint: 1 unit of collateral per share pair minted, so it is exactly the
// matched quantity.
func (m *ComplementaryMatch) CollateralRequired() decimal.Decimal {
	return m.Quantity
}

func newComplementaryMatch(marketID string, yesOrder, noOrder *Order, qty decimal.Decimal) *ComplementaryMatch {
	return &ComplementaryMatch{
		TradeID:        uuid.NewString(),
		MarketID:       marketID,
		YesBuyerID:     yesOrder.UserID,
		NoBuyerID:      noOrder.UserID,
		YesOrderID:     yesOrder.OrderID,
		NoOrderID:      noOrder.OrderID,
		YesReservation: yesOrder.ReservationID,
		NoReservation:  noOrder.ReservationID,
		Quantity:       qty,
		YesPrice:       yesOrder.Price,
		NoPrice:        noOrder.Price,
		Timestamp:      time.Now().UTC(),
	}
}
