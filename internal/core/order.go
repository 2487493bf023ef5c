package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the core's record of a single submitted order. Fields are
// treated as immutable-by-policy from the caller's side; only the matcher
// and book mutate Filled/Status in place while the order is under
// a book's write lock.
type Order struct {
	OrderID       string
	UserID        string
	MarketID      string
	Side          Side
	Outcome       Outcome
	OrderType     OrderType
	Price         decimal.Decimal
	Quantity      decimal.Decimal
	Filled        decimal.Decimal
	Status        OrderStatus
	ReservationID string
	CreatedAt     time.Time
}

// NewOrder builds a PENDING order with a freshly assigned id. Validation of
// price/quantity is the matcher's job (§4.3 step 1), not the constructor's -
// the constructor only assigns identity and initializes bookkeeping fields.
func NewOrder(userID, marketID string, side Side, outcome Outcome, orderType OrderType, price, quantity decimal.Decimal, reservationID string) *Order {
	return &Order{
		OrderID:       uuid.NewString(),
		UserID:        userID,
		MarketID:      marketID,
		Side:          side,
		Outcome:       outcome,
		OrderType:     orderType,
		Price:         price,
		Quantity:      quantity,
		Filled:        decimal.Zero,
		Status:        StatusPending,
		ReservationID: reservationID,
		CreatedAt:     time.Now().UTC(),
	}
}

// Remaining returns quantity - filled. Invariant: Remaining() >= 0 (§3).
func (o *Order) Remaining() decimal.Decimal {
	return o.Quantity.Sub(o.Filled)
}

// IsFilled reports whether the order has no remaining quantity.
func (o *Order) IsFilled() bool {
	return o.Remaining().LessThanOrEqual(zero)
}

// Clone returns a shallow value copy, used when the book hands an order
// back to a caller that must not be able to mutate book state directly
// (PeekBestBid/PeekBestAsk).
func (o *Order) Clone() *Order {
	c := *o
	return &c
}
