package core

import "errors"

// Error taxonomy for the matching core. Callers (the frontend) map these to
// transport-level statuses; the core itself never returns anything else for
// a rejected place_order/cancel_order/get_depth call.
var (
	// ErrInvalidArgument covers malformed enum strings, unparseable
	// decimals and missing required fields. Book state is unchanged.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidOrder covers quantity <= 0 or price outside [0, 1].
	ErrInvalidOrder = errors.New("invalid order")

	// ErrSelfTrade is returned when the taker would cross a resting order
	// owned by the same user. The order is never inserted.
	ErrSelfTrade = errors.New("self-trade")

	// ErrNotFound is returned by depth queries against a market that has
	// never received an order.
	ErrNotFound = errors.New("not found")

	// ErrOrderNotFound is returned by CancelOrder for an unknown order id.
	ErrOrderNotFound = errors.New("order not found")

	// ErrUnauthorized is returned by CancelOrder when the requesting user
	// does not own the order.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrOrderNotCancellable is returned by CancelOrder for an order that
	// is already FILLED or CANCELLED.
	ErrOrderNotCancellable = errors.New("order not cancellable")
)
