package core

// PlaceResult is everything PlaceOrder produces for one call: the order's
// final resting/terminal state and every execution it caused.
type PlaceResult struct {
	Order         *Order
	Trades        []*Trade
	Complementary []*ComplementaryMatch
}

// Matcher is the C4 component: validation, self-trade prevention and
// matching, dispatched by order type, against books owned by a Registry.
// It holds no state of its own beyond the registry reference - every call
// runs synchronously to completion on the caller's goroutine (§5).
type Matcher struct {
	registry *Registry
}

// NewMatcher builds a Matcher over registry.
func NewMatcher(registry *Registry) *Matcher {
	return &Matcher{registry: registry}
}

// PlaceOrder validates order, checks for self-trade, matches it against the
// book for order.MarketID according to its OrderType, and returns every
// trade produced plus the order's final status (§4.3).
func (m *Matcher) PlaceOrder(order *Order) (*PlaceResult, error) {
	if err := validateOrder(order); err != nil {
		return nil, err
	}

	book := m.registry.GetOrCreate(order.MarketID)
	book.Lock()
	defer book.Unlock()

	if wouldSelfTrade(book, order) {
		return nil, ErrSelfTrade
	}

	result := &PlaceResult{Order: order}

	switch order.OrderType {
	case PostOnly:
		book.AddOrder(order)
		order.Status = StatusOpen

	case Limit:
		if order.Side == Buy {
			m.matchComplementary(book, order, result)
		}
		if !order.IsFilled() {
			m.matchSecondary(book, order, true, result)
		}
		finalizeResting(book, order)

	case Market:
		m.matchSecondary(book, order, false, result)
		finalizeSweep(order)

	default:
		return nil, ErrInvalidArgument
	}

	return result, nil
}

// validateOrder applies §4.3 step 1: well-formed enums, quantity > 0, price
// in [0, 1]. MARKET orders still carry a syntactically valid price even
// though matching ignores it.
func validateOrder(order *Order) error {
	switch order.Side {
	case Buy, Sell:
	default:
		return ErrInvalidArgument
	}
	switch order.Outcome {
	case Yes, No:
	default:
		return ErrInvalidArgument
	}
	switch order.OrderType {
	case Limit, Market, PostOnly:
	default:
		return ErrInvalidArgument
	}
	if !ValidQty(order.Quantity) {
		return ErrInvalidOrder
	}
	if !ValidPrice(order.Price) {
		return ErrInvalidOrder
	}
	return nil
}

// wouldSelfTrade applies §4.3 step 2, passing o.price as given - MARKET
// orders still carry a validated price even though matching never consults
// it, and the self-trade guard is specified in terms of that same price.
func wouldSelfTrade(book *Book, order *Order) bool {
	return book.WouldSelfTrade(order.UserID, order.Side, order.Outcome, order.Price)
}

// matchComplementary runs §4.4: a BUY taker is paired against resting BUY
// orders on the complementary outcome whenever the two limit prices sum to
// at least 1, minting a new pair of shares per unit matched. Only LIMIT
// takers reach this path - a MARKET order carries no price of its own to
// form a complementary pair with, so it matches only via matchSecondary.
//
// Unlike secondary matching, a partially filled maker is updated in place
// and never popped from its queue - it is only removed once fully filled.
func (m *Matcher) matchComplementary(book *Book, taker *Order, result *PlaceResult) {
	requiredPrice := Complement(taker.Price)
	candidates := book.ComplementaryCandidates(taker.Outcome, requiredPrice)

	for _, maker := range candidates {
		if taker.IsFilled() {
			return
		}
		if maker.IsFilled() {
			continue
		}
		if maker.UserID == taker.UserID {
			continue
		}

		qty := MinDecimal(taker.Remaining(), maker.Remaining())
		taker.Filled = taker.Filled.Add(qty)
		maker.Filled = maker.Filled.Add(qty)

		yesOrder, noOrder := resolveYesNo(taker, maker)
		result.Complementary = append(result.Complementary, newComplementaryMatch(book.MarketID, yesOrder, noOrder, qty))

		if maker.IsFilled() {
			maker.Status = StatusFilled
			book.RemoveOrder(maker.OrderID)
		} else {
			maker.Status = StatusPartial
		}
	}
}

// resolveYesNo orders (taker, maker) into (yesOrder, noOrder) by outcome.
func resolveYesNo(taker, maker *Order) (*Order, *Order) {
	if taker.Outcome == Yes {
		return taker, maker
	}
	return maker, taker
}

// matchSecondary runs §4.5: the taker crosses resting orders on the
// opposite side of the same outcome, transferring existing shares at the
// maker's price. priceLimited false (MARKET) sweeps regardless of price
// until the opposite side is empty or the taker is filled; any residual is
// left for the caller to discard.
func (m *Matcher) matchSecondary(book *Book, taker *Order, priceLimited bool, result *PlaceResult) {
	opposite := oppositeSameOutcome(book, taker)

	for !taker.IsFilled() {
		maker, ok := peekFront(opposite)
		if !ok {
			return
		}
		if priceLimited && !crossesSecondary(taker, maker) {
			return
		}

		popped, ok := popFront(book, opposite)
		if !ok || popped.OrderID != maker.OrderID {
			return
		}

		qty := MinDecimal(taker.Remaining(), popped.Remaining())
		taker.Filled = taker.Filled.Add(qty)
		popped.Filled = popped.Filled.Add(qty)

		buyer, seller := buyerSeller(taker, popped)
		tradeType := DetermineTradeType(taker.Outcome, popped.Outcome)
		result.Trades = append(result.Trades, newTrade(book.MarketID, taker.Outcome, tradeType, buyer, seller, qty, popped.Price))

		if popped.IsFilled() {
			popped.Status = StatusFilled
		} else {
			popped.Status = StatusPartial
			book.PushFront(popped)
		}
	}
}

// crossesSecondary reports whether taker's limit price crosses maker's
// resting price on the same outcome's opposite side (§4.5).
func crossesSecondary(taker, maker *Order) bool {
	if taker.Side == Buy {
		return maker.Price.LessThanOrEqual(taker.Price)
	}
	return maker.Price.GreaterThanOrEqual(taker.Price)
}

// buyerSeller orders (taker, maker) into (buyer, seller) by side.
func buyerSeller(taker, maker *Order) (*Order, *Order) {
	if taker.Side == Buy {
		return taker, maker
	}
	return maker, taker
}

// oppositeSameOutcome returns the bookSide a taker's secondary matching
// sweeps: asks if taker buys, bids if taker sells, of taker's own outcome.
func oppositeSameOutcome(book *Book, taker *Order) *bookSide {
	if taker.Side == Buy {
		return book.sideFor(taker.Outcome, Sell)
	}
	return book.sideFor(taker.Outcome, Buy)
}

func peekFront(s *bookSide) (*Order, bool) {
	o := s.peekBestFront()
	if o == nil {
		return nil, false
	}
	return o, true
}

// popFront pops the front order of s via the Book's own locking path,
// keeping the id index in sync.
func popFront(book *Book, s *bookSide) (*Order, bool) {
	o := s.popBestFront()
	if o == nil {
		return nil, false
	}
	book.idMu.Lock()
	delete(book.byID, o.OrderID)
	book.idMu.Unlock()
	return o, true
}

// finalizeResting sets a LIMIT/POSTONLY order's terminal status after
// matching and, if it still has remaining quantity, rests it on the book
// (§4.3 step 4).
func finalizeResting(book *Book, order *Order) {
	if order.IsFilled() {
		order.Status = StatusFilled
		return
	}
	if order.Filled.GreaterThan(zero) {
		order.Status = StatusPartial
	} else {
		order.Status = StatusOpen
	}
	book.AddOrder(order)
}

// finalizeSweep sets a MARKET order's terminal status. MARKET orders never
// rest: any unfilled residual is discarded (§4.3 step 4, §9).
func finalizeSweep(order *Order) {
	switch {
	case order.IsFilled():
		order.Status = StatusFilled
	case order.Filled.GreaterThan(zero):
		order.Status = StatusPartial
	default:
		order.Status = StatusCancelled
	}
}

// CancelOrder removes a resting order from marketID's book on behalf of
// requestingUserID (supplemented feature; §6 PlaceOrder's counterpart).
func (m *Matcher) CancelOrder(marketID, orderID, requestingUserID string) (*Order, error) {
	book, ok := m.registry.Get(marketID)
	if !ok {
		return nil, ErrOrderNotFound
	}
	book.Lock()
	defer book.Unlock()

	order, ok := book.GetOrder(orderID)
	if !ok {
		return nil, ErrOrderNotFound
	}
	if order.UserID != requestingUserID {
		return nil, ErrUnauthorized
	}
	if order.Status == StatusFilled || order.Status == StatusCancelled {
		return nil, ErrOrderNotCancellable
	}

	removed, ok := book.RemoveOrder(orderID)
	if !ok {
		return nil, ErrOrderNotFound
	}
	removed.Status = StatusCancelled
	return removed, nil
}
