package core

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// priceLevel is a single price's FIFO queue of resting orders. Remaining
// quantity is summed on demand (snapshotLevels) rather than cached, because
// complementary matching (§4.4) mutates a maker's Filled in place without
// popping it from the queue.
type priceLevel struct {
	price  decimal.Decimal
	orders []*Order
}

func newPriceLevel(price decimal.Decimal) *priceLevel {
	return &priceLevel{price: price}
}

func (l *priceLevel) pushBack(o *Order) {
	l.orders = append(l.orders, o)
}

func (l *priceLevel) pushFront(o *Order) {
	l.orders = append([]*Order{o}, l.orders...)
}

func (l *priceLevel) popFront() *Order {
	if len(l.orders) == 0 {
		return nil
	}
	o := l.orders[0]
	l.orders = l.orders[1:]
	return o
}

func (l *priceLevel) removeByID(id string) *Order {
	for i, o := range l.orders {
		if o.OrderID == id {
			l.orders = append(l.orders[:i], l.orders[i+1:]...)
			return o
		}
	}
	return nil
}

// bookSide is one of the four price-indexed queues an OrderBook owns: a
// FIFO-within-price, price-priority-across-levels structure guarded by its
// own reader/writer lock (§5). desc selects bid ordering (best = highest
// price, prices[0] highest) vs. ask ordering (best = lowest price).
type bookSide struct {
	mu     sync.RWMutex
	desc   bool
	levels map[string]*priceLevel
	prices []decimal.Decimal // kept sorted; prices[0] is the best price
}

func newBookSide(desc bool) *bookSide {
	return &bookSide{
		desc:   desc,
		levels: make(map[string]*priceLevel),
	}
}

func priceKey(p decimal.Decimal) string {
	return p.StringFixed(8)
}

// insertPrice inserts p into the sorted prices slice if not already
// present. Not safe for concurrent use; callers hold the side's write lock.
func (s *bookSide) insertPrice(p decimal.Decimal) {
	key := priceKey(p)
	for _, existing := range s.prices {
		if priceKey(existing) == key {
			return
		}
	}
	s.prices = append(s.prices, p)
	sort.Slice(s.prices, func(i, j int) bool {
		if s.desc {
			return s.prices[i].GreaterThan(s.prices[j])
		}
		return s.prices[i].LessThan(s.prices[j])
	})
}

func (s *bookSide) removePrice(p decimal.Decimal) {
	key := priceKey(p)
	for i, existing := range s.prices {
		if priceKey(existing) == key {
			s.prices = append(s.prices[:i], s.prices[i+1:]...)
			return
		}
	}
}

// getOrCreateLevel returns the level at p, creating and registering it if
// absent. Callers hold the side's write lock.
func (s *bookSide) getOrCreateLevel(p decimal.Decimal) *priceLevel {
	key := priceKey(p)
	lvl, ok := s.levels[key]
	if !ok {
		lvl = newPriceLevel(p)
		s.levels[key] = lvl
		s.insertPrice(p)
	}
	return lvl
}

// dropIfEmpty removes the level at p if it now has no orders (§3: "no
// mapping maps a price to an empty queue after any observable operation
// completes"). Callers hold the side's write lock.
func (s *bookSide) dropIfEmpty(p decimal.Decimal) {
	key := priceKey(p)
	lvl, ok := s.levels[key]
	if !ok || len(lvl.orders) > 0 {
		return
	}
	delete(s.levels, key)
	s.removePrice(p)
}

// candidatesAtOrAbove returns every resting order on a desc (bids) side
// whose price is >= minPrice, in price-priority then FIFO order - the
// traversal order §4.4 requires for complementary matching. Orders are
// returned as live pointers into the book; callers mutate them in place.
func (s *bookSide) candidatesAtOrAbove(minPrice decimal.Decimal) []*Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Order
	for _, p := range s.prices {
		if p.LessThan(minPrice) {
			break
		}
		lvl := s.levels[priceKey(p)]
		out = append(out, lvl.orders...)
	}
	return out
}

func (s *bookSide) best() (decimal.Decimal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.prices) == 0 {
		return decimal.Zero, false
	}
	return s.prices[0], true
}

// Book is the per-market order book: four bookSides (YES bids/asks, NO
// bids/asks) plus a shared id index (§3, C3).
type Book struct {
	MarketID string

	// matchMu serializes the matching/mutation path (PlaceOrder,
	// CancelOrder) for this book. The four bookSide locks still guard
	// each queue independently so GetDepth and other readers never block
	// behind it (§5).
	matchMu sync.Mutex

	yesBids *bookSide
	yesAsks *bookSide
	noBids  *bookSide
	noAsks  *bookSide

	idMu sync.RWMutex
	byID map[string]*Order
}

// Lock serializes matching/cancellation against this book. Callers must
// Unlock when done; it does not block GetDepth or other read-only queries.
func (b *Book) Lock() {
	b.matchMu.Lock()
}

// Unlock releases the lock taken by Lock.
func (b *Book) Unlock() {
	b.matchMu.Unlock()
}

// NewBook constructs an empty book for a single market.
func NewBook(marketID string) *Book {
	return &Book{
		MarketID: marketID,
		yesBids:  newBookSide(true),
		yesAsks:  newBookSide(false),
		noBids:   newBookSide(true),
		noAsks:   newBookSide(false),
		byID:     make(map[string]*Order),
	}
}

// sideFor returns the bookSide an order with this (outcome, side) rests on:
// BUY rests on the bids side, SELL on the asks side, of its own outcome.
func (b *Book) sideFor(outcome Outcome, side Side) *bookSide {
	if outcome == Yes {
		if side == Buy {
			return b.yesBids
		}
		return b.yesAsks
	}
	if side == Buy {
		return b.noBids
	}
	return b.noAsks
}

// oppositeOutcomeBids returns the bids side of the outcome complementary to
// the one given - the side complementary matching (§4.4) scans.
func (b *Book) oppositeOutcomeBids(outcome Outcome) *bookSide {
	if outcome == Yes {
		return b.noBids
	}
	return b.yesBids
}

// AddOrder appends o to the back of its (side, outcome, price) queue,
// creating the level if absent, and registers it in the id index (§4.2).
func (b *Book) AddOrder(o *Order) {
	s := b.sideFor(o.Outcome, o.Side)
	s.mu.Lock()
	lvl := s.getOrCreateLevel(o.Price)
	lvl.pushBack(o)
	s.mu.Unlock()

	b.idMu.Lock()
	b.byID[o.OrderID] = o
	b.idMu.Unlock()
}

// RemoveOrder removes id from the id index and, if present, from its
// price-level queue, pruning the level if it becomes empty (§4.2).
func (b *Book) RemoveOrder(id string) (*Order, bool) {
	b.idMu.RLock()
	o, ok := b.byID[id]
	b.idMu.RUnlock()
	if !ok {
		return nil, false
	}

	s := b.sideFor(o.Outcome, o.Side)
	s.mu.Lock()
	lvl, exists := s.levels[priceKey(o.Price)]
	if exists {
		lvl.removeByID(id)
		s.dropIfEmpty(o.Price)
	}
	s.mu.Unlock()

	b.idMu.Lock()
	delete(b.byID, id)
	b.idMu.Unlock()

	return o, true
}

// BestBid returns the highest bid price for outcome with a non-empty queue.
func (b *Book) BestBid(outcome Outcome) (decimal.Decimal, bool) {
	return b.sideFor(outcome, Buy).best()
}

// BestAsk returns the lowest ask price for outcome with a non-empty queue.
func (b *Book) BestAsk(outcome Outcome) (decimal.Decimal, bool) {
	return b.sideFor(outcome, Sell).best()
}

func (s *bookSide) popBestFront() *Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.prices) == 0 {
		return nil
	}
	best := s.prices[0]
	lvl := s.levels[priceKey(best)]
	o := lvl.popFront()
	s.dropIfEmpty(best)
	return o
}

func (b *Book) popBest(s *bookSide, o *Order) {
	if o == nil {
		return
	}
	b.idMu.Lock()
	delete(b.byID, o.OrderID)
	b.idMu.Unlock()
}

// PopBestBid atomically removes and returns the front order of the best bid
// level for outcome.
func (b *Book) PopBestBid(outcome Outcome) (*Order, bool) {
	s := b.sideFor(outcome, Buy)
	o := s.popBestFront()
	b.popBest(s, o)
	return o, o != nil
}

// PopBestAsk atomically removes and returns the front order of the best ask
// level for outcome.
func (b *Book) PopBestAsk(outcome Outcome) (*Order, bool) {
	s := b.sideFor(outcome, Sell)
	o := s.popBestFront()
	b.popBest(s, o)
	return o, o != nil
}

func (s *bookSide) peekBestFront() *Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.prices) == 0 {
		return nil
	}
	lvl := s.levels[priceKey(s.prices[0])]
	if len(lvl.orders) == 0 {
		return nil
	}
	return lvl.orders[0]
}

// PeekBestBid returns a clone of the front order at the best bid level
// without modifying book state.
func (b *Book) PeekBestBid(outcome Outcome) (*Order, bool) {
	o := b.sideFor(outcome, Buy).peekBestFront()
	if o == nil {
		return nil, false
	}
	return o.Clone(), true
}

// PeekBestAsk returns a clone of the front order at the best ask level
// without modifying book state.
func (b *Book) PeekBestAsk(outcome Outcome) (*Order, bool) {
	o := b.sideFor(outcome, Sell).peekBestFront()
	if o == nil {
		return nil, false
	}
	return o.Clone(), true
}

// PushFront reinserts a previously popped maker at the front of its price
// level, preserving its original time priority (§4.2, §4.5, §9).
func (b *Book) PushFront(o *Order) {
	s := b.sideFor(o.Outcome, o.Side)
	s.mu.Lock()
	lvl := s.getOrCreateLevel(o.Price)
	lvl.pushFront(o)
	s.mu.Unlock()

	b.idMu.Lock()
	b.byID[o.OrderID] = o
	b.idMu.Unlock()
}

// WouldSelfTrade reports whether a new order from user on (side, outcome)
// at price would cross any resting order owned by the same user on the
// opposite side of the same outcome (§4.2).
func (b *Book) WouldSelfTrade(user string, side Side, outcome Outcome, price decimal.Decimal) bool {
	var opposite *bookSide
	var crosses func(levelPrice decimal.Decimal) bool

	if side == Buy {
		opposite = b.sideFor(outcome, Sell)
		crosses = func(levelPrice decimal.Decimal) bool { return levelPrice.LessThanOrEqual(price) }
	} else {
		opposite = b.sideFor(outcome, Buy)
		crosses = func(levelPrice decimal.Decimal) bool { return levelPrice.GreaterThanOrEqual(price) }
	}

	opposite.mu.RLock()
	defer opposite.mu.RUnlock()

	for _, p := range opposite.prices {
		if !crosses(p) {
			break
		}
		lvl := opposite.levels[priceKey(p)]
		for _, o := range lvl.orders {
			if o.UserID == user {
				return true
			}
		}
	}
	return false
}

// LevelDepth is one aggregated price level in a GetDepth response.
type LevelDepth struct {
	Price      decimal.Decimal
	Quantity   decimal.Decimal
	OrderCount int
}

// Depth is the §6 GetOrderbook response body for a single outcome.
type Depth struct {
	Bids []LevelDepth
	Asks []LevelDepth
}

func snapshotLevels(s *bookSide, n int) []LevelDepth {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := n
	if count > len(s.prices) {
		count = len(s.prices)
	}
	out := make([]LevelDepth, 0, count)
	for i := 0; i < count; i++ {
		lvl := s.levels[priceKey(s.prices[i])]
		qty := decimal.Zero
		for _, o := range lvl.orders {
			qty = qty.Add(o.Remaining())
		}
		out = append(out, LevelDepth{
			Price:      lvl.price,
			Quantity:   qty,
			OrderCount: len(lvl.orders),
		})
	}
	return out
}

// GetDepth returns up to n non-empty price levels per side for outcome,
// best-first, with aggregated remaining quantity and order count (§4.2,
// §6).
func (b *Book) GetDepth(outcome Outcome, n int) Depth {
	return Depth{
		Bids: snapshotLevels(b.sideFor(outcome, Buy), n),
		Asks: snapshotLevels(b.sideFor(outcome, Sell), n),
	}
}

// ComplementaryCandidates returns the resting BUY orders on the bids side
// of outcome's complementary outcome with price >= minPrice, in the order
// complementary matching must walk them (§4.4).
func (b *Book) ComplementaryCandidates(outcome Outcome, minPrice decimal.Decimal) []*Order {
	return b.oppositeOutcomeBids(outcome).candidatesAtOrAbove(minPrice)
}

// GetOrder looks an order up by id without removing it.
func (b *Book) GetOrder(id string) (*Order, bool) {
	b.idMu.RLock()
	defer b.idMu.RUnlock()
	o, ok := b.byID[id]
	return o, ok
}
