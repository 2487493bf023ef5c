package core

import "testing"

func newMatcher() *Matcher {
	return NewMatcher(NewRegistry())
}

func TestPlaceOrderOnEmptyBookRests(t *testing.T) {
	m := newMatcher()
	order := NewOrder("u1", "m1", Buy, Yes, Limit, d("0.40"), d("10"), "")

	res, err := m.PlaceOrder(order)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if res.Order.Status != StatusOpen {
		t.Fatalf("status = %s, want OPEN", res.Order.Status)
	}
	if len(res.Trades) != 0 || len(res.Complementary) != 0 {
		t.Fatalf("expected no executions on empty book")
	}

	book, _ := m.registry.Get("m1")
	bid, ok := book.BestBid(Yes)
	if !ok || !bid.Equal(d("0.40")) {
		t.Fatalf("order did not rest on book")
	}
}

func TestComplementaryMatchFullFill(t *testing.T) {
	m := newMatcher()

	noBuy := NewOrder("u1", "m1", Buy, No, Limit, d("0.55"), d("10"), "")
	if _, err := m.PlaceOrder(noBuy); err != nil {
		t.Fatalf("PlaceOrder (NO): %v", err)
	}

	yesBuy := NewOrder("u2", "m1", Buy, Yes, Limit, d("0.50"), d("10"), "")
	res, err := m.PlaceOrder(yesBuy)
	if err != nil {
		t.Fatalf("PlaceOrder (YES): %v", err)
	}

	if len(res.Complementary) != 1 {
		t.Fatalf("expected 1 complementary match, got %d", len(res.Complementary))
	}
	match := res.Complementary[0]
	if !match.Quantity.Equal(d("10")) {
		t.Fatalf("match quantity = %s, want 10", match.Quantity)
	}
	if match.YesBuyerID != "u2" || match.NoBuyerID != "u1" {
		t.Fatalf("unexpected buyer assignment: %+v", match)
	}
	if res.Order.Status != StatusFilled {
		t.Fatalf("taker status = %s, want FILLED", res.Order.Status)
	}

	book, _ := m.registry.Get("m1")
	if _, ok := book.BestBid(No); ok {
		t.Fatalf("maker should have been fully consumed and removed from book")
	}
}

func TestComplementaryMatchSkipsSameUserMaker(t *testing.T) {
	m := newMatcher()

	ownNoBuy := NewOrder("u1", "m1", Buy, No, Limit, d("0.55"), d("10"), "")
	if _, err := m.PlaceOrder(ownNoBuy); err != nil {
		t.Fatal(err)
	}
	otherNoBuy := NewOrder("u2", "m1", Buy, No, Limit, d("0.55"), d("10"), "")
	if _, err := m.PlaceOrder(otherNoBuy); err != nil {
		t.Fatal(err)
	}

	yesBuy := NewOrder("u1", "m1", Buy, Yes, Limit, d("0.50"), d("10"), "")
	res, err := m.PlaceOrder(yesBuy)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if len(res.Complementary) != 1 {
		t.Fatalf("expected 1 complementary match (against the other user), got %d", len(res.Complementary))
	}
	if res.Complementary[0].NoBuyerID != "u2" {
		t.Fatalf("expected match against u2, matched against %s", res.Complementary[0].NoBuyerID)
	}

	book, _ := m.registry.Get("m1")
	rest, ok := book.GetOrder(ownNoBuy.OrderID)
	if !ok || rest.Status != StatusOpen || !rest.Remaining().Equal(d("10")) {
		t.Fatalf("expected u1's own NO order to remain untouched on the book")
	}
}

func TestSecondaryMatchPartialMaker(t *testing.T) {
	m := newMatcher()

	ask := NewOrder("u1", "m1", Sell, Yes, Limit, d("0.60"), d("10"), "")
	if _, err := m.PlaceOrder(ask); err != nil {
		t.Fatalf("PlaceOrder (ask): %v", err)
	}

	buy := NewOrder("u2", "m1", Buy, Yes, Limit, d("0.60"), d("4"), "")
	res, err := m.PlaceOrder(buy)
	if err != nil {
		t.Fatalf("PlaceOrder (buy): %v", err)
	}

	if len(res.Trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(res.Trades))
	}
	trade := res.Trades[0]
	if !trade.Quantity.Equal(d("4")) || !trade.Price.Equal(d("0.60")) {
		t.Fatalf("unexpected trade: %+v", trade)
	}
	if res.Order.Status != StatusFilled {
		t.Fatalf("taker status = %s, want FILLED", res.Order.Status)
	}

	book, _ := m.registry.Get("m1")
	rest, ok := book.PeekBestAsk(Yes)
	if !ok {
		t.Fatalf("expected partially filled maker to remain resting")
	}
	if !rest.Remaining().Equal(d("6")) {
		t.Fatalf("maker remaining = %s, want 6", rest.Remaining())
	}
	if rest.Status != StatusPartial {
		t.Fatalf("maker status = %s, want PARTIAL", rest.Status)
	}
}

func TestPriceTimePriorityAcrossLevels(t *testing.T) {
	m := newMatcher()

	worse := NewOrder("u1", "m1", Sell, Yes, Limit, d("0.55"), d("5"), "")
	better := NewOrder("u2", "m1", Sell, Yes, Limit, d("0.50"), d("5"), "")
	if _, err := m.PlaceOrder(worse); err != nil {
		t.Fatal(err)
	}
	if _, err := m.PlaceOrder(better); err != nil {
		t.Fatal(err)
	}

	buy := NewOrder("u3", "m1", Buy, Yes, Limit, d("0.55"), d("5"), "")
	res, err := m.PlaceOrder(buy)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(res.Trades))
	}
	if res.Trades[0].SellOrderID != better.OrderID {
		t.Fatalf("expected best-priced ask to fill first")
	}
}

func TestSelfTradeRejected(t *testing.T) {
	m := newMatcher()

	ask := NewOrder("u1", "m1", Sell, Yes, Limit, d("0.50"), d("10"), "")
	if _, err := m.PlaceOrder(ask); err != nil {
		t.Fatal(err)
	}

	buy := NewOrder("u1", "m1", Buy, Yes, Limit, d("0.50"), d("10"), "")
	_, err := m.PlaceOrder(buy)
	if err != ErrSelfTrade {
		t.Fatalf("err = %v, want ErrSelfTrade", err)
	}

	book, _ := m.registry.Get("m1")
	if _, ok := book.GetOrder(buy.OrderID); ok {
		t.Fatalf("rejected order must never be inserted into the book")
	}
}

func TestMarketOrderWithNoLiquidityIsCancelled(t *testing.T) {
	m := newMatcher()
	order := NewOrder("u1", "m1", Buy, Yes, Market, d("1"), d("10"), "")

	res, err := m.PlaceOrder(order)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if res.Order.Status != StatusCancelled {
		t.Fatalf("status = %s, want CANCELLED", res.Order.Status)
	}
	if len(res.Trades) != 0 {
		t.Fatalf("expected no trades against an empty book")
	}

	book, _ := m.registry.Get("m1")
	if _, ok := book.GetOrder(order.OrderID); ok {
		t.Fatalf("MARKET order must never rest on the book")
	}
}

func TestMarketOrderSweepsPartiallyAndDiscardsResidual(t *testing.T) {
	m := newMatcher()
	ask := NewOrder("u1", "m1", Sell, Yes, Limit, d("0.60"), d("4"), "")
	if _, err := m.PlaceOrder(ask); err != nil {
		t.Fatal(err)
	}

	order := NewOrder("u2", "m1", Buy, Yes, Market, d("1"), d("10"), "")
	res, err := m.PlaceOrder(order)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if res.Order.Status != StatusPartial {
		t.Fatalf("status = %s, want PARTIAL", res.Order.Status)
	}
	if !res.Order.Filled.Equal(d("4")) {
		t.Fatalf("filled = %s, want 4", res.Order.Filled)
	}

	book, _ := m.registry.Get("m1")
	if _, ok := book.GetOrder(order.OrderID); ok {
		t.Fatalf("residual MARKET quantity must never be inserted into the book")
	}
}

func TestPostOnlyNeverMatches(t *testing.T) {
	m := newMatcher()
	ask := NewOrder("u1", "m1", Sell, Yes, Limit, d("0.50"), d("10"), "")
	if _, err := m.PlaceOrder(ask); err != nil {
		t.Fatal(err)
	}

	post := NewOrder("u2", "m1", Buy, Yes, PostOnly, d("0.55"), d("10"), "")
	res, err := m.PlaceOrder(post)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if len(res.Trades) != 0 || len(res.Complementary) != 0 {
		t.Fatalf("POSTONLY order must never match")
	}
	if res.Order.Status != StatusOpen {
		t.Fatalf("status = %s, want OPEN", res.Order.Status)
	}
}

func TestCancelOrderRemovesRestingOrder(t *testing.T) {
	m := newMatcher()
	order := NewOrder("u1", "m1", Buy, Yes, Limit, d("0.40"), d("10"), "")
	if _, err := m.PlaceOrder(order); err != nil {
		t.Fatal(err)
	}

	cancelled, err := m.CancelOrder("m1", order.OrderID, "u1")
	if err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Fatalf("status = %s, want CANCELLED", cancelled.Status)
	}

	book, _ := m.registry.Get("m1")
	if _, ok := book.GetOrder(order.OrderID); ok {
		t.Fatalf("cancelled order should be removed from the book")
	}
}

func TestCancelOrderByNonOwnerIsUnauthorized(t *testing.T) {
	m := newMatcher()
	order := NewOrder("u1", "m1", Buy, Yes, Limit, d("0.40"), d("10"), "")
	if _, err := m.PlaceOrder(order); err != nil {
		t.Fatal(err)
	}

	if _, err := m.CancelOrder("m1", order.OrderID, "u2"); err != ErrUnauthorized {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestCancelOrderUnknownID(t *testing.T) {
	m := newMatcher()
	if _, err := m.PlaceOrder(NewOrder("u1", "m1", Buy, Yes, Limit, d("0.40"), d("10"), "")); err != nil {
		t.Fatal(err)
	}
	if _, err := m.CancelOrder("m1", "does-not-exist", "u1"); err != ErrOrderNotFound {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}
}

func TestInvalidOrderRejected(t *testing.T) {
	m := newMatcher()
	_, err := m.PlaceOrder(NewOrder("u1", "m1", Buy, Yes, Limit, d("1.50"), d("10"), ""))
	if err != ErrInvalidOrder {
		t.Fatalf("err = %v, want ErrInvalidOrder", err)
	}

	_, err = m.PlaceOrder(NewOrder("u1", "m1", Buy, Yes, Limit, d("0.50"), d("0"), ""))
	if err != ErrInvalidOrder {
		t.Fatalf("err = %v, want ErrInvalidOrder", err)
	}
}
