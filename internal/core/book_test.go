package core

import "testing"

func newTestOrder(user string, side Side, outcome Outcome, price, qty string) *Order {
	return NewOrder(user, "market-1", side, outcome, Limit, d(price), d(qty), "")
}

func TestBookAddAndBestPrices(t *testing.T) {
	b := NewBook("market-1")

	b.AddOrder(newTestOrder("u1", Buy, Yes, "0.40", "10"))
	b.AddOrder(newTestOrder("u2", Buy, Yes, "0.45", "10"))
	b.AddOrder(newTestOrder("u3", Sell, Yes, "0.60", "10"))
	b.AddOrder(newTestOrder("u4", Sell, Yes, "0.55", "10"))

	bid, ok := b.BestBid(Yes)
	if !ok || !bid.Equal(d("0.45")) {
		t.Fatalf("BestBid = %v, %v, want 0.45, true", bid, ok)
	}
	ask, ok := b.BestAsk(Yes)
	if !ok || !ask.Equal(d("0.55")) {
		t.Fatalf("BestAsk = %v, %v, want 0.55, true", ask, ok)
	}
}

func TestBookFIFOWithinPriceLevel(t *testing.T) {
	b := NewBook("market-1")
	first := newTestOrder("u1", Buy, Yes, "0.40", "5")
	second := newTestOrder("u2", Buy, Yes, "0.40", "5")
	b.AddOrder(first)
	b.AddOrder(second)

	popped, ok := b.PopBestBid(Yes)
	if !ok || popped.OrderID != first.OrderID {
		t.Fatalf("expected first order to pop first (time priority)")
	}
	popped2, ok := b.PopBestBid(Yes)
	if !ok || popped2.OrderID != second.OrderID {
		t.Fatalf("expected second order to pop second")
	}
	if _, ok := b.PopBestBid(Yes); ok {
		t.Fatalf("expected empty book after popping both orders")
	}
}

func TestBookRemoveOrderPrunesEmptyLevel(t *testing.T) {
	b := NewBook("market-1")
	o := newTestOrder("u1", Buy, Yes, "0.40", "5")
	b.AddOrder(o)

	removed, ok := b.RemoveOrder(o.OrderID)
	if !ok || removed.OrderID != o.OrderID {
		t.Fatalf("RemoveOrder failed to find order")
	}
	if _, ok := b.BestBid(Yes); ok {
		t.Fatalf("expected no bids after removing only resting order")
	}
	if _, ok := b.GetOrder(o.OrderID); ok {
		t.Fatalf("removed order should no longer be in id index")
	}
}

func TestBookGetDepthAggregatesQuantityAndOrderCount(t *testing.T) {
	b := NewBook("market-1")
	b.AddOrder(newTestOrder("u1", Buy, Yes, "0.40", "5"))
	b.AddOrder(newTestOrder("u2", Buy, Yes, "0.40", "3"))
	b.AddOrder(newTestOrder("u3", Buy, Yes, "0.35", "10"))

	depth := b.GetDepth(Yes, 10)
	if len(depth.Bids) != 2 {
		t.Fatalf("expected 2 bid levels, got %d", len(depth.Bids))
	}
	best := depth.Bids[0]
	if !best.Price.Equal(d("0.40")) || !best.Quantity.Equal(d("8")) || best.OrderCount != 2 {
		t.Fatalf("unexpected best level: %+v", best)
	}
}

func TestBookWouldSelfTrade(t *testing.T) {
	b := NewBook("market-1")
	b.AddOrder(newTestOrder("u1", Sell, Yes, "0.50", "5"))

	if !b.WouldSelfTrade("u1", Buy, Yes, d("0.50")) {
		t.Fatalf("expected self-trade against own resting ask")
	}
	if b.WouldSelfTrade("u2", Buy, Yes, d("0.50")) {
		t.Fatalf("different user should not self-trade")
	}
	if b.WouldSelfTrade("u1", Buy, Yes, d("0.40")) {
		t.Fatalf("non-crossing price should not self-trade")
	}
}

func TestBookPushFrontRestoresTimePriority(t *testing.T) {
	b := NewBook("market-1")
	first := newTestOrder("u1", Buy, Yes, "0.40", "5")
	second := newTestOrder("u2", Buy, Yes, "0.40", "5")
	b.AddOrder(first)
	b.AddOrder(second)

	popped, _ := b.PopBestBid(Yes)
	popped.Filled = d("2")
	b.PushFront(popped)

	front, ok := b.PeekBestBid(Yes)
	if !ok || front.OrderID != popped.OrderID {
		t.Fatalf("expected pushed-front order to remain ahead of later order")
	}
}
