package core

import "github.com/shopspring/decimal"

// one is the exact decimal 1, used throughout for the complementary
// invariant price_yes + price_no = 1. Keeping a single package-level
// instance avoids repeated parsing of "1" and keeps comparisons exact -
// shopspring/decimal never falls back to binary floating point, so
// one.Sub(p) for p in [0,1] is always exact (§4.1, §9).
var one = decimal.NewFromInt(1)

var zero = decimal.Zero

// ValidPrice reports whether p satisfies the core's price invariant:
// 0 <= p <= 1. MARKET orders carry a price too, but it is ignored
// semantically by the matcher (§3); ValidPrice is still applied to it by
// the matcher's validateOrder for consistency.
func ValidPrice(p decimal.Decimal) bool {
	return p.GreaterThanOrEqual(zero) && p.LessThanOrEqual(one)
}

// ValidQty reports whether q satisfies the core's quantity invariant for a
// newly submitted order: q > 0.
func ValidQty(q decimal.Decimal) bool {
	return q.GreaterThan(zero)
}

// Complement returns 1 - p, the price a resting complementary-side order
// must have (or beat) to cross against a taker bidding p on the other
// outcome (§4.4).
func Complement(p decimal.Decimal) decimal.Decimal {
	return one.Sub(p)
}

// MinDecimal returns the smaller of a and b.
func MinDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
