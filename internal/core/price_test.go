package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestValidPrice(t *testing.T) {
	cases := []struct {
		price string
		want  bool
	}{
		{"0", true},
		{"1", true},
		{"0.5", true},
		{"-0.01", false},
		{"1.01", false},
	}
	for _, c := range cases {
		if got := ValidPrice(d(c.price)); got != c.want {
			t.Errorf("ValidPrice(%s) = %v, want %v", c.price, got, c.want)
		}
	}
}

func TestValidQty(t *testing.T) {
	if ValidQty(d("0")) {
		t.Error("zero quantity should be invalid")
	}
	if !ValidQty(d("0.0001")) {
		t.Error("positive quantity should be valid")
	}
}

func TestComplementIsExact(t *testing.T) {
	p := d("0.37")
	c := Complement(p)
	sum := p.Add(c)
	if !sum.Equal(one) {
		t.Errorf("price + complement = %s, want 1", sum)
	}
	if c.String() != "0.63" {
		t.Errorf("Complement(0.37) = %s, want 0.63", c.String())
	}
}

func TestMinDecimal(t *testing.T) {
	if got := MinDecimal(d("0.4"), d("0.6")); !got.Equal(d("0.4")) {
		t.Errorf("MinDecimal(0.4, 0.6) = %s, want 0.4", got)
	}
	if got := MinDecimal(d("0.6"), d("0.4")); !got.Equal(d("0.4")) {
		t.Errorf("MinDecimal(0.6, 0.4) = %s, want 0.4", got)
	}
}
