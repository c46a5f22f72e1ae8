package usecase

import (
	"math"
	"testing"
)

func TestPerturb(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		base      float64
		u         float64
		wantPrice float64
	}{
		{"lower bound", 100, 0, 98},
		{"midpoint", 100, 0.5, 100},
		{"upper quarter", 177.88, 0.75, 177.88 * 1.01},
		{"clamped below", 100, -1, 98},
		{"clamped above", 100, 5, 100 * (1 + (0.999999-0.5)*0.04)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			price, change, pct := Perturb(tt.base, tt.u)
			if math.Abs(price-tt.wantPrice) > 1e-9 {
				t.Errorf("price: expected %v, got %v", tt.wantPrice, price)
			}
			if math.Abs(change-(price-tt.base)) > 1e-9 {
				t.Errorf("change: expected %v, got %v", price-tt.base, change)
			}
			if math.Abs(pct-change/tt.base*100) > 1e-9 {
				t.Errorf("change percent: expected %v, got %v", change/tt.base*100, pct)
			}
		})
	}
}

func TestPerturb_StaysWithinBand(t *testing.T) {
	t.Parallel()

	for i := range 1000 {
		u := float64(i) / 1000
		price, _, _ := Perturb(230.49, u)
		if price < 230.49*0.98 || price > 230.49*1.02 {
			t.Fatalf("u=%v: price %v outside ±2%%", u, price)
		}
	}
}

func TestPerturb_ZeroBase(t *testing.T) {
	t.Parallel()

	price, change, pct := Perturb(0, 0.9)
	if price != 0 || change != 0 || pct != 0 {
		t.Errorf("expected zeros, got %v %v %v", price, change, pct)
	}
}
