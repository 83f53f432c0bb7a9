package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestEffective(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		discount int
		want     string
	}{
		{"no discount", "100.00", 0, "100.00"},
		{"negative discount ignored", "100.00", -5, "100.00"},
		{"quarter off", "100.00", 25, "75.00"},
		{"rounds to two places", "19.99", 15, "16.99"},
		{"rounds half up", "10.01", 50, "5.01"},
		{"full discount", "49.50", 100, "0.00"},
		{"small price", "0.99", 10, "0.89"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Effective(dec(tt.price), tt.discount)
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestLineTotal(t *testing.T) {
	// 100.00 at 25% off -> 75.00 a unit, quantity 3 -> 225.00.
	got := LineTotal(dec("100.00"), 25, 3)
	assert.True(t, got.Equal(dec("225.00")), "got %s", got)
}

func TestSubtotalMatchesSpecScenario(t *testing.T) {
	// Two lines of the same discounted product at quantities 3 and 1.
	lines := []Line{
		{Price: dec("100.00"), DiscountPercent: 25, Quantity: 3},
		{Price: dec("100.00"), DiscountPercent: 25, Quantity: 1},
	}
	got := Subtotal(lines)
	require.True(t, got.Equal(dec("300.00")), "got %s", got)
}

func TestSubtotalEmpty(t *testing.T) {
	assert.True(t, Subtotal(nil).IsZero())
}
