package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWeightedAverageCost(t *testing.T) {
	tests := []struct {
		name         string
		onHand       int
		current      string
		received     int
		receivedCost string
		want         string
	}{
		{"mezcla", 10, "100", 10, "200", "150"},
		{"sin existencia toma costo de entrada", 0, "100", 5, "80", "80"},
		{"sin entrada conserva costo", 4, "100", 0, "80", "100"},
		{"redondeo a dos decimales", 3, "10", 1, "11", "10.25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightedAverageCost(tt.onHand, decimal.RequireFromString(tt.current), tt.received, decimal.RequireFromString(tt.receivedCost))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestSuggestedReorderQty(t *testing.T) {
	assert.Equal(t, 7, SuggestedReorderQty(3, 5))
	assert.Equal(t, 10, SuggestedReorderQty(0, 5))
	assert.Equal(t, 0, SuggestedReorderQty(12, 5))
}
