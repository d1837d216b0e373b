package capacity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lodge/internal/domains/inventory/capacity"
)

func TestSellable(t *testing.T) {
	tests := []struct {
		name          string
		baseAvailable int
		bufferPercent float64
		want          int
	}{
		{name: "no buffer", baseAvailable: 10, bufferPercent: 0, want: 10},
		{name: "twenty percent buffer", baseAvailable: 10, bufferPercent: 20, want: 12},
		{name: "fractional result floored", baseAvailable: 7, bufferPercent: 10, want: 7},
		{name: "fractional buffer", baseAvailable: 100, bufferPercent: 12.5, want: 112},
		{name: "zero rooms", baseAvailable: 0, bufferPercent: 50, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, capacity.Sellable(tt.baseAvailable, tt.bufferPercent))
		})
	}
}

func TestFreeToSell(t *testing.T) {
	tests := []struct {
		name     string
		sellable int
		booked   int
		holds    int
		want     int
	}{
		{name: "all free", sellable: 12, booked: 0, holds: 0, want: 12},
		{name: "partially consumed", sellable: 12, booked: 5, holds: 3, want: 4},
		{name: "fully consumed", sellable: 12, booked: 6, holds: 6, want: 0},
		{name: "oversold floors at zero", sellable: 12, booked: 10, holds: 5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, capacity.FreeToSell(tt.sellable, tt.booked, tt.holds))
		})
	}
}

func TestOverbooked(t *testing.T) {
	assert.Equal(t, 0, capacity.Overbooked(10, 12))
	assert.Equal(t, 0, capacity.Overbooked(12, 12))
	assert.Equal(t, 2, capacity.Overbooked(14, 12))
}
