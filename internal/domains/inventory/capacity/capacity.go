// Package capacity is the arithmetic kernel shared by every inventory
// component. Free-to-sell must always be derived through FreeToSell; no caller
// recomputes it independently.
package capacity

import "math"

// Sellable converts a physical room count and a buffer percent into
// buffer-adjusted sellable capacity.
func Sellable(baseAvailable int, bufferPercent float64) int {
	return int(math.Floor(float64(baseAvailable) * (1 + bufferPercent/100)))
}

// FreeToSell is the number of rooms still open for new holds or bookings,
// floored at zero.
func FreeToSell(sellable, booked, holds int) int {
	return max(0, sellable-booked-holds)
}

// Overbooked is the portion of confirmed bookings exceeding sellable capacity.
func Overbooked(booked, sellable int) int {
	return max(0, booked-sellable)
}
