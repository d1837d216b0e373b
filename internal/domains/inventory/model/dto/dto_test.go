package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lodge/internal/domains/inventory/model"
	"lodge/internal/domains/inventory/model/dto"
	"lodge/shared/failure"
	sharedModel "lodge/shared/model"
)

func TestStayRequestNights(t *testing.T) {
	base := dto.StayRequest{
		CheckIn:  "2026-07-10",
		CheckOut: "2026-07-13",
	}

	t.Run("expands to one date per night", func(t *testing.T) {
		nights, err := base.Nights(30)

		require.NoError(t, err)
		require.Len(t, nights, 3)
		assert.Equal(t, time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC), nights[0])
		assert.Equal(t, time.Date(2026, 7, 12, 0, 0, 0, 0, time.UTC), nights[2])
	})

	t.Run("check-out equal to check-in is invalid", func(t *testing.T) {
		req := base
		req.CheckOut = req.CheckIn

		_, err := req.Nights(30)
		assert.ErrorIs(t, err, failure.InvalidDateRange)
	})

	t.Run("inverted range is invalid", func(t *testing.T) {
		req := base
		req.CheckIn, req.CheckOut = req.CheckOut, req.CheckIn

		_, err := req.Nights(30)
		assert.ErrorIs(t, err, failure.InvalidDateRange)
	})

	t.Run("stay longer than the cap is invalid", func(t *testing.T) {
		_, err := base.Nights(2)
		assert.ErrorIs(t, err, failure.InvalidDateRange)
	})

	t.Run("zero cap disables the guard", func(t *testing.T) {
		nights, err := base.Nights(0)

		require.NoError(t, err)
		assert.Len(t, nights, 3)
	})

	t.Run("unparseable date is invalid", func(t *testing.T) {
		req := base
		req.CheckIn = "July 10th"

		_, err := req.Nights(30)
		assert.ErrorIs(t, err, failure.InvalidDateRange)
	})
}

func TestStayResponseFromModels(t *testing.T) {
	rows := []model.InventoryRow{
		{
			ID:         "inv-1",
			Date:       time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
			Sellable:   12,
			Booked:     5,
			Holds:      3,
			FreeToSell: 4,
			Metadata: sharedModel.Metadata{
				CreatedAt:  time.Date(2026, 7, 1, 9, 30, 0, 0, time.UTC),
				ModifiedAt: time.Date(2026, 7, 2, 10, 0, 0, 0, time.UTC),
			},
		},
	}

	res := dto.StayResponse{}
	res.FromModels("bk-1", "tok-1", rows)

	assert.Equal(t, "bk-1", res.BookingID)
	assert.Equal(t, "tok-1", res.HoldToken)
	require.Len(t, res.Nights, 1)
	assert.Equal(t, "2026-07-10", res.Nights[0].Date)
	assert.Equal(t, 4, res.Nights[0].FreeToSell)
	assert.Equal(t, "2026-07-01T09:30:00Z", res.Nights[0].CreatedAt)
	assert.Equal(t, "2026-07-02T10:00:00Z", res.Nights[0].ModifiedAt)
}
