package sweeper_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodge/config"
	kafkaMocks "lodge/infras/kafka/mocks"
	otelMocks "lodge/infras/otel/mocks"
	txMocks "lodge/infras/postgres/mocks"
	bookingMocks "lodge/internal/domains/booking/mocks"
	bookingModel "lodge/internal/domains/booking/model"
	"lodge/internal/domains/inventory/model"
	invService "lodge/internal/domains/inventory/service"
	invServiceMocks "lodge/internal/domains/inventory/service/mocks"
	"lodge/internal/domains/sweeper"
	cacheMocks "lodge/shared/cache/mocks"
)

const sweepBatchSize = 50

type sweeperFixture struct {
	cfg          *config.Config
	bookingRepo  *bookingMocks.MockBooking
	inventorySvc *invServiceMocks.MockInventory
	events       *kafkaMocks.MockClient
	cache        *cacheMocks.MockRedisCache
	sweeper      sweeper.Sweeper
	now          time.Time
}

func newFixture(t *testing.T) *sweeperFixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Inventory.SweepBatchSize = sweepBatchSize
	cfg.Inventory.HoldExpiryTopic = "inventory.hold.expired"

	f := &sweeperFixture{
		cfg:          cfg,
		bookingRepo:  bookingMocks.NewMockBooking(ctrl),
		inventorySvc: invServiceMocks.NewMockInventory(ctrl),
		events:       kafkaMocks.NewMockClient(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
		now:          time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC),
	}

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.sweeper = sweeper.NewWithClock(
		cfg,
		txMocks.NewTxRunner(),
		f.bookingRepo,
		f.inventorySvc,
		f.events,
		f.cache,
		otelMocks.NewOtel(),
		func() time.Time { return f.now },
	)

	return f
}

func (f *sweeperFixture) expiredHold(id string) bookingModel.Booking {
	expiry := f.now.Add(-10 * time.Minute)

	return bookingModel.Booking{
		ID:            id,
		PropertyID:    "prop-1",
		RoomTypeID:    "rt-1",
		Status:        bookingModel.StatusHold,
		HoldToken:     "tok-" + id,
		CheckIn:       time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 7, 12, 0, 0, 0, 0, time.UTC),
		Rooms:         2,
		HoldExpiresAt: &expiry,
	}
}

func TestProcessExpiredHolds(t *testing.T) {
	t.Run("releases expired holds and publishes events", func(t *testing.T) {
		f := newFixture(t)

		first := f.expiredHold("bk-1")
		second := f.expiredHold("bk-2")

		f.bookingRepo.EXPECT().FindExpiredHolds(gomock.Any(), f.now, sweepBatchSize).
			Return([]bookingModel.Booking{first, second}, nil)

		for _, booking := range []bookingModel.Booking{first, second} {
			f.bookingRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), booking.ID).
				Return(booking, true, nil)
			f.inventorySvc.EXPECT().ReleaseStayTx(gomock.Any(), gomock.Any(), gomock.Any(), f.now).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, ref invService.StayRef, _ time.Time) ([]model.InventoryRow, error) {
					assert.Equal(t, bookingModel.StatusHold, ref.Status)
					assert.Equal(t, 2, ref.Rooms)
					assert.Len(t, ref.Nights, 2)
					assert.Equal(t, "hold expired", ref.Reason)
					return []model.InventoryRow{}, nil
				})
			f.bookingRepo.EXPECT().MarkHoldFailedTx(gomock.Any(), gomock.Any(), gomock.Any(), f.now).
				Return(nil)
			f.events.EXPECT().SendMessages(gomock.Any(), "inventory.hold.expired", gomock.Any()).
				Return(nil)
		}

		res, err := f.sweeper.ProcessExpiredHolds(context.Background(), 0)

		require.NoError(t, err)
		assert.Equal(t, 2, res.Processed)
		assert.Equal(t, 2, res.Released)
		assert.Equal(t, 0, res.Skipped)
		assert.Empty(t, res.Failures)
	})

	t.Run("skips bookings confirmed between scan and lock", func(t *testing.T) {
		f := newFixture(t)

		stale := f.expiredHold("bk-1")

		f.bookingRepo.EXPECT().FindExpiredHolds(gomock.Any(), f.now, sweepBatchSize).
			Return([]bookingModel.Booking{stale}, nil)

		// The locked read sees the booking already confirmed; nothing to do.
		confirmed := stale
		confirmed.Status = bookingModel.StatusConfirmed
		f.bookingRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), stale.ID).
			Return(confirmed, true, nil)

		res, err := f.sweeper.ProcessExpiredHolds(context.Background(), 0)

		require.NoError(t, err)
		assert.Equal(t, 1, res.Processed)
		assert.Equal(t, 0, res.Released)
		assert.Equal(t, 1, res.Skipped)
	})

	t.Run("one failing booking does not stop the batch", func(t *testing.T) {
		f := newFixture(t)

		failing := f.expiredHold("bk-1")
		healthy := f.expiredHold("bk-2")

		f.bookingRepo.EXPECT().FindExpiredHolds(gomock.Any(), f.now, sweepBatchSize).
			Return([]bookingModel.Booking{failing, healthy}, nil)

		f.bookingRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), failing.ID).
			Return(bookingModel.Booking{}, false, assert.AnError)

		f.bookingRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), healthy.ID).
			Return(healthy, true, nil)
		f.inventorySvc.EXPECT().ReleaseStayTx(gomock.Any(), gomock.Any(), gomock.Any(), f.now).
			Return([]model.InventoryRow{}, nil)
		f.bookingRepo.EXPECT().MarkHoldFailedTx(gomock.Any(), gomock.Any(), gomock.Any(), f.now).
			Return(nil)
		f.events.EXPECT().SendMessages(gomock.Any(), "inventory.hold.expired", gomock.Any()).
			Return(nil)

		res, err := f.sweeper.ProcessExpiredHolds(context.Background(), 0)

		require.NoError(t, err)
		assert.Equal(t, 2, res.Processed)
		assert.Equal(t, 1, res.Released)
		require.Len(t, res.Failures, 1)
		assert.Equal(t, failing.ID, res.Failures[0].BookingID)
	})

	t.Run("publish failure does not fail the sweep", func(t *testing.T) {
		f := newFixture(t)

		booking := f.expiredHold("bk-1")

		f.bookingRepo.EXPECT().FindExpiredHolds(gomock.Any(), f.now, sweepBatchSize).
			Return([]bookingModel.Booking{booking}, nil)
		f.bookingRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), booking.ID).
			Return(booking, true, nil)
		f.inventorySvc.EXPECT().ReleaseStayTx(gomock.Any(), gomock.Any(), gomock.Any(), f.now).
			Return([]model.InventoryRow{}, nil)
		f.bookingRepo.EXPECT().MarkHoldFailedTx(gomock.Any(), gomock.Any(), gomock.Any(), f.now).
			Return(nil)
		f.events.EXPECT().SendMessages(gomock.Any(), "inventory.hold.expired", gomock.Any()).
			Return(assert.AnError)

		res, err := f.sweeper.ProcessExpiredHolds(context.Background(), 0)

		require.NoError(t, err)
		assert.Equal(t, 1, res.Released)
		assert.Empty(t, res.Failures)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		f := newFixture(t)

		f.bookingRepo.EXPECT().FindExpiredHolds(gomock.Any(), f.now, sweepBatchSize).
			Return([]bookingModel.Booking{}, nil)

		res, err := f.sweeper.ProcessExpiredHolds(context.Background(), 0)

		require.NoError(t, err)
		assert.Equal(t, 0, res.Processed)
		assert.Equal(t, f.now, res.CheckedAt)
	})

	t.Run("explicit batch size overrides the configured one", func(t *testing.T) {
		f := newFixture(t)

		f.bookingRepo.EXPECT().FindExpiredHolds(gomock.Any(), f.now, 5).
			Return([]bookingModel.Booking{}, nil)

		_, err := f.sweeper.ProcessExpiredHolds(context.Background(), 5)
		require.NoError(t, err)
	})
}

func TestHoldExpired(t *testing.T) {
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name    string
		status  string
		expiry  *time.Time
		expired bool
	}{
		{name: "expired hold", status: bookingModel.StatusHold, expiry: &past, expired: true},
		{name: "expiry exactly now", status: bookingModel.StatusHold, expiry: &now, expired: true},
		{name: "future expiry", status: bookingModel.StatusHold, expiry: &future, expired: false},
		{name: "no expiry set", status: bookingModel.StatusHold, expiry: nil, expired: false},
		{name: "already confirmed", status: bookingModel.StatusConfirmed, expiry: &past, expired: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bookingModel.Booking{Status: tt.status, HoldExpiresAt: tt.expiry}
			assert.Equal(t, tt.expired, b.HoldExpired(now))
		})
	}
}
