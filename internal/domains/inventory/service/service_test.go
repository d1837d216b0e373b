package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lodge/config"
	otelMocks "lodge/infras/otel/mocks"
	txMocks "lodge/infras/postgres/mocks"
	bookingModel "lodge/internal/domains/booking/model"
	invMocks "lodge/internal/domains/inventory/mocks"
	"lodge/internal/domains/inventory/model"
	"lodge/internal/domains/inventory/model/dto"
	"lodge/internal/domains/inventory/service"
	propModel "lodge/internal/domains/property/model"
	propMocks "lodge/internal/domains/property/mocks"
	s3Mocks "lodge/infras/s3/mocks"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/failure"
)

const (
	testPropertyID = "2f8a4a20-93a2-4f94-b38c-0f2e9ad9f001"
	testRoomTypeID = "2f8a4a20-93a2-4f94-b38c-0f2e9ad9f002"
	testBookingID  = "2f8a4a20-93a2-4f94-b38c-0f2e9ad9f003"
	testHoldToken  = "tok-7261"
)

type serviceFixture struct {
	cfg           *config.Config
	inventoryRepo *invMocks.MockInventory
	propertyRepo  *propMocks.MockProperty
	cache         *cacheMocks.MockRedisCache
	s3            *s3Mocks.MockS3
	svc           service.Inventory
	now           time.Time
}

func newFixture(t *testing.T) *serviceFixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Inventory.MaxStayNights = 30
	cfg.Cache.TTL = 60

	f := &serviceFixture{
		cfg:           cfg,
		inventoryRepo: invMocks.NewMockInventory(ctrl),
		propertyRepo:  propMocks.NewMockProperty(ctrl),
		cache:         cacheMocks.NewMockRedisCache(ctrl),
		s3:            s3Mocks.NewMockS3(ctrl),
		now:           time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC),
	}

	// Cache writes and invalidations run on fire-and-forget goroutines.
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.NewWithClock(
		cfg,
		txMocks.NewTxRunner(),
		f.inventoryRepo,
		f.propertyRepo,
		f.cache,
		f.s3,
		otelMocks.NewOtel(),
		func() time.Time { return f.now },
	)

	return f
}

func (f *serviceFixture) property(overbooking bool) propModel.Property {
	p := propModel.Property{DefaultBuffer: 20, OverbookingEnabled: overbooking}
	p.ID = testPropertyID

	return p
}

func (f *serviceFixture) roomType() propModel.RoomType {
	rt := propModel.RoomType{PropertyID: testPropertyID, BaseRooms: 10}
	rt.ID = testRoomTypeID

	return rt
}

func (f *serviceFixture) expectStayContext(overbooking bool) {
	f.propertyRepo.EXPECT().GetProperty(gomock.Any(), testPropertyID).
		Return(f.property(overbooking), true, nil)
	f.propertyRepo.EXPECT().GetRoomType(gomock.Any(), testRoomTypeID).
		Return(f.roomType(), true, nil)
}

func (f *serviceFixture) expectEnsureRow(date time.Time, booked, holds int) model.InventoryRow {
	row := model.InventoryRow{
		ID:            "inv-" + date.Format("20060102"),
		PropertyID:    testPropertyID,
		RoomTypeID:    testRoomTypeID,
		Date:          date,
		BaseAvailable: 10,
		BufferPercent: 20,
		Sellable:      12,
		Booked:        booked,
		Holds:         holds,
		Overbooked:    max(0, booked-12),
		FreeToSell:    max(0, 12-booked-holds),
	}

	f.propertyRepo.EXPECT().GetActiveBufferRules(gomock.Any(), testPropertyID, testRoomTypeID, date).
		Return([]propModel.BufferRule{}, nil)
	f.inventoryRepo.EXPECT().EnsureRowTx(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(row, nil)

	return row
}

func stayRequest(rooms int) dto.StayRequest {
	return dto.StayRequest{
		PropertyID: testPropertyID,
		RoomTypeID: testRoomTypeID,
		BookingID:  testBookingID,
		HoldToken:  testHoldToken,
		CheckIn:    "2026-07-10",
		CheckOut:   "2026-07-12",
		Rooms:      rooms,
	}
}

func night(day int) time.Time {
	return time.Date(2026, 7, day, 0, 0, 0, 0, time.UTC)
}

func TestHoldStay(t *testing.T) {
	t.Run("holds every night of the stay", func(t *testing.T) {
		f := newFixture(t)
		f.expectStayContext(false)

		var updated []model.InventoryRow

		for _, day := range []int{10, 11} {
			f.expectEnsureRow(night(day), 5, 2)
			f.inventoryRepo.EXPECT().UpdateCountersTx(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, row model.InventoryRow) error {
					updated = append(updated, row)
					return nil
				})
			f.inventoryRepo.EXPECT().InsertLockTx(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, lock model.InventoryLock) error {
					assert.Equal(t, model.LockTypeHold, lock.Type)
					assert.Equal(t, 3, lock.Change)
					assert.Equal(t, testBookingID, lock.BookingID)
					return nil
				})
			f.inventoryRepo.EXPECT().InsertAuditTx(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, audit model.InventoryAudit) error {
					assert.Equal(t, model.AuditHoldCreate, audit.ChangeType)
					assert.Equal(t, 2, audit.BeforeState["holds"])
					assert.Equal(t, 5, audit.AfterState["holds"])
					return nil
				})
		}

		res, err := f.svc.HoldStay(context.Background(), dto.HoldStayRequest{StayRequest: stayRequest(3)})

		require.NoError(t, err)
		require.Len(t, res.Nights, 2)
		require.Len(t, updated, 2)

		for _, row := range updated {
			assert.Equal(t, 5, row.Holds)
			assert.Equal(t, 2, row.FreeToSell)
		}

		assert.Equal(t, "2026-07-10", res.Nights[0].Date)
		assert.Equal(t, "2026-07-11", res.Nights[1].Date)
	})

	t.Run("exact fit drives free to sell to zero", func(t *testing.T) {
		f := newFixture(t)
		f.expectStayContext(false)

		for _, day := range []int{10, 11} {
			f.expectEnsureRow(night(day), 6, 3)
			f.inventoryRepo.EXPECT().UpdateCountersTx(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, row model.InventoryRow) error {
					assert.Equal(t, 6, row.Holds)
					assert.Equal(t, 0, row.FreeToSell)
					return nil
				})
			f.inventoryRepo.EXPECT().InsertLockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			f.inventoryRepo.EXPECT().InsertAuditTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		}

		_, err := f.svc.HoldStay(context.Background(), dto.HoldStayRequest{StayRequest: stayRequest(3)})
		require.NoError(t, err)
	})

	t.Run("insufficient inventory rejects the whole stay", func(t *testing.T) {
		f := newFixture(t)
		f.expectStayContext(false)

		// Free to sell is zero; no counter update may happen for any night.
		f.expectEnsureRow(night(10), 6, 6)

		_, err := f.svc.HoldStay(context.Background(), dto.HoldStayRequest{StayRequest: stayRequest(1)})

		require.ErrorIs(t, err, failure.InsufficientInventory)
	})

	t.Run("rejects inverted date range", func(t *testing.T) {
		f := newFixture(t)

		req := stayRequest(1)
		req.CheckIn = "2026-07-12"
		req.CheckOut = "2026-07-10"

		_, err := f.svc.HoldStay(context.Background(), dto.HoldStayRequest{StayRequest: req})

		require.ErrorIs(t, err, failure.InvalidDateRange)
	})

	t.Run("rejects stay beyond max nights", func(t *testing.T) {
		f := newFixture(t)
		f.cfg.Inventory.MaxStayNights = 1

		_, err := f.svc.HoldStay(context.Background(), dto.HoldStayRequest{StayRequest: stayRequest(1)})

		require.ErrorIs(t, err, failure.InvalidDateRange)
	})

	t.Run("unknown property", func(t *testing.T) {
		f := newFixture(t)
		f.propertyRepo.EXPECT().GetProperty(gomock.Any(), testPropertyID).
			Return(propModel.Property{}, false, nil)

		_, err := f.svc.HoldStay(context.Background(), dto.HoldStayRequest{StayRequest: stayRequest(1)})

		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestConfirmStay(t *testing.T) {
	t.Run("moves rooms from holds to booked", func(t *testing.T) {
		f := newFixture(t)
		f.expectStayContext(false)

		for _, day := range []int{10, 11} {
			f.expectEnsureRow(night(day), 4, 3)
			f.inventoryRepo.EXPECT().UpdateCountersTx(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, row model.InventoryRow) error {
					assert.Equal(t, 0, row.Holds)
					assert.Equal(t, 7, row.Booked)
					assert.Equal(t, 0, row.Overbooked)
					assert.Equal(t, 5, row.FreeToSell)
					return nil
				})
			f.inventoryRepo.EXPECT().InsertLockTx(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, lock model.InventoryLock) error {
					assert.Equal(t, model.LockTypeBooked, lock.Type)
					return nil
				})
			f.inventoryRepo.EXPECT().InsertAuditTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		}

		f.inventoryRepo.EXPECT().ReleaseOpenHoldLocksTx(gomock.Any(), gomock.Any(), testBookingID, f.now).
			Return(2, nil)

		_, err := f.svc.ConfirmStay(context.Background(), dto.ConfirmStayRequest{StayRequest: stayRequest(3)})
		require.NoError(t, err)
	})

	t.Run("overbooking denied when property disallows it", func(t *testing.T) {
		f := newFixture(t)
		f.expectStayContext(false)

		// Hold already swept away; confirming 3 rooms against 10 booked of 12
		// sellable would overbook by one.
		f.expectEnsureRow(night(10), 10, 0)

		_, err := f.svc.ConfirmStay(context.Background(), dto.ConfirmStayRequest{StayRequest: stayRequest(3)})

		require.ErrorIs(t, err, failure.OverbookLimit)
	})

	t.Run("overbooking allowed when property permits it", func(t *testing.T) {
		f := newFixture(t)
		f.expectStayContext(true)

		for _, day := range []int{10, 11} {
			f.expectEnsureRow(night(day), 10, 0)
			f.inventoryRepo.EXPECT().UpdateCountersTx(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, row model.InventoryRow) error {
					assert.Equal(t, 13, row.Booked)
					assert.Equal(t, 1, row.Overbooked)
					assert.Equal(t, 0, row.FreeToSell)
					return nil
				})
			f.inventoryRepo.EXPECT().InsertLockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			f.inventoryRepo.EXPECT().InsertAuditTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		}

		f.inventoryRepo.EXPECT().ReleaseOpenHoldLocksTx(gomock.Any(), gomock.Any(), testBookingID, f.now).
			Return(0, nil)

		_, err := f.svc.ConfirmStay(context.Background(), dto.ConfirmStayRequest{StayRequest: stayRequest(3)})
		require.NoError(t, err)
	})
}

func TestReleaseStay(t *testing.T) {
	releaseRequest := func(status string) dto.ReleaseStayRequest {
		return dto.ReleaseStayRequest{StayRequest: stayRequest(3), Status: status}
	}

	t.Run("hold release returns rooms to the pool", func(t *testing.T) {
		f := newFixture(t)
		f.expectStayContext(false)

		for _, day := range []int{10, 11} {
			f.expectEnsureRow(night(day), 4, 3)
			f.inventoryRepo.EXPECT().UpdateCountersTx(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, row model.InventoryRow) error {
					assert.Equal(t, 0, row.Holds)
					assert.Equal(t, 4, row.Booked)
					assert.Equal(t, 8, row.FreeToSell)
					return nil
				})
			f.inventoryRepo.EXPECT().InsertLockTx(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, lock model.InventoryLock) error {
					assert.Equal(t, model.LockTypeRelease, lock.Type)
					assert.Equal(t, -3, lock.Change)
					return nil
				})
			f.inventoryRepo.EXPECT().InsertAuditTx(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, audit model.InventoryAudit) error {
					assert.Equal(t, model.AuditHoldRelease, audit.ChangeType)
					return nil
				})
		}

		f.inventoryRepo.EXPECT().ReleaseOpenHoldLocksTx(gomock.Any(), gomock.Any(), testBookingID, f.now).
			Return(2, nil)

		_, err := f.svc.ReleaseStay(context.Background(), releaseRequest(bookingModel.StatusHold))
		require.NoError(t, err)
	})

	t.Run("confirmed release returns booked rooms", func(t *testing.T) {
		f := newFixture(t)
		f.expectStayContext(false)

		for _, day := range []int{10, 11} {
			f.expectEnsureRow(night(day), 5, 0)
			f.inventoryRepo.EXPECT().UpdateCountersTx(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, row model.InventoryRow) error {
					assert.Equal(t, 2, row.Booked)
					assert.Equal(t, 0, row.Holds)
					return nil
				})
			f.inventoryRepo.EXPECT().InsertLockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			f.inventoryRepo.EXPECT().InsertAuditTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		}

		f.inventoryRepo.EXPECT().ReleaseOpenHoldLocksTx(gomock.Any(), gomock.Any(), testBookingID, f.now).
			Return(0, nil)

		_, err := f.svc.ReleaseStay(context.Background(), releaseRequest(bookingModel.StatusConfirmed))
		require.NoError(t, err)
	})

	t.Run("terminal status keeps counters but writes the ledger", func(t *testing.T) {
		f := newFixture(t)
		f.expectStayContext(false)

		for _, day := range []int{10, 11} {
			f.expectEnsureRow(night(day), 5, 1)
			f.inventoryRepo.EXPECT().UpdateCountersTx(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, row model.InventoryRow) error {
					assert.Equal(t, 5, row.Booked)
					assert.Equal(t, 1, row.Holds)
					return nil
				})
			f.inventoryRepo.EXPECT().InsertLockTx(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, lock model.InventoryLock) error {
					assert.Equal(t, 0, lock.Change)
					return nil
				})
			f.inventoryRepo.EXPECT().InsertAuditTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		}

		f.inventoryRepo.EXPECT().ReleaseOpenHoldLocksTx(gomock.Any(), gomock.Any(), testBookingID, f.now).
			Return(0, nil)

		_, err := f.svc.ReleaseStay(context.Background(), releaseRequest(bookingModel.StatusCancelled))
		require.NoError(t, err)
	})

	t.Run("hold then release round trip restores the counters", func(t *testing.T) {
		f := newFixture(t)

		counters := map[string]*model.InventoryRow{}

		f.propertyRepo.EXPECT().GetProperty(gomock.Any(), testPropertyID).
			Return(f.property(false), true, nil).Times(2)
		f.propertyRepo.EXPECT().GetRoomType(gomock.Any(), testRoomTypeID).
			Return(f.roomType(), true, nil).Times(2)
		f.propertyRepo.EXPECT().GetActiveBufferRules(gomock.Any(), testPropertyID, testRoomTypeID, gomock.Any()).
			Return([]propModel.BufferRule{}, nil).AnyTimes()

		f.inventoryRepo.EXPECT().EnsureRowTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, candidate model.InventoryRow) (model.InventoryRow, error) {
				key := candidate.Date.Format("2006-01-02")
				if existing, ok := counters[key]; ok {
					return *existing, nil
				}
				counters[key] = &candidate
				return candidate, nil
			}).AnyTimes()
		f.inventoryRepo.EXPECT().UpdateCountersTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, row model.InventoryRow) error {
				counters[row.Date.Format("2006-01-02")] = &row
				return nil
			}).AnyTimes()
		f.inventoryRepo.EXPECT().InsertLockTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.inventoryRepo.EXPECT().InsertAuditTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.inventoryRepo.EXPECT().ReleaseOpenHoldLocksTx(gomock.Any(), gomock.Any(), testBookingID, f.now).
			Return(2, nil)

		_, err := f.svc.HoldStay(context.Background(), dto.HoldStayRequest{StayRequest: stayRequest(3)})
		require.NoError(t, err)

		_, err = f.svc.ReleaseStay(context.Background(), releaseRequest(bookingModel.StatusHold))
		require.NoError(t, err)

		for _, row := range counters {
			assert.Equal(t, 0, row.Holds)
			assert.Equal(t, 0, row.Booked)
			assert.Equal(t, 12, row.FreeToSell)
		}
	})
}

func TestAvailability(t *testing.T) {
	from := night(10)
	to := night(12)

	t.Run("cache miss reads the rows", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)

		rows := []model.InventoryRow{
			{ID: "inv-1", Date: night(10), Sellable: 12, Booked: 5, Holds: 2, FreeToSell: 5},
			{ID: "inv-2", Date: night(11), Sellable: 12, Booked: 0, Holds: 0, FreeToSell: 12},
		}
		f.inventoryRepo.EXPECT().GetRange(gomock.Any(), testRoomTypeID, from, to).Return(rows, nil)

		res, err := f.svc.Availability(context.Background(), testRoomTypeID, from, to)

		require.NoError(t, err)
		require.Len(t, res.Days, 2)
		assert.Equal(t, "2026-07-10", res.Days[0].Date)
		assert.Equal(t, 5, res.Days[0].FreeToSell)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res := value.(*dto.AvailabilityResponse)
				res.RoomTypeID = testRoomTypeID
				res.Days = []dto.NightInventory{{Date: "2026-07-10", FreeToSell: 5}}
				return nil
			})

		res, err := f.svc.Availability(context.Background(), testRoomTypeID, from, to)

		require.NoError(t, err)
		require.Len(t, res.Days, 1)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Availability(context.Background(), testRoomTypeID, to, from)

		require.ErrorIs(t, err, failure.InvalidDateRange)
	})
}

func TestExportAudits(t *testing.T) {
	f := newFixture(t)
	f.cfg.Inventory.AuditExport.Bucket = "lodge-archives"
	f.cfg.Inventory.AuditExport.Directory = "inventory-audits"

	audits := []model.InventoryAudit{
		{
			ID:          "aud-1",
			InventoryID: "inv-1",
			ChangeType:  model.AuditHoldCreate,
			BeforeState: model.Snapshot{"holds": 0},
			AfterState:  model.Snapshot{"holds": 3},
			Reason:      "hold placed",
			CreatedAt:   f.now,
		},
	}

	f.inventoryRepo.EXPECT().ListAuditsBetween(gomock.Any(), night(1), night(11)).Return(audits, nil)
	f.s3.EXPECT().UploadFileBytes(gomock.Any(), "lodge-archives", "inventory-audits", gomock.Any(), "text/csv", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, fileName, _ string, data []byte) (string, error) {
			assert.Contains(t, fileName, "audits_20260701_20260710")
			assert.Contains(t, string(data), "HOLD_CREATE")
			return "https://cdn.example.com/inventory-audits/" + fileName, nil
		})

	res, err := f.svc.ExportAudits(context.Background(), dto.ExportAuditsRequest{From: "2026-07-01", To: "2026-07-10"})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Entries)
	assert.Contains(t, res.URL, "inventory-audits/")
}
