package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"lodge/config"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/infras/s3"
	bookingModel "lodge/internal/domains/booking/model"
	"lodge/internal/domains/inventory/capacity"
	"lodge/internal/domains/inventory/model"
	"lodge/internal/domains/inventory/model/dto"
	invRepository "lodge/internal/domains/inventory/repository"
	"lodge/internal/domains/property/buffer"
	propModel "lodge/internal/domains/property/model"
	propRepository "lodge/internal/domains/property/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/timezone"
)

// AvailabilityCachePrefix scopes every cached availability window. The expiry
// sweeper clears the same prefix after it returns rooms to the pool.
const AvailabilityCachePrefix = "inventory:availability"

// StayRef identifies one booking's grip on inventory. The expiry sweeper builds
// one from a booking row and releases through the same code path as the API.
type StayRef struct {
	PropertyID string
	RoomTypeID string
	BookingID  string
	HoldToken  string
	Nights     []time.Time
	Rooms      int
	Status     string
	Reason     string
}

type Inventory interface {
	HoldStay(ctx context.Context, req dto.HoldStayRequest) (dto.StayResponse, error)
	ConfirmStay(ctx context.Context, req dto.ConfirmStayRequest) (dto.StayResponse, error)
	ReleaseStay(ctx context.Context, req dto.ReleaseStayRequest) (dto.StayResponse, error)
	ReleaseStayTx(ctx context.Context, tx *sqlx.Tx, ref StayRef, now time.Time) ([]model.InventoryRow, error)
	Availability(ctx context.Context, roomTypeID string, from, to time.Time) (dto.AvailabilityResponse, error)
	Locks(ctx context.Context, params gDto.QueryParams, bookingID string) (dto.GetLocksResponse, error)
	Audits(ctx context.Context, params gDto.QueryParams, inventoryID string) (dto.GetAuditsResponse, error)
	ExportAudits(ctx context.Context, req dto.ExportAuditsRequest) (dto.ExportAuditsResponse, error)
}

type inventoryImpl struct {
	cfg           *config.Config
	txRunner      postgres.TxRunner
	inventoryRepo invRepository.Inventory
	propertyRepo  propRepository.Property
	cache         cache.RedisCache
	s3            s3.S3
	otel          otel.Otel
	now           func() time.Time
}

func New(
	cfg *config.Config,
	txRunner postgres.TxRunner,
	inventoryRepo invRepository.Inventory,
	propertyRepo propRepository.Property,
	cache cache.RedisCache,
	s3 s3.S3,
	otel otel.Otel,
) Inventory {
	return NewWithClock(cfg, txRunner, inventoryRepo, propertyRepo, cache, s3, otel, timezone.Now)
}

// NewWithClock lets callers pin the clock. Tests use it to make hold-expiry
// comparisons deterministic.
func NewWithClock(
	cfg *config.Config,
	txRunner postgres.TxRunner,
	inventoryRepo invRepository.Inventory,
	propertyRepo propRepository.Property,
	cache cache.RedisCache,
	s3 s3.S3,
	otel otel.Otel,
	now func() time.Time,
) Inventory {
	return &inventoryImpl{
		cfg:           cfg,
		txRunner:      txRunner,
		inventoryRepo: inventoryRepo,
		propertyRepo:  propertyRepo,
		cache:         cache,
		s3:            s3,
		otel:          otel,
		now:           now,
	}
}

// HoldStay places a temporary claim on every night of the stay. All nights
// succeed or none do; a single night without enough free rooms rolls the whole
// stay back with the counters untouched.
func (svc *inventoryImpl) HoldStay(ctx context.Context, req dto.HoldStayRequest) (res dto.StayResponse, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.HoldStay")
	defer scope.End()
	defer scope.TraceIfError(err)

	nights, err := req.Nights(svc.cfg.Inventory.MaxStayNights)
	if err != nil {
		return res, err
	}

	property, roomType, err := svc.getStayContext(ctx, req.PropertyID, req.RoomTypeID)
	if err != nil {
		return res, err
	}

	now := svc.now()
	rows := make([]model.InventoryRow, 0, len(nights))

	err = svc.txRunner.InSerializableTx(ctx, func(tx *sqlx.Tx) error {
		for _, night := range nights {
			row, txErr := svc.ensureRow(ctx, tx, property, roomType, night, now)
			if txErr != nil {
				return txErr
			}

			before := snapshot(row)

			newHolds := row.Holds + req.Rooms
			if row.Sellable-row.Booked-newHolds < 0 {
				return failure.InsufficientInventory
			}

			row.Holds = newHolds
			row.FreeToSell = capacity.FreeToSell(row.Sellable, row.Booked, row.Holds)
			row.ModifiedAt = now

			if txErr = svc.applyMutation(ctx, tx, row, mutation{
				bookingID:  req.BookingID,
				holdToken:  req.HoldToken,
				change:     req.Rooms,
				lockType:   model.LockTypeHold,
				changeType: model.AuditHoldCreate,
				before:     before,
				reason:     "hold placed",
				now:        now,
			}); txErr != nil {
				return txErr
			}

			rows = append(rows, row)
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	svc.invalidateAvailability(ctx)

	res.FromModels(req.BookingID, req.HoldToken, rows)

	return res, nil
}

// ConfirmStay converts a hold into a confirmed booking night by night. The
// hold counter is decremented defensively; an already-swept hold confirms as a
// plain booking and the overbooking gate decides whether that is allowed.
func (svc *inventoryImpl) ConfirmStay(ctx context.Context, req dto.ConfirmStayRequest) (res dto.StayResponse, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.ConfirmStay")
	defer scope.End()
	defer scope.TraceIfError(err)

	nights, err := req.Nights(svc.cfg.Inventory.MaxStayNights)
	if err != nil {
		return res, err
	}

	property, roomType, err := svc.getStayContext(ctx, req.PropertyID, req.RoomTypeID)
	if err != nil {
		return res, err
	}

	now := svc.now()
	rows := make([]model.InventoryRow, 0, len(nights))

	err = svc.txRunner.InSerializableTx(ctx, func(tx *sqlx.Tx) error {
		for _, night := range nights {
			row, txErr := svc.ensureRow(ctx, tx, property, roomType, night, now)
			if txErr != nil {
				return txErr
			}

			before := snapshot(row)

			row.Holds = max(0, row.Holds-req.Rooms)
			row.Booked += req.Rooms
			row.Overbooked = capacity.Overbooked(row.Booked, row.Sellable)

			if row.Overbooked > 0 && !property.OverbookingEnabled {
				return failure.OverbookLimit
			}

			row.FreeToSell = capacity.FreeToSell(row.Sellable, row.Booked, row.Holds)
			row.ModifiedAt = now

			if txErr = svc.applyMutation(ctx, tx, row, mutation{
				bookingID:  req.BookingID,
				holdToken:  req.HoldToken,
				change:     req.Rooms,
				lockType:   model.LockTypeBooked,
				changeType: model.AuditHoldConfirm,
				before:     before,
				reason:     "hold confirmed",
				now:        now,
			}); txErr != nil {
				return txErr
			}

			rows = append(rows, row)
		}

		if _, txErr := svc.inventoryRepo.ReleaseOpenHoldLocksTx(ctx, tx, req.BookingID, now); txErr != nil {
			return txErr
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	svc.invalidateAvailability(ctx)

	res.FromModels(req.BookingID, req.HoldToken, rows)

	return res, nil
}

// ReleaseStay returns a booking's rooms to the pool. Which counter is returned
// depends on the booking status carried in the request.
func (svc *inventoryImpl) ReleaseStay(ctx context.Context, req dto.ReleaseStayRequest) (res dto.StayResponse, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.ReleaseStay")
	defer scope.End()
	defer scope.TraceIfError(err)

	nights, err := req.Nights(svc.cfg.Inventory.MaxStayNights)
	if err != nil {
		return res, err
	}

	now := svc.now()

	var rows []model.InventoryRow

	err = svc.txRunner.InSerializableTx(ctx, func(tx *sqlx.Tx) error {
		var txErr error

		rows, txErr = svc.ReleaseStayTx(ctx, tx, StayRef{
			PropertyID: req.PropertyID,
			RoomTypeID: req.RoomTypeID,
			BookingID:  req.BookingID,
			HoldToken:  req.HoldToken,
			Nights:     nights,
			Rooms:      req.Rooms,
			Status:     req.Status,
			Reason:     "released by caller",
		}, now)

		return txErr
	})
	if err != nil {
		return res, err
	}

	svc.invalidateAvailability(ctx)

	res.FromModels(req.BookingID, req.HoldToken, rows)

	return res, nil
}

// ReleaseStayTx performs the release inside the caller's transaction. HOLD
// returns rooms to the holds counter, CONFIRMED and PENDING to the booked
// counter; any other status writes the ledger rows without moving counters.
// Open HOLD ledger entries of the booking are stamped released either way.
func (svc *inventoryImpl) ReleaseStayTx(ctx context.Context, tx *sqlx.Tx, ref StayRef, now time.Time) ([]model.InventoryRow, error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.ReleaseStayTx")
	defer scope.End()

	property, roomType, err := svc.getStayContext(ctx, ref.PropertyID, ref.RoomTypeID)
	if err != nil {
		scope.TraceError(err)

		return nil, err
	}

	reason := ref.Reason
	if reason == "" {
		reason = "released"
	}

	rows := make([]model.InventoryRow, 0, len(ref.Nights))

	for _, night := range ref.Nights {
		row, err := svc.ensureRow(ctx, tx, property, roomType, night, now)
		if err != nil {
			scope.TraceError(err)

			return nil, err
		}

		before := snapshot(row)
		change := -ref.Rooms

		switch ref.Status {
		case bookingModel.StatusHold:
			row.Holds = max(0, row.Holds-ref.Rooms)
		case bookingModel.StatusConfirmed, bookingModel.StatusPending:
			row.Booked = max(0, row.Booked-ref.Rooms)
		default:
			change = 0
		}

		row.Overbooked = capacity.Overbooked(row.Booked, row.Sellable)
		row.FreeToSell = capacity.FreeToSell(row.Sellable, row.Booked, row.Holds)
		row.ModifiedAt = now

		if err = svc.applyMutation(ctx, tx, row, mutation{
			bookingID:  ref.BookingID,
			holdToken:  ref.HoldToken,
			change:     change,
			lockType:   model.LockTypeRelease,
			changeType: model.AuditHoldRelease,
			before:     before,
			reason:     reason,
			now:        now,
		}); err != nil {
			scope.TraceError(err)

			return nil, err
		}

		rows = append(rows, row)
	}

	if _, err := svc.inventoryRepo.ReleaseOpenHoldLocksTx(ctx, tx, ref.BookingID, now); err != nil {
		scope.TraceError(err)

		return nil, err
	}

	return rows, nil
}

// Availability reads the per-day counters for a room type over a date range,
// cache-aside over Redis.
func (svc *inventoryImpl) Availability(ctx context.Context, roomTypeID string, from, to time.Time) (res dto.AvailabilityResponse, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.Availability")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !to.After(from) {
		return res, failure.InvalidDateRange
	}

	cacheKey := shared.BuildCacheKey(AvailabilityCachePrefix, roomTypeID, shared.FormatDay(from), shared.FormatDay(to))
	if cacheErr := svc.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		return res, nil
	}

	rows, err := svc.inventoryRepo.GetRange(ctx, roomTypeID, from, to)
	if err != nil {
		return res, err
	}

	res.FromModels(roomTypeID, from, to, rows)

	go func() {
		saveCtx := context.WithoutCancel(ctx)
		if cacheErr := svc.cache.Save(saveCtx, cacheKey, res, svc.cfg.Cache.TTL); cacheErr != nil {
			log.Warn().Err(cacheErr).Str("key", cacheKey).Msg("failed to cache availability")
		}
	}()

	return res, nil
}

func (svc *inventoryImpl) Locks(ctx context.Context, params gDto.QueryParams, bookingID string) (res dto.GetLocksResponse, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.Locks")
	defer scope.End()
	defer scope.TraceIfError(err)

	locks, total, err := svc.inventoryRepo.ListLocks(ctx, params, bookingID)
	if err != nil {
		return res, err
	}

	res.FromModels(locks, total, params.Limit)

	return res, nil
}

func (svc *inventoryImpl) Audits(ctx context.Context, params gDto.QueryParams, inventoryID string) (res dto.GetAuditsResponse, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.Audits")
	defer scope.End()
	defer scope.TraceIfError(err)

	audits, total, err := svc.inventoryRepo.ListAudits(ctx, params, inventoryID)
	if err != nil {
		return res, err
	}

	res.FromModels(audits, total, params.Limit)

	return res, nil
}

// ExportAudits archives the audit ledger for a date range as a CSV object. The
// "to" date is inclusive.
func (svc *inventoryImpl) ExportAudits(ctx context.Context, req dto.ExportAuditsRequest) (res dto.ExportAuditsResponse, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inventory.ExportAudits")
	defer scope.End()
	defer scope.TraceIfError(err)

	from, err := shared.ParseDay(req.From)
	if err != nil {
		return res, failure.InvalidDateRange
	}

	to, err := shared.ParseDay(req.To)
	if err != nil {
		return res, failure.InvalidDateRange
	}

	if to.Before(from) {
		return res, failure.InvalidDateRange
	}

	audits, err := svc.inventoryRepo.ListAuditsBetween(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return res, err
	}

	data, err := auditsToCSV(audits)
	if err != nil {
		return res, err
	}

	fileName := fmt.Sprintf("audits_%s_%s_%s.csv",
		from.Format(constant.ExportDateFmt),
		to.Format(constant.ExportDateFmt),
		svc.now().Format(constant.ExportDateFmt),
	)

	url, err := svc.s3.UploadFileBytes(ctx,
		svc.cfg.Inventory.AuditExport.Bucket,
		svc.cfg.Inventory.AuditExport.Directory,
		fileName,
		constant.ContentTypeCSV,
		data,
	)
	if err != nil {
		return res, err
	}

	res.URL = url
	res.Entries = len(audits)

	return res, nil
}

func (svc *inventoryImpl) getStayContext(ctx context.Context, propertyID, roomTypeID string) (propModel.Property, propModel.RoomType, error) {
	property, found, err := svc.propertyRepo.GetProperty(ctx, propertyID)
	if err != nil {
		return property, propModel.RoomType{}, err
	}

	if !found {
		return property, propModel.RoomType{}, failure.NotFound(propModel.PropertyEntityName)
	}

	roomType, found, err := svc.propertyRepo.GetRoomType(ctx, roomTypeID)
	if err != nil {
		return property, roomType, err
	}

	if !found {
		return property, roomType, failure.NotFound(propModel.RoomTypeEntityName)
	}

	if roomType.PropertyID != property.ID {
		return property, roomType, failure.BadRequestFromString("room type does not belong to property")
	}

	return property, roomType, nil
}

// ensureRow materializes and locks the inventory row for one night. The buffer
// percent and sellable capacity are frozen at first touch; later rule changes
// only affect rows not yet created.
func (svc *inventoryImpl) ensureRow(ctx context.Context, tx *sqlx.Tx, property propModel.Property, roomType propModel.RoomType, night, now time.Time) (model.InventoryRow, error) {
	date := timezone.StayDate(night)

	rules, err := svc.propertyRepo.GetActiveBufferRules(ctx, property.ID, roomType.ID, date)
	if err != nil {
		return model.InventoryRow{}, err
	}

	percent := buffer.ResolvePercent(property, rules, date)
	sellable := capacity.Sellable(roomType.BaseRooms, percent)

	candidate := model.InventoryRow{
		ID:            uuid.NewString(),
		PropertyID:    property.ID,
		RoomTypeID:    roomType.ID,
		Date:          date,
		BaseAvailable: roomType.BaseRooms,
		BufferPercent: percent,
		Sellable:      sellable,
		Booked:        0,
		Holds:         0,
		Overbooked:    0,
		FreeToSell:    capacity.FreeToSell(sellable, 0, 0),
	}
	candidate.CreatedAt = now
	candidate.ModifiedAt = now

	return svc.inventoryRepo.EnsureRowTx(ctx, tx, candidate)
}

type mutation struct {
	bookingID  string
	holdToken  string
	change     int
	lockType   string
	changeType string
	before     model.Snapshot
	reason     string
	now        time.Time
}

// applyMutation persists the counter change and both ledger rows atomically
// within the caller's transaction.
func (svc *inventoryImpl) applyMutation(ctx context.Context, tx *sqlx.Tx, row model.InventoryRow, m mutation) error {
	if err := svc.inventoryRepo.UpdateCountersTx(ctx, tx, row); err != nil {
		return err
	}

	if err := svc.inventoryRepo.InsertLockTx(ctx, tx, model.InventoryLock{
		ID:          uuid.NewString(),
		InventoryID: row.ID,
		BookingID:   m.bookingID,
		HoldToken:   m.holdToken,
		Change:      m.change,
		Type:        m.lockType,
		CreatedAt:   m.now,
	}); err != nil {
		return err
	}

	return svc.inventoryRepo.InsertAuditTx(ctx, tx, model.InventoryAudit{
		ID:          uuid.NewString(),
		InventoryID: row.ID,
		ChangeType:  m.changeType,
		BeforeState: m.before,
		AfterState:  snapshot(row),
		Reason:      m.reason,
		CreatedAt:   m.now,
	})
}

func (svc *inventoryImpl) invalidateAvailability(ctx context.Context) {
	go shared.InvalidateCaches(context.WithoutCancel(ctx), svc.cache, AvailabilityCachePrefix)
}

func snapshot(row model.InventoryRow) model.Snapshot {
	return model.Snapshot{
		"sellable":     row.Sellable,
		"booked":       row.Booked,
		"holds":        row.Holds,
		"overbooked":   row.Overbooked,
		"free_to_sell": row.FreeToSell,
	}
}

func auditsToCSV(audits []model.InventoryAudit) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "inventory_id", "change_type", "before_state", "after_state", "reason", "created_at"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, audit := range audits {
		before, err := json.Marshal(audit.BeforeState)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal audit state: %w", err)
		}

		after, err := json.Marshal(audit.AfterState)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal audit state: %w", err)
		}

		record := []string{
			audit.ID,
			audit.InventoryID,
			audit.ChangeType,
			string(before),
			string(after),
			audit.Reason,
			audit.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
