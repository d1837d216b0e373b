package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/inventory/model"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/logger"
)

// Inventory persists inventory rows and their append-only ledgers. Methods
// suffixed Tx require the caller's transaction; the row returned by
// EnsureRowTx is locked until that transaction commits or rolls back.
type Inventory interface {
	EnsureRowTx(ctx context.Context, tx *sqlx.Tx, row model.InventoryRow) (model.InventoryRow, error)
	UpdateCountersTx(ctx context.Context, tx *sqlx.Tx, row model.InventoryRow) error
	InsertLockTx(ctx context.Context, tx *sqlx.Tx, lock model.InventoryLock) error
	InsertAuditTx(ctx context.Context, tx *sqlx.Tx, audit model.InventoryAudit) error
	ReleaseOpenHoldLocksTx(ctx context.Context, tx *sqlx.Tx, bookingID string, releasedAt time.Time) (int, error)
	GetRange(ctx context.Context, roomTypeID string, from, to time.Time) ([]model.InventoryRow, error)
	ListLocks(ctx context.Context, params gDto.QueryParams, bookingID string) ([]model.InventoryLock, int, error)
	ListAudits(ctx context.Context, params gDto.QueryParams, inventoryID string) ([]model.InventoryAudit, int, error)
	ListAuditsBetween(ctx context.Context, from, to time.Time) ([]model.InventoryAudit, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Inventory {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

// ON CONFLICT DO NOTHING keeps the transaction usable when the row already
// exists. A plain insert would raise 23505 and abort the transaction, so the
// FOR UPDATE re-fetch below would be rejected with 25P02.
const insertRowQuery = `
INSERT INTO inventories (id, property_id, room_type_id, date, base_available, buffer_percent,
                         sellable, booked, holds, overbooked, free_to_sell,
                         created_at, modified_at, created_by, modified_by)
VALUES (:id, :property_id, :room_type_id, :date, :base_available, :buffer_percent,
        :sellable, :booked, :holds, :overbooked, :free_to_sell,
        :created_at, :modified_at, :created_by, :modified_by)
ON CONFLICT (room_type_id, date) DO NOTHING`

const getRowForUpdateQuery = `
SELECT id, property_id, room_type_id, date, base_available, buffer_percent,
       sellable, booked, holds, overbooked, free_to_sell,
       created_at, modified_at, created_by, modified_by
FROM inventories
WHERE room_type_id = $1 AND date = $2
FOR UPDATE`

// EnsureRowTx creates the (room type, date) row on first touch and returns it
// locked. An existing row, whether from an earlier operation or a concurrent
// first-touch, is left untouched by the insert and fetched instead.
func (repo *repositoryImpl) EnsureRowTx(ctx context.Context, tx *sqlx.Tx, row model.InventoryRow) (model.InventoryRow, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".inventory.EnsureRowTx")
	defer scope.End()

	_, err := tx.NamedExecContext(ctx, insertRowQuery, row)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model.InventoryRow{}, fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	var locked model.InventoryRow

	err = tx.GetContext(ctx, &locked, getRowForUpdateQuery, row.RoomTypeID, row.Date)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model.InventoryRow{}, fmt.Errorf("failed to lock data (%s): %w", model.EntityName, err)
	}

	return locked, nil
}

const updateCountersQuery = `
UPDATE inventories
SET booked = :booked, holds = :holds, overbooked = :overbooked, free_to_sell = :free_to_sell,
    modified_at = :modified_at, modified_by = :modified_by
WHERE id = :id`

// UpdateCountersTx persists the counters of a row previously locked by
// EnsureRowTx within the same transaction.
func (repo *repositoryImpl) UpdateCountersTx(ctx context.Context, tx *sqlx.Tx, row model.InventoryRow) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".inventory.UpdateCountersTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, updateCountersQuery)

	_, err := tx.NamedExecContext(ctx, updateCountersQuery, row)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", model.EntityName, err)
	}

	return nil
}

const insertLockQuery = `
INSERT INTO inventory_locks (id, inventory_id, booking_id, hold_token, change, type, released_at, created_at)
VALUES (:id, :inventory_id, :booking_id, :hold_token, :change, :type, :released_at, :created_at)`

func (repo *repositoryImpl) InsertLockTx(ctx context.Context, tx *sqlx.Tx, lock model.InventoryLock) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".inventory.InsertLockTx")
	defer scope.End()

	_, err := tx.NamedExecContext(ctx, insertLockQuery, lock)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", model.LockEntityName, err)
	}

	return nil
}

const insertAuditQuery = `
INSERT INTO inventory_audits (id, inventory_id, change_type, before_state, after_state, reason, created_at)
VALUES (:id, :inventory_id, :change_type, :before_state, :after_state, :reason, :created_at)`

func (repo *repositoryImpl) InsertAuditTx(ctx context.Context, tx *sqlx.Tx, audit model.InventoryAudit) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".inventory.InsertAuditTx")
	defer scope.End()

	_, err := tx.NamedExecContext(ctx, insertAuditQuery, audit)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to insert data (%s): %w", model.AuditEntityName, err)
	}

	return nil
}

const releaseOpenHoldLocksQuery = `
UPDATE inventory_locks
SET released_at = $2
WHERE booking_id = $1 AND type = 'HOLD' AND released_at IS NULL`

// ReleaseOpenHoldLocksTx stamps every open HOLD ledger entry of a booking as
// released and reports how many were stamped.
func (repo *repositoryImpl) ReleaseOpenHoldLocksTx(ctx context.Context, tx *sqlx.Tx, bookingID string, releasedAt time.Time) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".inventory.ReleaseOpenHoldLocksTx")
	defer scope.End()

	res, err := tx.ExecContext(ctx, releaseOpenHoldLocksQuery, bookingID, releasedAt)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to update data (%s): %w", model.LockEntityName, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to update data (%s): %w", model.LockEntityName, err)
	}

	return int(affected), nil
}

const getRangeQuery = `
SELECT id, property_id, room_type_id, date, base_available, buffer_percent,
       sellable, booked, holds, overbooked, free_to_sell,
       created_at, modified_at, created_by, modified_by
FROM inventories
WHERE room_type_id = $1 AND date >= $2 AND date <= $3
ORDER BY date ASC`

// GetRange is the read-only surface used for availability publishing; rows
// returned here are snapshots and must never be written back.
func (repo *repositoryImpl) GetRange(ctx context.Context, roomTypeID string, from, to time.Time) ([]model.InventoryRow, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".inventory.GetRange")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, getRangeQuery)

	rows := []model.InventoryRow{}

	err := repo.db.Read.SelectContext(ctx, &rows, getRangeQuery, roomTypeID, from, to)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return rows, nil
}

const listLocksQuery = `
SELECT id, inventory_id, booking_id, hold_token, change, type, released_at, created_at
FROM inventory_locks
WHERE booking_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

const countLocksQuery = `SELECT COUNT(*) FROM inventory_locks WHERE booking_id = $1`

func (repo *repositoryImpl) ListLocks(ctx context.Context, params gDto.QueryParams, bookingID string) ([]model.InventoryLock, int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".inventory.ListLocks")
	defer scope.End()

	locks := []model.InventoryLock{}

	if err := repo.db.Read.SelectContext(ctx, &locks, listLocksQuery, bookingID, params.Limit, params.Offset()); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, 0, fmt.Errorf("failed to get data (%s): %w", model.LockEntityName, err)
	}

	var total int
	if err := repo.db.Read.GetContext(ctx, &total, countLocksQuery, bookingID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, 0, fmt.Errorf("failed to count data (%s): %w", model.LockEntityName, err)
	}

	return locks, total, nil
}

const listAuditsQuery = `
SELECT id, inventory_id, change_type, before_state, after_state, reason, created_at
FROM inventory_audits
WHERE inventory_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

const countAuditsQuery = `SELECT COUNT(*) FROM inventory_audits WHERE inventory_id = $1`

func (repo *repositoryImpl) ListAudits(ctx context.Context, params gDto.QueryParams, inventoryID string) ([]model.InventoryAudit, int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".inventory.ListAudits")
	defer scope.End()

	audits := []model.InventoryAudit{}

	if err := repo.db.Read.SelectContext(ctx, &audits, listAuditsQuery, inventoryID, params.Limit, params.Offset()); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, 0, fmt.Errorf("failed to get data (%s): %w", model.AuditEntityName, err)
	}

	var total int
	if err := repo.db.Read.GetContext(ctx, &total, countAuditsQuery, inventoryID); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, 0, fmt.Errorf("failed to count data (%s): %w", model.AuditEntityName, err)
	}

	return audits, total, nil
}

const listAuditsBetweenQuery = `
SELECT id, inventory_id, change_type, before_state, after_state, reason, created_at
FROM inventory_audits
WHERE created_at >= $1 AND created_at < $2
ORDER BY created_at ASC`

func (repo *repositoryImpl) ListAuditsBetween(ctx context.Context, from, to time.Time) ([]model.InventoryAudit, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".inventory.ListAuditsBetween")
	defer scope.End()

	audits := []model.InventoryAudit{}

	if err := repo.db.Read.SelectContext(ctx, &audits, listAuditsBetweenQuery, from, to); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get data (%s): %w", model.AuditEntityName, err)
	}

	return audits, nil
}
