package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/booking/model"
	"lodge/shared/constant"
	"lodge/shared/logger"
)

type Booking interface {
	FindExpiredHolds(ctx context.Context, now time.Time, limit int) ([]model.Booking, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, bool, error)
	MarkHoldFailedTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking, releasedAt time.Time) error
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

// Oldest expirations first so a backlog drains in expiry order across sweeps.
const findExpiredHoldsQuery = `
SELECT id, property_id, room_type_id, status, hold_token, check_in, check_out, rooms,
       hold_expires_at, integration_payload, created_at, modified_at, created_by, modified_by
FROM bookings
WHERE status = 'HOLD' AND hold_expires_at IS NOT NULL AND hold_expires_at <= $1
ORDER BY hold_expires_at ASC
LIMIT $2`

// FindExpiredHolds is an unlocked scan; every candidate is re-checked under a
// row lock before anything is mutated.
func (repo *repositoryImpl) FindExpiredHolds(ctx context.Context, now time.Time, limit int) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindExpiredHolds")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, findExpiredHoldsQuery)

	bookings := []model.Booking{}

	err := repo.db.Read.SelectContext(ctx, &bookings, findExpiredHoldsQuery, now, limit)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return bookings, nil
}

const getForUpdateQuery = `
SELECT id, property_id, room_type_id, status, hold_token, check_in, check_out, rooms,
       hold_expires_at, integration_payload, created_at, modified_at, created_by, modified_by
FROM bookings
WHERE id = $1
FOR UPDATE`

func (repo *repositoryImpl) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetForUpdateTx")
	defer scope.End()

	var booking model.Booking

	err := tx.GetContext(ctx, &booking, getForUpdateQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return booking, false, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return booking, false, fmt.Errorf("failed to lock data (%s): %w", model.EntityName, err)
	}

	return booking, true, nil
}

const markHoldFailedQuery = `
UPDATE bookings
SET status = :status, hold_expires_at = NULL, integration_payload = :integration_payload, modified_at = :modified_at
WHERE id = :id`

// MarkHoldFailedTx flips an expired hold to FAILED and merges the release
// stamp into the integration payload without discarding existing keys.
func (repo *repositoryImpl) MarkHoldFailedTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking, releasedAt time.Time) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.MarkHoldFailedTx")
	defer scope.End()

	if booking.IntegrationPayload == nil {
		booking.IntegrationPayload = model.Payload{}
	}

	booking.IntegrationPayload["released_at"] = releasedAt.Format(time.RFC3339)
	booking.IntegrationPayload["release_reason"] = model.ReleaseReasonTTLExpired

	booking.Status = model.StatusFailed
	booking.ModifiedAt = releasedAt

	_, err := tx.NamedExecContext(ctx, markHoldFailedQuery, booking)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to update data (%s): %w", model.EntityName, err)
	}

	return nil
}
