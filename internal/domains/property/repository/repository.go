package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/property/model"
	"lodge/shared/constant"
	"lodge/shared/logger"
)

type Property interface {
	GetProperty(ctx context.Context, id string) (model.Property, bool, error)
	GetRoomType(ctx context.Context, id string) (model.RoomType, bool, error)
	GetActiveBufferRules(ctx context.Context, propertyID, roomTypeID string, date time.Time) ([]model.BufferRule, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Property {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

const getPropertyQuery = `
SELECT id, name, default_buffer, overbooking_enabled, created_at, modified_at, created_by, modified_by
FROM properties
WHERE id = $1`

func (repo *repositoryImpl) GetProperty(ctx context.Context, id string) (model.Property, bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".property.GetProperty")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, getPropertyQuery)

	var property model.Property

	err := repo.db.Read.GetContext(ctx, &property, getPropertyQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return property, false, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return property, false, fmt.Errorf("failed to get data (%s): %w", model.PropertyEntityName, err)
	}

	return property, true, nil
}

const getRoomTypeQuery = `
SELECT id, property_id, name, base_rooms, created_at, modified_at, created_by, modified_by
FROM room_types
WHERE id = $1`

func (repo *repositoryImpl) GetRoomType(ctx context.Context, id string) (model.RoomType, bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".property.GetRoomType")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, getRoomTypeQuery)

	var roomType model.RoomType

	err := repo.db.Read.GetContext(ctx, &roomType, getRoomTypeQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return roomType, false, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return roomType, false, fmt.Errorf("failed to get data (%s): %w", model.RoomTypeEntityName, err)
	}

	return roomType, true, nil
}

// Room-type-specific rules sort ahead of property-wide rules; within each
// group the most recently modified rule wins.
const getActiveBufferRulesQuery = `
SELECT id, property_id, room_type_id, start_date, end_date, percent, days_of_week, is_active,
       created_at, modified_at, created_by, modified_by
FROM buffer_rules
WHERE property_id = $1
  AND is_active = TRUE
  AND (room_type_id IS NULL OR room_type_id = $2)
  AND start_date <= $3
  AND end_date >= $3
ORDER BY (room_type_id IS NULL) ASC, modified_at DESC`

func (repo *repositoryImpl) GetActiveBufferRules(ctx context.Context, propertyID, roomTypeID string, date time.Time) ([]model.BufferRule, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".property.GetActiveBufferRules")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, getActiveBufferRulesQuery)

	rules := []model.BufferRule{}

	err := repo.db.Read.SelectContext(ctx, &rules, getActiveBufferRulesQuery, propertyID, roomTypeID, date)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get data (%s): %w", model.BufferRuleEntityName, err)
	}

	return rules, nil
}
