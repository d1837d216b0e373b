package model

import (
	"lodge/shared/model"
	"time"
)

const (
	PropertyTableName  = "properties"
	PropertyEntityName = "property"

	RoomTypeTableName  = "room_types"
	RoomTypeEntityName = "room type"

	BufferRuleTableName  = "buffer_rules"
	BufferRuleEntityName = "buffer rule"
)

type Property struct {
	ID                 string  `db:"id"`
	Name               string  `db:"name"`
	DefaultBuffer      float64 `db:"default_buffer"`
	OverbookingEnabled bool    `db:"overbooking_enabled"`
	model.Metadata
}

type RoomType struct {
	ID         string `db:"id"`
	PropertyID string `db:"property_id"`
	Name       string `db:"name"`
	BaseRooms  int    `db:"base_rooms"`
	model.Metadata
}

// BufferRule scopes an overbooking buffer percentage to a property, an optional
// room type, a date window, and an optional day-of-week filter. DaysOfWeek is
// either a 7-character Monday-first 0/1 bitmask or a comma-separated list of
// weekday names or Sunday-zero indices.
type BufferRule struct {
	ID         string    `db:"id"`
	PropertyID string    `db:"property_id"`
	RoomTypeID *string   `db:"room_type_id"`
	StartDate  time.Time `db:"start_date"`
	EndDate    time.Time `db:"end_date"`
	Percent    float64   `db:"percent"`
	DaysOfWeek string    `db:"days_of_week"`
	IsActive   bool      `db:"is_active"`
	model.Metadata
}

// AppliesToRoomType reports whether the rule is scoped to the given room type
// or is property-wide.
func (r *BufferRule) AppliesToRoomType(roomTypeID string) bool {
	return r.RoomTypeID == nil || *r.RoomTypeID == roomTypeID
}
