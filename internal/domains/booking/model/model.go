package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"lodge/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"
)

// Booking lifecycle statuses. HOLD is the only status the expiry sweeper acts
// on; CONFIRMED and PENDING consume the booked counter.
const (
	StatusHold      = "HOLD"
	StatusConfirmed = "CONFIRMED"
	StatusPending   = "PENDING"
	StatusFailed    = "FAILED"
	StatusCancelled = "CANCELLED"
)

// ReleaseReasonTTLExpired marks bookings failed by the sweeper rather than by
// an explicit caller.
const ReleaseReasonTTLExpired = "TTL_EXPIRED"

// Payload is the free-form integration payload stored as JSONB. Writers merge
// into it; existing keys survive a sweep.
type Payload map[string]any

func (p Payload) Value() (driver.Value, error) {
	if p == nil {
		return json.Marshal(Payload{})
	}

	return json.Marshal(p)
}

func (p *Payload) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = nil

		return nil
	default:
		return fmt.Errorf("unsupported payload source type %T", src)
	}
}

type Booking struct {
	ID                 string     `db:"id"`
	PropertyID         string     `db:"property_id"`
	RoomTypeID         string     `db:"room_type_id"`
	Status             string     `db:"status"`
	HoldToken          string     `db:"hold_token"`
	CheckIn            time.Time  `db:"check_in"`
	CheckOut           time.Time  `db:"check_out"`
	Rooms              int        `db:"rooms"`
	HoldExpiresAt      *time.Time `db:"hold_expires_at"`
	IntegrationPayload Payload    `db:"integration_payload"`
	model.Metadata
}

// HoldExpired reports whether the booking is an expired hold as of now.
func (b *Booking) HoldExpired(now time.Time) bool {
	return b.Status == StatusHold && b.HoldExpiresAt != nil && !b.HoldExpiresAt.After(now)
}
