package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"lodge/shared/model"
)

const (
	TableName  = "inventories"
	EntityName = "inventory"

	LockTableName  = "inventory_locks"
	LockEntityName = "inventory lock"

	AuditTableName  = "inventory_audits"
	AuditEntityName = "inventory audit"
)

// Lock ledger entry types. The name is historical; rows here are an append-only
// reconciliation trail, not a locking mechanism. Concurrency control is the
// database row lock taken by the repository.
const (
	LockTypeHold    = "HOLD"
	LockTypeBooked  = "BOOKED"
	LockTypeRelease = "RELEASE"
)

const (
	AuditHoldCreate  = "HOLD_CREATE"
	AuditHoldConfirm = "HOLD_CONFIRM"
	AuditHoldRelease = "HOLD_RELEASE"
)

// InventoryRow tracks sellable capacity and its consumption for one
// (room type, date) pair. FreeToSell is always derived from the other counters
// through the capacity package, never mutated independently.
type InventoryRow struct {
	ID            string    `db:"id"`
	PropertyID    string    `db:"property_id"`
	RoomTypeID    string    `db:"room_type_id"`
	Date          time.Time `db:"date"`
	BaseAvailable int       `db:"base_available"`
	BufferPercent float64   `db:"buffer_percent"`
	Sellable      int       `db:"sellable"`
	Booked        int       `db:"booked"`
	Holds         int       `db:"holds"`
	Overbooked    int       `db:"overbooked"`
	FreeToSell    int       `db:"free_to_sell"`
	model.Metadata
}

// InventoryLock is one append-only ledger entry per mutator call. Rows are
// never updated except for stamping ReleasedAt when the hold they track is
// released or expires.
type InventoryLock struct {
	ID          string     `db:"id"`
	InventoryID string     `db:"inventory_id"`
	BookingID   string     `db:"booking_id"`
	HoldToken   string     `db:"hold_token"`
	Change      int        `db:"change"`
	Type        string     `db:"type"`
	ReleasedAt  *time.Time `db:"released_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

// Snapshot captures the counter values relevant to one audit entry.
type Snapshot map[string]int

func (s Snapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Snapshot) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = nil

		return nil
	default:
		return fmt.Errorf("unsupported snapshot source type %T", src)
	}
}

// InventoryAudit is the append-only before/after trail written in the same
// transaction as every inventory mutation.
type InventoryAudit struct {
	ID          string    `db:"id"`
	InventoryID string    `db:"inventory_id"`
	ChangeType  string    `db:"change_type"`
	BeforeState Snapshot  `db:"before_state"`
	AfterState  Snapshot  `db:"after_state"`
	Reason      string    `db:"reason"`
	CreatedAt   time.Time `db:"created_at"`
}
