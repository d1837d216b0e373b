package dto

import (
	"time"

	"lodge/internal/domains/inventory/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/timezone"
)

// StayRequest carries the identifiers shared by every stay-level inventory
// operation. CheckIn/CheckOut are calendar dates; the stay covers the nights
// [check_in, check_out).
type StayRequest struct {
	PropertyID string `json:"property_id" validate:"required,uuid"`
	RoomTypeID string `json:"room_type_id" validate:"required,uuid"`
	BookingID  string `json:"booking_id"  validate:"required,uuid"`
	HoldToken  string `json:"hold_token"  validate:"required"`
	CheckIn    string `json:"check_in"    validate:"required,datetime=2006-01-02"`
	CheckOut   string `json:"check_out"   validate:"required,datetime=2006-01-02"`
	Rooms      int    `json:"rooms"       validate:"required,gte=1"`
}

// Nights parses and validates the date range, enforcing the max-nights guard
// before any inventory row is touched.
func (r *StayRequest) Nights(maxStayNights int) ([]time.Time, error) {
	checkIn, err := shared.ParseDay(r.CheckIn)
	if err != nil {
		return nil, failure.InvalidDateRange
	}

	checkOut, err := shared.ParseDay(r.CheckOut)
	if err != nil {
		return nil, failure.InvalidDateRange
	}

	nights := shared.NightsBetween(checkIn, checkOut)
	if nights <= 0 || (maxStayNights > 0 && nights > maxStayNights) {
		return nil, failure.InvalidDateRange
	}

	return shared.StayNights(checkIn, checkOut), nil
}

type HoldStayRequest struct {
	StayRequest
}

type ConfirmStayRequest struct {
	StayRequest
}

type ReleaseStayRequest struct {
	StayRequest
	// Status of the booking at release time decides which counter is returned:
	// HOLD decrements holds, CONFIRMED/PENDING decrement booked, anything else
	// leaves the counters untouched while still writing ledger rows.
	Status string `json:"status" validate:"required"`
}

type NightInventory struct {
	InventoryID string `json:"inventory_id"`
	Date        string `json:"date"`
	Sellable    int    `json:"sellable"`
	Booked      int    `json:"booked"`
	Holds       int    `json:"holds"`
	Overbooked  int    `json:"overbooked"`
	FreeToSell  int    `json:"free_to_sell"`
	gDto.Metadata
}

func (n *NightInventory) FromModel(row model.InventoryRow) {
	n.InventoryID = row.ID
	n.Date = shared.FormatDay(row.Date)
	n.Sellable = row.Sellable
	n.Booked = row.Booked
	n.Holds = row.Holds
	n.Overbooked = row.Overbooked
	n.FreeToSell = row.FreeToSell
	n.Metadata.FromModel(row.Metadata)
}

type StayResponse struct {
	BookingID string           `json:"booking_id"`
	HoldToken string           `json:"hold_token"`
	Nights    []NightInventory `json:"nights"`
}

func (r *StayResponse) FromModels(bookingID, holdToken string, rows []model.InventoryRow) {
	r.BookingID = bookingID
	r.HoldToken = holdToken

	r.Nights = make([]NightInventory, len(rows))
	for i, row := range rows {
		r.Nights[i].FromModel(row)
	}
}

type AvailabilityResponse struct {
	RoomTypeID string           `json:"room_type_id"`
	From       string           `json:"from"`
	To         string           `json:"to"`
	Days       []NightInventory `json:"days"`
}

func (r *AvailabilityResponse) FromModels(roomTypeID string, from, to time.Time, rows []model.InventoryRow) {
	r.RoomTypeID = roomTypeID
	r.From = shared.FormatDay(from)
	r.To = shared.FormatDay(to)

	r.Days = make([]NightInventory, len(rows))
	for i, row := range rows {
		r.Days[i].FromModel(row)
	}
}

type LockResponse struct {
	ID          string `json:"id"`
	InventoryID string `json:"inventory_id"`
	BookingID   string `json:"booking_id"`
	HoldToken   string `json:"hold_token"`
	Change      int    `json:"change"`
	Type        string `json:"type"`
	ReleasedAt  string `json:"released_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func (r *LockResponse) FromModel(lock model.InventoryLock) {
	r.ID = lock.ID
	r.InventoryID = lock.InventoryID
	r.BookingID = lock.BookingID
	r.HoldToken = lock.HoldToken
	r.Change = lock.Change
	r.Type = lock.Type
	r.CreatedAt = timezone.Format(lock.CreatedAt, constant.DateFormat)

	if lock.ReleasedAt != nil {
		r.ReleasedAt = timezone.Format(*lock.ReleasedAt, constant.DateFormat)
	}
}

type GetLocksResponse struct {
	Locks     []LockResponse `json:"locks"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetLocksResponse) FromModels(models []model.InventoryLock, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Locks = make([]LockResponse, len(models))
	for i, mod := range models {
		r.Locks[i].FromModel(mod)
	}
}

type AuditResponse struct {
	ID          string         `json:"id"`
	InventoryID string         `json:"inventory_id"`
	ChangeType  string         `json:"change_type"`
	BeforeState model.Snapshot `json:"before_state"`
	AfterState  model.Snapshot `json:"after_state"`
	Reason      string         `json:"reason"`
	CreatedAt   string         `json:"created_at"`
}

func (r *AuditResponse) FromModel(audit model.InventoryAudit) {
	r.ID = audit.ID
	r.InventoryID = audit.InventoryID
	r.ChangeType = audit.ChangeType
	r.BeforeState = audit.BeforeState
	r.AfterState = audit.AfterState
	r.Reason = audit.Reason
	r.CreatedAt = timezone.Format(audit.CreatedAt, constant.DateFormat)
}

type GetAuditsResponse struct {
	Audits    []AuditResponse `json:"audits"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetAuditsResponse) FromModels(models []model.InventoryAudit, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Audits = make([]AuditResponse, len(models))
	for i, mod := range models {
		r.Audits[i].FromModel(mod)
	}
}

type ExportAuditsRequest struct {
	From string `json:"from" validate:"required,datetime=2006-01-02"`
	To   string `json:"to"   validate:"required,datetime=2006-01-02"`
}

type ExportAuditsResponse struct {
	URL     string `json:"url"`
	Entries int    `json:"entries"`
}
