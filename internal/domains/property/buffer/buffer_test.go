package buffer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lodge/internal/domains/property/buffer"
	"lodge/internal/domains/property/model"
)

func day(value string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		panic(err)
	}

	return t
}

func rule(roomTypeID *string, start, end string, percent float64, daysOfWeek string) model.BufferRule {
	return model.BufferRule{
		ID:         "rule-id",
		PropertyID: "property-id",
		RoomTypeID: roomTypeID,
		StartDate:  day(start),
		EndDate:    day(end),
		Percent:    percent,
		DaysOfWeek: daysOfWeek,
		IsActive:   true,
	}
}

func TestResolvePercent(t *testing.T) {
	property := model.Property{ID: "property-id", DefaultBuffer: 5}
	roomTypeID := "room-type-id"

	tests := []struct {
		name  string
		rules []model.BufferRule
		date  time.Time
		want  float64
	}{
		{
			name:  "no rules falls back to property default",
			rules: nil,
			date:  day("2026-07-10"),
			want:  5,
		},
		{
			name: "first matching rule wins",
			rules: []model.BufferRule{
				rule(&roomTypeID, "2026-07-01", "2026-07-31", 20, ""),
				rule(nil, "2026-07-01", "2026-07-31", 10, ""),
			},
			date: day("2026-07-10"),
			want: 20,
		},
		{
			name: "inactive rule skipped",
			rules: []model.BufferRule{
				func() model.BufferRule {
					r := rule(&roomTypeID, "2026-07-01", "2026-07-31", 20, "")
					r.IsActive = false

					return r
				}(),
				rule(nil, "2026-07-01", "2026-07-31", 10, ""),
			},
			date: day("2026-07-10"),
			want: 10,
		},
		{
			name: "date outside window skipped",
			rules: []model.BufferRule{
				rule(nil, "2026-08-01", "2026-08-31", 20, ""),
			},
			date: day("2026-07-10"),
			want: 5,
		},
		{
			name: "day-of-week filter rejects, next rule matches",
			rules: []model.BufferRule{
				// 2026-07-10 is a Friday; bitmask allows Monday only.
				rule(&roomTypeID, "2026-07-01", "2026-07-31", 30, "1000000"),
				rule(nil, "2026-07-01", "2026-07-31", 15, ""),
			},
			date: day("2026-07-10"),
			want: 15,
		},
		{
			name: "bitmask matches friday",
			rules: []model.BufferRule{
				rule(nil, "2026-07-01", "2026-07-31", 25, "0000100"),
			},
			date: day("2026-07-10"),
			want: 25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buffer.ResolvePercent(property, tt.rules, tt.date)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchesDayOfWeek(t *testing.T) {
	friday := day("2026-07-10")
	sunday := day("2026-07-12")
	monday := day("2026-07-13")

	tests := []struct {
		name   string
		filter string
		date   time.Time
		want   bool
	}{
		{name: "empty filter matches all", filter: "", date: friday, want: true},
		{name: "bitmask monday first position", filter: "1000000", date: monday, want: true},
		{name: "bitmask sunday last position", filter: "0000001", date: sunday, want: true},
		{name: "bitmask sunday not first position", filter: "1000000", date: sunday, want: false},
		{name: "weekday name list", filter: "friday,saturday", date: friday, want: true},
		{name: "weekday name list no match", filter: "monday,tuesday", date: friday, want: false},
		{name: "numeric list sunday is zero", filter: "0,6", date: sunday, want: true},
		{name: "numeric list friday is five", filter: "5", date: friday, want: true},
		{name: "mixed case names", filter: "Friday", date: friday, want: true},
		{name: "list with spaces", filter: " friday , saturday ", date: friday, want: true},
		{name: "seven chars but not bitmask treated as list", filter: "mon,fri", date: friday, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buffer.MatchesDayOfWeek(tt.filter, tt.date))
		})
	}
}
