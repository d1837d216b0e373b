// Package buffer resolves the overbooking buffer percentage applicable to a
// property, room type, and stay date from a prioritized rule set.
package buffer

import (
	"strconv"
	"strings"
	"time"

	"lodge/internal/domains/property/model"
)

const bitmaskLength = 7

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sun":       time.Sunday,
	"mon":       time.Monday,
	"tue":       time.Tuesday,
	"wed":       time.Wednesday,
	"thu":       time.Thursday,
	"fri":       time.Friday,
	"sat":       time.Saturday,
}

// ResolvePercent returns the buffer percent of the first active rule matching
// the date and its day-of-week filter, falling back to the property default.
// Candidates must already be ordered room-type-specific first, most recently
// modified first within each group; the repository query guarantees that
// ordering so a room-type rule beats a property-wide rule even when the
// property-wide rule is newer.
func ResolvePercent(property model.Property, rules []model.BufferRule, date time.Time) float64 {
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}

		if date.Before(rule.StartDate) || date.After(rule.EndDate) {
			continue
		}

		if MatchesDayOfWeek(rule.DaysOfWeek, date) {
			return rule.Percent
		}
	}

	return property.DefaultBuffer
}

// MatchesDayOfWeek evaluates a rule's day-of-week filter against a date. An
// empty filter matches every day. A 7-character 0/1 string is a Monday-first
// bitmask; anything else is treated as a comma-separated list of weekday names
// or Sunday-zero numeric indices.
func MatchesDayOfWeek(filter string, date time.Time) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return true
	}

	if isBitmask(filter) {
		idx := (int(date.Weekday()) + 6) % bitmaskLength

		return filter[idx] == '1'
	}

	weekday := date.Weekday()

	for _, part := range strings.Split(filter, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}

		if idx, err := strconv.Atoi(part); err == nil {
			if idx == int(weekday) {
				return true
			}

			continue
		}

		if day, ok := weekdayNames[part]; ok && day == weekday {
			return true
		}
	}

	return false
}

func isBitmask(filter string) bool {
	if len(filter) != bitmaskLength {
		return false
	}

	for _, c := range filter {
		if c != '0' && c != '1' {
			return false
		}
	}

	return true
}
