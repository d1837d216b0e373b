package shared

import (
	"context"
	"fmt"
	"lodge/shared/cache"
	"lodge/shared/constant"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// BuildCacheKey joins a prefix and its parts into a colon-separated cache key.
func BuildCacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}

	return prefix + ":" + strings.Join(parts, ":")
}

// InvalidateCaches clears every cache entry under the given prefix.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefix string) {
	if err := c.Clear(ctx, BuildCacheKey(prefix, constant.Asterix)); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// StayNights expands [checkIn, checkOut) into one date per night, ascending.
// Rows are always locked in this order so two entry points touching the same
// stay cannot deadlock on each other.
func StayNights(checkIn, checkOut time.Time) []time.Time {
	nights := []time.Time{}

	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		nights = append(nights, d)
	}

	return nights
}

// NightsBetween returns the stay length in nights, negative when the range is inverted.
func NightsBetween(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

func FormatDay(t time.Time) string {
	return t.Format(constant.DayFormat)
}

func ParseDay(value string) (time.Time, error) {
	t, err := time.ParseInLocation(constant.DayFormat, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}

	return t, nil
}
