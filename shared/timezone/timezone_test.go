package timezone_test

import (
	"testing"
	"time"

	"lodge/shared/timezone"
)

func TestStayDate(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "midnight stays midnight",
			input:    time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
			expected: time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "intra-day time truncated",
			input:    time.Date(2026, 7, 10, 18, 45, 12, 0, time.UTC),
			expected: time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "offset timestamp normalized to UTC day",
			input:    time.Date(2026, 7, 11, 2, 0, 0, 0, time.FixedZone("UTC+7", 7*3600)),
			expected: time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := timezone.StayDate(tt.input); !got.Equal(tt.expected) {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestNow(t *testing.T) {
	now := timezone.Now()
	if now.IsZero() {
		t.Error("expected non-zero time")
	}
}
