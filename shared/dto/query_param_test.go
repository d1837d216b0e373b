package dto_test

import (
	"net/http/httptest"
	"testing"

	"lodge/shared/dto"
)

func TestQueryParamsFromRequest(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		defaults bool
		expected dto.QueryParams
	}{
		{
			name:     "defaults applied when missing",
			url:      "/v1/inventory/locks",
			defaults: true,
			expected: dto.QueryParams{Page: 1, Limit: 10},
		},
		{
			name:     "explicit values win",
			url:      "/v1/inventory/locks?page=3&limit=25",
			defaults: true,
			expected: dto.QueryParams{Page: 3, Limit: 25},
		},
		{
			name:     "invalid values fall back to defaults",
			url:      "/v1/inventory/locks?page=abc&limit=-5",
			defaults: true,
			expected: dto.QueryParams{Page: 1, Limit: 10},
		},
		{
			name:     "sort dir normalized to upper case",
			url:      "/v1/inventory/locks?sort_by=created_at&sort_dir=asc",
			defaults: true,
			expected: dto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: "ASC"},
		},
		{
			name:     "no defaults leaves zero values",
			url:      "/v1/inventory/locks",
			defaults: false,
			expected: dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)

			q := dto.QueryParams{}
			q.FromRequest(r, tt.defaults)

			if q != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, q)
			}
		})
	}
}

func TestQueryParamsOffset(t *testing.T) {
	tests := []struct {
		name     string
		params   dto.QueryParams
		expected int
	}{
		{name: "first page", params: dto.QueryParams{Page: 1, Limit: 10}, expected: 0},
		{name: "third page", params: dto.QueryParams{Page: 3, Limit: 25}, expected: 50},
		{name: "zero values", params: dto.QueryParams{}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.Offset(); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}
