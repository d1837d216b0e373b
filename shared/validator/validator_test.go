package validator_test

import (
	"strings"
	"testing"

	"lodge/shared/failure"
	"lodge/shared/validator"
)

type holdRequest struct {
	RoomTypeID string `json:"room_type_id" validate:"required,uuid"`
	CheckIn    string `json:"check_in"     validate:"required,datetime=2006-01-02"`
	Rooms      int    `json:"rooms"        validate:"required,gte=1"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name:    "valid payload",
			body:    `{"room_type_id":"2f8a4a20-93a2-4f94-b38c-0f2e9ad9f002","check_in":"2026-07-10","rooms":2}`,
			wantErr: false,
		},
		{
			name:    "malformed json",
			body:    `{"room_type_id":`,
			wantErr: true,
		},
		{
			name:    "invalid uuid",
			body:    `{"room_type_id":"not-a-uuid","check_in":"2026-07-10","rooms":2}`,
			wantErr: true,
		},
		{
			name:    "invalid date format",
			body:    `{"room_type_id":"2f8a4a20-93a2-4f94-b38c-0f2e9ad9f002","check_in":"10/07/2026","rooms":2}`,
			wantErr: true,
		},
		{
			name:    "zero rooms",
			body:    `{"room_type_id":"2f8a4a20-93a2-4f94-b38c-0f2e9ad9f002","check_in":"2026-07-10","rooms":0}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := holdRequest{}
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}

			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if tt.wantErr && err != nil && failure.GetCode(err) != 400 {
				t.Errorf("expected 400, got %d", failure.GetCode(err))
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	if err := validator.ValidateVar("2026-07-10", "datetime=2006-01-02"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := validator.ValidateVar("not-a-date", "datetime=2006-01-02"); err == nil {
		t.Error("expected error, got nil")
	}
}
