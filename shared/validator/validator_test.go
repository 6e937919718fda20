package validator_test

import (
	"strings"
	"testing"

	"skynest/shared/failure"
	"skynest/shared/validator"
)

type bookingPayload struct {
	RoomID     string `json:"room_id"     validate:"required,uuid"`
	CheckIn    string `json:"check_in"    validate:"required,dateonly"`
	CheckOut   string `json:"check_out"   validate:"required,dateonly"`
	GuestCount int    `json:"guest_count" validate:"required,gt=0"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        bookingPayload
		expectError bool
	}{
		{
			name: "valid payload",
			data: bookingPayload{
				RoomID:     "550e8400-e29b-41d4-a716-446655440000",
				CheckIn:    "2026-01-10",
				CheckOut:   "2026-01-12",
				GuestCount: 2,
			},
			expectError: false,
		},
		{
			name: "missing room id",
			data: bookingPayload{
				CheckIn:    "2026-01-10",
				CheckOut:   "2026-01-12",
				GuestCount: 2,
			},
			expectError: true,
		},
		{
			name: "malformed check in date",
			data: bookingPayload{
				RoomID:     "550e8400-e29b-41d4-a716-446655440000",
				CheckIn:    "10/01/2026",
				CheckOut:   "2026-01-12",
				GuestCount: 2,
			},
			expectError: true,
		},
		{
			name: "zero guest count",
			data: bookingPayload{
				RoomID:     "550e8400-e29b-41d4-a716-446655440000",
				CheckIn:    "2026-01-10",
				CheckOut:   "2026-01-12",
				GuestCount: 0,
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}

			if tt.expectError && failure.GetCode(err) != 400 {
				t.Errorf("expected code 400, got %d", failure.GetCode(err))
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid json body", func(t *testing.T) {
		body := `{"room_id":"550e8400-e29b-41d4-a716-446655440000","check_in":"2026-01-10","check_out":"2026-01-12","guest_count":2}`

		var data bookingPayload
		if err := validator.Validate(strings.NewReader(body), &data); err != nil {
			t.Errorf("expected no error, got %v", err)
		}

		if data.GuestCount != 2 {
			t.Errorf("expected guest_count to be 2, got %d", data.GuestCount)
		}
	})

	t.Run("malformed json body", func(t *testing.T) {
		var data bookingPayload
		err := validator.Validate(strings.NewReader("{not-json"), &data)

		if err == nil {
			t.Error("expected decode error, got nil")
		}

		if failure.GetCode(err) != 400 {
			t.Errorf("expected code 400, got %d", failure.GetCode(err))
		}
	})
}

func TestValidateVarDateOnly(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		expectError bool
	}{
		{name: "valid date", value: "2026-01-10", expectError: false},
		{name: "wrong layout", value: "01-10-2026", expectError: true},
		{name: "not a date", value: "tomorrow", expectError: true},
		{name: "impossible day", value: "2026-02-30", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.value, "dateonly")

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}
