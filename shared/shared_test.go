package shared_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"skynest/shared"
	cacheMocks "skynest/shared/cache/mocks"
	"skynest/shared/constant"
	"skynest/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "valid true string", input: "true", expected: boolPtr(true)},
		{name: "valid false string", input: "false", expected: boolPtr(false)},
		{name: "valid 1 string", input: "1", expected: boolPtr(true)},
		{name: "valid 0 string", input: "0", expected: boolPtr(false)},
		{name: "invalid string returns nil", input: "maybe", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", *result)
				}
			} else {
				if result == nil {
					t.Errorf("expected %v, got nil", *tt.expected)
				} else if *result != *tt.expected {
					t.Errorf("expected %v, got %v", *tt.expected, *result)
				}
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "negative limit returns 1", total: 100, limit: -5, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
		{name: "limit greater than total", total: 5, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.CalculateTotalPage(tt.total, tt.limit)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type updateRoomRequest struct {
		RoomNumber string `db:"room_number"`
		Status     string `db:"status"`
		Notes      string `db:"notes"`
		Internal   string
	}

	data := updateRoomRequest{
		RoomNumber: "101",
		Status:     "cleaning",
		Notes:      "", // zero value, skipped
		Internal:   "skipped, no db tag",
	}

	result := shared.TransformFields(data, "staff-id")

	if result["room_number"] != "101" {
		t.Errorf("expected room_number to be 101, got %v", result["room_number"])
	}

	if result["status"] != "cleaning" {
		t.Errorf("expected status to be cleaning, got %v", result["status"])
	}

	if _, exists := result["notes"]; exists {
		t.Error("expected zero-value notes to be skipped")
	}

	if result[constant.FieldModifiedBy] != "staff-id" {
		t.Errorf("expected modified_by to be staff-id, got %v", result[constant.FieldModifiedBy])
	}

	if _, ok := result[constant.FieldModifiedAt].(time.Time); !ok {
		t.Error("expected modified_at to be a time.Time")
	}
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("booking-id", "id", "bookings")

	if len(result.Filters) != 1 {
		t.Fatalf("expected 1 filter, got %d", len(result.Filters))
	}

	filter, ok := result.Filters[0].(dto.Filter)
	if !ok {
		t.Fatal("expected filter to be of type dto.Filter")
	}

	if filter.Field != "id" || filter.Value != "booking-id" || filter.Table != "bookings" {
		t.Errorf("unexpected filter %+v", filter)
	}

	if filter.Operator != dto.FilterOperatorEq {
		t.Errorf("expected operator to be %s, got %s", dto.FilterOperatorEq, filter.Operator)
	}
}

func TestBuildCacheKey(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		parts    []string
		expected string
	}{
		{name: "prefix only", prefix: "booking:get", parts: nil, expected: "booking:get"},
		{name: "single part", prefix: "booking:get", parts: []string{"booking-id"}, expected: "booking:get:booking-id"},
		{name: "multiple parts", prefix: "report:revenue", parts: []string{"2026-01-01", "2026-02-01", "day"}, expected: "report:revenue:2026-01-01:2026-02-01:day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.BuildCacheKey(tt.prefix, tt.parts...)
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Limit: 10, Page: 1}
	other := dto.QueryParams{Limit: 10, Page: 2}

	first := shared.BuildCacheKeyWithQuery("booking:gets", params, dto.FilterGroup{})
	same := shared.BuildCacheKeyWithQuery("booking:gets", params, dto.FilterGroup{})
	different := shared.BuildCacheKeyWithQuery("booking:gets", other, dto.FilterGroup{})

	if first != same {
		t.Errorf("expected identical queries to share a key, got %s and %s", first, same)
	}

	if first == different {
		t.Errorf("expected distinct queries to get distinct keys, both got %s", first)
	}
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().
		Clear(gomock.Any(), "booking:gets"+constant.Asterix).
		Return(nil)

	shared.InvalidateCaches(context.Background(), mockCache, "booking:gets")
}

func boolPtr(b bool) *bool {
	return &b
}
