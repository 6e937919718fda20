package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"skynest/shared/constant"
	"skynest/shared/dto"
	"skynest/shared/model"
	"skynest/shared/timezone"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)

	modelMetadata := model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "admin-id",
		ModifiedBy: "staff-id",
	}

	metadata := &dto.Metadata{}
	metadata.FromModel(modelMetadata)

	if metadata.CreatedAt != timezone.Format(createdAt, constant.DateFormat) {
		t.Errorf("unexpected CreatedAt %s", metadata.CreatedAt)
	}

	if metadata.ModifiedAt != timezone.Format(modifiedAt, constant.DateFormat) {
		t.Errorf("unexpected ModifiedAt %s", metadata.ModifiedAt)
	}

	if metadata.CreatedBy != "admin-id" || metadata.ModifiedBy != "staff-id" {
		t.Errorf("unexpected authors %s, %s", metadata.CreatedBy, metadata.ModifiedBy)
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:           "all parameters set",
			target:         "/v1/bookings?page=2&limit=20&sort_by=check_in&sort_dir=asc",
			defaultRequest: false,
			expected:       dto.QueryParams{Page: 2, Limit: 20, SortBy: "check_in", SortDir: "ASC"},
		},
		{
			name:           "defaults applied when missing",
			target:         "/v1/bookings",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "no defaults when disabled",
			target:         "/v1/bookings",
			defaultRequest: false,
			expected:       dto.QueryParams{},
		},
		{
			name:           "invalid page falls back to default",
			target:         "/v1/bookings?page=zero&limit=-3",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:           "invalid sort dir ignored",
			target:         "/v1/bookings?sort_dir=sideways",
			defaultRequest: false,
			expected:       dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)

			q := dto.QueryParams{}
			q.FromRequest(r, tt.defaultRequest)

			if q != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, q)
			}
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name           string
		filter         dto.Filter
		expectedClause string
	}{
		{
			name:           "equality with table prefix",
			filter:         dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "confirmed", Table: "bookings"},
			expectedClause: "bookings.status = :status",
		},
		{
			name:           "like is case insensitive",
			filter:         dto.Filter{Field: "full_name", Operator: dto.FilterOperatorLike, Value: "smith", Table: "users"},
			expectedClause: "LOWER(users.full_name) LIKE LOWER(:full_name) ",
		},
		{
			name:           "less than",
			filter:         dto.Filter{Field: "base_price", Operator: dto.FilterOperatorLess, Value: 150, Table: "room_types"},
			expectedClause: "room_types.base_price < :base_price",
		},
		{
			name:           "is null",
			filter:         dto.Filter{Field: "assignee_id", Operator: dto.FilterIsNull, Table: "maintenance_tasks"},
			expectedClause: "maintenance_tasks.assignee_id IS NULL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, _ := tt.filter.GetWhereClause()
			if clause != tt.expectedClause {
				t.Errorf("expected %q, got %q", tt.expectedClause, clause)
			}
		})
	}
}

func TestFilter_GetWhereClauseIn(t *testing.T) {
	filter := dto.Filter{
		Field:    "status",
		Operator: dto.FilterOperatorIn,
		Value:    []string{"pending", "confirmed"},
		Table:    "bookings",
	}

	clause, args := filter.GetWhereClause()

	if clause != "bookings.status IN (:status_0, :status_1) " {
		t.Errorf("unexpected clause %q", clause)
	}

	if args["status_0"] != "pending" || args["status_1"] != "confirmed" {
		t.Errorf("unexpected args %+v", args)
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "branch_id", Operator: dto.FilterOperatorEq, Value: "branch-id", Table: "rooms"},
			dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "available", Table: "rooms"},
		},
	}

	clause, args := group.GetWhereClause()

	if clause == "" {
		t.Fatal("expected a where clause, got empty string")
	}

	if args["branch_id"] != "branch-id" || args["status"] != "available" {
		t.Errorf("unexpected args %+v", args)
	}
}
