package dto_test

import (
	"testing"
	"time"

	"github.com/Pawan0019/Hotel-Room-Booking/shared/constant"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/dto"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/model"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/timezone"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
	})

	expectedCreatedAt := timezone.Format(createdAt, constant.TimestampFormat)
	expectedModifiedAt := timezone.Format(modifiedAt, constant.TimestampFormat)

	if metadata.CreatedAt != expectedCreatedAt {
		t.Errorf("expected CreatedAt to be %s, got %s", expectedCreatedAt, metadata.CreatedAt)
	}

	if metadata.ModifiedAt != expectedModifiedAt {
		t.Errorf("expected ModifiedAt to be %s, got %s", expectedModifiedAt, metadata.ModifiedAt)
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		where     string
		argName   string
		argValue  any
		expectArg bool
	}{
		{
			name:      "eq",
			filter:    dto.Filter{Field: "room_id", Value: int64(1), Operator: dto.FilterOperatorEq},
			where:     "room_id = :room_id",
			argName:   "room_id",
			argValue:  int64(1),
			expectArg: true,
		},
		{
			name:      "strict less with arg name and table",
			filter:    dto.Filter{Field: "check_in", ArgName: "req_check_out", Value: "2030-01-05", Operator: dto.FilterOperatorLess, Table: "bookings"},
			where:     "bookings.check_in < :req_check_out",
			argName:   "req_check_out",
			argValue:  "2030-01-05",
			expectArg: true,
		},
		{
			name:      "strict greater",
			filter:    dto.Filter{Field: "check_out", ArgName: "req_check_in", Value: "2030-01-01", Operator: dto.FilterOperatorGreater},
			where:     "check_out > :req_check_in",
			argName:   "req_check_in",
			argValue:  "2030-01-01",
			expectArg: true,
		},
		{
			name:      "greater or equal",
			filter:    dto.Filter{Field: "check_out", Value: "2030-01-01", Operator: dto.FilterOperatorGreaterEq},
			where:     "check_out >= :check_out",
			argName:   "check_out",
			argValue:  "2030-01-01",
			expectArg: true,
		},
		{
			name:   "is null",
			filter: dto.Filter{Field: "room_id", Operator: dto.FilterIsNull},
			where:  "room_id IS NULL",
		},
		{
			name:   "unknown operator",
			filter: dto.Filter{Field: "room_id", Operator: "between"},
			where:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()
			if where != tt.where {
				t.Errorf("expected where %q, got %q", tt.where, where)
			}

			if !tt.expectArg {
				if len(args) != 0 {
					t.Errorf("expected no args, got %v", args)
				}

				return
			}

			if args[tt.argName] != tt.argValue {
				t.Errorf("expected arg %s to be %v, got %v", tt.argName, tt.argValue, args[tt.argName])
			}
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "room_id", Value: int64(7), Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "is_cancelled", Value: false, Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "guest_id", Value: int64(1), Operator: dto.FilterOperatorEq},
					dto.Filter{Field: "guest_id", ArgName: "other_guest", Value: int64(2), Operator: dto.FilterOperatorEq},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	expected := "(room_id = :room_id AND is_cancelled = :is_cancelled AND (guest_id = :guest_id OR guest_id = :other_guest))"
	if where != expected {
		t.Errorf("expected %q, got %q", expected, where)
	}

	if len(args) != 4 {
		t.Errorf("expected 4 args, got %d", len(args))
	}

	empty := dto.FilterGroup{}
	if where, _ := empty.GetWhereClause(); where != "" {
		t.Errorf("expected empty where clause, got %q", where)
	}
}

func TestSortDirectionConstants(t *testing.T) {
	if dto.SortDirAsc != "ASC" {
		t.Errorf("expected SortDirAsc to be 'ASC', got %s", dto.SortDirAsc)
	}
	if dto.SortDirDesc != "DESC" {
		t.Errorf("expected SortDirDesc to be 'DESC', got %s", dto.SortDirDesc)
	}
}
