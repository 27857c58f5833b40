package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/Pawan0019/Hotel-Room-Booking/infras/database"
	"github.com/Pawan0019/Hotel-Room-Booking/infras/otel"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/model"
	gDto "github.com/Pawan0019/Hotel-Room-Booking/shared/dto"
	gRepo "github.com/Pawan0019/Hotel-Room-Booking/shared/repository"

	"github.com/jmoiron/sqlx"
)

const (
	argRequestedCheckIn  = "req_check_in"
	argRequestedCheckOut = "req_check_out"
	argToday             = "today"
)

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (bool, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *database.Connection
	otel otel.Otel
}

func New(db *database.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func notCancelled() gDto.Filter {
	return gDto.Filter{
		Field:    model.FieldIsCancelled,
		Value:    false,
		Operator: gDto.FilterOperatorEq,
	}
}

// OverlapFilter matches non-cancelled bookings of roomID sharing a night with
// [checkIn, checkOut): existing.check_in < checkOut AND existing.check_out > checkIn.
func OverlapFilter(roomID int64, checkIn, checkOut time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Value:    roomID,
				Operator: gDto.FilterOperatorEq,
			},
			notCancelled(),
			gDto.Filter{
				Field:    model.FieldCheckIn,
				ArgName:  argRequestedCheckOut,
				Value:    checkOut,
				Operator: gDto.FilterOperatorLess,
			},
			gDto.Filter{
				Field:    model.FieldCheckOut,
				ArgName:  argRequestedCheckIn,
				Value:    checkIn,
				Operator: gDto.FilterOperatorGreater,
			},
		},
	}
}

// ActiveByGuestFilter matches the guest's non-cancelled bookings that check out today or later.
func ActiveByGuestFilter(guestID int64, today time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldGuestID,
				Value:    guestID,
				Operator: gDto.FilterOperatorEq,
			},
			notCancelled(),
			gDto.Filter{
				Field:    model.FieldCheckOut,
				ArgName:  argToday,
				Value:    today,
				Operator: gDto.FilterOperatorGreaterEq,
			},
		},
	}
}

// CurrentByRoomFilter matches every booking of the room, cancelled or not, that checks out
// today or later.
func CurrentByRoomFilter(roomID int64, today time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRoomID,
				Value:    roomID,
				Operator: gDto.FilterOperatorEq,
			},
			gDto.Filter{
				Field:    model.FieldCheckOut,
				ArgName:  argToday,
				Value:    today,
				Operator: gDto.FilterOperatorGreaterEq,
			},
		},
	}
}

// IDsFilter matches the bookings with the given ids.
func IDsFilter(ids []int64) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    ids,
				Operator: gDto.FilterOperatorIn,
			},
		},
	}
}
