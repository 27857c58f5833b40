package service

//go:generate go run go.uber.org/mock/mockgen -source=./canceller.go -destination=../mocks/canceller_mock.go -package=mocks

import (
	"context"

	bookingModel "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/model"

	"github.com/jmoiron/sqlx"
)

// BookingCanceller is the part of the booking workflow the guest lifecycle depends on.
type BookingCanceller interface {
	CancelGuestBookingsTx(ctx context.Context, sqltx *sqlx.Tx, guestID int64) ([]bookingModel.Booking, error)
	SyncCancelled(ctx context.Context, bookings []bookingModel.Booking)
}
