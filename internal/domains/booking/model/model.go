package model

import (
	"math"
	"time"

	"github.com/Pawan0019/Hotel-Room-Booking/shared/model"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/timezone"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldRoomID      = "room_id"
	FieldGuestID     = "guest_id"
	FieldCheckIn     = "check_in"
	FieldCheckOut    = "check_out"
	FieldTotalAmount = "total_amount"
	FieldIsCancelled = "is_cancelled"
)

const centsPerUnit = 100

// Booking is a stay in one room over [CheckIn, CheckOut). Both dates are calendar dates and
// CheckOut is exclusive.
type Booking struct {
	ID          int64     `db:"id"           generated:"true"`
	RoomID      int64     `db:"room_id"`
	GuestID     int64     `db:"guest_id"`
	CheckIn     time.Time `db:"check_in"`
	CheckOut    time.Time `db:"check_out"`
	TotalAmount float64   `db:"total_amount"`
	IsCancelled bool      `db:"is_cancelled"`
	model.Metadata
}

func (b Booking) Key() int64 {
	return b.ID
}

// Normalize strips the driver's clock and zone from the stored dates.
func (b *Booking) Normalize() {
	b.CheckIn = timezone.DateOnly(b.CheckIn)
	b.CheckOut = timezone.DateOnly(b.CheckOut)
}

func (b Booking) Nights() int {
	return timezone.DaysBetween(b.CheckIn, b.CheckOut)
}

// Overlaps reports whether the booking occupies any night of [checkIn, checkOut).
// Cancelled bookings occupy nothing.
func (b Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return !b.IsCancelled && Overlaps(b.CheckIn, b.CheckOut, checkIn, checkOut)
}

// Overlaps reports whether the half-open date ranges [aStart, aEnd) and [bStart, bEnd) share a
// night. Back-to-back stays, where one checks out the day the other checks in, do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// CalculateTotalAmount prices a stay as whole nights times the nightly rate, rounded to cents.
func CalculateTotalAmount(pricePerNight float64, checkIn, checkOut time.Time) float64 {
	nights := timezone.DaysBetween(checkIn, checkOut)

	return math.Round(pricePerNight*float64(nights)*centsPerUnit) / centsPerUnit
}
