package dto

import (
	"time"

	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/model"
	gDto "github.com/Pawan0019/Hotel-Room-Booking/shared/dto"
	gModel "github.com/Pawan0019/Hotel-Room-Booking/shared/model"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/timezone"
)

// CreateBookingRequest asks for a stay in one room. TotalAmount is accepted for compatibility
// with older clients and is always recomputed from the room's nightly rate.
type CreateBookingRequest struct {
	RoomID      int64     `json:"room_id"      validate:"required,gt=0"`
	GuestID     int64     `json:"guest_id"     validate:"required,gt=0"`
	CheckIn     time.Time `json:"check_in"     validate:"required"`
	CheckOut    time.Time `json:"check_out"    validate:"required"`
	TotalAmount float64   `json:"total_amount"`
}

// Normalize reduces both dates to calendar dates.
func (c *CreateBookingRequest) Normalize() {
	c.CheckIn = timezone.DateOnly(c.CheckIn)
	c.CheckOut = timezone.DateOnly(c.CheckOut)
}

func (c *CreateBookingRequest) ToModel(totalAmount float64) model.Booking {
	now := timezone.Now()

	return model.Booking{
		RoomID:      c.RoomID,
		GuestID:     c.GuestID,
		CheckIn:     c.CheckIn,
		CheckOut:    c.CheckOut,
		TotalAmount: totalAmount,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

type BookingResponse struct {
	ID          int64   `json:"id"`
	RoomID      int64   `json:"room_id"`
	GuestID     int64   `json:"guest_id"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	Nights      int     `json:"nights"`
	TotalAmount float64 `json:"total_amount"`
	IsCancelled bool    `json:"is_cancelled"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.GuestID = model.GuestID
	r.CheckIn = timezone.FormatDate(model.CheckIn)
	r.CheckOut = timezone.FormatDate(model.CheckOut)
	r.Nights = model.Nights()
	r.TotalAmount = model.TotalAmount
	r.IsCancelled = model.IsCancelled
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking) {
	r.TotalData = len(models)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
