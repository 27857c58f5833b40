package cache

import (
	"context"

	bookingModel "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/model"
	bookingRepo "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/repository"
	guestModel "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/guest/model"
	guestRepo "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/guest/repository"
	roomModel "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/room/model"
	roomRepo "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/room/repository"
	gDto "github.com/Pawan0019/Hotel-Room-Booking/shared/dto"

	"github.com/rs/zerolog/log"
)

const (
	KindRoom    = roomModel.EntityName
	KindGuest   = guestModel.EntityName
	KindBooking = bookingModel.EntityName
)

// HotelCache is the process-wide read-through mirror of rooms, guests and bookings. Each kind
// is locked independently.
type HotelCache struct {
	Rooms    *Collection[roomModel.Room]
	Guests   *Collection[guestModel.Guest]
	Bookings *Collection[bookingModel.Booking]
}

func New(rooms roomRepo.Room, guests guestRepo.Guest, bookings bookingRepo.Booking) *HotelCache {
	return &HotelCache{
		Rooms: NewCollection(KindRoom, func(ctx context.Context) ([]roomModel.Room, error) {
			return rooms.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
		}),
		Guests: NewCollection(KindGuest, func(ctx context.Context) ([]guestModel.Guest, error) {
			return guests.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
		}),
		Bookings: NewCollection(KindBooking, func(ctx context.Context) ([]bookingModel.Booking, error) {
			return bookings.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
		}),
	}
}

// OnChange registers fn to be told about every mirrored mutation. It must be called before the
// cache is shared between goroutines.
func (h *HotelCache) OnChange(fn ChangeFunc) {
	h.Rooms.onChange = fn
	h.Guests.onChange = fn
	h.Bookings.onChange = fn
}

// Invalidate drops the mirror of one kind. Unknown kinds are ignored.
func (h *HotelCache) Invalidate(kind string) {
	switch kind {
	case KindRoom:
		h.Rooms.Invalidate()
	case KindGuest:
		h.Guests.Invalidate()
	case KindBooking:
		h.Bookings.Invalidate()
	default:
		log.Warn().Str("kind", kind).Msg("invalidate requested for unknown cache kind")
	}
}
