package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Pawan0019/Hotel-Room-Booking/internal/cache"
	bookingMocks "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/mocks"
	bookingModel "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/model"
	guestMocks "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/guest/mocks"
	guestModel "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/guest/model"
	roomMocks "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/room/mocks"
	roomModel "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/room/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHotelCache_LoadsEachKindOnce(t *testing.T) {
	ctrl := gomock.NewController(t)

	rooms := roomMocks.NewMockRoom(ctrl)
	guests := guestMocks.NewMockGuest(ctrl)
	bookings := bookingMocks.NewMockBooking(ctrl)

	checkIn := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]roomModel.Room{{ID: 1, RoomNumber: "101", RoomType: roomModel.TypeSingle, PricePerNight: 50}}, nil).
		Times(1)
	guests.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]guestModel.Guest{{ID: 7, Name: "Ana", IsActive: true}}, nil).
		Times(1)
	bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]bookingModel.Booking{{ID: 3, RoomID: 1, GuestID: 7, CheckIn: checkIn, CheckOut: checkIn.AddDate(0, 0, 2)}}, nil).
		Times(1)

	hotel := cache.New(rooms, guests, bookings)
	ctx := context.Background()

	for range 3 {
		room, found, err := hotel.Rooms.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "101", room.RoomNumber)

		guest, found, err := hotel.Guests.GetByID(ctx, 7)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Ana", guest.Name)

		all, err := hotel.Bookings.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	}
}

func TestHotelCache_KindsAreIndependent(t *testing.T) {
	ctrl := gomock.NewController(t)

	rooms := roomMocks.NewMockRoom(ctrl)
	guests := guestMocks.NewMockGuest(ctrl)
	bookings := bookingMocks.NewMockBooking(ctrl)

	rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))
	guests.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]guestModel.Guest{{ID: 1}}, nil)

	hotel := cache.New(rooms, guests, bookings)

	_, err := hotel.Rooms.GetAll(context.Background())
	assert.Error(t, err)

	all, err := hotel.Guests.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)

	assert.False(t, hotel.Rooms.Loaded())
	assert.True(t, hotel.Guests.Loaded())
	assert.False(t, hotel.Bookings.Loaded())
}

func TestHotelCache_InvalidateAndOnChange(t *testing.T) {
	ctrl := gomock.NewController(t)

	rooms := roomMocks.NewMockRoom(ctrl)
	guests := guestMocks.NewMockGuest(ctrl)
	bookings := bookingMocks.NewMockBooking(ctrl)

	rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]roomModel.Room{{ID: 1}}, nil).
		Times(2)

	hotel := cache.New(rooms, guests, bookings)

	type change struct {
		kind string
		id   int64
	}

	var changes []change

	hotel.OnChange(func(kind string, id int64) {
		changes = append(changes, change{kind: kind, id: id})
	})

	_, err := hotel.Rooms.GetAll(context.Background())
	require.NoError(t, err)

	hotel.Rooms.Update(roomModel.Room{ID: 1, IsAvailable: true})
	hotel.Guests.Delete(4)

	hotel.Invalidate(cache.KindGuest)
	hotel.Invalidate("unknown")
	assert.True(t, hotel.Rooms.Loaded())

	hotel.Invalidate(cache.KindRoom)
	assert.False(t, hotel.Rooms.Loaded())

	_, err = hotel.Rooms.GetAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []change{{kind: cache.KindRoom, id: 1}, {kind: cache.KindGuest, id: 4}}, changes)
}
