package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Pawan0019/Hotel-Room-Booking/config"
	dbMocks "github.com/Pawan0019/Hotel-Room-Booking/infras/database/mocks"
	"github.com/Pawan0019/Hotel-Room-Booking/infras/otel/mocks"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/cache"
	bookingMocks "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/mocks"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/model"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/model/dto"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/service"
	guestMocks "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/guest/mocks"
	guestModel "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/guest/model"
	roomMocks "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/room/mocks"
	roomModel "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/room/model"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/constant"
	gDto "github.com/Pawan0019/Hotel-Room-Booking/shared/dto"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/failure"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var today = time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	bookings *bookingMocks.MockBooking
	guests   *guestMocks.MockGuest
	rooms    *roomMocks.MockRoom
	events   *bookingMocks.MockPublisher
	tx       dbMocks.Transactor
	cache    *cache.HotelCache
	svc      service.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	restore := timezone.SetClock(func() time.Time {
		return today.Add(10 * time.Hour)
	})
	t.Cleanup(restore)

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.DB.Tx.MaxRetry = 2
	cfg.DB.Tx.InitialDelayMs = 1
	cfg.DB.Tx.MaxDelayMs = 2

	f := &fixture{
		bookings: bookingMocks.NewMockBooking(ctrl),
		guests:   guestMocks.NewMockGuest(ctrl),
		rooms:    roomMocks.NewMockRoom(ctrl),
		events:   bookingMocks.NewMockPublisher(ctrl),
		tx:       dbMocks.NewTransactor(),
	}

	f.cache = cache.New(f.rooms, f.guests, f.bookings)
	f.svc = service.New(f.bookings, f.guests, f.rooms, f.tx, f.cache, f.events, cfg, mocks.NewOtel())

	return f
}

func (f *fixture) expectGuest(guest guestModel.Guest) {
	f.guests.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(guest, nil)
}

func (f *fixture) expectRoom(room roomModel.Room) {
	f.rooms.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(room, nil)
}

func (f *fixture) expectNoConflict() {
	f.bookings.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
}

func stay(checkInOffset, nights int) dto.CreateBookingRequest {
	checkIn := today.AddDate(0, 0, checkInOffset)

	return dto.CreateBookingRequest{
		RoomID:   1,
		GuestID:  2,
		CheckIn:  checkIn,
		CheckOut: checkIn.AddDate(0, 0, nights),
	}
}

var (
	activeGuest   = guestModel.Guest{ID: 2, Name: "Ana", IsActive: true}
	availableRoom = roomModel.Room{ID: 1, RoomNumber: "101", RoomType: roomModel.TypeDouble, PricePerNight: 100, IsAvailable: true}
)

func TestBookingService_CreateBooking(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f *fixture)
		wantID    int64
		wantKind  failure.Kind
		wantErr   bool
		wantTx    int
	}{
		{
			name: "one night from today costs the nightly rate",
			req:  stay(0, 1),
			setupMock: func(f *fixture) {
				f.expectGuest(activeGuest)
				f.expectRoom(availableRoom)
				f.expectNoConflict()
				f.bookings.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) (int64, error) {
						assert.Equal(t, 100.0, booking.TotalAmount)
						assert.Equal(t, today, booking.CheckIn)
						assert.False(t, booking.IsCancelled)

						return 42, nil
					})
				f.events.EXPECT().Created(gomock.Any(), gomock.Any())
			},
			wantID: 42,
			wantTx: 1,
		},
		{
			name: "caller supplied amount is discarded",
			req: func() dto.CreateBookingRequest {
				req := stay(3, 3)
				req.TotalAmount = 1

				return req
			}(),
			setupMock: func(f *fixture) {
				f.expectGuest(activeGuest)
				f.expectRoom(roomModel.Room{ID: 1, PricePerNight: 99.99, IsAvailable: true})
				f.expectNoConflict()
				f.bookings.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) (int64, error) {
						assert.Equal(t, 299.97, booking.TotalAmount)

						return 7, nil
					})
				f.events.EXPECT().Created(gomock.Any(), gomock.Any())
			},
			wantID: 7,
			wantTx: 1,
		},
		{
			name:      "missing ids",
			req:       dto.CreateBookingRequest{CheckIn: today, CheckOut: today.AddDate(0, 0, 1)},
			setupMock: func(*fixture) {},
			wantKind:  failure.KindInvalidInput,
			wantErr:   true,
		},
		{
			name:      "check-in before today",
			req:       stay(-1, 2),
			setupMock: func(*fixture) {},
			wantKind:  failure.KindInvalidDate,
			wantErr:   true,
		},
		{
			name: "check-out equal to check-in",
			req: func() dto.CreateBookingRequest {
				req := stay(1, 0)
				req.CheckOut = req.CheckIn.Add(5 * time.Hour)

				return req
			}(),
			setupMock: func(*fixture) {},
			wantKind:  failure.KindInvalidDate,
			wantErr:   true,
		},
		{
			name: "unknown guest",
			req:  stay(1, 1),
			setupMock: func(f *fixture) {
				f.expectGuest(guestModel.Guest{})
			},
			wantKind: failure.KindNotFound,
			wantErr:  true,
			wantTx:   1,
		},
		{
			name: "inactive guest",
			req:  stay(1, 1),
			setupMock: func(f *fixture) {
				f.expectGuest(guestModel.Guest{ID: 2})
			},
			wantKind: failure.KindGuestInactive,
			wantErr:  true,
			wantTx:   1,
		},
		{
			name: "unknown room",
			req:  stay(1, 1),
			setupMock: func(f *fixture) {
				f.expectGuest(activeGuest)
				f.expectRoom(roomModel.Room{})
			},
			wantKind: failure.KindNotFound,
			wantErr:  true,
			wantTx:   1,
		},
		{
			name: "room marked unavailable",
			req:  stay(1, 1),
			setupMock: func(f *fixture) {
				f.expectGuest(activeGuest)
				f.expectRoom(roomModel.Room{ID: 1, PricePerNight: 100})
			},
			wantKind: failure.KindRoomUnavailable,
			wantErr:  true,
			wantTx:   1,
		},
		{
			name: "overlapping booking",
			req:  stay(1, 2),
			setupMock: func(f *fixture) {
				f.expectGuest(activeGuest)
				f.expectRoom(availableRoom)
				f.bookings.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantKind: failure.KindBookingConflict,
			wantErr:  true,
			wantTx:   1,
		},
		{
			name: "free room",
			req:  stay(1, 2),
			setupMock: func(f *fixture) {
				f.expectGuest(activeGuest)
				f.expectRoom(roomModel.Room{ID: 1, IsAvailable: true})
				f.expectNoConflict()
			},
			wantKind: failure.KindInvalidAmount,
			wantErr:  true,
			wantTx:   1,
		},
		{
			name: "serialization failure is retried",
			req:  stay(1, 1),
			setupMock: func(f *fixture) {
				f.guests.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(activeGuest, nil).Times(2)
				f.rooms.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(availableRoom, nil).Times(2)
				f.bookings.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
				gomock.InOrder(
					f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), &pq.Error{Code: "40001"}),
					f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(9), nil),
				)
				f.events.EXPECT().Created(gomock.Any(), gomock.Any())
			},
			wantID: 9,
			wantTx: 2,
		},
		{
			name: "retry sees the competing booking",
			req:  stay(1, 1),
			setupMock: func(f *fixture) {
				f.guests.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(activeGuest, nil).Times(2)
				f.rooms.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(availableRoom, nil).Times(2)
				gomock.InOrder(
					f.bookings.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil),
					f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), &pq.Error{Code: "40001"}),
					f.bookings.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil),
				)
			},
			wantKind: failure.KindBookingConflict,
			wantErr:  true,
			wantTx:   2,
		},
		{
			name: "serialization failures exhaust the retries",
			req:  stay(1, 1),
			setupMock: func(f *fixture) {
				f.guests.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(activeGuest, nil).Times(3)
				f.rooms.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(availableRoom, nil).Times(3)
				f.bookings.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil).Times(3)
				f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), &pq.Error{Code: "40001"}).Times(3)
			},
			wantKind: failure.KindTransientStoreFailure,
			wantErr:  true,
			wantTx:   3,
		},
		{
			name: "exclusion constraint reports a conflict",
			req:  stay(1, 1),
			setupMock: func(f *fixture) {
				f.expectGuest(activeGuest)
				f.expectRoom(availableRoom)
				f.expectNoConflict()
				f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), &pq.Error{Code: "23P01"})
			},
			wantKind: failure.KindBookingConflict,
			wantErr:  true,
			wantTx:   1,
		},
		{
			name: "store error is not retried",
			req:  stay(1, 1),
			setupMock: func(f *fixture) {
				f.guests.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(guestModel.Guest{}, errors.New("syntax error"))
			},
			wantKind: failure.KindUnknown,
			wantErr:  true,
			wantTx:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			id, err := f.svc.CreateBooking(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.KindOf(err))
				assert.Zero(t, id)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}

			assert.Equal(t, tt.wantTx, f.tx.Calls())
		})
	}
}

func TestBookingService_CreateBookingTracesFailure(t *testing.T) {
	span := constant.OtelServiceScopeName + ".CreateBooking"

	t.Run("conflict is recorded on the span", func(t *testing.T) {
		f := newFixture(t)
		recorder := mocks.NewRecorder()
		svc := service.New(f.bookings, f.guests, f.rooms, f.tx, f.cache, f.events, &config.Config{}, recorder)

		f.expectGuest(activeGuest)
		f.expectRoom(availableRoom)
		f.bookings.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.CreateBooking(context.Background(), stay(1, 2))
		require.Error(t, err)

		traced := recorder.Errors(span)
		require.Len(t, traced, 1)
		assert.True(t, failure.IsKind(traced[0], failure.KindBookingConflict))
	})

	t.Run("success records nothing", func(t *testing.T) {
		f := newFixture(t)
		recorder := mocks.NewRecorder()
		svc := service.New(f.bookings, f.guests, f.rooms, f.tx, f.cache, f.events, &config.Config{}, recorder)

		f.expectGuest(activeGuest)
		f.expectRoom(availableRoom)
		f.expectNoConflict()
		f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(7), nil)
		f.events.EXPECT().Created(gomock.Any(), gomock.Any())

		_, err := svc.CreateBooking(context.Background(), stay(1, 2))
		require.NoError(t, err)
		assert.Empty(t, recorder.Errors(span))
	})
}

func TestBookingService_GetBookingServedFromCache(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{}, nil).Times(1)
	f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)

	f.expectGuest(activeGuest)
	f.expectRoom(availableRoom)
	f.expectNoConflict()
	f.bookings.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(11), nil)
	f.events.EXPECT().Created(gomock.Any(), gomock.Any())

	ctx := context.Background()

	list, err := f.svc.ListBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, list.TotalData)

	id, err := f.svc.CreateBooking(ctx, stay(2, 3))
	require.NoError(t, err)

	booking, err := f.svc.GetBooking(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(11), booking.ID)
	assert.Equal(t, 3, booking.Nights)
	assert.Equal(t, float64(booking.Nights)*availableRoom.PricePerNight, booking.TotalAmount)
}

func TestBookingService_GetBookingFallsBackToStore(t *testing.T) {
	f := newFixture(t)

	stored := model.Booking{ID: 5, RoomID: 1, GuestID: 2, CheckIn: today, CheckOut: today.AddDate(0, 0, 1), TotalAmount: 100}

	f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{}, nil).Times(1)
	gomock.InOrder(
		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil),
		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil),
	)

	ctx := context.Background()

	booking, err := f.svc.GetBooking(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "2030-06-01", booking.CheckIn)

	// now mirrored
	booking, err = f.svc.GetBooking(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), booking.ID)

	_, err = f.svc.GetBooking(ctx, 6)
	assert.True(t, failure.IsKind(err, failure.KindNotFound))
}

func TestBookingService_GetBookingKeepsCancellationMirroredDuringFallback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stale := model.Booking{ID: 5, RoomID: 1, GuestID: 2, CheckIn: today, CheckOut: today.AddDate(0, 0, 1), TotalAmount: 100}

	f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{}, nil).Times(1)
	f.bookings.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(stale, nil)
	f.bookings.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.events.EXPECT().Cancelled(gomock.Any(), gomock.Any())

	// the cancellation commits and is mirrored between the store read and the cache fill
	f.bookings.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ gDto.FilterGroup, _ ...string) (model.Booking, error) {
			require.NoError(t, f.svc.CancelBooking(ctx, stale.ID))

			return stale, nil
		}).
		Times(1)

	booking, err := f.svc.GetBooking(ctx, stale.ID)
	require.NoError(t, err)
	assert.True(t, booking.IsCancelled)

	booking, err = f.svc.GetBooking(ctx, stale.ID)
	require.NoError(t, err)
	assert.True(t, booking.IsCancelled)
}

func TestBookingService_CancelBooking(t *testing.T) {
	active := model.Booking{ID: 3, RoomID: 1, GuestID: 2, CheckIn: today, CheckOut: today.AddDate(0, 0, 2)}
	cancelled := active
	cancelled.IsCancelled = true

	tests := []struct {
		name       string
		setupMock  func(f *fixture)
		wantCancel bool
	}{
		{
			name: "active booking is cancelled",
			setupMock: func(f *fixture) {
				f.bookings.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(active, nil)
				f.bookings.EXPECT().
					UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, true, fields[model.FieldIsCancelled])
						assert.Contains(t, fields, constant.FieldModifiedAt)

						return nil
					})
				f.events.EXPECT().Cancelled(gomock.Any(), gomock.Any())
			},
			wantCancel: true,
		},
		{
			name: "already cancelled booking is left alone",
			setupMock: func(f *fixture) {
				f.bookings.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(cancelled, nil)
			},
		},
		{
			name: "missing booking is left alone",
			setupMock: func(f *fixture) {
				f.bookings.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{active}, nil)
			tt.setupMock(f)

			ctx := context.Background()

			_, err := f.svc.ListBookings(ctx)
			require.NoError(t, err)

			require.NoError(t, f.svc.CancelBooking(ctx, active.ID))

			booking, err := f.svc.GetBooking(ctx, active.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCancel, booking.IsCancelled)
		})
	}
}

func TestBookingService_CancelBookingsByGuest(t *testing.T) {
	t.Run("cancels every current booking", func(t *testing.T) {
		f := newFixture(t)

		found := []model.Booking{
			{ID: 1, GuestID: 2, RoomID: 1, CheckIn: today, CheckOut: today.AddDate(0, 0, 1)},
			{ID: 4, GuestID: 2, RoomID: 3, CheckIn: today.AddDate(0, 0, 7), CheckOut: today.AddDate(0, 0, 9)},
		}

		f.bookings.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(found, nil)
		f.bookings.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.events.EXPECT().
			Cancelled(gomock.Any(), gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, bookings ...model.Booking) {
				for _, booking := range bookings {
					assert.True(t, booking.IsCancelled)
				}
			})

		count, err := f.svc.CancelBookingsByGuest(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Equal(t, 1, f.tx.Calls())
	})

	t.Run("nothing to cancel", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{}, nil)

		count, err := f.svc.CancelBookingsByGuest(context.Background(), 2)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestBookingService_IsRoomAvailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	gomock.InOrder(
		f.bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil),
		f.bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil),
	)

	available, err := f.svc.IsRoomAvailable(ctx, 1, today, today.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.True(t, available)

	available, err = f.svc.IsRoomAvailable(ctx, 1, today, today.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.False(t, available)

	_, err = f.svc.IsRoomAvailable(ctx, 1, today, today)
	assert.True(t, failure.IsKind(err, failure.KindInvalidDate))
}

func TestBookingService_MostBookedRoomType(t *testing.T) {
	rooms := []roomModel.Room{
		{ID: 1, RoomType: roomModel.TypeSingle},
		{ID: 2, RoomType: roomModel.TypeSuite},
		{ID: 3, RoomType: roomModel.TypeSuite},
	}

	tests := []struct {
		name     string
		bookings []model.Booking
		want     string
	}{
		{
			name: "no bookings",
			want: constant.NoBookingsFound,
		},
		{
			name:     "clear winner across rooms of one type",
			bookings: []model.Booking{{ID: 1, RoomID: 1}, {ID: 2, RoomID: 2}, {ID: 3, RoomID: 3}},
			want:     roomModel.TypeSuite,
		},
		{
			name:     "tie goes to the type seen first",
			bookings: []model.Booking{{ID: 1, RoomID: 2}, {ID: 2, RoomID: 1}},
			want:     roomModel.TypeSuite,
		},
		{
			name:     "cancelled bookings count",
			bookings: []model.Booking{{ID: 1, RoomID: 2}, {ID: 2, RoomID: 1}, {ID: 3, RoomID: 1, IsCancelled: true}},
			want:     roomModel.TypeSingle,
		},
		{
			name:     "bookings of deleted rooms are skipped",
			bookings: []model.Booking{{ID: 1, RoomID: 99}},
			want:     constant.NoBookingsFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.bookings, nil)
			f.rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(rooms, nil).MaxTimes(1)

			got, err := f.svc.MostBookedRoomType(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBookingService_GroupBookingsByGuest(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{
		{ID: 3, GuestID: 1},
		{ID: 1, GuestID: 1},
		{ID: 2, GuestID: 5},
	}, nil)

	groups, err := f.svc.GroupBookingsByGuest(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Len(t, groups[1], 2)
	assert.Equal(t, int64(1), groups[1][0].ID)
	assert.Equal(t, int64(3), groups[1][1].ID)
	assert.Equal(t, int64(2), groups[5][0].ID)
}

func TestBookingService_CalculateTotalAmount(t *testing.T) {
	f := newFixture(t)

	total, err := f.svc.CalculateTotalAmount(120.5, today, today.AddDate(0, 0, 4))
	require.NoError(t, err)
	assert.Equal(t, 482.0, total)

	_, err = f.svc.CalculateTotalAmount(120.5, today, today.AddDate(0, 0, -1))
	assert.True(t, failure.IsKind(err, failure.KindInvalidDate))

	_, err = f.svc.CalculateTotalAmount(-1, today, today.AddDate(0, 0, 1))
	assert.True(t, failure.IsKind(err, failure.KindInvalidInput))
}
