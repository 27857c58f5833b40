package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Pawan0019/Hotel-Room-Booking/config"
	dbMocks "github.com/Pawan0019/Hotel-Room-Booking/infras/database/mocks"
	"github.com/Pawan0019/Hotel-Room-Booking/infras/otel/mocks"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/cache"
	bookingMocks "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/mocks"
	bookingModel "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/model"
	guestMocks "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/guest/mocks"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/guest/model"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/guest/model/dto"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/guest/service"
	roomMocks "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/room/mocks"
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
	guests   *guestMocks.MockGuest
	bookings *bookingMocks.MockBooking
	canceler *guestMocks.MockBookingCanceller
	tx       dbMocks.Transactor
	cache    *cache.HotelCache
	svc      service.Guest
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	restore := timezone.SetClock(func() time.Time {
		return today.Add(9 * time.Hour)
	})
	t.Cleanup(restore)

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.DB.Tx.MaxRetry = 1
	cfg.DB.Tx.InitialDelayMs = 1

	f := &fixture{
		guests:   guestMocks.NewMockGuest(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		canceler: guestMocks.NewMockBookingCanceller(ctrl),
		tx:       dbMocks.NewTransactor(),
	}

	f.cache = cache.New(roomMocks.NewMockRoom(ctrl), f.guests, f.bookings)
	f.svc = service.New(f.guests, f.bookings, f.canceler, f.tx, f.cache, cfg, mocks.NewOtel())

	return f
}

func futureBookings(guestID int64) []bookingModel.Booking {
	return []bookingModel.Booking{
		{ID: 1, GuestID: guestID, RoomID: 1, CheckIn: today.AddDate(0, 0, 1), CheckOut: today.AddDate(0, 0, 3), IsCancelled: true},
		{ID: 2, GuestID: guestID, RoomID: 2, CheckIn: today.AddDate(0, 0, 10), CheckOut: today.AddDate(0, 0, 12), IsCancelled: true},
	}
}

func TestGuestService_Create(t *testing.T) {
	req := dto.CreateGuestRequest{Name: "Budi", Email: "budi@example.com", Phone: "+62 811 222 333"}

	tests := []struct {
		name      string
		req       dto.CreateGuestRequest
		setupMock func(f *fixture)
		wantKind  failure.Kind
		wantErr   bool
	}{
		{
			name: "successful creation",
			req:  req,
			setupMock: func(f *fixture) {
				f.guests.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
				f.guests.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, guest model.Guest) (int64, error) {
						assert.True(t, guest.IsActive)

						return 10, nil
					})
			},
		},
		{
			name:      "invalid email",
			req:       dto.CreateGuestRequest{Name: "Budi", Email: "not-an-email", Phone: "+62 811 222 333"},
			setupMock: func(*fixture) {},
			wantKind:  failure.KindInvalidInput,
			wantErr:   true,
		},
		{
			name: "email taken",
			req:  req,
			setupMock: func(f *fixture) {
				f.guests.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantKind: failure.KindDuplicateGuest,
			wantErr:  true,
		},
		{
			name: "phone taken",
			req:  req,
			setupMock: func(f *fixture) {
				gomock.InOrder(
					f.guests.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil),
					f.guests.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil),
				)
			},
			wantKind: failure.KindDuplicateGuest,
			wantErr:  true,
		},
		{
			name: "unique index wins a race",
			req:  req,
			setupMock: func(f *fixture) {
				f.guests.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil).Times(2)
				f.guests.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(0), &pq.Error{Code: "23505"})
			},
			wantKind: failure.KindDuplicateGuest,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			id, err := f.svc.Create(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.KindOf(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(10), id)
			}
		})
	}
}

func TestGuestService_DeactivateCancelsBookings(t *testing.T) {
	f := newFixture(t)
	guest := model.Guest{ID: 4, Name: "Citra", IsActive: true}
	cancelled := futureBookings(guest.ID)

	f.guests.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Guest{guest}, nil)
	f.guests.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(guest, nil)
	f.canceler.EXPECT().CancelGuestBookingsTx(gomock.Any(), gomock.Any(), guest.ID).Return(cancelled, nil)
	f.guests.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, false, fields[model.FieldIsActive])

			return nil
		})
	f.canceler.EXPECT().SyncCancelled(gomock.Any(), cancelled)

	ctx := context.Background()

	_, err := f.svc.GetAll(ctx)
	require.NoError(t, err)

	count, err := f.svc.Deactivate(ctx, guest.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 1, f.tx.Calls(), "expected cancellation and deactivation in one transaction")

	res, err := f.svc.Get(ctx, guest.ID)
	require.NoError(t, err)
	assert.False(t, res.IsActive)

	active, err := f.svc.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, active.TotalData)
}

func TestGuestService_DeactivateRollsBackOnCancelFailure(t *testing.T) {
	f := newFixture(t)
	guest := model.Guest{ID: 4, IsActive: true}

	f.guests.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(guest, nil)
	f.canceler.EXPECT().CancelGuestBookingsTx(gomock.Any(), gomock.Any(), guest.ID).Return(nil, assert.AnError)

	_, err := f.svc.Deactivate(context.Background(), guest.ID)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestGuestService_UpdateTransitionCascades(t *testing.T) {
	inactive := false

	f := newFixture(t)
	current := model.Guest{ID: 4, Name: "Citra", IsActive: true}
	updated := current
	updated.IsActive = false

	gomock.InOrder(
		f.guests.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil),
		f.canceler.EXPECT().CancelGuestBookingsTx(gomock.Any(), gomock.Any(), current.ID).Return(futureBookings(4), nil),
		f.guests.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		f.guests.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(updated, nil),
		f.canceler.EXPECT().SyncCancelled(gomock.Any(), gomock.Len(2)),
	)

	err := f.svc.Update(context.Background(), dto.UpdateGuestRequest{IsActive: &inactive}, current.ID)
	require.NoError(t, err)
}

func TestGuestService_UpdateWithoutTransition(t *testing.T) {
	f := newFixture(t)
	current := model.Guest{ID: 4, Name: "Citra", Email: "citra@example.com", IsActive: true}

	f.guests.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	f.guests.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil).Times(2)
	f.guests.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, "new@example.com", fields[model.FieldEmail])
			assert.NotContains(t, fields, model.FieldIsActive)

			return nil
		})
	f.canceler.EXPECT().SyncCancelled(gomock.Any(), gomock.Nil())

	err := f.svc.Update(context.Background(), dto.UpdateGuestRequest{Email: "new@example.com"}, current.ID)
	require.NoError(t, err)

	err = f.svc.Update(context.Background(), dto.UpdateGuestRequest{}, current.ID)
	assert.True(t, failure.IsKind(err, failure.KindInvalidInput))
}

func TestGuestService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantKind  failure.Kind
		wantErr   bool
	}{
		{
			name: "guest without bookings",
			setupMock: func(f *fixture) {
				f.guests.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Guest{ID: 4}, nil)
				f.bookings.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				f.guests.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "unknown guest",
			setupMock: func(f *fixture) {
				f.guests.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Guest{}, nil)
			},
			wantKind: failure.KindNotFound,
			wantErr:  true,
		},
		{
			name: "guest with active bookings",
			setupMock: func(f *fixture) {
				f.guests.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Guest{ID: 4}, nil)
				f.bookings.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantKind: failure.KindInUse,
			wantErr:  true,
		},
		{
			name: "guest referenced by past bookings",
			setupMock: func(f *fixture) {
				f.guests.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Guest{ID: 4}, nil)
				f.bookings.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				f.guests.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23503"})
			},
			wantKind: failure.KindInUse,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(context.Background(), 4)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.KindOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGuestService_Activate(t *testing.T) {
	f := newFixture(t)

	gomock.InOrder(
		f.guests.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Guest{ID: 4}, nil),
		f.guests.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Guest{ID: 4, IsActive: true}, nil),
	)
	f.guests.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

	require.NoError(t, f.svc.Activate(context.Background(), 4))
	require.NoError(t, f.svc.Activate(context.Background(), 4), "expected activating an active guest to be a no-op")
}

func TestGuestService_Uniqueness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	gomock.InOrder(
		f.guests.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil),
		f.guests.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil),
	)
	f.bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

	unique, err := f.svc.IsEmailUnique(ctx, "a@example.com", 0)
	require.NoError(t, err)
	assert.True(t, unique)

	unique, err = f.svc.IsPhoneUnique(ctx, "+62 811 222 333", 3)
	require.NoError(t, err)
	assert.False(t, unique)

	active, err := f.svc.HasActiveBookings(ctx, 3)
	require.NoError(t, err)
	assert.True(t, active)
}
