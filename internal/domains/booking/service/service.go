package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Pawan0019/Hotel-Room-Booking/config"
	"github.com/Pawan0019/Hotel-Room-Booking/infras/database"
	"github.com/Pawan0019/Hotel-Room-Booking/infras/otel"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/cache"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/event"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/model"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/model/dto"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/repository"
	guestModel "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/guest/model"
	guestRepo "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/guest/repository"
	roomModel "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/room/model"
	roomRepo "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/room/repository"
	"github.com/Pawan0019/Hotel-Room-Booking/shared"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/constant"
	gDto "github.com/Pawan0019/Hotel-Room-Booking/shared/dto"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/failure"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/metrics"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/retry"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/timezone"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/validator"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	opCreate      = "booking.create"
	opCancel      = "booking.cancel"
	opCancelGuest = "booking.cancel_guest"

	triggerBooking = "booking"
	triggerGuest   = "guest"
)

type Booking interface {
	CreateBooking(ctx context.Context, req dto.CreateBookingRequest) (int64, error)
	CancelBooking(ctx context.Context, id int64) error
	CancelBookingsByGuest(ctx context.Context, guestID int64) (int, error)
	CancelGuestBookingsTx(ctx context.Context, sqltx *sqlx.Tx, guestID int64) ([]model.Booking, error)
	SyncCancelled(ctx context.Context, bookings []model.Booking)
	IsRoomAvailable(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error)
	GetBooking(ctx context.Context, id int64) (dto.BookingResponse, error)
	ListBookings(ctx context.Context) (dto.GetBookingsResponse, error)
	MostBookedRoomType(ctx context.Context) (string, error)
	GroupBookingsByGuest(ctx context.Context) (map[int64][]dto.BookingResponse, error)
	CalculateTotalAmount(pricePerNight float64, checkIn, checkOut time.Time) (float64, error)
}

type serviceImpl struct {
	repo      repository.Booking
	guestRepo guestRepo.Guest
	roomRepo  roomRepo.Room
	tx        database.Transactor
	cache     *cache.HotelCache
	events    event.Publisher
	retry     retry.Policy
	otel      otel.Otel
}

func New(
	repo repository.Booking,
	guestRepo guestRepo.Guest,
	roomRepo roomRepo.Room,
	tx database.Transactor,
	hotelCache *cache.HotelCache,
	events event.Publisher,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:      repo,
		guestRepo: guestRepo,
		roomRepo:  roomRepo,
		tx:        tx,
		cache:     hotelCache,
		events:    events,
		retry:     retry.FromConfig(cfg),
		otel:      otel,
	}
}

// validateStay checks the temporal rules of a new stay against today's date.
func validateStay(checkIn, checkOut, today time.Time) error {
	if checkIn.Before(today) {
		return failure.PastCheckIn
	}

	if !checkOut.After(checkIn) {
		return failure.InvalidDateRange
	}

	return nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeCreated
	case failure.IsKind(err, failure.KindBookingConflict):
		return metrics.OutcomeConflict
	case failure.IsFailure(err) && !failure.IsKind(err, failure.KindTransientStoreFailure):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeAborted
	}
}

// CreateBooking validates the request and persists the booking in one serializable transaction
// that re-checks guest, room and availability against the store. The whole transaction is
// re-run on serialization failures; a re-run that sees the competing booking reports
// BookingConflict.
func (s *serviceImpl) CreateBooking(ctx context.Context, req dto.CreateBookingRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	defer func() {
		metrics.IncBooking(outcomeOf(err))
	}()

	if err = validator.ValidateStruct(&req); err != nil {
		return 0, err
	}

	req.Normalize()

	if err = validateStay(req.CheckIn, req.CheckOut, timezone.Today()); err != nil {
		return 0, err
	}

	scope.SetAttributes(map[string]any{
		"booking.room_id":  req.RoomID,
		"booking.guest_id": req.GuestID,
	})

	var booking model.Booking

	err = retry.Do(ctx, opCreate, s.retry, database.IsRetryable, func() error {
		return s.tx.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
			created, err := s.createTx(ctx, tx, req)
			if err != nil {
				return err
			}

			booking = created

			return nil
		})
	})
	if err != nil {
		if database.IsExclusionViolation(err) {
			return 0, failure.BookingConflict("room is already booked for the selected dates") // nolint:wrapcheck
		}

		if !failure.IsFailure(err) {
			log.Error().Err(err).Int64("room_id", req.RoomID).Int64("guest_id", req.GuestID).Msg("failed to create booking")
		}

		return 0, database.AsFailure("create booking", err) // nolint:wrapcheck
	}

	s.cache.Bookings.Add(booking)
	s.events.Created(ctx, booking)

	log.Info().
		Int64("booking_id", booking.ID).
		Int64("room_id", booking.RoomID).
		Int64("guest_id", booking.GuestID).
		Float64("total_amount", booking.TotalAmount).
		Msg("booking created")

	return booking.ID, nil
}

func (s *serviceImpl) createTx(ctx context.Context, tx *sqlx.Tx, req dto.CreateBookingRequest) (model.Booking, error) {
	guest, err := s.guestRepo.GetTx(ctx, tx, shared.FilterByID(req.GuestID, guestModel.FieldID, guestModel.TableName))
	if err != nil {
		return model.Booking{}, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == 0 {
		return model.Booking{}, failure.NotFound("guest_id", "guest not found") // nolint:wrapcheck
	}

	if !guest.IsActive {
		return model.Booking{}, failure.GuestInactive("guest is inactive") // nolint:wrapcheck
	}

	room, err := s.roomRepo.GetTx(ctx, tx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return model.Booking{}, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 {
		return model.Booking{}, failure.NotFound("room_id", "room not found") // nolint:wrapcheck
	}

	if !room.IsAvailable {
		return model.Booking{}, failure.RoomUnavailable("room is not available for booking") // nolint:wrapcheck
	}

	conflict, err := s.repo.ExistTx(ctx, tx, repository.OverlapFilter(req.RoomID, req.CheckIn, req.CheckOut))
	if err != nil {
		return model.Booking{}, fmt.Errorf("failed to check room availability: %w", err)
	}

	if conflict {
		return model.Booking{}, failure.BookingConflict("room is already booked for the selected dates") // nolint:wrapcheck
	}

	total := model.CalculateTotalAmount(room.PricePerNight, req.CheckIn, req.CheckOut)
	if total <= 0 {
		return model.Booking{}, failure.InvalidAmount("total amount must be greater than zero") // nolint:wrapcheck
	}

	booking := req.ToModel(total)

	booking.ID, err = s.repo.InsertTx(ctx, tx, booking)
	if err != nil {
		return model.Booking{}, fmt.Errorf("failed to insert booking: %w", err)
	}

	return booking, nil
}

func cancelFields(now time.Time) map[string]any {
	return map[string]any{
		model.FieldIsCancelled:   true,
		constant.FieldModifiedAt: now,
	}
}

// CancelBooking marks the booking cancelled. Unknown and already cancelled bookings are left
// alone. The room's availability flag is never touched.
func (s *serviceImpl) CancelBooking(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var (
		cancelled model.Booking
		changed   bool
	)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = retry.Do(ctx, opCancel, s.retry, database.IsRetryable, func() error {
		changed = false

		return s.tx.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
			booking, err := s.repo.GetTx(ctx, tx, filter)
			if err != nil {
				return fmt.Errorf("failed to get booking: %w", err)
			}

			if booking.ID == 0 || booking.IsCancelled {
				return nil
			}

			now := timezone.Now()
			if err := s.repo.UpdateTx(ctx, tx, cancelFields(now), filter); err != nil {
				return fmt.Errorf("failed to update booking: %w", err)
			}

			booking.IsCancelled = true
			booking.ModifiedAt = now

			cancelled = booking
			changed = true

			return nil
		})
	})
	if err != nil {
		log.Error().Err(err).Int64("booking_id", id).Msg("failed to cancel booking")

		return database.AsFailure("cancel booking", err) // nolint:wrapcheck
	}

	if !changed {
		log.Debug().Int64("booking_id", id).Msg("booking missing or already cancelled, nothing to do")

		return nil
	}

	s.cache.Bookings.Update(cancelled)
	metrics.AddCancellations(triggerBooking, 1)
	s.events.Cancelled(ctx, cancelled)

	log.Info().Int64("booking_id", id).Msg("booking cancelled")

	return nil
}

// CancelBookingsByGuest cancels every current or future booking of the guest in one
// transaction and returns how many were cancelled.
func (s *serviceImpl) CancelBookingsByGuest(ctx context.Context, guestID int64) (count int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelBookingsByGuest")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var cancelled []model.Booking

	err = retry.Do(ctx, opCancelGuest, s.retry, database.IsRetryable, func() error {
		return s.tx.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
			var err error

			cancelled, err = s.CancelGuestBookingsTx(ctx, tx, guestID)

			return err
		})
	})
	if err != nil {
		log.Error().Err(err).Int64("guest_id", guestID).Msg("failed to cancel guest bookings")

		return 0, database.AsFailure("cancel guest bookings", err) // nolint:wrapcheck
	}

	s.SyncCancelled(ctx, cancelled)

	return len(cancelled), nil
}

// CancelGuestBookingsTx cancels the guest's non-cancelled bookings that check out today or
// later inside tx and returns them as they will be once tx commits.
func (s *serviceImpl) CancelGuestBookingsTx(ctx context.Context, tx *sqlx.Tx, guestID int64) ([]model.Booking, error) {
	bookings, err := s.repo.GetAllTx(ctx, tx, gDto.QueryParams{}, repository.ActiveByGuestFilter(guestID, timezone.Today()))
	if err != nil {
		return nil, fmt.Errorf("failed to get guest bookings: %w", err)
	}

	if len(bookings) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(bookings))
	for i, booking := range bookings {
		ids[i] = booking.ID
	}

	now := timezone.Now()
	if err := s.repo.UpdateTx(ctx, tx, cancelFields(now), repository.IDsFilter(ids)); err != nil {
		return nil, fmt.Errorf("failed to cancel guest bookings: %w", err)
	}

	for i := range bookings {
		bookings[i].IsCancelled = true
		bookings[i].ModifiedAt = now
	}

	return bookings, nil
}

// SyncCancelled mirrors bookings cancelled by a committed transaction into the cache and
// announces them.
func (s *serviceImpl) SyncCancelled(ctx context.Context, bookings []model.Booking) {
	if len(bookings) == 0 {
		return
	}

	for _, booking := range bookings {
		s.cache.Bookings.Update(booking)
	}

	metrics.AddCancellations(triggerGuest, len(bookings))
	s.events.Cancelled(ctx, bookings...)

	log.Info().Int64("guest_id", bookings[0].GuestID).Int("count", len(bookings)).Msg("guest bookings cancelled")
}

// IsRoomAvailable asks the store whether no non-cancelled booking of the room overlaps
// [checkIn, checkOut).
func (s *serviceImpl) IsRoomAvailable(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (available bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsRoomAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkIn = timezone.DateOnly(checkIn)
	checkOut = timezone.DateOnly(checkOut)

	if !checkOut.After(checkIn) {
		return false, failure.InvalidDateRange
	}

	conflict, err := s.repo.Exist(ctx, repository.OverlapFilter(roomID, checkIn, checkOut))
	if err != nil {
		log.Error().Err(err).Int64("room_id", roomID).Msg("failed to check room availability")

		return false, database.AsFailure("check room availability", err) // nolint:wrapcheck
	}

	return !conflict, nil
}

// GetBooking serves the booking from the cache and falls back to the store for bookings the
// mirror has not seen yet.
func (s *serviceImpl) GetBooking(ctx context.Context, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, found, err := s.cache.Bookings.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to read bookings cache")

		return res, database.AsFailure("get booking", err) // nolint:wrapcheck
	}

	if !found {
		booking, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get booking")

			return res, database.AsFailure("get booking", err) // nolint:wrapcheck
		}

		if booking.ID == 0 {
			return res, failure.NotFound("booking_id", "booking not found") // nolint:wrapcheck
		}

		if !s.cache.Bookings.AddIfAbsent(booking) {
			// a mutation mirrored since the store read is newer than booking
			if cached, ok, err := s.cache.Bookings.GetByID(ctx, id); err == nil && ok {
				booking = cached
			}
		}
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) ListBookings(ctx context.Context) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListBookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := s.cache.Bookings.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")

		return res, database.AsFailure("list bookings", err) // nolint:wrapcheck
	}

	res.FromModels(bookings)

	return res, nil
}

// MostBookedRoomType counts bookings per room type, cancelled ones included. Types are ranked
// in the order they first appear when bookings are walked by ascending id, and a later type
// must strictly beat the current leader to replace it.
func (s *serviceImpl) MostBookedRoomType(ctx context.Context) (res string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MostBookedRoomType")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := s.cache.Bookings.GetAll(ctx)
	if err != nil {
		return res, database.AsFailure("list bookings", err) // nolint:wrapcheck
	}

	if len(bookings) == 0 {
		return constant.NoBookingsFound, nil
	}

	rooms, err := s.cache.Rooms.GetAll(ctx)
	if err != nil {
		return res, database.AsFailure("list rooms", err) // nolint:wrapcheck
	}

	roomTypes := make(map[int64]string, len(rooms))
	for _, room := range rooms {
		roomTypes[room.ID] = room.RoomType
	}

	var order []string

	counts := map[string]int{}

	for _, booking := range bookings {
		roomType, ok := roomTypes[booking.RoomID]
		if !ok {
			continue
		}

		if _, seen := counts[roomType]; !seen {
			order = append(order, roomType)
		}

		counts[roomType]++
	}

	if len(order) == 0 {
		return constant.NoBookingsFound, nil
	}

	res = order[0]
	for _, roomType := range order[1:] {
		if counts[roomType] > counts[res] {
			res = roomType
		}
	}

	return res, nil
}

// GroupBookingsByGuest returns every cached booking keyed by guest, each list in id order.
func (s *serviceImpl) GroupBookingsByGuest(ctx context.Context) (res map[int64][]dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GroupBookingsByGuest")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := s.cache.Bookings.GetAll(ctx)
	if err != nil {
		return nil, database.AsFailure("list bookings", err) // nolint:wrapcheck
	}

	res = map[int64][]dto.BookingResponse{}

	for _, booking := range bookings {
		var item dto.BookingResponse
		item.FromModel(booking)

		res[booking.GuestID] = append(res[booking.GuestID], item)
	}

	return res, nil
}

func (s *serviceImpl) CalculateTotalAmount(pricePerNight float64, checkIn, checkOut time.Time) (float64, error) {
	if !timezone.DateOnly(checkOut).After(timezone.DateOnly(checkIn)) {
		return 0, failure.InvalidDateRange
	}

	if pricePerNight < 0 {
		return 0, failure.InvalidInput(roomModel.FieldPricePerNight, "price per night must not be negative") // nolint:wrapcheck
	}

	return model.CalculateTotalAmount(pricePerNight, checkIn, checkOut), nil
}
