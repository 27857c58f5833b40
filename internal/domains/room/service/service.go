package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/Pawan0019/Hotel-Room-Booking/config"
	"github.com/Pawan0019/Hotel-Room-Booking/infras/database"
	"github.com/Pawan0019/Hotel-Room-Booking/infras/otel"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/cache"
	bookingRepo "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/repository"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/room/model"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/room/model/dto"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/room/repository"
	"github.com/Pawan0019/Hotel-Room-Booking/shared"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/constant"
	gDto "github.com/Pawan0019/Hotel-Room-Booking/shared/dto"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/failure"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/retry"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/timezone"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/validator"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const opDelete = "room.delete"

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (int64, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id int64) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (dto.RoomResponse, error)
	GetAll(ctx context.Context) (dto.GetRoomsResponse, error)
	SearchByNumber(ctx context.Context, term string) (dto.GetRoomsResponse, error)
	FilterByType(ctx context.Context, roomType string) (dto.GetRoomsResponse, error)
	GetAvailable(ctx context.Context) (dto.GetRoomsResponse, error)
	SortByPrice(ctx context.Context, dir string) (dto.GetRoomsResponse, error)
	SetAvailability(ctx context.Context, id int64, available bool) error
	IsRoomNumberUnique(ctx context.Context, number string, excludeID int64) (bool, error)
	HasActiveBookings(ctx context.Context, id int64) (bool, error)
}

type serviceImpl struct {
	repo        repository.Room
	bookingRepo bookingRepo.Booking
	tx          database.Transactor
	cache       *cache.HotelCache
	retry       retry.Policy
	otel        otel.Otel
}

func New(
	repo repository.Room,
	bookingRepo bookingRepo.Booking,
	tx database.Transactor,
	hotelCache *cache.HotelCache,
	cfg *config.Config,
	otel otel.Otel,
) Room {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		tx:          tx,
		cache:       hotelCache,
		retry:       retry.FromConfig(cfg),
		otel:        otel,
	}
}

func duplicateOr(action string, err error) error {
	if database.IsUniqueViolation(err) {
		return failure.DuplicateRoom("room number is already in use") // nolint:wrapcheck
	}

	return database.AsFailure(action, err) // nolint:wrapcheck
}

func (s *serviceImpl) isNumberUnique(ctx context.Context, number string, excludeID int64) (bool, error) {
	exist, err := s.repo.Exist(ctx, repository.NumberFilter(number, excludeID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room number")

		return false, database.AsFailure("check room number", err) // nolint:wrapcheck
	}

	return !exist, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return 0, err
	}

	unique, err := s.isNumberUnique(ctx, req.RoomNumber, 0)
	if err != nil {
		return 0, err
	}

	if !unique {
		return 0, failure.DuplicateRoom("room number is already in use") // nolint:wrapcheck
	}

	room := req.ToModel()

	room.ID, err = s.repo.Insert(ctx, room)
	if err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return 0, duplicateOr("create room", err)
	}

	s.cache.Rooms.Add(room)

	log.Info().Int64("room_id", room.ID).Str("room_number", room.RoomNumber).Msg("room created")

	return room.ID, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateRoomRequest{}) {
		return failure.InvalidInput("", "update request cannot be empty") // nolint:wrapcheck
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return database.AsFailure("check room", err) // nolint:wrapcheck
	}

	if !exist {
		return failure.NotFound("room_id", "room not found") // nolint:wrapcheck
	}

	if req.RoomNumber != "" {
		unique, err := s.isNumberUnique(ctx, req.RoomNumber, id)
		if err != nil {
			return err
		}

		if !unique {
			return failure.DuplicateRoom("room number is already in use") // nolint:wrapcheck
		}
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req), filter); err != nil {
		log.Error().Err(err).Int64("room_id", id).Msg("failed to update room")

		return duplicateOr("update room", err)
	}

	s.refresh(ctx, id)

	return nil
}

// refresh reloads one committed room into the cache. Failures only cost a cache reload.
func (s *serviceImpl) refresh(ctx context.Context, id int64) {
	err := s.cache.Rooms.Reload(ctx, id, func(ctx context.Context) (model.Room, bool, error) {
		room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))

		return room, room.ID != 0, err
	})
	if err != nil {
		log.Warn().Err(err).Int64("room_id", id).Msg("failed to reload room, invalidating rooms cache")
		s.cache.Rooms.Invalidate()
	}
}

// Delete removes a room with no bookings checking out today or later, cancelled ones
// included. Rooms referenced by older bookings are kept and reported InUse.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = retry.Do(ctx, opDelete, s.retry, database.IsRetryable, func() error {
		return s.tx.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
			room, err := s.repo.GetTx(ctx, tx, filter, model.FieldID)
			if err != nil {
				return fmt.Errorf("failed to get room: %w", err)
			}

			if room.ID == 0 {
				return failure.NotFound("room_id", "room not found") // nolint:wrapcheck
			}

			inUse, err := s.bookingRepo.ExistTx(ctx, tx, bookingRepo.CurrentByRoomFilter(id, timezone.Today()))
			if err != nil {
				return fmt.Errorf("failed to check room bookings: %w", err)
			}

			if inUse {
				return failure.InUse("room_id", "room has current or future bookings") // nolint:wrapcheck
			}

			if err := s.repo.DeleteTx(ctx, tx, filter); err != nil {
				return fmt.Errorf("failed to delete room: %w", err)
			}

			return nil
		})
	})
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return failure.InUse("room_id", "room is referenced by past bookings") // nolint:wrapcheck
		}

		return database.AsFailure("delete room", err) // nolint:wrapcheck
	}

	s.cache.Rooms.Delete(id)

	log.Info().Int64("room_id", id).Msg("room deleted")

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, found, err := s.cache.Rooms.GetByID(ctx, id)
	if err != nil {
		return res, database.AsFailure("get room", err) // nolint:wrapcheck
	}

	if !found {
		return res, failure.NotFound("room_id", "room not found") // nolint:wrapcheck
	}

	res.FromModel(room)

	return res, nil
}

// filtered returns the cached rooms that keep reports true, in id order.
func (s *serviceImpl) filtered(ctx context.Context, keep func(model.Room) bool) (res dto.GetRoomsResponse, err error) {
	rooms, err := s.cache.Rooms.GetAll(ctx)
	if err != nil {
		return res, database.AsFailure("get rooms", err) // nolint:wrapcheck
	}

	matched := make([]model.Room, 0, len(rooms))
	for _, room := range rooms {
		if keep(room) {
			matched = append(matched, room)
		}
	}

	res.FromModels(matched)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.filtered(ctx, func(model.Room) bool { return true })
}

func (s *serviceImpl) FilterByType(ctx context.Context, roomType string) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FilterByType")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.filtered(ctx, func(room model.Room) bool { return room.RoomType == roomType })
}

// GetAvailable lists rooms whose manual availability flag is set. Bookings do not affect it.
func (s *serviceImpl) GetAvailable(ctx context.Context) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.filtered(ctx, func(room model.Room) bool { return room.IsAvailable })
}

// SearchByNumber lists rooms whose number contains term. The match is case-sensitive.
func (s *serviceImpl) SearchByNumber(ctx context.Context, term string) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SearchByNumber")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.filtered(ctx, func(room model.Room) bool { return strings.Contains(room.RoomNumber, term) })
}

// SortByPrice lists every room by nightly rate. dir is asc or desc; anything else sorts
// ascending. Rooms with the same rate keep id order.
func (s *serviceImpl) SortByPrice(ctx context.Context, dir string) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SortByPrice")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rooms, err := s.cache.Rooms.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to sort rooms")

		return res, database.AsFailure("sort rooms", err) // nolint:wrapcheck
	}

	desc := strings.EqualFold(dir, gDto.SortDirDesc)

	slices.SortStableFunc(rooms, func(a, b model.Room) int {
		if desc {
			return cmp.Compare(b.PricePerNight, a.PricePerNight)
		}

		return cmp.Compare(a.PricePerNight, b.PricePerNight)
	})

	res.FromModels(rooms)

	return res, nil
}

// SetAvailability sets the manual availability flag. Existing bookings are not touched.
func (s *serviceImpl) SetAvailability(ctx context.Context, id int64, available bool) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.Update(ctx, dto.UpdateRoomRequest{IsAvailable: &available}, id)
}

func (s *serviceImpl) IsRoomNumberUnique(ctx context.Context, number string, excludeID int64) (unique bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsRoomNumberUnique")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.isNumberUnique(ctx, number, excludeID)
}

// HasActiveBookings reports whether any booking of the room checks out today or later.
func (s *serviceImpl) HasActiveBookings(ctx context.Context, id int64) (active bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HasActiveBookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	active, err = s.bookingRepo.Exist(ctx, bookingRepo.CurrentByRoomFilter(id, timezone.Today()))
	if err != nil {
		return false, database.AsFailure("check room bookings", err) // nolint:wrapcheck
	}

	return active, nil
}
