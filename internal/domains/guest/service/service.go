package service

import (
	"context"
	"fmt"

	"github.com/Pawan0019/Hotel-Room-Booking/config"
	"github.com/Pawan0019/Hotel-Room-Booking/infras/database"
	"github.com/Pawan0019/Hotel-Room-Booking/infras/otel"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/cache"
	bookingModel "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/model"
	bookingRepo "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/repository"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/guest/model"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/guest/model/dto"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/guest/repository"
	"github.com/Pawan0019/Hotel-Room-Booking/shared"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/constant"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/failure"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/retry"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/timezone"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/validator"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	opUpdate     = "guest.update"
	opDelete     = "guest.delete"
	opActivate   = "guest.activate"
	opDeactivate = "guest.deactivate"
)

type Guest interface {
	Create(ctx context.Context, req dto.CreateGuestRequest) (int64, error)
	Update(ctx context.Context, req dto.UpdateGuestRequest, id int64) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (dto.GuestResponse, error)
	GetAll(ctx context.Context) (dto.GetGuestsResponse, error)
	GetActive(ctx context.Context) (dto.GetGuestsResponse, error)
	Activate(ctx context.Context, id int64) error
	Deactivate(ctx context.Context, id int64) (int, error)
	IsEmailUnique(ctx context.Context, email string, excludeID int64) (bool, error)
	IsPhoneUnique(ctx context.Context, phone string, excludeID int64) (bool, error)
	HasActiveBookings(ctx context.Context, id int64) (bool, error)
}

type serviceImpl struct {
	repo        repository.Guest
	bookingRepo bookingRepo.Booking
	bookings    BookingCanceller
	tx          database.Transactor
	cache       *cache.HotelCache
	retry       retry.Policy
	otel        otel.Otel
}

func New(
	repo repository.Guest,
	bookingRepo bookingRepo.Booking,
	bookings BookingCanceller,
	tx database.Transactor,
	hotelCache *cache.HotelCache,
	cfg *config.Config,
	otel otel.Otel,
) Guest {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		bookings:    bookings,
		tx:          tx,
		cache:       hotelCache,
		retry:       retry.FromConfig(cfg),
		otel:        otel,
	}
}

func (s *serviceImpl) isUnique(ctx context.Context, field, value string, excludeID int64) (bool, error) {
	exist, err := s.repo.Exist(ctx, repository.UniqueFieldFilter(field, value, excludeID))
	if err != nil {
		log.Error().Err(err).Str("field", field).Msg("failed to check guest uniqueness")

		return false, database.AsFailure("check guest "+field, err) // nolint:wrapcheck
	}

	return !exist, nil
}

// checkUnique returns DuplicateGuest when another guest already uses the email or phone.
// Empty values are not checked.
func (s *serviceImpl) checkUnique(ctx context.Context, email, phone string, excludeID int64) error {
	if email != "" {
		unique, err := s.isUnique(ctx, model.FieldEmail, email, excludeID)
		if err != nil {
			return err
		}

		if !unique {
			return failure.DuplicateGuest(model.FieldEmail, "email is already registered") // nolint:wrapcheck
		}
	}

	if phone != "" {
		unique, err := s.isUnique(ctx, model.FieldPhone, phone, excludeID)
		if err != nil {
			return err
		}

		if !unique {
			return failure.DuplicateGuest(model.FieldPhone, "phone is already registered") // nolint:wrapcheck
		}
	}

	return nil
}

func duplicateOr(action string, err error) error {
	if database.IsUniqueViolation(err) {
		return failure.DuplicateGuest(model.FieldEmail, "email or phone is already registered") // nolint:wrapcheck
	}

	return database.AsFailure(action, err) // nolint:wrapcheck
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateGuestRequest) (id int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return 0, err
	}

	if err = s.checkUnique(ctx, req.Email, req.Phone, 0); err != nil {
		return 0, err
	}

	guest := req.ToModel()

	guest.ID, err = s.repo.Insert(ctx, guest)
	if err != nil {
		log.Error().Err(err).Msg("failed to create guest")

		return 0, duplicateOr("create guest", err)
	}

	s.cache.Guests.Add(guest)

	log.Info().Int64("guest_id", guest.ID).Msg("guest created")

	return guest.ID, nil
}

// Update applies the non-empty fields of req. Turning an active guest inactive cancels the
// guest's current and future bookings in the same transaction.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateGuestRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateGuestRequest{}) {
		return failure.InvalidInput("", "update request cannot be empty") // nolint:wrapcheck
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return err
	}

	if err = s.checkUnique(ctx, req.Email, req.Phone, id); err != nil {
		return err
	}

	var (
		updated   model.Guest
		cancelled []bookingModel.Booking
	)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = retry.Do(ctx, opUpdate, s.retry, database.IsRetryable, func() error {
		cancelled = nil

		return s.tx.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
			current, err := s.repo.GetTx(ctx, tx, filter)
			if err != nil {
				return fmt.Errorf("failed to get guest: %w", err)
			}

			if current.ID == 0 {
				return failure.NotFound("guest_id", "guest not found") // nolint:wrapcheck
			}

			if req.Deactivates(current) {
				cancelled, err = s.bookings.CancelGuestBookingsTx(ctx, tx, id)
				if err != nil {
					return err
				}
			}

			if err := s.repo.UpdateTx(ctx, tx, shared.TransformFields(req), filter); err != nil {
				return fmt.Errorf("failed to update guest: %w", err)
			}

			updated, err = s.repo.GetTx(ctx, tx, filter)
			if err != nil {
				return fmt.Errorf("failed to reload guest: %w", err)
			}

			return nil
		})
	})
	if err != nil {
		if !failure.IsFailure(err) {
			log.Error().Err(err).Int64("guest_id", id).Msg("failed to update guest")
		}

		return duplicateOr("update guest", err)
	}

	s.cache.Guests.Update(updated)
	s.bookings.SyncCancelled(ctx, cancelled)

	log.Info().Int64("guest_id", id).Int("cancelled_bookings", len(cancelled)).Msg("guest updated")

	return nil
}

// Delete removes a guest that holds no current or future bookings. Guests referenced by any
// booking stay in the store and the call reports InUse.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = retry.Do(ctx, opDelete, s.retry, database.IsRetryable, func() error {
		return s.tx.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
			current, err := s.repo.GetTx(ctx, tx, filter, model.FieldID)
			if err != nil {
				return fmt.Errorf("failed to get guest: %w", err)
			}

			if current.ID == 0 {
				return failure.NotFound("guest_id", "guest not found") // nolint:wrapcheck
			}

			active, err := s.bookingRepo.ExistTx(ctx, tx, bookingRepo.ActiveByGuestFilter(id, timezone.Today()))
			if err != nil {
				return fmt.Errorf("failed to check guest bookings: %w", err)
			}

			if active {
				return failure.InUse("guest_id", "guest has active bookings") // nolint:wrapcheck
			}

			if err := s.repo.DeleteTx(ctx, tx, filter); err != nil {
				return fmt.Errorf("failed to delete guest: %w", err)
			}

			return nil
		})
	})
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return failure.InUse("guest_id", "guest is referenced by past bookings") // nolint:wrapcheck
		}

		return database.AsFailure("delete guest", err) // nolint:wrapcheck
	}

	s.cache.Guests.Delete(id)

	log.Info().Int64("guest_id", id).Msg("guest deleted")

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	guest, found, err := s.cache.Guests.GetByID(ctx, id)
	if err != nil {
		return res, database.AsFailure("get guest", err) // nolint:wrapcheck
	}

	if !found {
		return res, failure.NotFound("guest_id", "guest not found") // nolint:wrapcheck
	}

	res.FromModel(guest)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetGuestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	guests, err := s.cache.Guests.GetAll(ctx)
	if err != nil {
		return res, database.AsFailure("get guests", err) // nolint:wrapcheck
	}

	res.FromModels(guests)

	return res, nil
}

func (s *serviceImpl) GetActive(ctx context.Context) (res dto.GetGuestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetActive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	guests, err := s.cache.Guests.GetAll(ctx)
	if err != nil {
		return res, database.AsFailure("get guests", err) // nolint:wrapcheck
	}

	active := make([]model.Guest, 0, len(guests))
	for _, guest := range guests {
		if guest.IsActive {
			active = append(active, guest)
		}
	}

	res.FromModels(active)

	return res, nil
}

func (s *serviceImpl) Activate(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Activate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var (
		updated model.Guest
		changed bool
	)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = retry.Do(ctx, opActivate, s.retry, database.IsRetryable, func() error {
		changed = false

		return s.tx.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
			current, err := s.repo.GetTx(ctx, tx, filter)
			if err != nil {
				return fmt.Errorf("failed to get guest: %w", err)
			}

			if current.ID == 0 {
				return failure.NotFound("guest_id", "guest not found") // nolint:wrapcheck
			}

			if current.IsActive {
				return nil
			}

			now := timezone.Now()
			fields := map[string]any{model.FieldIsActive: true, constant.FieldModifiedAt: now}

			if err := s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
				return fmt.Errorf("failed to activate guest: %w", err)
			}

			current.IsActive = true
			current.ModifiedAt = now

			updated = current
			changed = true

			return nil
		})
	})
	if err != nil {
		return database.AsFailure("activate guest", err) // nolint:wrapcheck
	}

	if changed {
		s.cache.Guests.Update(updated)
		log.Info().Int64("guest_id", id).Msg("guest activated")
	}

	return nil
}

// Deactivate cancels the guest's current and future bookings and marks the guest inactive in
// one transaction. It returns the number of cancelled bookings.
func (s *serviceImpl) Deactivate(ctx context.Context, id int64) (count int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Deactivate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var (
		updated   model.Guest
		cancelled []bookingModel.Booking
	)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = retry.Do(ctx, opDeactivate, s.retry, database.IsRetryable, func() error {
		cancelled = nil

		return s.tx.RunInTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
			current, err := s.repo.GetTx(ctx, tx, filter)
			if err != nil {
				return fmt.Errorf("failed to get guest: %w", err)
			}

			if current.ID == 0 {
				return failure.NotFound("guest_id", "guest not found") // nolint:wrapcheck
			}

			cancelled, err = s.bookings.CancelGuestBookingsTx(ctx, tx, id)
			if err != nil {
				return err
			}

			now := timezone.Now()
			fields := map[string]any{model.FieldIsActive: false, constant.FieldModifiedAt: now}

			if err := s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
				return fmt.Errorf("failed to deactivate guest: %w", err)
			}

			current.IsActive = false
			current.ModifiedAt = now
			updated = current

			return nil
		})
	})
	if err != nil {
		log.Error().Err(err).Int64("guest_id", id).Msg("failed to deactivate guest")

		return 0, database.AsFailure("deactivate guest", err) // nolint:wrapcheck
	}

	s.cache.Guests.Update(updated)
	s.bookings.SyncCancelled(ctx, cancelled)

	log.Info().Int64("guest_id", id).Int("cancelled_bookings", len(cancelled)).Msg("guest deactivated")

	return len(cancelled), nil
}

func (s *serviceImpl) IsEmailUnique(ctx context.Context, email string, excludeID int64) (unique bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsEmailUnique")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.isUnique(ctx, model.FieldEmail, email, excludeID)
}

func (s *serviceImpl) IsPhoneUnique(ctx context.Context, phone string, excludeID int64) (unique bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsPhoneUnique")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.isUnique(ctx, model.FieldPhone, phone, excludeID)
}

// HasActiveBookings reports whether the guest holds a non-cancelled booking that checks out
// today or later.
func (s *serviceImpl) HasActiveBookings(ctx context.Context, id int64) (active bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HasActiveBookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	active, err = s.bookingRepo.Exist(ctx, bookingRepo.ActiveByGuestFilter(id, timezone.Today()))
	if err != nil {
		return false, database.AsFailure("check guest bookings", err) // nolint:wrapcheck
	}

	return active, nil
}
