package guest

import (
	"context"
	"fmt"
	"io"

	"github.com/Pawan0019/Hotel-Room-Booking/infras/otel"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/guest/model/dto"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/guest/service"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/constant"
	"github.com/Pawan0019/Hotel-Room-Booking/transport/console/command"
	"github.com/Pawan0019/Hotel-Room-Booking/transport/console/response"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Guest
	otel    otel.Otel
}

func New(service service.Guest, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(mux *command.Mux) {
	mux.Handle("add-guest", "add-guest <email> <phone> <name...>", handler.CreateGuest)
	mux.Handle("guests", "guests [active]", handler.GetGuests)
	mux.Handle("guest", "guest <guest-id>", handler.GetGuestByID)
	mux.Handle("set-guest-email", "set-guest-email <guest-id> <email>", handler.SetGuestEmail)
	mux.Handle("activate-guest", "activate-guest <guest-id>", handler.ActivateGuest)
	mux.Handle("deactivate-guest", "deactivate-guest <guest-id>", handler.DeactivateGuest)
	mux.Handle("delete-guest", "delete-guest <guest-id>", handler.DeleteGuest)
}

func (handler *Handler) CreateGuest(ctx context.Context, writer io.Writer, args command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".CreateGuest")
	defer scope.End()

	if err := args.Require(3); err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.CreateGuestRequest{
		Email: args.String(0),
		Phone: args.String(1),
		Name:  args.Rest(2),
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create guest")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Guest created successfully")

	response.WithMessage(writer, fmt.Sprintf("Guest %d created successfully", id))
}

func (handler *Handler) GetGuests(ctx context.Context, writer io.Writer, args command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".GetGuests")
	defer scope.End()

	var (
		guests dto.GetGuestsResponse
		err    error
	)

	if args.String(0) == "active" {
		guests, err = handler.service.GetActive(ctx)
	} else {
		guests, err = handler.service.GetAll(ctx)
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guests")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, guests)
}

func (handler *Handler) GetGuestByID(ctx context.Context, writer io.Writer, args command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".GetGuestByID")
	defer scope.End()

	id, err := args.ID(0, "guest_id")
	if err != nil {
		response.WithError(writer, err)

		return
	}

	guest, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("guest_id", id).Msg("failed to get guest")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, guest)
}

func (handler *Handler) SetGuestEmail(ctx context.Context, writer io.Writer, args command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".SetGuestEmail")
	defer scope.End()

	id, err := args.ID(0, "guest_id")
	if err != nil {
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, dto.UpdateGuestRequest{Email: args.String(1)}, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("guest_id", id).Msg("failed to update guest")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, fmt.Sprintf("Guest %d updated", id))
}

func (handler *Handler) ActivateGuest(ctx context.Context, writer io.Writer, args command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".ActivateGuest")
	defer scope.End()

	id, err := args.ID(0, "guest_id")
	if err != nil {
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Activate(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("guest_id", id).Msg("failed to activate guest")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, fmt.Sprintf("Guest %d activated", id))
}

// DeactivateGuest marks a guest inactive and cancels their current and future bookings.
func (handler *Handler) DeactivateGuest(ctx context.Context, writer io.Writer, args command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".DeactivateGuest")
	defer scope.End()

	id, err := args.ID(0, "guest_id")
	if err != nil {
		response.WithError(writer, err)

		return
	}

	count, err := handler.service.Deactivate(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("guest_id", id).Msg("failed to deactivate guest")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, fmt.Sprintf("Guest %d deactivated, %d booking(s) cancelled", id, count))
}

func (handler *Handler) DeleteGuest(ctx context.Context, writer io.Writer, args command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".DeleteGuest")
	defer scope.End()

	id, err := args.ID(0, "guest_id")
	if err != nil {
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("guest_id", id).Msg("failed to delete guest")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, fmt.Sprintf("Guest %d deleted", id))
}
