package room

import (
	"context"
	"fmt"
	"io"

	"github.com/Pawan0019/Hotel-Room-Booking/infras/otel"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/room/model/dto"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/room/service"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/constant"
	"github.com/Pawan0019/Hotel-Room-Booking/transport/console/command"
	"github.com/Pawan0019/Hotel-Room-Booking/transport/console/response"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(mux *command.Mux) {
	mux.Handle("add-room", "add-room <number> <Single|Double|Suite|Deluxe> <price-per-night>", handler.CreateRoom)
	mux.Handle("rooms", "rooms [available | type <room-type> | search <term> | sort <asc|desc>]", handler.GetRooms)
	mux.Handle("room", "room <room-id>", handler.GetRoomByID)
	mux.Handle("set-room-price", "set-room-price <room-id> <price-per-night>", handler.SetRoomPrice)
	mux.Handle("set-room-availability", "set-room-availability <room-id> <true|false>", handler.SetRoomAvailability)
	mux.Handle("delete-room", "delete-room <room-id>", handler.DeleteRoom)
}

func (handler *Handler) CreateRoom(ctx context.Context, writer io.Writer, args command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".CreateRoom")
	defer scope.End()

	if err := args.Require(3); err != nil {
		response.WithError(writer, err)

		return
	}

	price, err := args.Float(2, "price_per_night")
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.CreateRoomRequest{
		RoomNumber:    args.String(0),
		RoomType:      args.String(1),
		PricePerNight: price,
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room created successfully")

	response.WithMessage(writer, fmt.Sprintf("Room %d created successfully", id))
}

// GetRooms lists rooms, optionally narrowed or ordered by the first argument.
func (handler *Handler) GetRooms(ctx context.Context, writer io.Writer, args command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".GetRooms")
	defer scope.End()

	var (
		rooms dto.GetRoomsResponse
		err   error
	)

	switch args.String(0) {
	case "":
		rooms, err = handler.service.GetAll(ctx)
	case "available":
		rooms, err = handler.service.GetAvailable(ctx)
	case "type":
		rooms, err = handler.service.FilterByType(ctx, args.String(1))
	case "search":
		rooms, err = handler.service.SearchByNumber(ctx, args.Rest(1))
	case "sort":
		rooms, err = handler.service.SortByPrice(ctx, args.String(1))
	default:
		err = args.UsageError()
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, rooms)
}

func (handler *Handler) GetRoomByID(ctx context.Context, writer io.Writer, args command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".GetRoomByID")
	defer scope.End()

	id, err := args.ID(0, "room_id")
	if err != nil {
		response.WithError(writer, err)

		return
	}

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("room_id", id).Msg("failed to get room")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, room)
}

func (handler *Handler) SetRoomPrice(ctx context.Context, writer io.Writer, args command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".SetRoomPrice")
	defer scope.End()

	id, err := args.ID(0, "room_id")
	if err != nil {
		response.WithError(writer, err)

		return
	}

	price, err := args.Float(1, "price_per_night")
	if err != nil {
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, dto.UpdateRoomRequest{PricePerNight: &price}, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("room_id", id).Msg("failed to update room price")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, fmt.Sprintf("Room %d updated", id))
}

// SetRoomAvailability flips the manual availability flag. Existing bookings are kept.
func (handler *Handler) SetRoomAvailability(ctx context.Context, writer io.Writer, args command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".SetRoomAvailability")
	defer scope.End()

	id, err := args.ID(0, "room_id")
	if err != nil {
		response.WithError(writer, err)

		return
	}

	available, err := args.Bool(1, "is_available")
	if err != nil {
		response.WithError(writer, err)

		return
	}

	if err := handler.service.SetAvailability(ctx, id, available); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("room_id", id).Msg("failed to set room availability")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, fmt.Sprintf("Room %d updated", id))
}

func (handler *Handler) DeleteRoom(ctx context.Context, writer io.Writer, args command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".DeleteRoom")
	defer scope.End()

	id, err := args.ID(0, "room_id")
	if err != nil {
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("room_id", id).Msg("failed to delete room")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, fmt.Sprintf("Room %d deleted", id))
}
