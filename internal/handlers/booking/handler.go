package booking

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Pawan0019/Hotel-Room-Booking/infras/otel"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/model/dto"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/service"
	roomService "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/room/service"
	"github.com/Pawan0019/Hotel-Room-Booking/shared/constant"
	"github.com/Pawan0019/Hotel-Room-Booking/transport/console/command"
	"github.com/Pawan0019/Hotel-Room-Booking/transport/console/response"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	rooms   roomService.Room
	otel    otel.Otel
}

func New(service service.Booking, rooms roomService.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		rooms:   rooms,
		otel:    otel,
	}
}

func (handler *Handler) Router(mux *command.Mux) {
	mux.Handle("book", "book <room-id> <guest-id> <check-in> <check-out>", handler.CreateBooking)
	mux.Handle("cancel", "cancel <booking-id>", handler.CancelBooking)
	mux.Handle("cancel-guest", "cancel-guest <guest-id>", handler.CancelBookingsByGuest)
	mux.Handle("available", "available <room-id> <check-in> <check-out>", handler.IsRoomAvailable)
	mux.Handle("get", "get <booking-id>", handler.GetBooking)
	mux.Handle("list", "list", handler.ListBookings)
	mux.Handle("by-guest", "by-guest", handler.GroupBookingsByGuest)
	mux.Handle("most-booked", "most-booked", handler.MostBookedRoomType)
	mux.Handle("quote", "quote <room-id> <check-in> <check-out>", handler.Quote)
}

// parseDates reads "<check-in> <check-out>" starting at word i.
func parseDates(args command.Args, i int) (checkIn, checkOut time.Time, err error) {
	if checkIn, err = args.Date(i, "check_in"); err != nil {
		return checkIn, checkOut, err
	}

	checkOut, err = args.Date(i+1, "check_out")

	return checkIn, checkOut, err
}

// CreateBooking books a room for a guest.
func (handler *Handler) CreateBooking(ctx context.Context, writer io.Writer, args command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".CreateBooking")
	defer scope.End()

	if err := args.Require(4); err != nil {
		response.WithError(writer, err)

		return
	}

	var (
		req dto.CreateBookingRequest
		err error
	)

	if req.RoomID, err = args.ID(0, "room_id"); err == nil {
		req.GuestID, err = args.ID(1, "guest_id")
	}

	if err == nil {
		req.CheckIn, req.CheckOut, err = parseDates(args, 2)
	}

	if err != nil {
		response.WithError(writer, err)

		return
	}

	id, err := handler.service.CreateBooking(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created successfully")

	response.WithMessage(writer, fmt.Sprintf("Booking %d created successfully", id))
}

// CancelBooking cancels one booking. Cancelling twice is not an error.
func (handler *Handler) CancelBooking(ctx context.Context, writer io.Writer, args command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".CancelBooking")
	defer scope.End()

	id, err := args.ID(0, "booking_id")
	if err != nil {
		response.WithError(writer, err)

		return
	}

	if err := handler.service.CancelBooking(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("booking_id", id).Msg("failed to cancel booking")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, fmt.Sprintf("Booking %d cancelled", id))
}

// CancelBookingsByGuest cancels every current and future booking of a guest.
func (handler *Handler) CancelBookingsByGuest(ctx context.Context, writer io.Writer, args command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".CancelBookingsByGuest")
	defer scope.End()

	guestID, err := args.ID(0, "guest_id")
	if err != nil {
		response.WithError(writer, err)

		return
	}

	count, err := handler.service.CancelBookingsByGuest(ctx, guestID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("guest_id", guestID).Msg("failed to cancel guest bookings")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, fmt.Sprintf("%d booking(s) cancelled", count))
}

func (handler *Handler) IsRoomAvailable(ctx context.Context, writer io.Writer, args command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".IsRoomAvailable")
	defer scope.End()

	if err := args.Require(3); err != nil {
		response.WithError(writer, err)

		return
	}

	roomID, err := args.ID(0, "room_id")
	if err != nil {
		response.WithError(writer, err)

		return
	}

	checkIn, checkOut, err := parseDates(args, 1)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	available, err := handler.service.IsRoomAvailable(ctx, roomID, checkIn, checkOut)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("room_id", roomID).Msg("failed to check room availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, map[string]any{"room_id": roomID, "available": available})
}

func (handler *Handler) GetBooking(ctx context.Context, writer io.Writer, args command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".GetBooking")
	defer scope.End()

	id, err := args.ID(0, "booking_id")
	if err != nil {
		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.GetBooking(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("booking_id", id).Msg("failed to get booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, booking)
}

func (handler *Handler) ListBookings(ctx context.Context, writer io.Writer, _ command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".ListBookings")
	defer scope.End()

	bookings, err := handler.service.ListBookings(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, bookings)
}

func (handler *Handler) GroupBookingsByGuest(ctx context.Context, writer io.Writer, _ command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".GroupBookingsByGuest")
	defer scope.End()

	groups, err := handler.service.GroupBookingsByGuest(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to group bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, groups)
}

func (handler *Handler) MostBookedRoomType(ctx context.Context, writer io.Writer, _ command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".MostBookedRoomType")
	defer scope.End()

	roomType, err := handler.service.MostBookedRoomType(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get most booked room type")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, map[string]string{"room_type": roomType})
}

// Quote prices a stay at the room's current nightly rate without booking it.
func (handler *Handler) Quote(ctx context.Context, writer io.Writer, args command.Args) {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelConsoleScopeName, constant.OtelConsoleScopeName+".Quote")
	defer scope.End()

	if err := args.Require(3); err != nil {
		response.WithError(writer, err)

		return
	}

	roomID, err := args.ID(0, "room_id")
	if err != nil {
		response.WithError(writer, err)

		return
	}

	checkIn, checkOut, err := parseDates(args, 1)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	room, err := handler.rooms.Get(ctx, roomID)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	total, err := handler.service.CalculateTotalAmount(room.PricePerNight, checkIn, checkOut)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, map[string]any{"room_id": roomID, "total_amount": total})
}
