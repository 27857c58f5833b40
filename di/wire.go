//go:build wireinject
// +build wireinject

package di

import (
	"github.com/Pawan0019/Hotel-Room-Booking/config"
	"github.com/Pawan0019/Hotel-Room-Booking/infras/database"
	"github.com/Pawan0019/Hotel-Room-Booking/infras/kafka"
	"github.com/Pawan0019/Hotel-Room-Booking/infras/otel"
	"github.com/Pawan0019/Hotel-Room-Booking/infras/redis"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/cache"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/cache/broadcast"
	bookingHandler "github.com/Pawan0019/Hotel-Room-Booking/internal/handlers/booking"
	guestHandler "github.com/Pawan0019/Hotel-Room-Booking/internal/handlers/guest"
	roomHandler "github.com/Pawan0019/Hotel-Room-Booking/internal/handlers/room"
	"github.com/Pawan0019/Hotel-Room-Booking/transport/console"
	"github.com/Pawan0019/Hotel-Room-Booking/transport/console/router"

	bookingEvent "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/event"
	bookingRepository "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/repository"
	bookingService "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/booking/service"
	guestRepository "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/guest/repository"
	guestService "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/guest/service"
	roomRepository "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/room/repository"
	roomService "github.com/Pawan0019/Hotel-Room-Booking/internal/domains/room/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	database.New,
	wire.Bind(new(database.Transactor), new(*database.Connection)),
	otel.New,
	redis.New,
	kafka.New,
)

var sharedHelpers = wire.NewSet(
	cache.New,
	broadcast.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var guestDomain = wire.NewSet(
	guestRepository.New,
	guestService.New,
	wire.Bind(new(guestService.BookingCanceller), new(bookingService.Booking)),
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingEvent.New,
	bookingService.New,
)

var domains = wire.NewSet(
	roomDomain,
	guestDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	guestHandler.New,
	bookingHandler.New,
	router.New,
)

func InitializeService() (*App, error) {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		domains,
		routing,
		console.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}, nil
}
