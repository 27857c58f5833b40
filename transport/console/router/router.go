package router

import (
	"github.com/Pawan0019/Hotel-Room-Booking/internal/handlers/booking"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/handlers/guest"
	"github.com/Pawan0019/Hotel-Room-Booking/internal/handlers/room"
	"github.com/Pawan0019/Hotel-Room-Booking/transport/console/command"
)

type DomainHandlers struct {
	Room    room.Handler
	Guest   guest.Handler
	Booking booking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(mux *command.Mux) {
	r.DomainHandlers.Room.Router(mux)
	r.DomainHandlers.Guest.Router(mux)
	r.DomainHandlers.Booking.Router(mux)
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
