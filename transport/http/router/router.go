package router

import (
	"weekgrid/internal/handlers/booking"
	"weekgrid/internal/handlers/roster"
	"weekgrid/internal/handlers/week"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Booking booking.Handler
	Roster  roster.Handler
	Week    week.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

// SetupRoutes mounts the widget API at the root; the surface is fixed, so
// there is no version prefix.
func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Booking.Router(router)
	r.DomainHandlers.Roster.Router(router)
	r.DomainHandlers.Week.Router(router)
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
