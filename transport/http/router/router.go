package router

import (
	"skynest/internal/handlers/auth"
	"skynest/internal/handlers/booking"
	"skynest/internal/handlers/branch"
	"skynest/internal/handlers/guestservice"
	"skynest/internal/handlers/health"
	"skynest/internal/handlers/maintenance"
	"skynest/internal/handlers/payment"
	"skynest/internal/handlers/report"
	"skynest/internal/handlers/room"
	"skynest/internal/handlers/roomtype"
	"skynest/internal/handlers/user"
	"skynest/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	User         user.Handler
	Branch       branch.Handler
	RoomType     roomtype.Handler
	Room         room.Handler
	Booking      booking.Handler
	Payment      payment.Handler
	Maintenance  maintenance.Handler
	GuestService guestservice.Handler
	Report       report.Handler
	Health       health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
	App            middleware.AppMiddleware
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole, app middleware.AppMiddleware) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
		App:            app,
	}
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Health.Router(router)

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.App.Tracing)
		routerGroup.Use(r.App.RateLimit())
		routerGroup.Use(r.AuthRole.APIKey)
		routerGroup.Use(r.AuthRole.Auth)
		routerGroup.Use(r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Branch.Router(routerGroup)
		r.DomainHandlers.RoomType.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Maintenance.Router(routerGroup)
		r.DomainHandlers.GuestService.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
	})
}
