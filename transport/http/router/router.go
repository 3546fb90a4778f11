package router

import (
	"sparkle/internal/handlers/auth"
	"sparkle/internal/handlers/booking"
	"sparkle/internal/handlers/customer"
	"sparkle/internal/handlers/notification"
	"sparkle/internal/handlers/payment"
	"sparkle/internal/handlers/report"
	"sparkle/internal/handlers/servicepackage"
	"sparkle/internal/handlers/settings"
	"sparkle/internal/handlers/staff"
	"sparkle/internal/handlers/team"
	"sparkle/internal/handlers/wizard"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth           auth.Handler
	Customer       customer.Handler
	Staff          staff.Handler
	Team           team.Handler
	ServicePackage servicepackage.Handler
	Booking        booking.Handler
	Wizard         wizard.Handler
	Payment        payment.Handler
	Report         report.Handler
	Notification   notification.Handler
	Settings       settings.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.Staff.Router(routerGroup)
		r.DomainHandlers.Team.Router(routerGroup)
		r.DomainHandlers.ServicePackage.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Wizard.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
		r.DomainHandlers.Notification.Router(routerGroup)
		r.DomainHandlers.Settings.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
