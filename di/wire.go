//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"sparkle/config"
	"sparkle/infras/jwt"
	"sparkle/infras/mailer"
	"sparkle/infras/otel"
	"sparkle/infras/postgres"
	"sparkle/infras/redis"
	"sparkle/infras/s3"
	"sparkle/permissions"
	"sparkle/shared/cache"
	"sparkle/transport/http"
	"sparkle/transport/http/middleware"
	"sparkle/transport/http/router"

	authService "sparkle/internal/domains/auth/service"
	bookingEvents "sparkle/internal/domains/booking/events"
	bookingRepository "sparkle/internal/domains/booking/repository"
	bookingService "sparkle/internal/domains/booking/service"
	customerRepository "sparkle/internal/domains/customer/repository"
	customerService "sparkle/internal/domains/customer/service"
	notificationService "sparkle/internal/domains/notification/service"
	paymentService "sparkle/internal/domains/payment/service"
	reportService "sparkle/internal/domains/report/service"
	servicepackageRepository "sparkle/internal/domains/servicepackage/repository"
	servicepackageService "sparkle/internal/domains/servicepackage/service"
	settingsRepository "sparkle/internal/domains/settings/repository"
	settingsService "sparkle/internal/domains/settings/service"
	staffRepository "sparkle/internal/domains/staff/repository"
	staffService "sparkle/internal/domains/staff/service"
	teamRepository "sparkle/internal/domains/team/repository"
	teamService "sparkle/internal/domains/team/service"
	userRepository "sparkle/internal/domains/user/repository"
	wizardRepository "sparkle/internal/domains/wizard/repository"
	wizardService "sparkle/internal/domains/wizard/service"

	authHandler "sparkle/internal/handlers/auth"
	bookingHandler "sparkle/internal/handlers/booking"
	customerHandler "sparkle/internal/handlers/customer"
	notificationHandler "sparkle/internal/handlers/notification"
	paymentHandler "sparkle/internal/handlers/payment"
	reportHandler "sparkle/internal/handlers/report"
	servicepackageHandler "sparkle/internal/handlers/servicepackage"
	settingsHandler "sparkle/internal/handlers/settings"
	staffHandler "sparkle/internal/handlers/staff"
	teamHandler "sparkle/internal/handlers/team"
	wizardHandler "sparkle/internal/handlers/wizard"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	mailer.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
)

var staffDomain = wire.NewSet(
	staffRepository.New,
	staffService.New,
)

var teamDomain = wire.NewSet(
	teamRepository.New,
	teamRepository.NewMember,
	teamService.New,
)

var servicepackageDomain = wire.NewSet(
	servicepackageRepository.New,
	servicepackageRepository.NewTier,
	servicepackageService.New,
)

var settingsDomain = wire.NewSet(
	settingsRepository.New,
	settingsService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingEvents.NewBus,
	bookingService.New,
)

var wizardDomain = wire.NewSet(
	wizardRepository.NewDraft,
	wizardRepository.NewPreference,
	wizardService.New,
)

var paymentDomain = wire.NewSet(
	paymentService.New,
)

var reportDomain = wire.NewSet(
	reportService.New,
)

var notificationDomain = wire.NewSet(
	notificationService.New,
)

var domains = wire.NewSet(
	authDomain,
	customerDomain,
	staffDomain,
	teamDomain,
	servicepackageDomain,
	settingsDomain,
	bookingDomain,
	wizardDomain,
	paymentDomain,
	reportDomain,
	notificationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	customerHandler.New,
	staffHandler.New,
	teamHandler.New,
	servicepackageHandler.New,
	bookingHandler.New,
	wizardHandler.New,
	paymentHandler.New,
	reportHandler.New,
	notificationHandler.New,
	settingsHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
