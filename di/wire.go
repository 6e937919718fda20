//go:build wireinject
// +build wireinject

package di

import (
	"skynest/config"
	"skynest/infras/jwt"
	"skynest/infras/kafka"
	"skynest/infras/otel"
	"skynest/infras/postgres"
	"skynest/infras/redis"
	"skynest/infras/s3"
	"skynest/internal/events"
	"skynest/permissions"
	"skynest/shared/cache"
	"skynest/transport/http"
	"skynest/transport/http/middleware"
	"skynest/transport/http/router"

	authService "skynest/internal/domains/auth/service"
	bookingRepository "skynest/internal/domains/booking/repository"
	bookingService "skynest/internal/domains/booking/service"
	branchRepository "skynest/internal/domains/branch/repository"
	branchService "skynest/internal/domains/branch/service"
	guestServiceRepository "skynest/internal/domains/guestservice/repository"
	guestServiceService "skynest/internal/domains/guestservice/service"
	maintenanceRepository "skynest/internal/domains/maintenance/repository"
	maintenanceService "skynest/internal/domains/maintenance/service"
	paymentRepository "skynest/internal/domains/payment/repository"
	paymentService "skynest/internal/domains/payment/service"
	reportRepository "skynest/internal/domains/report/repository"
	reportService "skynest/internal/domains/report/service"
	roomRepository "skynest/internal/domains/room/repository"
	roomService "skynest/internal/domains/room/service"
	roomTypeRepository "skynest/internal/domains/roomtype/repository"
	roomTypeService "skynest/internal/domains/roomtype/service"
	userRepository "skynest/internal/domains/user/repository"
	userService "skynest/internal/domains/user/service"

	authHandler "skynest/internal/handlers/auth"
	bookingHandler "skynest/internal/handlers/booking"
	branchHandler "skynest/internal/handlers/branch"
	guestServiceHandler "skynest/internal/handlers/guestservice"
	healthHandler "skynest/internal/handlers/health"
	maintenanceHandler "skynest/internal/handlers/maintenance"
	paymentHandler "skynest/internal/handlers/payment"
	reportHandler "skynest/internal/handlers/report"
	roomHandler "skynest/internal/handlers/room"
	roomTypeHandler "skynest/internal/handlers/roomtype"
	userHandler "skynest/internal/handlers/user"

	"github.com/google/wire"
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
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	events.NewPublisher,
)

var authDomain = wire.NewSet(
	authService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var branchDomain = wire.NewSet(
	branchRepository.New,
	branchService.New,
)

var roomTypeDomain = wire.NewSet(
	roomTypeRepository.New,
	roomTypeRepository.NewAmenity,
	roomTypeRepository.NewRoomTypeAmenity,
	roomTypeRepository.NewImage,
	roomTypeService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var maintenanceDomain = wire.NewSet(
	maintenanceRepository.New,
	maintenanceService.New,
)

var guestServiceDomain = wire.NewSet(
	guestServiceRepository.New,
	guestServiceRepository.NewRequest,
	guestServiceService.New,
)

var reportDomain = wire.NewSet(
	reportRepository.New,
	reportService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	branchDomain,
	roomTypeDomain,
	roomDomain,
	bookingDomain,
	paymentDomain,
	maintenanceDomain,
	guestServiceDomain,
	reportDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	branchHandler.New,
	roomTypeHandler.New,
	roomHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	maintenanceHandler.New,
	guestServiceHandler.New,
	reportHandler.New,
	healthHandler.New,
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
