package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"skynest/config"
	"skynest/infras/otel"
	bookingModel "skynest/internal/domains/booking/model"
	bookingRepo "skynest/internal/domains/booking/repository"
	"skynest/internal/domains/guestservice/model"
	"skynest/internal/domains/guestservice/model/dto"
	"skynest/internal/domains/guestservice/repository"
	"skynest/shared"
	"skynest/shared/cache"
	"skynest/shared/constant"
	gDto "skynest/shared/dto"
	"skynest/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetService     = "service:get"
	cacheGetAllService  = "service:gets"
	cacheCountService   = "service:count"
	cacheGetAllRequests = "service_request:gets"
)

type GuestService interface {
	CreateService(ctx context.Context, req dto.CreateServiceRequest) error
	GetServices(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetServicesResponse, error)
	GetService(ctx context.Context, id string) (dto.ServiceResponse, error)
	UpdateService(ctx context.Context, req dto.UpdateServiceRequest, id string) error
	DeleteService(ctx context.Context, id string) error
	CreateRequest(ctx context.Context, req dto.CreateRequestRequest) (dto.RequestResponse, error)
	GetMyRequests(ctx context.Context, req gDto.QueryParams) (dto.GetRequestsResponse, error)
	GetRequests(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRequestsResponse, error)
	UpdateRequestStatus(ctx context.Context, req dto.UpdateRequestStatusRequest, id string) error
}

type serviceImpl struct {
	serviceRepo repository.Service
	requestRepo repository.Request
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	serviceRepo repository.Service,
	requestRepo repository.Request,
	bookingRepo bookingRepo.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) GuestService {
	return &serviceImpl{
		serviceRepo: serviceRepo,
		requestRepo: requestRepo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) CreateService(ctx context.Context, req dto.CreateServiceRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateService")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	nameFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorEq,
				Value:    req.Name,
				Table:    model.TableName,
			},
		},
	}

	exists, err := s.serviceRepo.Exist(ctx, nameFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service exists")

		return fmt.Errorf("failed to check if service exists: %w", err)
	}

	if exists {
		return failure.Conflict("service name already in use") // nolint:wrapcheck
	}

	if err = s.serviceRepo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create service")

		return fmt.Errorf("failed to create service: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllService)
		shared.InvalidateCaches(c, s.cache, cacheCountService)
	}()

	return nil
}

func (s *serviceImpl) GetServices(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetServices")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllService, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for services")

		return res, nil
	}

	total, err := s.serviceRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count services")

		return res, fmt.Errorf("failed to count services: %w", err)
	}

	models, err := s.serviceRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get services")

		return res, fmt.Errorf("failed to get services: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save services to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetService(ctx context.Context, id string) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetService")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetService, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	service, err := s.serviceRepo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return res, fmt.Errorf("failed to get service: %w", err)
	}

	if service.ID == constant.Empty {
		return res, failure.NotFound("service not found") // nolint:wrapcheck
	}

	res.FromModel(service)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateService(ctx context.Context, req dto.UpdateServiceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateService")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.serviceRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service exists")

		return fmt.Errorf("failed to check if service exists: %w", err)
	}

	if !exist {
		return failure.NotFound("service not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.serviceRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update service")

		return fmt.Errorf("failed to update service: %w", err)
	}

	s.invalidateService(ctx, id)

	return nil
}

func (s *serviceImpl) DeleteService(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteService")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.serviceRepo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service exists")

		return fmt.Errorf("failed to check if service exists: %w", err)
	}

	if !exist {
		return failure.NotFound("service not found") // nolint:wrapcheck
	}

	if err := s.serviceRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete service")

		return fmt.Errorf("failed to delete service: %w", err)
	}

	s.invalidateService(ctx, id)

	return nil
}

// CreateRequest lets an in-house guest order from the catalog. The booking
// must be checked in so charges always land on an open folio.
func (s *serviceImpl) CreateRequest(ctx context.Context, req dto.CreateRequestRequest) (res dto.RequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateRequest")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(req.BookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if role == constant.RoleGuest && booking.GuestID != userID {
		return res, failure.ResourceRestrictedError
	}

	if booking.Status != constant.BookingStatusCheckedIn {
		return res, failure.Conflict("service requests require a checked-in booking") // nolint:wrapcheck
	}

	service, err := s.serviceRepo.Get(ctx, shared.FilterByID(req.ServiceID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return res, fmt.Errorf("failed to get service: %w", err)
	}

	if service.ID == constant.Empty {
		return res, failure.NotFound("service not found") // nolint:wrapcheck
	}

	if !service.Active {
		return res, failure.Conflict("service is not available") // nolint:wrapcheck
	}

	request := req.ToModel(booking.GuestID, service.Price)
	if err = s.requestRepo.Insert(ctx, request); err != nil {
		log.Error().Err(err).Msg("failed to create service request")

		return res, fmt.Errorf("failed to create service request: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRequests)
	}()

	res.FromModel(request)

	return res, nil
}

func (s *serviceImpl) GetMyRequests(ctx context.Context, req gDto.QueryParams) (res dto.GetRequestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMyRequests")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(userID, model.RequestFieldGuestID, model.RequestTableName)

	return s.listRequests(ctx, req, filter)
}

func (s *serviceImpl) GetRequests(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRequestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRequests")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.listRequests(ctx, req, filter)
}

// UpdateRequestStatus moves a request along pending, in_progress, completed.
// Cancelling is allowed until completion. The staff member who picks up the
// request becomes its assignee.
func (s *serviceImpl) UpdateRequestStatus(ctx context.Context, req dto.UpdateRequestStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateRequestStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.RequestFieldID, model.RequestTableName)

	request, err := s.requestRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get service request")

		return fmt.Errorf("failed to get service request: %w", err)
	}

	if request.ID == constant.Empty {
		return failure.NotFound("service request not found") // nolint:wrapcheck
	}

	if err := validTransition(request.Status, req.Status); err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, userID)
	if req.Status == constant.TaskStatusInProgress {
		updatedFields[model.RequestFieldAssigneeID] = userID
	}

	if err := s.requestRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update service request")

		return fmt.Errorf("failed to update service request: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRequests)
	}()

	return nil
}

func (s *serviceImpl) listRequests(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRequestsResponse, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRequests, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.requestRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count service requests")

		return res, fmt.Errorf("failed to count service requests: %w", err)
	}

	models, err := s.requestRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get service requests")

		return res, fmt.Errorf("failed to get service requests: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service requests to cache")
		}
	}()

	return res, nil
}

func validTransition(from, to string) error {
	allowed := map[string][]string{
		constant.TaskStatusPending:    {constant.TaskStatusInProgress, constant.TaskStatusCancelled},
		constant.TaskStatusInProgress: {constant.TaskStatusCompleted, constant.TaskStatusCancelled},
	}

	for _, next := range allowed[from] {
		if next == to {
			return nil
		}
	}

	return failure.Conflict(fmt.Sprintf("cannot move request from %s to %s", from, to)) // nolint:wrapcheck
}

func (s *serviceImpl) invalidateService(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetService, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete service from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllService)
		shared.InvalidateCaches(c, s.cache, cacheCountService)
	}()
}
