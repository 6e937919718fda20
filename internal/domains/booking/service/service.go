package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skynest/config"
	"skynest/infras/otel"
	"skynest/infras/postgres"
	"skynest/internal/domains/booking/model"
	"skynest/internal/domains/booking/model/dto"
	"skynest/internal/domains/booking/repository"
	guestServiceRepo "skynest/internal/domains/guestservice/repository"
	paymentRepo "skynest/internal/domains/payment/repository"
	roomModel "skynest/internal/domains/room/model"
	roomRepo "skynest/internal/domains/room/repository"
	roomTypeModel "skynest/internal/domains/roomtype/model"
	roomTypeRepo "skynest/internal/domains/roomtype/repository"
	"skynest/internal/events"
	"skynest/shared"
	"skynest/shared/cache"
	"skynest/shared/constant"
	gDto "skynest/shared/dto"
	"skynest/shared/failure"
	"skynest/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Availability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	RoomAvailability(ctx context.Context, req dto.RoomAvailabilityRequest) (dto.RoomAvailabilityResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) error
	CheckIn(ctx context.Context, id string) error
	CheckOut(ctx context.Context, id string) error
	NoShow(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	roomTypeRepo roomTypeRepo.RoomType
	paymentRepo  paymentRepo.Payment
	requestRepo  guestServiceRepo.Request
	db           *postgres.Connection
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	publisher    events.Publisher
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	roomTypeRepo roomTypeRepo.RoomType,
	paymentRepo paymentRepo.Payment,
	requestRepo guestServiceRepo.Request,
	db *postgres.Connection,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	publisher events.Publisher,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		roomTypeRepo: roomTypeRepo,
		paymentRepo:  paymentRepo,
		requestRepo:  requestRepo,
		db:           db,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		publisher:    publisher,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	guestID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return res, failure.BadRequestFromString("check_out must be after check_in") // nolint:wrapcheck
	}

	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if checkIn.Before(today) {
		return res, failure.BadRequestFromString("check_in cannot be in the past") // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.BadRequestFromString("room does not exist") // nolint:wrapcheck
	}

	if room.Status == constant.RoomStatusMaintenance {
		return res, failure.Conflict("room is under maintenance") // nolint:wrapcheck
	}

	roomType, err := s.roomTypeRepo.Get(ctx, shared.FilterByID(room.RoomTypeID, roomTypeModel.FieldID, roomTypeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if req.GuestCount > roomType.Capacity {
		return res, failure.BadRequestFromString("guest count exceeds room capacity") // nolint:wrapcheck
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	booking := req.ToModel(guestID, room.BranchID, checkIn, checkOut, roomType.BasePrice*float64(nights))

	// Lock the room row, recheck the range, then insert. Holding the lock
	// means two racing requests for the same room serialize, so the loser
	// sees the winner's booking in its recheck.
	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		locked, err := s.roomRepo.LockTx(ctx, tx, room.ID)
		if err != nil {
			return fmt.Errorf("failed to lock room: %w", err)
		}

		if locked.ID == constant.Empty {
			return failure.BadRequestFromString("room does not exist")
		}

		conflicts, err := s.repo.CountConflictsTx(ctx, tx, room.ID, checkIn, checkOut)
		if err != nil {
			return fmt.Errorf("failed to check conflicts: %w", err)
		}

		if conflicts > 0 {
			return failure.Conflict("room is not available for the requested dates")
		}

		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		return nil
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeExclusionViolation {
			return res, failure.Conflict("room is not available for the requested dates") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, err
	}

	s.invalidate(ctx, booking.ID)
	s.publish(ctx, events.TypeBookingCreated, booking)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Availability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return res, failure.BadRequestFromString("check_out must be after check_in") // nolint:wrapcheck
	}

	rows, err := s.repo.FindAvailability(ctx, req.BranchID, checkIn, checkOut)
	if err != nil {
		log.Error().Err(err).Msg("failed to find availability")

		return res, fmt.Errorf("failed to find availability: %w", err)
	}

	res.FromRows(rows, checkIn, checkOut)

	return res, nil
}

// RoomAvailability checks a single room for a date range and, when the room is
// taken, lists the bookings that block it.
func (s *serviceImpl) RoomAvailability(ctx context.Context, req dto.RoomAvailabilityRequest) (res dto.RoomAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RoomAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return res, failure.BadRequestFromString("check_out must be after check_in") // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	roomType, err := s.roomTypeRepo.Get(ctx, shared.FilterByID(room.RoomTypeID, roomTypeModel.FieldID, roomTypeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	conflicts, err := s.repo.FindConflicts(ctx, req.RoomID, checkIn, checkOut)
	if err != nil {
		log.Error().Err(err).Msg("failed to find conflicting bookings")

		return res, fmt.Errorf("failed to find conflicting bookings: %w", err)
	}

	res.FromModels(req.RoomID, checkIn, checkOut, roomType.BasePrice, conflicts)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.authorizedBooking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

// authorizedBooking loads a booking and enforces ownership: guests only ever
// see their own bookings, staff and admins see everything.
func (s *serviceImpl) authorizedBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if role == constant.RoleGuest && booking.GuestID != userID {
		return booking, failure.ResourceRestrictedError
	}

	return booking, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.authorizedBooking(ctx, id)
	if err != nil {
		return err
	}

	switch booking.Status {
	case constant.BookingStatusPending, constant.BookingStatusConfirmed:
	default:
		return failure.Conflict(fmt.Sprintf("booking in status %s cannot be cancelled", booking.Status)) // nolint:wrapcheck
	}

	if err := s.setStatus(ctx, booking.ID, constant.BookingStatusCancelled); err != nil {
		return err
	}

	booking.Status = constant.BookingStatusCancelled
	s.publish(ctx, events.TypeBookingCancelled, booking)

	return nil
}

func (s *serviceImpl) CheckIn(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.authorizedBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status != constant.BookingStatusConfirmed {
		return failure.Conflict("booking must be confirmed (paid) before check-in") // nolint:wrapcheck
	}

	// Booking and room flip in one transaction: a checked-in booking with a
	// non-occupied room is never observable.
	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		statusUpdate := shared.TransformFields(dto.UpdateBookingStatusRequest{Status: constant.BookingStatusCheckedIn}, user)
		if err := s.repo.UpdateTx(ctx, tx, statusUpdate, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}

		roomUpdate := map[string]any{
			roomModel.FieldStatus:    constant.RoomStatusOccupied,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}
		if err := s.roomRepo.UpdateTx(ctx, tx, roomUpdate, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName)); err != nil {
			return fmt.Errorf("failed to update room status: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check in booking")

		return err
	}

	s.invalidate(ctx, id)

	booking.Status = constant.BookingStatusCheckedIn
	s.publish(ctx, events.TypeBookingCheckedIn, booking)

	return nil
}

func (s *serviceImpl) CheckOut(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.authorizedBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status != constant.BookingStatusCheckedIn {
		return failure.Conflict("only a checked-in booking can be checked out") // nolint:wrapcheck
	}

	paid, err := s.paymentRepo.SumCompleted(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to sum payments")

		return fmt.Errorf("failed to sum payments: %w", err)
	}

	charges, err := s.requestRepo.SumApprovedCharges(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to sum service charges")

		return fmt.Errorf("failed to sum service charges: %w", err)
	}

	outstanding := booking.TotalAmount + charges - paid
	if outstanding > 0 {
		return failure.Conflict(fmt.Sprintf("outstanding balance of %.2f must be settled before check-out", outstanding)) // nolint:wrapcheck
	}

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		statusUpdate := shared.TransformFields(dto.UpdateBookingStatusRequest{Status: constant.BookingStatusCheckedOut}, user)
		if err := s.repo.UpdateTx(ctx, tx, statusUpdate, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}

		roomUpdate := map[string]any{
			roomModel.FieldStatus:    constant.RoomStatusCleaning,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}
		if err := s.roomRepo.UpdateTx(ctx, tx, roomUpdate, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName)); err != nil {
			return fmt.Errorf("failed to update room status: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check out booking")

		return err
	}

	s.invalidate(ctx, id)

	booking.Status = constant.BookingStatusCheckedOut
	s.publish(ctx, events.TypeBookingCheckedOut, booking)

	return nil
}

func (s *serviceImpl) NoShow(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".NoShow")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.authorizedBooking(ctx, id)
	if err != nil {
		return err
	}

	switch booking.Status {
	case constant.BookingStatusPending, constant.BookingStatusConfirmed:
	default:
		return failure.Conflict(fmt.Sprintf("booking in status %s cannot be marked no-show", booking.Status)) // nolint:wrapcheck
	}

	if timezone.Now().Before(booking.CheckIn) {
		return failure.Conflict("booking cannot be marked no-show before its check-in date") // nolint:wrapcheck
	}

	if err := s.setStatus(ctx, booking.ID, constant.BookingStatusNoShow); err != nil {
		return err
	}

	booking.Status = constant.BookingStatusNoShow
	s.publish(ctx, events.TypeBookingNoShow, booking)

	return nil
}

func (s *serviceImpl) setStatus(ctx context.Context, id, status string) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	statusUpdate := shared.TransformFields(dto.UpdateBookingStatusRequest{Status: status}, user)
	if err := s.repo.Update(ctx, statusUpdate, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		s.publisher.PublishBookingEvent(c, events.BookingEvent{
			Type:      eventType,
			BookingID: booking.ID,
			Reference: booking.Reference,
			RoomID:    booking.RoomID,
			GuestID:   booking.GuestID,
			CheckIn:   booking.CheckIn.Format(constant.DateOnlyLayout),
			CheckOut:  booking.CheckOut.Format(constant.DateOnlyLayout),
			Total:     booking.TotalAmount,
			At:        timezone.Format(timezone.Now(), constant.DateFormat),
		})
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
