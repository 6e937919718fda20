package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"skynest/config"
	"skynest/infras/otel"
	"skynest/infras/postgres"
	bookingModel "skynest/internal/domains/booking/model"
	bookingDto "skynest/internal/domains/booking/model/dto"
	bookingRepo "skynest/internal/domains/booking/repository"
	guestServiceRepo "skynest/internal/domains/guestservice/repository"
	"skynest/internal/domains/payment/model"
	"skynest/internal/domains/payment/model/dto"
	"skynest/internal/domains/payment/repository"
	"skynest/internal/events"
	"skynest/shared"
	"skynest/shared/constant"
	gDto "skynest/shared/dto"
	"skynest/shared/failure"
	"skynest/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Payment interface {
	Create(ctx context.Context, req dto.CreatePaymentRequest, bookingID string) (dto.PaymentResponse, error)
	Folio(ctx context.Context, bookingID string) (dto.FolioResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPaymentsResponse, error)
}

type serviceImpl struct {
	repo        repository.Payment
	bookingRepo bookingRepo.Booking
	requestRepo guestServiceRepo.Request
	db          *postgres.Connection
	cfg         *config.Config
	otel        otel.Otel
	publisher   events.Publisher
}

func New(
	repo repository.Payment,
	bookingRepo bookingRepo.Booking,
	requestRepo guestServiceRepo.Request,
	db *postgres.Connection,
	cfg *config.Config,
	otel otel.Otel,
	publisher events.Publisher,
) Payment {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		requestRepo: requestRepo,
		db:          db,
		cfg:         cfg,
		otel:        otel,
		publisher:   publisher,
	}
}

// Create records a payment and recomputes the booking status in the same
// transaction. Confirmation happens here and only here: once completed
// payments cover the room total, a pending booking becomes confirmed.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePaymentRequest, bookingID string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.authorizedBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	switch booking.Status {
	case constant.BookingStatusPending, constant.BookingStatusConfirmed, constant.BookingStatusCheckedIn:
	default:
		return res, failure.Conflict(fmt.Sprintf("booking in status %s cannot accept payments", booking.Status)) // nolint:wrapcheck
	}

	charges, err := s.requestRepo.SumApprovedCharges(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to sum service charges")

		return res, fmt.Errorf("failed to sum service charges: %w", err)
	}

	payment := req.ToModel(bookingID, user)
	confirmed := false

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		alreadyPaid, err := s.repo.SumCompletedTx(ctx, tx, bookingID)
		if err != nil {
			return fmt.Errorf("failed to sum payments: %w", err)
		}

		outstanding := booking.TotalAmount + charges - alreadyPaid
		if req.Amount > outstanding {
			return failure.BadRequestFromString(fmt.Sprintf("payment of %.2f exceeds the outstanding balance of %.2f", req.Amount, outstanding)) // nolint:wrapcheck
		}

		if err := s.repo.InsertTx(ctx, tx, payment); err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}

		paid := alreadyPaid + req.Amount

		if booking.Status == constant.BookingStatusPending && paid >= booking.TotalAmount {
			statusUpdate := shared.TransformFields(bookingDto.UpdateBookingStatusRequest{Status: constant.BookingStatusConfirmed}, user)
			if err := s.bookingRepo.UpdateTx(ctx, tx, statusUpdate, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName)); err != nil {
				return fmt.Errorf("failed to confirm booking: %w", err)
			}

			confirmed = true
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create payment")

		return res, err
	}

	if confirmed {
		go func() {
			c := context.WithoutCancel(ctx)

			s.publisher.PublishBookingEvent(c, events.BookingEvent{
				Type:      events.TypeBookingConfirmed,
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

	res.FromModel(payment)

	return res, nil
}

func (s *serviceImpl) Folio(ctx context.Context, bookingID string) (res dto.FolioResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Folio")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.authorizedBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	paid, err := s.repo.SumCompleted(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to sum payments")

		return res, fmt.Errorf("failed to sum payments: %w", err)
	}

	charges, err := s.requestRepo.SumApprovedCharges(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to sum service charges")

		return res, fmt.Errorf("failed to sum service charges: %w", err)
	}

	payments, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}, shared.FilterByID(bookingID, model.FieldBookingID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	res.FromModels(bookingID, booking.TotalAmount, charges, paid, payments)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return res, fmt.Errorf("failed to count payments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) authorizedBooking(ctx context.Context, bookingID string) (bookingModel.Booking, error) {
	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
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
