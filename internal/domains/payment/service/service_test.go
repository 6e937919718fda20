package service_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"skynest/config"
	"skynest/infras/otel/mocks"
	"skynest/infras/postgres"
	bookingMocks "skynest/internal/domains/booking/mocks"
	bookingModel "skynest/internal/domains/booking/model"
	guestServiceMocks "skynest/internal/domains/guestservice/mocks"
	paymentMocks "skynest/internal/domains/payment/mocks"
	"skynest/internal/domains/payment/model"
	"skynest/internal/domains/payment/model/dto"
	"skynest/internal/domains/payment/service"
	eventMocks "skynest/internal/events/mocks"
	"skynest/shared/constant"
	gDto "skynest/shared/dto"
	"skynest/shared/failure"
)

type paymentFixture struct {
	svc         service.Payment
	repo        *paymentMocks.MockPayment
	bookingRepo *bookingMocks.MockBooking
	requestRepo *guestServiceMocks.MockRequest
	dbMock      sqlmock.Sqlmock
}

func newPaymentFixture(t *testing.T, ctrl *gomock.Controller) paymentFixture {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)

	conn := &postgres.Connection{
		Read:  sqlx.NewDb(db, "sqlmock"),
		Write: sqlx.NewDb(db, "sqlmock"),
	}

	repo := paymentMocks.NewMockPayment(ctrl)
	bookingRepo := bookingMocks.NewMockBooking(ctrl)
	requestRepo := guestServiceMocks.NewMockRequest(ctrl)
	publisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	publisher.EXPECT().PublishBookingEvent(gomock.Any(), gomock.Any()).AnyTimes()

	cfg := &config.Config{}

	svc := service.New(repo, bookingRepo, requestRepo, conn, cfg, mockOtel, publisher)

	return paymentFixture{
		svc:         svc,
		repo:        repo,
		bookingRepo: bookingRepo,
		requestRepo: requestRepo,
		dbMock:      dbMock,
	}
}

func staffContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleStaff)
}

func guestContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleGuest)
}

func TestPaymentService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newPaymentFixture(t, ctrl)

	pendingBooking := bookingModel.Booking{
		ID:          "booking-id",
		GuestID:     "guest-id",
		Status:      constant.BookingStatusPending,
		TotalAmount: 200,
	}

	req := dto.CreatePaymentRequest{Amount: 200, Method: model.MethodCard}

	t.Run("full payment confirms the booking", func(t *testing.T) {
		fixture.bookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking, nil)

		fixture.requestRepo.EXPECT().
			SumApprovedCharges(gomock.Any(), "booking-id").
			Return(0.0, nil)

		fixture.dbMock.ExpectBegin()

		fixture.repo.EXPECT().
			SumCompletedTx(gomock.Any(), gomock.Any(), "booking-id").
			Return(0.0, nil)

		fixture.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, payment model.Payment) error {
				assert.Equal(t, constant.PaymentStatusCompleted, payment.Status)
				assert.Equal(t, "booking-id", payment.BookingID)

				return nil
			})

		fixture.bookingRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, update map[string]any, _ any) error {
				assert.Equal(t, constant.BookingStatusConfirmed, update["status"])

				return nil
			})

		fixture.dbMock.ExpectCommit()

		res, err := fixture.svc.Create(guestContext("guest-id"), req, "booking-id")

		assert.NoError(t, err)
		assert.Equal(t, float64(200), res.Amount)
	})

	t.Run("partial payment leaves the booking pending", func(t *testing.T) {
		fixture.bookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking, nil)

		fixture.requestRepo.EXPECT().
			SumApprovedCharges(gomock.Any(), "booking-id").
			Return(0.0, nil)

		fixture.dbMock.ExpectBegin()

		fixture.repo.EXPECT().
			SumCompletedTx(gomock.Any(), gomock.Any(), "booking-id").
			Return(0.0, nil)

		fixture.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		fixture.dbMock.ExpectCommit()

		partial := dto.CreatePaymentRequest{Amount: 100, Method: model.MethodCash}

		_, err := fixture.svc.Create(guestContext("guest-id"), partial, "booking-id")

		assert.NoError(t, err)
	})

	t.Run("payment above the outstanding balance rejected", func(t *testing.T) {
		fixture.bookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking, nil)

		fixture.requestRepo.EXPECT().
			SumApprovedCharges(gomock.Any(), "booking-id").
			Return(0.0, nil)

		fixture.dbMock.ExpectBegin()

		fixture.repo.EXPECT().
			SumCompletedTx(gomock.Any(), gomock.Any(), "booking-id").
			Return(100.0, nil)

		fixture.dbMock.ExpectRollback()

		over := dto.CreatePaymentRequest{Amount: 150, Method: model.MethodCard}

		_, err := fixture.svc.Create(guestContext("guest-id"), over, "booking-id")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("cancelled booking rejects payments", func(t *testing.T) {
		cancelled := pendingBooking
		cancelled.Status = constant.BookingStatusCancelled

		fixture.bookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(cancelled, nil)

		_, err := fixture.svc.Create(guestContext("guest-id"), req, "booking-id")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("guest blocked from paying another guest's booking", func(t *testing.T) {
		fixture.bookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pendingBooking, nil)

		_, err := fixture.svc.Create(guestContext("other-guest"), req, "booking-id")

		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("booking not found", func(t *testing.T) {
		fixture.bookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(bookingModel.Booking{}, nil)

		_, err := fixture.svc.Create(staffContext("staff-id"), req, "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestPaymentService_Folio(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newPaymentFixture(t, ctrl)

	booking := bookingModel.Booking{
		ID:          "booking-id",
		GuestID:     "guest-id",
		Status:      constant.BookingStatusCheckedIn,
		TotalAmount: 200,
	}

	t.Run("folio sums room, charges and payments", func(t *testing.T) {
		fixture.bookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		fixture.repo.EXPECT().
			SumCompleted(gomock.Any(), "booking-id").
			Return(150.0, nil)

		fixture.requestRepo.EXPECT().
			SumApprovedCharges(gomock.Any(), "booking-id").
			Return(30.0, nil)

		fixture.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Payment{{ID: "payment-id", BookingID: "booking-id", Amount: 150}}, nil)

		res, err := fixture.svc.Folio(guestContext("guest-id"), "booking-id")

		assert.NoError(t, err)
		assert.Equal(t, float64(200), res.RoomTotal)
		assert.Equal(t, float64(30), res.ServiceCharges)
		assert.Equal(t, float64(150), res.Paid)
		assert.Equal(t, float64(80), res.Outstanding)
		assert.Len(t, res.Payments, 1)
	})

	t.Run("overpayment never reports negative outstanding", func(t *testing.T) {
		fixture.bookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		fixture.repo.EXPECT().
			SumCompleted(gomock.Any(), "booking-id").
			Return(500.0, nil)

		fixture.requestRepo.EXPECT().
			SumApprovedCharges(gomock.Any(), "booking-id").
			Return(0.0, nil)

		fixture.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Payment{}, nil)

		res, err := fixture.svc.Folio(guestContext("guest-id"), "booking-id")

		assert.NoError(t, err)
		assert.Equal(t, float64(0), res.Outstanding)
	})
}

func TestPaymentService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newPaymentFixture(t, ctrl)

	t.Run("successful listing", func(t *testing.T) {
		fixture.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		fixture.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Payment{{ID: "payment-id", Amount: 100}}, nil)

		res, err := fixture.svc.GetAll(staffContext("staff-id"), gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Len(t, res.Payments, 1)
	})
}
