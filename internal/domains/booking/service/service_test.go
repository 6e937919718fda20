package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"skynest/config"
	"skynest/infras/otel/mocks"
	"skynest/infras/postgres"
	bookingMocks "skynest/internal/domains/booking/mocks"
	"skynest/internal/domains/booking/model"
	"skynest/internal/domains/booking/model/dto"
	"skynest/internal/domains/booking/service"
	guestServiceMocks "skynest/internal/domains/guestservice/mocks"
	paymentMocks "skynest/internal/domains/payment/mocks"
	roomMocks "skynest/internal/domains/room/mocks"
	roomModel "skynest/internal/domains/room/model"
	roomTypeMocks "skynest/internal/domains/roomtype/mocks"
	roomTypeModel "skynest/internal/domains/roomtype/model"
	eventMocks "skynest/internal/events/mocks"
	cacheMocks "skynest/shared/cache/mocks"
	"skynest/shared/constant"
	"skynest/shared/failure"
)

type bookingFixture struct {
	svc          service.Booking
	repo         *bookingMocks.MockBooking
	roomRepo     *roomMocks.MockRoom
	roomTypeRepo *roomTypeMocks.MockRoomType
	paymentRepo  *paymentMocks.MockPayment
	requestRepo  *guestServiceMocks.MockRequest
	dbMock       sqlmock.Sqlmock
}

func newBookingFixture(t *testing.T, ctrl *gomock.Controller) bookingFixture {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)

	conn := &postgres.Connection{
		Read:  sqlx.NewDb(db, "sqlmock"),
		Write: sqlx.NewDb(db, "sqlmock"),
	}

	repo := bookingMocks.NewMockBooking(ctrl)
	roomRepo := roomMocks.NewMockRoom(ctrl)
	roomTypeRepo := roomTypeMocks.NewMockRoomType(ctrl)
	paymentRepo := paymentMocks.NewMockPayment(ctrl)
	requestRepo := guestServiceMocks.NewMockRequest(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	publisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	publisher.EXPECT().PublishBookingEvent(gomock.Any(), gomock.Any()).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(repo, roomRepo, roomTypeRepo, paymentRepo, requestRepo, conn, cfg, mockCache, mockOtel, publisher)

	return bookingFixture{
		svc:          svc,
		repo:         repo,
		roomRepo:     roomRepo,
		roomTypeRepo: roomTypeRepo,
		paymentRepo:  paymentRepo,
		requestRepo:  requestRepo,
		dbMock:       dbMock,
	}
}

func guestContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleGuest)
}

func staffContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleStaff)
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newBookingFixture(t, ctrl)

	room := roomModel.Room{
		ID:         "room-id",
		BranchID:   "branch-id",
		RoomTypeID: "room-type-id",
		Status:     constant.RoomStatusAvailable,
	}

	roomType := roomTypeModel.RoomType{
		ID:        "room-type-id",
		BasePrice: 100,
		Capacity:  2,
	}

	req := dto.CreateBookingRequest{
		RoomID:     "room-id",
		CheckIn:    "2031-01-10",
		CheckOut:   "2031-01-12",
		GuestCount: 2,
	}

	t.Run("successful creation", func(t *testing.T) {
		fixture.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(room, nil)

		fixture.roomTypeRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomType, nil)

		fixture.dbMock.ExpectBegin()

		fixture.roomRepo.EXPECT().
			LockTx(gomock.Any(), gomock.Any(), "room-id").
			Return(room, nil)

		fixture.repo.EXPECT().
			CountConflictsTx(gomock.Any(), gomock.Any(), "room-id", gomock.Any(), gomock.Any()).
			Return(0, nil)

		fixture.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
				assert.Equal(t, constant.BookingStatusPending, booking.Status)
				assert.Equal(t, float64(200), booking.TotalAmount)
				assert.Equal(t, "guest-id", booking.GuestID)

				return nil
			})

		fixture.dbMock.ExpectCommit()

		res, err := fixture.svc.Create(guestContext("guest-id"), req)

		assert.NoError(t, err)
		assert.Equal(t, constant.BookingStatusPending, res.Status)
		assert.Equal(t, 2, res.Nights)
	})

	t.Run("room already booked for the range", func(t *testing.T) {
		fixture.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(room, nil)

		fixture.roomTypeRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomType, nil)

		fixture.dbMock.ExpectBegin()

		fixture.roomRepo.EXPECT().
			LockTx(gomock.Any(), gomock.Any(), "room-id").
			Return(room, nil)

		fixture.repo.EXPECT().
			CountConflictsTx(gomock.Any(), gomock.Any(), "room-id", gomock.Any(), gomock.Any()).
			Return(1, nil)

		fixture.dbMock.ExpectRollback()

		_, err := fixture.svc.Create(guestContext("guest-id"), req)

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("room under maintenance", func(t *testing.T) {
		blocked := room
		blocked.Status = constant.RoomStatusMaintenance

		fixture.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(blocked, nil)

		_, err := fixture.svc.Create(guestContext("guest-id"), req)

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("guest count exceeds capacity", func(t *testing.T) {
		crowded := req
		crowded.GuestCount = 5

		fixture.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(room, nil)

		fixture.roomTypeRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomType, nil)

		_, err := fixture.svc.Create(guestContext("guest-id"), crowded)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("check-in in the past", func(t *testing.T) {
		stale := req
		stale.CheckIn = "2020-01-10"
		stale.CheckOut = "2020-01-12"

		_, err := fixture.svc.Create(guestContext("guest-id"), stale)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("check-out not after check-in", func(t *testing.T) {
		flipped := req
		flipped.CheckIn = "2031-01-12"
		flipped.CheckOut = "2031-01-10"

		_, err := fixture.svc.Create(guestContext("guest-id"), flipped)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("room does not exist", func(t *testing.T) {
		fixture.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{}, nil)

		_, err := fixture.svc.Create(guestContext("guest-id"), req)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newBookingFixture(t, ctrl)

	booking := model.Booking{
		ID:      "booking-id",
		GuestID: "guest-id",
		Status:  constant.BookingStatusPending,
	}

	t.Run("guest reads own booking", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		res, err := fixture.svc.Get(guestContext("guest-id"), "booking-id")

		assert.NoError(t, err)
		assert.Equal(t, "booking-id", res.ID)
	})

	t.Run("guest blocked from another guest's booking", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		_, err := fixture.svc.Get(guestContext("other-guest"), "booking-id")

		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("staff reads any booking", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		res, err := fixture.svc.Get(staffContext("staff-id"), "booking-id")

		assert.NoError(t, err)
		assert.Equal(t, "booking-id", res.ID)
	})

	t.Run("booking not found", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := fixture.svc.Get(staffContext("staff-id"), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newBookingFixture(t, ctrl)

	t.Run("pending booking cancelled", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-id", GuestID: "guest-id", Status: constant.BookingStatusPending}, nil)

		fixture.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := fixture.svc.Cancel(guestContext("guest-id"), "booking-id")

		assert.NoError(t, err)
	})

	t.Run("checked-in booking cannot be cancelled", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-id", GuestID: "guest-id", Status: constant.BookingStatusCheckedIn}, nil)

		err := fixture.svc.Cancel(guestContext("guest-id"), "booking-id")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestBookingService_CheckIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newBookingFixture(t, ctrl)

	t.Run("confirmed booking checked in", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-id", RoomID: "room-id", GuestID: "guest-id", Status: constant.BookingStatusConfirmed}, nil)

		fixture.dbMock.ExpectBegin()

		fixture.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		fixture.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, req map[string]any, _ any) error {
				assert.Equal(t, constant.RoomStatusOccupied, req[roomModel.FieldStatus])

				return nil
			})

		fixture.dbMock.ExpectCommit()

		err := fixture.svc.CheckIn(staffContext("staff-id"), "booking-id")

		assert.NoError(t, err)
	})

	t.Run("unpaid booking rejected", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-id", GuestID: "guest-id", Status: constant.BookingStatusPending}, nil)

		err := fixture.svc.CheckIn(staffContext("staff-id"), "booking-id")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestBookingService_CheckOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newBookingFixture(t, ctrl)

	booking := model.Booking{
		ID:          "booking-id",
		RoomID:      "room-id",
		GuestID:     "guest-id",
		Status:      constant.BookingStatusCheckedIn,
		TotalAmount: 200,
	}

	t.Run("settled folio checks out", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		fixture.paymentRepo.EXPECT().
			SumCompleted(gomock.Any(), "booking-id").
			Return(250.0, nil)

		fixture.requestRepo.EXPECT().
			SumApprovedCharges(gomock.Any(), "booking-id").
			Return(50.0, nil)

		fixture.dbMock.ExpectBegin()

		fixture.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		fixture.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, req map[string]any, _ any) error {
				assert.Equal(t, constant.RoomStatusCleaning, req[roomModel.FieldStatus])

				return nil
			})

		fixture.dbMock.ExpectCommit()

		err := fixture.svc.CheckOut(staffContext("staff-id"), "booking-id")

		assert.NoError(t, err)
	})

	t.Run("outstanding balance blocks check-out", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(booking, nil)

		fixture.paymentRepo.EXPECT().
			SumCompleted(gomock.Any(), "booking-id").
			Return(200.0, nil)

		fixture.requestRepo.EXPECT().
			SumApprovedCharges(gomock.Any(), "booking-id").
			Return(50.0, nil)

		err := fixture.svc.CheckOut(staffContext("staff-id"), "booking-id")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("not checked in", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-id", GuestID: "guest-id", Status: constant.BookingStatusConfirmed}, nil)

		err := fixture.svc.CheckOut(staffContext("staff-id"), "booking-id")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestBookingService_NoShow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newBookingFixture(t, ctrl)

	t.Run("missed check-in marked no-show", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{
				ID:      "booking-id",
				GuestID: "guest-id",
				Status:  constant.BookingStatusConfirmed,
				CheckIn: time.Date(2020, 1, 10, 0, 0, 0, 0, time.UTC),
			}, nil)

		fixture.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := fixture.svc.NoShow(staffContext("staff-id"), "booking-id")

		assert.NoError(t, err)
	})

	t.Run("too early to mark no-show", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{
				ID:      "booking-id",
				GuestID: "guest-id",
				Status:  constant.BookingStatusConfirmed,
				CheckIn: time.Date(2031, 1, 10, 0, 0, 0, 0, time.UTC),
			}, nil)

		err := fixture.svc.NoShow(staffContext("staff-id"), "booking-id")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestBookingService_Availability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newBookingFixture(t, ctrl)

	t.Run("rows mapped with nights and totals", func(t *testing.T) {
		fixture.repo.EXPECT().
			FindAvailability(gomock.Any(), "branch-id", gomock.Any(), gomock.Any()).
			Return([]model.AvailabilityRow{
				{RoomTypeID: "room-type-id", RoomTypeName: "Deluxe", BranchID: "branch-id", BasePrice: 100, Capacity: 2, AvailableRooms: 3},
			}, nil)

		res, err := fixture.svc.Availability(context.Background(), dto.AvailabilityRequest{
			BranchID: "branch-id",
			CheckIn:  "2031-01-10",
			CheckOut: "2031-01-12",
		})

		assert.NoError(t, err)
		assert.Len(t, res.RoomTypes, 1)
		assert.Equal(t, 2, res.Nights)
		assert.Equal(t, float64(200), res.RoomTypes[0].TotalForStay)
	})

	t.Run("invalid range", func(t *testing.T) {
		_, err := fixture.svc.Availability(context.Background(), dto.AvailabilityRequest{
			BranchID: "branch-id",
			CheckIn:  "2031-01-12",
			CheckOut: "2031-01-10",
		})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestBookingService_RoomAvailability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newBookingFixture(t, ctrl)

	req := dto.RoomAvailabilityRequest{
		RoomID:   "room-id",
		CheckIn:  "2031-01-10",
		CheckOut: "2031-01-12",
	}

	t.Run("free room reports available with the stay total", func(t *testing.T) {
		fixture.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{ID: "room-id", RoomTypeID: "room-type-id"}, nil)

		fixture.roomTypeRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomTypeModel.RoomType{ID: "room-type-id", BasePrice: 100}, nil)

		fixture.repo.EXPECT().
			FindConflicts(gomock.Any(), "room-id", gomock.Any(), gomock.Any()).
			Return([]model.Booking{}, nil)

		res, err := fixture.svc.RoomAvailability(context.Background(), req)

		assert.NoError(t, err)
		assert.True(t, res.Available)
		assert.Equal(t, 2, res.Nights)
		assert.Equal(t, float64(200), res.TotalAmount)
		assert.Empty(t, res.Conflicts)
	})

	t.Run("taken room lists the blocking bookings", func(t *testing.T) {
		fixture.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{ID: "room-id", RoomTypeID: "room-type-id"}, nil)

		fixture.roomTypeRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomTypeModel.RoomType{ID: "room-type-id", BasePrice: 100}, nil)

		fixture.repo.EXPECT().
			FindConflicts(gomock.Any(), "room-id", gomock.Any(), gomock.Any()).
			Return([]model.Booking{
				{
					ID:       "booking-id",
					RoomID:   "room-id",
					Status:   constant.BookingStatusConfirmed,
					CheckIn:  time.Date(2031, 1, 11, 0, 0, 0, 0, time.UTC),
					CheckOut: time.Date(2031, 1, 13, 0, 0, 0, 0, time.UTC),
				},
			}, nil)

		res, err := fixture.svc.RoomAvailability(context.Background(), req)

		assert.NoError(t, err)
		assert.False(t, res.Available)
		assert.Len(t, res.Conflicts, 1)
		assert.Equal(t, "booking-id", res.Conflicts[0].ID)
	})

	t.Run("room not found", func(t *testing.T) {
		fixture.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{}, nil)

		_, err := fixture.svc.RoomAvailability(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("invalid range", func(t *testing.T) {
		_, err := fixture.svc.RoomAvailability(context.Background(), dto.RoomAvailabilityRequest{
			RoomID:   "room-id",
			CheckIn:  "2031-01-12",
			CheckOut: "2031-01-10",
		})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}
