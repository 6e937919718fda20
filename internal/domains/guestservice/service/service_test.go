package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"skynest/config"
	"skynest/infras/otel/mocks"
	bookingMocks "skynest/internal/domains/booking/mocks"
	bookingModel "skynest/internal/domains/booking/model"
	guestServiceMocks "skynest/internal/domains/guestservice/mocks"
	"skynest/internal/domains/guestservice/model"
	"skynest/internal/domains/guestservice/model/dto"
	"skynest/internal/domains/guestservice/service"
	cacheMocks "skynest/shared/cache/mocks"
	"skynest/shared/constant"
	gDto "skynest/shared/dto"
	"skynest/shared/failure"
)

type guestServiceFixture struct {
	svc         service.GuestService
	serviceRepo *guestServiceMocks.MockService
	requestRepo *guestServiceMocks.MockRequest
	bookingRepo *bookingMocks.MockBooking
}

func newGuestServiceFixture(ctrl *gomock.Controller) guestServiceFixture {
	serviceRepo := guestServiceMocks.NewMockService(ctrl)
	requestRepo := guestServiceMocks.NewMockRequest(ctrl)
	bookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}

	svc := service.New(serviceRepo, requestRepo, bookingRepo, cfg, mockCache, mockOtel)

	return guestServiceFixture{
		svc:         svc,
		serviceRepo: serviceRepo,
		requestRepo: requestRepo,
		bookingRepo: bookingRepo,
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

func TestGuestService_CreateService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newGuestServiceFixture(ctrl)

	req := dto.CreateServiceRequest{
		Name:        "Laundry",
		Description: "Same day laundry",
		Price:       15,
	}

	t.Run("successful creation", func(t *testing.T) {
		fixture.serviceRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		fixture.serviceRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, svc model.Service) error {
				assert.Equal(t, "Laundry", svc.Name)
				assert.True(t, svc.Active)

				return nil
			})

		err := fixture.svc.CreateService(staffContext("admin-id"), req)

		assert.NoError(t, err)
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		fixture.serviceRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := fixture.svc.CreateService(staffContext("admin-id"), req)

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestGuestService_CreateRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newGuestServiceFixture(ctrl)

	checkedIn := bookingModel.Booking{
		ID:      "booking-id",
		GuestID: "guest-id",
		Status:  constant.BookingStatusCheckedIn,
	}

	activeService := model.Service{
		ID:     "service-id",
		Name:   "Laundry",
		Price:  25,
		Active: true,
	}

	req := dto.CreateRequestRequest{
		BookingID: "booking-id",
		ServiceID: "service-id",
		Quantity:  2,
	}

	t.Run("order snapshots the catalog price", func(t *testing.T) {
		fixture.bookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(checkedIn, nil)

		fixture.serviceRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(activeService, nil)

		fixture.requestRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, request model.Request) error {
				assert.Equal(t, float64(25), request.Charge)
				assert.Equal(t, constant.TaskStatusPending, request.Status)
				assert.Equal(t, "guest-id", request.GuestID)

				return nil
			})

		res, err := fixture.svc.CreateRequest(guestContext("guest-id"), req)

		assert.NoError(t, err)
		assert.Equal(t, float64(50), res.Total)
	})

	t.Run("guest blocked from another guest's booking", func(t *testing.T) {
		fixture.bookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(checkedIn, nil)

		_, err := fixture.svc.CreateRequest(guestContext("other-guest"), req)

		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("booking must be checked in", func(t *testing.T) {
		confirmed := checkedIn
		confirmed.Status = constant.BookingStatusConfirmed

		fixture.bookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(confirmed, nil)

		_, err := fixture.svc.CreateRequest(guestContext("guest-id"), req)

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("inactive service rejected", func(t *testing.T) {
		inactive := activeService
		inactive.Active = false

		fixture.bookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(checkedIn, nil)

		fixture.serviceRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(inactive, nil)

		_, err := fixture.svc.CreateRequest(guestContext("guest-id"), req)

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("service not found", func(t *testing.T) {
		fixture.bookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(checkedIn, nil)

		fixture.serviceRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Service{}, nil)

		_, err := fixture.svc.CreateRequest(guestContext("guest-id"), req)

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("booking not found", func(t *testing.T) {
		fixture.bookingRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(bookingModel.Booking{}, nil)

		_, err := fixture.svc.CreateRequest(guestContext("guest-id"), req)

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestGuestService_UpdateRequestStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newGuestServiceFixture(ctrl)

	pending := model.Request{
		ID:        "request-id",
		BookingID: "booking-id",
		GuestID:   "guest-id",
		Status:    constant.TaskStatusPending,
	}

	t.Run("picking up a request claims it", func(t *testing.T) {
		fixture.requestRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pending, nil)

		fixture.requestRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.TaskStatusInProgress, update[model.RequestFieldStatus])
				assert.Equal(t, "staff-id", update[model.RequestFieldAssigneeID])

				return nil
			})

		err := fixture.svc.UpdateRequestStatus(staffContext("staff-id"), dto.UpdateRequestStatusRequest{Status: constant.TaskStatusInProgress}, "request-id")

		assert.NoError(t, err)
	})

	t.Run("completing keeps the original assignee", func(t *testing.T) {
		inProgress := pending
		inProgress.Status = constant.TaskStatusInProgress

		fixture.requestRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(inProgress, nil)

		fixture.requestRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.TaskStatusCompleted, update[model.RequestFieldStatus])
				assert.NotContains(t, update, model.RequestFieldAssigneeID)

				return nil
			})

		err := fixture.svc.UpdateRequestStatus(staffContext("another-staff"), dto.UpdateRequestStatusRequest{Status: constant.TaskStatusCompleted}, "request-id")

		assert.NoError(t, err)
	})

	t.Run("completed request is final", func(t *testing.T) {
		completed := pending
		completed.Status = constant.TaskStatusCompleted

		fixture.requestRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(completed, nil)

		err := fixture.svc.UpdateRequestStatus(staffContext("staff-id"), dto.UpdateRequestStatusRequest{Status: constant.TaskStatusCancelled}, "request-id")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("request not found", func(t *testing.T) {
		fixture.requestRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Request{}, nil)

		err := fixture.svc.UpdateRequestStatus(staffContext("staff-id"), dto.UpdateRequestStatusRequest{Status: constant.TaskStatusInProgress}, "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestGuestService_GetMyRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newGuestServiceFixture(ctrl)

	t.Run("scoped to the caller", func(t *testing.T) {
		fixture.requestRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				assert.Len(t, filter.Filters, 1)

				return 1, nil
			})

		fixture.requestRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Request{{ID: "request-id", GuestID: "guest-id", Quantity: 1, Charge: 25}}, nil)

		res, err := fixture.svc.GetMyRequests(guestContext("guest-id"), gDto.QueryParams{Limit: 10, Page: 1})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Len(t, res.Requests, 1)
	})
}
