package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"skynest/config"
	"skynest/infras/otel/mocks"
	branchMocks "skynest/internal/domains/branch/mocks"
	roomMocks "skynest/internal/domains/room/mocks"
	"skynest/internal/domains/room/model"
	"skynest/internal/domains/room/model/dto"
	"skynest/internal/domains/room/service"
	roomTypeMocks "skynest/internal/domains/roomtype/mocks"
	cacheMocks "skynest/shared/cache/mocks"
	"skynest/shared/constant"
	gDto "skynest/shared/dto"
	"skynest/shared/failure"
)

type roomFixture struct {
	svc          service.Room
	repo         *roomMocks.MockRoom
	branchRepo   *branchMocks.MockBranch
	roomTypeRepo *roomTypeMocks.MockRoomType
}

func newRoomFixture(ctrl *gomock.Controller) roomFixture {
	repo := roomMocks.NewMockRoom(ctrl)
	branchRepo := branchMocks.NewMockBranch(ctrl)
	roomTypeRepo := roomTypeMocks.NewMockRoomType(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return roomFixture{
		svc:          service.New(repo, branchRepo, roomTypeRepo, cfg, mockCache, mockOtel),
		repo:         repo,
		branchRepo:   branchRepo,
		roomTypeRepo: roomTypeRepo,
	}
}

func adminContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func TestRoomService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newRoomFixture(ctrl)

	req := dto.CreateRoomRequest{
		BranchID:   "branch-id",
		RoomTypeID: "room-type-id",
		RoomNumber: "R101",
		Floor:      1,
	}

	t.Run("successful creation", func(t *testing.T) {
		fixture.branchRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		fixture.roomTypeRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		fixture.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		fixture.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, room model.Room) error {
				assert.Equal(t, constant.RoomStatusAvailable, room.Status)
				assert.Equal(t, "R101", room.RoomNumber)
				assert.Equal(t, "admin-id", room.CreatedBy)

				return nil
			})

		err := fixture.svc.Create(adminContext(), req)

		assert.NoError(t, err)
	})

	t.Run("branch does not exist", func(t *testing.T) {
		fixture.branchRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := fixture.svc.Create(adminContext(), req)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("room type does not exist", func(t *testing.T) {
		fixture.branchRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		fixture.roomTypeRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := fixture.svc.Create(adminContext(), req)

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("duplicate room number within the branch", func(t *testing.T) {
		fixture.branchRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		fixture.roomTypeRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		fixture.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := fixture.svc.Create(adminContext(), req)

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}

func TestRoomService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newRoomFixture(ctrl)

	t.Run("successful get", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{ID: "room-id", RoomNumber: "R101", Status: constant.RoomStatusAvailable}, nil)

		res, err := fixture.svc.Get(adminContext(), "room-id")

		assert.NoError(t, err)
		assert.Equal(t, "room-id", res.ID)
	})

	t.Run("room not found", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{}, nil)

		_, err := fixture.svc.Get(adminContext(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestRoomService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newRoomFixture(ctrl)

	t.Run("successful listing", func(t *testing.T) {
		fixture.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(2, nil)

		fixture.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Room{
				{ID: "room-1", RoomNumber: "R101"},
				{ID: "room-2", RoomNumber: "R102"},
			}, nil)

		res, err := fixture.svc.GetAll(adminContext(), gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Equal(t, 2, res.TotalData)
		assert.Len(t, res.Rooms, 2)
	})
}

func TestRoomService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newRoomFixture(ctrl)

	req := dto.UpdateRoomRequest{RoomNumber: "R105"}

	t.Run("successful update", func(t *testing.T) {
		fixture.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		fixture.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "R105", update[model.FieldRoomNumber])
				assert.Equal(t, "admin-id", update[constant.FieldModifiedBy])

				return nil
			})

		err := fixture.svc.Update(adminContext(), req, "room-id")

		assert.NoError(t, err)
	})

	t.Run("empty update rejected", func(t *testing.T) {
		err := fixture.svc.Update(adminContext(), dto.UpdateRoomRequest{}, "room-id")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("room not found", func(t *testing.T) {
		fixture.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := fixture.svc.Update(adminContext(), req, "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestRoomService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newRoomFixture(ctrl)

	t.Run("housekeeping flip to cleaning", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{ID: "room-id", Status: constant.RoomStatusAvailable}, nil)

		fixture.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, constant.RoomStatusCleaning, update[model.FieldStatus])

				return nil
			})

		err := fixture.svc.UpdateStatus(adminContext(), dto.UpdateRoomStatusRequest{Status: constant.RoomStatusCleaning}, "room-id")

		assert.NoError(t, err)
	})

	t.Run("occupied can only come from check-in", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{ID: "room-id", Status: constant.RoomStatusAvailable}, nil)

		err := fixture.svc.UpdateStatus(adminContext(), dto.UpdateRoomStatusRequest{Status: constant.RoomStatusOccupied}, "room-id")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("occupied room refuses manual flips", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{ID: "room-id", Status: constant.RoomStatusOccupied}, nil)

		err := fixture.svc.UpdateStatus(adminContext(), dto.UpdateRoomStatusRequest{Status: constant.RoomStatusCleaning}, "room-id")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("room not found", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{}, nil)

		err := fixture.svc.UpdateStatus(adminContext(), dto.UpdateRoomStatusRequest{Status: constant.RoomStatusCleaning}, "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestRoomService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newRoomFixture(ctrl)

	t.Run("successful delete", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{ID: "room-id", Status: constant.RoomStatusAvailable}, nil)

		fixture.repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		err := fixture.svc.Delete(adminContext(), "room-id")

		assert.NoError(t, err)
	})

	t.Run("occupied room cannot be deleted", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{ID: "room-id", Status: constant.RoomStatusOccupied}, nil)

		err := fixture.svc.Delete(adminContext(), "room-id")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("room not found", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Room{}, nil)

		err := fixture.svc.Delete(adminContext(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
