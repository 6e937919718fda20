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
	maintenanceMocks "skynest/internal/domains/maintenance/mocks"
	"skynest/internal/domains/maintenance/model"
	"skynest/internal/domains/maintenance/model/dto"
	"skynest/internal/domains/maintenance/service"
	roomMocks "skynest/internal/domains/room/mocks"
	roomModel "skynest/internal/domains/room/model"
	userMocks "skynest/internal/domains/user/mocks"
	userModel "skynest/internal/domains/user/model"
	cacheMocks "skynest/shared/cache/mocks"
	"skynest/shared/constant"
	"skynest/shared/failure"
)

type maintenanceFixture struct {
	svc      service.Maintenance
	repo     *maintenanceMocks.MockTask
	roomRepo *roomMocks.MockRoom
	userRepo *userMocks.MockUser
	dbMock   sqlmock.Sqlmock
}

func newMaintenanceFixture(t *testing.T, ctrl *gomock.Controller) maintenanceFixture {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	assert.NoError(t, err)

	conn := &postgres.Connection{
		Read:  sqlx.NewDb(db, "sqlmock"),
		Write: sqlx.NewDb(db, "sqlmock"),
	}

	repo := maintenanceMocks.NewMockTask(ctrl)
	roomRepo := roomMocks.NewMockRoom(ctrl)
	userRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(repo, roomRepo, userRepo, conn, cfg, mockCache, mockOtel)

	return maintenanceFixture{
		svc:      svc,
		repo:     repo,
		roomRepo: roomRepo,
		userRepo: userRepo,
		dbMock:   dbMock,
	}
}

func staffContext(userID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleStaff)
}

func TestMaintenanceService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newMaintenanceFixture(t, ctrl)

	req := dto.CreateTaskRequest{
		RoomID:   "room-id",
		Title:    "Broken shower",
		Priority: "high",
	}

	t.Run("successful creation", func(t *testing.T) {
		fixture.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{ID: "room-id", BranchID: "branch-id"}, nil)

		fixture.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, task model.Task) error {
				assert.Equal(t, constant.TaskStatusPending, task.Status)
				assert.Equal(t, "branch-id", task.BranchID)
				assert.Equal(t, "staff-id", task.ReportedBy)

				return nil
			})

		res, err := fixture.svc.Create(staffContext("staff-id"), req)

		assert.NoError(t, err)
		assert.Equal(t, constant.TaskStatusPending, res.Status)
	})

	t.Run("room not found", func(t *testing.T) {
		fixture.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{}, nil)

		_, err := fixture.svc.Create(staffContext("staff-id"), req)

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestMaintenanceService_Assign(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newMaintenanceFixture(t, ctrl)

	req := dto.AssignTaskRequest{AssigneeID: "assignee-id"}

	t.Run("successful assignment", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Task{ID: "task-id", Status: constant.TaskStatusPending}, nil)

		fixture.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "assignee-id", Role: constant.RoleStaff}, nil)

		fixture.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		err := fixture.svc.Assign(staffContext("admin-id"), req, "task-id")

		assert.NoError(t, err)
	})

	t.Run("closed task cannot be assigned", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Task{ID: "task-id", Status: constant.TaskStatusCompleted}, nil)

		err := fixture.svc.Assign(staffContext("admin-id"), req, "task-id")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("guest cannot be the assignee", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Task{ID: "task-id", Status: constant.TaskStatusPending}, nil)

		fixture.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{ID: "assignee-id", Role: constant.RoleGuest}, nil)

		err := fixture.svc.Assign(staffContext("admin-id"), req, "task-id")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("assignee not found", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Task{ID: "task-id", Status: constant.TaskStatusPending}, nil)

		fixture.userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{}, nil)

		err := fixture.svc.Assign(staffContext("admin-id"), req, "task-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestMaintenanceService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newMaintenanceFixture(t, ctrl)

	t.Run("starting work parks the room", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Task{ID: "task-id", RoomID: "room-id", Status: constant.TaskStatusPending}, nil)

		fixture.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{ID: "room-id", Status: constant.RoomStatusAvailable}, nil)

		fixture.dbMock.ExpectBegin()

		fixture.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, update map[string]any, _ any) error {
				// Starting work with no assignee claims the task for the caller.
				assert.Equal(t, "staff-id", update[model.FieldAssigneeID])

				return nil
			})

		fixture.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, update map[string]any, _ any) error {
				assert.Equal(t, constant.RoomStatusMaintenance, update[roomModel.FieldStatus])

				return nil
			})

		fixture.dbMock.ExpectCommit()

		err := fixture.svc.UpdateStatus(staffContext("staff-id"), dto.UpdateTaskStatusRequest{Status: constant.TaskStatusInProgress}, "task-id")

		assert.NoError(t, err)
	})

	t.Run("completing work releases the room", func(t *testing.T) {
		assignee := "assignee-id"

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Task{ID: "task-id", RoomID: "room-id", Status: constant.TaskStatusInProgress, AssigneeID: &assignee}, nil)

		fixture.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{ID: "room-id", Status: constant.RoomStatusMaintenance}, nil)

		fixture.dbMock.ExpectBegin()

		fixture.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, update map[string]any, _ any) error {
				assert.Equal(t, "fixed leak", update[model.FieldNotes])
				assert.NotEmpty(t, update[model.FieldResolvedAt])

				return nil
			})

		fixture.repo.EXPECT().
			CountOpenForRoomTx(gomock.Any(), gomock.Any(), "room-id", "task-id").
			Return(0, nil)

		fixture.roomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, update map[string]any, _ any) error {
				assert.Equal(t, constant.RoomStatusAvailable, update[roomModel.FieldStatus])

				return nil
			})

		fixture.dbMock.ExpectCommit()

		err := fixture.svc.UpdateStatus(staffContext("assignee-id"), dto.UpdateTaskStatusRequest{Status: constant.TaskStatusCompleted, Notes: "fixed leak"}, "task-id")

		assert.NoError(t, err)
	})

	t.Run("room stays parked while another task is open", func(t *testing.T) {
		assignee := "assignee-id"

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Task{ID: "task-id", RoomID: "room-id", Status: constant.TaskStatusInProgress, AssigneeID: &assignee}, nil)

		fixture.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{ID: "room-id", Status: constant.RoomStatusMaintenance}, nil)

		fixture.dbMock.ExpectBegin()

		fixture.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		fixture.repo.EXPECT().
			CountOpenForRoomTx(gomock.Any(), gomock.Any(), "room-id", "task-id").
			Return(1, nil)

		fixture.dbMock.ExpectCommit()

		err := fixture.svc.UpdateStatus(staffContext("assignee-id"), dto.UpdateTaskStatusRequest{Status: constant.TaskStatusCompleted, Notes: "fixed leak"}, "task-id")

		assert.NoError(t, err)
	})

	t.Run("completing without resolution notes rejected", func(t *testing.T) {
		assignee := "assignee-id"

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Task{ID: "task-id", RoomID: "room-id", Status: constant.TaskStatusInProgress, AssigneeID: &assignee}, nil)

		err := fixture.svc.UpdateStatus(staffContext("assignee-id"), dto.UpdateTaskStatusRequest{Status: constant.TaskStatusCompleted}, "task-id")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("only the assignee may advance the task", func(t *testing.T) {
		assignee := "assignee-id"

		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Task{ID: "task-id", RoomID: "room-id", Status: constant.TaskStatusInProgress, AssigneeID: &assignee}, nil)

		err := fixture.svc.UpdateStatus(staffContext("another-staff"), dto.UpdateTaskStatusRequest{Status: constant.TaskStatusCompleted, Notes: "fixed leak"}, "task-id")

		assert.Error(t, err)
		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("cancelling leaves a non-parked room alone", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Task{ID: "task-id", RoomID: "room-id", Status: constant.TaskStatusPending}, nil)

		fixture.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{ID: "room-id", Status: constant.RoomStatusCleaning}, nil)

		fixture.dbMock.ExpectBegin()

		fixture.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		fixture.dbMock.ExpectCommit()

		err := fixture.svc.UpdateStatus(staffContext("staff-id"), dto.UpdateTaskStatusRequest{Status: constant.TaskStatusCancelled}, "task-id")

		assert.NoError(t, err)
	})

	t.Run("occupied room blocks starting work", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Task{ID: "task-id", RoomID: "room-id", Status: constant.TaskStatusPending}, nil)

		fixture.roomRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(roomModel.Room{ID: "room-id", Status: constant.RoomStatusOccupied}, nil)

		err := fixture.svc.UpdateStatus(staffContext("staff-id"), dto.UpdateTaskStatusRequest{Status: constant.TaskStatusInProgress}, "task-id")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("invalid transition", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Task{ID: "task-id", RoomID: "room-id", Status: constant.TaskStatusPending}, nil)

		err := fixture.svc.UpdateStatus(staffContext("staff-id"), dto.UpdateTaskStatusRequest{Status: constant.TaskStatusCompleted}, "task-id")

		assert.Error(t, err)
		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("task not found", func(t *testing.T) {
		fixture.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Task{}, nil)

		err := fixture.svc.UpdateStatus(staffContext("staff-id"), dto.UpdateTaskStatusRequest{Status: constant.TaskStatusInProgress}, "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
