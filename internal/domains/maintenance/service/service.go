package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"skynest/config"
	"skynest/infras/otel"
	"skynest/infras/postgres"
	"skynest/internal/domains/maintenance/model"
	"skynest/internal/domains/maintenance/model/dto"
	"skynest/internal/domains/maintenance/repository"
	roomModel "skynest/internal/domains/room/model"
	roomRepo "skynest/internal/domains/room/repository"
	userModel "skynest/internal/domains/user/model"
	userRepo "skynest/internal/domains/user/repository"
	"skynest/shared"
	"skynest/shared/cache"
	"skynest/shared/constant"
	gDto "skynest/shared/dto"
	"skynest/shared/failure"
	"skynest/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const cacheGetAllTasks = "maintenance_task:gets"

type Maintenance interface {
	Create(ctx context.Context, req dto.CreateTaskRequest) (dto.TaskResponse, error)
	Get(ctx context.Context, id string) (dto.TaskResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTasksResponse, error)
	Assign(ctx context.Context, req dto.AssignTaskRequest, id string) error
	UpdateStatus(ctx context.Context, req dto.UpdateTaskStatusRequest, id string) error
}

type serviceImpl struct {
	repo     repository.Task
	roomRepo roomRepo.Room
	userRepo userRepo.User
	db       *postgres.Connection
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(
	repo repository.Task,
	roomRepo roomRepo.Room,
	userRepo userRepo.User,
	db *postgres.Connection,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Maintenance {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		userRepo: userRepo,
		db:       db,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTaskRequest) (res dto.TaskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	task := req.ToModel(user, room.BranchID)
	if err = s.repo.Insert(ctx, task); err != nil {
		log.Error().Err(err).Msg("failed to create maintenance task")

		return res, fmt.Errorf("failed to create maintenance task: %w", err)
	}

	s.invalidate(ctx)

	res.FromModel(task)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TaskResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	task, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get maintenance task")

		return res, fmt.Errorf("failed to get maintenance task: %w", err)
	}

	if task.ID == constant.Empty {
		return res, failure.NotFound("maintenance task not found") // nolint:wrapcheck
	}

	res.FromModel(task)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTasksResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTasks, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count maintenance tasks")

		return res, fmt.Errorf("failed to count maintenance tasks: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get maintenance tasks")

		return res, fmt.Errorf("failed to get maintenance tasks: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save maintenance tasks to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Assign(ctx context.Context, req dto.AssignTaskRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Assign")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	task, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get maintenance task")

		return fmt.Errorf("failed to get maintenance task: %w", err)
	}

	if task.ID == constant.Empty {
		return failure.NotFound("maintenance task not found") // nolint:wrapcheck
	}

	if task.Status == constant.TaskStatusCompleted || task.Status == constant.TaskStatusCancelled {
		return failure.Conflict("cannot assign a closed task") // nolint:wrapcheck
	}

	assignee, err := s.userRepo.Get(ctx, shared.FilterByID(req.AssigneeID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get assignee")

		return fmt.Errorf("failed to get assignee: %w", err)
	}

	if assignee.ID == constant.Empty {
		return failure.NotFound("assignee not found") // nolint:wrapcheck
	}

	if assignee.Role == constant.RoleGuest {
		return failure.BadRequestFromString("assignee must be a staff member") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to assign maintenance task")

		return fmt.Errorf("failed to assign maintenance task: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

// UpdateStatus drives the task state machine and keeps the room in step.
// Starting work takes the room out of service, closing the task hands it back.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateTaskStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	task, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get maintenance task")

		return fmt.Errorf("failed to get maintenance task: %w", err)
	}

	if task.ID == constant.Empty {
		return failure.NotFound("maintenance task not found") // nolint:wrapcheck
	}

	if err := validTransition(task.Status, req.Status); err != nil {
		return err
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	// Moving a task forward is reserved for its assignee. Admins and
	// cancellations are exempt.
	if role != constant.RoleAdmin && req.Status != constant.TaskStatusCancelled &&
		task.AssigneeID != nil && *task.AssigneeID != user {
		return failure.ResourceRestrictedError
	}

	if req.Status == constant.TaskStatusCompleted && req.Notes == constant.Empty {
		return failure.BadRequestFromString("resolution notes are required to complete a task") // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(task.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if req.Status == constant.TaskStatusInProgress && room.Status == constant.RoomStatusOccupied {
		return failure.Conflict("room is occupied, check the guest out before starting work") // nolint:wrapcheck
	}

	err = s.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		updatedFields := shared.TransformFields(req, user)
		if req.Status == constant.TaskStatusInProgress && task.AssigneeID == nil {
			updatedFields[model.FieldAssigneeID] = user
		}

		if req.Status == constant.TaskStatusCompleted {
			updatedFields[model.FieldResolvedAt] = timezone.Format(timezone.Now(), constant.DateFormat)
		}

		if err := s.repo.UpdateTx(ctx, tx, updatedFields, filter); err != nil {
			return fmt.Errorf("failed to update maintenance task: %w", err)
		}

		roomStatus := constant.Empty

		switch {
		case req.Status == constant.TaskStatusInProgress:
			roomStatus = constant.RoomStatusMaintenance
		case room.Status == constant.RoomStatusMaintenance:
			// Closing the task releases the room only if this flow parked it
			// and no other open task still references the room.
			open, err := s.repo.CountOpenForRoomTx(ctx, tx, task.RoomID, task.ID)
			if err != nil {
				return fmt.Errorf("failed to count open maintenance tasks: %w", err)
			}

			if open == 0 {
				roomStatus = constant.RoomStatusAvailable
			}
		}

		if roomStatus == constant.Empty {
			return nil
		}

		roomUpdate := map[string]any{
			roomModel.FieldStatus:    roomStatus,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}
		if err := s.roomRepo.UpdateTx(ctx, tx, roomUpdate, shared.FilterByID(task.RoomID, roomModel.FieldID, roomModel.TableName)); err != nil {
			return fmt.Errorf("failed to update room status: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update maintenance task status")

		return err
	}

	s.invalidate(ctx)

	return nil
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

	return failure.Conflict(fmt.Sprintf("cannot move task from %s to %s", from, to)) // nolint:wrapcheck
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTasks)
	}()
}
