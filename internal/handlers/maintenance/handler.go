package maintenance

import (
	"net/http"

	"skynest/infras/otel"
	"skynest/internal/domains/maintenance/model"
	"skynest/internal/domains/maintenance/model/dto"
	"skynest/internal/domains/maintenance/service"
	"skynest/shared/constant"
	gDto "skynest/shared/dto"
	"skynest/shared/validator"
	"skynest/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Maintenance
	otel    otel.Otel
}

func New(service service.Maintenance, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/maintenance", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateTask)
		routerGroup.Get("/", handler.GetTasks)
		routerGroup.Get("/{id}", handler.GetTaskByID)
		routerGroup.Patch("/{id}/status", handler.UpdateTaskStatus)
		routerGroup.Patch("/{id}/assign", handler.AssignTask)
	})
}

// CreateTask reports a maintenance issue on a room.
// @Summary Report a maintenance task
// @Description Create a maintenance task for a room with a priority.
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Create Task Request"
// @Success 201 {object} response.Data[dto.TaskResponse] "Task created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/maintenance [post]
// @Security BearerAuth
func (handler *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTask")
	defer scope.End()

	req := dto.CreateTaskRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create maintenance task")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Maintenance task created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetTasks retrieves all maintenance tasks based on query parameters.
// @Summary Get all maintenance tasks
// @Description Retrieve maintenance tasks with optional filtering and pagination.
// @Tags Maintenance
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_id query string false "Filter by room ID"
// @Param branch_id query string false "Filter by branch ID"
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param assignee_id query string false "Filter by assignee ID"
// @Success 200 {object} response.Data[dto.GetTasksResponse] "List of maintenance tasks"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/maintenance [get]
// @Security BearerAuth
func (handler *Handler) GetTasks(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTasks")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldRoomID, model.FieldBranchID, model.FieldStatus, model.FieldPriority, model.FieldAssigneeID} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	tasks, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get maintenance tasks")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Maintenance tasks retrieved successfully")

	response.WithJSON(w, http.StatusOK, tasks)
}

// GetTaskByID retrieves a maintenance task by its ID.
// @Summary Get a maintenance task by ID
// @Description Retrieve a maintenance task by its unique identifier.
// @Tags Maintenance
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} response.Data[dto.TaskResponse] "Task details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/maintenance/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTaskByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	task, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get maintenance task by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Maintenance task retrieved successfully")

	response.WithJSON(w, http.StatusOK, task)
}

// UpdateTaskStatus moves a maintenance task along its lifecycle.
// @Summary Update maintenance task status
// @Description Move a task to in_progress, completed, or cancelled. Room
// status follows the task.
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskStatusRequest true "Update Task Status Request"
// @Success 200 {object} response.Message "Task status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/maintenance/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTaskStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTaskStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update maintenance task status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Maintenance task status updated successfully")

	response.WithMessage(w, http.StatusOK, "Task status updated successfully")
}

// AssignTask assigns a maintenance task to a staff member.
// @Summary Assign a maintenance task
// @Description Assign a maintenance task to a staff member.
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.AssignTaskRequest true "Assign Task Request"
// @Success 200 {object} response.Message "Task assigned successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/maintenance/{id}/assign [patch]
// @Security BearerAuth
func (handler *Handler) AssignTask(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AssignTask")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.AssignTaskRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Assign(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to assign maintenance task")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Maintenance task assigned successfully")

	response.WithMessage(w, http.StatusOK, "Task assigned successfully")
}
