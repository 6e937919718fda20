package branch

import (
	"net/http"

	"skynest/infras/otel"
	"skynest/internal/domains/branch/model"
	"skynest/internal/domains/branch/model/dto"
	"skynest/internal/domains/branch/service"
	"skynest/shared/constant"
	gDto "skynest/shared/dto"
	"skynest/shared/validator"
	"skynest/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Branch
	otel    otel.Otel
}

func New(service service.Branch, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/branches", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBranch)
		routerGroup.Get("/", handler.GetBranches)
		routerGroup.Get("/{id}", handler.GetBranchByID)
		routerGroup.Put("/{id}", handler.UpdateBranch)
		routerGroup.Delete("/{id}", handler.DeleteBranch)
	})
}

// CreateBranch creates a new hotel branch.
// @Summary Create a new branch
// @Description Create a new hotel branch with the provided details.
// @Tags Branch
// @Accept json
// @Produce json
// @Param request body dto.CreateBranchRequest true "Create Branch Request"
// @Success 201 {object} response.Message "Branch created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/branches [post]
// @Security BearerAuth
func (handler *Handler) CreateBranch(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBranch")
	defer scope.End()

	req := dto.CreateBranchRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create branch")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Branch created successfully")

	response.WithMessage(w, http.StatusCreated, "Branch created successfully")
}

// GetBranches retrieves all branches based on query parameters.
// @Summary Get all branches
// @Description Retrieve all branches with optional filtering and pagination.
// @Tags Branch
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param city query string false "Filter by city"
// @Param name query string false "Filter by name (partial match)"
// @Success 200 {object} response.Data[dto.GetBranchesResponse] "List of branches"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/branches [get]
func (handler *Handler) GetBranches(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBranches")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	city := r.URL.Query().Get(model.FieldCity)
	name := r.URL.Query().Get(model.FieldName)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if city != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCity,
			Operator: gDto.FilterOperatorEq,
			Value:    city,
			Table:    model.TableName,
		})
	}

	if name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	branches, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get branches")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Branches retrieved successfully")

	response.WithJSON(w, http.StatusOK, branches)
}

// GetBranchByID retrieves a branch by its ID.
// @Summary Get a branch by ID
// @Description Retrieve a branch by its unique identifier.
// @Tags Branch
// @Produce json
// @Param id path string true "Branch ID"
// @Success 200 {object} response.Data[dto.BranchResponse] "Branch details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/branches/{id} [get]
func (handler *Handler) GetBranchByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBranchByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	branch, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get branch by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Branch retrieved successfully")

	response.WithJSON(w, http.StatusOK, branch)
}

// UpdateBranch updates an existing branch by its ID.
// @Summary Update a branch by ID
// @Description Update the details of an existing branch.
// @Tags Branch
// @Accept json
// @Produce json
// @Param id path string true "Branch ID"
// @Param request body dto.UpdateBranchRequest true "Update Branch Request"
// @Success 200 {object} response.Message "Branch updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/branches/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateBranch(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBranch")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateBranchRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update branch")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Branch updated successfully")

	response.WithMessage(w, http.StatusOK, "Branch updated successfully")
}

// DeleteBranch deletes a branch by its ID.
// @Summary Delete a branch by ID
// @Description Delete a branch using its unique identifier.
// @Tags Branch
// @Produce json
// @Param id path string true "Branch ID"
// @Success 200 {object} response.Message "Branch deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/branches/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBranch(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBranch")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete branch")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Branch deleted successfully")

	response.WithMessage(w, http.StatusOK, "Branch deleted successfully")
}
