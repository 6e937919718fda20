package report

import (
	"net/http"

	"skynest/infras/otel"
	"skynest/internal/domains/report/model/dto"
	"skynest/internal/domains/report/service"
	"skynest/shared/constant"
	"skynest/shared/validator"
	"skynest/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	requestParamFrom     = "from"
	requestParamTo       = "to"
	requestParamGroupBy  = "group_by"
	requestParamBranchID = "branch_id"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/revenue", handler.Revenue)
		routerGroup.Get("/occupancy", handler.Occupancy)
	})
}

// Revenue reports completed payment totals per period.
// @Summary Get the revenue report
// @Description Total completed payments per day or month, optionally scoped to
// one branch.
// @Tags Report
// @Produce json
// @Param from query string true "Window start (YYYY-MM-DD, inclusive)"
// @Param to query string true "Window end (YYYY-MM-DD, exclusive)"
// @Param group_by query string false "Bucket size (day, month)"
// @Param branch_id query string false "Scope to one branch"
// @Success 200 {object} response.Data[dto.RevenueResponse] "Revenue report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/revenue [get]
// @Security BearerAuth
func (handler *Handler) Revenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Revenue")
	defer scope.End()

	req := reportQuery(r)

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate query parameters")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Revenue(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build revenue report")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Revenue report built successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// Occupancy reports booked versus available room nights.
// @Summary Get the occupancy report
// @Description Booked room nights against available room nights per branch.
// @Tags Report
// @Produce json
// @Param from query string true "Window start (YYYY-MM-DD, inclusive)"
// @Param to query string true "Window end (YYYY-MM-DD, exclusive)"
// @Param branch_id query string false "Scope to one branch"
// @Success 200 {object} response.Data[dto.OccupancyResponse] "Occupancy report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/occupancy [get]
// @Security BearerAuth
func (handler *Handler) Occupancy(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Occupancy")
	defer scope.End()

	req := reportQuery(r)

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate query parameters")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Occupancy(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build occupancy report")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Occupancy report built successfully")

	response.WithJSON(w, http.StatusOK, res)
}

func reportQuery(r *http.Request) dto.ReportQuery {
	return dto.ReportQuery{
		From:     r.URL.Query().Get(requestParamFrom),
		To:       r.URL.Query().Get(requestParamTo),
		GroupBy:  r.URL.Query().Get(requestParamGroupBy),
		BranchID: r.URL.Query().Get(requestParamBranchID),
	}
}
