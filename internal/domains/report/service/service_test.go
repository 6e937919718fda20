package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"skynest/config"
	"skynest/infras/otel/mocks"
	reportMocks "skynest/internal/domains/report/mocks"
	"skynest/internal/domains/report/model"
	"skynest/internal/domains/report/model/dto"
	"skynest/internal/domains/report/repository"
	"skynest/internal/domains/report/service"
	cacheMocks "skynest/shared/cache/mocks"
	"skynest/shared/failure"
)

type reportFixture struct {
	svc  service.Report
	repo *reportMocks.MockReport
}

func newReportFixture(ctrl *gomock.Controller) reportFixture {
	repo := reportMocks.NewMockReport(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}

	svc := service.New(repo, cfg, mockCache, mockOtel)

	return reportFixture{svc: svc, repo: repo}
}

func TestReportService_Revenue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newReportFixture(ctrl)

	t.Run("defaults to daily buckets and sums the total", func(t *testing.T) {
		fixture.repo.EXPECT().
			Revenue(gomock.Any(), gomock.Any(), gomock.Any(), repository.GroupByDay, "").
			Return([]model.RevenueRow{
				{Period: "2026-01-01", BranchID: "branch-id", Total: 300, Payments: 2},
				{Period: "2026-01-02", BranchID: "branch-id", Total: 150, Payments: 1},
			}, nil)

		res, err := fixture.svc.Revenue(context.Background(), dto.ReportQuery{From: "2026-01-01", To: "2026-01-08"})

		assert.NoError(t, err)
		assert.Equal(t, repository.GroupByDay, res.GroupBy)
		assert.Equal(t, float64(450), res.Total)
		assert.Len(t, res.Buckets, 2)
	})

	t.Run("monthly grouping is passed through", func(t *testing.T) {
		fixture.repo.EXPECT().
			Revenue(gomock.Any(), gomock.Any(), gomock.Any(), repository.GroupByMonth, "branch-id").
			Return([]model.RevenueRow{}, nil)

		res, err := fixture.svc.Revenue(context.Background(), dto.ReportQuery{
			From:     "2026-01-01",
			To:       "2026-06-01",
			GroupBy:  repository.GroupByMonth,
			BranchID: "branch-id",
		})

		assert.NoError(t, err)
		assert.Equal(t, float64(0), res.Total)
	})

	t.Run("reversed window rejected", func(t *testing.T) {
		_, err := fixture.svc.Revenue(context.Background(), dto.ReportQuery{From: "2026-01-08", To: "2026-01-01"})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("window longer than two years rejected", func(t *testing.T) {
		_, err := fixture.svc.Revenue(context.Background(), dto.ReportQuery{From: "2020-01-01", To: "2026-01-01"})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestReportService_Occupancy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fixture := newReportFixture(ctrl)

	t.Run("rate derives from rooms and window length", func(t *testing.T) {
		fixture.repo.EXPECT().
			Occupancy(gomock.Any(), gomock.Any(), gomock.Any(), "").
			Return([]model.OccupancyRow{
				{BranchID: "branch-id", Rooms: 10, BookedNights: 35},
			}, nil)

		// 7 nights, 10 rooms, 70 available room nights.
		res, err := fixture.svc.Occupancy(context.Background(), dto.ReportQuery{From: "2026-01-01", To: "2026-01-08"})

		assert.NoError(t, err)
		assert.Len(t, res.Buckets, 1)
		assert.Equal(t, 70, res.Buckets[0].AvailableNights)
		assert.Equal(t, 35, res.Buckets[0].BookedNights)
		assert.InDelta(t, 0.5, res.Buckets[0].Rate, 0.0001)
	})

	t.Run("branch with no rooms reports a zero rate", func(t *testing.T) {
		fixture.repo.EXPECT().
			Occupancy(gomock.Any(), gomock.Any(), gomock.Any(), "").
			Return([]model.OccupancyRow{
				{BranchID: "branch-id", Rooms: 0, BookedNights: 0},
			}, nil)

		res, err := fixture.svc.Occupancy(context.Background(), dto.ReportQuery{From: "2026-01-01", To: "2026-01-08"})

		assert.NoError(t, err)
		assert.Equal(t, float64(0), res.Buckets[0].Rate)
	})

	t.Run("malformed dates rejected", func(t *testing.T) {
		_, err := fixture.svc.Occupancy(context.Background(), dto.ReportQuery{From: "not-a-date", To: "2026-01-08"})

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})
}
