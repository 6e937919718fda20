package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"skynest/config"
	"skynest/infras/otel"
	"skynest/internal/domains/report/model/dto"
	"skynest/internal/domains/report/repository"
	"skynest/shared"
	"skynest/shared/cache"
	"skynest/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	cacheRevenue   = "report:revenue"
	cacheOccupancy = "report:occupancy"
)

type Report interface {
	Revenue(ctx context.Context, req dto.ReportQuery) (dto.RevenueResponse, error)
	Occupancy(ctx context.Context, req dto.ReportQuery) (dto.OccupancyResponse, error)
}

type serviceImpl struct {
	repo  repository.Report
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Report, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Report {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Revenue(ctx context.Context, req dto.ReportQuery) (res dto.RevenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Revenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	from, to, err := req.Window()
	if err != nil {
		return res, err
	}

	groupBy := req.GroupBy
	if groupBy == constant.Empty {
		groupBy = repository.GroupByDay
	}

	cacheKey := shared.BuildCacheKey(cacheRevenue, req.From, req.To, groupBy, req.BranchID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	rows, err := s.repo.Revenue(ctx, from, to, groupBy, req.BranchID)
	if err != nil {
		log.Error().Err(err).Msg("failed to build revenue report")

		return res, fmt.Errorf("failed to build revenue report: %w", err)
	}

	res.FromModels(req.From, req.To, groupBy, rows)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save revenue report to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Occupancy(ctx context.Context, req dto.ReportQuery) (res dto.OccupancyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Occupancy")
	defer scope.End()
	defer scope.TraceIfError(err)

	from, to, err := req.Window()
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheOccupancy, req.From, req.To, req.BranchID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	rows, err := s.repo.Occupancy(ctx, from, to, req.BranchID)
	if err != nil {
		log.Error().Err(err).Msg("failed to build occupancy report")

		return res, fmt.Errorf("failed to build occupancy report: %w", err)
	}

	nights := int(to.Sub(from).Hours() / 24)
	res.FromModels(req.From, req.To, nights, rows)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save occupancy report to cache")
		}
	}()

	return res, nil
}
