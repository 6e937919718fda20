package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"skynest/infras/otel"
	"skynest/infras/postgres"
	"skynest/internal/domains/guestservice/model"
	"skynest/shared/constant"
	gDto "skynest/shared/dto"
	"skynest/shared/logger"
	gRepo "skynest/shared/repository"
)

type Service interface {
	Insert(ctx context.Context, model model.Service) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Service, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Service, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type serviceRepositoryImpl struct {
	gRepo.Repository[model.Service]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Service {
	return &serviceRepositoryImpl{
		Repository: gRepo.NewRepository[model.Service](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type Request interface {
	Insert(ctx context.Context, model model.Request) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Request, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Request, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	SumApprovedCharges(ctx context.Context, bookingID string) (float64, error)
}

type requestRepositoryImpl struct {
	gRepo.Repository[model.Request]
	db   *postgres.Connection
	otel otel.Otel
}

func NewRequest(db *postgres.Connection, otel otel.Otel) Request {
	return &requestRepositoryImpl{
		Repository: gRepo.NewRepository[model.Request](model.RequestEntityName, model.RequestTableName, model.RequestFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// SumApprovedCharges totals charges for requests that were actually delivered.
// Cancelled requests never hit the folio.
func (repo *requestRepositoryImpl) SumApprovedCharges(ctx context.Context, bookingID string) (float64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".service_request.SumApprovedCharges")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT COALESCE(SUM(charge * quantity), 0) FROM %s WHERE booking_id = $1 AND status IN ('in_progress', 'completed')",
		model.RequestTableName,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var total float64

	err := repo.db.Read.GetContext(ctx, &total, query, bookingID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to sum service charges: %w", err)
	}

	return total, nil
}
