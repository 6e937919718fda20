package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"skynest/infras/otel"
	"skynest/infras/postgres"
	"skynest/internal/domains/payment/model"
	"skynest/shared/constant"
	gDto "skynest/shared/dto"
	"skynest/shared/logger"
	gRepo "skynest/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Payment interface {
	Insert(ctx context.Context, model model.Payment) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Payment) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Payment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Payment, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	SumCompleted(ctx context.Context, bookingID string) (float64, error)
	SumCompletedTx(ctx context.Context, tx *sqlx.Tx, bookingID string) (float64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Payment]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Payment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Payment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func sumCompletedQuery() string {
	return fmt.Sprintf(
		"SELECT COALESCE(SUM(amount), 0) FROM %s WHERE booking_id = $1 AND status = 'completed'",
		model.TableName,
	)
}

// SumCompleted totals settled payments for a booking. The payments table is the
// single source of truth for how much has been paid.
func (repo *repositoryImpl) SumCompleted(ctx context.Context, bookingID string) (float64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".payment.SumCompleted")
	defer scope.End()

	query := sumCompletedQuery()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var total float64

	err := repo.db.Read.GetContext(ctx, &total, query, bookingID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to sum completed payments: %w", err)
	}

	return total, nil
}

func (repo *repositoryImpl) SumCompletedTx(ctx context.Context, tx *sqlx.Tx, bookingID string) (float64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".payment.SumCompletedTx")
	defer scope.End()

	query := sumCompletedQuery()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var total float64

	err := tx.GetContext(ctx, &total, query, bookingID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to sum completed payments: %w", err)
	}

	return total, nil
}
