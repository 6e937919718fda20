package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"skynest/infras/otel"
	"skynest/infras/postgres"
	"skynest/internal/domains/maintenance/model"
	"skynest/shared/constant"
	gDto "skynest/shared/dto"
	"skynest/shared/logger"
	gRepo "skynest/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Task interface {
	Insert(ctx context.Context, model model.Task) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Task, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Task, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	CountOpenForRoomTx(ctx context.Context, tx *sqlx.Tx, roomID, excludeTaskID string) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Task]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Task {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Task](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CountOpenForRoomTx counts pending and in_progress tasks on a room, leaving
// out the task being closed. Runs inside the closing transaction so the room
// is only released when no other open task still references it.
func (repo *repositoryImpl) CountOpenForRoomTx(ctx context.Context, tx *sqlx.Tx, roomID, excludeTaskID string) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".maintenance_task.CountOpenForRoomTx")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT COUNT(id) FROM %s WHERE room_id = $1 AND id <> $2 AND status IN ('pending', 'in_progress')",
		model.TableName,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	err := tx.GetContext(ctx, &count, query, roomID, excludeTaskID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count open maintenance tasks: %w", err)
	}

	return count, nil
}
