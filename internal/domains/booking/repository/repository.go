package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"skynest/infras/otel"
	"skynest/infras/postgres"
	"skynest/internal/domains/booking/model"
	"skynest/shared/constant"
	gDto "skynest/shared/dto"
	"skynest/shared/logger"
	gRepo "skynest/shared/repository"

	"github.com/jmoiron/sqlx"
)

// blockingStatuses are the booking states that keep a room off the market for
// their date range.
const blockingStatuses = "('pending', 'confirmed', 'checked_in')"

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	CountConflicts(ctx context.Context, roomID string, checkIn, checkOut time.Time) (int, error)
	CountConflictsTx(ctx context.Context, tx *sqlx.Tx, roomID string, checkIn, checkOut time.Time) (int, error)
	FindConflicts(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]model.Booking, error)
	FindAvailability(ctx context.Context, branchID string, checkIn, checkOut time.Time) ([]model.AvailabilityRow, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// conflictQuery counts blocking bookings that overlap the half-open range
// [check_in, check_out). Two stays sharing a turnover day do not conflict.
func conflictQuery() string {
	return fmt.Sprintf(
		"SELECT COUNT(id) FROM %s WHERE room_id = $1 AND status IN %s AND check_in < $3 AND check_out > $2",
		model.TableName, blockingStatuses,
	)
}

func (repo *repositoryImpl) CountConflicts(ctx context.Context, roomID string, checkIn, checkOut time.Time) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountConflicts")
	defer scope.End()

	query := conflictQuery()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	err := repo.db.Read.GetContext(ctx, &count, query, roomID, checkIn, checkOut)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count conflicting bookings: %w", err)
	}

	return count, nil
}

// CountConflictsTx is the in-transaction variant used after the room row is
// locked, so the recheck and the insert are atomic.
func (repo *repositoryImpl) CountConflictsTx(ctx context.Context, tx *sqlx.Tx, roomID string, checkIn, checkOut time.Time) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountConflictsTx")
	defer scope.End()

	query := conflictQuery()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	err := tx.GetContext(ctx, &count, query, roomID, checkIn, checkOut)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count conflicting bookings: %w", err)
	}

	return count, nil
}

// FindConflicts returns the blocking bookings that overlap the half-open range
// [check_in, check_out) for a single room.
func (repo *repositoryImpl) FindConflicts(ctx context.Context, roomID string, checkIn, checkOut time.Time) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindConflicts")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT * FROM %s WHERE room_id = $1 AND status IN %s AND check_in < $3 AND check_out > $2 ORDER BY check_in ASC",
		model.TableName, blockingStatuses,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var bookings []model.Booking

	err := repo.db.Read.SelectContext(ctx, &bookings, query, roomID, checkIn, checkOut)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to find conflicting bookings: %w", err)
	}

	return bookings, nil
}

func (repo *repositoryImpl) FindAvailability(ctx context.Context, branchID string, checkIn, checkOut time.Time) ([]model.AvailabilityRow, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.FindAvailability")
	defer scope.End()

	query := fmt.Sprintf(`
		SELECT
			rt.id AS room_type_id,
			rt.name AS room_type_name,
			rt.branch_id AS branch_id,
			rt.base_price AS base_price,
			rt.capacity AS capacity,
			COUNT(r.id) AS available_rooms
		FROM room_types rt
		JOIN rooms r ON r.room_type_id = rt.id
		WHERE rt.branch_id = $1
		  AND rt.active = TRUE
		  AND r.status NOT IN ('maintenance')
		  AND NOT EXISTS (
			SELECT 1 FROM %s b
			WHERE b.room_id = r.id
			  AND b.status IN %s
			  AND b.check_in < $3 AND b.check_out > $2
		  )
		GROUP BY rt.id, rt.name, rt.branch_id, rt.base_price, rt.capacity
		ORDER BY rt.base_price ASC`,
		model.TableName, blockingStatuses,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var rows []model.AvailabilityRow

	err := repo.db.Read.SelectContext(ctx, &rows, query, branchID, checkIn, checkOut)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to find availability: %w", err)
	}

	return rows, nil
}
