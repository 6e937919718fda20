package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"skynest/infras/otel"
	"skynest/infras/postgres"
	"skynest/internal/domains/report/model"
	"skynest/shared/constant"
	"skynest/shared/logger"
)

const (
	GroupByDay   = "day"
	GroupByMonth = "month"
)

type Report interface {
	Revenue(ctx context.Context, from, to time.Time, groupBy, branchID string) ([]model.RevenueRow, error)
	Occupancy(ctx context.Context, from, to time.Time, branchID string) ([]model.OccupancyRow, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Report {
	return &repositoryImpl{db: db, otel: otel}
}

// Revenue totals completed payments per period and branch. Only completed
// payments count, so refund noise and pending intents never inflate revenue.
func (repo *repositoryImpl) Revenue(ctx context.Context, from, to time.Time, groupBy, branchID string) ([]model.RevenueRow, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report.Revenue")
	defer scope.End()

	format := "YYYY-MM-DD"
	if groupBy == GroupByMonth {
		format = "YYYY-MM"
	}

	query := fmt.Sprintf(`SELECT to_char(date_trunc('%s', p.created_at), '%s') AS period,
		b.branch_id,
		COALESCE(SUM(p.amount), 0) AS total,
		COUNT(p.id) AS payments
	FROM payments p
	JOIN bookings b ON b.id = p.booking_id
	WHERE p.status = 'completed' AND p.created_at >= $1 AND p.created_at < $2`, groupBy, format)

	args := []any{from, to}
	if branchID != constant.Empty {
		query += " AND b.branch_id = $3"
		args = append(args, branchID)
	}

	query += " GROUP BY 1, 2 ORDER BY 1 ASC, 2 ASC"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows := []model.RevenueRow{}

	err := repo.db.Read.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to query revenue: %w", err)
	}

	return rows, nil
}

// Occupancy counts rooms and booked room nights per branch for the window.
// Cancelled and no-show bookings never occupied a room, so they are excluded.
func (repo *repositoryImpl) Occupancy(ctx context.Context, from, to time.Time, branchID string) ([]model.OccupancyRow, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report.Occupancy")
	defer scope.End()

	query := `SELECT r.branch_id,
		COUNT(DISTINCT r.id) AS rooms,
		COALESCE(SUM(GREATEST(0, LEAST(b.check_out, $2::date) - GREATEST(b.check_in, $1::date))), 0) AS booked_nights
	FROM rooms r
	LEFT JOIN bookings b ON b.room_id = r.id
		AND b.status IN ('confirmed', 'checked_in', 'checked_out')
		AND b.check_in < $2 AND b.check_out > $1`

	args := []any{from, to}
	if branchID != constant.Empty {
		query += " WHERE r.branch_id = $3"
		args = append(args, branchID)
	}

	query += " GROUP BY r.branch_id ORDER BY r.branch_id ASC"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows := []model.OccupancyRow{}

	err := repo.db.Read.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to query occupancy: %w", err)
	}

	return rows, nil
}
