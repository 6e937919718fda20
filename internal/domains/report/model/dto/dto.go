package dto

import (
	"time"

	"skynest/internal/domains/report/model"
	"skynest/shared/constant"
	"skynest/shared/failure"
)

type ReportQuery struct {
	From     string `json:"from" validate:"required,dateonly"`
	To       string `json:"to" validate:"required,dateonly"`
	GroupBy  string `json:"group_by" validate:"omitempty,oneof=day month"`
	BranchID string `json:"branch_id" validate:"omitempty,uuid"`
}

// Window parses the inclusive from date and exclusive to date. Reporting
// windows are capped at two years to keep the scans bounded.
func (q *ReportQuery) Window() (time.Time, time.Time, error) {
	from, err := time.Parse(constant.DateOnlyLayout, q.From)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("from must be a valid date") // nolint:wrapcheck
	}

	to, err := time.Parse(constant.DateOnlyLayout, q.To)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("to must be a valid date") // nolint:wrapcheck
	}

	if !to.After(from) {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("to must be after from") // nolint:wrapcheck
	}

	if to.Sub(from) > 2*365*24*time.Hour {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("reporting window is limited to two years") // nolint:wrapcheck
	}

	return from, to, nil
}

type RevenueBucket struct {
	Period   string  `json:"period"`
	BranchID string  `json:"branch_id"`
	Total    float64 `json:"total"`
	Payments int     `json:"payments"`
}

type RevenueResponse struct {
	From    string          `json:"from"`
	To      string          `json:"to"`
	GroupBy string          `json:"group_by"`
	Total   float64         `json:"total"`
	Buckets []RevenueBucket `json:"buckets"`
}

func (r *RevenueResponse) FromModels(from, to, groupBy string, rows []model.RevenueRow) {
	r.From = from
	r.To = to
	r.GroupBy = groupBy

	r.Buckets = make([]RevenueBucket, len(rows))
	for i, row := range rows {
		r.Buckets[i] = RevenueBucket{
			Period:   row.Period,
			BranchID: row.BranchID,
			Total:    row.Total,
			Payments: row.Payments,
		}
		r.Total += row.Total
	}
}

type OccupancyBucket struct {
	BranchID        string  `json:"branch_id"`
	Rooms           int     `json:"rooms"`
	AvailableNights int     `json:"available_nights"`
	BookedNights    int     `json:"booked_nights"`
	Rate            float64 `json:"rate"`
}

type OccupancyResponse struct {
	From    string            `json:"from"`
	To      string            `json:"to"`
	Buckets []OccupancyBucket `json:"buckets"`
}

func (r *OccupancyResponse) FromModels(from, to string, nights int, rows []model.OccupancyRow) {
	r.From = from
	r.To = to

	r.Buckets = make([]OccupancyBucket, len(rows))
	for i, row := range rows {
		available := row.Rooms * nights

		rate := float64(0)
		if available > 0 {
			rate = float64(row.BookedNights) / float64(available)
		}

		r.Buckets[i] = OccupancyBucket{
			BranchID:        row.BranchID,
			Rooms:           row.Rooms,
			AvailableNights: available,
			BookedNights:    row.BookedNights,
			Rate:            rate,
		}
	}
}
