package model

// RevenueRow is one bucket of completed payment totals, grouped by period and
// branch.
type RevenueRow struct {
	Period   string  `db:"period"`
	BranchID string  `db:"branch_id"`
	Total    float64 `db:"total"`
	Payments int     `db:"payments"`
}

// OccupancyRow carries the raw counts per branch; the rate is derived in the
// service from the window length.
type OccupancyRow struct {
	BranchID     string `db:"branch_id"`
	Rooms        int    `db:"rooms"`
	BookedNights int    `db:"booked_nights"`
}
