package model

import (
	"time"

	"skynest/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID          = "id"
	FieldReference   = "reference"
	FieldBranchID    = "branch_id"
	FieldRoomID      = "room_id"
	FieldGuestID     = "guest_id"
	FieldCheckIn     = "check_in"
	FieldCheckOut    = "check_out"
	FieldGuestCount  = "guest_count"
	FieldTotalAmount = "total_amount"
	FieldStatus      = "status"
	FieldNotes       = "notes"
)

type Booking struct {
	ID          string    `db:"id"`
	Reference   string    `db:"reference"`
	BranchID    string    `db:"branch_id"`
	RoomID      string    `db:"room_id"`
	GuestID     string    `db:"guest_id"`
	CheckIn     time.Time `db:"check_in"`
	CheckOut    time.Time `db:"check_out"`
	GuestCount  int       `db:"guest_count"`
	TotalAmount float64   `db:"total_amount"`
	Status      string    `db:"status"`
	Notes       string    `db:"notes"`
	model.Metadata
}

// Nights is the stay length in whole nights.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// AvailabilityRow is one row of the public availability search: a room type in
// the requested branch and how many of its rooms are free for the whole range.
type AvailabilityRow struct {
	RoomTypeID     string  `db:"room_type_id"`
	RoomTypeName   string  `db:"room_type_name"`
	BranchID       string  `db:"branch_id"`
	BasePrice      float64 `db:"base_price"`
	Capacity       int     `db:"capacity"`
	AvailableRooms int     `db:"available_rooms"`
}
