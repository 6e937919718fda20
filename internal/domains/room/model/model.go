package model

import "skynest/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID         = "id"
	FieldBranchID   = "branch_id"
	FieldRoomTypeID = "room_type_id"
	FieldRoomNumber = "room_number"
	FieldFloor      = "floor"
	FieldStatus     = "status"
	FieldNotes      = "notes"
)

type Room struct {
	ID         string `db:"id"`
	BranchID   string `db:"branch_id"`
	RoomTypeID string `db:"room_type_id"`
	RoomNumber string `db:"room_number"`
	Floor      int    `db:"floor"`
	Status     string `db:"status"`
	Notes      string `db:"notes"`
	model.Metadata
}
