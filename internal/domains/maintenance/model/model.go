package model

import "skynest/shared/model"

const (
	TableName  = "maintenance_tasks"
	EntityName = "maintenance_task"

	FieldID          = "id"
	FieldRoomID      = "room_id"
	FieldBranchID    = "branch_id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPriority    = "priority"
	FieldStatus      = "status"
	FieldAssigneeID  = "assignee_id"
	FieldReportedBy  = "reported_by"
	FieldNotes       = "notes"
	FieldResolvedAt  = "resolved_at"
)

type Task struct {
	ID          string  `db:"id"`
	RoomID      string  `db:"room_id"`
	BranchID    string  `db:"branch_id"`
	Title       string  `db:"title"`
	Description string  `db:"description"`
	Priority    string  `db:"priority"`
	Status      string  `db:"status"`
	AssigneeID  *string `db:"assignee_id"`
	ReportedBy  string  `db:"reported_by"`
	Notes       string  `db:"notes"`
	ResolvedAt  *string `db:"resolved_at"`
	model.Metadata
}
