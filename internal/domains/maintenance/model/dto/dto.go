package dto

import (
	"skynest/internal/domains/maintenance/model"
	"skynest/shared"
	"skynest/shared/constant"
	gDto "skynest/shared/dto"
	gModel "skynest/shared/model"
	"skynest/shared/timezone"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	RoomID      string `json:"room_id" validate:"required,uuid"`
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Priority    string `json:"priority" validate:"required,oneof=low normal high urgent"`
}

func (c *CreateTaskRequest) ToModel(reportedBy, branchID string) model.Task {
	return model.Task{
		ID:          uuid.NewString(),
		RoomID:      c.RoomID,
		BranchID:    branchID,
		Title:       c.Title,
		Description: c.Description,
		Priority:    c.Priority,
		Status:      constant.TaskStatusPending,
		ReportedBy:  reportedBy,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  reportedBy,
			ModifiedBy: reportedBy,
		},
	}
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" db:"status" validate:"required,oneof=in_progress completed cancelled"`
	Notes  string `json:"notes" db:"notes" validate:"max=1000"`
}

type AssignTaskRequest struct {
	AssigneeID string `json:"assignee_id" db:"assignee_id" validate:"required,uuid"`
}

type TaskResponse struct {
	ID          string `json:"id"`
	RoomID      string `json:"room_id"`
	BranchID    string `json:"branch_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	AssigneeID  string `json:"assignee_id,omitempty"`
	ReportedBy  string `json:"reported_by"`
	Notes       string `json:"notes,omitempty"`
	ResolvedAt  string `json:"resolved_at,omitempty"`
	gDto.Metadata
}

func (r *TaskResponse) FromModel(model model.Task) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.BranchID = model.BranchID
	r.Title = model.Title
	r.Description = model.Description
	r.Priority = model.Priority
	r.Status = model.Status
	r.ReportedBy = model.ReportedBy
	r.Notes = model.Notes

	if model.AssigneeID != nil {
		r.AssigneeID = *model.AssigneeID
	}

	if model.ResolvedAt != nil {
		r.ResolvedAt = *model.ResolvedAt
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetTasksResponse struct {
	Tasks     []TaskResponse `json:"tasks"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetTasksResponse) FromModels(models []model.Task, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tasks = make([]TaskResponse, len(models))
	for i, mod := range models {
		r.Tasks[i].FromModel(mod)
	}
}
