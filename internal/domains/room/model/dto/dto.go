package dto

import (
	"skynest/internal/domains/room/model"
	"skynest/shared"
	"skynest/shared/constant"
	gDto "skynest/shared/dto"
	gModel "skynest/shared/model"
	"skynest/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	BranchID   string `json:"branch_id"    validate:"required,uuid"`
	RoomTypeID string `json:"room_type_id" validate:"required,uuid"`
	RoomNumber string `json:"room_number"  validate:"required,max=20"`
	Floor      int    `json:"floor"        validate:"omitempty,gte=0"`
	Notes      string `json:"notes"        validate:"omitempty,max=500"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	return model.Room{
		ID:         uuid.NewString(),
		BranchID:   c.BranchID,
		RoomTypeID: c.RoomTypeID,
		RoomNumber: c.RoomNumber,
		Floor:      c.Floor,
		Status:     constant.RoomStatusAvailable,
		Notes:      c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	RoomTypeID string `db:"room_type_id" json:"room_type_id" validate:"omitempty,uuid"`
	RoomNumber string `db:"room_number"  json:"room_number"  validate:"omitempty,max=20"`
	Floor      int    `db:"floor"        json:"floor"        validate:"omitempty,gte=0"`
	Notes      string `db:"notes"        json:"notes"        validate:"omitempty,max=500"`
}

type UpdateRoomStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=available occupied maintenance cleaning"`
}

type RoomResponse struct {
	ID         string `json:"id"`
	BranchID   string `json:"branch_id"`
	RoomTypeID string `json:"room_type_id"`
	RoomNumber string `json:"room_number"`
	Floor      int    `json:"floor"`
	Status     string `json:"status"`
	Notes      string `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.BranchID = model.BranchID
	r.RoomTypeID = model.RoomTypeID
	r.RoomNumber = model.RoomNumber
	r.Floor = model.Floor
	r.Status = model.Status
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
