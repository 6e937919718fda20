package dto

import (
	"mime/multipart"

	"skynest/internal/domains/roomtype/model"
	"skynest/shared"
	gDto "skynest/shared/dto"
	gModel "skynest/shared/model"
	"skynest/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomTypeRequest struct {
	BranchID    string   `json:"branch_id"   validate:"required,uuid"`
	Name        string   `json:"name"        validate:"required,max=100"`
	Description string   `json:"description" validate:"omitempty"`
	BasePrice   float64  `json:"base_price"  validate:"required,gt=0"`
	Capacity    int      `json:"capacity"    validate:"required,gt=0"`
	AmenityIDs  []string `json:"amenity_ids" validate:"omitempty,dive,uuid"`
}

func (c *CreateRoomTypeRequest) ToModel(user string) model.RoomType {
	return model.RoomType{
		ID:          uuid.NewString(),
		BranchID:    c.BranchID,
		Name:        c.Name,
		Description: c.Description,
		BasePrice:   c.BasePrice,
		Capacity:    c.Capacity,
		Active:      true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomTypeRequest struct {
	Name        string  `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string  `db:"description" json:"description" validate:"omitempty"`
	BasePrice   float64 `db:"base_price"  json:"base_price"  validate:"omitempty,gt=0"`
	Capacity    int     `db:"capacity"    json:"capacity"    validate:"omitempty,gt=0"`
	Active      *bool   `db:"active"      json:"active"      validate:"omitempty"`
}

type SetAmenitiesRequest struct {
	AmenityIDs []string `json:"amenity_ids" validate:"required,dive,uuid"`
}

type AmenityResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

func (r *AmenityResponse) FromModel(model model.Amenity) {
	r.ID = model.ID
	r.Name = model.Name
	r.Icon = model.Icon
}

type CreateAmenityRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Icon string `json:"icon" validate:"omitempty,max=100"`
}

func (c *CreateAmenityRequest) ToModel(user string) model.Amenity {
	return model.Amenity{
		ID:   uuid.NewString(),
		Name: c.Name,
		Icon: c.Icon,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type ImageResponse struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	SortOrder int    `json:"sort_order"`
}

func (r *ImageResponse) FromModel(model model.Image) {
	r.ID = model.ID
	r.URL = model.URL
	r.SortOrder = model.SortOrder
}

type RoomTypeResponse struct {
	ID          string            `json:"id"`
	BranchID    string            `json:"branch_id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	BasePrice   float64           `json:"base_price"`
	Capacity    int               `json:"capacity"`
	Active      bool              `json:"active"`
	Amenities   []AmenityResponse `json:"amenities,omitempty"`
	Images      []ImageResponse   `json:"images,omitempty"`
	gDto.Metadata
}

func (r *RoomTypeResponse) FromModel(model model.RoomType) {
	r.ID = model.ID
	r.BranchID = model.BranchID
	r.Name = model.Name
	r.Description = model.Description
	r.BasePrice = model.BasePrice
	r.Capacity = model.Capacity
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

func (r *RoomTypeResponse) WithAmenities(amenities []model.Amenity) {
	r.Amenities = make([]AmenityResponse, len(amenities))
	for i, mod := range amenities {
		r.Amenities[i].FromModel(mod)
	}
}

func (r *RoomTypeResponse) WithImages(images []model.Image) {
	r.Images = make([]ImageResponse, len(images))
	for i, mod := range images {
		r.Images[i].FromModel(mod)
	}
}

type GetRoomTypesResponse struct {
	RoomTypes []RoomTypeResponse `json:"room_types"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetRoomTypesResponse) FromModels(models []model.RoomType, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.RoomTypes = make([]RoomTypeResponse, len(models))
	for i, mod := range models {
		r.RoomTypes[i].FromModel(mod)
	}
}

type GetAmenitiesResponse struct {
	Amenities []AmenityResponse `json:"amenities"`
	TotalData int               `json:"total_data"`
}

func (r *GetAmenitiesResponse) FromModels(models []model.Amenity) {
	r.TotalData = len(models)

	r.Amenities = make([]AmenityResponse, len(models))
	for i, mod := range models {
		r.Amenities[i].FromModel(mod)
	}
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image"      swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg"`
	ImageFile multipart.File        `json:"-"`
	SortOrder int                   `json:"sort_order" validate:"omitempty,gte=0"`
}

type UploadImageResponse struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	SortOrder int    `json:"sort_order"`
}
