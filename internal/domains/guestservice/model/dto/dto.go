package dto

import (
	"skynest/internal/domains/guestservice/model"
	"skynest/shared"
	"skynest/shared/constant"
	gDto "skynest/shared/dto"
	gModel "skynest/shared/model"
	"skynest/shared/timezone"

	"github.com/google/uuid"
)

type CreateServiceRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
}

func (c *CreateServiceRequest) ToModel(user string) model.Service {
	return model.Service{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Price,
		Active:      true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateServiceRequest struct {
	Name        string  `json:"name" db:"name" validate:"required,max=100"`
	Description string  `json:"description" db:"description" validate:"max=500"`
	Price       float64 `json:"price" db:"price" validate:"required,gt=0"`
	Active      *bool   `json:"active" db:"active" validate:"required"`
}

type ServiceResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Active      bool    `json:"active"`
	gDto.Metadata
}

func (r *ServiceResponse) FromModel(model model.Service) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetServicesResponse) FromModels(models []model.Service, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}

type CreateRequestRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
	ServiceID string `json:"service_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Notes     string `json:"notes" validate:"max=500"`
}

// ToModel snapshots the catalog price into the request so the folio stays
// stable even if the catalog changes afterwards.
func (c *CreateRequestRequest) ToModel(guestID string, unitPrice float64) model.Request {
	return model.Request{
		ID:        uuid.NewString(),
		BookingID: c.BookingID,
		ServiceID: c.ServiceID,
		GuestID:   guestID,
		Quantity:  c.Quantity,
		Charge:    unitPrice,
		Status:    constant.TaskStatusPending,
		Notes:     c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  guestID,
			ModifiedBy: guestID,
		},
	}
}

type UpdateRequestStatusRequest struct {
	Status string `json:"status" db:"status" validate:"required,oneof=in_progress completed cancelled"`
}

type RequestResponse struct {
	ID         string  `json:"id"`
	BookingID  string  `json:"booking_id"`
	ServiceID  string  `json:"service_id"`
	GuestID    string  `json:"guest_id"`
	Quantity   int     `json:"quantity"`
	Charge     float64 `json:"charge"`
	Total      float64 `json:"total"`
	Status     string  `json:"status"`
	Notes      string  `json:"notes,omitempty"`
	AssigneeID string  `json:"assignee_id,omitempty"`
	gDto.Metadata
}

func (r *RequestResponse) FromModel(model model.Request) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.ServiceID = model.ServiceID
	r.GuestID = model.GuestID
	r.Quantity = model.Quantity
	r.Charge = model.Charge
	r.Total = model.Charge * float64(model.Quantity)
	r.Status = model.Status
	r.Notes = model.Notes

	if model.AssigneeID != nil {
		r.AssigneeID = *model.AssigneeID
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetRequestsResponse struct {
	Requests  []RequestResponse `json:"requests"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetRequestsResponse) FromModels(models []model.Request, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Requests = make([]RequestResponse, len(models))
	for i, mod := range models {
		r.Requests[i].FromModel(mod)
	}
}
