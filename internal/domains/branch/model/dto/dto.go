package dto

import (
	"skynest/internal/domains/branch/model"
	"skynest/shared"
	gDto "skynest/shared/dto"
	gModel "skynest/shared/model"
	"skynest/shared/timezone"

	"github.com/google/uuid"
)

type CreateBranchRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Address string `json:"address" validate:"required,max=255"`
	City    string `json:"city"    validate:"required,max=100"`
	Phone   string `json:"phone"   validate:"omitempty,max=20"`
	Email   string `json:"email"   validate:"omitempty,email,max=100"`
}

func (c *CreateBranchRequest) ToModel(user string) model.Branch {
	return model.Branch{
		ID:      uuid.NewString(),
		Name:    c.Name,
		Address: c.Address,
		City:    c.City,
		Phone:   c.Phone,
		Email:   c.Email,
		Active:  true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateBranchRequest struct {
	Name    string `db:"name"    json:"name"    validate:"omitempty,max=100"`
	Address string `db:"address" json:"address" validate:"omitempty,max=255"`
	City    string `db:"city"    json:"city"    validate:"omitempty,max=100"`
	Phone   string `db:"phone"   json:"phone"   validate:"omitempty,max=20"`
	Email   string `db:"email"   json:"email"   validate:"omitempty,email,max=100"`
	Active  *bool  `db:"active"  json:"active"  validate:"omitempty"`
}

type BranchResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Active  bool   `json:"active"`
	gDto.Metadata
}

func (r *BranchResponse) FromModel(model model.Branch) {
	r.ID = model.ID
	r.Name = model.Name
	r.Address = model.Address
	r.City = model.City
	r.Phone = model.Phone
	r.Email = model.Email
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetBranchesResponse struct {
	Branches  []BranchResponse `json:"branches"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetBranchesResponse) FromModels(models []model.Branch, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Branches = make([]BranchResponse, len(models))
	for i, mod := range models {
		r.Branches[i].FromModel(mod)
	}
}
