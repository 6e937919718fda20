package dto

import (
	"skynest/internal/domains/user/model"
	"skynest/shared"
	"skynest/shared/constant"
	gDto "skynest/shared/dto"
	gModel "skynest/shared/model"
	"skynest/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email    string `json:"email"     validate:"required,email,max=100"`
	Password string `json:"password"  validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,max=100"`
	Phone    string `json:"phone"     validate:"omitempty,max=20"`
	Role     string `json:"role"      validate:"required,oneof=admin staff guest"`
	BranchID string `json:"branch_id" validate:"omitempty,uuid"`
	Position string `json:"position"  validate:"omitempty,max=100"`
}

func (c *CreateUserRequest) ToModel(user, hashedPassword string) model.User {
	var phone, branchID, position *string
	if c.Phone != "" {
		phone = &c.Phone
	}

	if c.BranchID != "" {
		branchID = &c.BranchID
	}

	if c.Position != "" {
		position = &c.Position
	}

	return model.User{
		ID:       uuid.NewString(),
		Email:    c.Email,
		Password: hashedPassword,
		Role:     c.Role,
		FullName: c.FullName,
		Phone:    phone,
		BranchID: branchID,
		Position: position,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateUserRequest struct {
	FullName string `db:"full_name" json:"full_name" validate:"omitempty,max=100"`
	Phone    string `db:"phone"     json:"phone"     validate:"omitempty,max=20"`
	Role     string `db:"role"      json:"role"      validate:"omitempty,oneof=admin staff guest"`
	BranchID string `db:"branch_id" json:"branch_id" validate:"omitempty,uuid"`
	Position string `db:"position"  json:"position"  validate:"omitempty,max=100"`
	Active   *bool  `db:"active"    json:"active"    validate:"omitempty"`

	// Guest-only attributes, admin managed.
	LoyaltyPoints *int  `db:"loyalty_points" json:"loyalty_points" validate:"omitempty,min=0"`
	IsVerified    *bool `db:"is_verified"    json:"is_verified"    validate:"omitempty"`
}

// UpdateProfileRequest is the self-service subset of UpdateUserRequest. Role and
// active status never come from the account owner.
type UpdateProfileRequest struct {
	FullName string `db:"full_name" json:"full_name" validate:"omitempty,max=100"`
	Phone    string `db:"phone"     json:"phone"     validate:"omitempty,max=20"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
	BranchID  string `json:"branch_id,omitempty"`
	Active    bool   `json:"active"`
	LastLogin string `json:"last_login,omitempty"`

	Position      string `json:"position,omitempty"`
	LoyaltyPoints int    `json:"loyalty_points"`
	IsVerified    bool   `json:"is_verified"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.FullName = model.FullName
	r.Role = model.Role
	r.Active = model.Active
	r.LoyaltyPoints = model.LoyaltyPoints
	r.IsVerified = model.IsVerified

	if model.Position != nil {
		r.Position = *model.Position
	}

	if model.Phone != nil {
		r.Phone = *model.Phone
	}

	if model.BranchID != nil {
		r.BranchID = *model.BranchID
	}

	if model.LastLogin != nil {
		r.LastLogin = *model.LastLogin
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

type UpdateLastLoginRequest struct {
	LastLogin string `db:"last_login"`
}

func NewUpdateLastLoginRequest() UpdateLastLoginRequest {
	return UpdateLastLoginRequest{LastLogin: timezone.Format(timezone.Now(), constant.DateFormat)}
}

type UpdatePasswordRequest struct {
	Password string `db:"password"`
}
