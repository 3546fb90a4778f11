package dto

import (
	"github.com/google/uuid"

	"sparkle/internal/domains/staff/model"
	"sparkle/shared"
	gDto "sparkle/shared/dto"
	gModel "sparkle/shared/model"
	"sparkle/shared/timezone"
)

type CreateStaffRequest struct {
	Name     string  `json:"name"     validate:"required,max=100"`
	Phone    string  `json:"phone"    validate:"required,max=20"`
	Email    *string `json:"email"    validate:"omitempty,email,max=100"`
	Position *string `json:"position" validate:"omitempty,max=100"`
}

func (c *CreateStaffRequest) ToModel(user string) model.Staff {
	return model.Staff{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Phone:    c.Phone,
		Email:    c.Email,
		Position: c.Position,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateStaffRequest struct {
	Name     string  `db:"name"     json:"name"     validate:"omitempty,max=100"`
	Phone    string  `db:"phone"    json:"phone"    validate:"omitempty,max=20"`
	Email    *string `db:"email"    json:"email"    validate:"omitempty,email,max=100"`
	Position *string `db:"position" json:"position" validate:"omitempty,max=100"`
	Active   *bool   `db:"active"   json:"active"   validate:"omitempty"`
}

type StaffResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Email    *string `json:"email,omitempty"`
	Position *string `json:"position,omitempty"`
	Active   bool    `json:"active"`
	gDto.Metadata
}

func (r *StaffResponse) FromModel(model model.Staff) {
	r.ID = model.ID
	r.Name = model.Name
	r.Phone = model.Phone
	r.Email = model.Email
	r.Position = model.Position
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetStaffsResponse struct {
	Staffs    []StaffResponse `json:"staffs"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetStaffsResponse) FromModels(models []model.Staff, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Staffs = make([]StaffResponse, len(models))
	for i, mod := range models {
		r.Staffs[i].FromModel(mod)
	}
}
