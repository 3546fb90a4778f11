package dto

import (
	"github.com/google/uuid"

	"sparkle/internal/domains/customer/model"
	"sparkle/shared"
	gDto "sparkle/shared/dto"
	gModel "sparkle/shared/model"
	"sparkle/shared/timezone"
)

type CreateCustomerRequest struct {
	Name    string  `json:"name"     validate:"required,max=100"`
	Phone   string  `json:"phone"    validate:"required,max=20"`
	Email   *string `json:"email"    validate:"omitempty,email,max=100"`
	Address string  `json:"address"  validate:"omitempty,max=255"`
	City    string  `json:"city"     validate:"omitempty,max=100"`
	State   string  `json:"state"    validate:"omitempty,max=100"`
	ZipCode string  `json:"zip_code" validate:"omitempty,max=10"`
	Notes   *string `json:"notes"    validate:"omitempty,max=1000"`
}

func (c *CreateCustomerRequest) ToModel(user string) model.Customer {
	return model.Customer{
		ID:      uuid.NewString(),
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address,
		City:    c.City,
		State:   c.State,
		ZipCode: c.ZipCode,
		Notes:   c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCustomerRequest struct {
	Name    string  `db:"name"     json:"name"     validate:"omitempty,max=100"`
	Phone   string  `db:"phone"    json:"phone"    validate:"omitempty,max=20"`
	Email   *string `db:"email"    json:"email"    validate:"omitempty,email,max=100"`
	Address string  `db:"address"  json:"address"  validate:"omitempty,max=255"`
	City    string  `db:"city"     json:"city"     validate:"omitempty,max=100"`
	State   string  `db:"state"    json:"state"    validate:"omitempty,max=100"`
	ZipCode string  `db:"zip_code" json:"zip_code" validate:"omitempty,max=10"`
	Notes   *string `db:"notes"    json:"notes"    validate:"omitempty,max=1000"`
}

type CustomerResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Email   *string `json:"email,omitempty"`
	Address string  `json:"address"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	ZipCode string  `json:"zip_code"`
	Notes   *string `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(model model.Customer) {
	r.ID = model.ID
	r.Name = model.Name
	r.Phone = model.Phone
	r.Email = model.Email
	r.Address = model.Address
	r.City = model.City
	r.State = model.State
	r.ZipCode = model.ZipCode
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}
