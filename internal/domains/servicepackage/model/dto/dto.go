package dto

import (
	"github.com/google/uuid"

	"sparkle/internal/domains/servicepackage/model"
	"sparkle/shared"
	gDto "sparkle/shared/dto"
	gModel "sparkle/shared/model"
	"sparkle/shared/timezone"
)

type TierRequest struct {
	MinArea float64  `json:"min_area" validate:"gte=0"`
	MaxArea *float64 `json:"max_area" validate:"omitempty,gtfield=MinArea"`
	Price   float64  `json:"price"    validate:"gte=0"`
}

type CreatePackageRequest struct {
	Name         string        `json:"name"          validate:"required,max=100"`
	Description  *string       `json:"description"   validate:"omitempty,max=500"`
	PricingModel    string        `json:"pricing_model"    validate:"required,oneof=fixed tiered"`
	BasePrice       float64       `json:"base_price"       validate:"gte=0"`
	DurationMinutes int           `json:"duration_minutes" validate:"gte=0"`
	Tiers        []TierRequest `json:"tiers"         validate:"omitempty,dive"`
}

func (c *CreatePackageRequest) ToModel(user string) (model.ServicePackage, []model.PackageTier) {
	now := timezone.Now()
	meta := gModel.Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  user,
		ModifiedBy: user,
	}

	pkg := model.ServicePackage{
		ID:           uuid.NewString(),
		Name:         c.Name,
		Description:  c.Description,
		PricingModel:    c.PricingModel,
		BasePrice:       c.BasePrice,
		DurationMinutes: c.DurationMinutes,
		Active:          true,
		Metadata:        meta,
	}

	tiers := make([]model.PackageTier, len(c.Tiers))
	for i, tier := range c.Tiers {
		tiers[i] = model.PackageTier{
			ID:        uuid.NewString(),
			PackageID: pkg.ID,
			MinArea:   tier.MinArea,
			MaxArea:   tier.MaxArea,
			Price:     tier.Price,
			Metadata:  meta,
		}
	}

	return pkg, tiers
}

type UpdatePackageRequest struct {
	Name        string  `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description *string `db:"description" json:"description" validate:"omitempty,max=500"`
	BasePrice       *float64 `db:"base_price"       json:"base_price"       validate:"omitempty,gte=0"`
	DurationMinutes *int     `db:"duration_minutes" json:"duration_minutes" validate:"omitempty,gte=0"`
	Active      *bool   `db:"active"      json:"active"      validate:"omitempty"`
}

type TierResponse struct {
	ID      string   `json:"id"`
	MinArea float64  `json:"min_area"`
	MaxArea *float64 `json:"max_area,omitempty"`
	Price   float64  `json:"price"`
}

type PackageResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  *string        `json:"description,omitempty"`
	PricingModel    string         `json:"pricing_model"`
	BasePrice       float64        `json:"base_price"`
	DurationMinutes int            `json:"duration_minutes"`
	Active       bool           `json:"active"`
	Tiers        []TierResponse `json:"tiers,omitempty"`
	gDto.Metadata
}

func (r *PackageResponse) FromModel(model model.ServicePackage, tiers []model.PackageTier) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.PricingModel = model.PricingModel
	r.BasePrice = model.BasePrice
	r.DurationMinutes = model.DurationMinutes
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)

	r.Tiers = make([]TierResponse, len(tiers))
	for i, tier := range tiers {
		r.Tiers[i] = TierResponse{
			ID:      tier.ID,
			MinArea: tier.MinArea,
			MaxArea: tier.MaxArea,
			Price:   tier.Price,
		}
	}
}

type GetPackagesResponse struct {
	Packages  []PackageResponse `json:"packages"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPackagesResponse) FromModels(models []model.ServicePackage, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Packages = make([]PackageResponse, len(models))
	for i, mod := range models {
		r.Packages[i].FromModel(mod, nil)
	}
}

type QuoteResponse struct {
	PackageID string  `json:"package_id"`
	Area      float64 `json:"area"`
	Price     float64 `json:"price"`
}
