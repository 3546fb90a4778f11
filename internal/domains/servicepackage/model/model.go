package model

import "sparkle/shared/model"

const (
	TableName  = "service_packages"
	EntityName = "service_package"

	FieldID              = "id"
	FieldName            = "name"
	FieldDescription     = "description"
	FieldPricingModel    = "pricing_model"
	FieldBasePrice       = "base_price"
	FieldDurationMinutes = "duration_minutes"
	FieldActive          = "active"
)

const (
	TierTableName  = "service_package_tiers"
	TierEntityName = "service_package_tier"

	FieldTierID    = "id"
	FieldPackageID = "package_id"
	FieldMinArea   = "min_area"
	FieldMaxArea   = "max_area"
	FieldTierPrice = "price"
)

const (
	PricingModelFixed  = "fixed"
	PricingModelTiered = "tiered"
)

type ServicePackage struct {
	ID              string  `db:"id"`
	Name            string  `db:"name"`
	Description     *string `db:"description"`
	PricingModel    string  `db:"pricing_model"`
	BasePrice       float64 `db:"base_price"`
	DurationMinutes int     `db:"duration_minutes"`
	Active          bool    `db:"active"`
	model.Metadata
	model.SoftDelete
}

// PackageTier prices a band of service area in square meters.
// A nil MaxArea means the band is open-ended.
type PackageTier struct {
	ID        string   `db:"id"`
	PackageID string   `db:"package_id"`
	MinArea   float64  `db:"min_area"`
	MaxArea   *float64 `db:"max_area"`
	Price     float64  `db:"price"`
	model.Metadata
}

// PriceFor resolves the package price for the given service area.
// Fixed-price packages ignore the area entirely. Tiered packages pick
// the band containing the area; the boolean reports whether any band
// matched.
func (p *ServicePackage) PriceFor(area float64, tiers []PackageTier) (float64, bool) {
	if p.PricingModel != PricingModelTiered {
		return p.BasePrice, true
	}

	for _, tier := range tiers {
		if area < tier.MinArea {
			continue
		}

		if tier.MaxArea == nil || area <= *tier.MaxArea {
			return tier.Price, true
		}
	}

	return 0, false
}
