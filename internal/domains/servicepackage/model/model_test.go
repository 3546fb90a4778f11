package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sparkle/internal/domains/servicepackage/model"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestServicePackage_PriceFor(t *testing.T) {
	tiers := []model.PackageTier{
		{MinArea: 0, MaxArea: floatPtr(50), Price: 1000},
		{MinArea: 50.01, MaxArea: floatPtr(100), Price: 1800},
		{MinArea: 100.01, MaxArea: nil, Price: 2500},
	}

	fixed := model.ServicePackage{PricingModel: model.PricingModelFixed, BasePrice: 1200}
	tiered := model.ServicePackage{PricingModel: model.PricingModelTiered, BasePrice: 1000}

	tests := []struct {
		name      string
		pkg       model.ServicePackage
		area      float64
		tiers     []model.PackageTier
		wantPrice float64
		wantOK    bool
	}{
		{
			name:      "fixed package ignores the area",
			pkg:       fixed,
			area:      9999,
			tiers:     tiers,
			wantPrice: 1200,
			wantOK:    true,
		},
		{
			name:      "first band",
			pkg:       tiered,
			area:      30,
			tiers:     tiers,
			wantPrice: 1000,
			wantOK:    true,
		},
		{
			name:      "band upper boundary is inclusive",
			pkg:       tiered,
			area:      50,
			tiers:     tiers,
			wantPrice: 1000,
			wantOK:    true,
		},
		{
			name:      "middle band",
			pkg:       tiered,
			area:      75,
			tiers:     tiers,
			wantPrice: 1800,
			wantOK:    true,
		},
		{
			name:      "open-ended band catches large areas",
			pkg:       tiered,
			area:      500,
			tiers:     tiers,
			wantPrice: 2500,
			wantOK:    true,
		},
		{
			name: "area below every band",
			pkg:  tiered,
			area: 10,
			tiers: []model.PackageTier{
				{MinArea: 50, MaxArea: floatPtr(100), Price: 1800},
			},
			wantOK: false,
		},
		{
			name:   "tiered package with no tiers",
			pkg:    tiered,
			area:   30,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, ok := tt.pkg.PriceFor(tt.area, tt.tiers)

			assert.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				assert.Equal(t, tt.wantPrice, price)
			}
		})
	}
}
