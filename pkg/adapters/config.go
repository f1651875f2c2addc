// Package adapters converts configuration structures into the engine's
// input types. This is the unit-conversion boundary: configuration carries
// percentages and ct/kWh as entered by the user, the engine works in
// fractions and EUR/kWh.
package adapters

import (
	"github.com/sonnenplan/solar-scenario/internal/config"
	"github.com/sonnenplan/solar-scenario/pkg/constants"
	"github.com/sonnenplan/solar-scenario/pkg/scenario"
)

// ToEngineInput builds the immutable engine input for one configured
// scenario. The Mieterstrom price cap is derived here as 90% of the local
// reference tariff; the engine receives the cap, never the ratio.
func ToEngineInput(conf config.Configuration, sc config.Scenario) scenario.Input {
	var override *float64
	if conf.Plant.GridSharePercent != nil {
		fraction := *conf.Plant.GridSharePercent / constants.PercentageMultiplier
		override = &fraction
	}

	gridPriceEur := conf.Prices.GridReferenceCt / constants.CentsPerEuro

	return scenario.Input{
		Label: sc.Name,

		CapacityKwp:   conf.Plant.CapacityKwp,
		SpecificYield: conf.Plant.SpecificYieldKwhPerKwp,

		SelfConsumptionShare: conf.Plant.SelfConsumptionSharePercent / constants.PercentageMultiplier,
		GridShareOverride:    override,

		GridPrice:          gridPriceEur,
		FeedInPrice:        conf.Prices.FeedInCt / constants.CentsPerEuro,
		DirectMarketingFee: conf.Prices.DirectMarketingFeeCt / constants.CentsPerEuro,
		InternalPrice:      sc.InternalPriceCt / constants.CentsPerEuro,
		PriceCap:           constants.MieterstromCapRatio * gridPriceEur,
		Premium:            conf.Prices.PremiumCt / constants.CentsPerEuro,

		Capex:              conf.Costs.CapexEur,
		OpexPercentOfCapex: conf.Costs.OpexPercentOfCapex / constants.PercentageMultiplier,
		OpexFixed:          conf.Costs.OpexFixedEur,

		LifetimeYears:   conf.Finance.LifetimeYears,
		DegradationRate: conf.Finance.DegradationPercent / constants.PercentageMultiplier,
		InflationRate:   conf.Finance.InflationPercent / constants.PercentageMultiplier,
		PriceGrowthRate: conf.Finance.PriceGrowthPercent / constants.PercentageMultiplier,
		DiscountRate:    conf.Finance.DiscountPercent / constants.PercentageMultiplier,

		Subsidized: sc.Subsidized,
	}
}
