// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/sonnenplan/solar-scenario/pkg/constants"
)

// ValidatePriceCap warns when a subsidized scenario plans an internal price
// above the regulatory ceiling of 90% of the local reference tariff. The
// engine clamps the price to the cap, so this is advisory only.
func ValidatePriceCap(scenarioName string, internalPriceCt, gridReferenceCt float64) string {
	capCt := constants.MieterstromCapRatio * gridReferenceCt
	if internalPriceCt > capCt {
		return fmt.Sprintf("Scenario '%s' plans an internal price of %.1f ct/kWh above the Mieterstrom cap of %.1f ct/kWh - the cap will be applied",
			scenarioName, internalPriceCt, capCt)
	}
	return ""
}

// ValidateDirectMarketing warns when a plant above the direct-marketing
// capacity threshold is modeled without a marketing fee.
func ValidateDirectMarketing(capacityKwp, feeCt float64) string {
	if capacityKwp > constants.DirectMarketingThresholdKwp && feeCt == 0 {
		return fmt.Sprintf("Plant capacity %.0f kWp exceeds %.0f kWp but no direct marketing fee is configured - export revenue may be overstated",
			capacityKwp, constants.DirectMarketingThresholdKwp)
	}
	return ""
}

// ValidateLifetime warns about lifetimes too short for a meaningful
// comparison.
func ValidateLifetime(lifetimeYears int) string {
	if lifetimeYears >= 1 && lifetimeYears < constants.MinRecommendedLifetimeYears {
		return fmt.Sprintf("Lifetime of %d years is below the recommended minimum of %d years",
			lifetimeYears, constants.MinRecommendedLifetimeYears)
	}
	return ""
}
