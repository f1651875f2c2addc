// Package configcheck provides shared configuration processing utilities.
package configcheck

import "github.com/sonnenplan/solar-scenario/pkg/validation"

// PlantInfo represents the plant-level configuration information relevant
// to validation.
type PlantInfo struct {
	CapacityKwp          float64
	GridReferenceCt      float64
	DirectMarketingFeeCt float64
	LifetimeYears        int
}

// ScenarioInfo represents scenario configuration information
type ScenarioInfo struct {
	Name            string
	Active          bool
	Subsidized      bool
	InternalPriceCt float64
}

// Processor handles configuration processing and validation
type Processor struct{}

// NewProcessor creates a new configuration processor
func NewProcessor() *Processor {
	return &Processor{}
}

// ValidateConfiguration validates the configuration and returns warnings.
// Inactive scenarios are skipped.
func (p *Processor) ValidateConfiguration(plant PlantInfo, scenarios []ScenarioInfo) []string {
	var warnings []string

	if warning := validation.ValidateDirectMarketing(plant.CapacityKwp, plant.DirectMarketingFeeCt); warning != "" {
		warnings = append(warnings, warning)
	}
	if warning := validation.ValidateLifetime(plant.LifetimeYears); warning != "" {
		warnings = append(warnings, warning)
	}

	for _, scenario := range scenarios {
		if !scenario.Active {
			continue
		}
		if !scenario.Subsidized {
			continue
		}
		if warning := validation.ValidatePriceCap(scenario.Name, scenario.InternalPriceCt, plant.GridReferenceCt); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	if len(warnings) == 0 {
		return nil
	}
	return warnings
}
