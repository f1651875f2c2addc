// Package battery applies the optional storage/optimization assumption to
// the plant parameters before the scenario engine runs. Shifting the
// self-consumption share is an input transformation, deliberately kept
// outside the engine's pure contract.
package battery

import (
	"go.uber.org/zap"

	"github.com/sonnenplan/solar-scenario/internal/config"
)

// Notes attached to results depending on the storage assumption.
const (
	NoteWithStorage    = "with storage/optimization"
	NoteWithoutStorage = "without storage"
)

// Apply shifts the self-consumption share up by the configured delta and
// the grid-share override down by the same delta, both clamped to
// [0, 100] percent. Returns the adjusted plant parameters and the
// assumption note for the results. When the battery is disabled the plant
// is returned unchanged.
func Apply(logger *zap.Logger, plant config.Plant, battery config.Battery) (config.Plant, string) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if !battery.Enabled {
		return plant, NoteWithoutStorage
	}

	adjusted := plant
	adjusted.SelfConsumptionSharePercent = clampPercent(plant.SelfConsumptionSharePercent + battery.DeltaPercent)

	if plant.GridSharePercent != nil {
		override := clampPercent(*plant.GridSharePercent - battery.DeltaPercent)
		adjusted.GridSharePercent = &override
	}

	logger.Debug("applied storage assumption to plant parameters",
		zap.String("op", "battery.Apply"),
		zap.Float64("deltaPercent", battery.DeltaPercent),
		zap.Float64("selfConsumptionSharePercent", adjusted.SelfConsumptionSharePercent),
	)

	return adjusted, NoteWithStorage
}

func clampPercent(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
