// Package compare orchestrates the scenario runs: it applies the storage
// assumption, adapts the configuration into engine inputs, and invokes the
// engine once per active scenario. Each run is independent; no state is
// shared between scenarios.
package compare

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sonnenplan/solar-scenario/internal/battery"
	"github.com/sonnenplan/solar-scenario/internal/config"
	"github.com/sonnenplan/solar-scenario/pkg/adapters"
	"github.com/sonnenplan/solar-scenario/pkg/scenario"
)

// RunScenarios computes the results for all active scenarios in
// configuration order. A validation failure in any scenario aborts the
// whole comparison.
func RunScenarios(logger *zap.Logger, conf config.Configuration) ([]scenario.Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	plant, note := battery.Apply(logger, conf.Plant, conf.Battery)
	conf.Plant = plant

	var results []scenario.Result
	for _, sc := range conf.Scenarios {
		if !sc.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", sc.Name),
				zap.String("op", "compare.RunScenarios"),
			)
			continue
		}

		input := adapters.ToEngineInput(conf, sc)
		result, err := scenario.Run(input)
		if err != nil {
			return results, fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		result.Note = note

		logger.Info("scenario computed",
			zap.String("op", "compare.RunScenarios"),
			zap.String("scenario", sc.Name),
			zap.Float64("npv", result.NPV),
			zap.Bool("subsidized", sc.Subsidized),
		)

		results = append(results, result)
	}

	return results, nil
}
