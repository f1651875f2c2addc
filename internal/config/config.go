// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"

	"github.com/sonnenplan/solar-scenario/pkg/configcheck"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for solar-scenario. Plant, price,
// cost, and financial parameters are shared between all scenarios; each
// scenario only selects the supply model and its internal sale price.
type Configuration struct {
	Plant     Plant
	Prices    Prices
	Costs     Costs
	Finance   Finance
	Battery   Battery
	Scenarios []Scenario
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Plant describes the installation and its energy split. Shares are
// percentages as entered by the user; unit conversion to fractions happens
// in pkg/adapters.
type Plant struct {
	CapacityKwp                 float64
	SpecificYieldKwhPerKwp      float64
	SelfConsumptionSharePercent float64
	// GridSharePercent optionally overrides the energy split; when set the
	// self-consumption share becomes 100 - GridSharePercent.
	GridSharePercent *float64
}

// Prices holds the price and remuneration parameters shared between
// scenarios, in ct/kWh.
type Prices struct {
	GridReferenceCt      float64 // local reference tariff (basis for the Mieterstrom cap)
	FeedInCt             float64 // feed-in remuneration
	DirectMarketingFeeCt float64 // fee deducted from feed-in remuneration
	PremiumCt            float64 // Mieterstrom premium on self-consumed energy
}

// Costs holds the investment and operating cost parameters.
type Costs struct {
	CapexEur           float64
	OpexPercentOfCapex float64 // %/year of capex
	OpexFixedEur       float64 // EUR/year
}

// Finance holds lifetime and the annual rates, in %/year.
type Finance struct {
	LifetimeYears      int
	DegradationPercent float64
	InflationPercent   float64
	PriceGrowthPercent float64
	DiscountPercent    float64
}

// Battery describes the optional storage/optimization assumption that
// shifts the self-consumption share before the engine runs.
type Battery struct {
	Enabled      bool
	DeltaPercent float64 // additional self-consumption, percentage points
}

// Scenario selects one supply model to compute.
type Scenario struct {
	Name            string
	Active          bool
	Subsidized      bool    // Mieterstrom: price cap and premium apply
	InternalPriceCt float64 // planned on-site sale price, ct/kWh
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return unmarshalConfiguration(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from an
// in-memory reader; used by the HTTP server for uploaded and editor-driven
// configs.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return unmarshalConfiguration(v)
}

func unmarshalConfiguration(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Warnings are advisory; hard parameter errors surface
// from the engine instead.
func (c *Configuration) ValidateConfiguration() []string {
	var scenarios []configcheck.ScenarioInfo
	for _, scenario := range c.Scenarios {
		scenarios = append(scenarios, configcheck.ScenarioInfo{
			Name:            scenario.Name,
			Active:          scenario.Active,
			Subsidized:      scenario.Subsidized,
			InternalPriceCt: scenario.InternalPriceCt,
		})
	}

	processor := configcheck.NewProcessor()
	return processor.ValidateConfiguration(configcheck.PlantInfo{
		CapacityKwp:          c.Plant.CapacityKwp,
		GridReferenceCt:      c.Prices.GridReferenceCt,
		DirectMarketingFeeCt: c.Prices.DirectMarketingFeeCt,
		LifetimeYears:        c.Finance.LifetimeYears,
	}, scenarios)
}
