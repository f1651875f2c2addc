// Package constants provides shared constants for the solar-scenario application.
package constants

// Regulatory and unit constants
const (
	// MieterstromCapRatio is the regulatory ceiling for the Mieterstrom
	// end-customer price as a fraction of the local reference tariff
	// (90% per § 42a EnWG).
	MieterstromCapRatio = 0.9

	// CentsPerEuro converts ct/kWh price inputs to EUR/kWh.
	CentsPerEuro = 100.0

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DirectMarketingThresholdKwp is the capacity above which direct
	// marketing of exported energy is typically mandatory.
	DirectMarketingThresholdKwp = 100.0

	// MinRecommendedLifetimeYears is the shortest plant lifetime that
	// produces a meaningful comparison.
	MinRecommendedLifetimeYears = 5
)

// Financial constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
