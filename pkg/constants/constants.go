// Package constants provides shared constants for the inflation-forecast application.
package constants

// Year bounds accepted at the input boundary.
const (
	// MinYear is the earliest start or end year accepted from user input
	MinYear = 1900

	// MaxYear is the latest start or end year accepted from user input
	MaxYear = 9999

	// DefaultYearSpan is how many years after the start year the default end year lies
	DefaultYearSpan = 10
)

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DefaultInflationRate is the default annual inflation rate in percent
	DefaultInflationRate = 2.5

	// DefaultMonthlyIncome is the default monthly income
	DefaultMonthlyIncome = 5000.0

	// DefaultCurrency is the currency label shown next to every amount
	DefaultCurrency = "BDT"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatHTML is the standalone HTML report format
	OutputFormatHTML = "html"
)

// Theme constants
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "INFLATION_FORECAST"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size for the JSON API (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultShutdownTimeout is the default graceful shutdown timeout
	DefaultShutdownTimeout = "10s"
)
