// Package constants provides shared constants for the sement application.
package constants

// Solver constants
const (
	// ProportionTolerance is the tolerance for the blend-sum and bound checks
	ProportionTolerance = 1e-6

	// SimplexTolerance is the pivot tolerance handed to the LP solver
	SimplexTolerance = 1e-10
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

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Quality target ranges accepted by configuration validation. The targets
// are informational and never reach the solver.
const (
	// MinStrengthTarget is the lowest accepted early-strength target (MPa)
	MinStrengthTarget = 10.0

	// MaxStrengthTarget is the highest accepted early-strength target (MPa)
	MaxStrengthTarget = 20.0

	// MinFinenessTarget is the lowest accepted 45um fineness target (%)
	MinFinenessTarget = 10.0

	// MaxFinenessTarget is the highest accepted 45um fineness target (%)
	MaxFinenessTarget = 30.0
)
