package locgen

import (
	"github.com/rs/zerolog"
)

// Config contains everything a generator run needs.
type Config struct {
	InputDir       string         `mapstructure:"input"`           // Directory of CSV sources (default: "location-csvs")
	TableOutput    string         `mapstructure:"table-out"`       // Lookup table path (default: "location" + format extension)
	ResourceOutput string         `mapstructure:"rc-out"`          // String table path (default: "location.rc")
	Format         TableFormat    `mapstructure:"format"`          // Lookup table language (default: go)
	Package        string         `mapstructure:"package"`         // Go package or C++ namespace of the lookup table
	Language       string         `mapstructure:"language"`        // Resource script LANGUAGE arguments
	FirstStringID  uint32         `mapstructure:"first-string-id"` // ID of the first location string
	Territories    []Territory    `mapstructure:"territories"`     // Known routes
	IgnorePatterns []string       `mapstructure:"ignore"`          // gitignore-style patterns for input files
	DryRun         bool           `mapstructure:"dry-run"`         // Render but don't write outputs
	Logger         zerolog.Logger `mapstructure:"-"`
}

// Option is a functional option for configuring a generator run.
type Option func(*Config)

// WithInputDir sets the directory the CSV sources are read from.
func WithInputDir(dir string) Option {
	return func(c *Config) {
		c.InputDir = dir
	}
}

// WithTableOutput sets the path of the generated lookup table.
func WithTableOutput(path string) Option {
	return func(c *Config) {
		c.TableOutput = path
	}
}

// WithResourceOutput sets the path of the generated resource script.
func WithResourceOutput(path string) Option {
	return func(c *Config) {
		c.ResourceOutput = path
	}
}

// WithTableFormat selects the language of the lookup table.
func WithTableFormat(f TableFormat) Option {
	return func(c *Config) {
		c.Format = f
	}
}

// WithPackage sets the Go package (or C++ namespace) of the lookup table.
func WithPackage(name string) Option {
	return func(c *Config) {
		c.Package = name
	}
}

// WithLanguage sets the resource script LANGUAGE arguments.
func WithLanguage(lang string) Option {
	return func(c *Config) {
		c.Language = lang
	}
}

// WithFirstStringID sets the resource ID of the first location string.
func WithFirstStringID(id uint32) Option {
	return func(c *Config) {
		c.FirstStringID = id
	}
}

// WithTerritories replaces the known territories.
func WithTerritories(ts ...Territory) Option {
	return func(c *Config) {
		c.Territories = ts
	}
}

// WithIgnorePatterns replaces the input file ignore patterns.
func WithIgnorePatterns(patterns ...string) Option {
	return func(c *Config) {
		c.IgnorePatterns = patterns
	}
}

// WithDryRun renders the artifacts without writing them.
func WithDryRun(dryRun bool) Option {
	return func(c *Config) {
		c.DryRun = dryRun
	}
}

// WithLogger sets the logger used for progress reporting.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		InputDir:       "location-csvs",
		ResourceOutput: "location.rc",
		Format:         FormatGo,
		Language:       DefaultLanguage,
		FirstStringID:  DefaultFirstStringID,
		Territories:    append([]Territory(nil), DefaultTerritories...),
		IgnorePatterns: append([]string(nil), DefaultIgnorePatterns...),
		Logger:         zerolog.Nop(),
	}
}

// tablePackage returns the lookup table package, defaulting by format.
func (c *Config) tablePackage(format TableFormat) string {
	if c.Package != "" {
		return c.Package
	}
	if format == FormatCpp {
		return "trainlist8::location"
	}
	return "location"
}
