// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/iwvelando/inflation-forecast/internal/form"
	"github.com/iwvelando/inflation-forecast/pkg/constants"
	"github.com/iwvelando/inflation-forecast/pkg/output"
	"github.com/iwvelando/inflation-forecast/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for inflation-forecast.
type Configuration struct {
	Currency   string           `yaml:"currency"`
	Projection ProjectionConfig `yaml:"projection"`
	Logging    LoggingConfig    `yaml:"logging,omitempty"`
	Output     OutputConfig     `yaml:"output,omitempty"`
}

// ProjectionConfig holds default inputs for blank form fields. Zero years and
// unset amounts fall back to the built-in defaults (current year, +10 years,
// 2.5%, 5000). An explicit inflationRate or monthlyIncome of 0 is kept.
type ProjectionConfig struct {
	StartYear     int      `yaml:"startYear"`
	EndYear       int      `yaml:"endYear"`
	InflationRate *float64 `yaml:"inflationRate,omitempty"`
	MonthlyIncome *float64 `yaml:"monthlyIncome,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json, html
	Theme  string `yaml:"theme,omitempty"`  // dark, light
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables prefixed with INFLATION_FORECAST_
// override file values, and a .env file in the working directory is loaded
// first if present.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

// LoadOptionalConfiguration is LoadConfiguration except that a missing file
// yields the defaults (plus environment overrides) instead of an error.
func LoadOptionalConfiguration(configPath string) (*Configuration, error) {
	conf, err := LoadConfiguration(configPath)
	if err == nil {
		return conf, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return decode(newViper())
}

func newViper() *viper.Viper {
	// A missing .env is the common case.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default or an env binding for AutomaticEnv to apply
	// it during Unmarshal. Bound keys without a value stay nil.
	v.SetDefault("currency", constants.DefaultCurrency)
	v.SetDefault("projection.startYear", 0)
	v.SetDefault("projection.endYear", 0)
	_ = v.BindEnv("projection.inflationRate")
	_ = v.BindEnv("projection.monthlyIncome")
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.theme", constants.ThemeDark)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	configuration.Currency = strings.TrimSpace(configuration.Currency)
	return &configuration, nil
}

// Defaults returns the form defaults for the given moment.
func (c *Configuration) Defaults(now time.Time) form.Defaults {
	return form.DefaultsFor(now, form.Overrides{
		StartYear:     c.Projection.StartYear,
		EndYear:       c.Projection.EndYear,
		InflationRate: c.Projection.InflationRate,
		MonthlyIncome: c.Projection.MonthlyIncome,
	})
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Currency == "" {
		warnings = append(warnings, "currency label is empty; amounts will be shown without a currency")
	}

	p := c.Projection
	for _, y := range []struct {
		name  string
		value int
	}{{"startYear", p.StartYear}, {"endYear", p.EndYear}} {
		if y.value != 0 && (y.value < constants.MinYear || y.value > constants.MaxYear) {
			warnings = append(warnings, fmt.Sprintf("projection.%s %d is outside %d-%d and will be rejected by the input parser",
				y.name, y.value, constants.MinYear, constants.MaxYear))
		}
	}
	if p.StartYear != 0 && p.EndYear != 0 && p.EndYear < p.StartYear {
		warnings = append(warnings, fmt.Sprintf("projection.endYear %d is before projection.startYear %d; the default projection is empty",
			p.EndYear, p.StartYear))
	}
	if p.MonthlyIncome != nil && *p.MonthlyIncome < 0 {
		warnings = append(warnings, "projection.monthlyIncome is negative")
	}
	if p.InflationRate != nil && *p.InflationRate <= -100 {
		warnings = append(warnings, "projection.inflationRate is -100% or lower")
	}

	if err := validation.ValidateOutputFormat(output.NormalizeFormatName(c.Output.Format)); err != nil {
		warnings = append(warnings, err.Error())
	}
	if err := validation.ValidateTheme(c.Output.Theme); err != nil {
		warnings = append(warnings, err.Error())
	}
	if err := validation.ValidateLogLevel(c.Logging.Level); err != nil {
		warnings = append(warnings, err.Error())
	}
	if err := validation.ValidateLogFormat(c.Logging.Format); err != nil {
		warnings = append(warnings, err.Error())
	}

	return warnings
}
