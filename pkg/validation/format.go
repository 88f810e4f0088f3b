// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/inflation-forecast/pkg/constants"
)

var outputFormats = []string{
	constants.OutputFormatPretty,
	constants.OutputFormatCSV,
	constants.OutputFormatJSON,
	constants.OutputFormatHTML,
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
// Aliases must be resolved by the caller first.
func ValidateOutputFormat(format string) error {
	for _, f := range outputFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("expected output format of %s, got %s", strings.Join(outputFormats, ", "), format)
}

// ValidateLogLevel checks if the level is understood by the logger.
// An empty level is accepted and means "info".
func ValidateLogLevel(level string) error {
	switch level {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	}
	return fmt.Errorf("invalid log level: %s", level)
}

// ValidateLogFormat checks if the log encoding is supported.
// An empty format is accepted and means "json".
func ValidateLogFormat(format string) error {
	switch format {
	case "", "json", "console":
		return nil
	}
	return fmt.Errorf("invalid log format: %s", format)
}

// ValidateTheme checks if the theme is one the renderers know.
func ValidateTheme(theme string) error {
	if theme != constants.ThemeDark && theme != constants.ThemeLight {
		return fmt.Errorf("expected theme of %s or %s, got %s", constants.ThemeDark, constants.ThemeLight, theme)
	}
	return nil
}
