package output

import (
	"io"
	"sort"
	"strings"

	"github.com/iwvelando/inflation-forecast/pkg/constants"
)

// Formatter renders a Report to w.
type Formatter interface {
	Format(w io.Writer, r Report) error
	// Name returns the canonical format name.
	Name() string
	// ContentType is used when the output is served over HTTP.
	ContentType() string
}

var builtInFormatters = []Formatter{
	PrettyFormatter{},
	CSVFormatter{},
	JSONFormatter{},
	HTMLFormatter{},
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"table":       constants.OutputFormatPretty,
	"text":        constants.OutputFormatPretty,
	"csv-report":  constants.OutputFormatCSV,
	"json-pretty": constants.OutputFormatJSON,
	"html-report": constants.OutputFormatHTML,
	"web":         constants.OutputFormatHTML,
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// GetFormatterByName fetches a registered formatter, resolving aliases. It
// returns nil for unknown names.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
