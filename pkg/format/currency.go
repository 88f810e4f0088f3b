// Package format renders amounts for display.
package format

import (
	"math"
	"strings"

	"github.com/iwvelando/inflation-forecast/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Number returns the amount rounded to a whole unit with thousands separators (e.g., "-1,235").
func Number(amount float64) string {
	return printer.Sprintf("%.0f", mathutil.RoundWhole(amount))
}

// Currency returns the amount prefixed with the currency label (e.g., "BDT 12,000", "-BDT 300").
func Currency(label string, amount float64) string {
	rounded := mathutil.RoundWhole(amount)
	if rounded < 0 {
		return "-" + withLabel(label, Number(math.Abs(rounded)))
	}
	return withLabel(label, Number(rounded))
}

// SignedCurrency is Currency with an explicit plus sign for positive amounts (e.g., "+BDT 1,200").
func SignedCurrency(label string, amount float64) string {
	if mathutil.RoundWhole(amount) > 0 {
		return "+" + Currency(label, amount)
	}
	return Currency(label, amount)
}

// Thousands returns a compact axis label in thousands (e.g., "BDT 12k").
func Thousands(label string, amount float64) string {
	k := math.Round(amount / 1000)
	if k == 0 {
		k = 0
	}
	return withLabel(label, printer.Sprintf("%.0fk", k))
}

func withLabel(label, value string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return value
	}
	return label + " " + value
}
