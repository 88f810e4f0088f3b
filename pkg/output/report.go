// Package output provides utilities for formatting and displaying projection results.
package output

import (
	"strconv"

	"github.com/iwvelando/inflation-forecast/internal/projection"
	"github.com/iwvelando/inflation-forecast/pkg/constants"
	"github.com/iwvelando/inflation-forecast/pkg/format"
	"github.com/iwvelando/inflation-forecast/pkg/mathutil"
)

// Report is everything a formatter needs to render one projection.
type Report struct {
	Input    projection.Input
	Records  []projection.YearRecord
	Summary  projection.Summary
	Currency string
	Theme    string
	Warnings []string
}

// NewReport computes the projection for in and wraps it for rendering.
func NewReport(in projection.Input, currency, theme string, warnings []string) Report {
	if theme == "" {
		theme = constants.ThemeDark
	}
	records := projection.Project(in)
	return Report{
		Input:    in,
		Records:  records,
		Summary:  projection.Summarize(in, records),
		Currency: currency,
		Theme:    theme,
		Warnings: warnings,
	}
}

// Row is a YearRecord formatted for display.
type Row struct {
	Year       string
	Current    string
	Adjusted   string
	Difference string
}

// Rows formats every record with whole-unit rounding and the currency label.
func (r Report) Rows() []Row {
	rows := make([]Row, 0, len(r.Records))
	for _, rec := range r.Records {
		rows = append(rows, Row{
			Year:       strconv.Itoa(rec.Year),
			Current:    format.Currency(r.Currency, rec.CurrentYearlyIncome),
			Adjusted:   format.Currency(r.Currency, rec.AdjustedYearlyIncome),
			Difference: format.SignedCurrency(r.Currency, roundedDifference(rec.CurrentYearlyIncome, rec.AdjustedYearlyIncome)),
		})
	}
	return rows
}

// Dark reports whether the report uses the dark theme.
func (r Report) Dark() bool {
	return r.Theme != constants.ThemeLight
}

// RoundedTotalDifference is the total difference as shown beside the rounded totals.
func (r Report) RoundedTotalDifference() float64 {
	return roundedDifference(r.Summary.TotalCurrent, r.Summary.TotalAdjusted)
}

// roundedDifference subtracts the rounded amounts so a displayed row adds up.
func roundedDifference(current, adjusted float64) float64 {
	return mathutil.RoundWhole(adjusted) - mathutil.RoundWhole(current)
}

// wholeString renders a rounded amount without grouping, as used in CSV.
func wholeString(v float64) string {
	return strconv.FormatFloat(mathutil.RoundWhole(v), 'f', 0, 64)
}
