package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/inflation-forecast/pkg/constants"
	"github.com/iwvelando/inflation-forecast/pkg/format"
)

var tableHeader = []string{"Year", "Current Income", "Inflation-Adjusted Income", "Difference"}

// PrettyFormatter outputs a human-readable rather than machine-readable table.
type PrettyFormatter struct{}

func (PrettyFormatter) Name() string        { return constants.OutputFormatPretty }
func (PrettyFormatter) ContentType() string { return "text/plain; charset=utf-8" }

func (PrettyFormatter) Format(w io.Writer, r Report) error {
	rate := strconv.FormatFloat(r.Input.InflationRatePercent, 'f', -1, 64)
	if _, err := fmt.Fprintf(w, "--- Inflation-adjusted income, %d-%d at %s%% per year ---\n",
		r.Input.StartYear, r.Input.EndYear, rate); err != nil {
		return err
	}
	for _, warning := range r.Warnings {
		if _, err := fmt.Fprintf(w, "Warning: %s\n", warning); err != nil {
			return err
		}
	}

	rows := r.Rows()
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No years in range.")
		return err
	}

	widths := make([]int, len(tableHeader))
	for i, h := range tableHeader {
		widths[i] = len(h)
	}
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		c := []string{row.Year, row.Current, row.Adjusted, row.Difference}
		for i, v := range c {
			if len(v) > widths[i] {
				widths[i] = len(v)
			}
		}
		cells = append(cells, c)
	}

	underline := make([]string, len(tableHeader))
	for i := range tableHeader {
		underline[i] = strings.Repeat("_", widths[i])
	}
	if err := writeTableLine(w, tableHeader, widths); err != nil {
		return err
	}
	if err := writeTableLine(w, underline, widths); err != nil {
		return err
	}
	for _, c := range cells {
		if err := writeTableLine(w, c, widths); err != nil {
			return err
		}
	}

	s := r.Summary
	_, err := fmt.Fprintf(w, "\nTotal over %d years: current %s, adjusted %s, difference %s (final multiplier %.4f)\n",
		s.Years,
		format.Currency(r.Currency, s.TotalCurrent),
		format.Currency(r.Currency, s.TotalAdjusted),
		format.SignedCurrency(r.Currency, r.RoundedTotalDifference()),
		s.FinalMultiplier)
	return err
}

// writeTableLine left-aligns the year column and right-aligns amounts.
func writeTableLine(w io.Writer, cells []string, widths []int) error {
	parts := make([]string, len(cells))
	for i, c := range cells {
		if i == 0 {
			parts[i] = fmt.Sprintf("%-*s", widths[i], c)
		} else {
			parts[i] = fmt.Sprintf("%*s", widths[i], c)
		}
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, " | "))
	return err
}

// CSVFormatter outputs in comma-separated value format with whole-unit amounts.
type CSVFormatter struct{}

func (CSVFormatter) Name() string        { return constants.OutputFormatCSV }
func (CSVFormatter) ContentType() string { return "text/csv; charset=utf-8" }

func (CSVFormatter) Format(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "current_income", "adjusted_income", "difference"}); err != nil {
		return err
	}
	for _, rec := range r.Records {
		row := []string{
			strconv.Itoa(rec.Year),
			wholeString(rec.CurrentYearlyIncome),
			wholeString(rec.AdjustedYearlyIncome),
			wholeString(roundedDifference(rec.CurrentYearlyIncome, rec.AdjustedYearlyIncome)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVString renders the report as CSV, returning an empty string on failure.
func CSVString(r Report) string {
	var b strings.Builder
	if err := (CSVFormatter{}).Format(&b, r); err != nil {
		return ""
	}
	return b.String()
}
