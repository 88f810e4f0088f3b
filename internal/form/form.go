// Package form converts raw user text into a projection.Input.
//
// Every front-end (web form, JSON API, CLI flags) goes through Parse so the
// calculator only ever sees typed, range-checked values.
package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/inflation-forecast/internal/projection"
	"github.com/iwvelando/inflation-forecast/pkg/constants"
	"github.com/iwvelando/inflation-forecast/pkg/datetime"
	"github.com/iwvelando/inflation-forecast/pkg/mathutil"
	"go.uber.org/multierr"
)

// Field names as they appear in query strings, JSON bodies and error messages.
const (
	FieldStartYear     = "startYear"
	FieldEndYear       = "endYear"
	FieldInflationRate = "inflationRate"
	FieldMonthlyIncome = "monthlyIncome"
)

// Raw holds unparsed user input. Blank fields fall back to Defaults.
type Raw struct {
	StartYear     string
	EndYear       string
	InflationRate string
	MonthlyIncome string
}

// Defaults supplies the values used for blank fields.
type Defaults struct {
	StartYear     int
	EndYear       int
	InflationRate float64
	MonthlyIncome float64
}

// Overrides replaces individual built-in defaults. Zero years and nil amounts
// keep the built-in value; a non-nil amount wins even when it is zero.
type Overrides struct {
	StartYear     int
	EndYear       int
	InflationRate *float64
	MonthlyIncome *float64
}

// DefaultsFor returns the defaults relative to now: the current year through
// ten years later, at the default rate and income, with overrides applied.
func DefaultsFor(now time.Time, overrides Overrides) Defaults {
	d := Defaults{
		StartYear:     datetime.CurrentYear(now),
		InflationRate: constants.DefaultInflationRate,
		MonthlyIncome: constants.DefaultMonthlyIncome,
	}
	if overrides.StartYear != 0 {
		d.StartYear = overrides.StartYear
	}
	d.EndYear = d.StartYear + constants.DefaultYearSpan
	if overrides.EndYear != 0 {
		d.EndYear = overrides.EndYear
	}
	if overrides.InflationRate != nil {
		d.InflationRate = *overrides.InflationRate
	}
	if overrides.MonthlyIncome != nil {
		d.MonthlyIncome = *overrides.MonthlyIncome
	}
	return d
}

// Raw renders the defaults as form text, e.g. to prefill an empty form.
func (d Defaults) Raw() Raw {
	return Raw{
		StartYear:     strconv.Itoa(d.StartYear),
		EndYear:       strconv.Itoa(d.EndYear),
		InflationRate: strconv.FormatFloat(d.InflationRate, 'f', -1, 64),
		MonthlyIncome: strconv.FormatFloat(d.MonthlyIncome, 'f', -1, 64),
	}
}

// FieldError describes one rejected field.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

// Result is a parsed input plus any warnings about unusual but accepted values.
type Result struct {
	Input    projection.Input
	Warnings []string
}

// Parse validates raw and converts it into a projection.Input. All field
// errors are combined into the returned error; use multierr.Errors to list them.
func Parse(raw Raw, defaults Defaults) (Result, error) {
	var res Result
	var err error

	start, startErr := parseYear(FieldStartYear, raw.StartYear, defaults.StartYear)
	err = multierr.Append(err, startErr)

	end, endErr := parseYear(FieldEndYear, raw.EndYear, defaults.EndYear)
	err = multierr.Append(err, endErr)

	rate, rateErr := parseAmount(FieldInflationRate, raw.InflationRate, defaults.InflationRate)
	err = multierr.Append(err, rateErr)

	income, incomeErr := parseAmount(FieldMonthlyIncome, raw.MonthlyIncome, defaults.MonthlyIncome)
	err = multierr.Append(err, incomeErr)

	if err != nil {
		return res, err
	}

	res.Input = projection.Input{
		StartYear:            start,
		EndYear:              end,
		InflationRatePercent: rate,
		MonthlyIncome:        income,
	}
	res.Warnings = Warnings(res.Input)
	return res, nil
}

// Warnings lists accepted values a user is likely to want flagged.
func Warnings(in projection.Input) []string {
	var warnings []string
	if in.EndYear < in.StartYear {
		warnings = append(warnings, fmt.Sprintf("end year %d is before start year %d; the projection is empty", in.EndYear, in.StartYear))
	}
	if in.MonthlyIncome < 0 {
		warnings = append(warnings, fmt.Sprintf("monthly income %s is negative", strconv.FormatFloat(in.MonthlyIncome, 'f', -1, 64)))
	}
	switch {
	case in.InflationRatePercent == -100:
		warnings = append(warnings, "an inflation rate of -100% reduces adjusted income to zero after the first year")
	case in.InflationRatePercent < -100:
		warnings = append(warnings, fmt.Sprintf("inflation rate %s%% is below -100%%; adjusted income alternates sign", strconv.FormatFloat(in.InflationRatePercent, 'f', -1, 64)))
	}
	return warnings
}

// Errors flattens err into its field errors, skipping anything else.
func Errors(err error) []*FieldError {
	var fieldErrs []*FieldError
	for _, e := range multierr.Errors(err) {
		if fe, ok := e.(*FieldError); ok {
			fieldErrs = append(fieldErrs, fe)
		}
	}
	return fieldErrs
}

func parseYear(field, value string, fallback int) (int, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	year, err := datetime.ParseYear(value)
	switch {
	case errors.Is(err, datetime.ErrYearOutOfRange):
		return 0, &FieldError{Field: field, Value: value, Reason: fmt.Sprintf("must be between %d and %d", constants.MinYear, constants.MaxYear)}
	case err != nil:
		return 0, &FieldError{Field: field, Value: value, Reason: "must be a whole number"}
	}
	return year, nil
}

func parseAmount(field, value string, fallback float64) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	amount, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || !mathutil.IsFinite(amount) {
		return 0, &FieldError{Field: field, Value: value, Reason: "must be a finite number"}
	}
	return amount, nil
}
