// Package projection defines the data structures related to an income
// projection and includes the function for computing it.
package projection

import (
	"math"

	"github.com/iwvelando/inflation-forecast/pkg/datetime"
	"github.com/iwvelando/inflation-forecast/pkg/mathutil"
)

// Input holds everything needed to compute a projection.
type Input struct {
	StartYear            int     `json:"startYear"`
	EndYear              int     `json:"endYear"`
	InflationRatePercent float64 `json:"inflationRatePercent"`
	MonthlyIncome        float64 `json:"monthlyIncome"`
}

// YearRecord holds the nominal and inflation-adjusted yearly income for one year.
type YearRecord struct {
	Year                 int     `json:"year"`
	CurrentYearlyIncome  float64 `json:"currentYearlyIncome"`
	AdjustedYearlyIncome float64 `json:"adjustedYearlyIncome"`
}

// Difference returns how much more the adjusted income is than the nominal one.
func (r YearRecord) Difference() float64 {
	return r.AdjustedYearlyIncome - r.CurrentYearlyIncome
}

// YearCount returns the number of records Project produces for in.
func YearCount(in Input) int {
	return datetime.YearsInclusive(in.StartYear, in.EndYear)
}

// Multiplier returns the compounding factor (1 + rate/100)^offset.
func Multiplier(ratePercent float64, offset int) float64 {
	return math.Pow(mathutil.PercentToFactor(ratePercent), float64(offset))
}

// Project computes one YearRecord per year in [StartYear, EndYear]. An end
// year before the start year yields an empty slice. Values keep full
// precision; rounding is left to the renderer.
func Project(in Input) []YearRecord {
	n := YearCount(in)
	records := make([]YearRecord, n)
	current := mathutil.Annual(in.MonthlyIncome)
	for i := 0; i < n; i++ {
		adjustedMonthly := in.MonthlyIncome * Multiplier(in.InflationRatePercent, i)
		records[i] = YearRecord{
			Year:                 in.StartYear + i,
			CurrentYearlyIncome:  current,
			AdjustedYearlyIncome: mathutil.Annual(adjustedMonthly),
		}
	}
	return records
}

// Summary aggregates a projection.
type Summary struct {
	Years           int     `json:"years"`
	TotalCurrent    float64 `json:"totalCurrent"`
	TotalAdjusted   float64 `json:"totalAdjusted"`
	TotalDifference float64 `json:"totalDifference"`
	FinalMultiplier float64 `json:"finalMultiplier"`
}

// Summarize totals the records produced for in.
func Summarize(in Input, records []YearRecord) Summary {
	s := Summary{Years: len(records), FinalMultiplier: 1}
	for _, r := range records {
		s.TotalCurrent += r.CurrentYearlyIncome
		s.TotalAdjusted += r.AdjustedYearlyIncome
	}
	s.TotalDifference = s.TotalAdjusted - s.TotalCurrent
	if len(records) > 0 {
		s.FinalMultiplier = Multiplier(in.InflationRatePercent, len(records)-1)
	}
	return s
}
