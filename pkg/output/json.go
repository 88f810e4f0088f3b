package output

import (
	"io"

	json "github.com/goccy/go-json"
	"github.com/iwvelando/inflation-forecast/internal/projection"
	"github.com/iwvelando/inflation-forecast/pkg/constants"
	"github.com/iwvelando/inflation-forecast/pkg/format"
	"github.com/iwvelando/inflation-forecast/pkg/mathutil"
)

// Payload is the JSON shape of a report. Non-finite amounts are encoded as
// null since JSON has no NaN or Infinity.
type Payload struct {
	Input    projection.Input `json:"input"`
	Currency string           `json:"currency"`
	Records  []RecordPayload  `json:"records"`
	Summary  SummaryPayload   `json:"summary"`
	Warnings []string         `json:"warnings,omitempty"`
}

// RecordPayload is one year with full-precision values and display strings.
type RecordPayload struct {
	Year                 int      `json:"year"`
	CurrentYearlyIncome  *float64 `json:"currentYearlyIncome"`
	AdjustedYearlyIncome *float64 `json:"adjustedYearlyIncome"`
	Difference           *float64 `json:"difference"`
	CurrentDisplay       string   `json:"currentDisplay"`
	AdjustedDisplay      string   `json:"adjustedDisplay"`
	DifferenceDisplay    string   `json:"differenceDisplay"`
}

// SummaryPayload mirrors projection.Summary.
type SummaryPayload struct {
	Years           int      `json:"years"`
	TotalCurrent    *float64 `json:"totalCurrent"`
	TotalAdjusted   *float64 `json:"totalAdjusted"`
	TotalDifference *float64 `json:"totalDifference"`
	FinalMultiplier *float64 `json:"finalMultiplier"`
}

// NewPayload converts a report into its JSON shape.
func NewPayload(r Report) Payload {
	p := Payload{
		Input:    r.Input,
		Currency: r.Currency,
		Records:  make([]RecordPayload, 0, len(r.Records)),
		Summary: SummaryPayload{
			Years:           r.Summary.Years,
			TotalCurrent:    finite(r.Summary.TotalCurrent),
			TotalAdjusted:   finite(r.Summary.TotalAdjusted),
			TotalDifference: finite(r.Summary.TotalDifference),
			FinalMultiplier: finite(r.Summary.FinalMultiplier),
		},
		Warnings: r.Warnings,
	}
	for _, rec := range r.Records {
		p.Records = append(p.Records, RecordPayload{
			Year:                 rec.Year,
			CurrentYearlyIncome:  finite(rec.CurrentYearlyIncome),
			AdjustedYearlyIncome: finite(rec.AdjustedYearlyIncome),
			Difference:           finite(rec.Difference()),
			CurrentDisplay:       format.Currency(r.Currency, rec.CurrentYearlyIncome),
			AdjustedDisplay:      format.Currency(r.Currency, rec.AdjustedYearlyIncome),
			DifferenceDisplay:    format.SignedCurrency(r.Currency, roundedDifference(rec.CurrentYearlyIncome, rec.AdjustedYearlyIncome)),
		})
	}
	return p
}

func finite(v float64) *float64 {
	if !mathutil.IsFinite(v) {
		return nil
	}
	return &v
}

// JSONFormatter outputs the report as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string        { return constants.OutputFormatJSON }
func (JSONFormatter) ContentType() string { return "application/json" }

func (JSONFormatter) Format(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewPayload(r))
}
