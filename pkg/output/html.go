package output

import (
	"embed"
	"html/template"
	"io"
	"strconv"

	"github.com/iwvelando/inflation-forecast/pkg/chart"
	"github.com/iwvelando/inflation-forecast/pkg/constants"
	"github.com/iwvelando/inflation-forecast/pkg/format"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

var funcs = template.FuncMap{
	"curr":   format.Currency,
	"signed": format.SignedCurrency,
	"coord":  func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
	"add":    func(a, b float64) float64 { return a + b },
	"sub":    func(a, b float64) float64 { return a - b },
}

var partials = template.Must(template.New("partials").Funcs(funcs).ParseFS(templateFiles, "templates/partials.html.tmpl"))

var reportTemplate = template.Must(template.Must(partials.Clone()).ParseFS(templateFiles, "templates/report.html.tmpl"))

// NewTemplate parses src on top of the shared partials ("style", "warnings",
// "table", "chart" and "results"), all of which expect a View.
func NewTemplate(name, src string) (*template.Template, error) {
	base, err := partials.Clone()
	if err != nil {
		return nil, err
	}
	return base.New(name).Parse(src)
}

// View is the data passed to HTML templates.
type View struct {
	Report
	Rows        []Row
	Chart       chart.Chart
	RatePercent string
}

// NewView lays out a report for HTML rendering.
func NewView(r Report) View {
	return View{
		Report:      r,
		Rows:        r.Rows(),
		Chart:       chart.Build(r.Records, chart.DefaultOptions(r.Currency, r.Theme)),
		RatePercent: strconv.FormatFloat(r.Input.InflationRatePercent, 'f', -1, 64),
	}
}

// HTMLFormatter produces a standalone HTML page with the table and chart.
type HTMLFormatter struct{}

func (HTMLFormatter) Name() string        { return constants.OutputFormatHTML }
func (HTMLFormatter) ContentType() string { return "text/html; charset=utf-8" }

func (HTMLFormatter) Format(w io.Writer, r Report) error {
	return reportTemplate.ExecuteTemplate(w, "report.html.tmpl", NewView(r))
}
