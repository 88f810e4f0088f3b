package output

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/iwvelando/inflation-forecast/internal/projection"
	"github.com/iwvelando/inflation-forecast/pkg/constants"
)

func sampleReport() Report {
	in := projection.Input{StartYear: 2024, EndYear: 2026, InflationRatePercent: 10, MonthlyIncome: 1000}
	return NewReport(in, "BDT", constants.ThemeDark, []string{"sample warning"})
}

func render(t *testing.T, f Formatter, r Report) string {
	t.Helper()
	var buf bytes.Buffer
	if err := f.Format(&buf, r); err != nil {
		t.Fatalf("%s format failed: %v", f.Name(), err)
	}
	return buf.String()
}

func TestPrettyFormat(t *testing.T) {
	out := render(t, PrettyFormatter{}, sampleReport())

	expected := []string{
		"--- Inflation-adjusted income, 2024-2026 at 10% per year ---",
		"Warning: sample warning",
		"Year | Current Income | Inflation-Adjusted Income | Difference",
		"____ | ______________ | _________________________ | __________",
		"2024 |     BDT 12,000 |                BDT 12,000 |      BDT 0",
		"2025 |     BDT 12,000 |                BDT 13,200 | +BDT 1,200",
		"2026 |     BDT 12,000 |                BDT 14,520 | +BDT 2,520",
		"Total over 3 years: current BDT 36,000, adjusted BDT 39,720, difference +BDT 3,720 (final multiplier 1.2100)",
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("PrettyFormat missing %q in:\n%s", want, out)
		}
	}
}

func TestPrettyFormatEmpty(t *testing.T) {
	r := NewReport(projection.Input{StartYear: 2030, EndYear: 2020, InflationRatePercent: 5, MonthlyIncome: 100}, "BDT", "", nil)
	out := render(t, PrettyFormatter{}, r)

	if !strings.Contains(out, "No years in range.") {
		t.Errorf("expected empty-range message, got:\n%s", out)
	}
	if strings.Contains(out, "Total over") {
		t.Errorf("empty projection should not print totals, got:\n%s", out)
	}
}

func TestCSVFormat(t *testing.T) {
	out := render(t, CSVFormatter{}, sampleReport())

	expected := "year,current_income,adjusted_income,difference\n" +
		"2024,12000,12000,0\n" +
		"2025,12000,13200,1200\n" +
		"2026,12000,14520,2520\n"
	if out != expected {
		t.Errorf("CSVFormat mismatch\nexpected:\n%s\ngot:\n%s", expected, out)
	}
	if CSVString(sampleReport()) != expected {
		t.Errorf("CSVString should match CSVFormatter output")
	}
}

func TestCSVFormatNegativeIncome(t *testing.T) {
	r := NewReport(projection.Input{StartYear: 2024, EndYear: 2024, InflationRatePercent: 3, MonthlyIncome: -500}, "", "", nil)
	out := render(t, CSVFormatter{}, r)

	if !strings.Contains(out, "2024,-6000,-6000,0") {
		t.Errorf("expected negative amounts in CSV, got:\n%s", out)
	}
}

func TestDifferenceMatchesRoundedAmounts(t *testing.T) {
	r := NewReport(projection.Input{StartYear: 2024, EndYear: 2025, InflationRatePercent: 0.8316, MonthlyIncome: 1000.05}, "BDT", "", nil)

	rows := r.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	got := rows[1]
	if got.Current != "BDT 12,001" || got.Adjusted != "BDT 12,100" || got.Difference != "+BDT 99" {
		t.Errorf("unexpected row: %+v", got)
	}

	out := render(t, CSVFormatter{}, r)
	if !strings.Contains(out, "2025,12001,12100,99\n") {
		t.Errorf("expected difference of rounded amounts in CSV, got:\n%s", out)
	}

	p := NewPayload(r)
	if p.Records[1].DifferenceDisplay != "+BDT 99" {
		t.Errorf("expected differenceDisplay +BDT 99, got %q", p.Records[1].DifferenceDisplay)
	}
	if d := p.Records[1].Difference; d == nil || *d < 99.79 || *d > 99.81 {
		t.Errorf("expected full-precision difference near 99.8, got %v", d)
	}
}

func TestJSONFormat(t *testing.T) {
	out := render(t, JSONFormatter{}, sampleReport())

	var payload Payload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if payload.Currency != "BDT" {
		t.Errorf("expected currency BDT, got %q", payload.Currency)
	}
	if len(payload.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(payload.Records))
	}
	last := payload.Records[2]
	if last.Year != 2026 || last.AdjustedDisplay != "BDT 14,520" || last.DifferenceDisplay != "+BDT 2,520" {
		t.Errorf("unexpected last record: %+v", last)
	}
	if last.AdjustedYearlyIncome == nil || *last.AdjustedYearlyIncome < 14519.99 || *last.AdjustedYearlyIncome > 14520.01 {
		t.Errorf("unexpected adjusted value: %v", last.AdjustedYearlyIncome)
	}
	if payload.Summary.Years != 3 {
		t.Errorf("expected summary over 3 years, got %d", payload.Summary.Years)
	}
	if len(payload.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %v", payload.Warnings)
	}
}

func TestJSONFormatNonFinite(t *testing.T) {
	r := NewReport(projection.Input{StartYear: 2024, EndYear: 2025, InflationRatePercent: 5, MonthlyIncome: 1e308}, "BDT", "", nil)
	out := render(t, JSONFormatter{}, r)

	var payload Payload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if payload.Records[0].CurrentYearlyIncome != nil {
		t.Errorf("overflowed yearly income should encode as null, got %v", *payload.Records[0].CurrentYearlyIncome)
	}
}

func TestJSONFormatEmptyRecords(t *testing.T) {
	r := NewReport(projection.Input{StartYear: 2030, EndYear: 2020}, "BDT", "", nil)
	out := render(t, JSONFormatter{}, r)

	if !strings.Contains(out, `"records": []`) {
		t.Errorf("expected an empty records array, got:\n%s", out)
	}
}

func TestHTMLFormat(t *testing.T) {
	out := render(t, HTMLFormatter{}, sampleReport())

	expected := []string{
		"<!DOCTYPE html>",
		`<body class="dark">`,
		"<th>Inflation-Adjusted Income</th>",
		"<td>2025</td>",
		`<td class="adjusted">BDT 13,200</td>`,
		`<td class="difference">&#43;BDT 1,200</td>`,
		"<polyline",
		"Current Income",
		"sample warning",
		`<g class="tip">`,
		`rx="4" fill="#1f2937"`,
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("HTMLFormat missing %q", want)
		}
	}
}

func TestHTMLFormatEmpty(t *testing.T) {
	r := NewReport(projection.Input{StartYear: 2030, EndYear: 2020, MonthlyIncome: 100}, "BDT", constants.ThemeLight, nil)
	out := render(t, HTMLFormatter{}, r)

	if !strings.Contains(out, "No years in range.") {
		t.Errorf("expected empty-range message")
	}
	if strings.Contains(out, "<polyline") {
		t.Errorf("empty projection should not draw a chart")
	}
	if !strings.Contains(out, `<body class="light">`) {
		t.Errorf("expected light theme")
	}
}

func TestHTMLTooltipFollowsTheme(t *testing.T) {
	r := sampleReport()
	r.Theme = constants.ThemeLight
	out := render(t, HTMLFormatter{}, r)

	if !strings.Contains(out, `rx="4" fill="#fff"`) {
		t.Errorf("expected light tooltip background")
	}
	if strings.Contains(out, `fill="#1f2937"`) {
		t.Errorf("light report should not use the dark tooltip background")
	}
}

func TestHTMLEscapesWarnings(t *testing.T) {
	r := NewReport(projection.Input{StartYear: 2024, EndYear: 2024}, "BDT", "", []string{"<script>x</script>"})
	out := render(t, HTMLFormatter{}, r)

	if strings.Contains(out, "<script>x</script>") {
		t.Errorf("warning was not escaped")
	}
}

func TestNewTemplate(t *testing.T) {
	tmpl, err := NewTemplate("page", `<main>{{template "table" .}}</main>`)
	if err != nil {
		t.Fatalf("NewTemplate failed: %v", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, NewView(sampleReport())); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.Contains(buf.String(), "<td>2024</td>") {
		t.Errorf("expected the shared table partial, got:\n%s", buf.String())
	}

	if _, err := NewTemplate("broken", `{{template "table" .`); err == nil {
		t.Errorf("expected parse error for malformed template")
	}
}

func TestNewView(t *testing.T) {
	v := NewView(sampleReport())
	if v.RatePercent != "10" {
		t.Errorf("expected RatePercent 10, got %q", v.RatePercent)
	}
	if len(v.Rows) != 3 {
		t.Errorf("expected 3 rows, got %d", len(v.Rows))
	}
	if v.Chart.Empty() {
		t.Errorf("expected a non-empty chart")
	}
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"pretty", constants.OutputFormatPretty},
		{"table", constants.OutputFormatPretty},
		{" TEXT ", constants.OutputFormatPretty},
		{"csv", constants.OutputFormatCSV},
		{"csv-report", constants.OutputFormatCSV},
		{"json", constants.OutputFormatJSON},
		{"json-pretty", constants.OutputFormatJSON},
		{"html", constants.OutputFormatHTML},
		{"web", constants.OutputFormatHTML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			if f == nil {
				t.Fatalf("expected a formatter for %q", tt.name)
			}
			if f.Name() != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, f.Name())
			}
			if f.ContentType() == "" {
				t.Errorf("formatter %s has no content type", f.Name())
			}
		})
	}

	if GetFormatterByName("xml") != nil {
		t.Errorf("expected nil formatter for unknown name")
	}
}

func TestAvailableFormatterNames(t *testing.T) {
	names := AvailableFormatterNames()
	expected := []string{"csv", "html", "json", "pretty"}
	if strings.Join(names, ",") != strings.Join(expected, ",") {
		t.Errorf("expected %v, got %v", expected, names)
	}
	for _, alias := range AvailableFormatAliases() {
		if GetFormatterByName(alias) == nil {
			t.Errorf("alias %s does not resolve", alias)
		}
	}
}
