// Package chart lays out the income line chart as SVG geometry.
//
// Build is pure: the caller renders the returned Chart with a template.
package chart

import (
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/inflation-forecast/internal/projection"
	"github.com/iwvelando/inflation-forecast/pkg/constants"
	"github.com/iwvelando/inflation-forecast/pkg/format"
	"github.com/iwvelando/inflation-forecast/pkg/mathutil"
)

// Series names and colours.
const (
	CurrentSeriesName  = "Current Income"
	AdjustedSeriesName = "Inflation-Adjusted Income"
	CurrentColor       = "#8884d8"
	AdjustedColor      = "#82ca9d"
)

// Options controls chart dimensions and labelling.
type Options struct {
	Width     int
	Height    int
	Currency  string
	Theme     string
	MaxXTicks int
	YTicks    int
}

// DefaultOptions returns the options used by the web page and HTML report.
func DefaultOptions(currency, theme string) Options {
	return Options{
		Width:     960,
		Height:    400,
		Currency:  currency,
		Theme:     theme,
		MaxXTicks: 12,
		YTicks:    5,
	}
}

// Margins around the plot area; left leaves room for y-axis labels and
// bottom for x-axis labels.
const (
	marginTop    = 40
	marginRight  = 30
	marginBottom = 60
	marginLeft   = 100
)

// Rect is the plot area in SVG coordinates.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Tick is an axis tick at Pos (x for the x axis, y for the y axis).
type Tick struct {
	Pos   float64
	Label string
}

// Point is one data point in SVG coordinates.
type Point struct {
	X, Y  float64
	Year  int
	Value float64
	Label string
}

// Series is one polyline.
type Series struct {
	Name   string
	Color  string
	Points []Point
}

// Path returns the points in SVG polyline format ("x1,y1 x2,y2").
func (s Series) Path() string {
	parts := make([]string, 0, len(s.Points))
	for _, p := range s.Points {
		parts = append(parts, coord(p.X)+","+coord(p.Y))
	}
	return strings.Join(parts, " ")
}

// Chart is a fully laid out chart.
type Chart struct {
	Width             int
	Height            int
	Plot              Rect
	XTicks            []Tick
	YTicks            []Tick
	Series            []Series
	AxisStroke        string
	GridStroke        string
	TooltipBackground string
}

// Empty reports whether there is nothing to plot.
func (c Chart) Empty() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return true
}

// Build lays out the current and adjusted income series for records.
func Build(records []projection.YearRecord, opts Options) Chart {
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultOptions(opts.Currency, opts.Theme)
		opts.Width, opts.Height = def.Width, def.Height
	}
	if opts.MaxXTicks <= 0 {
		opts.MaxXTicks = 12
	}
	if opts.YTicks < 2 {
		opts.YTicks = 5
	}

	c := Chart{
		Width:  opts.Width,
		Height: opts.Height,
		Plot: Rect{
			Left:   marginLeft,
			Top:    marginTop,
			Right:  float64(opts.Width - marginRight),
			Bottom: float64(opts.Height - marginBottom),
		},
		AxisStroke:        "#fff",
		GridStroke:        "#4b5563",
		TooltipBackground: "#1f2937",
	}
	if opts.Theme == constants.ThemeLight {
		c.AxisStroke = "#000"
		c.GridStroke = "#d1d5db"
		c.TooltipBackground = "#fff"
	}

	current := Series{Name: CurrentSeriesName, Color: CurrentColor}
	adjusted := Series{Name: AdjustedSeriesName, Color: AdjustedColor}
	c.Series = []Series{current, adjusted}

	lo, hi := valueRange(records)
	lo, hi, step := niceScale(lo, hi, opts.YTicks)
	if !mathutil.IsFinite(hi-lo) || !mathutil.IsFinite(hi+step) {
		// The value span does not fit in a float64; nothing can be placed.
		return c
	}

	yPos := func(v float64) float64 {
		return c.Plot.Bottom - (v-lo)/(hi-lo)*(c.Plot.Bottom-c.Plot.Top)
	}
	xPos := func(i int) float64 {
		if len(records) <= 1 {
			return (c.Plot.Left + c.Plot.Right) / 2
		}
		return c.Plot.Left + float64(i)*(c.Plot.Right-c.Plot.Left)/float64(len(records)-1)
	}

	for v := lo; v <= hi+step/2; v += step {
		c.YTicks = append(c.YTicks, Tick{Pos: yPos(v), Label: format.Thousands(opts.Currency, v)})
	}

	for _, i := range xTickIndexes(len(records), opts.MaxXTicks) {
		c.XTicks = append(c.XTicks, Tick{Pos: xPos(i), Label: strconv.Itoa(records[i].Year)})
	}

	for i, r := range records {
		if mathutil.IsFinite(r.CurrentYearlyIncome) {
			current.Points = append(current.Points, Point{
				X: xPos(i), Y: yPos(r.CurrentYearlyIncome), Year: r.Year,
				Value: r.CurrentYearlyIncome, Label: format.Currency(opts.Currency, r.CurrentYearlyIncome),
			})
		}
		if mathutil.IsFinite(r.AdjustedYearlyIncome) {
			adjusted.Points = append(adjusted.Points, Point{
				X: xPos(i), Y: yPos(r.AdjustedYearlyIncome), Year: r.Year,
				Value: r.AdjustedYearlyIncome, Label: format.Currency(opts.Currency, r.AdjustedYearlyIncome),
			})
		}
	}
	c.Series = []Series{current, adjusted}

	return c
}

// valueRange returns the smallest and largest finite values, always including zero.
func valueRange(records []projection.YearRecord) (float64, float64) {
	lo, hi := 0.0, 0.0
	for _, r := range records {
		for _, v := range []float64{r.CurrentYearlyIncome, r.AdjustedYearlyIncome} {
			if !mathutil.IsFinite(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

// niceScale widens [lo, hi] to multiples of a 1/2/5×10^n step giving roughly ticks gridlines.
func niceScale(lo, hi float64, ticks int) (float64, float64, float64) {
	if hi-lo <= 0 {
		hi = lo + 1000
	}
	step := niceNumber((hi - lo) / float64(ticks-1))
	lo = math.Floor(lo/step) * step
	hi = math.Ceil(hi/step) * step
	return lo, hi, step
}

func niceNumber(x float64) float64 {
	exp := math.Floor(math.Log10(x))
	pow := math.Pow(10, exp)
	f := x / pow
	var nf float64
	switch {
	case f <= 1:
		nf = 1
	case f <= 2:
		nf = 2
	case f <= 5:
		nf = 5
	default:
		nf = 10
	}
	return nf * pow
}

// xTickIndexes picks at most roughly max evenly spaced indexes, always
// keeping the first and last.
func xTickIndexes(n, max int) []int {
	if n == 0 {
		return nil
	}
	step := (n + max - 1) / max
	var idx []int
	for i := 0; i < n; i += step {
		idx = append(idx, i)
	}
	last := n - 1
	if idx[len(idx)-1] != last {
		// Drop a tick that would crowd the final label.
		if len(idx) > 1 && last-idx[len(idx)-1] < (step+1)/2 {
			idx = idx[:len(idx)-1]
		}
		idx = append(idx, last)
	}
	return idx
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
