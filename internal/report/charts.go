// Package report turns a fetched summary into renderable chart primitives:
// pie slices for the category breakdown and bars for the monthly one. All
// aggregation already happened on the backend; this package only does layout
// arithmetic and display formatting.
package report

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"expense-console/internal/models"
)

// fullCircleThreshold is the sweep (in degrees) above which a slice is drawn
// as a complete circle. An arc whose start and end coincide renders as a
// zero-length path, so the single-category case must not go down the arc path.
const fullCircleThreshold = 359.9

// sliceColors is the fixed palette cycled over category slices
var sliceColors = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

// PieSlice is one category's wedge in the percentage pie
type PieSlice struct {
	Label      string
	Amount     float64
	Count      int64
	Percentage float64
	StartAngle float64 // degrees, 0 at twelve o'clock, clockwise
	SweepAngle float64
	FullCircle bool
	Path       string // SVG path data, empty when FullCircle
	Color      string
}

// PieLayout lays the category breakdown out as sequential slices starting at
// angle 0 and proceeding clockwise. Each slice's central angle is
// percentage/100*360; percentages are used as delivered, so the total sweep
// may fall slightly short of (or exceed) a full circle due to rounding.
// Returns nil for an empty breakdown so callers can render a no-data marker.
func PieLayout(breakdown []models.CategoryBreakdown, cx, cy, r float64) []PieSlice {
	if len(breakdown) == 0 {
		return nil
	}

	slices := make([]PieSlice, 0, len(breakdown))
	start := 0.0
	for i, entry := range breakdown {
		sweep := entry.Percentage / 100 * 360

		slice := PieSlice{
			Label:      entry.CategoryName,
			Amount:     entry.TotalAmount,
			Count:      entry.Count,
			Percentage: entry.Percentage,
			StartAngle: start,
			SweepAngle: sweep,
			Color:      sliceColors[i%len(sliceColors)],
		}

		if sweep >= fullCircleThreshold {
			slice.FullCircle = true
		} else {
			slice.Path = arcPath(cx, cy, r, start, start+sweep)
		}

		slices = append(slices, slice)
		start += sweep
	}
	return slices
}

// arcPath builds the SVG path for a wedge from startAngle to endAngle,
// angles in degrees measured clockwise from twelve o'clock.
func arcPath(cx, cy, r, startAngle, endAngle float64) string {
	x0, y0 := pointOnCircle(cx, cy, r, startAngle)
	x1, y1 := pointOnCircle(cx, cy, r, endAngle)

	largeArc := 0
	if endAngle-startAngle > 180 {
		largeArc = 1
	}

	return fmt.Sprintf("M %.3f %.3f L %.3f %.3f A %.3f %.3f 0 %d 1 %.3f %.3f Z",
		cx, cy, x0, y0, r, r, largeArc, x1, y1)
}

func pointOnCircle(cx, cy, r, angleDeg float64) (float64, float64) {
	rad := angleDeg * math.Pi / 180
	return cx + r*math.Sin(rad), cy - r*math.Cos(rad)
}

// Bar is one month's column in the bar chart
type Bar struct {
	Month  string // raw "YYYY-MM" token
	Label  string // short display label, e.g. "Mar 2025"
	Amount float64
	Count  int64
	Height float64
}

// AxisTick is one Y-axis gridline of the bar chart
type AxisTick struct {
	Value float64 // amount at this tick
	Y     float64 // offset from the chart top
	Label string
}

// BarLayout computes bar heights relative to the series maximum. Months stay
// in backend order; no client-side resorting. Returns nil for an empty series.
func BarLayout(monthly []models.MonthlyBreakdown, availableHeight float64) []Bar {
	if len(monthly) == 0 {
		return nil
	}

	maxAmount := 0.0
	for _, entry := range monthly {
		if entry.TotalAmount > maxAmount {
			maxAmount = entry.TotalAmount
		}
	}

	bars := make([]Bar, 0, len(monthly))
	for _, entry := range monthly {
		height := 0.0
		if maxAmount > 0 {
			height = entry.TotalAmount / maxAmount * availableHeight
		}
		bars = append(bars, Bar{
			Month:  entry.Month,
			Label:  MonthLabel(entry.Month),
			Amount: entry.TotalAmount,
			Count:  entry.Count,
			Height: height,
		})
	}
	return bars
}

// AxisTicks returns gridlines at 0%, 25%, 50%, 75%, and 100% of the series
// maximum, positioned from the chart top. Returns nil for an empty series.
func AxisTicks(monthly []models.MonthlyBreakdown, availableHeight float64) []AxisTick {
	if len(monthly) == 0 {
		return nil
	}

	maxAmount := 0.0
	for _, entry := range monthly {
		if entry.TotalAmount > maxAmount {
			maxAmount = entry.TotalAmount
		}
	}

	fractions := []float64{0, 0.25, 0.5, 0.75, 1}
	ticks := make([]AxisTick, 0, len(fractions))
	for _, fraction := range fractions {
		value := maxAmount * fraction
		ticks = append(ticks, AxisTick{
			Value: value,
			Y:     availableHeight - fraction*availableHeight,
			Label: FormatCurrency(value),
		})
	}
	return ticks
}

// MonthLabel renders a "YYYY-MM" token as a short month/year string.
// Unparseable tokens come back unchanged rather than erroring mid-render.
func MonthLabel(token string) string {
	t, err := time.Parse("2006-01", token)
	if err != nil {
		return token
	}
	return t.Format("Jan 2006")
}

// FormatCurrency renders every displayed figure as a fixed two-decimal dollar
// amount, no locale negotiation, no thousands separators.
func FormatCurrency(amount float64) string {
	return "$" + decimal.NewFromFloat(amount).StringFixed(2)
}
