// Package charts renders dashboard charts to PNG with go-chart.
package charts

import (
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/jengzang/health-insights-go/internal/models"
)

// Default canvas size in pixels
const (
	DefaultWidth  = 480
	DefaultHeight = 360
)

// ErrEmptyChart is returned when a chart has nothing to draw
var ErrEmptyChart = eris.New("charts: nothing to draw")

// RenderPNG draws c onto w. A zero width or height uses the default size.
func RenderPNG(w io.Writer, c models.Chart, width, height int) error {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	switch c.Kind {
	case models.ChartDoughnut:
		return renderDonut(w, c, width, height)
	case models.ChartBar:
		return renderBar(w, c, width, height)
	}
	return eris.Errorf("charts: unsupported chart kind %q", c.Kind)
}

func renderDonut(w io.Writer, c models.Chart, width, height int) error {
	values := make([]chart.Value, 0, len(c.Values))
	for i, v := range c.Values {
		// zero slices break normalization
		if v <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: v,
			Label: label(c, i),
			Style: chart.Style{
				FillColor:   color(c, i),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 2,
			},
		})
	}
	if len(values) == 0 {
		return ErrEmptyChart
	}

	donut := chart.DonutChart{
		Title:  c.Title,
		Width:  width,
		Height: height,
		Values: values,
	}
	if err := donut.Render(chart.PNG, w); err != nil {
		return eris.Wrapf(err, "charts: render %s", c.ID)
	}
	return nil
}

func renderBar(w io.Writer, c models.Chart, width, height int) error {
	if len(c.Values) == 0 {
		return ErrEmptyChart
	}

	top := 0.0
	bars := make([]chart.Value, 0, len(c.Values))
	for i, v := range c.Values {
		if v > top {
			top = v
		}
		bars = append(bars, chart.Value{
			Value: v,
			Label: label(c, i),
			Style: chart.Style{
				FillColor:   color(c, i),
				StrokeColor: color(c, i),
				StrokeWidth: 1,
			},
		})
	}
	if top == 0 {
		top = 1
	}

	bar := chart.BarChart{
		Title:    c.Title,
		Width:    width,
		Height:   height,
		BarWidth: barWidth(width, len(bars)),
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top},
		},
		Bars: bars,
	}
	if err := bar.Render(chart.PNG, w); err != nil {
		return eris.Wrapf(err, "charts: render %s", c.ID)
	}
	return nil
}

func barWidth(width, n int) int {
	bw := width / (2 * n)
	if bw > 60 {
		return 60
	}
	if bw < 8 {
		return 8
	}
	return bw
}

func label(c models.Chart, i int) string {
	if i < len(c.Labels) {
		return c.Labels[i]
	}
	return ""
}

// color cycles through the chart palette; a single color applies to every bar
func color(c models.Chart, i int) drawing.Color {
	if len(c.Colors) == 0 {
		return chart.ColorBlue
	}
	return drawing.ColorFromHex(strings.TrimPrefix(c.Colors[i%len(c.Colors)], "#"))
}
