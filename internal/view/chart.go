package view

import (
	"bytes"
	"fmt"
	"html/template"

	chart "github.com/wcharczuk/go-chart/v2"

	"taxifare/internal/types"
)

const (
	chartWidth  = 640
	chartHeight = 240
)

// SVG draws the history as a line chart, one x tick per entry in insertion order.
func (c *Chart) SVG() (template.HTML, error) {
	xs := make([]float64, len(c.Values))
	ys := make([]float64, len(c.Values))
	ticks := make([]chart.Tick, len(c.Labels))
	for i, v := range c.Values {
		xs[i] = float64(i)
		ys[i] = float64(v)
		ticks[i] = chart.Tick{Value: float64(i), Label: c.Labels[i]}
	}

	// go-chart rejects zero-width ranges, which a single entry or equal fares would give
	pad := float64(c.YMax-c.YMin) * 0.1
	if pad == 0 {
		pad = 1
	}

	graph := chart.Chart{
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(xs)) - 0.5},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: float64(c.YMin) - pad, Max: float64(c.YMax) + pad},
			ValueFormatter: fareFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Fare",
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeWidth: 2, DotWidth: 3},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return "", fmt.Errorf("render fare chart: %w", err)
	}
	return template.HTML(buf.String()), nil
}

func fareFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return types.USD(f).String()
	}
	return ""
}
