package performance

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/fincatch/fincatch/internal/models"
)

// RenderPerformanceChart renders a PNG line chart of a base-100 portfolio
// series, optionally with a benchmark series overlaid (gray dashed).
// Returns raw PNG bytes.
func RenderPerformanceChart(portfolio []models.PerformancePoint, benchmark []models.PerformancePoint, benchmarkName string) ([]byte, error) {
	if len(portfolio) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(portfolio))
	}

	series := []chart.Series{
		chart.TimeSeries{
			Name: "Portfolio",
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
				StrokeWidth: 2.5,
			},
			XValues: seriesTimes(portfolio),
			YValues: seriesValues(portfolio),
		},
	}

	if len(benchmark) >= 2 {
		name := benchmarkName
		if name == "" {
			name = "Benchmark"
		}
		series = append(series, chart.TimeSeries{
			Name: name,
			Style: chart.Style{
				StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{5.0, 3.0},
			},
			XValues: seriesTimes(benchmark),
			YValues: seriesValues(benchmark),
		})
	}

	graph := chart.Chart{
		Title:  "Portfolio Performance (base 100)",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: series,
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

func seriesTimes(points []models.PerformancePoint) []time.Time {
	times := make([]time.Time, len(points))
	for i, p := range points {
		times[i] = time.Unix(p.Timestamp, 0).UTC()
	}
	return times
}

func seriesValues(points []models.PerformancePoint) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	return values
}
