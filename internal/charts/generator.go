// Package charts renders the dashboard visuals: embeddable ECharts
// snippets for the HTML dashboard and a static PNG for image clients.
package charts

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/Sigge1511/AuroraForecast-MS/internal/models"
)

// ChartSnippet is an embeddable HTML fragment: a root div plus the
// script that initializes the chart inside it.
type ChartSnippet struct {
	ID    string
	Title string
	HTML  string
}

// Generator builds chart snippets and images from forecast data.
type Generator struct{}

// NewGenerator creates a chart generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// ForecastBarSnippet builds a bar chart of the 3-day Kp outlook.
func (g *Generator) ForecastBarSnippet(days []models.ForecastDay) (ChartSnippet, error) {
	if len(days) == 0 {
		return ChartSnippet{}, fmt.Errorf("no forecast days to chart")
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  "700px",
			Height: "360px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "3-Day Kp Forecast",
			Subtitle: "Daily average planetary K-index",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Kp",
			Max:  9,
		}),
	)

	xAxis := make([]string, len(days))
	kpData := make([]opts.BarData, len(days))
	for i, day := range days {
		xAxis[i] = day.Date
		kpData[i] = opts.BarData{
			Name:  day.DisplayText(),
			Value: day.KpIndex,
			ItemStyle: &opts.ItemStyle{
				Color: kpHexColor(day.KpIndex),
			},
		}
	}

	bar.SetXAxis(xAxis).
		AddSeries("Kp index", kpData)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return ChartSnippet{}, fmt.Errorf("failed to render forecast bar chart: %w", err)
	}

	return ChartSnippet{
		ID:    "chart-forecast-bar",
		Title: "3-Day Kp Forecast",
		HTML:  buf.String(),
	}, nil
}

// kpHexColor maps a Kp value to the activity color used across the
// dashboard.
func kpHexColor(kp float64) string {
	switch {
	case kp >= 7:
		return "#800080" // storm
	case kp >= 5:
		return "#dc3545" // active
	case kp >= 3:
		return "#fd7e14" // medium
	default:
		return "#28a745" // low
	}
}
