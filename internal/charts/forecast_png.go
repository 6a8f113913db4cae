package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Sigge1511/AuroraForecast-MS/internal/models"
)

// ForecastPNG renders the 3-day Kp outlook as a static bar chart image.
func (g *Generator) ForecastPNG(days []models.ForecastDay) ([]byte, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("no forecast days to chart")
	}

	bars := make([]chart.Value, len(days))
	for i, day := range days {
		bars[i] = chart.Value{
			Value: day.KpIndex,
			Label: fmt.Sprintf("%s\nKp %.1f", day.Date, day.KpIndex),
			Style: chart.Style{
				FillColor:   kpFillColor(day.KpIndex),
				StrokeColor: drawing.Color{R: 52, G: 58, B: 64, A: 255},
				StrokeWidth: 2,
			},
		}
	}

	graph := chart.BarChart{
		Title: "3-Day Kp Forecast",
		TitleStyle: chart.Style{
			FontSize:  18,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   80,
				Right:  50,
				Bottom: 80,
			},
			FillColor: drawing.Color{R: 248, G: 249, B: 250, A: 255},
		},
		Height:   400,
		Width:    600,
		BarWidth: 120,
		XAxis: chart.Style{
			FontSize:  12,
			FontColor: drawing.Color{R: 52, G: 58, B: 64, A: 255},
		},
		YAxis: chart.YAxis{
			Name: "Kp index",
			NameStyle: chart.Style{
				FontSize:  14,
				FontColor: drawing.Color{R: 52, G: 58, B: 64, A: 255},
			},
			Style: chart.Style{
				FontSize:  11,
				FontColor: drawing.Color{R: 108, G: 117, B: 125, A: 255},
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: 9,
			},
			Ticks: []chart.Tick{
				{Value: 0, Label: "0"},
				{Value: 1, Label: "1"},
				{Value: 2, Label: "2"},
				{Value: 3, Label: "3"},
				{Value: 4, Label: "4"},
				{Value: 5, Label: "5"},
				{Value: 6, Label: "6"},
				{Value: 7, Label: "7"},
				{Value: 8, Label: "8"},
				{Value: 9, Label: "9"},
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render forecast chart: %w", err)
	}
	return buf.Bytes(), nil
}

// kpFillColor maps a Kp value to the activity color bands.
func kpFillColor(kp float64) drawing.Color {
	switch {
	case kp >= 7:
		return drawing.Color{R: 128, G: 0, B: 128, A: 255} // storm
	case kp >= 5:
		return drawing.Color{R: 220, G: 53, B: 69, A: 255} // active
	case kp >= 3:
		return drawing.Color{R: 253, G: 126, B: 20, A: 255} // medium
	default:
		return drawing.Color{R: 40, G: 167, B: 69, A: 255} // low
	}
}
