// Package bulletin parses the NOAA 3-day geomagnetic forecast bulletin
// into per-day outlook entries.
package bulletin

import (
	"math"
	"strconv"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/Sigge1511/AuroraForecast-MS/internal/aurora"
	"github.com/Sigge1511/AuroraForecast-MS/internal/models"
)

// headerMarker identifies the Kp section of the bulletin. The layout is
// fixed: the marker line, then a date line of 3 date pairs, then up to
// 8 hourly rows carrying one Kp value per forecast day.
const headerMarker = "NOAA Kp index forecast"

const (
	forecastDays = 3
	hourlyRows   = 8
)

// Parser turns bulletin text into exactly 3 ForecastDay entries,
// synthesizing a quiet fallback set when the text cannot be read.
type Parser struct {
	clock clockwork.Clock
}

// NewParser creates a parser using the real clock for fallback dates.
func NewParser() *Parser {
	return &Parser{clock: clockwork.NewRealClock()}
}

// NewParserWithClock creates a parser with an injected time source so
// tests can freeze the fallback dates.
func NewParserWithClock(clock clockwork.Clock) *Parser {
	return &Parser{clock: clock}
}

// Parse extracts the 3-day Kp outlook for the given latitude. Any
// structural failure yields the full fallback set, never a partial list.
func (p *Parser) Parse(text string, latitude float64) []models.ForecastDay {
	lines := strings.Split(text, "\n")

	header := -1
	for i, line := range lines {
		if strings.Contains(line, headerMarker) {
			header = i
			break
		}
	}
	if header == -1 || header+1 >= len(lines) {
		return p.Fallback(latitude)
	}

	// The date line directly follows the marker: "30 Aug 31 Aug 01 Sep".
	dateParts := strings.Fields(lines[header+1])
	if len(dateParts) < 2*forecastDays {
		return p.Fallback(latitude)
	}

	var perDay [forecastDays][]float64
	for i := header + 2; i < len(lines) && i < header+2+hourlyRows; i++ {
		parts := strings.Fields(lines[i])
		if len(parts) < forecastDays+1 {
			continue
		}
		// parts[0] is the hour-range label; one Kp column per day follows.
		for d := 0; d < forecastDays; d++ {
			if v, err := strconv.ParseFloat(parts[d+1], 64); err == nil {
				perDay[d] = append(perDay[d], v)
			}
		}
	}

	out := make([]models.ForecastDay, 0, forecastDays)
	for d := 0; d < forecastDays; d++ {
		if len(perDay[d]) == 0 {
			return p.Fallback(latitude)
		}
		avg := mean(perDay[d])
		out = append(out, models.ForecastDay{
			Date:          dateParts[2*d] + " " + dateParts[2*d+1],
			KpIndex:       math.Round(avg*10) / 10,
			Probability:   aurora.ForecastProbability(avg, latitude),
			ActivityLevel: aurora.ActivityLevel(avg),
			Icon:          aurora.IconForKp(avg),
		})
	}
	return out
}

// Fallback produces the quiet placeholder outlook: 3 entries dated from
// today with Kp 0 and Low activity.
func (p *Parser) Fallback(latitude float64) []models.ForecastDay {
	today := p.clock.Now().UTC()
	out := make([]models.ForecastDay, 0, forecastDays)
	for i := 0; i < forecastDays; i++ {
		out = append(out, models.ForecastDay{
			Date:          today.AddDate(0, 0, i).Format("Mon 02 Jan"),
			KpIndex:       0,
			Probability:   0,
			ActivityLevel: "Low",
			Icon:          aurora.IconMoon,
		})
	}
	return out
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
