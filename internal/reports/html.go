package reports

import (
	"fmt"

	"github.com/Sigge1511/AuroraForecast-MS/internal/forecaster"
)

// buildCompleteHTML wraps the rendered content and charts in the full
// dashboard page.
func (b *Builder) buildCompleteHTML(state forecaster.ViewState, content, gaugeHTML, barHTML string) string {
	updated := "never"
	if !state.UpdatedAt.IsZero() {
		updated = state.UpdatedAt.Format("2006-01-02 15:04:05 UTC")
	}

	probability := "--"
	kp := "--"
	activity := "--"
	city := state.CityName
	if city == "" {
		city = "No location"
	}
	if state.DataLoaded {
		probability = fmt.Sprintf("%.0f%%", state.DisplayProbability)
		kp = fmt.Sprintf("%.2f", state.KpIndex)
		activity = state.ActivityLevel
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Aurora Forecast - %s</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 1100px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f8f9fa;
        }
        .header {
            background: linear-gradient(135deg, #0b3d91 0%%, #1a936f 100%%);
            color: white;
            padding: 30px;
            border-radius: 10px;
            margin-bottom: 30px;
            text-align: center;
        }
        .header h1 {
            margin: 0;
            font-size: 2.2em;
        }
        .header .timestamp {
            opacity: 0.9;
            margin-top: 10px;
        }
        .summary-cards {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(220px, 1fr));
            gap: 20px;
            margin-bottom: 30px;
        }
        .card {
            background: white;
            padding: 20px;
            border-radius: 8px;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
            border-left: 4px solid #1a936f;
        }
        .card h3 {
            margin-top: 0;
            color: #1a936f;
        }
        .metric {
            font-size: 1.5em;
            font-weight: bold;
            color: #333;
        }
        .content, .charts-section {
            background: white;
            padding: 30px;
            border-radius: 8px;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
            margin-bottom: 30px;
        }
        .chart-container {
            margin-bottom: 40px;
        }
        .footer {
            text-align: center;
            color: #666;
            font-size: 0.9em;
            margin-top: 30px;
        }
        h1, h2, h3 { color: #333; }
        h2 { border-bottom: 2px solid #1a936f; padding-bottom: 5px; }
        blockquote { border-left: 4px solid #dc3545; margin: 0; padding-left: 20px; color: #666; }
        table { border-collapse: collapse; width: 100%%; margin: 20px 0; }
        th, td { border: 1px solid #ddd; padding: 12px; text-align: left; }
        th { background-color: #f8f9fa; font-weight: bold; }
    </style>
    <script src="https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"></script>
</head>
<body>
    <div class="header">
        <h1>🌌 Aurora Forecast</h1>
        <div class="timestamp">Updated: %s</div>
    </div>

    <div class="summary-cards">
        <div class="card">
            <h3>Location</h3>
            <div class="metric">%s</div>
        </div>
        <div class="card">
            <h3>Planetary K-index</h3>
            <div class="metric">%s</div>
        </div>
        <div class="card">
            <h3>Visibility</h3>
            <div class="metric">%s</div>
        </div>
        <div class="card">
            <h3>Activity</h3>
            <div class="metric">%s</div>
        </div>
    </div>

    <div class="content">
        %s
    </div>

    <div class="charts-section">
        <h2>Visibility and Outlook</h2>

        <div class="chart-container">
            %s
        </div>

        <div class="chart-container">
            %s
        </div>
    </div>

    <div class="footer">
        <p>Data sources: NOAA SWPC, SIDC, OpenStreetMap Nominatim</p>
    </div>
</body>
</html>`,
		city,
		updated,
		city,
		kp,
		probability,
		activity,
		content,
		gaugeHTML,
		barHTML,
	)
}
