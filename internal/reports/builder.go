// Package reports assembles the HTML dashboard from a forecast view
// state and the rendered chart snippets.
package reports

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/Sigge1511/AuroraForecast-MS/internal/charts"
	"github.com/Sigge1511/AuroraForecast-MS/internal/forecaster"
	"github.com/Sigge1511/AuroraForecast-MS/internal/logger"
)

// Builder renders the dashboard HTML.
type Builder struct {
	generator *charts.Generator
	log       *logger.Logger
}

// NewBuilder creates a dashboard builder.
func NewBuilder() *Builder {
	return &Builder{
		generator: charts.NewGenerator(),
		log:       logger.GetGlobalLogger().WithComponent("reports"),
	}
}

// Dashboard builds the complete HTML page for a view state. Chart
// failures degrade to a placeholder instead of failing the page.
func (b *Builder) Dashboard(state forecaster.ViewState) string {
	content := b.markdownToHTML(b.buildMarkdown(state))

	gaugeHTML := "<p>Probability gauge unavailable</p>"
	if gauge, err := b.generator.ProbabilityGaugeSnippet(state.CityName, state.DisplayProbability); err == nil {
		gaugeHTML = gauge.HTML
	} else {
		b.log.Warn("failed to render probability gauge", logger.Fields{"error": err})
	}

	barHTML := "<p>Forecast chart unavailable</p>"
	if bar, err := b.generator.ForecastBarSnippet(state.Forecast); err == nil {
		barHTML = bar.HTML
	} else {
		b.log.Warn("failed to render forecast chart", logger.Fields{"error": err})
	}

	return b.buildCompleteHTML(state, content, gaugeHTML, barHTML)
}

// buildMarkdown writes the textual summary of a view state.
func (b *Builder) buildMarkdown(state forecaster.ViewState) string {
	var sb strings.Builder

	sb.WriteString("## Current Conditions\n\n")
	if state.ErrorMessage != "" {
		sb.WriteString(fmt.Sprintf("> %s\n\n", state.ErrorMessage))
	}
	if !state.DataLoaded {
		sb.WriteString("No forecast loaded yet. Search for a city to get started.\n")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("**Location:** %s\n\n", state.LocationInfo))
	sb.WriteString(fmt.Sprintf("**Planetary K-index:** %.2f (%s)\n\n", state.KpIndex, state.ActivityLevel))
	sb.WriteString(fmt.Sprintf("**Visibility:** %s (%.0f%%)\n\n", state.ProbabilityLabel, state.DisplayProbability))
	sb.WriteString(fmt.Sprintf("%s\n\n", state.ActivityDescription))

	if len(state.Forecast) > 0 {
		sb.WriteString("## 3-Day Outlook\n\n")
		sb.WriteString("| Day | Kp | Probability | Activity |\n")
		sb.WriteString("|-----|----|-------------|----------|\n")
		for _, day := range state.Forecast {
			sb.WriteString(fmt.Sprintf("| %s | %.1f | %d%% | %s %s |\n",
				day.Date, day.KpIndex, day.Probability, day.Icon, day.ActivityLevel))
		}
		sb.WriteString("\n")
	}

	if len(state.Alerts) > 0 {
		sb.WriteString("## Recent Space Weather Alerts\n\n")
		for _, alert := range state.Alerts {
			sb.WriteString(fmt.Sprintf("- **%s** (%s): %s\n", alert.Severity, alert.Source, alert.Description))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// markdownToHTML converts markdown to HTML.
func (b *Builder) markdownToHTML(markdownText string) string {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(markdownText))

	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	opts := html.RendererOptions{Flags: htmlFlags}
	renderer := html.NewRenderer(opts)

	return string(markdown.Render(doc, renderer))
}
