package charts

import (
	"encoding/json"
	"fmt"
)

// ProbabilityGaugeSnippet builds an ECharts gauge showing the aurora
// visibility probability for a location, colored by likelihood band.
func (g *Generator) ProbabilityGaugeSnippet(cityName string, probability float64) (ChartSnippet, error) {
	id := "chart-probability-gauge"
	title := fmt.Sprintf("Aurora Probability: %s", cityName)

	option := map[string]interface{}{
		"title": map[string]interface{}{
			"text": title,
			"left": "center",
			"top":  "2%",
			"textStyle": map[string]interface{}{
				"fontSize":   16,
				"fontWeight": "bold",
			},
		},
		"tooltip": map[string]interface{}{
			"formatter": "{a} <br/>{b} : {c}%",
		},
		"series": []interface{}{
			map[string]interface{}{
				"name":        "Visibility",
				"type":        "gauge",
				"min":         0,
				"max":         100,
				"splitNumber": 10,
				"axisLine": map[string]interface{}{
					"lineStyle": map[string]interface{}{
						"width": 10,
						"color": [][]interface{}{
							{0.2, "#6c757d"},  // very low
							{0.45, "#fd7e14"}, // low
							{0.7, "#ffdb5c"},  // moderate
							{0.9, "#37a2da"},  // very high
							{1.0, "#28a745"},  // extreme
						},
					},
				},
				"pointer": map[string]interface{}{
					"width": 6,
				},
				"detail": map[string]interface{}{
					"formatter":    fmt.Sprintf("%.0f%%", probability),
					"fontSize":     16,
					"fontWeight":   "bold",
					"offsetCenter": []string{"0%", "40%"},
				},
				"data": []interface{}{
					map[string]interface{}{"value": probability, "name": ""},
				},
			},
		},
	}

	optJSON, err := json.Marshal(option)
	if err != nil {
		return ChartSnippet{}, err
	}

	div := fmt.Sprintf("<div id=%q style=\"width:100%%;height:320px;\"></div>", id)
	script := fmt.Sprintf(`<script>(function(){var el=document.getElementById('%s');if(!el)return;var c=echarts.init(el);c.setOption(%s);window.addEventListener('resize',function(){c.resize();});})();</script>`, id, string(optJSON))

	html := fmt.Sprintf(`<div class="chart-container">
%s
</div>
%s`, div, script)

	return ChartSnippet{ID: id, Title: title, HTML: html}, nil
}
