// Package aurora holds the pure visibility math: probability formulas,
// activity tiers and the derived display values. No I/O happens here.
package aurora

import "math"

// Icon tokens used by forecast entries.
const (
	IconHigh   = "\U0001F7E2" // green circle, Kp >= 5
	IconMedium = "\U0001F7E1" // yellow circle, Kp >= 3
	IconLow    = "\U0001F534" // red circle
	IconMoon   = "\U0001F319" // fallback entries
)

// Geometry of the circular progress ring: 816 circumference units at
// 12 units per dash segment.
const (
	arcSegments = 816.0 / 12.0
	arcGap      = 100.0
)

// DisplayProbability maps a Kp index and latitude to a 0-100 visibility
// probability for the display path. The required Kp threshold falls
// linearly with latitude; readings just under the threshold keep a flat
// 5% near-miss chance. Latitude is used as given, without Abs.
func DisplayProbability(kp, latitude float64) float64 {
	threshold := 10.0 - (latitude-45.0)*0.4
	if threshold < 0 {
		threshold = 0
	}

	if kp < threshold {
		if threshold-kp < 0.5 {
			return 5.0
		}
		return 0.0
	}

	return math.Min(100, math.Max(0, (kp-threshold)*33.0))
}

// ForecastProbability is the second, independently computed probability
// used for aggregate forecasts and the 3-day outlook entries: a discrete
// Kp tier adjusted by latitude band, clamped to [0,100].
func ForecastProbability(kp, latitude float64) int {
	absLat := math.Abs(latitude)

	var base int
	switch {
	case kp >= 7:
		base = 90
	case kp >= 5:
		base = 70
	case kp >= 3:
		base = 40
	default:
		base = 15
	}

	switch {
	case absLat > 65:
		base += 20
	case absLat > 55:
		base += 10
	case absLat < 45:
		base -= 20
	}

	if base > 100 {
		return 100
	}
	if base < 0 {
		return 0
	}
	return base
}

// ActivityLevel maps a Kp index to its categorical tier.
func ActivityLevel(kp float64) string {
	switch {
	case kp >= 7:
		return "Storm"
	case kp >= 5:
		return "Active"
	case kp >= 3:
		return "Medium"
	default:
		return "Low"
	}
}

// ProbabilityLabel maps a 0-100 probability to its display label.
// Input is a probability, not a Kp index.
func ProbabilityLabel(probability float64) string {
	switch {
	case probability >= 90:
		return "EXTREME"
	case probability >= 70:
		return "VERY HIGH"
	case probability >= 45:
		return "MODERATE"
	case probability >= 20:
		return "LOW"
	default:
		return "VERY LOW"
	}
}

// ActivityDescription returns the narrative text for a 0-100 probability.
func ActivityDescription(probability float64) string {
	switch {
	case probability <= 10:
		return "Very quiet skies - aurora is unlikely tonight"
	case probability <= 30:
		return "Low activity - a faint glow is possible on the northern horizon"
	case probability <= 50:
		return "Moderate activity - decent chance under a dark, clear sky"
	case probability <= 75:
		return "High activity - very good chances away from city lights"
	default:
		return "Storm-level activity - excellent chances, even at lower latitudes"
	}
}

// ArcFill converts a 0-100 probability into the filled/gap pair feeding
// the circular progress indicator's dash pattern. The gap constant is
// large enough to terminate the pattern after the filled run.
func ArcFill(probability float64) (filled, gap float64) {
	return (probability / 100.0) * arcSegments, arcGap
}

// IconForKp returns the colored circle token for a Kp index.
func IconForKp(kp float64) string {
	switch {
	case kp >= 5:
		return IconHigh
	case kp >= 3:
		return IconMedium
	default:
		return IconLow
	}
}
