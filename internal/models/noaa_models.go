package models

// KpEntry represents one reading of the NOAA planetary K-index
// 1-minute JSON feed. The feed carries both the archived kp_index and
// a rolling estimated_kp; consumers prefer the estimate when positive.
type KpEntry struct {
	TimeTag     string  `json:"time_tag"`
	KpIndex     float64 `json:"kp_index"`
	EstimatedKp float64 `json:"estimated_kp"`
}
