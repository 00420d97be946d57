package risk

// Tier is the qualitative bucket for a risk score, shared by every view
// that colors risk. Thresholds use inclusive lower bounds.
type Tier string

const (
	TierVeryHigh Tier = "very_high"
	TierHigh     Tier = "high"
	TierModerate Tier = "moderate"
	TierLow      Tier = "low"
	TierVeryLow  Tier = "very_low"
)

// TierForScore maps a risk score in [0,1] to its tier.
func TierForScore(score float64) Tier {
	switch {
	case score >= 0.8:
		return TierVeryHigh
	case score >= 0.6:
		return TierHigh
	case score >= 0.4:
		return TierModerate
	case score >= 0.2:
		return TierLow
	default:
		return TierVeryLow
	}
}

// Color returns the legend color for the tier.
func (t Tier) Color() string {
	switch t {
	case TierVeryHigh:
		return "#ff4444"
	case TierHigh:
		return "#ff8800"
	case TierModerate:
		return "#ffaa00"
	case TierLow:
		return "#88cc00"
	default:
		return "#44cc44"
	}
}
