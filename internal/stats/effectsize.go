package stats

import "math"

// Effect-size magnitude labels, using the conventional Cohen cut points.
const (
	EffectNegligible = "negligible"
	EffectSmall      = "small"
	EffectMedium     = "medium"
	EffectLarge      = "large"
)

// CohenD computes Cohen's d for two samples using the pooled standard
// deviation sqrt((sa^2 + sb^2)/2). The sign follows mean(a)-mean(b), so with
// the "after" sample first a positive d means ratings rose. Returns 0 when the
// pooled deviation is zero.
func CohenD(a, b []float64) float64 {
	sa := StdDev(a)
	sb := StdDev(b)
	pooled := math.Sqrt((sa*sa + sb*sb) / 2)
	if pooled == 0 {
		return 0
	}
	return (Mean(a) - Mean(b)) / pooled
}

// EffectSizeLabel maps |d| onto the conventional magnitude buckets.
func EffectSizeLabel(d float64) string {
	switch ad := math.Abs(d); {
	case ad < 0.2:
		return EffectNegligible
	case ad < 0.5:
		return EffectSmall
	case ad < 0.8:
		return EffectMedium
	default:
		return EffectLarge
	}
}
