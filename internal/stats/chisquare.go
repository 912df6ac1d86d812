package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSquareGOF runs a chi-square goodness-of-fit test of observed against
// expected frequencies. The slices must have equal length and the expected
// frequencies must be positive. Degrees of freedom are len-1.
func ChiSquareGOF(observed, expected []float64) (TestResult, error) {
	if len(observed) != len(expected) {
		return TestResult{}, fmt.Errorf("chi-square: observed has %d bins, expected has %d", len(observed), len(expected))
	}
	if len(observed) < 2 {
		return TestResult{}, fmt.Errorf("chi-square: need at least 2 bins, got %d", len(observed))
	}

	var chi2 float64
	for i := range observed {
		if expected[i] <= 0 {
			return TestResult{}, fmt.Errorf("chi-square: expected frequency for bin %d is %v, must be positive", i, expected[i])
		}
		diff := observed[i] - expected[i]
		chi2 += diff * diff / expected[i]
	}

	dist := distuv.ChiSquared{K: float64(len(observed) - 1)}
	return TestResult{Statistic: chi2, PValue: dist.Survival(chi2)}, nil
}
