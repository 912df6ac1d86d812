package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TestResult is a generic two-sided test outcome.
type TestResult struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
}

// WelchT runs the unequal-variance two-sample t-test (Welch). Both samples
// need at least two observations. The returned statistic is signed
// mean(a)-mean(b); the p-value is two-sided using the Welch-Satterthwaite
// degrees of freedom.
func WelchT(a, b []float64) (TestResult, error) {
	if len(a) < 2 || len(b) < 2 {
		return TestResult{}, fmt.Errorf("welch t-test needs at least 2 observations per sample, got %d and %d", len(a), len(b))
	}

	meanA, varA := stat.MeanVariance(a, nil)
	meanB, varB := stat.MeanVariance(b, nil)
	na, nb := float64(len(a)), float64(len(b))

	se2 := varA/na + varB/nb
	if se2 == 0 {
		if meanA == meanB {
			// Identical constant samples: no evidence against equal means.
			return TestResult{Statistic: 0, PValue: 1}, nil
		}
		// Constant samples with different means: the difference is exact,
		// so the statistic diverges and the p-value collapses.
		t := math.Inf(1)
		if meanA < meanB {
			t = math.Inf(-1)
		}
		return TestResult{Statistic: t, PValue: 0}, nil
	}

	t := (meanA - meanB) / math.Sqrt(se2)
	df := se2 * se2 / ((varA/na)*(varA/na)/(na-1) + (varB/nb)*(varB/nb)/(nb-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))
	return TestResult{Statistic: t, PValue: p}, nil
}
