package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Levene runs the median-centered Levene test (Brown-Forsythe) for equality of
// variances across two samples. Median centering keeps the test robust to the
// skew that rating distributions show.
func Levene(a, b []float64) (TestResult, error) {
	if len(a) < 2 || len(b) < 2 {
		return TestResult{}, fmt.Errorf("levene test needs at least 2 observations per sample, got %d and %d", len(a), len(b))
	}

	groups := [][]float64{a, b}
	k := float64(len(groups))
	n := float64(len(a) + len(b))

	// Absolute deviations from each group's median.
	devs := make([][]float64, len(groups))
	for i, g := range groups {
		med := Median(g)
		devs[i] = make([]float64, len(g))
		for j, x := range g {
			devs[i][j] = math.Abs(x - med)
		}
	}

	grandSum, grandN := 0.0, 0.0
	groupMeans := make([]float64, len(devs))
	for i, d := range devs {
		groupMeans[i] = Mean(d)
		grandSum += groupMeans[i] * float64(len(d))
		grandN += float64(len(d))
	}
	grandMean := grandSum / grandN

	var between, within float64
	for i, d := range devs {
		ni := float64(len(d))
		diff := groupMeans[i] - grandMean
		between += ni * diff * diff
		for _, z := range d {
			e := z - groupMeans[i]
			within += e * e
		}
	}

	if within == 0 {
		if between == 0 {
			return TestResult{Statistic: 0, PValue: 1}, nil
		}
		return TestResult{Statistic: math.Inf(1), PValue: 0}, nil
	}

	w := ((n - k) / (k - 1)) * (between / within)
	dist := distuv.F{D1: k - 1, D2: n - k}
	return TestResult{Statistic: w, PValue: dist.Survival(w)}, nil
}
