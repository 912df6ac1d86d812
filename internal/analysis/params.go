// Package analysis implements the statistical battery run over the prepared
// ratings dataset: cutoff-year hypothesis testing, genre and franchise anomaly
// detection, vote-count leading-digit analysis, documentary vote-efficiency
// drilldown and decade aggregation. Every function is a pure mapping from
// (dataset, parameters) to a result table; nothing here holds state between
// calls or mutates its input.
package analysis

import "github.com/ghighcove/movie-ratings-analysis/internal/dataset"

// Decision thresholds. These are policy, not tuning: the published conclusions
// depend on the exact values, so they live here as named constants rather than
// scattered per detector.
const (
	// Genre anomalies are suspicious only when both the effect size and the
	// significance clear their bars. The conjunction must not be split.
	GenreSuspicionEffectSize = 0.5
	GenreSuspicionPValue     = 0.01

	// The franchise comparison intentionally uses a looser rule on the raw
	// mean difference instead of Cohen's d.
	FranchiseSuspicionDiff   = 0.3
	FranchiseSuspicionPValue = 0.05

	// Vote-efficiency outliers sit above historical mean plus this many
	// historical standard deviations.
	OutlierStdMultiplier = 2.0

	// Leading-digit manipulation probability bands. The 0.01 band is checked
	// first.
	BenfordHighPValue   = 0.01
	BenfordMediumPValue = 0.05

	// Round-number clustering counts as a strong signal above this multiple
	// of the uniform baseline.
	ClusteringStrongRatio = 10.0

	// Share of records expected to land on any single round value by chance.
	RoundBucketExpectedShare = 0.001

	// Chinese-film proxy heuristic: marker count needed to select a
	// candidate, and the rating boost that flags it.
	ChinaProxyMinScore    = 2
	ChinaProxyBoostFlag   = 0.5
	ChinaProxyRuntimeLow  = 120
	ChinaProxyRuntimeHigh = 140
)

// BenfordExpected is the theoretical first-digit distribution, in percent, for
// digits 1 through 9. Sums to 100.
var BenfordExpected = [9]float64{30.1, 17.6, 12.5, 9.7, 7.9, 6.7, 5.8, 5.1, 4.6}

// DefaultRoundNumbers are the vote-count values checked for threshold-gaming
// clustering.
var DefaultRoundNumbers = []int{100, 500, 1000, 5000, 10000, 50000, 100000}

// DefaultCutoffYears are the candidate regime-change years compared against
// each other.
var DefaultCutoffYears = []int{2000, 2008, 2012, 2018, 2020}

// FranchiseGenreAllowlist is the fixed set of genres the franchise-vs-
// standalone comparison runs within. Deliberately narrower than the general
// genre sweep to limit multiple-comparison noise; preserved as-is.
var FranchiseGenreAllowlist = []string{"Action", "Sci-Fi", "Adventure", "Thriller", "Drama"}

// Params carries the shared analysis configuration. All components take it
// explicitly; there is no process-wide state.
type Params struct {
	// MinVotes is the vote floor a rating must have behind it to enter any
	// statistical comparison.
	MinVotes int `json:"min_votes"`

	// MinGroup is the smallest group size a two-sample test will accept.
	// Smaller groups are excluded from results to avoid unstable effect-size
	// estimates.
	MinGroup int `json:"min_group"`

	// MinFranchiseGroup is the separate, smaller floor for the franchise side
	// of the franchise-vs-standalone comparison.
	MinFranchiseGroup int `json:"min_franchise_group"`

	// Window restricts cutoff hypothesis testing to avoid sparse early-era
	// noise.
	Window dataset.YearRange `json:"window"`

	// Recent is the period treated as "recent" by the anomaly detectors;
	// everything strictly before Recent.Start is "historical".
	Recent dataset.YearRange `json:"recent"`

	// TopOutliers truncates outlier listings for reporting.
	TopOutliers int `json:"top_outliers"`
}

// DefaultParams mirrors the parameters of the published analysis.
func DefaultParams() Params {
	return Params{
		MinVotes:          1000,
		MinGroup:          10,
		MinFranchiseGroup: 5,
		Window:            dataset.YearRange{Start: 1980, End: 2024},
		Recent:            dataset.YearRange{Start: 2019, End: 2024},
		TopOutliers:       20,
	}
}
