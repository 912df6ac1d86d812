package analysis

import (
	"fmt"
	"log"

	"github.com/ghighcove/movie-ratings-analysis/internal/dataset"
	"github.com/ghighcove/movie-ratings-analysis/internal/stats"
)

// Manipulation probability labels for the leading-digit test.
const (
	ProbabilityHigh   = "HIGH"
	ProbabilityMedium = "MEDIUM"
	ProbabilityLow    = "LOW"
)

// BenfordResult holds the leading-digit distribution analysis of vote counts
// plus the independent round-number clustering check.
type BenfordResult struct {
	Chi2Statistic float64    `json:"chi2_statistic"`
	PValue        float64    `json:"p_value"`
	Expected      [9]float64 `json:"benford_expected"`
	Observed      [9]float64 `json:"benford_observed"` // percentages, digit 1 first

	RoundCounts     map[int]int `json:"round_number_counts"`
	TotalRound      int         `json:"total_round_numbers"`
	ClusteringRatio float64     `json:"clustering_ratio"`

	TotalMovies             int    `json:"total_movies"`
	ManipulationProbability string `json:"manipulation_probability"`
	Verdict                 string `json:"verdict"`
}

// AnalyzeVoteDistribution tests whether the vote counts in the year range
// follow Benford's first-digit law, and separately measures clustering on
// round vote-count values against a uniform 0.1%-per-bucket baseline. The
// chi-square compares the observed and theoretical percentage distributions,
// both summing to 100.
func AnalyzeVoteDistribution(d *dataset.Dataset, years dataset.YearRange, roundNumbers []int, p Params) (BenfordResult, error) {
	if err := years.Validate(); err != nil {
		return BenfordResult{}, err
	}

	movies := dataset.InRange(d.Movies(), years)
	var digitCounts [9]int
	var votes []int
	for _, m := range movies {
		digit := leadingDigit(m.Votes)
		if digit == 0 {
			continue
		}
		digitCounts[digit-1]++
		votes = append(votes, m.Votes)
	}

	total := len(votes)
	if total < p.MinGroup {
		return BenfordResult{}, &InsufficientDataError{
			Context: fmt.Sprintf("vote distribution %d-%d", years.Start, years.End),
			Size:    total, Min: p.MinGroup,
		}
	}

	res := BenfordResult{
		Expected:    BenfordExpected,
		TotalMovies: total,
		RoundCounts: make(map[int]int, len(roundNumbers)),
	}
	for i, c := range digitCounts {
		res.Observed[i] = float64(c) / float64(total) * 100
	}

	chiRes, err := stats.ChiSquareGOF(res.Observed[:], res.Expected[:])
	if err != nil {
		return BenfordResult{}, err
	}
	res.Chi2Statistic = chiRes.Statistic
	res.PValue = chiRes.PValue

	for _, rn := range roundNumbers {
		count := 0
		for _, v := range votes {
			if v == rn {
				count++
			}
		}
		res.RoundCounts[rn] = count
		res.TotalRound += count
	}
	expectedRandom := float64(total) * RoundBucketExpectedShare * float64(len(roundNumbers))
	if expectedRandom > 0 {
		res.ClusteringRatio = float64(res.TotalRound) / expectedRandom
	}

	switch {
	case res.PValue < BenfordHighPValue:
		res.ManipulationProbability = ProbabilityHigh
	case res.PValue < BenfordMediumPValue:
		res.ManipulationProbability = ProbabilityMedium
	default:
		res.ManipulationProbability = ProbabilityLow
	}
	res.Verdict = benfordVerdict(res.PValue, res.ClusteringRatio)

	log.Printf("analysis: benford %d-%d: chi2=%.2f p=%.4f clustering=%.1fx (%s)",
		years.Start, years.End, res.Chi2Statistic, res.PValue, res.ClusteringRatio, res.ManipulationProbability)
	return res, nil
}

// leadingDigit returns the most significant decimal digit of n, or 0 when n
// has none (n <= 0).
func leadingDigit(n int) int {
	if n <= 0 {
		return 0
	}
	for n >= 10 {
		n /= 10
	}
	return n
}

// benfordVerdict combines the two independent signals into one of four
// mutually exclusive outcomes.
func benfordVerdict(pValue, clusteringRatio float64) string {
	violation := pValue < BenfordHighPValue
	clustered := clusteringRatio > ClusteringStrongRatio
	switch {
	case violation && clustered:
		return "STRONG evidence of manipulation (Benford violation + round clustering)"
	case violation:
		return "Benford violation detected - suggests artificial voting patterns"
	case clustered:
		return "Excessive round-number clustering - possible threshold gaming"
	default:
		return "No strong evidence of manipulation"
	}
}
