package analysis

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/ghighcove/movie-ratings-analysis/internal/dataset"
	"github.com/ghighcove/movie-ratings-analysis/internal/stats"
)

// CutoffResult holds the two-sample statistics for one candidate regime-change
// year. Before/after is a strict partition on release year within the analysis
// window: before means year < cutoff, after means year >= cutoff.
type CutoffResult struct {
	CutoffYear int `json:"cutoff_year"`

	NBefore    int     `json:"n_before"`
	NAfter     int     `json:"n_after"`
	MeanBefore float64 `json:"mean_before"`
	MeanAfter  float64 `json:"mean_after"`
	MeanDiff   float64 `json:"mean_diff"`
	StdBefore  float64 `json:"std_before"`
	StdAfter   float64 `json:"std_after"`

	TStatistic      float64 `json:"t_statistic"`
	TPValue         float64 `json:"t_pvalue"`
	LeveneStatistic float64 `json:"levene_statistic"`
	LevenePValue    float64 `json:"levene_pvalue"`
	KSStatistic     float64 `json:"ks_statistic"`
	KSPValue        float64 `json:"ks_pvalue"`
	CohensD         float64 `json:"cohens_d"`

	// Rank fields are populated by CompareCutoffs. Lower is stronger evidence.
	TRank        float64 `json:"t_rank,omitempty"`
	LeveneRank   float64 `json:"levene_rank,omitempty"`
	KSRank       float64 `json:"ks_rank,omitempty"`
	CombinedRank float64 `json:"combined_rank,omitempty"`
}

// TestCutoff evaluates the regime-change hypothesis for a single candidate
// year. Movies are restricted to rated entries with at least p.MinVotes votes
// inside p.Window. Either partition falling under p.MinGroup yields an
// InsufficientDataError.
func TestCutoff(d *dataset.Dataset, cutoffYear int, p Params) (CutoffResult, error) {
	if err := p.Window.Validate(); err != nil {
		return CutoffResult{}, err
	}

	filtered := dataset.InRange(d.RatedWithVotes(p.MinVotes), p.Window)
	before := dataset.Ratings(dataset.Before(filtered, cutoffYear))
	after := dataset.Ratings(dataset.AtOrAfter(filtered, cutoffYear))

	if len(before) < p.MinGroup {
		return CutoffResult{}, &InsufficientDataError{
			Context: fmt.Sprintf("cutoff %d before-partition", cutoffYear),
			Size:    len(before), Min: p.MinGroup,
		}
	}
	if len(after) < p.MinGroup {
		return CutoffResult{}, &InsufficientDataError{
			Context: fmt.Sprintf("cutoff %d after-partition", cutoffYear),
			Size:    len(after), Min: p.MinGroup,
		}
	}

	sumBefore := stats.Describe(before)
	sumAfter := stats.Describe(after)

	// Statistic signs follow after-minus-before throughout, matching the
	// reported mean difference.
	tRes, err := stats.WelchT(after, before)
	if err != nil {
		return CutoffResult{}, fmt.Errorf("cutoff %d t-test: %w", cutoffYear, err)
	}
	levRes, err := stats.Levene(after, before)
	if err != nil {
		return CutoffResult{}, fmt.Errorf("cutoff %d levene test: %w", cutoffYear, err)
	}
	ksRes, err := stats.KolmogorovSmirnov(after, before)
	if err != nil {
		return CutoffResult{}, fmt.Errorf("cutoff %d ks test: %w", cutoffYear, err)
	}

	return CutoffResult{
		CutoffYear:      cutoffYear,
		NBefore:         sumBefore.N,
		NAfter:          sumAfter.N,
		MeanBefore:      sumBefore.Mean,
		MeanAfter:       sumAfter.Mean,
		MeanDiff:        sumAfter.Mean - sumBefore.Mean,
		StdBefore:       sumBefore.Std,
		StdAfter:        sumAfter.Std,
		TStatistic:      tRes.Statistic,
		TPValue:         tRes.PValue,
		LeveneStatistic: levRes.Statistic,
		LevenePValue:    levRes.PValue,
		KSStatistic:     ksRes.Statistic,
		KSPValue:        ksRes.PValue,
		CohensD:         stats.CohenD(after, before),
	}, nil
}

// CompareCutoffs tests every candidate year and ranks them by combined
// evidence: the mean of the ascending rank orderings of the t, Levene and KS
// p-values. Results come back sorted by combined rank, ties preserving the
// candidate input order. Candidates that fail their partition floors are
// dropped from the table and their errors joined into the returned error; the
// remaining candidates are still ranked.
func CompareCutoffs(d *dataset.Dataset, years []int, p Params) ([]CutoffResult, error) {
	var results []CutoffResult
	var errs []error
	for _, year := range years {
		res, err := TestCutoff(d, year, p)
		if err != nil {
			var insufficient *InsufficientDataError
			if errors.As(err, &insufficient) {
				log.Printf("analysis: skipping cutoff %d: %v", year, err)
				errs = append(errs, err)
				continue
			}
			return nil, err
		}
		results = append(results, res)
	}

	if len(results) > 0 {
		tP := make([]float64, len(results))
		levP := make([]float64, len(results))
		ksP := make([]float64, len(results))
		for i, r := range results {
			tP[i] = r.TPValue
			levP[i] = r.LevenePValue
			ksP[i] = r.KSPValue
		}
		tRank := rankAscending(tP)
		levRank := rankAscending(levP)
		ksRank := rankAscending(ksP)
		for i := range results {
			results[i].TRank = tRank[i]
			results[i].LeveneRank = levRank[i]
			results[i].KSRank = ksRank[i]
			results[i].CombinedRank = (tRank[i] + levRank[i] + ksRank[i]) / 3
		}
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].CombinedRank < results[j].CombinedRank
		})
	}

	return results, errors.Join(errs...)
}

// rankAscending assigns 1-based ranks to xs, smallest first, with tied values
// receiving the average of the ranks they span.
func rankAscending(xs []float64) []float64 {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	ranks := make([]float64, len(xs))
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && xs[idx[j+1]] == xs[idx[i]] {
			j++
		}
		// Average rank across the tie run [i, j].
		avg := (float64(i+1) + float64(j+1)) / 2
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}
	return ranks
}
