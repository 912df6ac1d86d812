package analysis

import (
	"log"
	"sort"

	"github.com/ghighcove/movie-ratings-analysis/internal/dataset"
	"github.com/ghighcove/movie-ratings-analysis/internal/stats"
)

// StudioTags maps a movie ID to its production studio. The table is built by
// an external metadata collaborator and passed in as immutable configuration;
// untagged movies count as independent productions.
type StudioTags map[string]string

// StudioStats summarizes one studio's recent output against the indie
// baseline.
type StudioStats struct {
	Studio     string  `json:"studio"`
	Count      int     `json:"count"`
	MeanRating float64 `json:"mean_rating"`
	VsIndie    float64 `json:"vs_indie"`
}

// StudioComparison compares major-studio against independent ratings in the
// recent window.
type StudioComparison struct {
	MajorMean  float64 `json:"major_mean"`
	IndieMean  float64 `json:"indie_mean"`
	Difference float64 `json:"difference"`
	MajorCount int     `json:"major_count"`
	IndieCount int     `json:"indie_count"`
	TStatistic float64 `json:"t_statistic"`
	PValue     float64 `json:"p_value"`

	// Studios holds per-studio rows for studios with at least MinGroup recent
	// movies, sorted by vs-indie difference, descending.
	Studios []StudioStats `json:"studios"`
}

// CompareStudios tests whether major-studio releases rate differently from
// independent releases in the recent period, then breaks the comparison down
// per studio.
func CompareStudios(d *dataset.Dataset, tags StudioTags, recent dataset.YearRange, p Params) (StudioComparison, error) {
	if err := recent.Validate(); err != nil {
		return StudioComparison{}, err
	}

	recentMovies := dataset.InRange(d.RatedWithVotes(p.MinVotes), recent)

	var major, indie []float64
	byStudio := make(map[string][]float64)
	for _, m := range recentMovies {
		if studio, ok := tags[m.ID]; ok {
			major = append(major, m.Rating)
			byStudio[studio] = append(byStudio[studio], m.Rating)
		} else {
			indie = append(indie, m.Rating)
		}
	}

	if len(major) < p.MinGroup {
		return StudioComparison{}, &InsufficientDataError{Context: "major-studio group", Size: len(major), Min: p.MinGroup}
	}
	if len(indie) < p.MinGroup {
		return StudioComparison{}, &InsufficientDataError{Context: "independent group", Size: len(indie), Min: p.MinGroup}
	}

	tRes, err := stats.WelchT(major, indie)
	if err != nil {
		return StudioComparison{}, err
	}

	res := StudioComparison{
		MajorMean:  stats.Mean(major),
		IndieMean:  stats.Mean(indie),
		MajorCount: len(major),
		IndieCount: len(indie),
		TStatistic: tRes.Statistic,
		PValue:     tRes.PValue,
	}
	res.Difference = res.MajorMean - res.IndieMean

	names := make([]string, 0, len(byStudio))
	for name := range byStudio {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ratings := byStudio[name]
		if len(ratings) < p.MinGroup {
			continue
		}
		mean := stats.Mean(ratings)
		res.Studios = append(res.Studios, StudioStats{
			Studio:     name,
			Count:      len(ratings),
			MeanRating: mean,
			VsIndie:    mean - res.IndieMean,
		})
	}
	sort.SliceStable(res.Studios, func(i, j int) bool {
		return res.Studios[i].VsIndie > res.Studios[j].VsIndie
	})

	log.Printf("analysis: studios %d-%d: major=%.2f (n=%d) indie=%.2f (n=%d) p=%.4f",
		recent.Start, recent.End, res.MajorMean, res.MajorCount, res.IndieMean, res.IndieCount, res.PValue)
	return res, nil
}
