package analysis

import (
	"log"
	"sort"

	"github.com/ghighcove/movie-ratings-analysis/internal/dataset"
	"github.com/ghighcove/movie-ratings-analysis/internal/stats"
)

// GenreAnomaly compares one genre's recent ratings against its historical
// baseline. Historical means all rated movies strictly before the recent
// range's start.
type GenreAnomaly struct {
	Genre           string  `json:"genre"`
	RecentMean      float64 `json:"recent_mean"`
	HistoricalMean  float64 `json:"historical_mean"`
	Difference      float64 `json:"difference"`
	RecentCount     int     `json:"recent_count"`
	HistoricalCount int     `json:"historical_count"`
	TStatistic      float64 `json:"t_statistic"`
	PValue          float64 `json:"p_value"`
	CohensD         float64 `json:"cohens_d"`
	EffectSizeLabel string  `json:"effect_size_label"`
	Suspicious      bool    `json:"suspicious"`
}

// DetectGenreAnomalies sweeps every genre observed in the recent period and
// tests whether its recent mean rating deviates from the historical baseline.
// Multi-genre movies count toward each of their genres. Genres without at
// least p.MinGroup rated members on both sides are excluded from the table.
// A genre is suspicious only when |Cohen's d| > 0.5 and p < 0.01, both at
// once. Results are sorted by Cohen's d, descending.
func DetectGenreAnomalies(d *dataset.Dataset, recent dataset.YearRange, p Params) ([]GenreAnomaly, error) {
	if err := recent.Validate(); err != nil {
		return nil, err
	}

	base := d.RatedWithVotes(p.MinVotes)
	recentMovies := dataset.InRange(base, recent)
	histMovies := dataset.Before(base, recent.Start)

	var results []GenreAnomaly
	for _, genre := range dataset.ObservedGenres(recentMovies) {
		recentRatings := dataset.GenreRatings(recentMovies, genre)
		histRatings := dataset.GenreRatings(histMovies, genre)
		if len(recentRatings) < p.MinGroup || len(histRatings) < p.MinGroup {
			continue
		}

		tRes, err := stats.WelchT(recentRatings, histRatings)
		if err != nil {
			return nil, err
		}
		cohensD := stats.CohenD(recentRatings, histRatings)
		recentMean := stats.Mean(recentRatings)
		histMean := stats.Mean(histRatings)

		results = append(results, GenreAnomaly{
			Genre:           genre,
			RecentMean:      recentMean,
			HistoricalMean:  histMean,
			Difference:      recentMean - histMean,
			RecentCount:     len(recentRatings),
			HistoricalCount: len(histRatings),
			TStatistic:      tRes.Statistic,
			PValue:          tRes.PValue,
			CohensD:         cohensD,
			EffectSizeLabel: stats.EffectSizeLabel(cohensD),
			Suspicious:      abs(cohensD) > GenreSuspicionEffectSize && tRes.PValue < GenreSuspicionPValue,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CohensD > results[j].CohensD
	})

	suspicious := 0
	for _, r := range results {
		if r.Suspicious {
			suspicious++
		}
	}
	log.Printf("analysis: genre sweep %d-%d: %d genres tested, %d suspicious",
		recent.Start, recent.End, len(results), suspicious)
	return results, nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
