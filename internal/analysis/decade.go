package analysis

import (
	"log"
	"sort"

	"github.com/ghighcove/movie-ratings-analysis/internal/dataset"
	"github.com/ghighcove/movie-ratings-analysis/internal/stats"
)

// DecadeStats aggregates the high-rated movies of one decade. Pure
// aggregation, no test: the trend charts and the high-rated-growth narrative
// read these rows directly.
type DecadeStats struct {
	Decade       int     `json:"decade"`
	Count        int     `json:"count"`
	RatingMean   float64 `json:"rating_mean"`
	RatingMedian float64 `json:"rating_median"`
	VotesMean    float64 `json:"votes_mean"`
	VotesMedian  float64 `json:"votes_median"`
}

// HighRatedByDecade counts movies at or above the rating threshold with at
// least minVotes votes, grouped by decade from 1950 on, ascending.
func HighRatedByDecade(d *dataset.Dataset, threshold float64, minVotes int) []DecadeStats {
	byDecade := make(map[int][]dataset.Movie)
	for _, m := range d.Movies() {
		if !m.Rated() || m.Rating < threshold || m.Votes < minVotes {
			continue
		}
		if dec := m.Decade(); dec >= 1950 {
			byDecade[dec] = append(byDecade[dec], m)
		}
	}

	decades := make([]int, 0, len(byDecade))
	for dec := range byDecade {
		decades = append(decades, dec)
	}
	sort.Ints(decades)

	results := make([]DecadeStats, 0, len(decades))
	total := 0
	for _, dec := range decades {
		movies := byDecade[dec]
		ratings := dataset.Ratings(movies)
		votes := make([]float64, len(movies))
		for i, m := range movies {
			votes[i] = float64(m.Votes)
		}
		results = append(results, DecadeStats{
			Decade:       dec,
			Count:        len(movies),
			RatingMean:   stats.Mean(ratings),
			RatingMedian: stats.Median(ratings),
			VotesMean:    stats.Mean(votes),
			VotesMedian:  stats.Median(votes),
		})
		total += len(movies)
	}

	log.Printf("analysis: %d movies rated >=%.1f across %d decades", total, threshold, len(results))
	return results
}
