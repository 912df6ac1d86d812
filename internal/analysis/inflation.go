package analysis

import (
	"sort"

	"github.com/ghighcove/movie-ratings-analysis/internal/dataset"
	"github.com/ghighcove/movie-ratings-analysis/internal/stats"
)

// YearlyStats is one row of the rating-inflation trend table.
type YearlyStats struct {
	Year         int     `json:"year"`
	MovieCount   int     `json:"movie_count"`
	RatingMean   float64 `json:"rating_mean"`
	RatingMedian float64 `json:"rating_median"`
	RatingStd    float64 `json:"rating_std"`
	VotesMean    float64 `json:"votes_mean"`
	VotesMedian  float64 `json:"votes_median"`

	// RatingZScore positions the year's mean against the whole window's
	// distribution of individual ratings.
	RatingZScore float64 `json:"rating_zscore"`
}

// RatingInflation aggregates per-year rating statistics over the window to
// expose inflation trends. Years are returned in ascending order.
func RatingInflation(d *dataset.Dataset, minVotes int, window dataset.YearRange) ([]YearlyStats, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	filtered := dataset.InRange(d.RatedWithVotes(minVotes), window)
	overall := stats.Describe(dataset.Ratings(filtered))

	byYear := make(map[int][]dataset.Movie)
	for _, m := range filtered {
		byYear[m.Year] = append(byYear[m.Year], m)
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	results := make([]YearlyStats, 0, len(years))
	for _, y := range years {
		movies := byYear[y]
		ratings := dataset.Ratings(movies)
		votes := make([]float64, len(movies))
		for i, m := range movies {
			votes[i] = float64(m.Votes)
		}
		row := YearlyStats{
			Year:         y,
			MovieCount:   len(movies),
			RatingMean:   stats.Mean(ratings),
			RatingMedian: stats.Median(ratings),
			RatingStd:    stats.StdDev(ratings),
			VotesMean:    stats.Mean(votes),
			VotesMedian:  stats.Median(votes),
		}
		if overall.Std > 0 {
			row.RatingZScore = (row.RatingMean - overall.Mean) / overall.Std
		}
		results = append(results, row)
	}
	return results, nil
}

// EraRanking is one movie's position in its era's top-rated list.
type EraRanking struct {
	Era   string        `json:"era"`
	Rank  int           `json:"era_rank"`
	Movie dataset.Movie `json:"movie"`
}

// TopRatedByEra extracts the top nTop movies of each era, requiring minVotes
// votes. Ordering within an era is rating descending, then votes descending,
// then ID ascending so ranks are reproducible.
func TopRatedByEra(d *dataset.Dataset, minVotes, nTop int) []EraRanking {
	byEra := make(map[string][]dataset.Movie)
	for _, m := range d.RatedWithVotes(minVotes) {
		era := m.Era()
		byEra[era] = append(byEra[era], m)
	}

	var results []EraRanking
	for _, era := range dataset.Eras {
		movies := byEra[era]
		sort.SliceStable(movies, func(i, j int) bool {
			if movies[i].Rating != movies[j].Rating {
				return movies[i].Rating > movies[j].Rating
			}
			if movies[i].Votes != movies[j].Votes {
				return movies[i].Votes > movies[j].Votes
			}
			return movies[i].ID < movies[j].ID
		})
		if len(movies) > nTop {
			movies = movies[:nTop]
		}
		for i, m := range movies {
			results = append(results, EraRanking{Era: era, Rank: i + 1, Movie: m})
		}
	}
	return results
}
