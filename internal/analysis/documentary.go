package analysis

import (
	"fmt"
	"log"
	"sort"

	"github.com/ghighcove/movie-ratings-analysis/internal/dataset"
	"github.com/ghighcove/movie-ratings-analysis/internal/stats"
)

// EfficiencyOutlier is one recent movie whose vote efficiency exceeds the
// historical outlier threshold.
type EfficiencyOutlier struct {
	ID         string  `json:"imdb_id"`
	Title      string  `json:"title"`
	Year       int     `json:"year"`
	Rating     float64 `json:"imdb_rating"`
	Votes      int     `json:"num_votes"`
	Efficiency float64 `json:"vote_efficiency"`
}

// EfficiencyResult compares recent against historical vote efficiency
// (rating per thousand votes) for one genre, and lists the recent outliers.
type EfficiencyResult struct {
	Genre                string  `json:"genre"`
	RecentMeanRating     float64 `json:"recent_mean_rating"`
	HistoricalMeanRating float64 `json:"historical_mean_rating"`
	RecentEfficiency     float64 `json:"recent_efficiency"`
	HistoricalEfficiency float64 `json:"historical_efficiency"`
	EfficiencyBoost      float64 `json:"efficiency_boost"`
	TStatistic           float64 `json:"t_statistic"`
	PValue               float64 `json:"p_value"`
	OutlierThreshold     float64 `json:"outlier_threshold"`
	SuspiciousCount      int     `json:"suspicious_count"`
	TotalRecent          int     `json:"total_recent"`

	// Outliers are sorted by efficiency, descending, truncated to
	// Params.TopOutliers for reporting.
	Outliers []EfficiencyOutlier `json:"suspicious_movies"`
}

// AnalyzeVoteEfficiency drills into one genre (Documentary in the published
// analysis) looking for movies that achieve high ratings on few votes. Vote
// efficiency is rating / (votes/1000). Recent movies above the historical
// mean plus OutlierStdMultiplier historical standard deviations are flagged.
func AnalyzeVoteEfficiency(d *dataset.Dataset, genre string, recent dataset.YearRange, p Params) (EfficiencyResult, error) {
	if err := recent.Validate(); err != nil {
		return EfficiencyResult{}, err
	}

	base := d.Filter(func(m dataset.Movie) bool {
		return m.Rated() && m.HasYear() && m.Votes > 0 && m.HasGenre(genre)
	})
	recentMovies := dataset.InRange(base, recent)
	histMovies := dataset.Before(base, recent.Start)

	if len(recentMovies) < p.MinGroup {
		return EfficiencyResult{}, &InsufficientDataError{
			Context: fmt.Sprintf("%s recent period", genre),
			Size:    len(recentMovies), Min: p.MinGroup,
		}
	}
	if len(histMovies) < p.MinGroup {
		return EfficiencyResult{}, &InsufficientDataError{
			Context: fmt.Sprintf("%s historical period", genre),
			Size:    len(histMovies), Min: p.MinGroup,
		}
	}

	recentEff := voteEfficiencies(recentMovies)
	histEff := voteEfficiencies(histMovies)

	tRes, err := stats.WelchT(recentEff, histEff)
	if err != nil {
		return EfficiencyResult{}, err
	}

	histSummary := stats.Describe(histEff)
	threshold := histSummary.Mean + OutlierStdMultiplier*histSummary.Std

	var outliers []EfficiencyOutlier
	for _, m := range recentMovies {
		eff := voteEfficiency(m)
		if eff > threshold {
			outliers = append(outliers, EfficiencyOutlier{
				ID: m.ID, Title: m.Title, Year: m.Year,
				Rating: m.Rating, Votes: m.Votes, Efficiency: eff,
			})
		}
	}
	sort.SliceStable(outliers, func(i, j int) bool {
		return outliers[i].Efficiency > outliers[j].Efficiency
	})
	suspiciousCount := len(outliers)
	if len(outliers) > p.TopOutliers {
		outliers = outliers[:p.TopOutliers]
	}

	res := EfficiencyResult{
		Genre:                genre,
		RecentMeanRating:     stats.Mean(dataset.Ratings(recentMovies)),
		HistoricalMeanRating: stats.Mean(dataset.Ratings(histMovies)),
		RecentEfficiency:     stats.Mean(recentEff),
		HistoricalEfficiency: histSummary.Mean,
		TStatistic:           tRes.Statistic,
		PValue:               tRes.PValue,
		OutlierThreshold:     threshold,
		SuspiciousCount:      suspiciousCount,
		TotalRecent:          len(recentMovies),
		Outliers:             outliers,
	}
	res.EfficiencyBoost = res.RecentEfficiency - res.HistoricalEfficiency

	log.Printf("analysis: %s efficiency %d-%d: boost=%.2f p=%.4f outliers=%d/%d",
		genre, recent.Start, recent.End, res.EfficiencyBoost, res.PValue, suspiciousCount, len(recentMovies))
	return res, nil
}

func voteEfficiency(m dataset.Movie) float64 {
	return m.Rating / (float64(m.Votes) / 1000)
}

func voteEfficiencies(movies []dataset.Movie) []float64 {
	out := make([]float64, 0, len(movies))
	for _, m := range movies {
		out = append(out, voteEfficiency(m))
	}
	return out
}
