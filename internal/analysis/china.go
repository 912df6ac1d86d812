package analysis

import (
	"log"
	"sort"
	"strings"

	"github.com/ghighcove/movie-ratings-analysis/internal/dataset"
	"github.com/ghighcove/movie-ratings-analysis/internal/stats"
)

// ChinaProxyKeywords are the title markers of the Chinese-film proxy
// heuristic.
var ChinaProxyKeywords = []string{
	"Dragon", "Warrior", "Legend", "Dynasty", "Crouching", "Hidden",
	"Tiger", "Kung Fu", "Shaolin", "Wuxia", "Mulan", "Emperor",
}

// ChinaProxyCandidate is one movie selected by the proxy heuristic, with its
// marker score and rating boost over the historical genre baseline.
type ChinaProxyCandidate struct {
	ID             string   `json:"imdb_id"`
	Title          string   `json:"title"`
	Year           int      `json:"year"`
	Runtime        int      `json:"runtime"`
	Genres         []string `json:"genres"`
	Rating         float64  `json:"imdb_rating"`
	Votes          int      `json:"num_votes"`
	Score          int      `json:"china_score"`
	ExpectedRating float64  `json:"expected_rating"`
	RatingBoost    float64  `json:"rating_boost"`
}

// ChinaProxyCandidates applies a coarse, self-admittedly approximate
// heuristic for likely Chinese-influenced films: a title keyword marker, an
// Action plus Drama/War/History genre marker, and a 120-140 minute runtime
// marker. Movies scoring at least ChinaProxyMinScore markers are compared to
// the historical median rating of their genres; a boost over
// ChinaProxyBoostFlag selects the candidate. There is no ground-truth
// validation behind the markers, so the output is a screening list, not
// evidence, and it never feeds the suspicious roll-ups of the statistical
// detectors.
func ChinaProxyCandidates(d *dataset.Dataset, recent dataset.YearRange, p Params) ([]ChinaProxyCandidate, error) {
	if err := recent.Validate(); err != nil {
		return nil, err
	}

	base := d.RatedWithVotes(p.MinVotes)
	recentMovies := dataset.InRange(base, recent)
	histMovies := dataset.Before(base, recent.Start)

	var results []ChinaProxyCandidate
	for _, m := range recentMovies {
		score := 0
		title := strings.ToLower(m.Title)
		for _, kw := range ChinaProxyKeywords {
			if strings.Contains(title, strings.ToLower(kw)) {
				score++
				break
			}
		}
		if m.HasGenre("Action") && (m.HasGenre("Drama") || m.HasGenre("War") || m.HasGenre("History")) {
			score++
		}
		if m.Runtime >= ChinaProxyRuntimeLow && m.Runtime <= ChinaProxyRuntimeHigh {
			score++
		}
		if score < ChinaProxyMinScore {
			continue
		}

		// Baseline: median historical rating across movies sharing any genre.
		var baseline []float64
		for _, h := range histMovies {
			for _, g := range m.Genres {
				if h.HasGenre(g) {
					baseline = append(baseline, h.Rating)
					break
				}
			}
		}
		if len(baseline) == 0 {
			continue
		}
		expected := stats.Median(baseline)
		boost := m.Rating - expected
		if boost <= ChinaProxyBoostFlag {
			continue
		}

		results = append(results, ChinaProxyCandidate{
			ID: m.ID, Title: m.Title, Year: m.Year, Runtime: m.Runtime,
			Genres: m.Genres, Rating: m.Rating, Votes: m.Votes,
			Score: score, ExpectedRating: expected, RatingBoost: boost,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RatingBoost > results[j].RatingBoost
	})
	log.Printf("analysis: china proxy %d-%d: %d candidates with boost > %.1f",
		recent.Start, recent.End, len(results), ChinaProxyBoostFlag)
	return results, nil
}
