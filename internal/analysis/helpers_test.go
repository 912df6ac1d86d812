package analysis

import (
	"testing"

	"github.com/ghighcove/movie-ratings-analysis/internal/dataset"
)

// movie builds a rated test record. IDs must stay unique per test dataset.
func movie(id string, year int, rating float64, votes int, genres ...string) dataset.Movie {
	return dataset.Movie{ID: id, Title: id, Year: year, Rating: rating, Votes: votes, Genres: genres}
}

func mustPrepare(t *testing.T, movies []dataset.Movie) *dataset.Dataset {
	t.Helper()
	d, err := dataset.Prepare(movies)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	return d
}

// testParams keeps the production thresholds but lowers the group floors so
// tests stay small.
func testParams() Params {
	p := DefaultParams()
	p.MinGroup = 5
	p.MinFranchiseGroup = 3
	return p
}

// jitter spreads ratings around center so two-sample tests see variance.
// Deterministic: the same index always yields the same offset.
func jitter(center float64, i int) float64 {
	offsets := []float64{-0.2, -0.1, 0, 0.1, 0.2}
	return center + offsets[i%len(offsets)]
}
