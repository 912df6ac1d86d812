package analysis

import (
	"fmt"
	"testing"

	"github.com/ghighcove/movie-ratings-analysis/internal/dataset"
)

func TestChinaProxyCandidates(t *testing.T) {
	var movies []dataset.Movie
	// Historical Action baseline around 6.5.
	for i := 0; i < 10; i++ {
		movies = append(movies, movie(fmt.Sprintf("tth%d", i), 2005+i, jitter(6.5, i), 5000, "Action", "Drama"))
	}

	// Two markers (keyword + genre combo) and a big boost: selected.
	hit := movie("tt_hit", 2021, 7.8, 5000, "Action", "War")
	hit.Title = "Dragon Emperor"
	movies = append(movies, hit)

	// Only one marker: skipped regardless of rating.
	oneMarker := movie("tt_one", 2022, 8.5, 5000, "Comedy")
	oneMarker.Title = "Legend of the Mountain"
	movies = append(movies, oneMarker)

	// Two markers but no boost over the baseline: skipped.
	flat := movie("tt_flat", 2023, 6.5, 5000, "Action", "History")
	flat.Title = "Warrior Dynasty"
	movies = append(movies, flat)

	d := mustPrepare(t, movies)
	p := testParams()

	results, err := ChinaProxyCandidates(d, p.Recent, p)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d candidates, want 1: %+v", len(results), results)
	}
	c := results[0]
	if c.ID != "tt_hit" {
		t.Errorf("candidate = %s, want tt_hit", c.ID)
	}
	if c.Score < ChinaProxyMinScore {
		t.Errorf("Score = %d, want >= %d", c.Score, ChinaProxyMinScore)
	}
	if c.RatingBoost <= ChinaProxyBoostFlag {
		t.Errorf("RatingBoost = %v, want > %v", c.RatingBoost, ChinaProxyBoostFlag)
	}
}

func TestChinaProxyRuntimeMarker(t *testing.T) {
	var movies []dataset.Movie
	for i := 0; i < 10; i++ {
		movies = append(movies, movie(fmt.Sprintf("tth%d", i), 2005+i, jitter(6.5, i), 5000, "Action"))
	}
	// No keyword, no genre combo: the runtime band alone is one marker short.
	m := movie("tt_rt", 2021, 7.8, 5000, "Action")
	m.Title = "Plain Title"
	m.Runtime = 130
	movies = append(movies, m)
	d := mustPrepare(t, movies)
	p := testParams()

	results, err := ChinaProxyCandidates(d, p.Recent, p)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("got %d candidates, want 0 with a single marker", len(results))
	}
}
