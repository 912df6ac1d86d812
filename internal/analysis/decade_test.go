package analysis

import (
	"fmt"
	"math"
	"testing"

	"github.com/ghighcove/movie-ratings-analysis/internal/dataset"
)

func TestHighRatedByDecade(t *testing.T) {
	d := mustPrepare(t, []dataset.Movie{
		movie("tt1", 1955, 8.5, 50000),
		movie("tt2", 1958, 8.1, 20000),
		movie("tt3", 1994, 9.0, 500000),
		movie("tt4", 1995, 8.0, 10000),
		movie("tt5", 1997, 8.2, 30000),
		movie("tt6", 2021, 8.4, 40000),
		movie("tt7", 1942, 8.6, 90000), // pre-1950, excluded
		movie("tt8", 1996, 7.9, 90000), // under threshold
		movie("tt9", 1999, 8.9, 500),   // under vote floor
	})

	results := HighRatedByDecade(d, 8.0, 10000)
	if len(results) != 3 {
		t.Fatalf("got %d decades, want 3", len(results))
	}

	wantDecades := []int{1950, 1990, 2020}
	wantCounts := []int{2, 3, 1}
	for i, r := range results {
		if r.Decade != wantDecades[i] {
			t.Errorf("results[%d].Decade = %d, want %d", i, r.Decade, wantDecades[i])
		}
		if r.Count != wantCounts[i] {
			t.Errorf("results[%d].Count = %d, want %d", i, r.Count, wantCounts[i])
		}
	}

	nineties := results[1]
	if math.Abs(nineties.RatingMean-(9.0+8.0+8.2)/3) > 1e-9 {
		t.Errorf("1990s RatingMean = %v", nineties.RatingMean)
	}
	if nineties.RatingMedian != 8.2 {
		t.Errorf("1990s RatingMedian = %v, want 8.2", nineties.RatingMedian)
	}
	if nineties.VotesMedian != 30000 {
		t.Errorf("1990s VotesMedian = %v, want 30000", nineties.VotesMedian)
	}
}

func TestHighRatedByDecadeEmpty(t *testing.T) {
	d := mustPrepare(t, []dataset.Movie{movie("tt1", 2000, 6.0, 50000)})
	if got := HighRatedByDecade(d, 8.0, 10000); len(got) != 0 {
		t.Errorf("got %d decades, want 0", len(got))
	}
}

func TestRatingInflation(t *testing.T) {
	var movies []dataset.Movie
	n := 0
	for year := 2000; year <= 2004; year++ {
		for i := 0; i < 4; i++ {
			// Ratings drift upward by 0.2 per year.
			rating := jitter(6.0+0.2*float64(year-2000), n)
			movies = append(movies, movie(fmt.Sprintf("tt%d", n), year, rating, 5000))
			n++
		}
	}
	d := mustPrepare(t, movies)

	results, err := RatingInflation(d, 1000, dataset.YearRange{Start: 2000, End: 2004})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 5 {
		t.Fatalf("got %d years, want 5", len(results))
	}
	for i, r := range results {
		if r.Year != 2000+i {
			t.Errorf("results[%d].Year = %d, want %d", i, r.Year, 2000+i)
		}
		if r.MovieCount != 4 {
			t.Errorf("year %d MovieCount = %d, want 4", r.Year, r.MovieCount)
		}
	}
	if results[0].RatingZScore >= 0 {
		t.Errorf("first year z-score = %v, want negative", results[0].RatingZScore)
	}
	if results[4].RatingZScore <= 0 {
		t.Errorf("last year z-score = %v, want positive", results[4].RatingZScore)
	}
}

func TestRatingInflationInvalidWindow(t *testing.T) {
	d := mustPrepare(t, []dataset.Movie{movie("tt1", 2000, 6.0, 5000)})
	if _, err := RatingInflation(d, 1000, dataset.YearRange{Start: 2004, End: 2000}); err == nil {
		t.Error("want error for inverted window")
	}
}

func TestTopRatedByEra(t *testing.T) {
	d := mustPrepare(t, []dataset.Movie{
		movie("tt1", 1960, 8.0, 50000),
		movie("tt2", 1965, 8.5, 50000),
		movie("tt3", 1970, 7.5, 50000),
		movie("tt4", 2015, 8.5, 70000),
		movie("tt5", 2016, 8.5, 60000), // same rating, fewer votes than tt4
	})

	results := TopRatedByEra(d, 1000, 2)

	var fifties, tens []EraRanking
	for _, r := range results {
		switch r.Era {
		case dataset.Era1950s:
			fifties = append(fifties, r)
		case dataset.Era2010s:
			tens = append(tens, r)
		}
	}

	if len(fifties) != 2 {
		t.Fatalf("got %d entries for %s, want 2 (top-N truncation)", len(fifties), dataset.Era1950s)
	}
	if fifties[0].Movie.ID != "tt2" || fifties[0].Rank != 1 {
		t.Errorf("era leader = %s rank %d, want tt2 rank 1", fifties[0].Movie.ID, fifties[0].Rank)
	}
	if fifties[1].Movie.ID != "tt1" {
		t.Errorf("era runner-up = %s, want tt1", fifties[1].Movie.ID)
	}

	// Rating tie resolves on votes, descending.
	if len(tens) != 2 || tens[0].Movie.ID != "tt4" || tens[1].Movie.ID != "tt5" {
		t.Errorf("2010s order = %+v, want tt4 then tt5", tens)
	}
}
