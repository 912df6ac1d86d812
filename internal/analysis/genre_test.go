package analysis

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghighcove/movie-ratings-analysis/internal/dataset"
)

// genreScenario builds a dataset where Horror jumps a full point in the
// recent period while Drama stays put.
func genreScenario(t *testing.T) *dataset.Dataset {
	t.Helper()
	var movies []dataset.Movie
	n := 0
	add := func(year int, center float64, genre string) {
		movies = append(movies, movie(fmt.Sprintf("tt%d", n), year, jitter(center, n), 5000, genre))
		n++
	}
	for i := 0; i < 12; i++ {
		add(2000+i, 6.0, "Horror")
		add(2000+i, 6.5, "Drama")
	}
	for i := 0; i < 12; i++ {
		add(2019+i%6, 7.0, "Horror")
		add(2019+i%6, 6.5, "Drama")
	}
	return mustPrepare(t, movies)
}

func TestDetectGenreAnomalies(t *testing.T) {
	d := genreScenario(t)
	p := testParams()

	results, err := DetectGenreAnomalies(d, p.Recent, p)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d genres, want 2", len(results))
	}

	// Sorted by Cohen's d descending, so the boosted genre comes first.
	horror := results[0]
	if horror.Genre != "Horror" {
		t.Fatalf("first genre = %s, want Horror", horror.Genre)
	}
	if !horror.Suspicious {
		t.Errorf("Horror not flagged: d=%v p=%v", horror.CohensD, horror.PValue)
	}
	if math.Abs(horror.Difference-1.0) > 0.15 {
		t.Errorf("Horror difference = %v, want ~1.0", horror.Difference)
	}
	if horror.CohensD <= GenreSuspicionEffectSize {
		t.Errorf("Horror CohensD = %v, want > %v", horror.CohensD, GenreSuspicionEffectSize)
	}
	if horror.PValue >= GenreSuspicionPValue {
		t.Errorf("Horror PValue = %v, want < %v", horror.PValue, GenreSuspicionPValue)
	}

	drama := results[1]
	if drama.Genre != "Drama" {
		t.Fatalf("second genre = %s, want Drama", drama.Genre)
	}
	if drama.Suspicious {
		t.Errorf("Drama flagged despite identical means: d=%v p=%v", drama.CohensD, drama.PValue)
	}
	if math.Abs(drama.Difference) > 0.15 {
		t.Errorf("Drama difference = %v, want ~0", drama.Difference)
	}
}

func TestDetectGenreAnomaliesSuspicionNeedsBoth(t *testing.T) {
	// A big effect with a thin sample: significance is missing, so the
	// conjunction must keep the genre unflagged.
	var movies []dataset.Movie
	n := 0
	for i := 0; i < 5; i++ {
		movies = append(movies, movie(fmt.Sprintf("tth%d", n), 2005, jitter(6.0, n), 5000, "Western"))
		n++
	}
	for i := 0; i < 5; i++ {
		movies = append(movies, movie(fmt.Sprintf("ttr%d", n), 2020, jitter(6.3, n), 5000, "Western"))
		n++
	}
	d := mustPrepare(t, movies)
	p := testParams()

	results, err := DetectGenreAnomalies(d, p.Recent, p)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d genres, want 1", len(results))
	}
	w := results[0]
	if w.Suspicious {
		t.Errorf("Western flagged with p=%v, want suspicion to require p < %v", w.PValue, GenreSuspicionPValue)
	}
}

func TestDetectGenreAnomaliesSkipsSmallGroups(t *testing.T) {
	var movies []dataset.Movie
	n := 0
	for i := 0; i < 12; i++ {
		movies = append(movies, movie(fmt.Sprintf("tt%d", n), 2005, jitter(6.5, n), 5000, "Drama"))
		n++
	}
	for i := 0; i < 12; i++ {
		genres := []string{"Drama"}
		if i < 2 {
			genres = append(genres, "Musical") // only 2 recent, under the floor
		}
		movies = append(movies, dataset.Movie{
			ID: fmt.Sprintf("ttr%d", n), Title: "x", Year: 2020,
			Rating: jitter(6.5, n), Votes: 5000, Genres: genres,
		})
		n++
	}
	d := mustPrepare(t, movies)
	p := testParams()

	results, err := DetectGenreAnomalies(d, p.Recent, p)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range results {
		if r.Genre == "Musical" {
			t.Error("Musical included despite being under the group floor")
		}
	}
}

func TestDetectGenreAnomaliesIdempotent(t *testing.T) {
	d := genreScenario(t)
	p := testParams()

	first, err := DetectGenreAnomalies(d, p.Recent, p)
	if err != nil {
		t.Fatal(err)
	}
	second, err := DetectGenreAnomalies(d, p.Recent, p)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated run diverged (-first +second):\n%s", diff)
	}
}

func TestDetectGenreAnomaliesInvalidRange(t *testing.T) {
	d := genreScenario(t)
	if _, err := DetectGenreAnomalies(d, dataset.YearRange{Start: 2024, End: 2019}, testParams()); err == nil {
		t.Error("want error for inverted range")
	}
}
