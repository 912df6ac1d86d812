package analysis

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/ghighcove/movie-ratings-analysis/internal/dataset"
)

func studioScenario(t *testing.T) (*dataset.Dataset, StudioTags) {
	t.Helper()
	var movies []dataset.Movie
	tags := make(StudioTags)
	n := 0
	add := func(center float64, studio string) {
		id := fmt.Sprintf("tt%d", n)
		movies = append(movies, movie(id, 2020+n%5, jitter(center, n), 5000, "Action"))
		if studio != "" {
			tags[id] = studio
		}
		n++
	}
	for i := 0; i < 6; i++ {
		add(7.4, "Alpha Pictures")
	}
	for i := 0; i < 5; i++ {
		add(6.9, "Beta Studios")
	}
	for i := 0; i < 12; i++ {
		add(6.5, "")
	}
	d := mustPrepare(t, movies)
	return d, tags
}

func TestCompareStudios(t *testing.T) {
	d, tags := studioScenario(t)
	p := testParams()

	res, err := CompareStudios(d, tags, p.Recent, p)
	if err != nil {
		t.Fatal(err)
	}
	if res.MajorCount != 11 || res.IndieCount != 12 {
		t.Errorf("counts = %d/%d, want 11/12", res.MajorCount, res.IndieCount)
	}
	if res.Difference <= 0 {
		t.Errorf("Difference = %v, want positive with inflated studio ratings", res.Difference)
	}
	if math.Abs(res.Difference-(res.MajorMean-res.IndieMean)) > 1e-12 {
		t.Errorf("Difference = %v, want MajorMean-IndieMean", res.Difference)
	}

	if len(res.Studios) != 2 {
		t.Fatalf("got %d studio rows, want 2", len(res.Studios))
	}
	// Sorted by vs-indie lift, so the stronger studio leads.
	if res.Studios[0].Studio != "Alpha Pictures" || res.Studios[1].Studio != "Beta Studios" {
		t.Errorf("studio order = [%s %s], want [Alpha Pictures Beta Studios]",
			res.Studios[0].Studio, res.Studios[1].Studio)
	}
	for _, s := range res.Studios {
		want := s.MeanRating - res.IndieMean
		if math.Abs(s.VsIndie-want) > 1e-12 {
			t.Errorf("%s VsIndie = %v, want %v", s.Studio, s.VsIndie, want)
		}
	}
}

func TestCompareStudiosPerStudioFloor(t *testing.T) {
	d, tags := studioScenario(t)
	p := testParams()
	p.MinGroup = 6 // Beta's five movies fall under the per-studio floor

	res, err := CompareStudios(d, tags, p.Recent, p)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Studios) != 1 || res.Studios[0].Studio != "Alpha Pictures" {
		t.Errorf("studio rows = %+v, want Alpha Pictures only", res.Studios)
	}
}

func TestCompareStudiosInsufficientData(t *testing.T) {
	var movies []dataset.Movie
	for i := 0; i < 12; i++ {
		movies = append(movies, movie(fmt.Sprintf("tt%d", i), 2020+i%5, jitter(6.5, i), 5000, "Action"))
	}
	d := mustPrepare(t, movies)

	_, err := CompareStudios(d, StudioTags{}, testParams().Recent, testParams())
	var insufficient *InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("error = %v, want *InsufficientDataError with no tagged movies", err)
	}
}
