package imdb

import (
	"compress/gzip"
	"math"
	"os"
	"path/filepath"
	"testing"
)

const basicsTSV = `tconst	titleType	primaryTitle	originalTitle	isAdult	startYear	endYear	runtimeMinutes	genres
tt0000001	short	Carmencita	Carmencita	0	1894	\N	1	Documentary,Short
tt0111161	movie	The Shawshank Redemption	The Shawshank Redemption	0	1994	\N	142	Drama
tt0903747	tvSeries	Breaking Bad	Breaking Bad	0	2008	2013	49	Crime,Drama,Thriller
tt7777777	movie	Obscure Indie	Obscure Indie	0	\N	\N	\N	\N
tt8888888	movie	Never Rated	Never Rated	0	2020	\N	95	Horror
`

const ratingsTSV = `tconst	averageRating	numVotes
tt0000001	5.7	2085
tt0111161	9.3	2800000
tt0903747	9.5	2100000
tt7777777	6.1	150
`

func writeGzip(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMovies(t *testing.T) {
	dir := t.TempDir()
	basics := writeGzip(t, dir, "title.basics.tsv.gz", basicsTSV)
	ratings := writeGzip(t, dir, "title.ratings.tsv.gz", ratingsTSV)

	movies, err := LoadMovies(basics, ratings, Options{})
	if err != nil {
		t.Fatal(err)
	}

	// Shorts and series are dropped; the three movie rows survive.
	if len(movies) != 3 {
		t.Fatalf("got %d movies, want 3: %+v", len(movies), movies)
	}

	shawshank := movies[0]
	if shawshank.ID != "tt0111161" || shawshank.Title != "The Shawshank Redemption" {
		t.Errorf("first movie = %s (%s)", shawshank.ID, shawshank.Title)
	}
	if shawshank.Year != 1994 || shawshank.Runtime != 142 {
		t.Errorf("year/runtime = %d/%d, want 1994/142", shawshank.Year, shawshank.Runtime)
	}
	if len(shawshank.Genres) != 1 || shawshank.Genres[0] != "Drama" {
		t.Errorf("genres = %v, want [Drama]", shawshank.Genres)
	}
	if shawshank.Rating != 9.3 || shawshank.Votes != 2800000 {
		t.Errorf("rating/votes = %v/%d, want 9.3/2800000", shawshank.Rating, shawshank.Votes)
	}

	indie := movies[1]
	if indie.ID != "tt7777777" {
		t.Fatalf("second movie = %s, want tt7777777", indie.ID)
	}
	if indie.Year != 0 || indie.Runtime != 0 || indie.Genres != nil {
		t.Errorf("null fields round-trip: year=%d runtime=%d genres=%v", indie.Year, indie.Runtime, indie.Genres)
	}
	if indie.Rating != 6.1 {
		t.Errorf("rating = %v, want 6.1", indie.Rating)
	}

	neverRated := movies[2]
	if neverRated.ID != "tt8888888" {
		t.Fatalf("third movie = %s, want tt8888888", neverRated.ID)
	}
	if !math.IsNaN(neverRated.Rating) || neverRated.Votes != 0 {
		t.Errorf("unmatched ratings row: rating=%v votes=%d, want NaN/0", neverRated.Rating, neverRated.Votes)
	}
}

func TestLoadMoviesMinVotes(t *testing.T) {
	dir := t.TempDir()
	basics := writeGzip(t, dir, "title.basics.tsv.gz", basicsTSV)
	ratings := writeGzip(t, dir, "title.ratings.tsv.gz", ratingsTSV)

	movies, err := LoadMovies(basics, ratings, Options{MinVotes: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if len(movies) != 1 || movies[0].ID != "tt0111161" {
		t.Fatalf("got %+v, want only tt0111161", movies)
	}
}

func TestLoadMoviesPlainFiles(t *testing.T) {
	// Uncompressed dumps work too.
	dir := t.TempDir()
	basics := filepath.Join(dir, "basics.tsv")
	ratings := filepath.Join(dir, "ratings.tsv")
	if err := os.WriteFile(basics, []byte(basicsTSV), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ratings, []byte(ratingsTSV), 0o644); err != nil {
		t.Fatal(err)
	}

	movies, err := LoadMovies(basics, ratings, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(movies) != 3 {
		t.Fatalf("got %d movies, want 3", len(movies))
	}
}

func TestLoadMoviesMissingColumn(t *testing.T) {
	dir := t.TempDir()
	basics := writeGzip(t, dir, "basics.tsv.gz", "tconst\ttitleType\n")
	ratings := writeGzip(t, dir, "ratings.tsv.gz", ratingsTSV)

	if _, err := LoadMovies(basics, ratings, Options{}); err == nil {
		t.Error("want error for missing columns")
	}
}
