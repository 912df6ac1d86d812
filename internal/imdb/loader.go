// Package imdb reads the public IMDb dataset dumps (title.basics.tsv.gz and
// title.ratings.tsv.gz) and merges them into the movie records the analyses
// consume. This is plumbing only: downloading and caching the dumps is the
// caller's concern.
package imdb

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/ghighcove/movie-ratings-analysis/internal/dataset"
)

// nullToken is IMDb's marker for a missing field.
const nullToken = `\N`

// Options controls the merge.
type Options struct {
	// MinVotes drops movies with fewer votes (and, implicitly, unrated
	// movies) from the merged output. 0 keeps everything.
	MinVotes int
}

type ratingRow struct {
	rating float64
	votes  int
}

// LoadMovies parses the basics and ratings dumps and left-joins ratings onto
// movie titles. Non-movie title types (series, episodes, shorts) are dropped.
func LoadMovies(basicsPath, ratingsPath string, opts Options) ([]dataset.Movie, error) {
	ratings, err := loadRatings(ratingsPath)
	if err != nil {
		return nil, err
	}

	r, closeFn, err := openMaybeGzip(basicsPath)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	tsv := newTSVReader(r)
	header, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read basics header: %w", err)
	}
	col, err := columnIndex(header, "tconst", "titleType", "primaryTitle", "startYear", "runtimeMinutes", "genres")
	if err != nil {
		return nil, fmt.Errorf("basics file %s: %w", basicsPath, err)
	}

	var movies []dataset.Movie
	rowCount := 0
	for {
		rec, err := tsv.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read basics row %d: %w", rowCount+1, err)
		}
		rowCount++

		if rec[col["titleType"]] != "movie" {
			continue
		}

		m := dataset.Movie{
			ID:     rec[col["tconst"]],
			Title:  rec[col["primaryTitle"]],
			Rating: math.NaN(),
		}
		if y := rec[col["startYear"]]; y != nullToken {
			// Some legacy rows carry year ranges; those stay unknown.
			if v, err := strconv.Atoi(y); err == nil {
				m.Year = v
			}
		}
		if rt := rec[col["runtimeMinutes"]]; rt != nullToken {
			if v, err := strconv.Atoi(rt); err == nil {
				m.Runtime = v
			}
		}
		if g := rec[col["genres"]]; g != nullToken && g != "" {
			m.Genres = strings.Split(g, ",")
		}
		if rr, ok := ratings[m.ID]; ok {
			m.Rating = rr.rating
			m.Votes = rr.votes
		}
		if opts.MinVotes > 0 && m.Votes < opts.MinVotes {
			continue
		}
		movies = append(movies, m)
	}

	log.Printf("imdb: merged %d movies from %d basics rows (%d rating aggregates)",
		len(movies), rowCount, len(ratings))
	return movies, nil
}

func loadRatings(path string) (map[string]ratingRow, error) {
	r, closeFn, err := openMaybeGzip(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	tsv := newTSVReader(r)
	header, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read ratings header: %w", err)
	}
	col, err := columnIndex(header, "tconst", "averageRating", "numVotes")
	if err != nil {
		return nil, fmt.Errorf("ratings file %s: %w", path, err)
	}

	ratings := make(map[string]ratingRow)
	for {
		rec, err := tsv.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read ratings row: %w", err)
		}

		rating, err := strconv.ParseFloat(rec[col["averageRating"]], 64)
		if err != nil {
			return nil, fmt.Errorf("bad averageRating for %s: %w", rec[col["tconst"]], err)
		}
		votes, err := strconv.Atoi(rec[col["numVotes"]])
		if err != nil {
			return nil, fmt.Errorf("bad numVotes for %s: %w", rec[col["tconst"]], err)
		}
		ratings[rec[col["tconst"]]] = ratingRow{rating: rating, votes: votes}
	}
	return ratings, nil
}

// newTSVReader builds a csv.Reader for IMDb's tab-separated format. The dumps
// are unquoted, so quote characters inside titles must be taken literally.
func newTSVReader(r io.Reader) *csv.Reader {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.LazyQuotes = true
	tsv.ReuseRecord = false
	return tsv
}

func openMaybeGzip(path string) (io.Reader, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, func() { f.Close() }, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to open gzip stream %s: %w", path, err)
	}
	return gz, func() {
		gz.Close()
		f.Close()
	}, nil
}

func columnIndex(header []string, names ...string) (map[string]int, error) {
	col := make(map[string]int, len(names))
	for _, name := range names {
		found := false
		for i, h := range header {
			if h == name {
				col[name] = i
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("missing column %q in header %v", name, header)
		}
	}
	return col, nil
}
