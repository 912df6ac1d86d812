package dataset

import "log"

// YearRange is an inclusive [Start, End] span of release years.
type YearRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Validate rejects empty or inverted ranges.
func (r YearRange) Validate() error {
	if r.Start > r.End || r.End <= 0 {
		return &InvalidRangeError{Start: r.Start, End: r.End}
	}
	return nil
}

// Contains reports whether a known year falls inside the range.
func (r YearRange) Contains(year int) bool {
	return year >= r.Start && year <= r.End
}

// Dataset is the read-only working copy every analysis consumes. Prepare
// validates the input once; after that no analysis mutates the movie slice,
// they only derive filtered copies.
type Dataset struct {
	movies []Movie
}

// Prepare validates the merged movie records and wraps them as a Dataset.
// Validation is fatal on the first integrity violation found.
func Prepare(movies []Movie) (*Dataset, error) {
	seen := make(map[string]struct{}, len(movies))
	for _, m := range movies {
		if m.ID == "" {
			return nil, &DataIntegrityError{Reason: "empty identifier"}
		}
		if _, dup := seen[m.ID]; dup {
			return nil, &DataIntegrityError{Reason: "duplicate identifier", ID: m.ID}
		}
		seen[m.ID] = struct{}{}
		if m.Rated() && (m.Rating < 0 || m.Rating > 10) {
			return nil, &DataIntegrityError{Reason: "rating outside [0,10]", ID: m.ID}
		}
		if m.Votes < 0 {
			return nil, &DataIntegrityError{Reason: "negative vote count", ID: m.ID}
		}
	}
	log.Printf("dataset: prepared %d movies (%d rated)", len(movies), countRated(movies))
	return &Dataset{movies: movies}, nil
}

func countRated(movies []Movie) int {
	n := 0
	for _, m := range movies {
		if m.Rated() {
			n++
		}
	}
	return n
}

// Len returns the number of movies in the dataset.
func (d *Dataset) Len() int { return len(d.movies) }

// Movies returns a copy of the underlying records so callers cannot alias the
// dataset's storage.
func (d *Dataset) Movies() []Movie {
	out := make([]Movie, len(d.movies))
	copy(out, d.movies)
	return out
}

// Filter returns the movies matching keep, in dataset order.
func (d *Dataset) Filter(keep func(Movie) bool) []Movie {
	var out []Movie
	for _, m := range d.movies {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

// RatedWithVotes selects movies with a rating, a known year, and at least
// minVotes votes. This is the common precondition for every statistical test.
func (d *Dataset) RatedWithVotes(minVotes int) []Movie {
	return d.Filter(func(m Movie) bool {
		return m.Rated() && m.HasYear() && m.Votes >= minVotes
	})
}

// InRange selects the rated movies whose year falls inside r.
func InRange(movies []Movie, r YearRange) []Movie {
	var out []Movie
	for _, m := range movies {
		if m.HasYear() && r.Contains(m.Year) {
			out = append(out, m)
		}
	}
	return out
}

// Before selects the movies released strictly before year.
func Before(movies []Movie, year int) []Movie {
	var out []Movie
	for _, m := range movies {
		if m.HasYear() && m.Year < year {
			out = append(out, m)
		}
	}
	return out
}

// AtOrAfter selects the movies released in or after year.
func AtOrAfter(movies []Movie, year int) []Movie {
	var out []Movie
	for _, m := range movies {
		if m.HasYear() && m.Year >= year {
			out = append(out, m)
		}
	}
	return out
}

// Ratings extracts the mean ratings of rated movies.
func Ratings(movies []Movie) []float64 {
	var out []float64
	for _, m := range movies {
		if m.Rated() {
			out = append(out, m.Rating)
		}
	}
	return out
}

// GenreRatings extracts the ratings of rated movies carrying the genre tag.
// A multi-genre movie contributes to each of its genres.
func GenreRatings(movies []Movie, genre string) []float64 {
	var out []float64
	for _, m := range movies {
		if m.Rated() && m.HasGenre(genre) {
			out = append(out, m.Rating)
		}
	}
	return out
}

// ObservedGenres returns the distinct genre tags present in movies, in first-
// observation order so downstream iteration stays deterministic.
func ObservedGenres(movies []Movie) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range movies {
		for _, g := range m.Genres {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			out = append(out, g)
		}
	}
	return out
}
