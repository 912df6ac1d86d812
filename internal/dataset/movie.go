package dataset

import "math"

// Movie is the unit of analysis: one title merged from the IMDb basics and
// ratings dumps. Zero values mark missing data where IMDb publishes \N:
// Year and Runtime use 0, Rating uses NaN.
type Movie struct {
	ID      string   `json:"imdb_id"`
	Title   string   `json:"title"`
	Year    int      `json:"year,omitempty"`
	Runtime int      `json:"runtime,omitempty"`
	Genres  []string `json:"genres,omitempty"`
	Rating  float64  `json:"imdb_rating,omitempty"`
	Votes   int      `json:"num_votes"`
}

// Rated reports whether the movie carries a rating aggregate.
func (m Movie) Rated() bool { return !math.IsNaN(m.Rating) }

// HasYear reports whether the release year is known. Unknown-year records are
// excluded from every year-based analysis.
func (m Movie) HasYear() bool { return m.Year > 0 }

// Decade returns the release year floored to the nearest ten, or 0 when the
// year is unknown.
func (m Movie) Decade() int {
	if !m.HasYear() {
		return 0
	}
	return (m.Year / 10) * 10
}

// HasGenre reports membership in a single genre tag. A movie belongs to each
// of its genres simultaneously; genre-level analyses must consult every tag,
// not just the first.
func (m Movie) HasGenre(genre string) bool {
	for _, g := range m.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// Era labels for the fixed year-range buckets.
const (
	EraPre1950 = "Pre-1950"
	Era1950s   = "1950-1979"
	Era1980s   = "1980-1999"
	Era2000s   = "2000-2009"
	Era2010s   = "2010-2019"
	Era2020s   = "2020+"
	EraUnknown = "Unknown"
)

// Eras lists the era buckets in chronological order.
var Eras = []string{EraPre1950, Era1950s, Era1980s, Era2000s, Era2010s, Era2020s}

// Era returns the fixed era bucket for the movie's release year.
func (m Movie) Era() string {
	switch {
	case !m.HasYear():
		return EraUnknown
	case m.Year < 1950:
		return EraPre1950
	case m.Year <= 1979:
		return Era1950s
	case m.Year <= 1999:
		return Era1980s
	case m.Year <= 2009:
		return Era2000s
	case m.Year <= 2019:
		return Era2010s
	default:
		return Era2020s
	}
}

// Rating category labels. A category is only assigned once the vote count
// clears the significance threshold; thinly-voted ratings stay Unknown.
const (
	RatingExcellent    = "Excellent (8.0+)"
	RatingGood         = "Good (7.0-7.9)"
	RatingAverage      = "Average (6.0-6.9)"
	RatingBelowAverage = "Below Average (<6.0)"
	RatingUnknown      = "Unknown"
)

// RatingCategory buckets the mean rating, provided the movie has at least
// sigVotes votes behind it.
func (m Movie) RatingCategory(sigVotes int) string {
	if !m.Rated() || m.Votes < sigVotes {
		return RatingUnknown
	}
	switch {
	case m.Rating >= 8.0:
		return RatingExcellent
	case m.Rating >= 7.0:
		return RatingGood
	case m.Rating >= 6.0:
		return RatingAverage
	default:
		return RatingBelowAverage
	}
}
