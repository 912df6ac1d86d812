package analysis

import (
	"log"
	"sort"
	"strings"

	"github.com/ghighcove/movie-ratings-analysis/internal/dataset"
	"github.com/ghighcove/movie-ratings-analysis/internal/stats"
)

// FranchiseKeywords maps a franchise name to the title keywords that tag a
// movie as belonging to it. Matching is a case-insensitive substring test.
// Passed explicitly so unrelated analyses share no hidden table.
type FranchiseKeywords map[string][]string

// DefaultFranchiseKeywords reproduces the manual 2019-2024 tagging table of
// the published analysis.
func DefaultFranchiseKeywords() FranchiseKeywords {
	return FranchiseKeywords{
		"MCU": {
			"Avengers", "Spider-Man", "Thor", "Black Widow", "Eternals", "Shang-Chi",
			"Doctor Strange", "Black Panther", "Guardians", "Ant-Man", "Captain Marvel",
			"Loki", "WandaVision", "Hawkeye", "Moon Knight", "She-Hulk", "Wakanda",
		},
		"DC": {
			"Batman", "Superman", "Wonder Woman", "Aquaman", "Flash", "Black Adam",
			"Shazam", "Joker", "Suicide Squad", "Peacemaker", "Harley Quinn",
		},
		"Star Wars": {
			"Mandalorian", "Boba Fett", "Ahsoka", "Obi-Wan", "Andor",
			"Rise of Skywalker", "Bad Batch", "Star Wars",
		},
		"Fast & Furious":     {"Fast", "Furious", "Hobbs & Shaw"},
		"John Wick":          {"John Wick"},
		"Avatar":             {"Avatar", "Way of Water"},
		"Jurassic":           {"Jurassic World", "Jurassic Park"},
		"Mission Impossible": {"Mission: Impossible", "Mission Impossible"},
		"Top Gun":            {"Top Gun"},
		"Dune":               {"Dune"},
	}
}

// Tag returns the franchise for each matching movie ID. Franchises are
// applied in sorted name order so overlapping keyword sets resolve
// deterministically (later names overwrite earlier matches).
func (fk FranchiseKeywords) Tag(movies []dataset.Movie) map[string]string {
	names := make([]string, 0, len(fk))
	for name := range fk {
		names = append(names, name)
	}
	sort.Strings(names)

	tags := make(map[string]string)
	for _, name := range names {
		for _, m := range movies {
			title := strings.ToLower(m.Title)
			for _, kw := range fk[name] {
				if strings.Contains(title, strings.ToLower(kw)) {
					tags[m.ID] = name
					break
				}
			}
		}
	}
	return tags
}

// FranchiseComparison compares franchise-tagged against standalone ratings
// within a single genre of the fixed allowlist.
type FranchiseComparison struct {
	Genre           string  `json:"genre"`
	FranchiseMean   float64 `json:"franchise_mean"`
	StandaloneMean  float64 `json:"standalone_mean"`
	Difference      float64 `json:"difference"`
	FranchiseCount  int     `json:"franchise_count"`
	StandaloneCount int     `json:"standalone_count"`
	TStatistic      float64 `json:"t_statistic"`
	PValue          float64 `json:"p_value"`
	CohensD         float64 `json:"cohens_d"`
	Suspicious      bool    `json:"suspicious"`
}

// CompareFranchises tests, within each allowlisted genre, whether franchise-
// tagged movies rate higher than standalone movies in the recent period.
// Floors are asymmetric on purpose: at least p.MinFranchiseGroup franchise and
// p.MinGroup standalone movies. The suspicious rule is also deliberately
// looser than the genre sweep's: difference > 0.3 and p < 0.05. Results are
// sorted by raw difference, descending.
func CompareFranchises(d *dataset.Dataset, keywords FranchiseKeywords, recent dataset.YearRange, p Params) ([]FranchiseComparison, error) {
	if err := recent.Validate(); err != nil {
		return nil, err
	}

	recentMovies := dataset.InRange(d.RatedWithVotes(p.MinVotes), recent)
	tags := keywords.Tag(recentMovies)

	var results []FranchiseComparison
	for _, genre := range FranchiseGenreAllowlist {
		var franchise, standalone []float64
		for _, m := range recentMovies {
			if !m.HasGenre(genre) {
				continue
			}
			if _, tagged := tags[m.ID]; tagged {
				franchise = append(franchise, m.Rating)
			} else {
				standalone = append(standalone, m.Rating)
			}
		}
		if len(franchise) < p.MinFranchiseGroup || len(standalone) < p.MinGroup {
			continue
		}

		tRes, err := stats.WelchT(franchise, standalone)
		if err != nil {
			return nil, err
		}
		franchiseMean := stats.Mean(franchise)
		standaloneMean := stats.Mean(standalone)
		diff := franchiseMean - standaloneMean

		results = append(results, FranchiseComparison{
			Genre:           genre,
			FranchiseMean:   franchiseMean,
			StandaloneMean:  standaloneMean,
			Difference:      diff,
			FranchiseCount:  len(franchise),
			StandaloneCount: len(standalone),
			TStatistic:      tRes.Statistic,
			PValue:          tRes.PValue,
			CohensD:         stats.CohenD(franchise, standalone),
			Suspicious:      diff > FranchiseSuspicionDiff && tRes.PValue < FranchiseSuspicionPValue,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Difference > results[j].Difference
	})

	log.Printf("analysis: franchise comparison %d-%d: %d movies tagged across %d genres tested",
		recent.Start, recent.End, len(tags), len(results))
	return results, nil
}
