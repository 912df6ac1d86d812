package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/ghighcove/movie-ratings-analysis/internal/analysis"
	"github.com/ghighcove/movie-ratings-analysis/internal/dataset"
	"github.com/ghighcove/movie-ratings-analysis/internal/db"
	"github.com/ghighcove/movie-ratings-analysis/internal/report"
)

func main() {
	var dbPath string
	var outputDir string
	var paramsPath string
	var minVotes int
	var efficiencyGenre string
	var skipFigures bool

	flag.StringVar(&dbPath, "db", "movies.db", "path to sqlite db with imported movies")
	flag.StringVar(&outputDir, "out", "analysis_output", "directory for the dashboard and figures")
	flag.StringVar(&paramsPath, "params", "", "optional JSON file overriding analysis parameters")
	flag.IntVar(&minVotes, "min-votes", 0, "override minimum vote floor (0 keeps the default)")
	flag.StringVar(&efficiencyGenre, "efficiency-genre", "Documentary", "genre for the vote-efficiency drilldown")
	flag.BoolVar(&skipFigures, "no-figures", false, "skip PNG figure output")
	flag.Parse()

	store, err := db.New(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer store.Close()

	movies, err := store.LoadMovies()
	if err != nil {
		log.Fatalf("load movies: %v", err)
	}
	d, err := dataset.Prepare(movies)
	if err != nil {
		log.Fatalf("prepare dataset: %v", err)
	}
	log.Printf("loaded %d movies from %s", d.Len(), dbPath)

	params := analysis.DefaultParams()
	if paramsPath != "" {
		overlay, err := analysis.LoadParamsOverlay(paramsPath)
		if err != nil {
			log.Fatalf("load params: %v", err)
		}
		params, err = overlay.Apply(params)
		if err != nil {
			log.Fatalf("apply params: %v", err)
		}
	}
	if minVotes > 0 {
		params.MinVotes = minVotes
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	dash := report.Dashboard{PageTitle: "Movie Ratings Analysis"}

	var insufficient *analysis.InsufficientDataError

	cutoffs, err := analysis.CompareCutoffs(d, analysis.DefaultCutoffYears, params)
	switch {
	case errors.As(err, &insufficient) && len(cutoffs) > 0:
		log.Printf("cutoff comparison: some candidates skipped: %v", err)
	case err != nil:
		log.Fatalf("cutoff comparison: %v", err)
	}
	for _, c := range cutoffs {
		log.Printf("cutoff %d: diff=%+.3f d=%+.3f t_p=%.4g levene_p=%.4g ks_p=%.4g rank=%.1f",
			c.CutoffYear, c.MeanDiff, c.CohensD, c.TPValue, c.LevenePValue, c.KSPValue, c.CombinedRank)
	}
	dash.Cutoffs = cutoffs

	genres, err := analysis.DetectGenreAnomalies(d, params.Recent, params)
	if err != nil {
		log.Fatalf("genre anomalies: %v", err)
	}
	suspicious := 0
	for _, g := range genres {
		if g.Suspicious {
			suspicious++
			log.Printf("suspicious genre %s: d=%+.3f p=%.4g recent=%.2f historical=%.2f",
				g.Genre, g.CohensD, g.PValue, g.RecentMean, g.HistoricalMean)
		}
	}
	log.Printf("genre anomalies: %d genres tested, %d suspicious", len(genres), suspicious)
	dash.Genres = genres

	franchises, err := analysis.CompareFranchises(d, analysis.DefaultFranchiseKeywords(), params.Recent, params)
	if err != nil {
		log.Fatalf("franchise comparison: %v", err)
	}
	for _, f := range franchises {
		if f.Suspicious {
			log.Printf("suspicious franchise inflation in %s: diff=%+.3f p=%.4g", f.Genre, f.Difference, f.PValue)
		}
	}

	benford, err := analysis.AnalyzeVoteDistribution(d, params.Recent, analysis.DefaultRoundNumbers, params)
	switch {
	case errors.As(err, &insufficient):
		log.Printf("benford analysis skipped: %v", err)
	case err != nil:
		log.Fatalf("benford analysis: %v", err)
	default:
		log.Printf("benford: chi2=%.2f p=%.4g clustering=%.2f manipulation=%s",
			benford.Chi2Statistic, benford.PValue, benford.ClusteringRatio, benford.ManipulationProbability)
		log.Printf("benford verdict: %s", benford.Verdict)
		dash.Benford = &benford
	}

	efficiency, err := analysis.AnalyzeVoteEfficiency(d, efficiencyGenre, params.Recent, params)
	switch {
	case errors.As(err, &insufficient):
		log.Printf("%s efficiency drilldown skipped: %v", efficiencyGenre, err)
	case err != nil:
		log.Fatalf("%s efficiency drilldown: %v", efficiencyGenre, err)
	default:
		log.Printf("%s efficiency: boost=%+.2f suspicious=%d of %d recent",
			efficiencyGenre, efficiency.EfficiencyBoost, efficiency.SuspiciousCount, efficiency.TotalRecent)
		for i, o := range efficiency.Outliers {
			if i >= 5 {
				break
			}
			log.Printf("  outlier %s (%d): rating=%.1f votes=%d efficiency=%.2f", o.Title, o.Year, o.Rating, o.Votes, o.Efficiency)
		}
	}

	yearly, err := analysis.RatingInflation(d, params.MinVotes, params.Window)
	if err != nil {
		log.Fatalf("rating inflation: %v", err)
	}
	dash.Yearly = yearly

	decades := analysis.HighRatedByDecade(d, 8.0, 10000)
	for _, dec := range decades {
		log.Printf("decade %ds: %d movies, mean=%.2f median votes=%.0f",
			dec.Decade, dec.Count, dec.RatingMean, dec.VotesMedian)
	}
	dash.Decades = decades

	for _, r := range analysis.TopRatedByEra(d, 10000, 3) {
		log.Printf("era %s #%d: %s (%d) rating=%.1f", r.Era, r.Rank, r.Movie.Title, r.Movie.Year, r.Movie.Rating)
	}

	candidates, err := analysis.ChinaProxyCandidates(d, params.Recent, params)
	if err != nil {
		log.Fatalf("china proxy screening: %v", err)
	}
	for i, c := range candidates {
		if i >= 10 {
			break
		}
		log.Printf("proxy candidate %s (%d): rating=%.1f expected=%.1f boost=%+.2f score=%d",
			c.Title, c.Year, c.Rating, c.ExpectedRating, c.RatingBoost, c.Score)
	}

	htmlPath := filepath.Join(outputDir, "dashboard.html")
	if err := dash.WriteHTML(htmlPath); err != nil {
		log.Fatalf("write dashboard: %v", err)
	}
	log.Printf("dashboard written to %s", htmlPath)

	if !skipFigures {
		if dash.Benford != nil {
			if file, err := report.SaveBenfordFigure(*dash.Benford, outputDir); err != nil {
				log.Printf("benford figure: %v", err)
			} else {
				log.Printf("figure written to %s", file)
			}
		}
		if file, err := report.SaveYearlyTrendFigure(yearly, outputDir); err != nil {
			log.Printf("yearly trend figure: %v", err)
		} else {
			log.Printf("figure written to %s", file)
		}
		if file, err := report.SaveDecadeFigure(decades, outputDir); err != nil {
			log.Printf("decade figure: %v", err)
		} else {
			log.Printf("figure written to %s", file)
		}
	}

	run, err := store.RecordRun(params, d.Len())
	if err != nil {
		log.Fatalf("record run: %v", err)
	}
	log.Printf("analysis run %s recorded", run.RunID)
}
