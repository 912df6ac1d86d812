// Package report renders analysis results as an HTML dashboard (ECharts) and
// as standalone PNG figures (gonum/plot).
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ghighcove/movie-ratings-analysis/internal/analysis"
)

// BenfordChart plots observed versus expected leading-digit percentages.
func BenfordChart(res analysis.BenfordResult) *charts.Bar {
	digits := make([]string, 9)
	observed := make([]opts.BarData, 9)
	expected := make([]opts.BarData, 9)
	for i := 0; i < 9; i++ {
		digits[i] = fmt.Sprintf("%d", i+1)
		observed[i] = opts.BarData{Value: res.Observed[i]}
		expected[i] = opts.BarData{Value: res.Expected[i]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Vote Count Leading Digits vs Benford's Law",
			Subtitle: fmt.Sprintf("chi2=%.2f p=%.4g verdict=%s", res.Chi2Statistic, res.PValue, res.Verdict),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Leading digit"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Share (%)"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(digits).
		AddSeries("observed", observed).
		AddSeries("expected", expected)
	return bar
}

// GenreAnomalyChart plots the effect size of recent-versus-historical rating
// shifts per genre. Suspicious genres carry a label so they stand out.
func GenreAnomalyChart(anomalies []analysis.GenreAnomaly) *charts.Bar {
	names := make([]string, 0, len(anomalies))
	effects := make([]opts.BarData, 0, len(anomalies))
	for _, a := range anomalies {
		names = append(names, a.Genre)
		d := opts.BarData{Value: a.CohensD}
		if a.Suspicious {
			d.Label = &opts.Label{Show: opts.Bool(true), Position: "top", Formatter: "suspicious"}
		}
		effects = append(effects, d)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Genre Rating Shifts",
			Subtitle: fmt.Sprintf("recent vs historical, %d genres", len(anomalies)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Genre", AxisLabel: &opts.AxisLabel{Rotate: 45}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Cohen's d"}),
	)
	bar.SetXAxis(names).AddSeries("effect size", effects)
	return bar
}

// YearlyTrendChart plots mean rating per year with the movie count as a
// second series, which makes rating inflation visible at a glance.
func YearlyTrendChart(years []analysis.YearlyStats) *charts.Line {
	labels := make([]string, 0, len(years))
	means := make([]opts.LineData, 0, len(years))
	counts := make([]opts.LineData, 0, len(years))
	for _, y := range years {
		labels = append(labels, fmt.Sprintf("%d", y.Year))
		means = append(means, opts.LineData{Value: y.RatingMean})
		counts = append(counts, opts.LineData{Value: y.MovieCount})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Mean Rating by Year"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Year"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Mean rating"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	line.SetXAxis(labels).
		AddSeries("mean rating", means).
		AddSeries("movie count", counts)
	return line
}

// DecadeChart plots the number of highly rated movies per decade.
func DecadeChart(decades []analysis.DecadeStats) *charts.Bar {
	labels := make([]string, 0, len(decades))
	counts := make([]opts.BarData, 0, len(decades))
	for _, d := range decades {
		labels = append(labels, fmt.Sprintf("%ds", d.Decade))
		counts = append(counts, opts.BarData{Value: d.Count})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Highly Rated Movies by Decade"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Decade"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Movies"}),
	)
	bar.SetXAxis(labels).
		AddSeries("count", counts,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

// CutoffChart plots the before/after mean difference for each cutoff
// candidate, ordered by combined rank.
func CutoffChart(results []analysis.CutoffResult) *charts.Bar {
	labels := make([]string, 0, len(results))
	diffs := make([]opts.BarData, 0, len(results))
	for _, r := range results {
		labels = append(labels, fmt.Sprintf("%d", r.CutoffYear))
		diffs = append(diffs, opts.BarData{Value: r.MeanDiff})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Cutoff Candidates",
			Subtitle: "mean rating difference, after minus before",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Cutoff year"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Mean diff"}),
	)
	bar.SetXAxis(labels).AddSeries("mean diff", diffs)
	return bar
}

// Dashboard bundles the individual charts into a single HTML page.
type Dashboard struct {
	Cutoffs   []analysis.CutoffResult
	Genres    []analysis.GenreAnomaly
	Benford   *analysis.BenfordResult
	Yearly    []analysis.YearlyStats
	Decades   []analysis.DecadeStats
	PageTitle string
}

// Render writes the dashboard HTML to w. Sections with no data are skipped.
func (d Dashboard) Render(w io.Writer) error {
	page := components.NewPage()
	if d.PageTitle != "" {
		page.PageTitle = d.PageTitle
	}
	if len(d.Cutoffs) > 0 {
		page.AddCharts(CutoffChart(d.Cutoffs))
	}
	if len(d.Genres) > 0 {
		page.AddCharts(GenreAnomalyChart(d.Genres))
	}
	if d.Benford != nil {
		page.AddCharts(BenfordChart(*d.Benford))
	}
	if len(d.Yearly) > 0 {
		page.AddCharts(YearlyTrendChart(d.Yearly))
	}
	if len(d.Decades) > 0 {
		page.AddCharts(DecadeChart(d.Decades))
	}
	return page.Render(w)
}

// WriteHTML renders the dashboard to a file.
func (d Dashboard) WriteHTML(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := d.Render(f); err != nil {
		return fmt.Errorf("failed to render dashboard: %w", err)
	}
	return nil
}
