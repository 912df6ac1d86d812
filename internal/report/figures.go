package report

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ghighcove/movie-ratings-analysis/internal/analysis"
)

// SaveBenfordFigure writes a PNG of observed and expected leading-digit
// shares as grouped bars.
func SaveBenfordFigure(res analysis.BenfordResult, outputDir string) (string, error) {
	p := plot.New()
	p.Title.Text = "Leading Digits vs Benford's Law"
	p.X.Label.Text = "Leading digit"
	p.Y.Label.Text = "Share (%)"

	observed := make(plotter.Values, 9)
	expected := make(plotter.Values, 9)
	for i := 0; i < 9; i++ {
		observed[i] = res.Observed[i]
		expected[i] = res.Expected[i]
	}

	w := vg.Points(16)
	obsBars, err := plotter.NewBarChart(observed, w)
	if err != nil {
		return "", fmt.Errorf("failed to build observed bars: %w", err)
	}
	obsBars.Offset = -w / 2
	expBars, err := plotter.NewBarChart(expected, w)
	if err != nil {
		return "", fmt.Errorf("failed to build expected bars: %w", err)
	}
	expBars.Offset = w / 2

	p.Add(obsBars, expBars)
	p.Legend.Add("observed", obsBars)
	p.Legend.Add("expected", expBars)
	p.Legend.Top = true
	p.NominalX("1", "2", "3", "4", "5", "6", "7", "8", "9")

	file := filepath.Join(outputDir, "benford_digits.png")
	if err := p.Save(10*vg.Inch, 6*vg.Inch, file); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", file, err)
	}
	return file, nil
}

// SaveYearlyTrendFigure writes a PNG line plot of mean rating per year.
func SaveYearlyTrendFigure(years []analysis.YearlyStats, outputDir string) (string, error) {
	p := plot.New()
	p.Title.Text = "Mean Rating by Year"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Mean rating"

	pts := make(plotter.XYs, 0, len(years))
	for _, y := range years {
		pts = append(pts, plotter.XY{X: float64(y.Year), Y: y.RatingMean})
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return "", fmt.Errorf("failed to build trend line: %w", err)
	}
	line.Width = vg.Points(1)
	p.Add(line)

	file := filepath.Join(outputDir, "yearly_mean_rating.png")
	if err := p.Save(14*vg.Inch, 6*vg.Inch, file); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", file, err)
	}
	return file, nil
}

// SaveDecadeFigure writes a PNG bar chart of highly rated movie counts per
// decade.
func SaveDecadeFigure(decades []analysis.DecadeStats, outputDir string) (string, error) {
	p := plot.New()
	p.Title.Text = "Highly Rated Movies by Decade"
	p.X.Label.Text = "Decade"
	p.Y.Label.Text = "Movies"

	counts := make(plotter.Values, 0, len(decades))
	labels := make([]string, 0, len(decades))
	for _, d := range decades {
		counts = append(counts, float64(d.Count))
		labels = append(labels, fmt.Sprintf("%ds", d.Decade))
	}
	bars, err := plotter.NewBarChart(counts, vg.Points(24))
	if err != nil {
		return "", fmt.Errorf("failed to build decade bars: %w", err)
	}
	p.Add(bars)
	p.NominalX(labels...)

	file := filepath.Join(outputDir, "decade_counts.png")
	if err := p.Save(10*vg.Inch, 6*vg.Inch, file); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", file, err)
	}
	return file, nil
}
