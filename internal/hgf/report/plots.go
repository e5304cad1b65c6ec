// Package report renders filter trajectories for human inspection: static
// PNG panels via gonum/plot and a self-contained HTML report via
// go-echarts. Nothing here feeds back into the filter.
package report

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/belief.report/internal/hgf"
)

var (
	colourBelief    = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	colourBand      = color.RGBA{R: 31, G: 119, B: 180, A: 90}
	colourOutcome   = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	colourSecondary = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// GeneratePlots writes the standard trajectory panels into dir, creating it
// if needed, and returns the paths of the files written.
func GeneratePlots(tr *hgf.Trajectory, dir string) ([]string, error) {
	if tr.Len() == 0 {
		return nil, fmt.Errorf("empty trajectory")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var written []string
	save := func(p *plot.Plot, name string) error {
		path := filepath.Join(dir, name)
		if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
		written = append(written, path)
		return nil
	}

	if p, err := beliefPanel(tr); err != nil {
		return nil, err
	} else if err := save(p, "outcome_beliefs.png"); err != nil {
		return nil, err
	}

	if p, err := bandPanel("Level 2 - Tendency", tr.Mu2, tr.Sa2); err != nil {
		return nil, err
	} else if err := save(p, "tendency.png"); err != nil {
		return nil, err
	}

	if p, err := bandPanel("Level 3 - Log-Volatility", tr.Mu3, tr.Sa3); err != nil {
		return nil, err
	} else if err := save(p, "volatility.png"); err != nil {
		return nil, err
	}

	if p, err := errorPanel(tr); err != nil {
		return nil, err
	} else if err := save(p, "prediction_errors.png"); err != nil {
		return nil, err
	}

	return written, nil
}

// beliefPanel plots the predicted outcome probability against the observed
// outcomes.
func beliefPanel(tr *hgf.Trajectory) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Level 1 - Outcome Probability"
	p.X.Label.Text = "Trial"
	p.Y.Label.Text = "p(u=1)"
	p.Y.Min = -0.05
	p.Y.Max = 1.05

	line, err := plotter.NewLine(seriesXY(tr.Mu1Hat))
	if err != nil {
		return nil, err
	}
	line.Color = colourBelief
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("mu1hat", line)

	obs, err := plotter.NewScatter(seriesXY(tr.Mu1))
	if err != nil {
		return nil, err
	}
	obs.Color = colourOutcome
	obs.Radius = vg.Points(2)
	p.Add(obs)
	p.Legend.Add("outcomes", obs)

	p.Legend.Top = true
	return p, nil
}

// bandPanel plots a posterior mean with a ±1 standard deviation band.
func bandPanel(title string, mean, variance []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Trial"
	p.Y.Label.Text = "Posterior"

	line, err := plotter.NewLine(seriesXY(mean))
	if err != nil {
		return nil, err
	}
	line.Color = colourBelief
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("mean", line)

	upper := make([]float64, len(mean))
	lower := make([]float64, len(mean))
	for i := range mean {
		sd := math.Sqrt(variance[i])
		upper[i] = mean[i] + sd
		lower[i] = mean[i] - sd
	}
	var bandLine *plotter.Line
	for _, band := range [][]float64{upper, lower} {
		bl, err := plotter.NewLine(seriesXY(band))
		if err != nil {
			return nil, err
		}
		bl.Color = colourBand
		bl.Width = vg.Points(1)
		bl.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		p.Add(bl)
		bandLine = bl
	}
	p.Legend.Add("±1 sd", bandLine)

	p.Legend.Top = true
	return p, nil
}

// errorPanel plots both prediction-error series on one panel.
func errorPanel(tr *hgf.Trajectory) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Prediction Errors"
	p.X.Label.Text = "Trial"
	p.Y.Label.Text = "Error"

	da1, err := plotter.NewLine(seriesXY(tr.Da1))
	if err != nil {
		return nil, err
	}
	da1.Color = colourBelief
	da1.Width = vg.Points(1)
	p.Add(da1)
	p.Legend.Add("da1 (outcome)", da1)

	da2, err := plotter.NewLine(seriesXY(tr.Da2))
	if err != nil {
		return nil, err
	}
	da2.Color = colourSecondary
	da2.Width = vg.Points(1)
	p.Add(da2)
	p.Legend.Add("da2 (volatility)", da2)

	p.Legend.Top = true
	return p, nil
}

// seriesXY maps a trial series onto XY points with 1-based trial numbers.
func seriesXY(values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i] = plotter.XY{X: float64(i + 1), Y: v}
	}
	return pts
}
