package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/belief.report/internal/hgf"
)

// WriteHTMLReport renders the trajectory as a self-contained HTML page of
// interactive charts and writes it to path.
func WriteHTMLReport(tr *hgf.Trajectory, params hgf.Parameters, path string) error {
	if tr.Len() == 0 {
		return fmt.Errorf("empty trajectory")
	}

	subtitle := fmt.Sprintf(
		"trials=%d kappa=%g omega=%g theta=%g",
		tr.Len(), params.Kappa, params.Omega, params.Theta,
	)

	page := components.NewPage()
	page.AddCharts(
		outcomeChart(tr, subtitle),
		levelChart("Level 2 - Tendency", tr.Mu2, tr.Mu2Hat),
		levelChart("Level 3 - Log-Volatility", tr.Mu3, tr.Mu3Hat),
		errorChart(tr),
	)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func trialAxis(n int) []int {
	x := make([]int, n)
	for i := range x {
		x[i] = i + 1
	}
	return x
}

func lineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Value: v}
	}
	return data
}

func outcomeChart(tr *hgf.Trajectory, subtitle string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: "Outcome Probability", Subtitle: subtitle}),
	)
	line.SetXAxis(trialAxis(tr.Len())).
		AddSeries("mu1hat", lineData(tr.Mu1Hat)).
		AddSeries("outcomes", lineData(tr.Mu1))
	return line
}

func levelChart(title string, posterior, predicted []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
	)
	line.SetXAxis(trialAxis(len(posterior))).
		AddSeries("posterior", lineData(posterior)).
		AddSeries("predicted", lineData(predicted))
	return line
}

func errorChart(tr *hgf.Trajectory) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: "Prediction Errors"}),
	)
	line.SetXAxis(trialAxis(tr.Len())).
		AddSeries("da1", lineData(tr.Da1)).
		AddSeries("da2", lineData(tr.Da2))
	return line
}
