package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/belief.report/internal/hgf"
)

func testTrajectory(t *testing.T) *hgf.Trajectory {
	t.Helper()
	tr, err := hgf.Filter(hgf.DefaultParameters(), []float64{1, 0, 1, 1, 0, 0, 1, 1, 1, 0}, nil)
	require.NoError(t, err)
	return tr
}

func TestGeneratePlots(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plots")
	written, err := GeneratePlots(testTrajectory(t), dir)
	require.NoError(t, err)
	require.Len(t, written, 4)

	for _, path := range written {
		info, err := os.Stat(path)
		require.NoError(t, err, "plot %s", path)
		assert.Greater(t, info.Size(), int64(0), "plot %s should not be empty", path)
		assert.True(t, strings.HasSuffix(path, ".png"))
	}
}

func TestGeneratePlotsEmptyTrajectory(t *testing.T) {
	_, err := GeneratePlots(&hgf.Trajectory{}, t.TempDir())
	assert.Error(t, err)
}

func TestWriteHTMLReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	err := WriteHTMLReport(testTrajectory(t), hgf.DefaultParameters(), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "Outcome Probability")
	assert.Contains(t, html, "Log-Volatility")
	assert.Contains(t, html, "mu1hat")
}

func TestWriteHTMLReportEmptyTrajectory(t *testing.T) {
	err := WriteHTMLReport(&hgf.Trajectory{}, hgf.DefaultParameters(), filepath.Join(t.TempDir(), "r.html"))
	assert.Error(t, err)
}
