package store

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/belief.report/internal/hgf"
)

func openTestStore(t *testing.T) *RunStore {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRunStore(db)
}

func runTrajectory(t *testing.T) *hgf.Trajectory {
	t.Helper()
	tr, err := hgf.Filter(hgf.DefaultParameters(), []float64{1, 0, 1, 1, 0, 0, 1, 0}, []int{3})
	require.NoError(t, err)
	return tr
}

func TestInsertAndGetRun(t *testing.T) {
	s := openTestStore(t)
	tr := runTrajectory(t)

	sum := tr.Summary()
	run := &Run{
		Trials:  tr.Len(),
		Status:  RunStatusOK,
		Params:  hgf.DefaultParameters(),
		Summary: &sum,
	}
	require.NoError(t, s.InsertRun(run, tr))
	assert.NotEmpty(t, run.RunID, "insert should assign a run ID")
	assert.NotZero(t, run.CreatedAtNs)

	got, err := s.GetRun(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusOK, got.Status)
	assert.Equal(t, tr.Len(), got.Trials)
	assert.Nil(t, got.FailureTrial)
	require.NotNil(t, got.Summary)
	assert.Equal(t, sum.Surprise, got.Summary.Surprise)
	if diff := cmp.Diff(run.Params, got.Params); diff != "" {
		t.Errorf("params round trip (-want +got):\n%s", diff)
	}
}

func TestTrajectoryRoundTrip(t *testing.T) {
	s := openTestStore(t)
	tr := runTrajectory(t)

	run := &Run{Trials: tr.Len(), Status: RunStatusOK, Params: hgf.DefaultParameters()}
	require.NoError(t, s.InsertRun(run, tr))

	got, err := s.GetTrajectory(run.RunID)
	require.NoError(t, err)
	if diff := cmp.Diff(tr, got); diff != "" {
		t.Errorf("trajectory round trip (-want +got):\n%s", diff)
	}
}

func TestInsertFailedRun(t *testing.T) {
	s := openTestStore(t)

	failureTrial := int64(4)
	run := &Run{
		Trials:       10,
		Status:       RunStatusInvalidRegion,
		FailureTrial: &failureTrial,
		Params:       hgf.DefaultParameters(),
	}
	require.NoError(t, s.InsertRun(run, nil))

	got, err := s.GetRun(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusInvalidRegion, got.Status)
	require.NotNil(t, got.FailureTrial)
	assert.Equal(t, failureTrial, *got.FailureTrial)
	assert.Nil(t, got.Summary)

	tr, err := s.GetTrajectory(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, 0, tr.Len())
}

func TestListRuns(t *testing.T) {
	s := openTestStore(t)
	tr := runTrajectory(t)

	for i := 0; i < 3; i++ {
		run := &Run{
			Trials:      tr.Len(),
			Status:      RunStatusOK,
			Params:      hgf.DefaultParameters(),
			CreatedAtNs: int64(1000 + i),
		}
		require.NoError(t, s.InsertRun(run, tr))
	}

	runs, err := s.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.GreaterOrEqual(t, runs[0].CreatedAtNs, runs[1].CreatedAtNs, "most recent first")

	limited, err := s.ListRuns(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestDeleteRunCascades(t *testing.T) {
	s := openTestStore(t)
	tr := runTrajectory(t)

	run := &Run{Trials: tr.Len(), Status: RunStatusOK, Params: hgf.DefaultParameters()}
	require.NoError(t, s.InsertRun(run, tr))
	require.NoError(t, s.DeleteRun(run.RunID))

	_, err := s.GetRun(run.RunID)
	assert.Error(t, err)

	got, err := s.GetTrajectory(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len(), "trial rows should cascade on delete")

	assert.Error(t, s.DeleteRun("no-such-run"))
}
