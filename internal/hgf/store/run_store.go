package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/belief.report/internal/hgf"
)

// Run status values.
const (
	RunStatusOK            = "ok"
	RunStatusInvalidRegion = "invalid_parameter_region"
)

// Run is the persisted record of one filter invocation, successful or not.
// A failed run keeps its parameters and failure trial but has no trajectory
// rows.
type Run struct {
	RunID        string          `json:"run_id"`
	CreatedAtNs  int64           `json:"created_at_ns"`
	Trials       int             `json:"trials"`
	Status       string          `json:"status"`
	FailureTrial *int64          `json:"failure_trial,omitempty"`
	Params       hgf.Parameters  `json:"params"`
	Summary      *hgf.RunSummary `json:"summary,omitempty"`
}

// RunStore provides persistence for filter runs and their trajectories.
type RunStore struct {
	db *sql.DB
}

// NewRunStore creates a new RunStore.
func NewRunStore(db *sql.DB) *RunStore {
	return &RunStore{db: db}
}

// InsertRun persists a run and, when non-nil, its full trajectory in one
// transaction. If run.RunID is empty a new UUID is generated.
func (s *RunStore) InsertRun(run *Run, tr *hgf.Trajectory) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAtNs == 0 {
		run.CreatedAtNs = time.Now().UnixNano()
	}

	paramsJSON, err := json.Marshal(run.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	var summaryJSON []byte
	if run.Summary != nil {
		summaryJSON, err = json.Marshal(run.Summary)
		if err != nil {
			return fmt.Errorf("marshal summary: %w", err)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO hgf_runs (
			run_id, created_at_ns, trials, status, failure_trial,
			params_json, summary_json
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.RunID,
		run.CreatedAtNs,
		run.Trials,
		run.Status,
		nullInt64(run.FailureTrial),
		string(paramsJSON),
		nullString(string(summaryJSON)),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if tr != nil {
		stmt, err := tx.Prepare(`
			INSERT INTO hgf_trials (
				run_id, trial,
				mu1, mu2, mu3, sa1, sa2, sa3,
				mu1hat, mu2hat, mu3hat, sa1hat, sa2hat, sa3hat,
				w2, da1, da2
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("prepare trial insert: %w", err)
		}
		defer stmt.Close()

		for i := 0; i < tr.Len(); i++ {
			_, err := stmt.Exec(
				run.RunID, i+1,
				tr.Mu1[i], tr.Mu2[i], tr.Mu3[i], tr.Sa1[i], tr.Sa2[i], tr.Sa3[i],
				tr.Mu1Hat[i], tr.Mu2Hat[i], tr.Mu3Hat[i], tr.Sa1Hat[i], tr.Sa2Hat[i], tr.Sa3Hat[i],
				tr.W2[i], tr.Da1[i], tr.Da2[i],
			)
			if err != nil {
				return fmt.Errorf("insert trial %d: %w", i+1, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// GetRun retrieves a run record by ID.
func (s *RunStore) GetRun(runID string) (*Run, error) {
	var run Run
	var failureTrial sql.NullInt64
	var paramsJSON string
	var summaryJSON sql.NullString

	err := s.db.QueryRow(`
		SELECT run_id, created_at_ns, trials, status, failure_trial,
		       params_json, summary_json
		FROM hgf_runs
		WHERE run_id = ?
	`, runID).Scan(
		&run.RunID,
		&run.CreatedAtNs,
		&run.Trials,
		&run.Status,
		&failureTrial,
		&paramsJSON,
		&summaryJSON,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}

	if failureTrial.Valid {
		run.FailureTrial = &failureTrial.Int64
	}
	if err := json.Unmarshal([]byte(paramsJSON), &run.Params); err != nil {
		return nil, fmt.Errorf("unmarshal params: %w", err)
	}
	if summaryJSON.Valid {
		var sum hgf.RunSummary
		if err := json.Unmarshal([]byte(summaryJSON.String), &sum); err != nil {
			return nil, fmt.Errorf("unmarshal summary: %w", err)
		}
		run.Summary = &sum
	}

	return &run, nil
}

// GetTrajectory rebuilds a run's trajectory from its trial rows, ordered by
// trial index. A run persisted without a trajectory yields an empty one.
func (s *RunStore) GetTrajectory(runID string) (*hgf.Trajectory, error) {
	rows, err := s.db.Query(`
		SELECT mu1, mu2, mu3, sa1, sa2, sa3,
		       mu1hat, mu2hat, mu3hat, sa1hat, sa2hat, sa3hat,
		       w2, da1, da2
		FROM hgf_trials
		WHERE run_id = ?
		ORDER BY trial
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query trials: %w", err)
	}
	defer rows.Close()

	var tr hgf.Trajectory
	for rows.Next() {
		var mu1, mu2, mu3, sa1, sa2, sa3 float64
		var mu1hat, mu2hat, mu3hat, sa1hat, sa2hat, sa3hat float64
		var w2, da1, da2 float64
		if err := rows.Scan(
			&mu1, &mu2, &mu3, &sa1, &sa2, &sa3,
			&mu1hat, &mu2hat, &mu3hat, &sa1hat, &sa2hat, &sa3hat,
			&w2, &da1, &da2,
		); err != nil {
			return nil, fmt.Errorf("scan trial: %w", err)
		}
		tr.Mu1 = append(tr.Mu1, mu1)
		tr.Mu2 = append(tr.Mu2, mu2)
		tr.Mu3 = append(tr.Mu3, mu3)
		tr.Sa1 = append(tr.Sa1, sa1)
		tr.Sa2 = append(tr.Sa2, sa2)
		tr.Sa3 = append(tr.Sa3, sa3)
		tr.Mu1Hat = append(tr.Mu1Hat, mu1hat)
		tr.Mu2Hat = append(tr.Mu2Hat, mu2hat)
		tr.Mu3Hat = append(tr.Mu3Hat, mu3hat)
		tr.Sa1Hat = append(tr.Sa1Hat, sa1hat)
		tr.Sa2Hat = append(tr.Sa2Hat, sa2hat)
		tr.Sa3Hat = append(tr.Sa3Hat, sa3hat)
		tr.W2 = append(tr.W2, w2)
		tr.Da1 = append(tr.Da1, da1)
		tr.Da2 = append(tr.Da2, da2)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trials: %w", err)
	}

	return &tr, nil
}

// ListRuns returns up to limit runs, most recent first. A non-positive
// limit returns all runs.
func (s *RunStore) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, created_at_ns, trials, status, failure_trial,
		       params_json, summary_json
		FROM hgf_runs
		ORDER BY created_at_ns DESC
	`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var failureTrial sql.NullInt64
		var paramsJSON string
		var summaryJSON sql.NullString
		if err := rows.Scan(
			&run.RunID, &run.CreatedAtNs, &run.Trials, &run.Status,
			&failureTrial, &paramsJSON, &summaryJSON,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if failureTrial.Valid {
			run.FailureTrial = &failureTrial.Int64
		}
		if err := json.Unmarshal([]byte(paramsJSON), &run.Params); err != nil {
			return nil, fmt.Errorf("unmarshal params for %s: %w", run.RunID, err)
		}
		if summaryJSON.Valid {
			var sum hgf.RunSummary
			if err := json.Unmarshal([]byte(summaryJSON.String), &sum); err != nil {
				return nil, fmt.Errorf("unmarshal summary for %s: %w", run.RunID, err)
			}
			run.Summary = &sum
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// DeleteRun removes a run and, via the foreign key cascade, its trial rows.
func (s *RunStore) DeleteRun(runID string) error {
	result, err := s.db.Exec(`DELETE FROM hgf_runs WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run %s not found", runID)
	}
	return nil
}
