// Package history persists a record of every `implement` pipeline run so
// the `history` command can show an auditable trail of what jwright
// already tried against a given test target. `watch` runs are not recorded.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"jwright/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store manages the run-history database.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// Open creates or opens the history database at path, creating its
// parent directory and schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("history: failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("history: failed to open database: %w", err)
	}

	s := &Store{db: db, dbPath: path}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		target TEXT NOT NULL,
		project_dir TEXT NOT NULL,
		success INTEGER NOT NULL,
		modified_file TEXT,
		failed_attempts_json TEXT,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_target ON runs(target);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	CREATE TABLE IF NOT EXISTS task_results (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL,
		task_id TEXT NOT NULL,
		status TEXT NOT NULL,
		message TEXT,
		attempts INTEGER NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);
	CREATE INDEX IF NOT EXISTS idx_task_results_run ON task_results(run_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Run is one recorded pipeline execution.
type Run struct {
	ID             string
	Target         string
	ProjectDir     string
	Success        bool
	ModifiedFile   string
	FailedAttempts []model.FailedAttempt
	StartedAt      time.Time
	FinishedAt     time.Time
	TaskResults    []model.TaskResult
}

// Record persists one pipeline run and its per-task results.
func (s *Store) Record(target, projectDir string, result model.PipelineResult, started, finished time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	failedJSON, err := marshalFailedAttempts(result.FailedAttempts)
	if err != nil {
		return "", err
	}

	runID := uuid.New().String()
	_, err = tx.Exec(
		`INSERT INTO runs (id, target, project_dir, success, modified_file, failed_attempts_json, started_at, finished_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, target, projectDir, boolToInt(result.Success), result.ModifiedFile, failedJSON, started, finished,
	)
	if err != nil {
		return "", err
	}

	for _, tr := range result.TaskResults {
		_, err = tx.Exec(
			`INSERT INTO task_results (id, run_id, task_id, status, message, attempts) VALUES (?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), runID, tr.TaskID, string(tr.Status), tr.Message, tr.Attempts,
		)
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

// ListByTarget returns target's recorded runs, most recent first.
func (s *Store) ListByTarget(target string, limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, target, project_dir, success, modified_file, failed_attempts_json, started_at, finished_at
		 FROM runs WHERE target = ? ORDER BY started_at DESC LIMIT ?`,
		target, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var success int
		var modifiedFile, failedJSON sql.NullString
		if err := rows.Scan(&r.ID, &r.Target, &r.ProjectDir, &success, &modifiedFile, &failedJSON, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, err
		}
		r.Success = success != 0
		r.ModifiedFile = modifiedFile.String
		failedAttempts, err := unmarshalFailedAttempts(failedJSON.String)
		if err != nil {
			return nil, err
		}
		r.FailedAttempts = failedAttempts
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		taskResults, err := s.taskResultsForRun(runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].TaskResults = taskResults
	}
	return runs, nil
}

func (s *Store) taskResultsForRun(runID string) ([]model.TaskResult, error) {
	rows, err := s.db.Query(
		`SELECT task_id, status, message, attempts FROM task_results WHERE run_id = ?`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.TaskResult
	for rows.Next() {
		var tr model.TaskResult
		var status string
		var message sql.NullString
		if err := rows.Scan(&tr.TaskID, &status, &message, &tr.Attempts); err != nil {
			return nil, err
		}
		tr.Status = model.TaskStatus(status)
		tr.Message = message.String
		results = append(results, tr)
	}
	return results, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func marshalFailedAttempts(attempts []model.FailedAttempt) (string, error) {
	if len(attempts) == 0 {
		return "", nil
	}
	data, err := json.Marshal(attempts)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalFailedAttempts(data string) ([]model.FailedAttempt, error) {
	if data == "" {
		return nil, nil
	}
	var attempts []model.FailedAttempt
	if err := json.Unmarshal([]byte(data), &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}
