package store

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

// InitDB opens the run-tracking database and creates the schema. Tracking
// is optional: when InitDB was never called every store function is a
// no-op, so the pipeline can run standalone (and under test) without a DB.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	runTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		config TEXT,
		status TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS run_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		error_message TEXT,
		created_at DATETIME
	);
	`
	stageTable := `
	CREATE TABLE IF NOT EXISTS run_stages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		stage TEXT,
		status TEXT,
		created_at DATETIME
	);
	`
	reportTable := `
	CREATE TABLE IF NOT EXISTS run_report (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		record_id TEXT,
		stage TEXT,
		severity TEXT,
		message TEXT,
		created_at DATETIME
	);
	`

	for _, ddl := range []string{runTable, errorTable, stageTable, reportTable} {
		if _, err := db.Exec(ddl); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun stores a new migration run with its configuration snapshot.
func SaveRun(runID string, cfg *model.PipelineConfig) error {
	if db == nil {
		return nil
	}
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO runs (id, config, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		runID, cfgJSON, "pending", now, now)
	return err
}

// UpdateRunStatus updates the status of a run.
func UpdateRunStatus(runID string, status string) error {
	if db == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`, status, now, runID)
	return err
}

// SaveRunError records a fatal error for a run.
func SaveRunError(runID string, runErr error) error {
	if db == nil || runErr == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO run_errors (run_id, error_message, created_at) VALUES (?, ?, ?)`,
		runID, runErr.Error(), now)
	return err
}

// SaveStageProgress records a stage transition for a run.
func SaveStageProgress(runID, stage, status string) error {
	if db == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO run_stages (run_id, stage, status, created_at) VALUES (?, ?, ?, ?)`,
		runID, stage, status, now)
	return err
}

// SaveReport persists the validation report entries of a run.
func SaveReport(runID string, entries []model.ReportEntry) error {
	if db == nil {
		return nil
	}
	now := time.Now().UTC()
	for _, e := range entries {
		if _, err := db.Exec(
			`INSERT INTO run_report (run_id, record_id, stage, severity, message, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			runID, e.RecordID, e.Stage, string(e.Severity), e.Message, now); err != nil {
			return err
		}
	}
	return nil
}

// ListRuns returns all runs with basic info.
func ListRuns() ([]map[string]interface{}, error) {
	if db == nil {
		return nil, nil
	}
	rows, err := db.Query(`SELECT id, status, created_at, updated_at FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []map[string]interface{}
	for rows.Next() {
		var id, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, map[string]interface{}{
			"id":        id,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return runs, rows.Err()
}

// GetRun fetches a run's configuration snapshot and status.
func GetRun(runID string) (map[string]interface{}, error) {
	if db == nil {
		return nil, sql.ErrNoRows
	}
	var cfgJSON, status string
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`SELECT config, status, created_at, updated_at FROM runs WHERE id = ?`, runID).
		Scan(&cfgJSON, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var cfg model.PipelineConfig
	if err := json.Unmarshal([]byte(cfgJSON), &cfg); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":        runID,
		"config":    cfg,
		"status":    status,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}, nil
}

// GetRunReport returns the persisted validation report entries of a run.
func GetRunReport(runID string) ([]model.ReportEntry, error) {
	if db == nil {
		return nil, nil
	}
	rows, err := db.Query(`SELECT record_id, stage, severity, message FROM run_report WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.ReportEntry
	for rows.Next() {
		var e model.ReportEntry
		var severity string
		if err := rows.Scan(&e.RecordID, &e.Stage, &severity, &e.Message); err != nil {
			return nil, err
		}
		e.Severity = model.Severity(severity)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetRunErrors returns the fatal errors recorded for a run.
func GetRunErrors(runID string) ([]map[string]interface{}, error) {
	if db == nil {
		return nil, nil
	}
	rows, err := db.Query(`SELECT error_message, created_at FROM run_errors WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errs []map[string]interface{}
	for rows.Next() {
		var msg string
		var createdAt time.Time
		if err := rows.Scan(&msg, &createdAt); err != nil {
			return nil, err
		}
		errs = append(errs, map[string]interface{}{
			"message":   msg,
			"createdAt": createdAt,
		})
	}
	return errs, rows.Err()
}
