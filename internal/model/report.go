package model

import (
	"fmt"
	"os"
	"time"
)

// Severity classifies a validation finding.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ReportEntry is a single per-record finding surfaced by a stage.
type ReportEntry struct {
	RecordID string   `json:"record_id"`
	Stage    string   `json:"stage"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// ValidationReport accumulates findings across all stages of a run.
// It is owned by the orchestrator; stages return their own entries and the
// orchestrator merges them, so appends follow single-writer discipline.
type ValidationReport struct {
	Entries []ReportEntry `json:"entries"`
}

// NewValidationReport creates an empty report.
func NewValidationReport() *ValidationReport {
	return &ValidationReport{Entries: make([]ReportEntry, 0)}
}

// Warn appends a warning finding.
func (vr *ValidationReport) Warn(stage, recordID, format string, args ...interface{}) {
	vr.Entries = append(vr.Entries, ReportEntry{
		RecordID: recordID,
		Stage:    stage,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Error appends an error finding.
func (vr *ValidationReport) Error(stage, recordID, format string, args ...interface{}) {
	vr.Entries = append(vr.Entries, ReportEntry{
		RecordID: recordID,
		Stage:    stage,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Merge appends stage findings to the report.
func (vr *ValidationReport) Merge(entries []ReportEntry) {
	vr.Entries = append(vr.Entries, entries...)
}

// Counts returns the number of warnings and errors collected so far.
func (vr *ValidationReport) Counts() (warnings, errors int) {
	for _, e := range vr.Entries {
		switch e.Severity {
		case SeverityWarning:
			warnings++
		case SeverityError:
			errors++
		}
	}
	return warnings, errors
}

// WriteLog flushes the report to a log artifact at the given path.
func (vr *ValidationReport) WriteLog(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report log: %w", err)
	}
	defer f.Close()

	warnings, errs := vr.Counts()
	fmt.Fprintf(f, "# Migration validation report (%s)\n", time.Now().UTC().Format(time.RFC3339))
	fmt.Fprintf(f, "# %d warnings, %d errors\n", warnings, errs)
	for _, e := range vr.Entries {
		fmt.Fprintf(f, "[%s] [%s] product=%s %s\n", e.Severity, e.Stage, e.RecordID, e.Message)
	}
	return nil
}
