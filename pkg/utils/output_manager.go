package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutputManager organizes per-run output directories so concurrent API
// launched runs never share checkpoint or staging files.
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager.
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{BaseOutputDir: baseOutputDir}
}

// RunOutputDir creates (if needed) and returns the output directory for a
// run.
func (om *OutputManager) RunOutputDir(runID string) (string, error) {
	runDir := filepath.Join(om.BaseOutputDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create run output directory: %w", err)
	}
	return runDir, nil
}

// ArtifactPath returns the path of a named artifact inside a run's output
// directory. The filename is cleaned so it cannot escape the directory.
func (om *OutputManager) ArtifactPath(runID, fileName string) (string, error) {
	runDir, err := om.RunOutputDir(runID)
	if err != nil {
		return "", err
	}
	return filepath.Join(runDir, filepath.Base(fileName)), nil
}

// ArtifactSize returns the size of an artifact in bytes.
func (om *OutputManager) ArtifactSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
