package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/config"
	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/model"
	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/pipeline"
	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/store"
	"github.com/Osbaldo-Arellano/MDSF-Migration/pkg/utils"

	"github.com/google/uuid"
)

// OutputBase is where API-launched runs keep their per-run artifacts.
var OutputBase = "output"

// CreateRun launches a new migration run
// @Summary Create a migration run
// @Description Start a migration run from the posted pipeline configuration. Checkpoints and the final package land in a per-run output directory.
// @Tags runs
// @Accept json
// @Produce json
// @Param config body model.PipelineConfig true "Pipeline configuration"
// @Param start_from query int false "Canonical stage index to resume from"
// @Param timeout query string false "Run deadline as a duration string, default 5m"
// @Success 200 {object} map[string]interface{} "Run created"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [post]
func CreateRun(w http.ResponseWriter, r *http.Request) {
	cfg := config.Default()
	if err := json.NewDecoder(r.Body).Decode(cfg); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if err := config.Validate(cfg); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	startFrom := 0
	if v := r.URL.Query().Get("start_from"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "Invalid start_from", http.StatusBadRequest)
			return
		}
		startFrom = n
	}

	runID := uuid.New().String()

	// Each run gets its own output directory so concurrent runs never
	// clobber each other's checkpoints.
	om := utils.NewOutputManager(OutputBase)
	runDir, err := om.RunOutputDir(runID)
	if err != nil {
		http.Error(w, "Failed to create run output directory", http.StatusInternalServerError)
		return
	}
	cfg.Paths.OutputDir = runDir

	if err := store.SaveRun(runID, cfg); err != nil {
		http.Error(w, "Failed to save run", http.StatusInternalServerError)
		return
	}

	timeout := utils.ParseDuration(r.URL.Query().Get("timeout"))
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		orch := pipeline.New(runID, cfg)
		// Errors are persisted by the orchestrator itself.
		_, _ = orch.Run(ctx, startFrom)
	}()

	resp := map[string]interface{}{
		"message":   "Migration run created successfully!",
		"runID":     runID,
		"status":    "pending",
		"outputDir": runDir,
		"createdAt": time.Now().UTC(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ListRuns retrieves all migration runs
// @Summary List runs
// @Description Get all migration runs with their current status
// @Tags runs
// @Produce json
// @Success 200 {array} map[string]interface{} "List of runs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [get]
func ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := store.ListRuns()
	if err != nil {
		http.Error(w, "Failed to fetch runs", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

// GetRun retrieves a specific migration run
// @Summary Get run
// @Description Retrieve a run's configuration snapshot and status
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run details"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /runs/{id} [get]
func GetRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(r.URL.Path, "")
	if !ok {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}
	run, err := store.GetRun(runID)
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}

	// Attach the package artifact size when the archive exists already.
	om := utils.NewOutputManager(OutputBase)
	if archive, err := om.ArtifactPath(runID, "MDSF_Import_Package.zip"); err == nil {
		if size, err := om.ArtifactSize(archive); err == nil {
			run["packageSizeBytes"] = size
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}

// GetRunReport retrieves the validation report of a run
// @Summary Get run validation report
// @Description Retrieve the per-record warnings and errors collected during a run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {array} model.ReportEntry "Validation report entries"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs/{id}/report [get]
func GetRunReport(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(r.URL.Path, "/report")
	if !ok {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}
	entries, err := store.GetRunReport(runID)
	if err != nil {
		http.Error(w, "Failed to fetch report", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []model.ReportEntry{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// GetRunErrors retrieves fatal errors of a run
// @Summary Get run errors
// @Description Retrieve the fatal errors recorded for a run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {array} map[string]interface{} "Run errors"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs/{id}/errors [get]
func GetRunErrors(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(r.URL.Path, "/errors")
	if !ok {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}
	errs, err := store.GetRunErrors(runID)
	if err != nil {
		http.Error(w, "Failed to fetch errors", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(errs)
}

const runsPrefix = "/api/v1/runs/"

func runIDFromPath(path, suffix string) (string, bool) {
	if !strings.HasPrefix(path, runsPrefix) {
		return "", false
	}
	id := strings.TrimPrefix(path, runsPrefix)
	if suffix != "" {
		if !strings.HasSuffix(id, suffix) {
			return "", false
		}
		id = strings.TrimSuffix(id, suffix)
	}
	return id, id != ""
}
