package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/assets"
	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/model"
	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/store"
)

// ErrMissingResumeInput is returned when a run is resumed from a stage
// whose input checkpoint does not exist on disk.
var ErrMissingResumeInput = errors.New("resume input checkpoint not found")

// Canonical stage indices. Resume targets are expressed in these.
const (
	StageFilter = iota
	StageSEO
	StageAssetLink
	StageTicketMerge
	StageMapping
	StagePackaging
)

type stageDef struct {
	index int
	name  string
	step  model.StepConfig
}

// Orchestrator sequences the enabled migration stages, checkpointing each
// stage's output so a failed run can resume from any stage boundary.
type Orchestrator struct {
	RunID    string
	Config   *model.PipelineConfig
	Report   *model.ValidationReport
	Classify Classifier // nil = DefaultClassifier

	index     *assets.Index // built lazily, shared read-only
	truncated bool
}

// New creates an orchestrator for one run of the given configuration.
func New(runID string, cfg *model.PipelineConfig) *Orchestrator {
	return &Orchestrator{
		RunID:  runID,
		Config: cfg,
		Report: model.NewValidationReport(),
	}
}

func (o *Orchestrator) stages() []stageDef {
	s := o.Config.Steps
	return []stageDef{
		{StageFilter, "filter", s.Filter},
		{StageSEO, "seo_generation", s.SEO},
		{StageAssetLink, "asset_linking", s.AssetLink},
		{StageTicketMerge, "ticket_merge", s.TicketMerge},
		{StageMapping, "mdsf_mapping", s.Mapping},
		{StagePackaging, "packaging", s.Packaging},
	}
}

// inputPath resolves a stage's declared input checkpoint: its own input
// file when configured, otherwise the output of the nearest enabled stage
// before it.
func (o *Orchestrator) inputPath(target stageDef) string {
	if target.step.Input != "" {
		return target.step.Input
	}
	var prev string
	for _, st := range o.stages() {
		if st.index >= target.index {
			break
		}
		if st.step.Enabled {
			prev = filepath.Join(o.Config.Paths.OutputDir, st.step.Output)
		}
	}
	return prev
}

// Run executes the enabled stages in canonical order, starting from
// startFrom (0 runs everything). Fatal errors halt the run immediately;
// the partial report is flushed and the returned result names the stage
// index to pass back in for resumption. A summary is printed either way.
func (o *Orchestrator) Run(ctx context.Context, startFrom int) (*model.RunResult, error) {
	start := time.Now()
	fmt.Printf("🚀 Starting migration run %s (start stage %d)\n", o.RunID, startFrom)
	store.UpdateRunStatus(o.RunID, "running")

	result := &model.RunResult{Report: o.Report}
	outputDir := o.Config.Paths.OutputDir
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return o.fail(result, StageFilter, fmt.Errorf("failed to create output directory: %w", err))
	}

	var current *model.RecordSet
	for _, st := range o.stages() {
		if st.index < startFrom || !st.step.Enabled {
			if st.step.Enabled {
				fmt.Printf("⏭️ Stage %d (%s) skipped for resume\n", st.index, st.name)
			}
			continue
		}
		// Cancellation is honored only between stage boundaries.
		if err := ctx.Err(); err != nil {
			return o.fail(result, st.index, err)
		}

		if current == nil {
			path := o.inputPath(st)
			if path == "" {
				return o.fail(result, st.index, fmt.Errorf("stage %s has no input artifact configured", st.name))
			}
			if _, err := os.Stat(path); err != nil {
				if startFrom > 0 {
					return o.fail(result, st.index, fmt.Errorf("%w: stage %s expects %s", ErrMissingResumeInput, st.name, path))
				}
				return o.fail(result, st.index, fmt.Errorf("input file not found: %s", path))
			}
			rs, err := ReadRecordSet(path)
			if err != nil {
				return o.fail(result, st.index, err)
			}
			current = rs
			// Filter disabled (or resuming past it): truncate right away.
			if st.index > StageFilter {
				o.applyTestLimit(current)
			}
		}

		fmt.Printf("▶️ Stage %d: %s\n", st.index, st.name)
		store.SaveStageProgress(o.RunID, st.name, "started")

		out, err := o.runStage(st, current, result)
		if err != nil {
			return o.fail(result, st.index, err)
		}
		o.Report.Merge(out.diags)
		store.SaveStageProgress(o.RunID, st.name, "completed")

		if out.records != nil {
			current = out.records
			result.RecordsProcessed = current.Len()
			if st.index == StageFilter {
				o.applyTestLimit(current)
			}
			if err := WriteRecordSet(filepath.Join(outputDir, st.step.Output), current); err != nil {
				return o.fail(result, st.index, err)
			}
		}
	}

	result.Succeeded = true
	o.flushReport(result)
	store.UpdateRunStatus(o.RunID, "completed")
	fmt.Printf("🏁 Migration run %s completed in %v\n", o.RunID, time.Since(start))
	o.printSummary(result)
	return result, nil
}

type stageOutput struct {
	records *model.RecordSet // nil for packaging
	diags   []model.ReportEntry
}

func (o *Orchestrator) runStage(st stageDef, current *model.RecordSet, result *model.RunResult) (stageOutput, error) {
	switch st.index {
	case StageFilter:
		rs, diags, err := FilterByStore(current, o.Config.StoreID)
		return stageOutput{rs, diags}, err
	case StageSEO:
		rs, diags := EnrichRecords(current, o.Config, o.Classify, 2)
		return stageOutput{rs, diags}, nil
	case StageAssetLink:
		idx, err := o.assetIndex()
		if err != nil {
			return stageOutput{}, err
		}
		rs, diags := LinkAssets(current, idx, o.Config)
		return stageOutput{rs, diags}, nil
	case StageTicketMerge:
		rs, diags, err := MergeTicketTemplates(current, o.Config.PricingCSV)
		return stageOutput{rs, diags}, err
	case StageMapping:
		rs, dropped, diags := MapFields(current, MDSFSchema())
		result.DroppedRecords = dropped
		return stageOutput{rs, diags}, nil
	case StagePackaging:
		idx, err := o.assetIndex()
		if err != nil {
			return stageOutput{}, err
		}
		pkg, diags, err := Package(current, idx, o.Config.Paths.OutputDir, st.step.Output)
		result.Package = pkg
		return stageOutput{nil, diags}, err
	}
	return stageOutput{}, fmt.Errorf("unknown stage index %d", st.index)
}

// assetIndex builds the asset index on first use and shares it afterwards.
// AutoThumbnail runs skip the thumbnail root scan entirely.
func (o *Orchestrator) assetIndex() (*assets.Index, error) {
	if o.index == nil {
		fmt.Printf("🗂️ Building asset index (%s, %s)...\n", o.Config.Paths.AssetsDir, o.Config.Paths.ThumbnailsDir)
		idx, err := assets.Build(o.Config.Paths.AssetsDir, o.Config.Paths.ThumbnailsDir, o.Config.UseAutoThumbnail)
		if err != nil {
			return nil, err
		}
		o.index = idx
	}
	return o.index, nil
}

// applyTestLimit truncates the working set once per run when test mode is
// on. Later stages see the already truncated set and never re-truncate.
func (o *Orchestrator) applyTestLimit(rs *model.RecordSet) {
	if !o.Config.TestMode || o.truncated {
		return
	}
	before := rs.Len()
	rs.Truncate(o.Config.TestLimit)
	o.truncated = true
	fmt.Printf("🧪 TEST MODE: truncated %d products to %d\n", before, rs.Len())
}

func (o *Orchestrator) fail(result *model.RunResult, stageIndex int, err error) (*model.RunResult, error) {
	result.Succeeded = false
	result.ResumeStage = stageIndex
	o.flushReport(result)
	store.UpdateRunStatus(o.RunID, "failed")
	store.SaveRunError(o.RunID, err)
	fmt.Printf("❌ Migration failed at stage %d: %v\n", stageIndex, err)
	fmt.Printf("   To resume, start from stage %d\n", stageIndex)
	o.printSummary(result)
	return result, err
}

// flushReport writes the validation report artifact and persists the
// entries for the run, even after a fatal halt.
func (o *Orchestrator) flushReport(result *model.RunResult) {
	logPath := filepath.Join(o.Config.Paths.OutputDir, fmt.Sprintf("migration_report_%s.log", o.RunID))
	if err := o.Report.WriteLog(logPath); err != nil {
		fmt.Printf("⚠️ Failed to write report log: %v\n", err)
	}
	store.SaveReport(o.RunID, o.Report.Entries)
}

func (o *Orchestrator) printSummary(result *model.RunResult) {
	warnings, errs := o.Report.Counts()
	missing := 0
	if result.Package != nil {
		missing = len(result.Package.MissingFiles)
	}
	fmt.Println("================================================================================")
	fmt.Printf("Summary: %d records processed, %d dropped, %d warnings, %d errors, %d missing assets\n",
		result.RecordsProcessed, result.DroppedRecords, warnings, errs, missing)
	fmt.Println("================================================================================")
}
