package model

// MissingFile identifies an asset referenced by a record that could not be
// staged during packaging.
type MissingFile struct {
	RecordID string `json:"record_id"`
	Filename string `json:"filename"`
	Kind     string `json:"kind"` // "content", "icon", "detail"
}

// PackageResult is the outcome of the packaging stage.
type PackageResult struct {
	ArchivePath  string        `json:"archive_path"`
	FilesCopied  int           `json:"files_copied"`
	MissingFiles []MissingFile `json:"missing_files"`
}

// RunResult summarizes a full pipeline run. On failure ResumeStage holds
// the canonical index of the stage to pass back in for resumption.
type RunResult struct {
	Succeeded        bool              `json:"succeeded"`
	RecordsProcessed int               `json:"records_processed"`
	DroppedRecords   int               `json:"dropped_records"`
	ResumeStage      int               `json:"resume_stage"`
	Package          *PackageResult    `json:"package,omitempty"`
	Report           *ValidationReport `json:"report"`
}
