package model

// StepConfig controls a single pipeline step.
type StepConfig struct {
	Enabled bool   `json:"enabled"`
	Input   string `json:"input,omitempty"`  // intermediate input file (first step / resume)
	Output  string `json:"output"`           // intermediate output file
}

// Paths names the filesystem roots consumed by the pipeline.
type Paths struct {
	AssetsDir     string `json:"assets_dir"`
	ThumbnailsDir string `json:"thumbnails_dir"`
	OutputDir     string `json:"output_dir"`
}

// Steps lists every pipeline step in canonical execution order.
type Steps struct {
	Filter      StepConfig `json:"filter"`
	SEO         StepConfig `json:"seo_generation"`
	AssetLink   StepConfig `json:"asset_linking"`
	TicketMerge StepConfig `json:"ticket_merge"`
	Mapping     StepConfig `json:"mdsf_mapping"`
	Packaging   StepConfig `json:"packaging"`
}

// PipelineConfig is the declarative configuration for a migration run.
// It is loaded once at orchestrator start and never mutated during a run.
type PipelineConfig struct {
	StoreID          *int   `json:"store_id"`           // nil = keep all stores
	StoreName        string `json:"store_name"`
	UseAutoThumbnail bool   `json:"use_auto_thumbnail"` // emit sentinel instead of thumbnail lookup
	TestMode         bool   `json:"test_mode"`
	TestLimit        int    `json:"test_product_limit"`
	SEOTitleMax      int    `json:"seo_title_max"`
	SEOKeywordsMax   int    `json:"seo_keywords_max"`
	PricingCSV       string `json:"pricing_csv,omitempty"` // ticket_merge collaborator
	Paths            Paths  `json:"paths"`
	Steps            Steps  `json:"steps"`
}
