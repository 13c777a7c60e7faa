package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/model"
)

// Default returns the configuration used when no config file exists yet.
// File names mirror the historical migration scripts so existing runs keep
// their intermediate artifacts.
func Default() *model.PipelineConfig {
	storeID := 70
	return &model.PipelineConfig{
		StoreID:          &storeID,
		StoreName:        "AFC Urgent Care",
		UseAutoThumbnail: true,
		TestMode:         false,
		TestLimit:        1,
		SEOTitleMax:      70,
		SEOKeywordsMax:   500,
		Paths: model.Paths{
			AssetsDir:     "static_assets",
			ThumbnailsDir: "static_assets_thumbnails",
			OutputDir:     "output",
		},
		Steps: model.Steps{
			Filter:      model.StepConfig{Enabled: true, Input: "uStore_Complete_Export.csv", Output: "Store_Export.csv"},
			SEO:         model.StepConfig{Enabled: true, Output: "with_seo.csv"},
			AssetLink:   model.StepConfig{Enabled: true, Output: "with_assets.csv"},
			TicketMerge: model.StepConfig{Enabled: false, Output: "with_tickets.csv"},
			Mapping:     model.StepConfig{Enabled: true, Output: "mdsf_import.csv"},
			Packaging:   model.StepConfig{Enabled: true, Output: "MDSF_Import_Package.zip"},
		},
	}
}

// Load reads the pipeline configuration from path. Loaded values overlay
// the defaults, so missing optional fields keep their documented defaults
// and unknown fields are ignored. When the file does not exist a default
// config is materialized at path and returned.
func Load(path string) (*model.PipelineConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		fmt.Printf("⚙️ Config file not found: %s, creating default config...\n", path)
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("malformed config %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as indented JSON.
func Save(path string, cfg *model.PipelineConfig) error {
	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate rejects configurations the orchestrator cannot run with.
func Validate(cfg *model.PipelineConfig) error {
	if cfg.TestMode && cfg.TestLimit < 1 {
		return fmt.Errorf("test_product_limit must be >= 1, got %d", cfg.TestLimit)
	}
	if cfg.SEOTitleMax < 1 || cfg.SEOKeywordsMax < 1 {
		return fmt.Errorf("seo length limits must be positive")
	}
	if cfg.Paths.OutputDir == "" {
		return fmt.Errorf("paths.output_dir is required")
	}
	if cfg.Steps.TicketMerge.Enabled && cfg.PricingCSV == "" {
		return fmt.Errorf("ticket_merge step enabled but pricing_csv not set")
	}
	return nil
}
