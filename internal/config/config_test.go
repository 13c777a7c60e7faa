package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMaterializesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline_config.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	require.NotNil(t, cfg.StoreID)
	assert.Equal(t, 70, *cfg.StoreID)
	assert.True(t, cfg.UseAutoThumbnail)
	assert.Equal(t, 70, cfg.SEOTitleMax)
	assert.Equal(t, "MDSF_Import_Package.zip", cfg.Steps.Packaging.Output)

	// Loading the materialized file round-trips cleanly.
	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline_config.json")
	payload := `{
		"store_id": 12,
		"test_mode": true,
		"test_product_limit": 5,
		"steps": {
			"seo_generation": {"enabled": false, "output": "with_seo.csv"}
		},
		"not_a_real_field": "ignored"
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.StoreID)
	assert.Equal(t, 12, *cfg.StoreID)
	assert.True(t, cfg.TestMode)
	assert.Equal(t, 5, cfg.TestLimit)
	assert.False(t, cfg.Steps.SEO.Enabled)

	// Everything the file does not mention keeps its default.
	assert.Equal(t, "AFC Urgent Care", cfg.StoreName)
	assert.Equal(t, 500, cfg.SEOKeywordsMax)
	assert.True(t, cfg.Steps.Filter.Enabled)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline_config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, Validate(cfg))

	cfg = Default()
	cfg.TestMode = true
	cfg.TestLimit = 0
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.SEOTitleMax = 0
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Paths.OutputDir = ""
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Steps.TicketMerge.Enabled = true
	assert.Error(t, Validate(cfg))

	cfg.PricingCSV = "pricing.csv"
	assert.NoError(t, Validate(cfg))
}
