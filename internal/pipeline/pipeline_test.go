package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runFixture lays out an export CSV, asset roots and a configuration that
// exercises every enabled stage end to end.
func runFixture(t *testing.T) *model.PipelineConfig {
	t.Helper()
	root := t.TempDir()
	assetsDir := filepath.Join(root, "static_assets")
	thumbsDir := filepath.Join(root, "static_assets_thumbnails")
	outputDir := filepath.Join(root, "output")

	stageFile(t, filepath.Join(assetsDir, "Product_101", "card.pdf"), "pdf 101")
	stageFile(t, filepath.Join(assetsDir, "Product_102", "envelope.pdf"), "pdf 102")

	export := model.NewRecordSet([]string{
		model.ColProductID, model.ColStoreID, model.ColStoreName,
		"Name", "DisplayName", "Type", "SKU/ProductId", "StoreFront/Categories",
		"BriefDescription", "LongDescription",
	})
	export.Append(model.Record{
		model.ColProductID: "101", model.ColStoreID: "70", model.ColStoreName: "AFC Urgent Care",
		"Name": "AFC Business Card", "DisplayName": "Business Card", "Type": "Static Document",
		"SKU/ProductId": "SKU-101", "StoreFront/Categories": "Cards/Business",
		"BriefDescription": `3.5" x 2" 2 sided`,
	})
	export.Append(model.Record{
		model.ColProductID: "102", model.ColStoreID: "70", model.ColStoreName: "AFC Urgent Care",
		"Name": "#10 Envelope", "DisplayName": "Envelope", "Type": "Static Document",
		"SKU/ProductId": "SKU-102", "StoreFront/Categories": "Stationery/Envelopes",
	})
	export.Append(model.Record{
		model.ColProductID: "201", model.ColStoreID: "12", model.ColStoreName: "Other Store",
		"Name": "Foreign Poster", "DisplayName": "Poster", "Type": "Static Document",
	})
	exportPath := filepath.Join(root, "uStore_Complete_Export.csv")
	require.NoError(t, WriteRecordSet(exportPath, export))

	storeID := 70
	return &model.PipelineConfig{
		StoreID:          &storeID,
		StoreName:        "AFC Urgent Care",
		UseAutoThumbnail: true,
		TestLimit:        1,
		SEOTitleMax:      70,
		SEOKeywordsMax:   500,
		Paths: model.Paths{
			AssetsDir:     assetsDir,
			ThumbnailsDir: thumbsDir,
			OutputDir:     outputDir,
		},
		Steps: model.Steps{
			Filter:      model.StepConfig{Enabled: true, Input: exportPath, Output: "Store_Export.csv"},
			SEO:         model.StepConfig{Enabled: true, Output: "with_seo.csv"},
			AssetLink:   model.StepConfig{Enabled: true, Output: "with_assets.csv"},
			TicketMerge: model.StepConfig{Enabled: false, Output: "with_tickets.csv"},
			Mapping:     model.StepConfig{Enabled: true, Output: "mdsf_import.csv"},
			Packaging:   model.StepConfig{Enabled: true, Output: "MDSF_Import_Package.zip"},
		},
	}
}

func TestRunEndToEnd(t *testing.T) {
	cfg := runFixture(t)
	orch := New("test-run", cfg)

	result, err := orch.Run(context.Background(), 0)
	require.NoError(t, err)
	assert.True(t, result.Succeeded)
	assert.Equal(t, 2, result.RecordsProcessed)
	assert.Zero(t, result.DroppedRecords)

	out := cfg.Paths.OutputDir
	for _, artifact := range []string{"Store_Export.csv", "with_seo.csv", "with_assets.csv", "mdsf_import.csv", "MDSF_Import_Package.zip"} {
		assert.FileExists(t, filepath.Join(out, artifact))
	}
	assert.FileExists(t, filepath.Join(out, fmt.Sprintf("migration_report_%s.log", orch.RunID)))

	require.NotNil(t, result.Package)
	assert.Equal(t, 2, result.Package.FilesCopied)
	assert.Empty(t, result.Package.MissingFiles)

	// The final import CSV carries the destination layout.
	final, err := ReadRecordSet(filepath.Join(out, "mdsf_import.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Business Card", final.Records[0]["DisplayName"])
	assert.Equal(t, "card.pdf", final.Records[0]["ContentFile"])
	assert.NotEmpty(t, final.Records[0]["SEOTitle"])
	assert.Equal(t, AutoThumbnail, final.Records[0]["Icon"])
}

func TestRunTestModeTruncatesOnce(t *testing.T) {
	cfg := runFixture(t)
	cfg.TestMode = true
	cfg.TestLimit = 1

	result, err := New("truncate-run", cfg).Run(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.RecordsProcessed)

	// The first checkpoint already holds the truncated set.
	rs, err := ReadRecordSet(filepath.Join(cfg.Paths.OutputDir, "Store_Export.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, rs.Len())
	assert.Equal(t, "101", rs.Records[0].ID())
}

func TestRunResumeMissingCheckpoint(t *testing.T) {
	cfg := runFixture(t)

	result, err := New("resume-fail", cfg).Run(context.Background(), StageSEO)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingResumeInput))
	assert.False(t, result.Succeeded)
	assert.Equal(t, StageSEO, result.ResumeStage)
}

func TestRunResumeFromCheckpoint(t *testing.T) {
	cfg := runFixture(t)

	_, err := New("first-run", cfg).Run(context.Background(), 0)
	require.NoError(t, err)

	// A fresh orchestrator picks up from the asset-link checkpoint.
	result, err := New("resumed-run", cfg).Run(context.Background(), StageMapping)
	require.NoError(t, err)
	assert.True(t, result.Succeeded)
	assert.Equal(t, 2, result.RecordsProcessed)
	require.NotNil(t, result.Package)
}

func TestRunHonorsCancellation(t *testing.T) {
	cfg := runFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New("cancelled-run", cfg).Run(ctx, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, result.Succeeded)
	assert.Equal(t, StageFilter, result.ResumeStage)
}

func TestRunMissingInputFile(t *testing.T) {
	cfg := runFixture(t)
	cfg.Steps.Filter.Input = filepath.Join(t.TempDir(), "absent.csv")

	result, err := New("missing-input", cfg).Run(context.Background(), 0)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMissingResumeInput))
	assert.Equal(t, StageFilter, result.ResumeStage)
}
