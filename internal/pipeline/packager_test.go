package pipeline

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/assets"
	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// packagingFixture stages two products that both reference a file named
// card.pdf with different content, plus one unique file each.
func packagingFixture(t *testing.T) *assets.Index {
	t.Helper()
	assetsDir := filepath.Join(t.TempDir(), "static_assets")

	stageFile(t, filepath.Join(assetsDir, "Product_101", "card.pdf"), "content of 101")
	stageFile(t, filepath.Join(assetsDir, "Product_101", "icon101.pdf"), "icon 101")
	stageFile(t, filepath.Join(assetsDir, "Product_202", "card.pdf"), "content of 202")

	idx, err := assets.Build(assetsDir, filepath.Join(t.TempDir(), "thumbs"), true)
	require.NoError(t, err)
	return idx
}

func packagingInput() *model.RecordSet {
	rs := model.NewRecordSet([]string{
		"Name", "ContentFile", "Icon", "DetailImage",
		model.ColProductID, model.ColStoreID, model.ColStoreName,
	})
	rs.Append(model.Record{
		"Name": "Card A", "ContentFile": "card.pdf", "Icon": AutoThumbnail, "DetailImage": AutoThumbnail,
		model.ColProductID: "101", model.ColStoreID: "70", model.ColStoreName: "AFC Urgent Care",
	})
	rs.Append(model.Record{
		"Name": "Card B", "ContentFile": "card.pdf", "Icon": AutoThumbnail, "DetailImage": AutoThumbnail,
		model.ColProductID: "202", model.ColStoreID: "70", model.ColStoreName: "AFC Urgent Care",
	})
	return rs
}

func TestPackageLastWriterWinsOnDuplicateName(t *testing.T) {
	idx := packagingFixture(t)
	outputDir := t.TempDir()

	result, diags, err := Package(packagingInput(), idx, outputDir, "MDSF_Import_Package.zip")
	require.NoError(t, err)
	assert.Empty(t, result.MissingFiles)
	assert.Equal(t, 1, result.FilesCopied)

	// Collision surfaced, later record's file wins.
	var dup []model.ReportEntry
	for _, d := range diags {
		if strings.Contains(d.Message, "DuplicateAssetName") {
			dup = append(dup, d)
		}
	}
	require.Len(t, dup, 1)
	assert.Equal(t, "202", dup[0].RecordID)

	staged, err := os.ReadFile(filepath.Join(outputDir, "MDSF_Import_Package", "card.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "content of 202", string(staged))
}

func TestPackageArchiveIsFlatAndHelperFree(t *testing.T) {
	idx := packagingFixture(t)
	outputDir := t.TempDir()

	rs := model.NewRecordSet([]string{
		"Name", "ContentFile", model.ColProductID, model.ColStoreID, model.ColStoreName,
	})
	rs.Append(model.Record{
		"Name": "Card A", "ContentFile": "icon101.pdf",
		model.ColProductID: "101", model.ColStoreID: "70", model.ColStoreName: "AFC Urgent Care",
	})

	result, _, err := Package(rs, idx, outputDir, "pkg.zip")
	require.NoError(t, err)
	require.FileExists(t, result.ArchivePath)

	zr, err := zip.OpenReader(result.ArchivePath)
	require.NoError(t, err)
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		assert.NotContains(t, f.Name, "/", "archive must be flat")
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"products.csv", "icon101.pdf"}, names)

	// The CSV inside the package carries no uStore helper columns.
	csvPath := filepath.Join(outputDir, "pkg", "products.csv")
	got, err := ReadRecordSet(csvPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "ContentFile"}, got.Columns)
	assert.Equal(t, "Card A", got.Records[0]["Name"])
}

func TestPackageCollectsMissingFiles(t *testing.T) {
	idx := packagingFixture(t)
	outputDir := t.TempDir()

	rs := packagingInput()
	rs.Records[0]["ContentFile"] = "ghost.pdf"

	result, diags, err := Package(rs, idx, outputDir, "pkg.zip")
	require.NoError(t, err)
	require.Len(t, result.MissingFiles, 1)
	assert.Equal(t, "ghost.pdf", result.MissingFiles[0].Filename)
	assert.Equal(t, "101", result.MissingFiles[0].RecordID)

	found := false
	for _, d := range diags {
		if strings.Contains(d.Message, "ghost.pdf") {
			found = true
			assert.Equal(t, model.SeverityWarning, d.Severity)
		}
	}
	assert.True(t, found)
}

func TestPackageSkipsAutoThumbnailSentinel(t *testing.T) {
	idx := packagingFixture(t)
	outputDir := t.TempDir()

	result, _, err := Package(packagingInput(), idx, outputDir, "pkg.zip")
	require.NoError(t, err)

	staging := filepath.Join(outputDir, "pkg")
	_, err = os.Stat(filepath.Join(staging, AutoThumbnail))
	assert.True(t, os.IsNotExist(err))
	for _, mf := range result.MissingFiles {
		assert.NotEqual(t, AutoThumbnail, mf.Filename)
	}
}
