package pipeline

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/assets"
	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/model"
	"github.com/Osbaldo-Arellano/MDSF-Migration/pkg/utils"
)

// assetField ties a record column to the asset kind it references.
var assetFields = []struct {
	column string
	kind   string
}{
	{ColContentFile, "content"},
	{ColIcon, "icon"},
	{ColDetailImage, "detail"},
}

// Package assembles the final import archive: every asset referenced by the
// record set is copied into a flat staging directory, the helper columns
// are stripped, the cleaned CSV is written alongside the assets, and the
// whole staging directory is zipped at a single flat level.
//
// Filename collisions across records are surfaced as DuplicateAssetName
// warnings; the later record's file overwrites (last writer wins). Missing
// source files never abort packaging; they are collected into the result.
func Package(rs *model.RecordSet, idx *assets.Index, outputDir, archiveName string) (*model.PackageResult, []model.ReportEntry, error) {
	staging := filepath.Join(outputDir, strings.TrimSuffix(archiveName, ".zip"))
	if err := os.RemoveAll(staging); err != nil {
		return nil, nil, fmt.Errorf("failed to clear staging directory: %w", err)
	}
	if err := os.MkdirAll(staging, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create staging directory: %w", err)
	}

	var diags []model.ReportEntry
	result := &model.PackageResult{}
	copied := make(map[string]string) // filename -> record ID that staged it
	type reference struct {
		recordID, filename, kind string
	}
	var refs []reference

	fmt.Printf("📦 Packaging %d product(s)...\n", rs.Len())
	for _, rec := range rs.Records {
		id := rec.ID()
		for _, af := range assetFields {
			value := strings.TrimSpace(rec[af.column])
			if value == "" || value == AutoThumbnail {
				continue
			}
			for _, filename := range strings.Split(value, ",") {
				filename = strings.TrimSpace(filename)
				if filename == "" {
					continue
				}
				refs = append(refs, reference{id, filename, af.kind})

				if stagedBy, ok := copied[filename]; ok {
					if stagedBy == id {
						continue // same record references the file twice
					}
					diags = append(diags, model.ReportEntry{
						RecordID: id,
						Stage:    "packaging",
						Severity: model.SeverityWarning,
						Message:  fmt.Sprintf("DuplicateAssetName: %s already staged by product %s, overwriting", filename, stagedBy),
					})
				}

				entry, ok := idx.Lookup(id, filename)
				if !ok {
					result.MissingFiles = append(result.MissingFiles, model.MissingFile{
						RecordID: id, Filename: filename, Kind: af.kind,
					})
					continue
				}
				if err := utils.CopyFile(entry.Path, filepath.Join(staging, filename)); err != nil {
					return nil, diags, fmt.Errorf("failed to stage %s: %w", filename, err)
				}
				copied[filename] = id
			}
		}
	}
	result.FilesCopied = len(copied)

	// Helper columns stay out of the CSV the destination system reads.
	clean := model.NewRecordSet(stripHelperColumns(rs.Columns))
	clean.Records = rs.Records
	csvPath := filepath.Join(staging, "products.csv")
	if err := WriteRecordSet(csvPath, clean); err != nil {
		return nil, diags, err
	}

	archivePath := filepath.Join(outputDir, archiveName)
	if err := writeArchive(archivePath, staging); err != nil {
		return nil, diags, err
	}
	result.ArchivePath = archivePath

	// Post-copy verification: every referenced filename must exist in the
	// staging directory.
	reported := make(map[string]bool)
	for _, mf := range result.MissingFiles {
		reported[mf.Filename] = true
	}
	for _, ref := range refs {
		if reported[ref.filename] {
			continue
		}
		if _, err := os.Stat(filepath.Join(staging, ref.filename)); err != nil {
			reported[ref.filename] = true
			result.MissingFiles = append(result.MissingFiles, model.MissingFile{
				RecordID: ref.recordID, Filename: ref.filename, Kind: ref.kind,
			})
		}
	}
	for _, mf := range result.MissingFiles {
		diags = append(diags, model.ReportEntry{
			RecordID: mf.RecordID,
			Stage:    "packaging",
			Severity: model.SeverityWarning,
			Message:  fmt.Sprintf("missing %s file: %s", mf.Kind, mf.Filename),
		})
	}

	fmt.Printf("📦 Package created: %s (%d assets, %d missing)\n", archivePath, result.FilesCopied, len(result.MissingFiles))
	return result, diags, nil
}

func stripHelperColumns(columns []string) []string {
	helpers := make(map[string]bool, len(HelperColumns))
	for _, h := range HelperColumns {
		helpers[h] = true
	}
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if !helpers[c] {
			out = append(out, c)
		}
	}
	return out
}

// writeArchive zips every file in the staging directory at archive root
// level, no subdirectories.
func writeArchive(archivePath, staging string) error {
	f, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	entries, err := os.ReadDir(staging)
	if err != nil {
		return fmt.Errorf("failed to list staging directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		src, err := os.Open(filepath.Join(staging, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to open staged file: %w", err)
		}
		w, err := zw.Create(entry.Name())
		if err != nil {
			src.Close()
			return fmt.Errorf("failed to add %s to archive: %w", entry.Name(), err)
		}
		if _, err := io.Copy(w, src); err != nil {
			src.Close()
			return fmt.Errorf("failed to write %s to archive: %w", entry.Name(), err)
		}
		src.Close()
	}
	return zw.Close()
}
