package pipeline

import (
	"fmt"

	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/assets"
	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/model"
)

// Columns populated by the asset linking stage.
const (
	ColContentFile = "ContentFile"
	ColIcon        = "Icon"
	ColDetailImage = "DetailImage"
)

// AutoThumbnail is the sentinel MDSF understands as "generate the thumbnail
// yourself". When configured, it bypasses the thumbnail index entirely.
const AutoThumbnail = "AutoThumbnail"

// LinkAssets cross-references every record against the asset index and
// fills the document and thumbnail reference columns. The stage only reads
// paths already catalogued by the index; nothing on disk is touched.
//
// Missing assets are warnings, never fatal: a missing document is only
// reported when the record's type actually requires one, and missing
// thumbnails are reported unless AutoThumbnail is in use.
func LinkAssets(rs *model.RecordSet, idx *assets.Index, cfg *model.PipelineConfig) (*model.RecordSet, []model.ReportEntry) {
	out := model.NewRecordSet(rs.Columns)
	out.EnsureColumn(ColContentFile)
	out.EnsureColumn(ColIcon)
	out.EnsureColumn(ColDetailImage)

	var diags []model.ReportEntry
	linkedDocs, linkedThumbs := 0, 0

	for _, src := range rs.Records {
		rec := src.Clone()
		id := rec.ID()

		if doc, ok := idx.Document(id); ok {
			rec[ColContentFile] = doc.Name()
			linkedDocs++
		} else {
			rec[ColContentFile] = ""
			if requiresDocument(rec) {
				diags = append(diags, model.ReportEntry{
					RecordID: id,
					Stage:    "asset_linking",
					Severity: model.SeverityWarning,
					Message:  fmt.Sprintf("no content PDF found for %q", rec["Name"]),
				})
			}
		}

		if cfg.UseAutoThumbnail {
			rec[ColIcon] = AutoThumbnail
			rec[ColDetailImage] = AutoThumbnail
		} else {
			thumbs := idx.Thumbnails(id, 2)
			rec[ColIcon], rec[ColDetailImage] = "", ""
			if len(thumbs) > 0 {
				rec[ColIcon] = thumbs[0].Name()
				linkedThumbs++
			}
			if len(thumbs) > 1 {
				rec[ColDetailImage] = thumbs[1].Name()
			}
			if len(thumbs) == 0 {
				diags = append(diags, model.ReportEntry{
					RecordID: id,
					Stage:    "asset_linking",
					Severity: model.SeverityWarning,
					Message:  fmt.Sprintf("no thumbnails found for %q", rec["Name"]),
				})
			}
		}

		out.Append(rec)
	}

	if cfg.UseAutoThumbnail {
		fmt.Printf("🔗 Link: %d documents linked, thumbnails set to %s\n", linkedDocs, AutoThumbnail)
	} else {
		fmt.Printf("🔗 Link: %d documents, %d products with thumbnails\n", linkedDocs, linkedThumbs)
	}
	return out, diags
}

// requiresDocument reports whether a record's type classification needs a
// content file attached. Static MDSF documents do; merchandise and kit
// products do not.
func requiresDocument(rec model.Record) bool {
	switch rec["Type"] {
	case "Document", "Static Document":
		return true
	}
	return false
}
