package pipeline

import (
	"fmt"

	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/model"
)

// MapFields reshapes records into the destination template: exactly the
// target schema's columns in its order, plus the uStore helper columns the
// packaging stage still needs. Missing source fields take the schema's
// declared defaults.
//
// A record left with an empty required field is dropped from the output and
// counted; this is the only point in the pipeline where a per-record
// problem removes the record. The MDSF "Document" rule (TicketTemplate and
// ContentFile both non-empty) is checked separately and reported as an
// error without dropping, so a human can fix those by hand.
func MapFields(rs *model.RecordSet, schema []FieldSpec) (*model.RecordSet, int, []model.ReportEntry) {
	columns := make([]string, 0, len(schema)+len(HelperColumns))
	for _, f := range schema {
		columns = append(columns, f.Name)
	}
	columns = append(columns, HelperColumns...)
	out := model.NewRecordSet(columns)

	// Invert the source->target mapping once.
	sourceFor := make(map[string]string, len(fieldMapping))
	for src, dst := range fieldMapping {
		sourceFor[dst] = src
	}

	var diags []model.ReportEntry
	dropped := 0

	for _, src := range rs.Records {
		rec := make(model.Record, len(columns))
		for _, f := range schema {
			val := ""
			if srcCol, ok := sourceFor[f.Name]; ok {
				if v, present := src.Get(srcCol); present {
					val = v
				}
			}
			if val == "" {
				val = f.Default
			}
			rec[f.Name] = val
		}
		for _, h := range HelperColumns {
			rec[h] = src[h]
		}

		if unmet := firstUnmetRequired(rec, schema); unmet != "" {
			dropped++
			diags = append(diags, model.ReportEntry{
				RecordID: src.ID(),
				Stage:    "mdsf_mapping",
				Severity: model.SeverityError,
				Message:  fmt.Sprintf("dropped: required field %s is empty", unmet),
			})
			continue
		}

		if rec["Type"] == "Document" {
			if rec["TicketTemplate"] == "" {
				diags = append(diags, model.ReportEntry{
					RecordID: src.ID(),
					Stage:    "mdsf_mapping",
					Severity: model.SeverityError,
					Message:  fmt.Sprintf("Document product %q missing TicketTemplate, left for review", rec["Name"]),
				})
			}
			if rec["ContentFile"] == "" {
				diags = append(diags, model.ReportEntry{
					RecordID: src.ID(),
					Stage:    "mdsf_mapping",
					Severity: model.SeverityError,
					Message:  fmt.Sprintf("Document product %q missing ContentFile, left for review", rec["Name"]),
				})
			}
		}

		out.Append(rec)
	}

	fmt.Printf("🗺️ Mapping: %d products mapped to %d columns, %d dropped\n", out.Len(), len(schema), dropped)
	return out, dropped, diags
}

func firstUnmetRequired(rec model.Record, schema []FieldSpec) string {
	for _, f := range schema {
		if f.Required && f.Default == "" && rec[f.Name] == "" {
			return f.Name
		}
	}
	return ""
}
