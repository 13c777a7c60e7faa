package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/model"
)

// MergeTicketTemplates fills empty TicketTemplate fields from a pricing
// elements CSV keyed by ProductID. A product's best element is the first
// dimension-looking one, then any non-"Base" element, then whatever is
// left. Records that already carry a template are untouched.
func MergeTicketTemplates(rs *model.RecordSet, pricingCSV string) (*model.RecordSet, []model.ReportEntry, error) {
	pricing, err := readPricingElements(pricingCSV)
	if err != nil {
		return nil, nil, err
	}

	out := model.NewRecordSet(rs.Columns)
	out.EnsureColumn("TicketTemplate")

	var diags []model.ReportEntry
	filled, missing := 0, 0

	for _, src := range rs.Records {
		rec := src.Clone()
		if strings.TrimSpace(rec["TicketTemplate"]) == "" {
			if element, ok := pricing[rec.ID()]; ok {
				rec["TicketTemplate"] = element
				filled++
			} else {
				missing++
				diags = append(diags, model.ReportEntry{
					RecordID: rec.ID(),
					Stage:    "ticket_merge",
					Severity: model.SeverityWarning,
					Message:  fmt.Sprintf("no pricing element found for %q", rec["Name"]),
				})
			}
		}
		out.Append(rec)
	}

	fmt.Printf("🎫 Ticket merge: %d templates filled, %d still missing\n", filled, missing)
	return out, diags, nil
}

// readPricingElements parses the pricing CSV (comma or tab delimited) into
// a ProductID -> best element map.
func readPricingElements(path string) (map[string]string, error) {
	rows, err := readDelimited(path, ',')
	if err == nil && len(rows) > 0 && len(rows[0]) == 1 {
		rows, err = readDelimited(path, '\t')
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing CSV %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("pricing CSV %s is empty", path)
	}

	idCol, elCol := -1, -1
	for i, h := range rows[0] {
		switch strings.TrimSpace(h) {
		case "ProductID":
			idCol = i
		case "PricingElement":
			elCol = i
		}
	}
	if idCol < 0 || elCol < 0 {
		return nil, fmt.Errorf("pricing CSV %s missing ProductID or PricingElement column", path)
	}

	elements := make(map[string][]string)
	for _, row := range rows[1:] {
		if len(row) <= idCol || len(row) <= elCol {
			continue
		}
		element := strings.TrimSpace(row[elCol])
		lower := strings.ToLower(element)
		// Billing notes and assignments are not production specs.
		if strings.Contains(lower, "note for") || strings.Contains(lower, "billing") || strings.Contains(lower, "assignment") {
			continue
		}
		id := strings.TrimSpace(row[idCol])
		elements[id] = append(elements[id], element)
	}

	best := make(map[string]string, len(elements))
	for id, list := range elements {
		best[id] = pickBestElement(list)
	}
	return best, nil
}

func pickBestElement(elements []string) string {
	var nonBase []string
	for _, e := range elements {
		if strings.ToLower(e) != "base" {
			nonBase = append(nonBase, e)
		}
	}
	if len(nonBase) == 0 {
		return elements[0]
	}
	for _, e := range nonBase {
		if strings.ContainsAny(strings.ToLower(e), "x0123456789") {
			return e
		}
	}
	return nonBase[0]
}

func readDelimited(path string, delim rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
