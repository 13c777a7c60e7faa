package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/model"
)

// ErrEmptyResult is reported when a configured store filter matches nothing,
// which almost always means a misconfigured store ID.
var ErrEmptyResult = errors.New("no products matched the configured store")

// FilterByStore keeps records whose uStore_StoreID equals storeID, or every
// record when storeID is nil. The filter is stable: surviving records keep
// their original relative order. Duplicate product IDs are collapsed to the
// first occurrence so identifiers are unique downstream.
//
// A zero-record result with a non-nil storeID is not fatal; it is surfaced
// as a prominent warning carrying the store breakdown of the input.
func FilterByStore(rs *model.RecordSet, storeID *int) (*model.RecordSet, []model.ReportEntry, error) {
	if storeID != nil && !rs.HasColumn(model.ColStoreID) {
		return nil, nil, fmt.Errorf("input schema missing store column %s", model.ColStoreID)
	}

	var diags []model.ReportEntry
	out := model.NewRecordSet(rs.Columns)
	seen := make(map[string]bool)
	want := ""
	if storeID != nil {
		want = strconv.Itoa(*storeID)
	}

	for _, rec := range rs.Records {
		if storeID != nil && rec[model.ColStoreID] != want {
			continue
		}
		id := rec.ID()
		if id != "" && seen[id] {
			diags = append(diags, model.ReportEntry{
				RecordID: id,
				Stage:    "filter",
				Severity: model.SeverityWarning,
				Message:  "duplicate product ID in export, keeping first occurrence",
			})
			continue
		}
		seen[id] = true
		out.Append(rec)
	}

	if storeID != nil {
		fmt.Printf("🏪 Filter: %d of %d products matched store %d\n", out.Len(), rs.Len(), *storeID)
	} else {
		fmt.Printf("🏪 Filter: no store filter configured, keeping all %d products\n", out.Len())
	}

	if out.Len() == 0 && storeID != nil {
		fmt.Printf("⚠️ WARNING: %v (store %d)\n", ErrEmptyResult, *storeID)
		printStoreBreakdown(rs)
		diags = append(diags, model.ReportEntry{
			Stage:    "filter",
			Severity: model.SeverityWarning,
			Message:  fmt.Sprintf("%v: store %d", ErrEmptyResult, *storeID),
		})
	}

	return out, diags, nil
}

// printStoreBreakdown lists per-store record counts from the input so a
// misconfigured store ID is easy to spot.
func printStoreBreakdown(rs *model.RecordSet) {
	if !rs.HasColumn(model.ColStoreName) {
		return
	}
	counts := make(map[string]int)
	ids := make(map[string]string)
	for _, rec := range rs.Records {
		name := rec[model.ColStoreName]
		counts[name]++
		ids[name] = rec[model.ColStoreID]
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return counts[names[i]] > counts[names[j]] })

	fmt.Println("Stores in export:")
	for i, name := range names {
		if i == 10 {
			fmt.Printf("  ... and %d more stores\n", len(names)-10)
			break
		}
		fmt.Printf("  %s (ID: %s): %d products\n", name, ids[name], counts[name])
	}
}
