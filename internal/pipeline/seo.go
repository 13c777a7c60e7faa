package pipeline

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/model"
)

// ------------------- SEO Enrichment -------------------
//
// The enrichment stage synthesizes two derived fields per product, SEOTitle
// and KeyWords, from purely textual inputs (name, descriptions, category
// path). Every helper here is a pure function of the record, so re-running
// the stage on the same input always yields the same output.

// Columns produced by the enrichment stage.
const (
	ColSEOTitle = "SEOTitle"
	ColKeyWords = "KeyWords"
)

// Classifier derives a product type label from the product name and its
// category path. It must be pure: same inputs, same label. An empty return
// means no type could be determined.
type Classifier func(name, categories string) string

// productType pairs a lowercase keyword with the type label it implies.
// Order matters: the first match wins, most specific first.
type productType struct {
	keyword string
	label   string
}

var productTypes = []productType{
	{"envelope", "Envelope"},
	{"business card", "Business Card"},
	{"appointment card", "Appointment Card"},
	{"qr code", "QR Code Card"},
	{"review card", "Review Card"},
	{"card", "Card"},
	{"flier", "Flier"},
	{"flyer", "Flyer"},
	{"brochure", "Brochure"},
	{"letterhead", "Letterhead"},
	{"registration", "Registration Form"},
	{"form", "Form"},
	{"letter", "Letter"},
	{"sales aid", "Sales Aid"},
	{"postcard", "Postcard"},
	{"booklet", "Booklet"},
	{"poster", "Poster"},
	{"label", "Label"},
	{"sticker", "Sticker"},
	{"lanyard", "Lanyard"},
	{"badge", "Badge"},
	{"sign", "Sign"},
	{"banner", "Banner"},
	{"handout", "Handout"},
	{"presentation", "Presentation"},
	{"folder", "Folder"},
	{"notepad", "Notepad"},
}

// keyword expansions per product type, first match wins.
var typeKeywordGroups = []struct {
	keyword string
	terms   []string
}{
	{"envelope", []string{"envelope", "mailing", "stationery"}},
	{"business card", []string{"business card", "card", "networking", "contact"}},
	{"appointment card", []string{"appointment card", "reminder"}},
	{"qr code", []string{"qr code", "review", "feedback"}},
	{"flier", []string{"flier", "flyer", "marketing", "promotional"}},
	{"brochure", []string{"brochure", "marketing", "informational"}},
	{"letterhead", []string{"letterhead", "stationery", "correspondence"}},
	{"registration", []string{"registration", "form"}},
	{"form", []string{"form", "document"}},
	{"letter", []string{"letter", "correspondence"}},
	{"sales aid", []string{"sales aid", "marketing", "sales tool"}},
	{"postcard", []string{"postcard", "mailing", "marketing"}},
	{"booklet", []string{"booklet", "guide"}},
	{"poster", []string{"poster", "signage", "display"}},
	{"label", []string{"label", "sticker"}},
	{"lanyard", []string{"lanyard", "badge holder"}},
	{"sign", []string{"sign", "signage"}},
	{"banner", []string{"banner", "display"}},
	{"handout", []string{"handout", "informational"}},
	{"card", []string{"card"}},
}

// DefaultClassifier matches the product name, then the category path,
// against the product type keyword table.
func DefaultClassifier(name, categories string) string {
	nameLower := strings.ToLower(name)
	for _, pt := range productTypes {
		if strings.Contains(nameLower, pt.keyword) {
			return pt.label
		}
	}
	catLower := strings.ToLower(categories)
	for _, pt := range productTypes {
		if catLower != "" && strings.Contains(catLower, pt.keyword) {
			return pt.label
		}
	}
	return ""
}

var specPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d+\.?\d*\s*["']?\s*x\s*\d+\.?\d*\s*["']?`),
	regexp.MustCompile(`(?i)\d+\s*sided?`),
	regexp.MustCompile(`(?i)Updated \d{1,2}/\d{4}`),
	regexp.MustCompile(`(?i)Updated \d{1,2}-\d{1,2}-\d{4}`),
}

var (
	statePattern = regexp.MustCompile(`\b[A-Z]{2}\b`)
	cityPattern  = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
)

var locationFalsePositives = map[string]bool{
	"The": true, "A": true, "An": true, "In": true, "On": true, "At": true,
	"To": true, "For": true, "With": true, "And": true, "Or": true,
}

// cleanText strips wrapping quotes and collapses doubled quotes.
func cleanText(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) && len(text) >= 2 {
		text = text[1 : len(text)-1]
	}
	return strings.ReplaceAll(text, `""`, `"`)
}

// extractSpecs pulls size and revision specs out of descriptive text.
func extractSpecs(text string) []string {
	var specs []string
	for _, p := range specPatterns {
		specs = append(specs, p.FindAllString(text, -1)...)
	}
	return specs
}

// extractLocations auto-detects location-looking tokens (state codes,
// capitalized place names) from the product name. Output is sorted so the
// first pick is stable.
func extractLocations(text string) []string {
	set := make(map[string]bool)
	for _, s := range statePattern.FindAllString(text, -1) {
		set[s] = true
	}
	for _, c := range cityPattern.FindAllString(text, -1) {
		if !locationFalsePositives[c] {
			set[c] = true
		}
	}
	out := make([]string, 0, len(set))
	for loc := range set {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}

// truncateWords caps s at max characters, cutting on the word boundary
// nearest to (but never past) the limit. Trailing separators are trimmed.
func truncateWords(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := strings.LastIndexAny(s[:max+1], " ,")
	if cut < 0 {
		return ""
	}
	return strings.TrimRight(s[:cut], " ,")
}

// GenerateSEOTitle builds a search-friendly title for a product. Pure
// function of the record and classifier; length is capped at maxLen on a
// word boundary.
func GenerateSEOTitle(rec model.Record, classify Classifier, maxLen int) string {
	name := cleanText(rec["Name"])
	briefDesc := cleanText(rec["BriefDescription"])
	longDesc := cleanText(rec["LongDescription"])
	categories := cleanText(rec["StoreFront/Categories"])
	storeName := cleanText(rec[model.ColStoreName])

	productType := classify(name, categories)

	var location string
	if locs := extractLocations(name); len(locs) > 0 {
		location = locs[0]
	}

	specs := extractSpecs(briefDesc)
	specs = append(specs, extractSpecs(longDesc)...)

	var parts []string
	if productType != "" {
		parts = append(parts, productType)
	} else {
		// First few meaningful words of the name stand in for a type.
		var meaningful []string
		for _, w := range strings.Fields(name) {
			if len(meaningful) == 3 {
				break
			}
			switch strings.ToLower(w) {
			case "the", "a", "an":
				continue
			}
			meaningful = append(meaningful, w)
		}
		if len(meaningful) > 0 {
			parts = append(parts, strings.Join(meaningful, " "))
		}
	}
	if location != "" {
		parts = append(parts, "- "+location)
	}
	for _, spec := range specs {
		spec = strings.TrimSpace(spec)
		if spec != "" && !strings.Contains(spec, "Updated") && len(spec) < 30 {
			parts = append(parts, "("+spec+")")
			break
		}
	}
	if storeName != "" {
		parts = append(parts, "| "+storeName)
	}

	title := strings.Join(parts, " ")
	if len(parts) <= 1 {
		title = name
		if storeName != "" {
			title = name + " | " + storeName
		}
	}
	return truncateWords(title, maxLen)
}

// GenerateKeywords builds a sorted, comma-separated keyword list for a
// product, capped at maxLen on a word boundary.
func GenerateKeywords(rec model.Record, maxLen int) string {
	name := cleanText(rec["Name"])
	briefDesc := cleanText(rec["BriefDescription"])
	categories := cleanText(rec["StoreFront/Categories"])
	storeName := cleanText(rec[model.ColStoreName])
	nameLower := strings.ToLower(name)

	keywords := make(map[string]bool)

	for _, loc := range extractLocations(name) {
		keywords[strings.ToLower(loc)] = true
	}

	for _, group := range typeKeywordGroups {
		if strings.Contains(nameLower, group.keyword) {
			for _, term := range group.terms {
				keywords[term] = true
			}
			break
		}
	}

	for _, part := range strings.Split(categories, "/") {
		part = strings.TrimSpace(part)
		if len(part) > 2 {
			keywords[strings.ToLower(part)] = true
		}
	}

	if strings.Contains(nameLower, "spanish") || strings.Contains(nameLower, "español") {
		keywords["spanish"] = true
	}

	specs := extractSpecs(briefDesc)
	for i, spec := range specs {
		if i == 2 {
			break
		}
		if strings.Contains(spec, "Updated") {
			continue
		}
		spec = strings.TrimSpace(spec)
		spec = strings.ReplaceAll(spec, `"`, "inch")
		spec = strings.ReplaceAll(spec, `'`, "inch")
		if spec != "" && len(spec) < 20 {
			keywords[strings.ToLower(spec)] = true
		}
	}

	storeStopWords := map[string]bool{
		"online": true, "print": true, "portal": true, "store": true,
		"ordering": true, "the": true, "a": true, "an": true,
	}
	for _, w := range strings.Fields(strings.ToLower(storeName)) {
		if !storeStopWords[w] {
			keywords[w] = true
		}
	}

	list := make([]string, 0, len(keywords))
	for kw := range keywords {
		list = append(list, kw)
	}
	sort.Strings(list)
	return truncateWords(strings.Join(list, ", "), maxLen)
}

// EnrichRecords runs SEO synthesis over every record using a small worker
// pool. Results are written back by index so output order always matches
// input order regardless of worker scheduling.
func EnrichRecords(rs *model.RecordSet, cfg *model.PipelineConfig, classify Classifier, workerCount int) (*model.RecordSet, []model.ReportEntry) {
	if classify == nil {
		classify = DefaultClassifier
	}
	if workerCount < 1 {
		workerCount = 2 // default
	}

	out := model.NewRecordSet(rs.Columns)
	out.EnsureColumn(ColSEOTitle)
	out.EnsureColumn(ColKeyWords)
	results := make([]model.Record, rs.Len())

	jobs := make(chan int, rs.Len())
	var wg sync.WaitGroup
	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				rec := rs.Records[i].Clone()
				rec[ColSEOTitle] = GenerateSEOTitle(rec, classify, cfg.SEOTitleMax)
				rec[ColKeyWords] = GenerateKeywords(rec, cfg.SEOKeywordsMax)
				results[i] = rec
			}
		}()
	}
	for i := range rs.Records {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var diags []model.ReportEntry
	for _, rec := range results {
		if rec[ColSEOTitle] == "" {
			diags = append(diags, model.ReportEntry{
				RecordID: rec.ID(),
				Stage:    "seo_generation",
				Severity: model.SeverityWarning,
				Message:  "empty SEO title synthesized (product name missing?)",
			})
		}
		out.Append(rec)
	}

	fmt.Printf("🔍 SEO: generated titles and keywords for %d products\n", out.Len())
	return out, diags
}
