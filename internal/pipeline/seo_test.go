package pipeline

import (
	"testing"

	"github.com/Osbaldo-Arellano/MDSF-Migration/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seoConfig() *model.PipelineConfig {
	return &model.PipelineConfig{SEOTitleMax: 70, SEOKeywordsMax: 500}
}

func TestDefaultClassifier(t *testing.T) {
	assert.Equal(t, "Business Card", DefaultClassifier("AFC Business Card", ""))
	assert.Equal(t, "Envelope", DefaultClassifier("#10 Window Envelope", ""))
	// Name wins over categories; categories are the fallback.
	assert.Equal(t, "Poster", DefaultClassifier("Wall Art 24x36", "Marketing/Posters"))
	assert.Equal(t, "", DefaultClassifier("Mystery Item", ""))
}

func TestGenerateSEOTitle(t *testing.T) {
	rec := model.Record{
		"Name":             "AFC Business Card",
		"BriefDescription": `3.5" x 2" 2 sided`,
		model.ColStoreName: "AFC Urgent Care",
	}

	title := GenerateSEOTitle(rec, DefaultClassifier, 70)
	assert.Contains(t, title, "Business Card")
	assert.Contains(t, title, "| AFC Urgent Care")
	assert.LessOrEqual(t, len(title), 70)

	// Same record, same title.
	assert.Equal(t, title, GenerateSEOTitle(rec, DefaultClassifier, 70))
}

func TestGenerateSEOTitleFallsBackToName(t *testing.T) {
	rec := model.Record{"Name": "mystery item"}
	assert.Equal(t, "mystery item", GenerateSEOTitle(rec, DefaultClassifier, 70))

	rec = model.Record{}
	assert.Equal(t, "", GenerateSEOTitle(rec, DefaultClassifier, 70))
}

func TestGenerateKeywordsSortedAndCapped(t *testing.T) {
	rec := model.Record{"Name": "business card refill"}
	kw := GenerateKeywords(rec, 500)
	assert.Equal(t, "business card, card, contact, networking", kw)

	capped := GenerateKeywords(rec, 20)
	assert.LessOrEqual(t, len(capped), 20)
	// Word-boundary truncation never cuts a keyword mid-token.
	assert.Equal(t, "business card, card", capped)
}

func TestTruncateWords(t *testing.T) {
	assert.Equal(t, "short", truncateWords("short", 70))
	assert.Equal(t, "alpha beta", truncateWords("alpha beta gamma", 12))
	// No boundary before the limit leaves nothing usable.
	assert.Equal(t, "", truncateWords("abcdefghijklmnop", 5))
}

func TestEnrichRecordsPreservesOrder(t *testing.T) {
	rs := model.NewRecordSet([]string{model.ColProductID, "Name"})
	names := []string{"Business Card A", "Envelope B", "Poster C", "Flier D", "Brochure E"}
	for i, name := range names {
		rs.Append(model.Record{model.ColProductID: string(rune('1' + i)), "Name": name})
	}

	out, diags := EnrichRecords(rs, seoConfig(), nil, 4)
	assert.Empty(t, diags)
	require.Equal(t, len(names), out.Len())
	assert.Contains(t, out.Columns, ColSEOTitle)
	assert.Contains(t, out.Columns, ColKeyWords)

	for i, rec := range out.Records {
		assert.Equal(t, names[i], rec["Name"])
		assert.NotEmpty(t, rec[ColSEOTitle])
	}
}

func TestEnrichRecordsIdempotent(t *testing.T) {
	rs := model.NewRecordSet([]string{model.ColProductID, "Name", model.ColStoreName})
	rs.Append(model.Record{model.ColProductID: "1", "Name": "AFC Business Card", model.ColStoreName: "AFC Urgent Care"})

	once, _ := EnrichRecords(rs, seoConfig(), nil, 2)
	twice, _ := EnrichRecords(once, seoConfig(), nil, 2)

	require.Equal(t, once.Len(), twice.Len())
	for i := range once.Records {
		assert.Equal(t, once.Records[i][ColSEOTitle], twice.Records[i][ColSEOTitle])
		assert.Equal(t, once.Records[i][ColKeyWords], twice.Records[i][ColKeyWords])
	}
}

func TestEnrichRecordsWarnsOnEmptyTitle(t *testing.T) {
	rs := model.NewRecordSet([]string{model.ColProductID})
	rs.Append(model.Record{model.ColProductID: "7"})

	_, diags := EnrichRecords(rs, seoConfig(), nil, 1)
	require.Len(t, diags, 1)
	assert.Equal(t, model.SeverityWarning, diags[0].Severity)
	assert.Equal(t, "7", diags[0].RecordID)
}
