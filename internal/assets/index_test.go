package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file (and its parent directories) with dummy content.
func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
}

func buildTestRoots(t *testing.T) (assetsDir, thumbsDir string) {
	t.Helper()
	assetsDir = filepath.Join(t.TempDir(), "static_assets")
	thumbsDir = filepath.Join(t.TempDir(), "static_assets_thumbnails")

	writeFile(t, filepath.Join(assetsDir, "Product_101", "brochure.pdf"))
	writeFile(t, filepath.Join(assetsDir, "Product_101", "PROOF_brochure.pdf"))
	writeFile(t, filepath.Join(assetsDir, "Product_101", "notes.txt"))
	writeFile(t, filepath.Join(assetsDir, "Product_202", "a_first.pdf"))
	writeFile(t, filepath.Join(assetsDir, "Product_202", "b_second.pdf"))
	writeFile(t, filepath.Join(assetsDir, "stray.pdf"))

	writeFile(t, filepath.Join(thumbsDir, "Product_101", "Pages", "Thumbnails", "page2.jpg"))
	writeFile(t, filepath.Join(thumbsDir, "Product_101", "Pages", "Thumbnails", "page1.jpg"))
	writeFile(t, filepath.Join(thumbsDir, "Product_101", "Pages", "Thumbnails", "page3.png"))
	writeFile(t, filepath.Join(thumbsDir, "Product_101", "Pages", "Thumbnails", "proof_page.jpg"))
	writeFile(t, filepath.Join(thumbsDir, "Product_101", "Pages", "not_a_thumb.jpg"))

	return assetsDir, thumbsDir
}

func TestBuildCataloguesBothRoots(t *testing.T) {
	assetsDir, thumbsDir := buildTestRoots(t)

	idx, err := Build(assetsDir, thumbsDir, false)
	require.NoError(t, err)

	// Stray files outside Product_ folders are ignored.
	assert.Empty(t, idx.Entries(""))

	entries := idx.Entries("101")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	// notes.txt is not an asset; not_a_thumb.jpg is outside a Thumbnails leaf.
	assert.NotContains(t, names, "notes.txt")
	assert.NotContains(t, names, "not_a_thumb.jpg")
	assert.Contains(t, names, "PROOF_brochure.pdf") // catalogued, but excluded
}

func TestDocumentSkipsProofFiles(t *testing.T) {
	assetsDir, thumbsDir := buildTestRoots(t)

	idx, err := Build(assetsDir, thumbsDir, true)
	require.NoError(t, err)

	doc, ok := idx.Document("101")
	require.True(t, ok)
	assert.Equal(t, "brochure.pdf", doc.Name())

	// First non-excluded PDF in lexicographic order.
	doc, ok = idx.Document("202")
	require.True(t, ok)
	assert.Equal(t, "a_first.pdf", doc.Name())

	_, ok = idx.Document("999")
	assert.False(t, ok)
}

func TestThumbnailsLexicographicSelection(t *testing.T) {
	assetsDir, thumbsDir := buildTestRoots(t)

	idx, err := Build(assetsDir, thumbsDir, false)
	require.NoError(t, err)

	thumbs := idx.Thumbnails("101", 2)
	require.Len(t, thumbs, 2)
	assert.Equal(t, "page1.jpg", thumbs[0].Name())
	assert.Equal(t, "page2.jpg", thumbs[1].Name())

	// proof_page.jpg is never selected even with a higher max.
	all := idx.Thumbnails("101", 10)
	for _, e := range all {
		assert.NotContains(t, e.Name(), "proof")
	}
}

func TestSkipThumbnailsIgnoresThumbnailRoot(t *testing.T) {
	assetsDir, thumbsDir := buildTestRoots(t)

	idx, err := Build(assetsDir, thumbsDir, true)
	require.NoError(t, err)
	assert.Empty(t, idx.Thumbnails("101", 2))

	// The thumbnail root does not even need to exist.
	idx, err = Build(assetsDir, filepath.Join(t.TempDir(), "missing"), true)
	require.NoError(t, err)
	_, ok := idx.Document("101")
	assert.True(t, ok)
}

func TestBuildMissingAssetRoot(t *testing.T) {
	_, err := Build(filepath.Join(t.TempDir(), "nope"), t.TempDir(), true)
	assert.Error(t, err)
}

func TestLookupNeverReturnsExcluded(t *testing.T) {
	assetsDir, thumbsDir := buildTestRoots(t)

	idx, err := Build(assetsDir, thumbsDir, false)
	require.NoError(t, err)

	entry, ok := idx.Lookup("101", "brochure.pdf")
	require.True(t, ok)
	assert.Equal(t, KindDocument, entry.Kind)

	_, ok = idx.Lookup("101", "PROOF_brochure.pdf")
	assert.False(t, ok)

	_, ok = idx.Lookup("101", "unknown.pdf")
	assert.False(t, ok)
}
