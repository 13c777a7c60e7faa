package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Kind classifies an asset file.
type Kind string

const (
	KindDocument  Kind = "document"
	KindThumbnail Kind = "thumbnail"
)

// Entry is a single catalogued asset file.
type Entry struct {
	Path     string `json:"path"` // absolute path
	Kind     Kind   `json:"kind"`
	Excluded bool   `json:"excluded"` // proof files are catalogued but never selected
}

// Name returns the asset's base filename.
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

// Index maps a product identifier to its catalogued asset files.
// It is built once per run and read-only afterwards, so it is safe to share
// across workers.
type Index struct {
	entries map[string][]Entry
}

const productDirPrefix = "Product_"

// thumbnailLeafDir is the conventional leaf directory holding page thumbnails.
const thumbnailLeafDir = "Thumbnails"

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true,
}

// excluded reports whether a filename matches the proof exclusion pattern.
func excluded(name string) bool {
	return strings.Contains(strings.ToLower(name), "proof")
}

// Build scans the two asset roots and catalogues every asset file per
// product. PDFs anywhere under assetsDir/Product_<id>/ are documents;
// images below a Thumbnails leaf under thumbnailsDir/Product_<id>/ are
// thumbnails. When skipThumbnails is set the thumbnail root is not walked
// at all (AutoThumbnail runs never consume it).
func Build(assetsDir, thumbnailsDir string, skipThumbnails bool) (*Index, error) {
	idx := &Index{entries: make(map[string][]Entry)}

	if err := idx.scanRoot(assetsDir, KindDocument); err != nil {
		return nil, err
	}
	if !skipThumbnails {
		if err := idx.scanRoot(thumbnailsDir, KindThumbnail); err != nil {
			return nil, err
		}
	}

	// Lexicographic order per product fixes the selection policy.
	for id := range idx.entries {
		list := idx.entries[id]
		sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
		idx.entries[id] = list
	}

	return idx, nil
}

func (ix *Index) scanRoot(root string, kind Kind) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve asset root %s: %w", root, err)
	}
	if _, err := os.Stat(absRoot); err != nil {
		return fmt.Errorf("asset root not found: %s: %w", absRoot, err)
	}

	return filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		parts := strings.Split(rel, string(filepath.Separator))
		if len(parts) < 2 || !strings.HasPrefix(parts[0], productDirPrefix) {
			return nil // stray file outside a product folder
		}
		productID := strings.TrimPrefix(parts[0], productDirPrefix)

		ext := strings.ToLower(filepath.Ext(d.Name()))
		switch kind {
		case KindDocument:
			if ext != ".pdf" {
				return nil
			}
		case KindThumbnail:
			if !imageExtensions[ext] {
				return nil
			}
			// Only files below the conventional Thumbnails leaf count.
			if !underThumbnailLeaf(parts[1 : len(parts)-1]) {
				return nil
			}
		}

		ix.entries[productID] = append(ix.entries[productID], Entry{
			Path:     path,
			Kind:     kind,
			Excluded: excluded(d.Name()),
		})
		return nil
	})
}

func underThumbnailLeaf(dirs []string) bool {
	for _, d := range dirs {
		if d == thumbnailLeafDir {
			return true
		}
	}
	return false
}

// Entries returns every catalogued asset for a product, selected or not.
func (ix *Index) Entries(productID string) []Entry {
	return ix.entries[productID]
}

// Document selects the product's document: the lexicographically first
// non-excluded PDF. The second return reports whether one was found.
func (ix *Index) Document(productID string) (Entry, bool) {
	for _, e := range ix.entries[productID] {
		if e.Kind == KindDocument && !e.Excluded {
			return e, true
		}
	}
	return Entry{}, false
}

// Thumbnails selects up to max non-excluded thumbnails in lexicographic
// order.
func (ix *Index) Thumbnails(productID string, max int) []Entry {
	var out []Entry
	for _, e := range ix.entries[productID] {
		if e.Kind == KindThumbnail && !e.Excluded {
			out = append(out, e)
			if len(out) == max {
				break
			}
		}
	}
	return out
}

// Lookup finds a catalogued asset of any kind by base filename. Excluded
// entries are never returned.
func (ix *Index) Lookup(productID, filename string) (Entry, bool) {
	for _, e := range ix.entries[productID] {
		if !e.Excluded && e.Name() == filename {
			return e, true
		}
	}
	return Entry{}, false
}
