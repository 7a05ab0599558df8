package gen

import (
	"os"

	"github.com/rjchrhl/weaver/internal/wutil"
)

// WriteResult reports what happened when writing one Output to disk.
type WriteResult struct {
	Path     string
	Hash     string
	Written  bool
	Diff     string
	Unchanged bool
}

// Write persists outputs atomically. When dryRun is true nothing is
// written; each result's Diff instead shows what would change against
// whatever is currently on disk (the `weaver check` supplement).
func Write(outputs []Output, dryRun bool) ([]WriteResult, error) {
	results := make([]WriteResult, 0, len(outputs))
	for _, o := range outputs {
		hash := wutil.ContentHash([]byte(o.Text))
		existing, err := os.ReadFile(o.Path)
		unchanged := err == nil && string(existing) == o.Text

		result := WriteResult{Path: o.Path, Hash: hash, Unchanged: unchanged}
		if !unchanged {
			result.Diff = wutil.UnifiedDiff(string(existing), o.Text, o.Path)
		}

		if !dryRun && !unchanged {
			if err := wutil.WriteFileAtomic(o.Path, []byte(o.Text), 0o644); err != nil {
				return nil, err
			}
			result.Written = true
		}
		results = append(results, result)
	}
	return results, nil
}
