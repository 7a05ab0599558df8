// Package wutil holds small filesystem, hashing and diff helpers shared
// by the generator and the CLI driver.
package wutil

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// WriteFileAtomic writes data to path via a temp-file-then-rename so a
// reader never observes a partially written generated file.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()
	defer func() { _ = tmp.Close() }()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// ContentHash is the deterministic content digest recorded alongside
// generated output so a caller can check "identical inputs, identical
// bytes" without re-running the generator.
func ContentHash(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

// UnifiedDiff renders a unified diff between two generation runs (or
// between on-disk and freshly generated output) for `weaver compile --diff`
// and `weaver check`.
func UnifiedDiff(before, after, filename string) string {
	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: filename,
		ToFile:   filename + " (generated)",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(d)
	if err != nil {
		return "(diff error: " + err.Error() + ")"
	}
	return text
}

// ExpandGlobs expands glob patterns in a file-set argument list,
// preserving non-pattern paths verbatim.
func ExpandGlobs(files []string) []string {
	var out []string
	for _, f := range files {
		if strings.ContainsAny(f, "*?[") {
			matches, _ := filepath.Glob(f)
			out = append(out, matches...)
		} else {
			out = append(out, f)
		}
	}
	return out
}
