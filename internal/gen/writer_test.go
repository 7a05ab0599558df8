package gen_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rjchrhl/weaver/internal/gen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite_WritesNewFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.generated.swift")

	results, err := gen.Write([]gen.Output{{Path: path, Text: "hello\n"}}, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Written)
	assert.False(t, results[0].Unchanged)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestWrite_UnchangedFileIsNotRewritten(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.generated.swift")
	require.NoError(t, os.WriteFile(path, []byte("same\n"), 0o644))

	results, err := gen.Write([]gen.Output{{Path: path, Text: "same\n"}}, false)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Written)
	assert.True(t, results[0].Unchanged)
	assert.Empty(t, results[0].Diff)
}

func TestWrite_DryRunNeverWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.generated.swift")

	results, err := gen.Write([]gen.Output{{Path: path, Text: "hello\n"}}, true)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Written)
	assert.NotEmpty(t, results[0].Diff)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
