package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCodeFor(t *testing.T) {
	assert.Equal(t, 0, exitCodeFor(nil))
	assert.Equal(t, 1, exitCodeFor(&userError{errors.New("bad input")}))
	assert.Equal(t, 2, exitCodeFor(errors.New("invariant violated")))
}

func TestUserError_UnwrapsToCause(t *testing.T) {
	cause := errors.New("underlying")
	u := &userError{cause}
	assert.Equal(t, cause, errors.Unwrap(u))
	assert.Equal(t, cause.Error(), u.Error())
}

func TestExpandFileArgs_ExpandsGlobAndKeepsLiteralMisses(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.swift"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.swift"), []byte(""), 0o644))

	matches, err := expandFileArgs([]string{filepath.Join(dir, "*.swift")})
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	literal, err := expandFileArgs([]string{filepath.Join(dir, "nonexistent.swift")})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "nonexistent.swift")}, literal)
}
