package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReplaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("0 I 1 10\n5 I 2 20\n8 E 2\n12 I 3 15\n"), 0o600))

	assert.NoError(t, run(path, "error"))
}

func TestRunMissingFile(t *testing.T) {
	assert.Error(t, run(filepath.Join(t.TempDir(), "missing.txt"), "error"))
}

func TestRunMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("0 I 1\n"), 0o600))

	assert.Error(t, run(path, "error"))
}
