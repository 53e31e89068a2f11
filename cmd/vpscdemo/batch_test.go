package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	for i, name := range []string{"a.yaml", "b.yaml"} {
		_ = i
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(twoVarScenario), 0o644))
	}

	c := newCLI()
	cmd := c.batchCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{dir})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "a.yaml\tOK")
	assert.Contains(t, out.String(), "b.yaml\tOK")
}

func TestBatchCommandEmptyDir(t *testing.T) {
	dir := t.TempDir()

	c := newCLI()
	cmd := c.batchCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{dir})

	assert.Error(t, cmd.Execute())
}
