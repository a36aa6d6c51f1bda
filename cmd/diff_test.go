package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/spagen/internal/generator"
)

func renderedReference(t *testing.T) string {
	t.Helper()
	configPath := writeValues(t, "values.hcl", validHCL)
	v, _, err := loadValues(valueSources{File: configPath, Lookup: noEnv})
	require.NoError(t, err)
	doc, err := generator.Generate(v)
	require.NoError(t, err)
	return doc.FullConfig
}

func TestRunDiff_NoDifferences(t *testing.T) {
	configPath := writeValues(t, "values.hcl", validHCL)
	// Pasted scripts often come back with CRLF and trailing blanks.
	existing := strings.ReplaceAll(renderedReference(t), "\n", "  \r\n")
	against := writeValues(t, "running.txt", existing)

	var out bytes.Buffer
	require.NoError(t, runDiff(&out, configPath, against, noEnv))
	assert.Equal(t, "No differences.\n", out.String())
}

func TestRunDiff_ShowsChanges(t *testing.T) {
	configPath := writeValues(t, "values.hcl", validHCL)
	existing := strings.Replace(renderedReference(t), "set as 65001", "set as 65002", 1)
	against := writeValues(t, "running.txt", existing)

	var out bytes.Buffer
	err := runDiff(&out, configPath, against, noEnv)
	require.True(t, errors.Is(err, ErrDiffers))

	text := out.String()
	assert.Contains(t, text, "--- "+against)
	assert.Contains(t, text, "+++ Rendered")
	assert.Contains(t, text, "-    set as 65002")
	assert.Contains(t, text, "+    set as 65001")
}

func TestRunDiff_Errors(t *testing.T) {
	configPath := writeValues(t, "values.hcl", validHCL)

	err := runDiff(&bytes.Buffer{}, configPath, filepath.Join(t.TempDir(), "missing.txt"), noEnv)
	assert.ErrorContains(t, err, "failed to read")

	partial := writeValues(t, "partial.hcl", `bgp_as = "65001"`)
	against := writeValues(t, "running.txt", "config system interface\nend\n")
	err = runDiff(&bytes.Buffer{}, partial, against, noEnv)
	assert.True(t, errors.Is(err, generator.ErrMissingField))
}

func TestNormalizeScript(t *testing.T) {
	assert.Equal(t, "a\nb\n", normalizeScript("a \r\nb\t\r\n\r\n"))
	assert.Equal(t, "a\n", normalizeScript("a"))
}
