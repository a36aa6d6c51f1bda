package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/spagen/internal/config"
	"grimm.is/spagen/internal/generator"
	"grimm.is/spagen/internal/secret"
)

func TestRunInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spagen.hcl")
	require.NoError(t, RunInit(path, false))

	result, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, generator.DefaultValues(), result.Values)

	// A second run refuses to clobber the file.
	err = RunInit(path, false)
	assert.ErrorContains(t, err, "already exists")

	require.NoError(t, os.WriteFile(path, []byte("# edited\n"), 0600))
	require.NoError(t, RunInit(path, true))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "# edited")
}

func TestRunSecret(t *testing.T) {
	out := captureStdout(t)
	require.NoError(t, RunSecret(secret.DefaultLength))
	assert.Len(t, bytes.TrimSpace(out.Bytes()), secret.DefaultLength)

	assert.Error(t, RunSecret(0))
}
