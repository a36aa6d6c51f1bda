package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/spagen/internal/generator"
)

const validHCL = `
health_check_ip      = "10.234.250.30/32"
bgp_loopback_ip      = "10.233.250.242/32"
bgp_neighbor_range   = "10.233.250.0/28"
bgp_as               = "65001"
bgp_loopback_summary = "10.233.250.0 255.255.255.0"
internal_networks    = <<EOT
10.132.10.0 255.255.252.0
10.140.0.0 255.255.255.0
EOT
ipsec_psk = "s3cr3t-Key!"
`

func noEnv(string) (string, bool) { return "", false }

func writeValues(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestRunCheck_ValidConfig(t *testing.T) {
	configPath := writeValues(t, "valid.hcl", validHCL)

	var out bytes.Buffer
	if err := runCheck(&out, configPath, false, noEnv); err != nil {
		t.Fatalf("runCheck() error = %v", err)
	}
	assert.Contains(t, out.String(), "Format: hcl")
	assert.Contains(t, out.String(), "Network statements: 3")
	assert.NotContains(t, out.String(), "warning:")
}

func TestRunCheck_Verbose(t *testing.T) {
	configPath := writeValues(t, "valid.hcl", validHCL)

	var out bytes.Buffer
	require.NoError(t, runCheck(&out, configPath, true, noEnv))

	text := out.String()
	assert.Contains(t, text, "FIELD")
	assert.Contains(t, text, "blake2b:")
	assert.NotContains(t, text, "s3cr3t-Key!")
	assert.Contains(t, text, "2 lines")
	assert.Regexp(t, `wanInterface\s+port1\s+default`, text)
}

func TestRunCheck_Warnings(t *testing.T) {
	configPath := writeValues(t, "warn.hcl", validHCL+`
wan_interface = "wan interface"
tunnel1_name  = "DC-01"
tunnel2_name  = "DC-01"
`)

	var out bytes.Buffer
	require.NoError(t, runCheck(&out, configPath, false, noEnv))
	assert.Contains(t, out.String(), "warning: wanInterface:")
	assert.Contains(t, out.String(), "warning: tunnel2Name: both tunnels use the same name")
}

func TestRunCheck_MissingFields(t *testing.T) {
	configPath := writeValues(t, "partial.json", `{"bgpAs": "65001"}`)

	err := runCheck(&bytes.Buffer{}, configPath, false, noEnv)
	require.Error(t, err)
	assert.True(t, errors.Is(err, generator.ErrMissingField))

	var missing *generator.MissingFieldsError
	require.True(t, errors.As(err, &missing))
	assert.NotContains(t, missing.Fields, "bgpAs")
	assert.Contains(t, missing.Fields, "ipsecPsk")
}

func TestRunCheck_EnvSuppliesSecret(t *testing.T) {
	configPath := writeValues(t, "nopsk.hcl", strings.Replace(validHCL, `ipsec_psk = "s3cr3t-Key!"`, "", 1))
	lookup := func(key string) (string, bool) {
		if key == "SPAGEN_IPSEC_PSK" {
			return "from-env", true
		}
		return "", false
	}

	var out bytes.Buffer
	require.NoError(t, runCheck(&out, configPath, false, lookup))
	assert.Contains(t, out.String(), "Environment overrides: ipsecPsk")
}

func TestRunCheck_InvalidConfig(t *testing.T) {
	configPath := writeValues(t, "invalid.hcl", `
bgp_as = "65001"
# Missing closing quote
health_check_ip = "10.0.0.1
`)

	if err := runCheck(&bytes.Buffer{}, configPath, false, noEnv); err == nil {
		t.Error("runCheck() error = nil, want parse error")
	}
}

func TestRunCheck_NoFile(t *testing.T) {
	err := RunCheck("", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage:")
}
