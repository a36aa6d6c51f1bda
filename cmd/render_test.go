package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/spagen/internal/generator"
)

func referenceValues() generator.FormValues {
	return generator.FormValues{
		HealthCheckIP:      "10.234.250.30/32",
		BGPLoopbackIP:      "10.233.250.242/32",
		BGPNeighborRange:   "10.233.250.0/28",
		BGPAS:              "65001",
		BGPLoopbackSummary: "10.233.250.0 255.255.255.0",
		InternalNetworks:   "10.132.10.0 255.255.252.0\n\n10.140.0.0 255.255.255.0",
		IPsecPSK:           "s3cr3t-Key!",
	}
}

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := Stdout
	Stdout = &buf
	t.Cleanup(func() { Stdout = orig })
	return &buf
}

func TestRender_MatchesGolden(t *testing.T) {
	out := captureStdout(t)
	require.NoError(t, Render(referenceValues(), RenderOptions{}))

	golden, err := os.ReadFile(filepath.Join("..", "internal", "generator", "testdata", "reference.golden"))
	require.NoError(t, err)
	assert.Equal(t, string(golden)+"\n", out.String())
}

func TestRender_Section(t *testing.T) {
	out := captureStdout(t)
	require.NoError(t, Render(referenceValues(), RenderOptions{Section: generator.BlockBGP}))
	assert.True(t, strings.HasPrefix(out.String(), "config router bgp\n"))

	err := Render(referenceValues(), RenderOptions{Section: "nope"})
	assert.ErrorContains(t, err, "unknown section")
}

func TestRender_JSON(t *testing.T) {
	out := captureStdout(t)
	require.NoError(t, Render(referenceValues(), RenderOptions{JSON: true}))

	var doc generator.Document
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Len(t, doc.Blocks, 5)

	out.Reset()
	require.NoError(t, Render(referenceValues(), RenderOptions{JSON: true, Section: generator.BlockTunnel1}))
	var b generator.Block
	require.NoError(t, json.Unmarshal(out.Bytes(), &b))
	assert.Equal(t, "RUH-DC-01 Tunnel", b.Title)
}

func TestRender_Pretty(t *testing.T) {
	out := captureStdout(t)
	require.NoError(t, Render(referenceValues(), RenderOptions{Pretty: true}))
	assert.Contains(t, out.String(), "Security Policies")
	assert.Contains(t, out.String(), "config firewall policy")
}

func TestRender_OutFile(t *testing.T) {
	out := captureStdout(t)
	path := filepath.Join(t.TempDir(), "spa.txt")
	require.NoError(t, Render(referenceValues(), RenderOptions{Out: path}))
	assert.Empty(t, out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `set psksecret "s3cr3t-Key!"`)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestRender_Copy(t *testing.T) {
	captureStdout(t)
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error {
		copied = s
		return nil
	}
	defer func() { copyToClipboard = orig }()

	require.NoError(t, Render(referenceValues(), RenderOptions{Copy: true}))
	want, err := generator.Generate(referenceValues())
	require.NoError(t, err)
	assert.Equal(t, want.FullConfig, copied)
}

func TestRender_MissingFields(t *testing.T) {
	captureStdout(t)
	v := referenceValues()
	v.IPsecPSK = ""

	err := Render(v, RenderOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, generator.ErrMissingField))
	assert.Contains(t, err.Error(), "ipsecPsk")
}

func TestRender_GeneratePSK(t *testing.T) {
	out := captureStdout(t)
	v := referenceValues()
	v.IPsecPSK = ""

	require.NoError(t, Render(v, RenderOptions{GeneratePSK: true}))
	assert.Equal(t, 2, strings.Count(out.String(), "set psksecret \""))
	assert.NotContains(t, out.String(), `set psksecret ""`)
}

func TestParseRenderArgs(t *testing.T) {
	opts, lf, err := ParseRenderArgs([]string{
		"-f", "values.hcl",
		"--section", "bgp",
		"--bgp-as", "65010",
		"--tunnel1-name", "JED-DC-01",
		"--log-level", "debug",
	})
	require.NoError(t, err)
	assert.Equal(t, "values.hcl", opts.File)
	assert.Equal(t, "bgp", opts.Section)
	assert.Equal(t, "65010", opts.Flags.BGPAS)
	assert.Equal(t, "JED-DC-01", opts.Flags.Tunnel1Name)
	assert.Empty(t, opts.Flags.WANInterface)
	assert.Equal(t, "debug", lf.level)

	opts, _, err = ParseRenderArgs([]string{"other.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "other.yaml", opts.File)

	_, _, err = ParseRenderArgs([]string{"--no-such-flag"})
	assert.Error(t, err)
}

func TestLoadValues_Precedence(t *testing.T) {
	path := writeValues(t, "values.yaml", `
bgp_as: "65001"
wan_interface: wan1
tunnel1_name: FILE-01
`)
	lookup := func(key string) (string, bool) {
		switch key {
		case "SPAGEN_WAN_INTERFACE":
			return "wan2", true
		case "SPAGEN_TUNNEL1_NAME":
			return "ENV-01", true
		}
		return "", false
	}
	flags := generator.FormValues{Tunnel1Name: "FLAG-01"}

	v, info, err := loadValues(valueSources{File: path, Lookup: lookup, Flags: flags})
	require.NoError(t, err)
	assert.Equal(t, "65001", v.BGPAS)
	assert.Equal(t, "wan2", v.WANInterface)
	assert.Equal(t, "FLAG-01", v.Tunnel1Name)
	assert.Equal(t, []string{"wanInterface", "tunnel1Name"}, info.Env)
}

func TestRunRender_EndToEnd(t *testing.T) {
	out := captureStdout(t)
	path := writeValues(t, "values.hcl", validHCL)

	require.NoError(t, RunRender([]string{"-f", path, "--section", "tunnel2", "--tunnel2-name", "JED-DC-02"}))
	assert.Contains(t, out.String(), `edit "JED-DC-02"`)
}
