package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/spagen/internal/generator"
)

func TestParseTag(t *testing.T) {
	props := parseTag("group=IPsec & SPA;title=WAN Interface;desc=Default: port1, applied to both.;limit=35")
	assert.Equal(t, "IPsec & SPA", props["group"])
	assert.Equal(t, "WAN Interface", props["title"])
	assert.Equal(t, "Default: port1, applied to both.", props["desc"])
	assert.Equal(t, "35", props["limit"])
}

func TestCollectGroups_FormValues(t *testing.T) {
	v := generator.DefaultValues()
	groups, err := collectGroups(&v)
	require.NoError(t, err)

	var titles []string
	total := 0
	for _, g := range groups {
		titles = append(titles, g.Title)
		total += len(g.Fields)
		assert.Len(t, g.Keys, len(g.Fields))
	}
	assert.Equal(t, []string{"Loopbacks & BGP", "Internal Networks", "IPsec & SPA"}, titles)
	assert.Equal(t, len(generator.Fields), total)
	assert.Equal(t, []string{"HealthCheckIP", "BGPLoopbackIP", "BGPNeighborRange", "BGPAS", "BGPLoopbackSummary"}, groups[0].Keys)
}

func TestCollectGroups_Errors(t *testing.T) {
	_, err := collectGroups(generator.FormValues{})
	assert.Error(t, err)

	type badValidator struct {
		Name string `tui:"title=Name;validate=nope"`
	}
	_, err = collectGroups(&badValidator{})
	assert.ErrorContains(t, err, "unknown validator")

	type badLimit struct {
		Name string `tui:"title=Name;limit=abc"`
	}
	_, err = collectGroups(&badLimit{})
	assert.ErrorContains(t, err, "invalid limit")
}

func TestAutoForm(t *testing.T) {
	v := generator.DefaultValues()
	form, err := AutoForm(&v)
	require.NoError(t, err)
	assert.NotNil(t, form)
}

func TestValidators_Required(t *testing.T) {
	req := Validators["required"]
	assert.Error(t, req(""))
	assert.Error(t, req("   "))
	assert.NoError(t, req("65001"))
}

func TestFillSecret(t *testing.T) {
	v := generator.FormValues{IPsecPSK: "keep-me"}
	generated, err := FillSecret(&v)
	require.NoError(t, err)
	assert.False(t, generated)
	assert.Equal(t, "keep-me", v.IPsecPSK)

	v.IPsecPSK = "  "
	generated, err = FillSecret(&v)
	require.NoError(t, err)
	assert.True(t, generated)
	assert.Len(t, v.IPsecPSK, 28)
}

func testDocument(t *testing.T) generator.Document {
	t.Helper()
	v := generator.DefaultValues()
	v.HealthCheckIP = "10.234.250.30/32"
	v.BGPLoopbackIP = "10.233.250.242/32"
	v.BGPNeighborRange = "10.233.250.0/28"
	v.BGPAS = "65001"
	v.BGPLoopbackSummary = "10.233.250.0 255.255.255.0"
	v.InternalNetworks = "10.132.10.0 255.255.252.0"
	v.IPsecPSK = "s3cr3t"
	doc, err := generator.Generate(v)
	require.NoError(t, err)
	return doc
}

func TestRenderCards(t *testing.T) {
	doc := testDocument(t)
	out := RenderCards(doc, 0)

	for _, b := range doc.Blocks {
		assert.Contains(t, out, b.Title)
	}
	assert.Contains(t, out, "config system interface")
	assert.Contains(t, out, "set remote-as 65001")
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewer_CopyAndQuit(t *testing.T) {
	doc := testDocument(t)

	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error {
		copied = s
		return nil
	}
	defer func() { copyToClipboard = orig }()

	var m tea.Model = NewViewer(doc)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = m.Update(keyRunes("c"))

	v := m.(Viewer)
	assert.True(t, v.Copied)
	assert.Equal(t, doc.FullConfig, copied)
	assert.Contains(t, v.View(), "copied")

	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewer_CopyFailure(t *testing.T) {
	orig := copyToClipboard
	copyToClipboard = func(string) error { return errors.New("no clipboard") }
	defer func() { copyToClipboard = orig }()

	var m tea.Model = NewViewer(testDocument(t))
	m, _ = m.Update(keyRunes("c"))
	v := m.(Viewer)
	assert.False(t, v.Copied)
	assert.Contains(t, v.Status, "no clipboard")
}

func TestViewer_SectionNavigation(t *testing.T) {
	doc := testDocument(t)
	var m tea.Model = NewViewer(doc)
	assert.Equal(t, "loading...", m.View())

	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m, _ = m.Update(keyRunes("4"))
	v := m.(Viewer)
	assert.Equal(t, 3, v.Active)
	assert.Greater(t, v.Viewport.YOffset, 0)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 4, m.(Viewer).Active)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.(Viewer).Active)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 4, m.(Viewer).Active)

	view := m.View()
	assert.True(t, strings.Contains(view, "SPAGEN"))
	assert.Contains(t, view, "policies")
}
