package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"grimm.is/spagen/internal/generator"
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

// Viewer shows a rendered document in a scrollable viewport.
type Viewer struct {
	Doc      generator.Document
	Viewport viewport.Model
	Active   int
	Status   string
	Copied   bool
	Width    int
	Height   int

	ready   bool
	offsets []int
}

// NewViewer creates a viewer for doc.
func NewViewer(doc generator.Document) Viewer {
	return Viewer{Doc: doc}
}

// Init implements tea.Model.
func (m Viewer) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "c":
			if err := copyToClipboard(m.Doc.FullConfig); err != nil {
				m.Status = StyleStatusBad.Render("copy failed: " + err.Error())
			} else {
				m.Copied = true
				m.Status = StyleStatusGood.Render("full configuration copied")
			}
			return m, nil
		case "tab":
			if len(m.Doc.Blocks) > 0 {
				m.jump((m.Active + 1) % len(m.Doc.Blocks))
			}
			return m, nil
		case "shift+tab":
			if len(m.Doc.Blocks) > 0 {
				m.jump((m.Active + len(m.Doc.Blocks) - 1) % len(m.Doc.Blocks))
			}
			return m, nil
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			if i := int(msg.String()[0] - '1'); i < len(m.Doc.Blocks) {
				m.jump(i)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		headerHeight := lipgloss.Height(m.header())
		footerHeight := 2
		if !m.ready {
			m.Viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.Viewport.Width = msg.Width
			m.Viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.refresh()
		return m, nil
	}

	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// jump selects block i and scrolls to it.
func (m *Viewer) jump(i int) {
	m.Active = i
	m.refresh()
	if m.ready && i < len(m.offsets) {
		m.Viewport.SetYOffset(m.offsets[i])
	}
}

// refresh redraws the cards and records where each one starts.
func (m *Viewer) refresh() {
	if !m.ready {
		return
	}
	width := m.Width - 6
	if width < 20 {
		width = 0
	}

	var sb strings.Builder
	m.offsets = m.offsets[:0]
	line := 0
	for i, b := range m.Doc.Blocks {
		card := RenderBlock(b, width, i == m.Active)
		m.offsets = append(m.offsets, line)
		sb.WriteString(card)
		sb.WriteString("\n")
		line += lipgloss.Height(card)
	}
	m.Viewport.SetContent(sb.String())
}

func (m Viewer) header() string {
	var items []string
	for i, b := range m.Doc.Blocks {
		key := StyleMenuKey.Render(fmt.Sprintf("[%d]", i+1))
		if i == m.Active {
			items = append(items, StyleMenuItemActive.Render(key+" "+b.ID))
		} else {
			items = append(items, StyleMenuItem.Render(key+" "+b.ID))
		}
	}
	brand := StyleTitle.Render("SPAGEN ")
	bar := lipgloss.JoinHorizontal(lipgloss.Top, append([]string{brand}, items...)...)
	return StyleTopBar.Render(bar)
}

// View implements tea.Model.
func (m Viewer) View() string {
	if !m.ready {
		return "loading..."
	}
	help := StyleHelp.Render("tab/1-5 section • ↑/↓ scroll • c copy • q quit")
	footer := help
	if m.Status != "" {
		footer = m.Status + "  " + help
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), m.Viewport.View(), footer)
}
