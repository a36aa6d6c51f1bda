package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"grimm.is/spagen/internal/generator"
)

// RenderBlock draws one block as a titled card. A width of zero leaves the
// card as wide as its longest line.
func RenderBlock(b generator.Block, width int, active bool) string {
	card := StyleCard
	if active {
		card = StyleActiveCard
	}
	if width > 0 {
		card = card.Width(width)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		StyleTitle.Render(b.Title),
		StyleSubtitle.Render(b.Description),
		"",
		StyleCode.Render(b.Content),
	)
	return card.Render(body)
}

// RenderCards draws every block of doc, one card per block.
func RenderCards(doc generator.Document, width int) string {
	cards := make([]string, len(doc.Blocks))
	for i, b := range doc.Blocks {
		cards[i] = RenderBlock(b, width, false)
	}
	return strings.Join(cards, "\n")
}
