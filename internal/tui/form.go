package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"grimm.is/spagen/internal/generator"
	"grimm.is/spagen/internal/secret"
)

// RunForm prompts for every form value, starting from the contents of v.
// A blank preshared key is replaced with a generated one; the returned
// bool reports whether that happened.
func RunForm(ctx context.Context, v *generator.FormValues) (bool, error) {
	form, err := AutoForm(v)
	if err != nil {
		return false, err
	}
	if err := form.RunWithContext(ctx); err != nil {
		return false, fmt.Errorf("form: %w", err)
	}
	return FillSecret(v)
}

// FillSecret generates a preshared key when v has none.
func FillSecret(v *generator.FormValues) (bool, error) {
	if strings.TrimSpace(v.IPsecPSK) != "" {
		return false, nil
	}
	psk, err := secret.Generate(secret.DefaultLength)
	if err != nil {
		return false, err
	}
	v.IPsecPSK = psk
	return true, nil
}

// RunViewer shows doc full-screen until the user quits. It reports whether
// the configuration was copied.
func RunViewer(ctx context.Context, doc generator.Document) (bool, error) {
	p := tea.NewProgram(NewViewer(doc), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(Viewer); ok {
		return m.Copied, nil
	}
	return false, nil
}
