package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"grimm.is/spagen/internal/config"
	"grimm.is/spagen/internal/generator"
	"grimm.is/spagen/internal/i18n"
)

// ErrDiffers is returned by RunDiff when the scripts differ.
var ErrDiffers = errors.New("configuration differs")

// RunDiff compares the rendered configuration against an existing script,
// for example one saved from an earlier run.
func RunDiff(configFile, against string) error {
	return runDiff(Stdout, configFile, against, nil)
}

func runDiff(w io.Writer, configFile, against string, lookup config.LookupFunc) error {
	v, _, err := loadValues(valueSources{File: configFile, Lookup: lookup})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	doc, err := generator.Generate(v)
	if err != nil {
		var missing *generator.MissingFieldsError
		if errors.As(err, &missing) {
			return missingError(missing)
		}
		return err
	}

	existing, err := os.ReadFile(against)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", against, err)
	}

	rendered := normalizeScript(doc.FullConfig)
	current := normalizeScript(string(existing))

	if rendered == current {
		fmt.Fprintln(w, Printer.Sprintf(i18n.MsgNoDifferences))
		return nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(current),
		B:        difflib.SplitLines(rendered),
		FromFile: against,
		ToFile:   "Rendered",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return err
	}
	fmt.Fprint(w, text)

	return ErrDiffers
}

// normalizeScript strips CRLF line endings and trailing whitespace so a
// script pasted through a terminal compares equal to the rendered one.
func normalizeScript(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}
