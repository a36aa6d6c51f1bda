package cmd

import (
	"errors"
	"fmt"
	"os"

	"grimm.is/spagen/internal/brand"
	"grimm.is/spagen/internal/config"
	"grimm.is/spagen/internal/generator"
	"grimm.is/spagen/internal/i18n"
)

// RunInit writes a starter values file with every default filled in.
func RunInit(path string, force bool) error {
	if path == "" {
		path = brand.ConfigFileName
	}

	if err := config.SaveTemplate(path, generator.DefaultValues(), force); err != nil {
		if errors.Is(err, config.ErrExists) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		return err
	}

	fmt.Fprintln(os.Stderr, Printer.Sprintf(i18n.MsgWroteTemplate, path))
	return nil
}
