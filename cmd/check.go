package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"grimm.is/spagen/internal/brand"
	"grimm.is/spagen/internal/config"
	"grimm.is/spagen/internal/generator"
	"grimm.is/spagen/internal/i18n"
	"grimm.is/spagen/internal/secret"
	"grimm.is/spagen/internal/validation"
)

// RunCheck validates a values file: required fields must be present and
// names must survive quoting. Address syntax is not checked.
func RunCheck(configFile string, verbose bool) error {
	return runCheck(Stdout, configFile, verbose, nil)
}

func runCheck(w io.Writer, configFile string, verbose bool, lookup config.LookupFunc) error {
	if len(configFile) == 0 {
		return fmt.Errorf("usage: %s check [-v] <values-file>\nExample: %s check -v %s", brand.BinaryName, brand.BinaryName, brand.DefaultConfigPath())
	}

	v, info, err := loadValues(valueSources{File: configFile, Lookup: lookup})
	if err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	if _, err := v.Validate(); err != nil {
		var missing *generator.MissingFieldsError
		if errors.As(err, &missing) {
			return missingError(missing)
		}
		return err
	}

	warnings := validation.Lint(v)

	fmt.Fprintln(w, Printer.Sprintf(i18n.MsgValid))
	fmt.Fprintf(w, "Format: %s\n", info.Format)
	fmt.Fprintf(w, "Network statements: %d\n", generator.StatementCount(v))
	if len(info.Env) > 0 {
		fmt.Fprintf(w, "Environment overrides: %s\n", strings.Join(info.Env, ", "))
	}

	for _, warn := range warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}

	if verbose {
		fmt.Fprintln(w)
		printSummary(w, v.WithDefaults())
	}

	return nil
}

// printSummary lists every field with its effective value. The preshared
// key is shown as a fingerprint.
func printSummary(out io.Writer, v generator.FormValues) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)

	fmt.Fprintln(w, "FIELD\tVALUE\tSOURCE")
	for _, f := range generator.Fields {
		val := f.Get(&v)
		source := "set"
		if !f.Required && val == f.Default {
			source = "default"
		}
		switch {
		case f.Key == "ipsecPsk":
			val = "blake2b:" + secret.Fingerprint(val)
		case strings.Contains(val, "\n"):
			val = fmt.Sprintf("%d lines", len(generator.SplitRoutes(val)))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", f.Key, val, source)
	}
	w.Flush()
}
