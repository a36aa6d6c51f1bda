package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"grimm.is/spagen/internal/generator"
	"grimm.is/spagen/internal/i18n"
	"grimm.is/spagen/internal/metrics"
	"grimm.is/spagen/internal/tui"
)

// RunForm collects values interactively, then shows the result.
func RunForm(args []string) error {
	lf := &logFlags{}
	fs := flag.NewFlagSet("form", flag.ContinueOnError)
	file := fs.String("file", "", "Prefill from a values file")
	fs.StringVar(file, "f", "", "Prefill from a values file (short)")
	out := fs.String("out", "", "Also write the configuration to a file")
	lf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := lf.setup("form")
	if err != nil {
		return err
	}

	loaded, _, err := loadValues(valueSources{File: *file})
	if err != nil {
		return err
	}
	v := generator.DefaultValues().Merge(loaded)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generated, err := tui.RunForm(ctx, &v)
	if err != nil {
		return err
	}
	if generated {
		metrics.Get().SecretsGenerated.Inc()
		fmt.Fprintln(os.Stderr, "Generated preshared key.")
	}

	start := time.Now()
	doc, err := generator.Generate(v)
	if err != nil {
		var missing *generator.MissingFieldsError
		if errors.As(err, &missing) {
			return missingError(missing)
		}
		return err
	}
	metrics.Get().RecordRender(metrics.SourceForm, generator.StatementCount(v), time.Since(start).Seconds())
	logger.Debug("rendered configuration from form")

	if *out != "" {
		if err := writeSecretFile(*out, doc.FullConfig+"\n"); err != nil {
			return err
		}
	}

	copied, err := tui.RunViewer(ctx, doc)
	if err != nil {
		return err
	}
	if copied {
		fmt.Fprintln(os.Stderr, Printer.Sprintf(i18n.MsgCopied))
	}
	return nil
}
