package cmd

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"grimm.is/spagen/internal/generator"
	"grimm.is/spagen/internal/i18n"
	"grimm.is/spagen/internal/logging"
	"grimm.is/spagen/internal/metrics"
	"grimm.is/spagen/internal/secret"
	"grimm.is/spagen/internal/tui"
)

// RenderOptions controls RunRender output.
type RenderOptions struct {
	File        string
	JSON        bool
	Pretty      bool
	Copy        bool
	Section     string
	Out         string
	GeneratePSK bool
	Flags       generator.FormValues
}

// ParseRenderArgs parses the render subcommand flags.
func ParseRenderArgs(args []string) (RenderOptions, *logFlags, error) {
	var opts RenderOptions
	lf := &logFlags{}

	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.StringVar(&opts.File, "file", "", "Values file (.hcl, .json, .yaml)")
	fs.StringVar(&opts.File, "f", "", "Values file (short)")
	fs.BoolVar(&opts.JSON, "json", false, "Print the rendered document as JSON")
	fs.BoolVar(&opts.Pretty, "pretty", false, "Print each section as a styled card")
	fs.BoolVar(&opts.Copy, "copy", false, "Copy the full configuration to the clipboard")
	fs.StringVar(&opts.Section, "section", "", "Print one section: "+strings.Join(generator.BlockIDs, ", "))
	fs.StringVar(&opts.Out, "out", "", "Write output to a file instead of stdout")
	fs.StringVar(&opts.Out, "o", "", "Output file (short)")
	fs.BoolVar(&opts.GeneratePSK, "generate-psk", false, "Generate the preshared key when none is given")
	flags := registerFieldFlags(fs)
	lf.register(fs)

	if err := fs.Parse(args); err != nil {
		return opts, nil, err
	}
	if fs.NArg() > 0 && opts.File == "" {
		opts.File = fs.Arg(0)
	}
	opts.Flags = *flags
	return opts, lf, nil
}

// RunRender renders the configuration described by args.
func RunRender(args []string) error {
	opts, lf, err := ParseRenderArgs(args)
	if err != nil {
		return err
	}
	logger, err := lf.setup("render")
	if err != nil {
		return err
	}

	v, info, err := loadValues(valueSources{File: opts.File, Flags: opts.Flags})
	if err != nil {
		return err
	}
	if info.Path != "" {
		logger.Info("loaded values", "path", info.Path, "format", string(info.Format))
	}
	if len(info.Env) > 0 {
		logger.Info("applied environment overrides", "fields", strings.Join(info.Env, ","))
	}

	return Render(v, opts)
}

// Render validates v and writes it in the requested form.
func Render(v generator.FormValues, opts RenderOptions) error {
	logger := logging.WithComponent("render")

	if opts.GeneratePSK && strings.TrimSpace(v.IPsecPSK) == "" {
		psk, err := secret.Generate(secret.DefaultLength)
		if err != nil {
			return err
		}
		v.IPsecPSK = psk
		metrics.Get().SecretsGenerated.Inc()
		fmt.Fprintln(os.Stderr, "Generated preshared key; it is included in the output.")
	}

	start := time.Now()
	doc, err := generator.Generate(v)
	if err != nil {
		var missing *generator.MissingFieldsError
		if errors.As(err, &missing) {
			metrics.Get().RecordRenderFailure(metrics.SourceCLI, "missing_fields")
			return missingError(missing)
		}
		return err
	}
	statements := generator.StatementCount(v)
	metrics.Get().RecordRender(metrics.SourceCLI, statements, time.Since(start).Seconds())
	logger.Debug("rendered configuration",
		"sections", len(doc.Blocks),
		"network_statements", statements,
		"psk_fingerprint", secret.Fingerprint(v.IPsecPSK),
	)

	out, err := formatDocument(doc, opts)
	if err != nil {
		return err
	}

	if opts.Copy {
		if err := copyToClipboard(doc.FullConfig); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintln(os.Stderr, Printer.Sprintf(i18n.MsgCopied))
	}

	if opts.Out != "" {
		if err := writeSecretFile(opts.Out, out); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, Printer.Sprintf(i18n.MsgRendered, len(doc.Blocks), statements))
		return nil
	}

	fmt.Fprint(Stdout, out)
	return nil
}

// formatDocument produces the bytes written for doc. Plain output ends
// with a single newline so it pastes cleanly.
func formatDocument(doc generator.Document, opts RenderOptions) (string, error) {
	blocks := doc.Blocks
	if opts.Section != "" {
		b, ok := doc.Block(opts.Section)
		if !ok {
			return "", fmt.Errorf("unknown section %q (want one of %s)", opts.Section, strings.Join(generator.BlockIDs, ", "))
		}
		blocks = []generator.Block{b}
	}

	switch {
	case opts.JSON:
		var payload any = doc
		if opts.Section != "" {
			payload = blocks[0]
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case opts.Pretty:
		return tui.RenderCards(generator.Document{Blocks: blocks}, 0) + "\n", nil
	}

	if opts.Section != "" {
		return blocks[0].Content + "\n", nil
	}
	return doc.FullConfig + "\n", nil
}
