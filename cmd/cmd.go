// Package cmd implements the spagen subcommands. main parses the top-level
// command and hands the remaining arguments to the Run functions here.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"grimm.is/spagen/internal/generator"
	"grimm.is/spagen/internal/i18n"
	"grimm.is/spagen/internal/logging"
)

// Printer is the global message printer for the CLI
var Printer = i18n.NewCLIPrinter()

// Stdout receives rendered output; logs and notices go to stderr.
var Stdout io.Writer = os.Stdout

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

// logFlags are shared by every subcommand.
type logFlags struct {
	level string
	json  bool
}

func (lf *logFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&lf.level, "log-level", "warn", "Log level (debug, info, warn, error)")
	fs.BoolVar(&lf.json, "log-json", false, "Write logs as JSON")
}

// setup installs the default logger and returns one scoped to component.
func (lf *logFlags) setup(component string) (*logging.Logger, error) {
	level, err := logging.ParseLevel(lf.level)
	if err != nil {
		return nil, err
	}
	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.JSON = lf.json
	logging.SetDefault(logging.New(cfg))
	return logging.WithComponent(component), nil
}

// flagName turns a snake_case field name into a dashed flag name.
func flagName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

// writeSecretFile writes output that contains the preshared key.
func writeSecretFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// localizedError carries a translated message while keeping the cause
// available to errors.Is and errors.As.
type localizedError struct {
	msg string
	err error
}

func (e *localizedError) Error() string { return e.msg }
func (e *localizedError) Unwrap() error { return e.err }

func missingError(err *generator.MissingFieldsError) error {
	return &localizedError{
		msg: Printer.Sprintf(i18n.MsgMissingFields, strings.Join(err.Fields, ", ")),
		err: err,
	}
}
