package main

import (
	"errors"
	"flag"
	"os"

	"grimm.is/spagen/cmd"
	"grimm.is/spagen/internal/brand"
	"grimm.is/spagen/internal/i18n"
	"grimm.is/spagen/internal/secret"
)

var printer = i18n.NewCLIPrinter()

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "render":
		// Delegate to cmd.RunRender for the per-field flags
		if err := cmd.RunRender(os.Args[2:]); err != nil {
			exitOnFlagHelp(err)
			printer.Fprintf(os.Stderr, "Render failed: %v\n", err)
			os.Exit(1)
		}

	case "form":
		if err := cmd.RunForm(os.Args[2:]); err != nil {
			exitOnFlagHelp(err)
			printer.Fprintf(os.Stderr, "Form failed: %v\n", err)
			os.Exit(1)
		}

	case "serve":
		if err := cmd.RunServe(os.Args[2:]); err != nil {
			exitOnFlagHelp(err)
			printer.Fprintf(os.Stderr, "Server failed: %v\n", err)
			os.Exit(1)
		}

	case "init":
		initFlags := flag.NewFlagSet("init", flag.ExitOnError)
		force := initFlags.Bool("force", false, "Overwrite an existing file")
		initFlags.Parse(os.Args[2:])

		path := brand.ConfigFileName
		if len(initFlags.Args()) > 0 {
			path = initFlags.Arg(0)
		}
		if err := cmd.RunInit(path, *force); err != nil {
			printer.Fprintf(os.Stderr, "Init failed: %v\n", err)
			os.Exit(1)
		}

	case "check":
		checkFlags := flag.NewFlagSet("check", flag.ExitOnError)
		verbose := checkFlags.Bool("verbose", false, "Verbose output")
		checkFlags.BoolVar(verbose, "v", false, "Verbose output (short)")
		configFile := checkFlags.String("file", "", "Values file")
		checkFlags.StringVar(configFile, "f", "", "Values file (short)")
		checkFlags.Parse(os.Args[2:])

		if *configFile == "" && len(checkFlags.Args()) > 0 {
			*configFile = checkFlags.Arg(0)
		}
		if *configFile == "" {
			*configFile = brand.DefaultConfigPath()
		}

		if err := cmd.RunCheck(*configFile, *verbose); err != nil {
			printer.Fprintf(os.Stderr, "Check failed: %v\n", err)
			os.Exit(1)
		}

	case "diff":
		diffFlags := flag.NewFlagSet("diff", flag.ExitOnError)
		configFile := diffFlags.String("file", "", "Values file")
		diffFlags.StringVar(configFile, "f", "", "Values file (short)")
		against := diffFlags.String("against", "", "Existing FortiOS script to compare with")
		diffFlags.Parse(os.Args[2:])

		if *configFile == "" || *against == "" {
			printer.Println("Usage: " + brand.BinaryName + " diff -f <values-file> --against <script>")
			os.Exit(1)
		}
		if err := cmd.RunDiff(*configFile, *against); err != nil {
			if errors.Is(err, cmd.ErrDiffers) {
				os.Exit(2)
			}
			printer.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

	case "secret":
		secretFlags := flag.NewFlagSet("secret", flag.ExitOnError)
		length := secretFlags.Int("length", secret.DefaultLength, "Key length")
		secretFlags.IntVar(length, "n", secret.DefaultLength, "Key length (short)")
		secretFlags.Parse(os.Args[2:])

		if err := cmd.RunSecret(*length); err != nil {
			printer.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

	case "version":
		// Print version info
		printer.Printf("%s version %s\n", brand.Name, brand.Version)
		printer.Printf("Build: %s\n", brand.BuildTime)
		printer.Printf("Commit: %s\n", brand.GitCommit)

	case "help", "-h", "--help":
		printUsage()

	default:
		printer.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// exitOnFlagHelp exits cleanly after -h on a ContinueOnError flag set.
func exitOnFlagHelp(err error) {
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
}

func printUsage() {
	printer.Printf(`%s - %s

Usage:
  %s <command> [options]

Commands:
  render    Render the FortiOS CLI to stdout
            Options: -f <file>, --json, --pretty, --copy, --section <id>,
                     --out (-o) <file>, --generate-psk, --<field> <value>
  form      Fill in the values interactively, then view and copy the result
            Options: -f <file>, --out <file>
  serve     Serve the HTTP API and live preview
            Options: --listen (-l) <addr>, --max-body <bytes>
  init      Write a starter values file
            Options: --force
  check     Validate a values file
            Options: --verbose (-v), -f <file>
  diff      Compare the rendered CLI with an existing script
            Options: -f <file>, --against <script>
  secret    Print a random preshared key
            Options: --length (-n) <n>
  version   Show version information

Values are read from the file, then %s_<FIELD> environment variables,
then --<field> flags; later sources win.

Examples:
  %s init site.hcl
  %s render -f site.hcl --section bgp
  %s_IPSEC_PSK=... %s render -f site.hcl --copy
  %s serve --listen :8080
`, brand.Name, brand.Description, brand.BinaryName, brand.ConfigEnvPrefix,
		brand.BinaryName, brand.BinaryName, brand.ConfigEnvPrefix, brand.BinaryName, brand.BinaryName)
}
