package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kajjjak/ATM/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("atm-cpt", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
atm-cpt - Enumerate the hyperpartitions of a conditional parameter tree.

Usage:
  atm-cpt [options] METHOD
  atm-cpt [options] -all
  atm-cpt [options] -check

Arguments:
  METHOD
    A method code registered from the methods path, or the path to a
    single .hcl, .json, .yaml or .yml method file.

Options:
`)
		flagSet.PrintDefaults()
	}

	methodsPathFlag := flagSet.String("methods", "methods", "Path to the directory containing method definitions.")
	mFlag := flagSet.String("m", "", "Path to the directory containing method definitions (shorthand).")
	allFlag := flagSet.Bool("all", false, "Enumerate every registered method.")
	checkFlag := flagSet.Bool("check", false, "Validate the registered methods without enumerating them.")
	outputFlag := flagSet.String("output", "text", "Result format. Options: 'text' or 'json'.")
	countFlag := flagSet.Bool("count", false, "Print only the number of hyperpartitions per method.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	maxDepthFlag := flagSet.Int("max-depth", 0, "Largest number of categoricals one hyperpartition may fix. 0 uses the built-in default.")
	maxPartitionsFlag := flagSet.Int("max-partitions", 0, "Fail when a method has more hyperpartitions than this. 0 is unlimited.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	methodsPath := *methodsPathFlag
	if *mFlag != "" {
		methodsPath = *mFlag
	}

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected one method, got %d: %s", flagSet.NArg(), strings.Join(flagSet.Args(), " "))}
	}
	method := flagSet.Arg(0)
	slog.Debug("Method determined.", "method", method, "methods_path", methodsPath)

	if method == "" && !*allFlag && !*checkFlag {
		slog.Debug("No method provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(app.Config{
		MethodsPath:   methodsPath,
		Method:        method,
		All:           *allFlag,
		Check:         *checkFlag,
		CountOnly:     *countFlag,
		Output:        strings.ToLower(*outputFlag),
		LogFormat:     strings.ToLower(*logFormatFlag),
		LogLevel:      strings.ToLower(*logLevelFlag),
		MaxDepth:      *maxDepthFlag,
		MaxPartitions: *maxPartitionsFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
