package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opal-lang/idfilter/core/tokenfmt"
	"github.com/opal-lang/idfilter/pkgs/errors"
	"github.com/opal-lang/idfilter/runtime/scanner"
	"github.com/opal-lang/idfilter/runtime/watch"
)

// Exit code constants
const (
	ExitSuccess          = 0
	ExitInvalidArguments = 1
	ExitIOError          = 2
	ExitConfigError      = 3
	ExitOutputError      = 4
	ExitNotFound         = 5
)

// flags holds the raw command-line values shared by all subcommands.
type flags struct {
	format     string
	escapes    string
	configPath string
	digest     bool
	stats      bool
	watch      bool
	debug      bool
	noColor    bool
}

// streams carries the process streams so tests can substitute buffers.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, std streams) int {
	f := &flags{}
	rootCmd := newRootCommand(f, std)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(std.in)
	rootCmd.SetOut(std.out)
	rootCmd.SetErr(std.err)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	FormatError(std.err, err, ShouldUseColor(std.err, f.noColor))
	return exitCode(err)
}

func newRootCommand(f *flags, std streams) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "idfilter [file]",
		Short: "Print the identifiers of C-like source, skipping comments and literals",
		Long: `idfilter scans C-like source text and prints every identifier on its own
line, in input order. Identifiers inside block comments, line comments,
string literals and character literals are skipped.

The input is the named file, or standard input when no file (or "-") is given.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runScan(cmd, f, std, path)
		},
	}

	rootCmd.PersistentFlags().StringVar(&f.escapes, "escapes", "abort", "Backslashes in string/char literals: 'abort' the literal or 'skip' the escaped byte")
	rootCmd.PersistentFlags().StringVar(&f.configPath, "config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().BoolVar(&f.debug, "debug", false, "Enable debug output (also IDFILTER_DEBUG)")
	rootCmd.PersistentFlags().BoolVar(&f.noColor, "no-color", false, "Disable colored output")

	rootCmd.Flags().StringVar(&f.format, "format", "text", "Output format: text, json, yaml or cbor")
	rootCmd.Flags().BoolVar(&f.digest, "digest", false, "Append the BLAKE2b digest of the token stream")
	rootCmd.Flags().BoolVar(&f.stats, "stats", false, "Print per-construct match statistics to stderr")
	rootCmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "Rescan the file whenever it changes")

	rootCmd.AddCommand(newFindCommand(f, std))
	rootCmd.AddCommand(newVersionCommand(std))
	return rootCmd
}

// runScan is the default command: scan one input and write its tokens.
func runScan(cmd *cobra.Command, f *flags, std streams, path string) error {
	s, err := resolveSettings(cmd, f)
	if err != nil {
		return err
	}
	logger := newLogger(std.err, f.debug)
	logger.Debug("settings resolved", "config", f.configPath, "format", string(s.format), "escapes", s.escapes.String())

	if s.watch {
		if path == "-" {
			return &CLIError{
				Type:    "usage",
				Message: "--watch needs a file argument",
				Hint:    "Run 'idfilter --watch path/to/file.c'",
			}
		}
		rescans := 0
		return watch.File(cmd.Context(), path, logger, func(src []byte) error {
			err := scanAndWrite(s, std, logger, path, src, rescans > 0)
			rescans++
			return err
		})
	}

	src, err := readInput(path, std.in)
	if err != nil {
		return err
	}
	logger.Debug("input loaded", "source", path, "bytes", len(src))
	return scanAndWrite(s, std, logger, path, src, false)
}

// scanAndWrite scans src and writes one token stream or document. In watch
// mode every rescan after the first is written as a continued document.
func scanAndWrite(s settings, std streams, logger *slog.Logger, path string, src []byte, continued bool) error {
	w, err := tokenfmt.NewWriter(std.out, tokenfmt.Options{
		Format:    s.format,
		Source:    path,
		Digest:    s.digest,
		Continued: continued,
	})
	if err != nil {
		return errors.NewOutputError(string(s.format), err)
	}

	sc := newScanner(s, logger)
	sc.Scan(src, w.Emit)

	if err := w.Close(); err != nil {
		return errors.NewOutputError(string(s.format), err)
	}
	logger.Debug("tokens written", "source", path, "format", string(s.format), "count", w.Count())
	if s.stats {
		writeStats(std.err, sc.Telemetry())
	}
	return nil
}

func newScanner(s settings, logger *slog.Logger) *scanner.Scanner {
	opts := []scanner.Option{
		scanner.WithEscapePolicy(s.escapes),
		scanner.WithLogger(logger),
	}
	if s.stats {
		opts = append(opts, scanner.WithTelemetry())
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		opts = append(opts, scanner.WithDebug())
	}
	return scanner.New(opts...)
}

// writeStats prints one line per construct in priority order.
func writeStats(w io.Writer, stats map[scanner.Kind]scanner.KindTelemetry) {
	_, _ = fmt.Fprintf(w, "%-16s %8s %10s\n", "KIND", "MATCHES", "BYTES")
	for _, k := range scanner.Kinds() {
		stat := stats[k]
		_, _ = fmt.Fprintf(w, "%-16s %8d %10d\n", k, stat.Count, stat.Bytes)
	}
}

func exitCode(err error) int {
	switch errors.TypeOf(err) {
	case errors.ErrInputRead, errors.ErrFileNotFound:
		return ExitIOError
	case errors.ErrConfig:
		return ExitConfigError
	case errors.ErrOutput:
		return ExitOutputError
	case errors.ErrNotFound:
		return ExitNotFound
	default:
		return ExitInvalidArguments
	}
}
