package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/opal-lang/idfilter/core/tokenfmt"
	"github.com/opal-lang/idfilter/pkgs/errors"
	"github.com/opal-lang/idfilter/runtime/lexer"
	"github.com/opal-lang/idfilter/runtime/lookup"
)

func newFindCommand(f *flags, std streams) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "find <name> [file]",
		Short: "Count an identifier, or suggest close matches when it is absent",
		Long: `find scans the input like the root command, then reports how often <name>
occurs as an identifier. Occurrences inside comments and literals do not
count. When <name> never occurs, up to --limit identifiers that contain its
letters in order (ignoring case) are suggested, closest first.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 2 {
				path = args[1]
			}
			return runFind(cmd, f, std, args[0], path, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "Maximum number of suggestions (0 for no limit)")
	return cmd
}

func runFind(cmd *cobra.Command, f *flags, std streams, name, path string, limit int) error {
	if !lexer.IsIdentifier(name) {
		return &CLIError{
			Type:    "usage",
			Message: fmt.Sprintf("%q is not an identifier", name),
			Hint:    "Identifiers match [A-Za-z_][A-Za-z0-9_]*",
		}
	}

	s, err := resolveSettings(cmd, f)
	if err != nil {
		return err
	}
	logger := newLogger(std.err, f.debug)

	src, err := readInput(path, std.in)
	if err != nil {
		return err
	}

	ix := lookup.NewIndex()
	newScanner(s, logger).Scan(src, ix.Add)
	logger.Debug("index built", "source", path, "distinct", len(ix.Names()))

	res, err := lookup.Find(ix, name, limit)
	if err != nil {
		return err
	}
	if err := writeFindResult(std.out, res); err != nil {
		return errors.NewOutputError(string(tokenfmt.FormatText), err)
	}
	return nil
}

func writeFindResult(w io.Writer, res lookup.Result) error {
	if res.Count > 0 {
		_, err := fmt.Fprintf(w, "%s\t%d\n", res.Name, res.Count)
		return err
	}
	if _, err := fmt.Fprintf(w, "%s not found; did you mean:\n", res.Name); err != nil {
		return err
	}
	for _, sg := range res.Suggestions {
		if _, err := fmt.Fprintf(w, "  %s\t%d\n", sg.Name, sg.Count); err != nil {
			return err
		}
	}
	return nil
}
