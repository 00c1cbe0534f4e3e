package main

import (
	"github.com/spf13/cobra"

	"github.com/opal-lang/idfilter/core/config"
	"github.com/opal-lang/idfilter/core/tokenfmt"
	"github.com/opal-lang/idfilter/pkgs/errors"
	"github.com/opal-lang/idfilter/runtime/lexer"
)

// settings is the effective configuration of one invocation.
type settings struct {
	format  tokenfmt.Format
	escapes lexer.EscapePolicy
	digest  bool
	stats   bool
	watch   bool
}

// resolveSettings merges the configuration file (if any) with the flags.
// A flag given explicitly on the command line wins over the file.
func resolveSettings(cmd *cobra.Command, f *flags) (settings, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return settings{}, errors.NewConfigError(f.configPath, err)
		}
		cfg = loaded
	}

	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}
	if changed("format") {
		cfg.Format = f.format
	}
	if changed("escapes") {
		cfg.Escapes = f.escapes
	}
	if changed("digest") {
		cfg.Digest = f.digest
	}
	if changed("stats") {
		cfg.Stats = f.stats
	}

	format, err := tokenfmt.ParseFormat(cfg.Format)
	if err != nil {
		return settings{}, &CLIError{Type: "usage", Message: err.Error(), Hint: "Use --format text, json, yaml or cbor"}
	}
	escapes, err := lexer.ParseEscapePolicy(cfg.Escapes)
	if err != nil {
		return settings{}, &CLIError{Type: "usage", Message: err.Error(), Hint: "Use --escapes abort or --escapes skip"}
	}

	return settings{
		format:  format,
		escapes: escapes,
		digest:  cfg.Digest,
		stats:   cfg.Stats,
		watch:   f.watch,
	}, nil
}
