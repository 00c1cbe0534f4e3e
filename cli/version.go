package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"

	"github.com/opal-lang/idfilter/core/config"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "v0.1.0"

func newVersionCommand(std streams) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the idfilter version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !semver.IsValid(version) {
				return &CLIError{
					Type:    "usage",
					Message: fmt.Sprintf("build version %q is not a semantic version", version),
					Hint:    "Rebuild with -ldflags \"-X main.version=vMAJOR.MINOR.PATCH\"",
				}
			}
			_, err := fmt.Fprintf(std.out, "idfilter %s (config %s)\n", semver.Canonical(version), config.SupportedMajor)
			return err
		},
	}
}
