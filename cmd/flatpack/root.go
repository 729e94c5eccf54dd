package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/meigma/flatpack"
)

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	verbose bool
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "flatpack",
		Short: "Bundle a flat directory of files into a single archive and back",
		Long: `flatpack packs the regular files directly inside a directory into one
archive file, and unpacks such an archive into a directory.

An archive stores only base names, sizes, and contents. Subdirectories are
not descended into.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			// logs go to stderr so stdout carries only what was asked for
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return errors.New("a command is required: pack, unpack, or list")
		},
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every entry to stderr")

	cmd.AddCommand(
		newPackCmd(opts),
		newUnpackCmd(opts),
		newListCmd(opts),
	)
	return cmd
}

func parseOrder(s string) (flatpack.Order, error) {
	switch s {
	case "sorted":
		return flatpack.OrderSorted, nil
	case "insertion":
		return flatpack.OrderInsertion, nil
	default:
		return 0, fmt.Errorf("invalid --order %q: want sorted or insertion", s)
	}
}

func parseCollisionPolicy(s string) (flatpack.CollisionPolicy, error) {
	switch s {
	case "overwrite":
		return flatpack.CollisionOverwrite, nil
	case "reject":
		return flatpack.CollisionReject, nil
	default:
		return 0, fmt.Errorf("invalid --on-collision %q: want overwrite or reject", s)
	}
}
