package main

import (
	"fmt"

	"github.com/itchio/headway/united"
	"github.com/spf13/cobra"

	"github.com/meigma/flatpack"
)

type unpackOptions struct {
	output    string
	collision string
}

func newUnpackCmd(global *globalOptions) *cobra.Command {
	opts := &unpackOptions{}

	cmd := &cobra.Command{
		Use:   "unpack [flags] <ARCHIVE> -o <DIR>",
		Short: "Extract every file of ARCHIVE into DIR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collisions, err := parseCollisionPolicy(opts.collision)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			var last flatpack.ProgressEvent
			err = flatpack.Unpack(cmd.Context(), args[0], opts.output,
				flatpack.UnpackWithCollisionPolicy(collisions),
				flatpack.UnpackWithLogger(global.logger),
				flatpack.UnpackWithProgress(func(ev flatpack.ProgressEvent) { last = ev }),
			)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "unpacked %d files from %s into %s (%s)\n",
				last.EntriesDone, args[0], opts.output, united.FormatBytes(int64(last.BytesDone))) //nolint:gosec // bounded by the archive size
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "directory to extract into")
	cmd.Flags().StringVar(&opts.collision, "on-collision", "overwrite", "duplicate entry names: overwrite or reject")
	_ = cmd.MarkFlagRequired("output") //nolint:errcheck // flag is defined above
	return cmd
}
