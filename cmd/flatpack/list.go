package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/itchio/headway/united"
	"github.com/spf13/cobra"

	"github.com/meigma/flatpack"
)

func newListCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <ARCHIVE>",
		Short: "List the entries of ARCHIVE without extracting them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			entries, err := flatpack.List(cmd.Context(), args[0], flatpack.UnpackWithLogger(global.logger))
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSIZE\tOFFSET")
			var total uint64
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%d\t%d\n", e.Name, e.Size, e.Offset)
				total += e.Size
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d files, %s of content\n", len(entries), united.FormatBytes(int64(total))) //nolint:gosec // bounded by the archive size
			return nil
		},
	}
}
