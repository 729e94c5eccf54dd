package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/itchio/headway/united"
	"github.com/opencontainers/go-digest"
	"github.com/spf13/cobra"

	"github.com/meigma/flatpack"
)

type packOptions struct {
	output    string
	order     string
	collision string
}

func newPackCmd(global *globalOptions) *cobra.Command {
	opts := &packOptions{}

	cmd := &cobra.Command{
		Use:   "pack [flags] <DIR> -o <ARCHIVE>",
		Short: "Pack the regular files directly inside DIR into an archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := parseOrder(opts.order)
			if err != nil {
				return err
			}
			collisions, err := parseCollisionPolicy(opts.collision)
			if err != nil {
				return err
			}
			// past this point failures are not usage mistakes
			cmd.SilenceUsage = true

			archive := flatpack.NewArchive(
				flatpack.WithOrder(order),
				flatpack.WithCollisionPolicy(collisions),
				flatpack.WithLogger(global.logger),
			)
			if err := collectFiles(archive, args[0], global); err != nil {
				return err
			}

			if err := os.MkdirAll(filepath.Dir(opts.output), 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			size, err := archive.Pack(cmd.Context(), opts.output)
			if err != nil {
				return err
			}

			dgst, err := archiveDigest(opts.output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "packed %d files into %s (%s, %s)\n",
				archive.Len(), opts.output, united.FormatBytes(size), dgst)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "archive file to write")
	cmd.Flags().StringVar(&opts.order, "order", "sorted", "entry order: sorted or insertion")
	cmd.Flags().StringVar(&opts.collision, "on-collision", "overwrite", "duplicate base names: overwrite or reject")
	_ = cmd.MarkFlagRequired("output") //nolint:errcheck // flag is defined above
	return cmd
}

// collectFiles puts every regular file directly inside dir. Subdirectories
// and other non-regular entries are skipped.
func collectFiles(archive *flatpack.Archive, dir string, global *globalOptions) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read source directory: %w", err)
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		err := archive.Put(path)
		if errors.Is(err, flatpack.ErrNotFound) {
			global.logger.Debug("skipping non-regular file", "path", path)
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// archiveDigest returns the sha256 digest of the file at path.
func archiveDigest(path string) (digest.Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return digest.Canonical.FromReader(f)
}
