package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/hashintern"
	"github.com/hupe1980/hashintern/internal/fs"
	"github.com/hupe1980/hashintern/internal/mmap"
	"github.com/hupe1980/hashintern/internal/resource"
	"github.com/hupe1980/hashintern/kind"
	"github.com/hupe1980/hashintern/snapshot"
)

func newSnapshotCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Write and inspect snapshots",
	}
	cmd.AddCommand(newSnapshotWriteCommand(v))
	cmd.AddCommand(newSnapshotDumpCommand(v))
	return cmd
}

func newSnapshotWriteCommand(v *viper.Viper) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "write [files...]",
		Short: "Intern every line and write the result as a snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}

			in := hashintern.NewString(cfg.internerOptions(nil)...)
			if _, err := internLines(cmd, in, args, cfg.Parallel); err != nil {
				return err
			}

			limiter := resource.NewIOLimiter(cfg.IOLimit)
			err = fs.WriteFileAtomic(fs.Default, output, 0o644, func(w io.Writer) error {
				return in.WriteSnapshot(limiter.Writer(cmd.Context(), w), snapshot.WithCompression(cfg.Compression))
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s entries to %s\n", humanize.Comma(int64(in.Len())), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "hashintern.snap", "snapshot file to write")
	return cmd
}

func newSnapshotDumpCommand(v *viper.Viper) *cobra.Command {
	var entries bool

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the header and optionally the entries of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}

			m, err := mmap.Open(args[0])
			if err != nil {
				return err
			}
			defer m.Close()

			s, err := snapshot.Decode(m.Bytes())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version:     %d\n", s.Version)
			fmt.Fprintf(out, "compression: %s\n", s.Compression)
			fmt.Fprintf(out, "entries:     %s\n", humanize.Comma(int64(len(s.Entries))))
			fmt.Fprintf(out, "raw size:    %s\n", humanize.IBytes(uint64(s.RawSize)))    //nolint:gosec // non-negative
			fmt.Fprintf(out, "stored size: %s\n", humanize.IBytes(uint64(s.StoredSize))) //nolint:gosec // non-negative

			if !entries {
				return nil
			}

			// Rebuild the interner to verify the entries and show their symbols.
			in, err := hashintern.FromSnapshot[string, kind.String](s, cfg.internerOptions(nil)...)
			if err != nil {
				return err
			}
			for sym, val := range in.All() {
				fmt.Fprintf(out, "%d\t%q\n", uint32(sym), val)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&entries, "entries", false, "print every symbol and value")
	return cmd
}
