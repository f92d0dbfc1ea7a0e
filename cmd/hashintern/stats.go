package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/hashintern"
)

func newStatsCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [files...]",
		Short: "Intern every line and print deduplication statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}

			metrics := &hashintern.BasicMetricsCollector{}
			in := hashintern.NewString(cfg.internerOptions(metrics)...)

			ls, err := internLines(cmd, in, args, cfg.Parallel)
			if err != nil {
				return err
			}

			st := in.Stats()
			ms := metrics.GetStats()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "hasher:      %s\n", cfg.Hasher.Name())
			fmt.Fprintf(out, "lines:       %s\n", humanize.Comma(int64(ls.Lines)))
			fmt.Fprintf(out, "distinct:    %s\n", humanize.Comma(int64(st.Entries)))
			fmt.Fprintf(out, "duplicates:  %s\n", humanize.Comma(ms.InternHits))
			fmt.Fprintf(out, "refused:     %s\n", humanize.Comma(int64(ls.Refused)))
			fmt.Fprintf(out, "bytes used:  %s\n", humanize.IBytes(uint64(st.BytesUsed)))      //nolint:gosec // non-negative
			fmt.Fprintf(out, "reserved:    %s\n", humanize.IBytes(uint64(st.BytesReserved))) //nolint:gosec // non-negative
			fmt.Fprintf(out, "grows:       %d (arena %d, lookup %d)\n", ms.Growths, st.ArenaGrows, st.LookupGrows)
			fmt.Fprintf(out, "slots:       %s\n", humanize.Comma(int64(st.LookupSlots)))
			return nil
		},
	}
}
