package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/hashintern"
)

func newRootCommand() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "hashintern",
		Short: "Intern text lines and inspect interner snapshots",
		Long: `hashintern interns the lines of its input and reports how well they
deduplicate.

Commands:
  stats      Intern lines and print statistics
  snapshot   Write and inspect snapshots`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	bindFlags(rootCmd, v)

	rootCmd.AddCommand(newStatsCommand(v))
	rootCmd.AddCommand(newSnapshotCommand(v))

	return rootCmd
}

// lineStats counts what happened while interning input lines.
type lineStats struct {
	Lines   int
	Refused int
}

// internLines interns every line of the named files, or of stdin when files
// is empty. Files are read concurrently but interned in argument order, so
// symbols do not depend on scheduling. Lines the interner refuses are
// counted and skipped; a capacity overflow stops the run.
func internLines(cmd *cobra.Command, in *hashintern.StringInterner, files []string, parallel int) (lineStats, error) {
	var st lineStats

	intern := func(line string) error {
		st.Lines++
		if _, err := in.GetOrIntern(line); err != nil {
			var encErr *hashintern.ErrInvalidEncoding
			if errors.As(err, &encErr) {
				st.Refused++
				return nil
			}
			return err
		}
		return nil
	}

	if len(files) == 0 {
		return st, scanLines(cmd.InOrStdin(), intern)
	}

	contents := make([][]string, len(files))
	var g errgroup.Group
	g.SetLimit(parallel)
	for i, name := range files {
		g.Go(func() error {
			lines, err := readLines(name)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			contents[i] = lines
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return st, err
	}

	for _, lines := range contents {
		for _, line := range lines {
			if err := intern(line); err != nil {
				return st, err
			}
		}
	}
	return st, nil
}

func readLines(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	err = scanLines(f, func(line string) error {
		lines = append(lines, line)
		return nil
	})
	return lines, err
}

func scanLines(r io.Reader, fn func(string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	for sc.Scan() {
		if err := fn(sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}

const maxLineLen = 16 << 20
