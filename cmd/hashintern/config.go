package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/hashintern"
	"github.com/hupe1980/hashintern/hasher"
	"github.com/hupe1980/hashintern/snapshot"
)

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("invalid configuration")

const envPrefix = "HASHINTERN"

// config holds the settings shared by all commands. Every field can be set
// by flag or by environment variable (HASHINTERN_MAX_BYTES for --max-bytes).
type config struct {
	Hasher      hasher.Hasher
	LogLevel    slog.Level
	MaxEntries  int
	MaxBytes    int
	Compression snapshot.Compression
	IOLimit     int64 // bytes per second, 0 = unlimited
	Parallel    int
}

func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.PersistentFlags()
	flags.String("hasher", "xxhash", "hash function (xxhash, maphash, fnv1a)")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.Int("max-entries", 0, "maximum number of distinct values (0 = unlimited)")
	flags.String("max-bytes", "", "maximum arena size, e.g. 64MiB (empty = unlimited)")
	flags.String("compression", "none", "snapshot compression (none, lz4, zstd)")
	flags.String("io-limit", "", "snapshot write rate per second, e.g. 50MiB (empty = unlimited)")
	flags.Int("parallel", 4, "number of input files read concurrently")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)
}

func loadConfig(v *viper.Viper) (*config, error) {
	cfg := &config{MaxEntries: v.GetInt("max-entries")}

	h, ok := hasher.ByName(v.GetString("hasher"))
	if !ok {
		return nil, fmt.Errorf("%w: unknown hasher %q", ErrInvalidConfig, v.GetString("hasher"))
	}
	cfg.Hasher = h

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("log-level"))); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if cfg.MaxEntries < 0 {
		return nil, fmt.Errorf("%w: max-entries must not be negative", ErrInvalidConfig)
	}

	maxBytes, err := parseSize(v, "max-bytes")
	if err != nil {
		return nil, err
	}
	cfg.MaxBytes = maxBytes

	ioLimit, err := parseSize(v, "io-limit")
	if err != nil {
		return nil, err
	}
	cfg.IOLimit = int64(ioLimit)

	cfg.Parallel = v.GetInt("parallel")
	if cfg.Parallel < 1 {
		return nil, fmt.Errorf("%w: parallel must be at least 1", ErrInvalidConfig)
	}

	c, err := snapshot.ParseCompression(v.GetString("compression"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.Compression = c

	return cfg, nil
}

// parseSize reads a human-readable byte size such as "64MiB". An empty
// value yields 0.
func parseSize(v *viper.Viper, key string) (int, error) {
	s := v.GetString(key)
	if s == "" {
		return 0, nil
	}
	size, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("%w for %s: %s", ErrInvalidConfig, key, s)
	}
	if size > math.MaxInt {
		size = math.MaxInt
	}
	return int(size), nil
}

func (c *config) internerOptions(metrics hashintern.MetricsCollector) []hashintern.Option {
	logger := hashintern.NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel}))
	return []hashintern.Option{
		hashintern.WithHasher(c.Hasher),
		hashintern.WithLimits(c.MaxEntries, c.MaxBytes),
		hashintern.WithLogger(logger),
		hashintern.WithMetricsCollector(metrics),
	}
}
