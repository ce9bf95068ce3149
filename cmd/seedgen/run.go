package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/fbaltor/generators/script"
	"github.com/fbaltor/generators/seeding"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <seeds.toml>",
	Short: "Generate the seeds described by a config file",
	Long:  `Generate seeds from a TOML config and write them to stdout, one hex line per seed or as a msgpack stream`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSeeding,
}

func init() {
	runCmd.Flags().Int("count", 0, "number of seeds (overrides config)")
	runCmd.Flags().Int("workers", 0, "number of workers (overrides config)")
	runCmd.Flags().Uint64("seed", 0, "rng seed (overrides config)")
	runCmd.Flags().Bool("dummy", false, "emit dummy inputs")
	runCmd.Flags().String("format", "hex", "output format (hex|msgpack)")
}

func runSeeding(cmd *cobra.Command, args []string) error {
	cfg, err := seeding.LoadConfig(args[0])
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, &cfg); err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "hex" && format != "msgpack" {
		return fmt.Errorf("unsupported format %q (expected hex or msgpack)", format)
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	logger := log.New(os.Stderr, "seedgen ", log.LstdFlags)
	if quiet {
		logger.SetOutput(io.Discard)
	}

	rt := script.NewRuntime(script.WithLogger(logger))
	defer func() { _ = rt.Close() }()
	gen, err := cfg.Build(rt)
	if err != nil {
		return err
	}
	seeder, err := seeding.New(gen, append(cfg.Options(), seeding.WithLogger(logger))...)
	if err != nil {
		return err
	}
	seeds, err := seeder.Run(cmd.Context(), cfg.Count)
	if err != nil {
		return err
	}
	if err := writeSeeds(cmd.OutOrStdout(), format, seeds); err != nil {
		return err
	}
	if !quiet {
		report := seeder.Report()
		color.New(color.FgGreen).Fprintf(os.Stderr, "%d seeds", report.Generated)
		fmt.Fprintf(os.Stderr, " in %s", report.Elapsed)
		if report.Failed > 0 {
			color.New(color.FgYellow).Fprintf(os.Stderr, " (%d failed attempts)", report.Failed)
		}
		fmt.Fprintln(os.Stderr)
	}
	return nil
}

func applyFlags(cmd *cobra.Command, cfg *seeding.Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("count") {
		if cfg.Count, err = flags.GetInt("count"); err != nil {
			return err
		}
	}
	if flags.Changed("workers") {
		if cfg.Workers, err = flags.GetInt("workers"); err != nil {
			return err
		}
	}
	if flags.Changed("seed") {
		if cfg.Seed, err = flags.GetUint64("seed"); err != nil {
			return err
		}
		cfg.HasSeed = true
	}
	if flags.Changed("dummy") {
		if cfg.Dummy, err = flags.GetBool("dummy"); err != nil {
			return err
		}
	}
	return cfg.Validate()
}

func writeSeeds(w io.Writer, format string, seeds []seeding.Seed) error {
	if format == "msgpack" {
		enc := msgpack.NewEncoder(w)
		for i := range seeds {
			if err := enc.Encode(&seeds[i]); err != nil {
				return fmt.Errorf("encode seed %d: %w", i, err)
			}
		}
		return nil
	}
	for _, seed := range seeds {
		if _, err := fmt.Fprintf(w, "%d\t%s\n", seed.Index, hex.EncodeToString(seed.Input)); err != nil {
			return err
		}
	}
	return nil
}
