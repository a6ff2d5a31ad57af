package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gomgom50/aethelgard-worldgen/orchestrator"
	"github.com/gomgom50/aethelgard-worldgen/snapshot"
)

var generateCfg = viper.New()

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new world and write a binary snapshot",
	Long: `generate runs new_world(params) followed by run(stages) (spec.md 6)
across the topology, tectonics, features, hydrology, and climate stages,
streaming per-stage progress to stdout, then writes the resulting World
as a versioned snapshot (package snapshot).`,
	RunE:              runGenerate,
	DisableAutoGenTag: true,
}

func init() {
	flags := generateCmd.Flags()
	flags.Int64("seed", 1, "deterministic RNG seed")
	flags.Int("resolution", 64, "hex-sphere subdivision resolution")
	flags.Int("plates", 12, "number of tectonic plates")
	flags.Float64("continental-ratio", 0.35, "fraction of plates seeded as continental")
	flags.Int("climate-grid", 64, "climate coarse grid edge length G")
	flags.String("out", "world.snapshot", "output snapshot path")
	flags.Duration("timeout", 0, "abort generation after this duration (0 disables the timeout)")

	for _, name := range []string{"seed", "resolution", "plates", "continental-ratio", "climate-grid", "out", "timeout"} {
		generateCfg.BindPFlag(name, flags.Lookup(name))
	}
	rootCmd.AddCommand(generateCmd)
}

// paramsFromConfig validates generateCfg into an
// orchestrator.NewWorldParams, surfacing ErrInvalidParameter "before any
// tile work" per spec.md 7.
func paramsFromConfig() (orchestrator.NewWorldParams, error) {
	seed := generateCfg.GetInt64("seed")
	if seed < 0 {
		return orchestrator.NewWorldParams{}, &orchestrator.Error{Kind: orchestrator.ErrInvalidParameter, Message: "seed must be non-negative"}
	}
	resolution := generateCfg.GetInt("resolution")
	if resolution < 1 {
		return orchestrator.NewWorldParams{}, &orchestrator.Error{Kind: orchestrator.ErrInvalidParameter, Message: "resolution must be >= 1"}
	}
	plates := generateCfg.GetInt("plates")
	if plates < 1 {
		return orchestrator.NewWorldParams{}, &orchestrator.Error{Kind: orchestrator.ErrInvalidParameter, Message: "plates must be >= 1"}
	}
	ratio := generateCfg.GetFloat64("continental-ratio")
	if ratio < 0 || ratio > 1 {
		return orchestrator.NewWorldParams{}, &orchestrator.Error{Kind: orchestrator.ErrInvalidParameter, Message: "continental-ratio must be within [0,1]"}
	}
	gridSize := generateCfg.GetInt("climate-grid")
	if gridSize < 1 {
		return orchestrator.NewWorldParams{}, &orchestrator.Error{Kind: orchestrator.ErrInvalidParameter, Message: "climate-grid must be >= 1"}
	}

	params := orchestrator.DefaultNewWorldParams(uint64(seed))
	params.TileResolution = resolution
	params.PlateCount = plates
	params.ContinentalRatio = ratio
	params.ClimateGridSize = gridSize
	return params, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	params, err := paramsFromConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout := generateCfg.GetDuration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	events := make(chan orchestrator.StageEvent, 64)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for ev := range events {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-10s %d/%d %s\n",
				ev.Stage, ev.State, ev.TilesDone, ev.TilesTotal, ev.Elapsed.Round(time.Millisecond))
		}
	}()

	w, runErr := orchestrator.RunNewWorld(ctx, params, nil, events)
	close(events)
	<-drained
	if runErr != nil {
		return runErr
	}

	data, err := snapshot.Encode(snapshot.FromWorld(w))
	if err != nil {
		return fmt.Errorf("worldgen: encoding snapshot: %w", err)
	}
	outPath := generateCfg.GetString("out")
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("worldgen: writing snapshot to %q: %w", outPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes to %s\n", len(data), outPath)
	return nil
}
