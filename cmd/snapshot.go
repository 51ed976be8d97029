package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evfleet/demometrics/config"
	"github.com/evfleet/demometrics/core/synth"
)

var (
	snapshotTarget   int
	snapshotOptimize bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print one synthesized v2g payload and exit",
	RunE:  printSnapshot,
}

func init() {
	snapshotCmd.Flags().IntVar(&snapshotTarget, "scale-target", 0, "active vehicle target (0 = none)")
	snapshotCmd.Flags().BoolVar(&snapshotOptimize, "optimize-grid", false, "include grid optimization recommendations")
	rootCmd.AddCommand(snapshotCmd)
}

func printSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	eng, err := synth.New(cfg.Fleet.Model(), cfg.Fleet.Seed, nil)
	if err != nil {
		return fmt.Errorf("synth engine: %w", err)
	}
	payload, err := eng.Generate(synth.Request{
		DemoType:     "v2g",
		ScaleTarget:  snapshotTarget,
		OptimizeGrid: snapshotOptimize,
	})
	if err != nil {
		return fmt.Errorf("generate payload: %w", err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
