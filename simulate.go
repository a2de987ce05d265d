package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSimulateCmd(opts *options) *cobra.Command {
	var draws int

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Pick shows many times and print how often each came up",
		RunE: func(cmd *cobra.Command, args []string) error {
			if draws < 1 {
				return fmt.Errorf("--draws must be at least 1, got %d", draws)
			}
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			rig, shows, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			defer rig.Fixtures.Close()

			out := cmd.OutOrStdout()
			for _, tally := range shows.Simulate(draws) {
				share := float64(tally.Count) / float64(draws) * 100
				fmt.Fprintf(out, "%s -> %d (%.1f%%, weight %.1f%%)\n", tally.Show.Source, tally.Count, share, tally.Show.Priority/shows.Total()*100)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&draws, "draws", "n", 5000, "number of picks")
	return cmd
}
