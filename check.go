package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load every show and print its priority range",
		RunE: func(cmd *cobra.Command, args []string) error {
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
			for _, s := range shows.Shows() {
				fmt.Fprintf(out, "(%f-%f) - %s [%d cues, %.2fs]\n", s.RangeMin, s.RangeMax, s.Source, len(s.Cues), s.Length)
			}
			fmt.Fprintf(out, "Total priority range: %f\n", shows.Total())
			return nil
		},
	}
}
