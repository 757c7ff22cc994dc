// List command for the drosera CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored chains and their statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		chains, err := store.List(ctx)
		if err != nil {
			return fmt.Errorf("list chains: %w", err)
		}
		if len(chains) == 0 {
			fmt.Println("No chains stored yet.")
			return nil
		}

		for _, info := range chains {
			stats, err := store.Stats(ctx, info.Name)
			if err != nil {
				return fmt.Errorf("stats for %q: %w", info.Name, err)
			}
			fmt.Printf("%s: %d tokens, %d transitions, %d observations, %d starters\n",
				info.Name, stats.Tokens, stats.Transitions, stats.Observations, stats.Starters)
		}
		return nil
	},
}
