// Import command for the drosera CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CTAG07/Drosera/pkg/markov"
)

var importCmd = &cobra.Command{
	Use:   "import <chain> [file]",
	Short: "Import a JSON chain snapshot",
	Long: `Import reads a chain snapshot from a JSON file (or stdin) and merges
it into the named chain, adding counts for transitions both sides share.
The chain is created if it does not exist yet.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := args[0]

	var imported *markov.Chain[string]
	var err error
	if len(args) == 2 {
		imported, err = markov.LoadFile[string](args[1])
	} else {
		imported, err = markov.Load[string](os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("import chain: %w", err)
	}

	chain, err := loadChain(ctx, name, true)
	if err != nil {
		return fmt.Errorf("load chain: %w", err)
	}
	if err = chain.Merge(imported.Snapshot()); err != nil {
		return fmt.Errorf("merge chain: %w", err)
	}
	if err = store.Save(ctx, name, chain.Snapshot()); err != nil {
		return fmt.Errorf("save chain: %w", err)
	}

	stats, err := store.Stats(ctx, name)
	if err != nil {
		return fmt.Errorf("chain stats: %w", err)
	}
	fmt.Printf("Imported into %q: %d tokens, %d transitions, %d observations\n",
		name, stats.Tokens, stats.Transitions, stats.Observations)
	return nil
}
