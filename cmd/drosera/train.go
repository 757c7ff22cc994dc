// Train command for the drosera CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CTAG07/Drosera/pkg/markov"
)

var trainCmd = &cobra.Command{
	Use:   "train <chain> [file...]",
	Short: "Train a chain on text files or stdin",
	Long: `Train feeds text into the named chain, creating it if it does not
exist yet and adding to its counts if it does. Every input line is one
independent sequence. With no files, text is read from stdin.

Example:
  drosera train quotes corpus.txt
  cat corpus.txt | drosera train quotes`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTrain,
}

func runTrain(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := args[0]

	chain, err := loadChain(ctx, name, true)
	if err != nil {
		return fmt.Errorf("load chain: %w", err)
	}
	tc := markov.NewTextChain(chain, tokenizerFromConfig())

	if len(args) == 1 {
		if err = tc.FeedReader(os.Stdin); err != nil {
			return fmt.Errorf("train from stdin: %w", err)
		}
	}
	for _, path := range args[1:] {
		if err = tc.FeedFile(path); err != nil {
			return fmt.Errorf("train: %w", err)
		}
	}

	if err = store.Save(ctx, name, tc.Snapshot()); err != nil {
		return fmt.Errorf("save chain: %w", err)
	}

	stats, err := store.Stats(ctx, name)
	if err != nil {
		return fmt.Errorf("chain stats: %w", err)
	}
	fmt.Printf("Trained %q: %d tokens, %d transitions, %d observations\n",
		name, stats.Tokens, stats.Transitions, stats.Observations)
	return nil
}
