// Generate command for the drosera CLI.
package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/CTAG07/Drosera/pkg/markov"
)

var (
	flagGenCount int
	flagGenFrom  string
	flagGenSeed  uint64
)

var generateCmd = &cobra.Command{
	Use:   "generate <chain>",
	Short: "Generate text from a stored chain",
	Long: `Generate samples new texts from the named chain and prints one per
line. With --from every text starts at the given word; with --seed the
output is reproducible.

Example:
  drosera generate quotes -n 5
  drosera generate quotes --from the --seed 42`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&flagGenCount, "count", "n", 0, "number of texts to generate (default: from config)")
	generateCmd.Flags().StringVar(&flagGenFrom, "from", "", "start every text at this token")
	generateCmd.Flags().Uint64Var(&flagGenSeed, "seed", 0, "seed for reproducible output")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := args[0]

	opts := []markov.Option{markov.WithMaxLen(cfg.GetInt(cfgKeyMaxLen))}
	if cmd.Flags().Changed("seed") {
		opts = append(opts, markov.WithSource(rand.New(rand.NewPCG(flagGenSeed, 0))))
	}

	chain, err := loadChain(ctx, name, false, opts...)
	if err != nil {
		return fmt.Errorf("load chain: %w", err)
	}
	if chain.IsEmpty() {
		return fmt.Errorf("chain %q has no training data", name)
	}

	count := flagGenCount
	if count <= 0 {
		count = cfg.GetInt(cfgKeyCount)
	}

	tc := markov.NewTextChain(chain, tokenizerFromConfig())

	if flagGenFrom != "" {
		for range count {
			out := tc.GenerateTextFrom(flagGenFrom)
			if out == "" {
				return fmt.Errorf("token %q has never been trained into chain %q", flagGenFrom, name)
			}
			fmt.Println(out)
		}
		return nil
	}

	for text := range tc.Texts(count) {
		fmt.Println(text)
	}
	return nil
}
