// Delete command for the drosera CLI.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CTAG07/Drosera/pkg/chaindb"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <chain>",
	Short: "Remove a stored chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		if err := store.Delete(cmd.Context(), name); err != nil {
			if errors.Is(err, chaindb.ErrChainNotFound) {
				return fmt.Errorf("chain %q does not exist", name)
			}
			return fmt.Errorf("delete chain: %w", err)
		}

		fmt.Printf("Deleted chain %q\n", name)
		return nil
	},
}
