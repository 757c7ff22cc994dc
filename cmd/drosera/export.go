// Export command for the drosera CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export <chain>",
	Short: "Export a chain as a JSON snapshot",
	Long: `Export writes the named chain's snapshot as JSON to stdout, or to a
file with -o. Files are written atomically.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "", "write to this file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	chain, err := loadChain(cmd.Context(), args[0], false)
	if err != nil {
		return fmt.Errorf("load chain: %w", err)
	}

	if flagExportOut != "" {
		if err = chain.SaveFile(flagExportOut); err != nil {
			return fmt.Errorf("export chain: %w", err)
		}
		return nil
	}
	if err = chain.Save(os.Stdout); err != nil {
		return fmt.Errorf("export chain: %w", err)
	}
	return nil
}
