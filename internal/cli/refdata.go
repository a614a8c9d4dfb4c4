package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shonlittle/acme-invoice/internal/refdata"
)

var refdataInitPath string

// refdataCmd groups reference-data helpers
var refdataCmd = &cobra.Command{
	Use:   "refdata",
	Short: "Manage the reference data store",
}

// refdataInitCmd creates and seeds the reference database
var refdataInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the reference database and seed demo inventory and vendors",
	Long: `Init creates the SQLite reference database used by validation, with
demo inventory (WidgetA, WidgetB, GadgetX) and vendors. Running it
against an existing database is a no-op.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := refdata.OpenSQLite(refdataInitPath, true)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		fmt.Printf("Reference database ready: %s\n", refdataInitPath)
		return nil
	},
}

func init() {
	refdataInitCmd.Flags().StringVar(&refdataInitPath, "refdata", "refdata.db", "reference data SQLite path")

	refdataCmd.AddCommand(refdataInitCmd)
	rootCmd.AddCommand(refdataCmd)
}
