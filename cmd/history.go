package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"asset-cloner/feature/history"

	"github.com/spf13/cobra"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history [limit]",
	Short: "List recorded clone runs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := history.DefaultLimit
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid limit %q", args[0])
			}
			limit = n
		}

		cfg, logg, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		repo := openLedger(cmd.Context(), cfg.Database, logg)
		if repo == nil {
			return errors.New("run ledger unavailable, check the database settings")
		}
		runs, err := repo.List(cmd.Context(), limit)
		if err != nil {
			return err
		}
		printRuns(cmd.OutOrStdout(), runs)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(historyCmd)
}
