package cmd

import (
	"asset-cloner/feature/clone"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// cloneCmd represents the clone command
var cloneCmd = &cobra.Command{
	Use:   "clone <source> <new-name> <weapon|costume|skin> [output]",
	Short: "Clone a weapon costume or skin into a new asset",
	Long: `Clones the named costume or skin into a new asset called <new-name>.

  weapon   clones the costume into a new standalone weapon
  costume  clones the costume into a new costume of the same weapon
  skin     clones a weapon skin

Output goes to [output] (default <new-name>) under game.output_root.`,
	Args: cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := clone.ParseKind(args[2])
		if err != nil {
			return err
		}
		req := clone.Request{Source: args[0], Name: args[1], Kind: kind}
		if len(args) == 4 {
			req.Output = args[3]
		}

		cfg, logg, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		var ledger clone.Ledger
		if repo := openLedger(cmd.Context(), cfg.Database, logg); repo != nil {
			ledger = repo
		}

		svc := clone.NewService(cfg.Game, afero.NewOsFs(), logg, ledger)
		report, err := svc.Clone(cmd.Context(), req)
		if report != nil {
			printReport(cmd.OutOrStdout(), report)
		}
		return err
	},
}

func init() {
	RootCmd.AddCommand(cloneCmd)
}
