package cmd

import (
	"asset-cloner/core/storage"
	"asset-cloner/feature/publish"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish <dir> [prefix]",
	Short: "Upload a clone output directory to object storage",
	Long: `Uploads every file of a clone output directory to the configured bucket
under [prefix] (default: the directory name), together with a manifest.json
of BLAKE3 digests. Unchanged files are skipped and stale objects removed.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var prefix string
		if len(args) == 2 {
			prefix = args[1]
		}

		cfg, logg, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return err
		}

		p := publish.NewPublisher(client, afero.NewOsFs(), cfg.Storage, logg)
		res, err := p.Publish(cmd.Context(), args[0], prefix)
		if err != nil {
			return err
		}
		printPublish(cmd.OutOrStdout(), res)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(publishCmd)
}
