package cmd

import (
	"encoding/json"

	"asset-cloner/feature/clone"
	"asset-cloner/feature/closure"
	"asset-cloner/feature/records"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup <kind> <name>",
	Short: "Show a table record and, for costumes and skins, what a clone would copy",
	Long: `Looks up a record by kind (costume, skin, weapon, item3d, inventory_item,
store_weapon_entry, upgrade_entry) and name across every data root.
Costumes and skins also show their resolved closure.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := records.ParseKind(args[0])
		if err != nil {
			return err
		}
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, logg, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		svc := clone.NewService(cfg.Game, afero.NewOsFs(), logg, nil)
		rec, err := svc.Record(cmd.Context(), kind, args[1])
		if err != nil {
			return err
		}

		var summary *closure.Summary
		if cloneKind, ok := closureKind(kind); ok {
			c, err := svc.Closure(cmd.Context(), cloneKind, rec.Name())
			if err != nil {
				return err
			}
			s := c.Summary()
			summary = &s
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Record  clone.RecordView `json:"record"`
				Closure *closure.Summary `json:"closure,omitempty"`
			}{
				Record:  clone.RecordView{Kind: rec.Kind, Name: rec.Name(), Source: rec.Source, Fields: rec.Fields()},
				Closure: summary,
			})
		}

		printRecord(out, rec)
		if summary != nil {
			printClosure(out, *summary)
		}
		return nil
	},
}

// closureKind returns the clone kind whose closure a record of kind roots.
func closureKind(kind records.Kind) (clone.Kind, bool) {
	switch kind {
	case records.Costume:
		return clone.KindWeapon, true
	case records.Skin:
		return clone.KindSkin, true
	}
	return "", false
}

func init() {
	lookupCmd.Flags().Bool("json", false, "Output the record and closure as JSON")
	RootCmd.AddCommand(lookupCmd)
}
