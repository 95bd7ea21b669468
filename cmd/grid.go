package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/trade-overlay/internal/output"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Show or set the highlight grid offset",
	Long: `Print the persisted pixel offset of the highlight grid overlay. With --top or
--left the offset is updated and saved to the settings file.`,
	RunE: runGrid,
}

func init() {
	rootCmd.AddCommand(gridCmd)
	gridCmd.Flags().Int("top", 0, "Grid offset from the top in pixels")
	gridCmd.Flags().Int("left", 0, "Grid offset from the left in pixels")
}

func runGrid(cmd *cobra.Command, args []string) error {
	s := currentSettings(cmd.Context())

	var top, left *int
	if cmd.Flags().Changed("top") {
		v, _ := cmd.Flags().GetInt("top")
		top = &v
	}
	if cmd.Flags().Changed("left") {
		v, _ := cmd.Flags().GetInt("left")
		left = &v
	}

	result := output.GridResult{}
	if applyGridFlags(s, top, left) && settingsStore != nil {
		if err := settingsStore.Save(cmd.Context(), s); err != nil {
			return err
		}
		result.Saved = true
		result.Path = settingsStore.Path()
	}
	result.Grid = s.Trade.GridLocation()
	return output.Print(result)
}
