package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/trade-overlay/internal/output"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print the effective settings",
	Long:  "Print the settings in use after defaults and environment variables are applied.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.Print(currentSettings(cmd.Context()))
	},
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.Print(map[string]string{"path": settingsStore.Path()})
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsPathCmd)
}
