package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mj1618/trade-overlay/internal/logging"
	"github.com/mj1618/trade-overlay/internal/output"
	"github.com/mj1618/trade-overlay/internal/settings"
	"github.com/mj1618/trade-overlay/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "trade-overlay",
	Short: "Track the game window and manage incoming trade offers",
	Long: `A trade companion that detects when the game is in the foreground, follows
its chat log for trade offers, and sends whispers, invites and trade requests
by typing chat commands into the game.`,
	SilenceUsage: true,
}

// settingsStore is loaded by the root command before any subcommand runs.
var settingsStore *settings.FileStore

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Indent JSON output")
	rootCmd.PersistentFlags().String("config", "", "Settings file (default: settings.yml in the config directory)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")

		path, _ := rootCmd.PersistentFlags().GetString("config")
		settingsStore = settings.NewFileStore(path)
		loadErr := settingsStore.Load()

		s, _ := settingsStore.Get(cmd.Context())
		logging.Configure(s.Logging)
		if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
			logging.SetLevel(logrus.DebugLevel)
		}

		if loadErr != nil {
			logging.NewLogger("settings").WithError(loadErr).
				WithField("path", settingsStore.Path()).
				Warn("Invalid settings file, using defaults")
		}
		return nil
	}
}
