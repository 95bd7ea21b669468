package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/trade-overlay/internal/game"
	"github.com/mj1618/trade-overlay/internal/output"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the foreground window and whether it is the game",
	Long: `Poll the foreground window once and report whether it is the game, the
executable name it was matched on, and the chat log path derived from it.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	provider, err := newReaderProvider()
	if err != nil {
		return err
	}
	s := currentSettings(cmd.Context())

	win, err := provider.Reader.ForegroundWindow()
	if err != nil {
		return err
	}
	matcher := game.NewMatcher(s.Game.ExtraExecutables, s.Game.ExtraTitles)
	return output.Print(describeWindow(win, matcher, s.Game.LogFile))
}
