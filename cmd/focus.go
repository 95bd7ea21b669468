package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/trade-overlay/internal/game"
	"github.com/mj1618/trade-overlay/internal/output"
	"github.com/mj1618/trade-overlay/internal/platform"
)

// FocusResult is the output of a successful focus.
type FocusResult struct {
	OK     bool   `yaml:"ok"               json:"ok"`
	Action string `yaml:"action"           json:"action"`
	Title  string `yaml:"title,omitempty"  json:"title,omitempty"`
	PID    int    `yaml:"pid,omitempty"    json:"pid,omitempty"`
}

var focusCmd = &cobra.Command{
	Use:   "focus",
	Short: "Bring the game window to the foreground",
	Long: `Focus the game window by process ID. Without --pid the foreground window is
checked first; it must already be the game.`,
	RunE: runFocus,
}

func init() {
	rootCmd.AddCommand(focusCmd)
	focusCmd.Flags().Int("pid", 0, "Focus the game process with this PID")
}

func runFocus(cmd *cobra.Command, args []string) error {
	provider, err := newReaderProvider()
	if err != nil {
		return err
	}
	if provider.WindowManager == nil {
		return fmt.Errorf("window management not available on this platform")
	}
	pid, _ := cmd.Flags().GetInt("pid")

	result := FocusResult{OK: true, Action: "focus", PID: pid}
	opts := platform.FocusOptions{PID: pid}
	if pid == 0 {
		s := currentSettings(cmd.Context())
		win, err := provider.Reader.ForegroundWindow()
		if err != nil {
			return err
		}
		if !game.NewMatcher(s.Game.ExtraExecutables, s.Game.ExtraTitles).Matches(win) {
			return fmt.Errorf("the game is not running in the foreground (use --pid)")
		}
		opts = platform.FocusOptions{WindowID: win.ID, PID: win.PID}
		result.PID = win.PID
		result.Title = win.Title
	}

	if err := provider.WindowManager.FocusWindow(opts); err != nil {
		return err
	}
	return output.Print(result)
}
