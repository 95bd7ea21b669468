package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/mj1618/trade-overlay/internal/command"
	"github.com/mj1618/trade-overlay/internal/engine"
	"github.com/mj1618/trade-overlay/internal/game"
	"github.com/mj1618/trade-overlay/internal/metrics"
	"github.com/mj1618/trade-overlay/internal/model"
	"github.com/mj1618/trade-overlay/internal/output"
	"github.com/mj1618/trade-overlay/internal/platform"
	"github.com/mj1618/trade-overlay/internal/settings"
)

// currentSettings returns the loaded settings, or defaults when none were
// loaded.
func currentSettings(ctx context.Context) *settings.Settings {
	if settingsStore == nil {
		return settings.Default()
	}
	s, err := settingsStore.Get(ctx)
	if err != nil || s == nil {
		return settings.Default()
	}
	return s
}

// newReaderProvider returns the platform provider, requiring a window reader.
func newReaderProvider() (*platform.Provider, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	if provider.Reader == nil {
		return nil, fmt.Errorf("window reader not available on this platform")
	}
	return provider, nil
}

// newEngine wires an engine on the current platform. With dryRun set, or
// commands.dry_run in settings, commands are logged instead of typed.
func newEngine(ctx context.Context, dryRun bool, m *metrics.Metrics) (*engine.Engine, error) {
	provider, err := newReaderProvider()
	if err != nil {
		return nil, err
	}
	s := currentSettings(ctx)

	cfg := engine.Config{
		Reader:        provider.Reader,
		WindowManager: provider.WindowManager,
		Settings:      settingsStore,
		Metrics:       m,
	}
	if settingsStore == nil {
		cfg.Settings = settings.NewMemoryStore(s)
	}
	if !dryRun && !s.Commands.DryRun {
		if provider.Inputter == nil || provider.ClipboardManager == nil {
			return nil, fmt.Errorf("keyboard input not available on this platform (use --dry-run)")
		}
		cfg.Dispatcher = func(f command.Focuser) (command.Dispatcher, error) {
			return command.NewKeyboardDispatcher(provider, f, engine.KeyboardConfig(s), m)
		}
	}
	return engine.New(cfg)
}

// describeWindow classifies one foreground window snapshot.
func describeWindow(win *model.Window, matcher *game.Matcher, logOverride string) output.StatusResult {
	matched := matcher.Matches(win)
	result := output.StatusResult{
		TS:      time.Now().Unix(),
		Window:  win,
		Matched: matched,
		State:   model.GameState{Active: &matched},
	}
	if win == nil {
		return result
	}
	result.Executable = game.ExecutableName(win.Path)
	if matched {
		bounds := win.Bounds
		result.State.Bounds = &bounds
		result.State.ProcessID = win.PID
		result.LogFile = game.LogFilePath(win.Path)
		if logOverride != "" {
			result.LogFile = logOverride
		}
	}
	return result
}

// applyGridFlags updates the grid offsets set on the command line and reports
// whether anything changed.
func applyGridFlags(s *settings.Settings, top, left *int) bool {
	changed := false
	if top != nil && *top != s.Trade.OverlayHighlightTop {
		s.Trade.OverlayHighlightTop = *top
		changed = true
	}
	if left != nil && *left != s.Trade.OverlayHighlightLeft {
		s.Trade.OverlayHighlightLeft = *left
		changed = true
	}
	return changed
}
