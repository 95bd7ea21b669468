//go:build darwin

package darwin

import (
	"fmt"

	"github.com/mj1618/trade-overlay/internal/platform"
)

// DarwinWindowManager implements platform.WindowManager for macOS.
// Windows are addressed by their owning process.
type DarwinWindowManager struct{}

// NewWindowManager creates a new macOS window manager.
func NewWindowManager() *DarwinWindowManager {
	return &DarwinWindowManager{}
}

func (wm *DarwinWindowManager) FocusWindow(opts platform.FocusOptions) error {
	pid := opts.PID
	if pid == 0 {
		pid = int(opts.WindowID)
	}
	if pid == 0 {
		return fmt.Errorf("focus requires a pid")
	}
	_, err := platform.Run("osascript", "-e", focusScript(pid))
	return accessibilityHint(err)
}
