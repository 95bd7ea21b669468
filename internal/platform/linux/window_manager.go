//go:build linux

package linux

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/trade-overlay/internal/platform"
)

// LinuxWindowManager implements platform.WindowManager with xdotool.
type LinuxWindowManager struct{}

// NewWindowManager creates a new X11 window manager.
func NewWindowManager() *LinuxWindowManager {
	return &LinuxWindowManager{}
}

func (wm *LinuxWindowManager) FocusWindow(opts platform.FocusOptions) error {
	id := ""
	if opts.WindowID != 0 {
		id = strconv.FormatUint(uint64(opts.WindowID), 10)
	} else if opts.PID != 0 {
		out, err := platform.Run("xdotool", "search", "--onlyvisible", "--pid", strconv.Itoa(opts.PID))
		if err != nil {
			return fmt.Errorf("no window found for pid %d: %w", opts.PID, err)
		}
		id, _, _ = strings.Cut(out, "\n")
	}
	if id == "" {
		return fmt.Errorf("focus requires a window id or pid")
	}
	_, err := platform.Run("xdotool", "windowactivate", "--sync", id)
	return err
}
