//go:build windows

package windows

import (
	"fmt"

	"github.com/mj1618/trade-overlay/internal/platform"
)

// WindowsWindowManager implements platform.WindowManager with user32.
type WindowsWindowManager struct{}

// NewWindowManager creates a new Win32 window manager.
func NewWindowManager() *WindowsWindowManager {
	return &WindowsWindowManager{}
}

func (wm *WindowsWindowManager) FocusWindow(opts platform.FocusOptions) error {
	if opts.WindowID == 0 {
		return fmt.Errorf("focus requires a window handle")
	}
	hwnd := uintptr(opts.WindowID)
	if iconic, _, _ := procIsIconic.Call(hwnd); iconic != 0 {
		procShowWindow.Call(hwnd, swRestore)
	}
	// Windows only lets the foreground process steal focus; a synthetic alt
	// press satisfies the "last input event" rule.
	keybdEvent(vkMenu, 0)
	ok, _, err := procSetForegroundWindow.Call(hwnd)
	keybdEvent(vkMenu, keyeventfKeyUp)
	if ok == 0 {
		return fmt.Errorf("SetForegroundWindow: %w", err)
	}
	return nil
}
