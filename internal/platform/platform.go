package platform

import "github.com/mj1618/trade-overlay/internal/model"

// WindowReader reads the OS foreground window.
type WindowReader interface {
	// ForegroundWindow returns the currently focused window, or nil with a
	// nil error when no window is focused.
	ForegroundWindow() (*model.Window, error)
}

// Inputter simulates keyboard input.
type Inputter interface {
	// KeyCombo presses and releases a key combination such as ["ctrl", "v"].
	KeyCombo(keys []string) error
}

// WindowManager manages window focus.
type WindowManager interface {
	FocusWindow(opts FocusOptions) error
}

// ClipboardManager reads and writes the system clipboard.
type ClipboardManager interface {
	GetText() (string, error)
	SetText(text string) error
	Clear() error
}
