package platform

import (
	overlayerrors "github.com/mj1618/trade-overlay/internal/errors"
)

// Provider bundles all platform backends for the current OS.
type Provider struct {
	Reader           WindowReader
	Inputter         Inputter
	WindowManager    WindowManager
	ClipboardManager ClipboardManager
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = overlayerrors.PlatformUnsupported()

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/linux/init.go for an example registration.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
