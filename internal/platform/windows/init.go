//go:build windows

package windows

import "github.com/mj1618/trade-overlay/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Reader:           NewReader(),
			Inputter:         NewInputter(),
			WindowManager:    NewWindowManager(),
			ClipboardManager: NewClipboard(),
		}, nil
	}
}
