//go:build darwin

package darwin

import "github.com/mj1618/trade-overlay/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Reader:        NewReader(),
			Inputter:      NewInputter(),
			WindowManager: NewWindowManager(),
			ClipboardManager: &platform.CommandClipboard{
				CopyCmd:  []string{"pbcopy"},
				PasteCmd: []string{"pbpaste"},
			},
		}, nil
	}
}
