//go:build linux

package linux

import "github.com/mj1618/trade-overlay/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Reader:        NewReader(),
			Inputter:      NewInputter(),
			WindowManager: NewWindowManager(),
			ClipboardManager: &platform.CommandClipboard{
				CopyCmd:  []string{"xclip", "-selection", "clipboard", "-i"},
				PasteCmd: []string{"xclip", "-selection", "clipboard", "-o"},
			},
		}, nil
	}
}
