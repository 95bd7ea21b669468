//go:build darwin

package darwin

import "github.com/mj1618/trade-overlay/internal/platform"

// DarwinInputter implements platform.Inputter for macOS.
type DarwinInputter struct{}

// NewInputter creates a new macOS inputter.
func NewInputter() *DarwinInputter {
	return &DarwinInputter{}
}

func (i *DarwinInputter) KeyCombo(keys []string) error {
	script, err := keyScript(keys)
	if err != nil {
		return err
	}
	_, err = platform.Run("osascript", "-e", script)
	return accessibilityHint(err)
}
