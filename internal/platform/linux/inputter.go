//go:build linux

package linux

import "github.com/mj1618/trade-overlay/internal/platform"

// LinuxInputter implements platform.Inputter with xdotool.
type LinuxInputter struct{}

// NewInputter creates a new X11 inputter.
func NewInputter() *LinuxInputter {
	return &LinuxInputter{}
}

func (i *LinuxInputter) KeyCombo(keys []string) error {
	spec, err := xdotoolKeySpec(keys)
	if err != nil {
		return err
	}
	_, err = platform.Run("xdotool", "key", "--clearmodifiers", spec)
	return err
}
