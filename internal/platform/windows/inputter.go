//go:build windows

package windows

import "time"

// WindowsInputter implements platform.Inputter with keybd_event.
type WindowsInputter struct {
	// Hold is how long the combo stays pressed.
	Hold time.Duration
}

// NewInputter creates a new Win32 inputter.
func NewInputter() *WindowsInputter {
	return &WindowsInputter{Hold: 5 * time.Millisecond}
}

func (i *WindowsInputter) KeyCombo(keys []string) error {
	codes, err := virtualKeyCodes(keys)
	if err != nil {
		return err
	}
	for _, vk := range codes {
		keybdEvent(vk, 0)
	}
	time.Sleep(i.Hold)
	for j := len(codes) - 1; j >= 0; j-- {
		keybdEvent(codes[j], keyeventfKeyUp)
	}
	return nil
}
