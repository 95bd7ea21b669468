package windows

import (
	"fmt"

	"github.com/mj1618/trade-overlay/internal/platform"
)

// Virtual-key codes.
const (
	vkBack    = 0x08
	vkTab     = 0x09
	vkReturn  = 0x0D
	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12
	vkEscape  = 0x1B
	vkDelete  = 0x2E
	vkLWin    = 0x5B
)

var virtualKeys = map[string]byte{
	platform.KeyCtrl:      vkControl,
	platform.KeyShift:     vkShift,
	platform.KeyAlt:       vkMenu,
	platform.KeyCmd:       vkLWin,
	platform.KeyEnter:     vkReturn,
	platform.KeyEscape:    vkEscape,
	platform.KeyBackspace: vkBack,
	platform.KeyDelete:    vkDelete,
	platform.KeyTab:       vkTab,
}

// virtualKeyCodes maps a normalized combo to the sequence of virtual keys to
// press. Keys are released in reverse order.
func virtualKeyCodes(keys []string) ([]byte, error) {
	if _, _, err := platform.SplitModifiers(keys); err != nil {
		return nil, err
	}
	codes := make([]byte, len(keys))
	for i, k := range keys {
		if vk, ok := virtualKeys[k]; ok {
			codes[i] = vk
			continue
		}
		if len(k) != 1 {
			return nil, fmt.Errorf("unsupported key %q", k)
		}
		c := k[0]
		switch {
		case c >= 'a' && c <= 'z':
			codes[i] = c - 'a' + 'A'
		case c >= '0' && c <= '9':
			codes[i] = c
		default:
			return nil, fmt.Errorf("unsupported key %q", k)
		}
	}
	return codes, nil
}
