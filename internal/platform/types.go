package platform

import (
	"fmt"
	"strings"

	"github.com/mj1618/trade-overlay/internal/model"
)

// FocusOptions specifies what to focus.
type FocusOptions struct {
	WindowID model.WindowID
	PID      int
}

// Key names understood by every backend.
const (
	KeyCtrl      = "ctrl"
	KeyShift     = "shift"
	KeyAlt       = "alt"
	KeyCmd       = "cmd"
	KeyEnter     = "enter"
	KeyEscape    = "escape"
	KeyBackspace = "backspace"
	KeyDelete    = "delete"
	KeyTab       = "tab"
)

var keyAliases = map[string]string{
	"control": KeyCtrl,
	"return":  KeyEnter,
	"esc":     KeyEscape,
	"del":     KeyDelete,
	"command": KeyCmd,
	"super":   KeyCmd,
	"option":  KeyAlt,
}

// ParseKeyCombo converts "ctrl+shift+f" into normalized key names.
func ParseKeyCombo(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty key combo")
	}
	parts := strings.Split(s, "+")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		k := strings.ToLower(strings.TrimSpace(p))
		if k == "" {
			return nil, fmt.Errorf("invalid key combo %q: empty key", s)
		}
		if alias, ok := keyAliases[k]; ok {
			k = alias
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// IsModifier reports whether a normalized key name is a modifier.
func IsModifier(key string) bool {
	switch key {
	case KeyCtrl, KeyShift, KeyAlt, KeyCmd:
		return true
	}
	return false
}

// SplitModifiers separates modifier keys from the final key of a combo.
func SplitModifiers(keys []string) (mods []string, key string, err error) {
	if len(keys) == 0 {
		return nil, "", fmt.Errorf("empty key combo")
	}
	key = keys[len(keys)-1]
	if IsModifier(key) {
		return nil, "", fmt.Errorf("key combo %v ends with a modifier", keys)
	}
	for _, k := range keys[:len(keys)-1] {
		if !IsModifier(k) {
			return nil, "", fmt.Errorf("key combo %v: %q is not a modifier", keys, k)
		}
		mods = append(mods, k)
	}
	return mods, key, nil
}
