package linux

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/trade-overlay/internal/model"
	"github.com/mj1618/trade-overlay/internal/platform"
)

// parseGeometry decodes `xdotool getwindowgeometry --shell` output.
func parseGeometry(out string) (model.Bounds, error) {
	var b model.Bounds
	seen := 0
	for _, line := range strings.Split(out, "\n") {
		k, v, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		var dst *int
		switch k {
		case "X":
			dst = &b.X
		case "Y":
			dst = &b.Y
		case "WIDTH":
			dst = &b.Width
		case "HEIGHT":
			dst = &b.Height
		default:
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return model.Bounds{}, fmt.Errorf("invalid %s %q: %w", k, v, err)
		}
		*dst = n
		seen++
	}
	if seen != 4 {
		return model.Bounds{}, fmt.Errorf("incomplete window geometry: %q", out)
	}
	return b, nil
}

// executableFromCmdline picks the Windows executable out of a Wine/Proton
// process command line. /proc/<pid>/exe points at the wine loader for those,
// so argv is the only place the game binary shows up.
func executableFromCmdline(cmdline []byte) string {
	for _, arg := range bytes.Split(cmdline, []byte{0}) {
		s := string(arg)
		if strings.HasSuffix(strings.ToLower(s), ".exe") {
			return s
		}
	}
	return ""
}

var xdotoolKeys = map[string]string{
	platform.KeyCtrl:      "ctrl",
	platform.KeyShift:     "shift",
	platform.KeyAlt:       "alt",
	platform.KeyCmd:       "super",
	platform.KeyEnter:     "Return",
	platform.KeyEscape:    "Escape",
	platform.KeyBackspace: "BackSpace",
	platform.KeyDelete:    "Delete",
	platform.KeyTab:       "Tab",
}

// xdotoolKeySpec converts normalized keys into an xdotool keysym combo.
func xdotoolKeySpec(keys []string) (string, error) {
	if _, _, err := platform.SplitModifiers(keys); err != nil {
		return "", err
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		if sym, ok := xdotoolKeys[k]; ok {
			parts[i] = sym
		} else {
			parts[i] = k
		}
	}
	return strings.Join(parts, "+"), nil
}
