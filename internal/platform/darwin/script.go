package darwin

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/trade-overlay/internal/model"
	"github.com/mj1618/trade-overlay/internal/platform"
)

// frontWindowScript prints "pid<TAB>title<TAB>x<TAB>y<TAB>w<TAB>h" for the
// frontmost process. Title and geometry are empty when it has no window.
const frontWindowScript = `tell application "System Events"
	set p to first application process whose frontmost is true
	set out to (unix id of p as text)
	try
		set w to front window of p
		set {x, y} to position of w
		set {ww, hh} to size of w
		set out to out & tab & (name of w as text) & tab & x & tab & y & tab & ww & tab & hh
	end try
end tell
return out`

// parseFrontWindow decodes the output of frontWindowScript.
func parseFrontWindow(out string) (pid int, title string, bounds model.Bounds, err error) {
	fields := strings.Split(strings.TrimRight(out, "\r\n"), "\t")
	pid, err = strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return 0, "", model.Bounds{}, fmt.Errorf("invalid pid %q: %w", fields[0], err)
	}
	if len(fields) < 6 {
		return pid, "", model.Bounds{}, nil
	}
	title = fields[1]
	nums := make([]int, 4)
	for i, f := range fields[2:6] {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return 0, "", model.Bounds{}, fmt.Errorf("invalid geometry %q: %w", f, err)
		}
		nums[i] = n
	}
	return pid, title, model.Bounds{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[3]}, nil
}

// System Events key codes for keys that cannot be sent with keystroke.
var keyCodes = map[string]int{
	platform.KeyEnter:     36,
	platform.KeyTab:       48,
	platform.KeyBackspace: 51,
	platform.KeyEscape:    53,
	platform.KeyDelete:    117,
}

var modifierNames = map[string]string{
	platform.KeyCtrl:  "control down",
	platform.KeyShift: "shift down",
	platform.KeyAlt:   "option down",
	platform.KeyCmd:   "command down",
}

// keyScript builds the AppleScript that presses a normalized key combo.
func keyScript(keys []string) (string, error) {
	mods, key, err := platform.SplitModifiers(keys)
	if err != nil {
		return "", err
	}

	var action string
	if code, ok := keyCodes[key]; ok {
		action = fmt.Sprintf("key code %d", code)
	} else if len([]rune(key)) == 1 {
		action = fmt.Sprintf("keystroke %q", key)
	} else {
		return "", fmt.Errorf("unsupported key %q", key)
	}

	if len(mods) > 0 {
		names := make([]string, len(mods))
		for i, m := range mods {
			names[i] = modifierNames[m]
		}
		action += " using {" + strings.Join(names, ", ") + "}"
	}
	return `tell application "System Events" to ` + action, nil
}

// focusScript brings the process with the given pid to the front.
func focusScript(pid int) string {
	return fmt.Sprintf(`tell application "System Events" to set frontmost of (first application process whose unix id is %d) to true`, pid)
}

// accessibilityHint replaces the opaque osascript error returned when the
// terminal lacks accessibility permission.
func accessibilityHint(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "-1719") || strings.Contains(msg, "-25211") || strings.Contains(msg, "assistive access") {
		return fmt.Errorf("accessibility permission required\n\n"+
			"Grant permission at: System Settings > Privacy & Security > Accessibility\n"+
			"Add the terminal app running trade-overlay, then restart it: %w", err)
	}
	return err
}
