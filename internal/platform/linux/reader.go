//go:build linux

package linux

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	overlayerrors "github.com/mj1618/trade-overlay/internal/errors"
	"github.com/mj1618/trade-overlay/internal/model"
	"github.com/mj1618/trade-overlay/internal/platform"
)

// LinuxReader implements platform.WindowReader for X11.
type LinuxReader struct {
	procRoot string
}

// NewReader creates a new X11 reader.
func NewReader() *LinuxReader {
	return &LinuxReader{procRoot: "/proc"}
}

func (r *LinuxReader) ForegroundWindow() (*model.Window, error) {
	idOut, err := platform.Run("xdotool", "getactivewindow")
	if err != nil {
		// xdotool exits 1 when nothing has focus.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, nil
		}
		return nil, overlayerrors.WindowQueryFailed(err)
	}
	id, err := strconv.ParseUint(idOut, 10, 64)
	if err != nil {
		return nil, overlayerrors.WindowQueryFailed(fmt.Errorf("invalid window id %q", idOut))
	}

	pidOut, err := platform.Run("xdotool", "getwindowpid", idOut)
	if err != nil {
		return nil, overlayerrors.WindowQueryFailed(err)
	}
	pid, err := strconv.Atoi(pidOut)
	if err != nil {
		return nil, overlayerrors.WindowQueryFailed(fmt.Errorf("invalid pid %q", pidOut))
	}

	title, err := platform.Run("xdotool", "getwindowname", idOut)
	if err != nil {
		return nil, overlayerrors.WindowQueryFailed(err)
	}

	geomOut, err := platform.Run("xdotool", "getwindowgeometry", "--shell", idOut)
	if err != nil {
		return nil, overlayerrors.WindowQueryFailed(err)
	}
	bounds, err := parseGeometry(geomOut)
	if err != nil {
		return nil, overlayerrors.WindowQueryFailed(err)
	}

	return &model.Window{
		Path:   r.executable(pid),
		Title:  title,
		PID:    pid,
		ID:     model.WindowID(id),
		Bounds: bounds,
	}, nil
}

func (r *LinuxReader) executable(pid int) string {
	dir := fmt.Sprintf("%s/%d", r.procRoot, pid)
	if cmdline, err := os.ReadFile(dir + "/cmdline"); err == nil {
		if exe := executableFromCmdline(cmdline); exe != "" {
			return exe
		}
	}
	if exe, err := os.Readlink(dir + "/exe"); err == nil {
		return exe
	}
	return ""
}
