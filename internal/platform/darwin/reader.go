//go:build darwin

package darwin

import (
	"strconv"

	overlayerrors "github.com/mj1618/trade-overlay/internal/errors"
	"github.com/mj1618/trade-overlay/internal/model"
	"github.com/mj1618/trade-overlay/internal/platform"
)

// DarwinReader implements platform.WindowReader for macOS.
type DarwinReader struct{}

// NewReader creates a new macOS reader.
func NewReader() *DarwinReader {
	return &DarwinReader{}
}

func (r *DarwinReader) ForegroundWindow() (*model.Window, error) {
	out, err := platform.Run("osascript", "-e", frontWindowScript)
	if err != nil {
		return nil, overlayerrors.WindowQueryFailed(accessibilityHint(err))
	}
	pid, title, bounds, err := parseFrontWindow(out)
	if err != nil {
		return nil, overlayerrors.WindowQueryFailed(err)
	}

	// ps reports the full executable path for a pid.
	path, err := platform.Run("ps", "-o", "comm=", "-p", strconv.Itoa(pid))
	if err != nil {
		return nil, overlayerrors.WindowQueryFailed(err)
	}

	return &model.Window{
		Path:   path,
		Title:  title,
		PID:    pid,
		ID:     model.WindowID(pid),
		Bounds: bounds,
	}, nil
}
