//go:build windows

package windows

import (
	overlayerrors "github.com/mj1618/trade-overlay/internal/errors"
	"github.com/mj1618/trade-overlay/internal/model"

	xwin "golang.org/x/sys/windows"
)

// WindowsReader implements platform.WindowReader with user32.
type WindowsReader struct{}

// NewReader creates a new Win32 reader.
func NewReader() *WindowsReader {
	return &WindowsReader{}
}

func (r *WindowsReader) ForegroundWindow() (*model.Window, error) {
	hwnd := getForegroundWindow()
	if hwnd == 0 {
		return nil, nil
	}

	var pid uint32
	if _, err := xwin.GetWindowThreadProcessId(hwnd, &pid); err != nil {
		return nil, overlayerrors.WindowQueryFailed(err)
	}
	rect, err := getWindowRect(hwnd)
	if err != nil {
		return nil, overlayerrors.WindowQueryFailed(err)
	}
	// Elevated processes refuse the query; the title still identifies them.
	path, _ := processImagePath(pid)

	return &model.Window{
		Path:  path,
		Title: getWindowText(hwnd),
		PID:   int(pid),
		ID:    model.WindowID(hwnd),
		Bounds: model.Bounds{
			X:      int(rect.Left),
			Y:      int(rect.Top),
			Width:  int(rect.Right - rect.Left),
			Height: int(rect.Bottom - rect.Top),
		},
	}, nil
}
