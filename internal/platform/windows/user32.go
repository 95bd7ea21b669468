//go:build windows

package windows

import (
	"unsafe"

	xwin "golang.org/x/sys/windows"
)

var (
	user32                   = xwin.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow  = user32.NewProc("GetForegroundWindow")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
	procGetWindowRect        = user32.NewProc("GetWindowRect")
	procSetForegroundWindow  = user32.NewProc("SetForegroundWindow")
	procShowWindow           = user32.NewProc("ShowWindow")
	procIsIconic             = user32.NewProc("IsIconic")
	procKeybdEvent           = user32.NewProc("keybd_event")
)

const (
	swRestore      = 9
	keyeventfKeyUp = 0x0002
)

func getForegroundWindow() xwin.HWND {
	r, _, _ := procGetForegroundWindow.Call()
	return xwin.HWND(r)
}

func getWindowText(hwnd xwin.HWND) string {
	n, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd))
	if n == 0 {
		return ""
	}
	buf := make([]uint16, n+1)
	procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return xwin.UTF16ToString(buf)
}

func getWindowRect(hwnd xwin.HWND) (xwin.Rect, error) {
	var r xwin.Rect
	ok, _, err := procGetWindowRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&r)))
	if ok == 0 {
		return r, err
	}
	return r, nil
}

func processImagePath(pid uint32) (string, error) {
	h, err := xwin.OpenProcess(xwin.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", err
	}
	defer xwin.CloseHandle(h)

	buf := make([]uint16, xwin.MAX_LONG_PATH)
	size := uint32(len(buf))
	if err := xwin.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return "", err
	}
	return xwin.UTF16ToString(buf[:size]), nil
}

func keybdEvent(vk byte, flags uint32) {
	procKeybdEvent.Call(uintptr(vk), 0, uintptr(flags), 0)
}
