package errors

import (
	stderrors "errors"
	"fmt"
	"os/exec"
	"runtime"
)

// SettingsNotFound creates a settings file not found error
func SettingsNotFound(path string) *OverlayError {
	return New(ErrCodeSettingsNotFound, fmt.Sprintf("settings file not found: %s", path)).
		WithDetail("path", path)
}

// SettingsInvalid creates an invalid settings error
func SettingsInvalid(reason string) *OverlayError {
	return New(ErrCodeSettingsInvalid, fmt.Sprintf("invalid settings: %s", reason))
}

// PlatformUnsupported reports that no window backend is registered for this OS
func PlatformUnsupported() *OverlayError {
	return New(ErrCodePlatformUnsupported,
		fmt.Sprintf("trade-overlay is not supported on %s/%s", runtime.GOOS, runtime.GOARCH)).
		WithDetail("os", runtime.GOOS).
		WithDetail("arch", runtime.GOARCH)
}

// WindowQueryFailed wraps a failure of the foreground window query
func WindowQueryFailed(err error) *OverlayError {
	return Wrap(err, ErrCodeWindowQueryFailed, "failed to query foreground window")
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *OverlayError {
	oe := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		oe = oe.WithDetail("exitCode", exitErr.ExitCode())
	}

	return oe
}

// InvalidInput creates an invalid input error
func InvalidInput(reason string) *OverlayError {
	return New(ErrCodeInvalidInput, reason)
}
