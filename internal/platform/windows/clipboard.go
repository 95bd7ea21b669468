//go:build windows

package windows

import "github.com/mj1618/trade-overlay/internal/platform"

const psPrefix = "[Console]::OutputEncoding = [Text.Encoding]::UTF8; "

// Clipboard implements platform.ClipboardManager through PowerShell.
type Clipboard struct {
	platform.CommandClipboard
}

// NewClipboard returns a PowerShell-backed clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{CommandClipboard: platform.CommandClipboard{
		CopyCmd:  []string{"powershell", "-NoProfile", "-NonInteractive", "-Command", "[Console]::InputEncoding = [Text.Encoding]::UTF8; Set-Clipboard -Value ([Console]::In.ReadToEnd())"},
		PasteCmd: []string{"powershell", "-NoProfile", "-NonInteractive", "-Command", psPrefix + "Get-Clipboard -Raw"},
	}}
}

// Clear empties the clipboard. Set-Clipboard rejects empty strings.
func (c *Clipboard) Clear() error {
	_, err := platform.Run("powershell", "-NoProfile", "-NonInteractive", "-Command",
		"Add-Type -AssemblyName System.Windows.Forms; [System.Windows.Forms.Clipboard]::Clear()")
	return err
}
