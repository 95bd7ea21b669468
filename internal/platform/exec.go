package platform

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	overlayerrors "github.com/mj1618/trade-overlay/internal/errors"
)

// CommandTimeout bounds every helper process a backend spawns, so a hung
// xdotool or osascript cannot stall a poll forever.
var CommandTimeout = 2 * time.Second

// Run executes a helper command and returns its trimmed stdout.
func Run(name string, args ...string) (string, error) {
	return RunWithInput("", name, args...)
}

// RunWithInput executes a helper command feeding stdin.
func RunWithInput(stdin, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), CommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return "", overlayerrors.CommandFailed(name, err)
	}
	return strings.TrimRight(stdout.String(), "\r\n"), nil
}

// CommandClipboard implements ClipboardManager on top of helper programs such
// as pbcopy/pbpaste or xclip.
type CommandClipboard struct {
	CopyCmd  []string // reads the new contents from stdin
	PasteCmd []string // writes the current contents to stdout
}

// GetText reads the current text content from the system clipboard.
func (c *CommandClipboard) GetText() (string, error) {
	if len(c.PasteCmd) == 0 {
		return "", fmt.Errorf("clipboard paste command not configured")
	}
	return Run(c.PasteCmd[0], c.PasteCmd[1:]...)
}

// SetText writes text to the system clipboard.
func (c *CommandClipboard) SetText(text string) error {
	if len(c.CopyCmd) == 0 {
		return fmt.Errorf("clipboard copy command not configured")
	}
	ctx, cancel := context.WithTimeout(context.Background(), CommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.CopyCmd[0], c.CopyCmd[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return overlayerrors.CommandFailed(c.CopyCmd[0], err)
	}
	return nil
}

// Clear empties the system clipboard.
func (c *CommandClipboard) Clear() error {
	return c.SetText("")
}
