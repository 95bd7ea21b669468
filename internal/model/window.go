package model

import "fmt"

// Bounds represents a screen rectangle in pixels.
type Bounds struct {
	X      int `json:"x"      yaml:"x"`
	Y      int `json:"y"      yaml:"y"`
	Width  int `json:"width"  yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// String renders bounds as "x,y,w,h".
func (b Bounds) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", b.X, b.Y, b.Width, b.Height)
}

// WindowID is an opaque, backend-specific window handle.
type WindowID uint64

// Window is a point-in-time snapshot of the foreground window.
// It is read fresh on every poll and never cached across polls.
type Window struct {
	Path   string   `json:"path"   yaml:"path"`
	Title  string   `json:"title"  yaml:"title"`
	PID    int      `json:"pid"    yaml:"pid"`
	ID     WindowID `json:"id"     yaml:"id"`
	Bounds Bounds   `json:"bounds" yaml:"bounds"`
}
