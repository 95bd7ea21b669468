// Package windows provides Win32 platform support through user32 calls made
// with golang.org/x/sys/windows.
package windows
