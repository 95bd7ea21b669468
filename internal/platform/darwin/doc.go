// Package darwin provides macOS platform support by driving System Events
// through osascript. No cgo is required.
package darwin
