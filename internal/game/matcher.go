// Package game detects the game window among foreground windows and tracks
// whether it is active.
package game

import (
	"strings"

	"github.com/mj1618/trade-overlay/internal/model"
)

// Executable names of every known client build, lower-cased. Each appears
// with and without the .exe suffix since some launchers strip it.
var DefaultExecutables = []string{
	"pathofexile_x64_kg.exe",
	"pathofexile_kg.exe",
	"pathofexile_x64steam.exe",
	"pathofexilesteam.exe",
	"pathofexile_x64.exe",
	"pathofexile.exe",
	"pathofexile_x64_kg",
	"pathofexile_kg",
	"pathofexile_x64steam",
	"pathofexilesteam",
	"pathofexile_x64",
	"pathofexile",
	"wine64-preloader",
}

// DefaultTitles are exact window titles of the game.
var DefaultTitles = []string{"Path of Exile"}

// DefaultTitlePrefixes cover title variants such as the login queue.
var DefaultTitlePrefixes = []string{"Path of Exile <---> "}

// Matcher classifies a window snapshot as the game or not.
// A Matcher is immutable once built and safe for concurrent use.
type Matcher struct {
	executables   map[string]struct{}
	titles        map[string]struct{}
	titlePrefixes []string
}

// NewMatcher builds a matcher from the defaults plus extra executable names
// and exact titles.
func NewMatcher(extraExecutables, extraTitles []string) *Matcher {
	m := &Matcher{
		executables:   make(map[string]struct{}),
		titles:        make(map[string]struct{}),
		titlePrefixes: append([]string(nil), DefaultTitlePrefixes...),
	}
	for _, name := range DefaultExecutables {
		m.executables[name] = struct{}{}
	}
	for _, name := range extraExecutables {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			m.executables[name] = struct{}{}
		}
	}
	for _, title := range DefaultTitles {
		m.titles[title] = struct{}{}
	}
	for _, title := range extraTitles {
		if title != "" {
			m.titles[title] = struct{}{}
		}
	}
	return m
}

// Matches reports whether w is the game window. Both the executable name and
// the title must match: the Linux loader name alone is shared by every Wine
// program.
func (m *Matcher) Matches(w *model.Window) bool {
	if w == nil {
		return false
	}
	if _, ok := m.executables[ExecutableName(w.Path)]; !ok {
		return false
	}
	if _, ok := m.titles[w.Title]; ok {
		return true
	}
	for _, prefix := range m.titlePrefixes {
		if strings.HasPrefix(w.Title, prefix) {
			return true
		}
	}
	return false
}

// ExecutableName returns the lower-cased base name of an executable path
// written with either separator convention.
func ExecutableName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		path = path[i+1:]
	}
	return strings.ToLower(path)
}

// LogFilePath derives the chat log location from the game executable path,
// using the separator the path itself uses. It returns "" for an empty path.
func LogFilePath(executablePath string) string {
	if executablePath == "" {
		return ""
	}
	i := strings.LastIndexAny(executablePath, `/\`)
	if i < 0 {
		return "logs/Client.txt"
	}
	sep := executablePath[i : i+1]
	return executablePath[:i] + sep + "logs" + sep + "Client.txt"
}
