package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mj1618/trade-overlay/internal/model"
)

func TestMatcher_KnownExecutablesWithExactTitle(t *testing.T) {
	m := NewMatcher(nil, nil)
	for _, name := range DefaultExecutables {
		w := &model.Window{Path: `C:\Games\` + name, Title: "Path of Exile"}
		assert.True(t, m.Matches(w), name)
	}
}

func TestMatcher_ExecutableCaseInsensitive(t *testing.T) {
	m := NewMatcher(nil, nil)
	w := &model.Window{Path: `C:\Program Files\Grinding Gear Games\PathOfExile_x64.exe`, Title: "Path of Exile"}
	assert.True(t, m.Matches(w))
}

func TestMatcher_AlternateTitlePrefix(t *testing.T) {
	m := NewMatcher(nil, nil)
	w := &model.Window{Path: "/opt/poe/PathOfExile.exe", Title: "Path of Exile <---> Login queue"}
	assert.True(t, m.Matches(w))
}

func TestMatcher_NameWithoutTitleIsNotGame(t *testing.T) {
	m := NewMatcher(nil, nil)
	titles := []string{"", "path of exile", "Path of Exile 2", "Notepad", "Path of Exile <--->"}
	for _, title := range titles {
		w := &model.Window{Path: "/usr/bin/wine64-preloader", Title: title}
		assert.False(t, m.Matches(w), "title %q", title)
	}
}

func TestMatcher_UnknownExecutable(t *testing.T) {
	m := NewMatcher(nil, nil)
	w := &model.Window{Path: `C:\Windows\notepad.exe`, Title: "Path of Exile"}
	assert.False(t, m.Matches(w))
	assert.False(t, m.Matches(nil))
}

func TestMatcher_Extras(t *testing.T) {
	m := NewMatcher([]string{" PathOfExile_Beta.exe "}, []string{"Path of Exile (Beta)"})
	assert.True(t, m.Matches(&model.Window{Path: "/x/pathofexile_beta.exe", Title: "Path of Exile (Beta)"}))
	assert.True(t, m.Matches(&model.Window{Path: "/x/pathofexile_beta.exe", Title: "Path of Exile"}))

	// extras do not leak into other matchers
	assert.False(t, NewMatcher(nil, nil).Matches(&model.Window{Path: "/x/pathofexile_beta.exe", Title: "Path of Exile"}))
}

func TestExecutableName(t *testing.T) {
	assert.Equal(t, "pathofexile.exe", ExecutableName(`C:\Games\PathOfExile.exe`))
	assert.Equal(t, "wine64-preloader", ExecutableName("/usr/bin/wine64-preloader"))
	assert.Equal(t, "pathofexile", ExecutableName("PathOfExile"))
	assert.Equal(t, "", ExecutableName(""))
}

func TestLogFilePath(t *testing.T) {
	tests := []struct {
		exe  string
		want string
	}{
		{`C:\Games\pathofexile_x64steam.exe`, `C:\Games\logs\Client.txt`},
		{`D:\Steam\steamapps\common\Path of Exile\PathOfExileSteam.exe`, `D:\Steam\steamapps\common\Path of Exile\logs\Client.txt`},
		{"/home/me/poe/PathOfExile.exe", "/home/me/poe/logs/Client.txt"},
		{"PathOfExile.exe", "logs/Client.txt"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LogFilePath(tt.exe), tt.exe)
	}
}
