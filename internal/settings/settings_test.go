package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	overlayerrors "github.com/mj1618/trade-overlay/internal/errors"
)

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, DefaultPollInterval, s.Game.PollInterval.Std())
	assert.Equal(t, DefaultKeyDelay, s.Commands.KeyDelay.Std())
	assert.Equal(t, float64(DefaultRatePerSecond), s.Commands.RatePerSecond)
	assert.Equal(t, DefaultBurst, s.Commands.Burst)
	assert.True(t, s.Trade.OverlayHighlight)
	assert.False(t, s.Trade.AutoKick)
	assert.NoError(t, s.Validate())
}

func TestValidate(t *testing.T) {
	s := Default()
	s.Game.PollInterval = Duration(-time.Second)
	err := s.Validate()
	require.Error(t, err)
	assert.True(t, overlayerrors.Is(err, overlayerrors.ErrCodeSettingsInvalid))

	s = Default()
	s.Chat.OfferPattern = "(unclosed"
	err = s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat.offer_pattern")
}

func TestClone_IsDeep(t *testing.T) {
	s := Default()
	s.Game.ExtraExecutables = []string{"a"}
	c := s.Clone()
	c.Game.ExtraExecutables[0] = "b"
	c.Trade.AutoKick = true

	assert.Equal(t, "a", s.Game.ExtraExecutables[0])
	assert.False(t, s.Trade.AutoKick)
}

func TestDecode_YAML(t *testing.T) {
	data := []byte(`
trade:
  thanks_whisper: "ty for {item}"
  auto_kick: true
  overlay_highlight_top: 40
game:
  poll_interval: 250ms
  extra_titles: ["Path of Exile (Beta)"]
`)
	s, err := Decode("settings.yml", data)
	require.NoError(t, err)
	assert.Equal(t, "ty for {item}", s.Trade.ThanksWhisper)
	assert.True(t, s.Trade.AutoKick)
	assert.Equal(t, 40, s.Trade.OverlayHighlightTop)
	assert.Equal(t, 250*time.Millisecond, s.Game.PollInterval.Std())
	assert.Equal(t, []string{"Path of Exile (Beta)"}, s.Game.ExtraTitles)

	// unspecified keys keep their defaults
	assert.True(t, s.Trade.OverlayHighlight)
	assert.Equal(t, DefaultKeyDelay, s.Commands.KeyDelay.Std())
}

func TestDecode_TOML(t *testing.T) {
	data := []byte(`
[trade]
auto_whisper = true
sold_whisper = "gone"

[commands]
key_delay = "25ms"
dry_run = true
`)
	s, err := Decode("settings.toml", data)
	require.NoError(t, err)
	assert.True(t, s.Trade.AutoWhisper)
	assert.Equal(t, "gone", s.Trade.SoldWhisper)
	assert.Equal(t, 25*time.Millisecond, s.Commands.KeyDelay.Std())
	assert.True(t, s.Commands.DryRun)
}

func TestDecode_EnvExpansion(t *testing.T) {
	t.Setenv("POE_LOG", "/games/poe/logs/Client.txt")
	s, err := Decode("settings.yml", []byte("game:\n  log_file: ${POE_LOG}\ntrade:\n  busy_whisper: ${UNSET_WHISPER:-one sec}\n"))
	require.NoError(t, err)
	assert.Equal(t, "/games/poe/logs/Client.txt", s.Game.LogFile)
	assert.Equal(t, "one sec", s.Trade.BusyWhisper)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode("settings.yml", []byte("trade: [not, a, map"))
	assert.True(t, overlayerrors.Is(err, overlayerrors.ErrCodeSettingsInvalid))

	_, err = Decode("settings.json", []byte("{}"))
	assert.True(t, overlayerrors.Is(err, overlayerrors.ErrCodeSettingsInvalid))
}

func TestFileStore_MissingFileUsesDefaults(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "settings.yml"))
	require.NoError(t, store.Load())

	s, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestFileStore_MalformedFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yml")
	require.NoError(t, os.WriteFile(path, []byte("trade: {auto_kick: maybe}"), 0o644))

	store := NewFileStore(path)
	err := store.Load()
	require.Error(t, err)

	s, _ := store.Get(context.Background())
	assert.Equal(t, Default(), s)
}

func TestFileStore_SaveAndReload(t *testing.T) {
	for _, name := range []string{"settings.yml", "settings.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			store := NewFileStore(path)
			ctx := context.Background()

			s, _ := store.Get(ctx)
			s.Trade.OverlayHighlightLeft = 12
			s.Trade.ThanksWhisper = "gg"
			require.NoError(t, store.Save(ctx, s))

			fresh := NewFileStore(path)
			require.NoError(t, fresh.Load())
			got, _ := fresh.Get(ctx)
			assert.Equal(t, 12, got.Trade.OverlayHighlightLeft)
			assert.Equal(t, "gg", got.Trade.ThanksWhisper)
			assert.Equal(t, DefaultPollInterval, got.Game.PollInterval.Std())

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temp file must not be left behind")
		})
	}
}

func TestFileStore_SaveRejectsInvalid(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "settings.yml"))
	s := Default()
	s.Commands.Burst = -1
	assert.Error(t, store.Save(context.Background(), s))
}

func TestFileStore_ReloadKeepsLastGood(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yml")
	require.NoError(t, os.WriteFile(path, []byte("trade:\n  auto_kick: true\n"), 0o644))
	store := NewFileStore(path)
	require.NoError(t, store.Load())

	require.NoError(t, os.WriteFile(path, []byte("trade: [broken"), 0o644))
	_, err := store.Reload()
	require.Error(t, err)

	s, _ := store.Get(context.Background())
	assert.True(t, s.Trade.AutoKick)
}

func TestFileStore_GetReturnsSnapshot(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "settings.yml"))
	a, _ := store.Get(context.Background())
	a.Trade.AutoKick = true
	b, _ := store.Get(context.Background())
	assert.False(t, b.Trade.AutoKick)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(nil)
	ctx := context.Background()

	s, err := store.Get(ctx)
	require.NoError(t, err)
	s.Trade.AutoWhisper = true
	require.NoError(t, store.Save(ctx, s))
	assert.Equal(t, 1, store.Saves())

	got, _ := store.Get(ctx)
	assert.True(t, got.Trade.AutoWhisper)
}

func TestConfigDir(t *testing.T) {
	t.Setenv("TRADE_OVERLAY_HOME", "/opt/overlay")
	assert.Equal(t, filepath.Join("/opt/overlay", "config"), ConfigDir())

	t.Setenv("TRADE_OVERLAY_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "trade-overlay"), ConfigDir())
}

func TestDefaultPath_PrefersExisting(t *testing.T) {
	home := t.TempDir()
	t.Setenv("TRADE_OVERLAY_HOME", home)
	assert.Equal(t, filepath.Join(home, "config", "settings.yml"), DefaultPath())

	require.NoError(t, os.MkdirAll(filepath.Join(home, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, "config", "settings.toml"), nil, 0o644))
	assert.Equal(t, filepath.Join(home, "config", "settings.toml"), DefaultPath())
}
