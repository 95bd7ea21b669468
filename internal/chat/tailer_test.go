package chat

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextLine(t *testing.T, tr *Tailer) string {
	t.Helper()
	select {
	case line, ok := <-tr.Lines():
		require.True(t, ok, "lines channel closed")
		return line
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a line")
		return ""
	}
}

func TestTailer_FollowsAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Client.txt")
	require.NoError(t, os.WriteFile(path, []byte("first\r\n"), 0o644))

	tr, err := Follow(path, FollowOptions{FromStart: true, Poll: true})
	require.NoError(t, err)
	defer tr.Stop()

	assert.Equal(t, path, tr.Path())
	assert.Equal(t, "first", nextLine(t, tr))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("second\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.Equal(t, "second", nextLine(t, tr))
}

func TestTailer_StopClosesLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Client.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	tr, err := Follow(path, FollowOptions{Poll: true})
	require.NoError(t, err)
	require.NoError(t, tr.Stop())
	assert.NoError(t, tr.Stop(), "second stop is a no-op")

	select {
	case _, ok := <-tr.Lines():
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("lines channel not closed after Stop")
	}
}
