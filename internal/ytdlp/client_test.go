package ytdlp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBinary writes a shell script standing in for yt-dlp.
func fakeBinary(t *testing.T, script string) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "yt-dlp")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"+script), 0755))
	return bin
}

func TestGetPlaylist(t *testing.T) {
	bin := fakeBinary(t, `
echo '{"title":"Never Gonna Give You Up","id":"dQw4w9WgXcQ","url":"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}'
echo '{"title":"Me at the zoo","id":"jNQXAC9IVRw","url":"https://www.youtube.com/watch?v=jNQXAC9IVRw"}'
`)

	client := NewClient(bin)
	entries, err := client.GetPlaylist(context.Background(), "https://www.youtube.com/playlist?list=test")
	require.NoError(t, err)

	want := []PlaylistEntry{
		{Title: "Never Gonna Give You Up", VideoID: "dQw4w9WgXcQ", URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
		{Title: "Me at the zoo", VideoID: "jNQXAC9IVRw", URL: "https://www.youtube.com/watch?v=jNQXAC9IVRw"},
	}
	assert.Equal(t, want, entries)
}

func TestGetPlaylistArguments(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	bin := fakeBinary(t, `echo "$@" > `+argsFile+"\n")

	client := NewClient(bin)

	_, err := client.GetPlaylist(context.Background(), "https://www.youtube.com/playlist?list=abc")
	require.NoError(t, err)
	args, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Contains(t, string(args), "--flat-playlist")
	assert.Contains(t, string(args), "--skip-download")

	_, err = client.GetPlaylist(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)
	args, err = os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Contains(t, string(args), "--no-playlist")
}

func TestGetPlaylistError(t *testing.T) {
	bin := fakeBinary(t, `
echo "ERROR: Invalid URL" >&2
exit 1
`)

	client := NewClient(bin)
	_, err := client.GetPlaylist(context.Background(), "not-a-url")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Invalid URL"))
}

func TestGetPlaylistBadOutput(t *testing.T) {
	bin := fakeBinary(t, `echo 'not json'`)

	client := NewClient(bin)
	_, err := client.GetPlaylist(context.Background(), "https://www.youtube.com/playlist?list=x")
	assert.Error(t, err)
}

func TestGetPlaylistEmpty(t *testing.T) {
	bin := fakeBinary(t, "# Empty playlist, no output\n")

	client := NewClient(bin)
	entries, err := client.GetPlaylist(context.Background(), "https://www.youtube.com/playlist?list=empty")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetPlaylistContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("")
	_, err := client.GetPlaylist(ctx, "https://www.youtube.com/playlist?list=test")
	assert.Error(t, err)
}

func TestPlaylistEntryInput(t *testing.T) {
	assert.Equal(t, "dQw4w9WgXcQ", PlaylistEntry{VideoID: "dQw4w9WgXcQ", URL: "https://youtu.be/x"}.Input())
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", PlaylistEntry{URL: "https://youtu.be/dQw4w9WgXcQ"}.Input())
}

func TestIsPlaylistURL(t *testing.T) {
	assert.True(t, IsPlaylistURL("https://www.youtube.com/playlist?list=PL123"))
	assert.True(t, IsPlaylistURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL123"))
	assert.False(t, IsPlaylistURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
}
