package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"
)

// Client lists the videos behind a playlist URL.
type Client interface {
	GetPlaylist(ctx context.Context, playlistURL string) ([]PlaylistEntry, error)
}

// CommandClient implements Client by calling the yt-dlp binary.
type CommandClient struct {
	// BinaryPath is the path to the yt-dlp executable. Defaults to "yt-dlp".
	BinaryPath string
}

// NewClient creates a new yt-dlp CommandClient.
func NewClient(binaryPath string) *CommandClient {
	return &CommandClient{BinaryPath: binaryPath}
}

// GetPlaylist fetches all video entries from a playlist URL. Only flat
// metadata is requested; nothing is downloaded.
func (c *CommandClient) GetPlaylist(ctx context.Context, playlistURL string) ([]PlaylistEntry, error) {
	bin := c.BinaryPath
	if bin == "" {
		bin = "yt-dlp"
	}

	args := []string{"--dump-json", "--no-warnings", "--skip-download"}
	if IsPlaylistURL(playlistURL) {
		args = append(args, "--flat-playlist")
	} else {
		args = append(args, "--no-playlist")
	}
	args = append(args, playlistURL)

	log.Printf("[ytdlp] listing %s", playlistURL)
	cmd := exec.CommandContext(ctx, bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	var entries []PlaylistEntry
	dec := json.NewDecoder(&stdout)
	for {
		var entry PlaylistEntry
		if err := dec.Decode(&entry); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
		}
		entries = append(entries, entry)
	}

	log.Printf("[ytdlp] %d entries in %s", len(entries), playlistURL)
	return entries, nil
}

// IsPlaylistURL reports whether the URL names a playlist rather than one video.
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, "list=")
}
