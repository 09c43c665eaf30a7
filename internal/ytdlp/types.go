package ytdlp

// PlaylistEntry represents a single video from a YouTube playlist.
type PlaylistEntry struct {
	Title   string `json:"title"`
	VideoID string `json:"id"`
	URL     string `json:"url"`
}

// Input returns the most specific reference to the video: the id when
// yt-dlp reported one, otherwise the URL.
func (e PlaylistEntry) Input() string {
	if e.VideoID != "" {
		return e.VideoID
	}
	return e.URL
}
