package transcript

import (
	"encoding/json"
	"strings"
)

// Markers looked for in the raw watch page.
const (
	captionsMarker     = `"captions":`
	videoDetailsMarker = `,"videoDetails`
	recaptchaMarker    = `class="g-recaptcha"`
	playabilityMarker  = `"playabilityStatus":`
)

type captionsData struct {
	Renderer *struct {
		// nil when the key is absent; an empty list decodes as non-nil.
		CaptionTracks []CaptionTrack `json:"captionTracks"`
	} `json:"playerCaptionsTracklistRenderer"`
}

// ExtractManifest carves the captions JSON out of a watch page and returns
// its caption tracks. Failures are classified by which marker is missing.
func ExtractManifest(page, videoID string) (*Manifest, error) {
	parts := strings.SplitN(page, captionsMarker, 3)
	if len(parts) < 2 {
		return nil, classifyPage(page, videoID)
	}

	// Only the text up to a repeated marker belongs to the captions object.
	section, _, _ := strings.Cut(parts[1], videoDetailsMarker)
	section = strings.ReplaceAll(section, "\n", "")

	var data captionsData
	if err := json.Unmarshal([]byte(section), &data); err != nil {
		return nil, errTranscriptDisabled(videoID)
	}
	if data.Renderer == nil {
		return nil, errTranscriptDisabled(videoID)
	}
	if data.Renderer.CaptionTracks == nil {
		return nil, errNoTranscript(videoID)
	}

	return &Manifest{Tracks: data.Renderer.CaptionTracks}, nil
}

// classifyPage explains a page with no captions marker. Captcha pages never
// carry playability data, and unavailable videos have no playability block.
func classifyPage(page, videoID string) error {
	if strings.Contains(page, recaptchaMarker) {
		return errRateLimited()
	}
	if !strings.Contains(page, playabilityMarker) {
		return errVideoUnavailable(videoID)
	}
	return errTranscriptDisabled(videoID)
}
