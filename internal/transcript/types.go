package transcript

import (
	"encoding/json"
	"math"

	"github.com/samber/lo"

	"github.com/gndm/ytTranscript/internal/fetch"
)

// CaptionTrack is one language-specific timed-text resource listed in a manifest.
type CaptionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
}

// Manifest holds a video's caption tracks in the order the page lists them.
type Manifest struct {
	Tracks []CaptionTrack
}

// Languages returns the track language codes in manifest order.
func (m *Manifest) Languages() []string {
	return lo.Map(m.Tracks, func(t CaptionTrack, _ int) string {
		return t.LanguageCode
	})
}

// Segment is one timed unit of transcript text. Offset and Duration are in seconds.
type Segment struct {
	Text     string  `json:"text"`
	Offset   float64 `json:"offset"`
	Duration float64 `json:"duration"`
	Lang     string  `json:"lang,omitempty"`
}

// MarshalJSON encodes non-finite offsets and durations as null, since
// malformed timing attributes are kept as NaN.
func (s Segment) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Text     string   `json:"text"`
		Offset   *float64 `json:"offset"`
		Duration *float64 `json:"duration"`
		Lang     string   `json:"lang,omitempty"`
	}{
		Text:     s.Text,
		Offset:   finite(s.Offset),
		Duration: finite(s.Duration),
		Lang:     s.Lang,
	})
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Config is the read-only per-call configuration.
type Config struct {
	// Lang is a short language tag such as "en". Empty means the page default.
	Lang string
	// Transport overrides how requests are routed. Nil means no override.
	Transport fetch.Override
}
