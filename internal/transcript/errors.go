package transcript

import (
	"errors"
	"fmt"
	"strings"

	"github.com/orsinium-labs/enum"
)

// Kind classifies a transcript failure.
type Kind enum.Member[string]

var (
	KindResolutionFailed   = Kind{Value: "resolution_failed"}
	KindRateLimited        = Kind{Value: "rate_limited"}
	KindVideoUnavailable   = Kind{Value: "video_unavailable"}
	KindTranscriptDisabled = Kind{Value: "transcript_disabled"}
	KindNoTranscript       = Kind{Value: "no_transcript"}
	KindLanguageNotFound   = Kind{Value: "language_not_found"}

	Kinds = enum.New(
		KindResolutionFailed,
		KindRateLimited,
		KindVideoUnavailable,
		KindTranscriptDisabled,
		KindNoTranscript,
		KindLanguageNotFound,
	)
)

func (k Kind) String() string {
	return k.Value
}

// Error is returned for every classified failure. Only the fields relevant
// to Kind are set.
type Error struct {
	Kind Kind
	// Input is the raw string that could not be resolved.
	Input string
	// VideoID is the resolved identifier.
	VideoID string
	// URL is the caption track URL when the track itself yielded nothing.
	URL string
	// Lang is the requested language.
	Lang string
	// Available lists the language codes the video does offer.
	Available []string
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindResolutionFailed:
		return fmt.Sprintf("could not extract a video id from %q", e.Input)
	case KindRateLimited:
		return "rate limited: the video host is serving a captcha"
	case KindVideoUnavailable:
		return fmt.Sprintf("video %q is unavailable", e.VideoID)
	case KindTranscriptDisabled:
		return fmt.Sprintf("transcripts are disabled for video %q", e.VideoID)
	case KindNoTranscript:
		if e.URL != "" {
			return fmt.Sprintf("no transcript at %s", e.URL)
		}
		return fmt.Sprintf("no transcripts available for video %q", e.VideoID)
	case KindLanguageNotFound:
		return fmt.Sprintf("no %q transcript for video %q (available: %s)",
			e.Lang, e.VideoID, strings.Join(e.Available, ", "))
	default:
		return "transcript error"
	}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return Kind{}, false
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func errResolutionFailed(input string) error {
	return &Error{Kind: KindResolutionFailed, Input: input}
}

func errRateLimited() error {
	return &Error{Kind: KindRateLimited}
}

func errVideoUnavailable(videoID string) error {
	return &Error{Kind: KindVideoUnavailable, VideoID: videoID}
}

func errTranscriptDisabled(videoID string) error {
	return &Error{Kind: KindTranscriptDisabled, VideoID: videoID}
}

func errNoTranscript(videoID string) error {
	return &Error{Kind: KindNoTranscript, VideoID: videoID}
}

func errNoTranscriptAt(trackURL string) error {
	return &Error{Kind: KindNoTranscript, URL: trackURL}
}

func errLanguageNotFound(lang string, available []string, videoID string) error {
	return &Error{Kind: KindLanguageNotFound, Lang: lang, Available: available, VideoID: videoID}
}
