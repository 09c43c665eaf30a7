package render

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/gndm/ytTranscript/internal/transcript"
)

// Explain turns an error into the multi-line message shown to people.
// Errors outside the transcript taxonomy are returned as-is.
func Explain(err error) string {
	var e *transcript.Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	switch e.Kind {
	case transcript.KindResolutionFailed:
		return "🔎  Invalid Video\n" +
			"\n" +
			fmt.Sprintf("Could not extract a video ID from %q.", e.Input)
	case transcript.KindRateLimited:
		return "⚠️  Rate Limit Exceeded\n" +
			"\n" +
			"YouTube is receiving too many requests from this IP.\n" +
			"Please try again later or use a different IP address."
	case transcript.KindVideoUnavailable:
		return "🚫  Video Unavailable\n" +
			"\n" +
			fmt.Sprintf("The video %q is no longer available.\n", e.VideoID) +
			"It may have been removed or set to private."
	case transcript.KindTranscriptDisabled:
		return "❌  Transcripts Disabled\n" +
			"\n" +
			fmt.Sprintf("Transcripts are disabled for video %q.\n", e.VideoID) +
			"The video owner has not enabled transcripts for this content."
	case transcript.KindNoTranscript:
		ref := e.VideoID
		if ref == "" {
			ref = e.URL
		}
		return "📝  No Transcripts Available\n" +
			"\n" +
			fmt.Sprintf("No transcripts were found for video %q.\n", ref) +
			"This video may not have any transcripts generated yet."
	case transcript.KindLanguageNotFound:
		return "🌐  Language Not Available\n" +
			"\n" +
			fmt.Sprintf("Transcripts in %q are not available for video %q.\n", e.Lang, e.VideoID) +
			"\n" +
			"Available languages:\n" +
			LanguageList(e.Available)
	default:
		return e.Error()
	}
}

// LanguageList renders one bullet per code, with the English language name
// when the code is a recognised tag.
func LanguageList(codes []string) string {
	lines := make([]string, 0, len(codes))
	for _, code := range codes {
		if name := LanguageName(code); name != "" {
			lines = append(lines, fmt.Sprintf("  • %s (%s)", code, name))
		} else {
			lines = append(lines, "  • "+code)
		}
	}
	return strings.Join(lines, "\n")
}

// LanguageName returns the English name for a language tag, or "".
func LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	return display.English.Languages().Name(tag)
}

// Box frames a message the way the terminal error output is drawn.
func Box(message string) string {
	aligned := strings.ReplaceAll(message, "\n", "\n  ")
	return "╭─────────────── YouTube Transcript Error ───────────────╮\n" +
		"│                                                        │\n" +
		"  " + aligned + "\n" +
		"│                                                        │\n" +
		"╰────────────────────────────────────────────────────────╯"
}
