package transcript

import (
	"regexp"
	"unicode/utf8"
)

const videoIDLength = 11

// videoIDPattern matches watch, embed, /v/, /e/, short-link and generic
// channel-path URLs and captures the 11-character id.
var videoIDPattern = regexp.MustCompile(`(?i)(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

// ResolveVideoID returns the canonical video id for a raw id or a video URL.
// Any 11-character input is taken as an id without further checks.
func ResolveVideoID(input string) (string, error) {
	if utf8.RuneCountInString(input) == videoIDLength {
		return input, nil
	}

	if m := videoIDPattern.FindStringSubmatch(input); len(m) > 1 && m[1] != "" {
		return m[1], nil
	}

	return "", errResolutionFailed(input)
}
