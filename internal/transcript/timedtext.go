package transcript

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/gndm/ytTranscript/internal/fetch"
)

// UserAgent is sent with every request.
const UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_4) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/85.0.4183.83 Safari/537.36,gzip(gfe)"

// timedTextPattern matches one caption line. The payload is scanned, not
// parsed, so partial or badly escaped documents still yield every line that
// matches.
var timedTextPattern = regexp.MustCompile(`<text start="([^"]*)" dur="([^"]*)">([^<]*)</text>`)

// FetchTimedText downloads a caption track and parses it. Segments are tagged
// with lang, or defaultLang when lang is empty.
func FetchTimedText(ctx context.Context, g fetch.Getter, trackURL, lang, defaultLang string) ([]Segment, error) {
	resp, err := g.Get(ctx, trackURL, requestHeader(lang))
	if err != nil {
		return nil, fmt.Errorf("fetching caption track: %w", err)
	}
	if !resp.OK() {
		return nil, errNoTranscriptAt(trackURL)
	}

	if lang == "" {
		lang = defaultLang
	}
	return ParseTimedText(resp.Body, lang), nil
}

// ParseTimedText extracts every <text start dur> element in document order.
// Text is returned verbatim, without entity decoding. A payload with no
// matches yields an empty slice.
func ParseTimedText(body, lang string) []Segment {
	matches := timedTextPattern.FindAllStringSubmatch(body, -1)

	segments := make([]Segment, 0, len(matches))
	for _, m := range matches {
		segments = append(segments, Segment{
			Text:     m[3],
			Offset:   parseSeconds(m[1]),
			Duration: parseSeconds(m[2]),
			Lang:     lang,
		})
	}
	return segments
}

// leadingNumber matches the decimal number at the start of an attribute.
// Trailing garbage is ignored and hex or underscore forms stop at the
// first digit.
var leadingNumber = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// parseSeconds reads the leading decimal number of s, after leading
// whitespace. Values with no leading number are NaN; values beyond
// float64 range are ±Inf.
func parseSeconds(s string) float64 {
	num := leadingNumber.FindString(strings.TrimLeftFunc(s, unicode.IsSpace))
	if num == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return v
}

func requestHeader(lang string) http.Header {
	h := http.Header{}
	h.Set("User-Agent", UserAgent)
	if lang != "" {
		h.Set("Accept-Language", lang)
	}
	return h
}
