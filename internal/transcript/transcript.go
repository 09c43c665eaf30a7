// Package transcript fetches and parses video closed captions.
//
// A fetch runs four stages in order and stops at the first failure:
// resolve the video id, extract the caption manifest from the watch page,
// select a track, then download and scan the timed-text payload.
package transcript

import (
	"context"
	"fmt"

	"github.com/gndm/ytTranscript/internal/fetch"
)

const watchURL = "https://www.youtube.com/watch?v="

// Fetch returns the transcript for a video id or URL.
func Fetch(ctx context.Context, input string, cfg Config) ([]Segment, error) {
	videoID, err := ResolveVideoID(input)
	if err != nil {
		return nil, err
	}

	g, err := fetch.New(cfg.Transport)
	if err != nil {
		return nil, fmt.Errorf("configuring transport: %w", err)
	}
	defer g.Close()

	manifest, err := fetchManifest(ctx, g, videoID, cfg.Lang)
	if err != nil {
		return nil, err
	}

	track, err := SelectTrack(manifest, videoID, cfg.Lang)
	if err != nil {
		return nil, err
	}

	// SelectTrack succeeded, so there is at least one track.
	return FetchTimedText(ctx, g, track.BaseURL, cfg.Lang, manifest.Tracks[0].LanguageCode)
}

// Languages returns the caption language codes a video offers, in page order.
func Languages(ctx context.Context, input string, cfg Config) ([]string, error) {
	videoID, err := ResolveVideoID(input)
	if err != nil {
		return nil, err
	}

	g, err := fetch.New(cfg.Transport)
	if err != nil {
		return nil, fmt.Errorf("configuring transport: %w", err)
	}
	defer g.Close()

	manifest, err := fetchManifest(ctx, g, videoID, cfg.Lang)
	if err != nil {
		return nil, err
	}
	return manifest.Languages(), nil
}

// fetchManifest loads the watch page and extracts its manifest. The page
// status is not checked: error pages are classified by their content.
func fetchManifest(ctx context.Context, g fetch.Getter, videoID, lang string) (*Manifest, error) {
	resp, err := g.Get(ctx, watchURL+videoID, requestHeader(lang))
	if err != nil {
		return nil, fmt.Errorf("fetching watch page: %w", err)
	}
	return ExtractManifest(resp.Body, videoID)
}
