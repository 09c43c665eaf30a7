package transcript

import "github.com/samber/lo"

// SelectTrack picks the track for lang, or the first track when lang is empty.
func SelectTrack(m *Manifest, videoID, lang string) (CaptionTrack, error) {
	if lang == "" {
		if len(m.Tracks) == 0 {
			return CaptionTrack{}, errNoTranscript(videoID)
		}
		return m.Tracks[0], nil
	}

	track, ok := lo.Find(m.Tracks, func(t CaptionTrack) bool {
		return t.LanguageCode == lang
	})
	if !ok {
		return CaptionTrack{}, errLanguageNotFound(lang, m.Languages(), videoID)
	}
	return track, nil
}
