package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManifest() *Manifest {
	return &Manifest{Tracks: []CaptionTrack{
		{BaseURL: "https://example.test/en", LanguageCode: "en"},
		{BaseURL: "https://example.test/es", LanguageCode: "es"},
	}}
}

func TestSelectTrackDefault(t *testing.T) {
	track, err := SelectTrack(testManifest(), testVideoID, "")
	require.NoError(t, err)
	assert.Equal(t, "en", track.LanguageCode)
	assert.Equal(t, "https://example.test/en", track.BaseURL)
}

func TestSelectTrackRequested(t *testing.T) {
	track, err := SelectTrack(testManifest(), testVideoID, "es")
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/es", track.BaseURL)
}

func TestSelectTrackFirstMatchWins(t *testing.T) {
	m := &Manifest{Tracks: []CaptionTrack{
		{BaseURL: "https://example.test/en-manual", LanguageCode: "en"},
		{BaseURL: "https://example.test/en-auto", LanguageCode: "en"},
	}}

	track, err := SelectTrack(m, testVideoID, "en")
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/en-manual", track.BaseURL)
}

func TestSelectTrackLanguageNotFound(t *testing.T) {
	_, err := SelectTrack(testManifest(), testVideoID, "fr")

	var terr *Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, KindLanguageNotFound, terr.Kind)
	assert.Equal(t, "fr", terr.Lang)
	assert.Equal(t, []string{"en", "es"}, terr.Available)
	assert.Equal(t, testVideoID, terr.VideoID)
}

func TestSelectTrackEmptyManifest(t *testing.T) {
	_, err := SelectTrack(&Manifest{Tracks: []CaptionTrack{}}, testVideoID, "")
	assert.True(t, IsKind(err, KindNoTranscript), "got %v", err)
}

func TestSelectTrackEmptyManifestWithLanguage(t *testing.T) {
	_, err := SelectTrack(&Manifest{}, testVideoID, "en")

	var terr *Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, KindLanguageNotFound, terr.Kind)
	assert.Empty(t, terr.Available)
}
