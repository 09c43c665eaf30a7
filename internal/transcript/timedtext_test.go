package transcript

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gndm/ytTranscript/internal/fetch"
)

const twoCaptions = `<?xml version="1.0" encoding="utf-8" ?><transcript>
<text start="0" dur="2.5">First caption</text>
<text start="2.5" dur="3.0">Second caption</text>
</transcript>`

func TestParseTimedText(t *testing.T) {
	got := ParseTimedText(twoCaptions, "en")

	want := []Segment{
		{Text: "First caption", Offset: 0, Duration: 2.5, Lang: "en"},
		{Text: "Second caption", Offset: 2.5, Duration: 3.0, Lang: "en"},
	}
	assert.Equal(t, want, got)
}

func TestParseTimedTextKeepsEntitiesVerbatim(t *testing.T) {
	got := ParseTimedText(`<text start="1" dur="1">Tom &amp;amp; Jerry &#39;s</text>`, "")
	require.Len(t, got, 1)
	assert.Equal(t, "Tom &amp;amp; Jerry &#39;s", got[0].Text)
	assert.Empty(t, got[0].Lang)
}

func TestParseTimedTextPartialDocument(t *testing.T) {
	body := `<transcript><text start="1" dur="2">ok</text><text start="3" dur="1">broken <b>tag</b></text>` +
		`<text start="4" dur="1">also ok</text><text start="5" dur="1">trunc`

	got := ParseTimedText(body, "en")
	require.Len(t, got, 2)
	assert.Equal(t, "ok", got[0].Text)
	assert.Equal(t, "also ok", got[1].Text)
	assert.Equal(t, 4.0, got[1].Offset)
}

func TestParseTimedTextNoMatches(t *testing.T) {
	got := ParseTimedText(`<transcript></transcript>`, "en")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseTimedTextMalformedNumbers(t *testing.T) {
	got := ParseTimedText(`<text start="abc" dur="">x</text>`, "en")
	require.Len(t, got, 1)
	assert.True(t, math.IsNaN(got[0].Offset))
	assert.True(t, math.IsNaN(got[0].Duration))
	assert.Equal(t, "x", got[0].Text)
}

func TestParseSecondsLeadingNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.5", 1.5},
		{"1.5s", 1.5},
		{" 2", 2},
		{"\t3.25\n", 3.25},
		{"0x10", 0},
		{"1_000", 1},
		{".5", 0.5},
		{"5.", 5},
		{"-1e2x", -100},
		{"+4", 4},
		{"1e", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseSeconds(tt.in), "input %q", tt.in)
	}

	assert.True(t, math.IsInf(parseSeconds("1e400"), 1))
	assert.True(t, math.IsInf(parseSeconds("Infinity"), 1))
	assert.True(t, math.IsInf(parseSeconds("-Infinity"), -1))
	for _, in := range []string{"", "abc", "-", ".", "e5", "inf", "NaN"} {
		assert.True(t, math.IsNaN(parseSeconds(in)), "input %q", in)
	}
}

func TestFetchTimedText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "es", r.Header.Get("Accept-Language"))
		w.Write([]byte(twoCaptions))
	}))
	defer server.Close()

	g, err := fetch.New(nil)
	require.NoError(t, err)

	got, err := FetchTimedText(context.Background(), g, server.URL+"/api/timedtext", "es", "en")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "es", got[0].Lang)
}

func TestFetchTimedTextDefaultLang(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Accept-Language"))
		w.Write([]byte(twoCaptions))
	}))
	defer server.Close()

	g, err := fetch.New(nil)
	require.NoError(t, err)

	got, err := FetchTimedText(context.Background(), g, server.URL, "", "de")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "de", got[1].Lang)
}

func TestFetchTimedTextNonSuccess(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusForbidden, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			// A valid body must not rescue a failed status.
			w.Write([]byte(twoCaptions))
		}))

		g, err := fetch.New(nil)
		require.NoError(t, err)

		trackURL := server.URL + "/api/timedtext"
		_, err = FetchTimedText(context.Background(), g, trackURL, "", "en")

		var terr *Error
		require.ErrorAs(t, err, &terr, "status %d", status)
		assert.Equal(t, KindNoTranscript, terr.Kind)
		assert.Equal(t, trackURL, terr.URL)

		server.Close()
	}
}

func TestSegmentMarshalJSON(t *testing.T) {
	seg := Segment{Text: "x", Offset: math.NaN(), Duration: 1.5, Lang: "en"}
	data, err := seg.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"x","offset":null,"duration":1.5,"lang":"en"}`, string(data))
}
