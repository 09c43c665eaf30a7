package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveVideoID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"direct id", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"any 11 chars pass through", "not/a?vid&x", "not/a?vid&x"},
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url with extra params", "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"mobile watch url", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short url with query", "youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ"},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"v url", "https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"e url", "https://www.youtube.com/e/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"generic path", "https://www.youtube.com/user/somebody/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"upper case host", "HTTPS://WWW.YOUTUBE.COM/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveVideoID(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveVideoIDFailure(t *testing.T) {
	inputs := []string{
		"",
		"invalid-id",
		"https://example.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=short",
		"https://www.youtube.com/feed/trending",
	}

	for _, input := range inputs {
		_, err := ResolveVideoID(input)
		require.Error(t, err, "input %q", input)
		assert.True(t, IsKind(err, KindResolutionFailed), "input %q: %v", input, err)

		var terr *Error
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, input, terr.Input)
	}
}
