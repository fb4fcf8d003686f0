package document

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestBuildImagelessDocument(t *testing.T) {
	b := NewBuilder("")

	out, err := b.Build([]string{"A", "B"}, nil, "hello")
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	// Title page and story page, no illustration page.
	pdf := b.compose([]string{"A", "B"}, nil, "hello")
	assert.Equal(t, 2, pdf.PageCount())
	assert.False(t, pdf.Err())
}

func TestBuildWithIllustration(t *testing.T) {
	b := NewBuilder("")

	img := tinyPNG(t)
	pdf := b.compose([]string{"A", "B", "C"}, img, "hello")
	assert.Equal(t, 3, pdf.PageCount())
	assert.False(t, pdf.Err())

	out, err := b.Build([]string{"A", "B", "C"}, img, "hello")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestBuildPlacesPlaceholderForBadImage(t *testing.T) {
	b := NewBuilder("")

	pdf := b.compose([]string{"A"}, []byte("not an image"), "hello")
	assert.Equal(t, 3, pdf.PageCount())
	assert.False(t, pdf.Err(), "a bad payload must degrade, not fail the document")

	out, err := b.Build([]string{"A"}, []byte("not an image"), "hello")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestBuildRequiresParagraphs(t *testing.T) {
	_, err := NewBuilder("").Build(nil, nil, "hello")
	assert.Error(t, err)
}

func TestBuildLongStoryPaginates(t *testing.T) {
	b := NewBuilder("")

	paragraph := strings.TrimSpace(strings.Repeat("sentence after sentence ", 40))
	paragraphs := make([]string, 12)
	for i := range paragraphs {
		paragraphs[i] = paragraph
	}

	pdf := b.compose(paragraphs, nil, "hello")
	assert.Greater(t, pdf.PageCount(), 2, "a long story must overflow onto extra pages")
	assert.False(t, pdf.Err())
}

func TestTruncatePrompt(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{
			name:   "short prompt unmodified",
			prompt: "hello",
			want:   "hello",
		},
		{
			name:   "exactly fifty unmodified",
			prompt: strings.Repeat("a", 50),
			want:   strings.Repeat("a", 50),
		},
		{
			name:   "fifty-one gets cut to forty-seven plus ellipsis",
			prompt: strings.Repeat("a", 51),
			want:   strings.Repeat("a", 47) + "...",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncatePrompt(tt.prompt))
		})
	}
}

func TestResolveTypefaceFallback(t *testing.T) {
	assert.Equal(t, fallbackFace, ResolveTypeface(""))
	assert.Equal(t, fallbackFace, ResolveTypeface(filepath.Join(t.TempDir(), "missing.ttf")))
}

func TestResolveTypefaceRejectsMalformedFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.ttf")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a font"), 0o644))

	assert.Equal(t, fallbackFace, ResolveTypeface(path))
}
