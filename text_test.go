package spright

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func testAtlas(t *testing.T) *GlyphAtlas {
	t.Helper()
	atlas, err := NewGlyphAtlas(goregular.TTF, 24)
	require.NoError(t, err)
	return atlas
}

func TestNewGlyphAtlas(t *testing.T) {
	atlas := testAtlas(t)

	img := atlas.Image()
	assert.Equal(t, atlasSize, img.Bounds().Dx())
	assert.Equal(t, atlasSize, img.Bounds().Dy())

	// The printable ASCII range ended up in the atlas, each inside its
	// bounds.
	for r := rune('!'); r < 127; r++ {
		g, ok := atlas.Glyph(r)
		require.True(t, ok, "missing glyph %q", r)
		assert.GreaterOrEqual(t, g.Src.X, float32(0))
		assert.GreaterOrEqual(t, g.Src.Y, float32(0))
		assert.LessOrEqual(t, g.Src.Right(), float32(atlasSize))
		assert.LessOrEqual(t, g.Src.Bottom(), float32(atlasSize))
	}
}

func TestNewGlyphAtlas_BadFont(t *testing.T) {
	_, err := NewGlyphAtlas([]byte("not a font"), 24)
	assert.Error(t, err)
}

func TestGlyphAtlas_Layout(t *testing.T) {
	atlas := testAtlas(t)
	tint := mgl32.Vec4{1, 0.8, 0.2, 1}

	sprites := atlas.Layout("AB", 10, 20, 1, tint)
	require.Len(t, sprites, 2)

	for _, s := range sprites {
		assert.Equal(t, tint, s.Tint)
		assert.Greater(t, s.Dest.Width, float32(0))
		assert.Greater(t, s.Dest.Height, float32(0))
	}

	// The second glyph starts one advance to the right of the first.
	a, _ := atlas.Glyph('A')
	b, _ := atlas.Glyph('B')
	assert.Equal(t, 10+a.Offset.X(), sprites[0].Dest.X)
	assert.Equal(t, 10+a.Advance+b.Offset.X(), sprites[1].Dest.X)
}

func TestGlyphAtlas_LayoutNewline(t *testing.T) {
	atlas := testAtlas(t)

	oneLine := atlas.Layout("A", 0, 0, 1, White)
	twoLines := atlas.Layout("A\nA", 0, 0, 1, White)
	require.Len(t, oneLine, 1)
	require.Len(t, twoLines, 2)

	assert.Equal(t, oneLine[0].Dest.X, twoLines[1].Dest.X, "newline resets the pen to the left margin")
	assert.Equal(t, oneLine[0].Dest.Y+atlas.LineHeight(1), twoLines[1].Dest.Y)
}

func TestGlyphAtlas_LayoutSkipsMissingRunes(t *testing.T) {
	atlas := testAtlas(t)

	sprites := atlas.Layout("AテB", 0, 0, 1, White)
	assert.Len(t, sprites, 2, "runes outside the rasterized range are skipped")
}

func TestGlyphAtlas_Measure(t *testing.T) {
	atlas := testAtlas(t)

	w1, h1 := atlas.Measure("AB", 1)
	assert.Greater(t, w1, float32(0))
	assert.Equal(t, atlas.LineHeight(1), h1)

	w2, h2 := atlas.Measure("AB\nABAB", 1)
	assert.Greater(t, w2, w1)
	assert.Equal(t, 2*atlas.LineHeight(1), h2)

	// Scale multiplies both dimensions.
	w3, h3 := atlas.Measure("AB", 2)
	assert.InDelta(t, float64(2*w1), float64(w3), 1e-4)
	assert.Equal(t, 2*h1, h3)
}
