package spright

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Glyph locates one rasterized rune within the atlas texture.
type Glyph struct {
	// Src is the glyph's texel rectangle in the atlas.
	Src Rect

	// Offset is the pen-relative position of the glyph box, in pixels at
	// scale 1.
	Offset mgl32.Vec2

	// Advance is the pen advance after this glyph, in pixels at scale 1.
	Advance float32
}

// GlyphAtlas rasterizes a font into a single texture and lays text out as
// sprites referencing it. Glyphs are white with coverage in alpha, so the
// sprite tint recolors them for free.
type GlyphAtlas struct {
	img    *image.RGBA
	glyphs map[rune]Glyph
	face   font.Face
}

const atlasSize = 512

// NewGlyphAtlas parses TTF/OTF data and rasterizes the printable ASCII
// range at the given point size.
func NewGlyphAtlas(fontData []byte, fontSize float64) (*GlyphAtlas, error) {
	f, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}

	atlas := image.NewRGBA(image.Rect(0, 0, atlasSize, atlasSize))
	glyphs := make(map[rune]Glyph)

	x, y := 2, 2
	rowHeight := 0

	for r := rune(32); r < 127; r++ {
		bounds, mask, _, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}

		w := mask.Bounds().Dx()
		h := mask.Bounds().Dy()

		if x+w >= atlasSize {
			x = 2
			y += rowHeight + 4
			rowHeight = 0
		}

		if y+h >= atlasSize {
			return nil, fmt.Errorf("glyphs at size %g overflow the %dpx atlas", fontSize, atlasSize)
		}

		draw.DrawMask(atlas, image.Rect(x, y, x+w, y+h), image.White, image.Point{}, mask, mask.Bounds().Min, draw.Over)

		glyphs[r] = Glyph{
			Src:     Rect{X: float32(x), Y: float32(y), Width: float32(w), Height: float32(h)},
			Offset:  mgl32.Vec2{float32(bounds.Min.X), float32(bounds.Min.Y)},
			Advance: float32(adv) / 64.0, // fixed 26.6 to float
		}

		x += w + 4
		if h > rowHeight {
			rowHeight = h
		}
	}

	return &GlyphAtlas{
		img:    atlas,
		glyphs: glyphs,
		face:   face,
	}, nil
}

// Image returns the atlas pixels for upload, e.g. via
// Assets.LoadTextureImage.
func (a *GlyphAtlas) Image() *image.RGBA { return a.img }

// Glyph returns the atlas entry for a rune, if it was rasterized.
func (a *GlyphAtlas) Glyph(r rune) (Glyph, bool) {
	g, ok := a.glyphs[r]
	return g, ok
}

// Layout turns text into sprites referencing the atlas texture. x, y is the
// top-left corner of the first line in pixels; newlines advance the pen
// down by the face's line height.
func (a *GlyphAtlas) Layout(text string, x, y, scale float32, tint mgl32.Vec4) []Sprite {
	sprites := make([]Sprite, 0, len(text))

	metrics := a.face.Metrics()
	ascent := float32(metrics.Ascent.Ceil())
	lineHeight := float32(metrics.Height.Ceil())

	penX := x
	penY := y + ascent*scale

	for _, r := range text {
		if r == '\n' {
			penX = x
			penY += lineHeight * scale
			continue
		}

		g, ok := a.glyphs[r]
		if !ok {
			continue
		}

		sprites = append(sprites, Sprite{
			Src: g.Src,
			Dest: Rect{
				X:      penX + g.Offset.X()*scale,
				Y:      penY + g.Offset.Y()*scale,
				Width:  g.Src.Width * scale,
				Height: g.Src.Height * scale,
			},
			Tint: tint,
		})

		penX += g.Advance * scale
	}

	return sprites
}

// Measure returns the pixel width and height the text would occupy at the
// given scale.
func (a *GlyphAtlas) Measure(text string, scale float32) (float32, float32) {
	metrics := a.face.Metrics()
	lineHeight := float32(metrics.Height.Ceil())

	maxW := float32(0)
	currentW := float32(0)
	lines := 1

	for _, r := range text {
		if r == '\n' {
			if currentW > maxW {
				maxW = currentW
			}
			currentW = 0
			lines++
			continue
		}

		g, ok := a.glyphs[r]
		if !ok {
			continue
		}
		currentW += g.Advance * scale
	}

	if currentW > maxW {
		maxW = currentW
	}

	return maxW, lineHeight * scale * float32(lines)
}

// LineHeight returns the face's line height at the given scale.
func (a *GlyphAtlas) LineHeight(scale float32) float32 {
	return float32(a.face.Metrics().Height.Ceil()) * scale
}
