// Package spright renders tinted, textured rectangles (sprites and glyphs)
// in screen space over a webgpu device. The host owns the device, surface
// and render pass; spright owns the sprite pipeline, its shader and the
// buffers and bind groups each draw needs.
package spright

import (
	"github.com/go-gl/mathgl/mgl32"
)

// White is the identity tint: it leaves the sampled texel untouched.
var White = mgl32.Vec4{1, 1, 1, 1}

// Rect is an axis-aligned rectangle in pixel units.
type Rect struct {
	// X, Y is the top-left corner.
	X float32
	Y float32

	Width  float32
	Height float32
}

func (r Rect) Left() float32 { return r.X }

func (r Rect) Top() float32 { return r.Y }

func (r Rect) Right() float32 { return r.X + r.Width }

func (r Rect) Bottom() float32 { return r.Y + r.Height }

// Sprite maps a source rectangle of a texture onto a destination rectangle
// of the render target. Tint multiplies the sampled texel component-wise;
// Z is forwarded unmodified as the clip-space depth hint.
type Sprite struct {
	// Src is in texel units within the group's texture.
	Src Rect

	// Dest is in pixel units on the render target.
	Dest Rect

	Tint mgl32.Vec4
	Z    float32
}

// Group is a batch of sprites drawn from the same texture.
type Group struct {
	Texture *Texture
	Sprites []Sprite
}
