// Package stage is a CPU mirror of shaders/sprite.wgsl. The GPU runs both
// stages as massively parallel, stateless invocations; here they are plain
// functions over value types so hosts and tests can predict the exact output
// of the pipeline for a given vertex or fragment.
package stage

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Varyings are the per-vertex outputs that the fixed-function rasterizer
// interpolates across a primitive before the fragment stage runs.
type Varyings struct {
	ClipPosition mgl32.Vec4
	TexCoords    mgl32.Vec2
	Tint         mgl32.Vec4
}

// TransformVertex mirrors vs_main. Texture coordinates in texel units are
// normalized against textureSize, pixel positions against screenSize.
//
// The position mapping is p/size - 1 with a Y flip, not the conventional
// 2p/size - 1: vertex positions are expected pre-doubled by the host, as
// BuildQuads in the root package emits them. Both sizes must be strictly
// positive; the shader performs no validation and neither does this mirror.
func TransformVertex(position mgl32.Vec3, texCoords mgl32.Vec2, tint mgl32.Vec4, screenSize, textureSize mgl32.Vec2) Varyings {
	ndcX := position.X()/screenSize.X() - 1.0
	ndcY := -(position.Y()/screenSize.Y() - 1.0)

	return Varyings{
		ClipPosition: mgl32.Vec4{ndcX, ndcY, position.Z(), 1.0},
		TexCoords: mgl32.Vec2{
			texCoords.X() / textureSize.X(),
			texCoords.Y() / textureSize.Y(),
		},
		Tint: tint,
	}
}

// Composite mirrors fs_main: the sampled texel multiplied component-wise by
// the interpolated tint. A tint of (1,1,1,1) leaves the texel untouched; the
// alpha channel scales the texture's own alpha.
func Composite(texel, tint mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Vec4{
		texel.X() * tint.X(),
		texel.Y() * tint.Y(),
		texel.Z() * tint.Z(),
		texel.W() * tint.W(),
	}
}

// Interpolate blends two vertex outputs linearly, the way the rasterizer
// feeds the fragment stage. Barycentric interpolation over a triangle
// reduces to pairwise lerps along its edges, which is all the sprite quads
// need.
func Interpolate(a, b Varyings, t float32) Varyings {
	return Varyings{
		ClipPosition: lerp4(a.ClipPosition, b.ClipPosition, t),
		TexCoords:    lerp2(a.TexCoords, b.TexCoords, t),
		Tint:         lerp4(a.Tint, b.Tint, t),
	}
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func lerp2(a, b mgl32.Vec2, t float32) mgl32.Vec2 {
	return mgl32.Vec2{lerp(a.X(), b.X(), t), lerp(a.Y(), b.Y(), t)}
}

func lerp4(a, b mgl32.Vec4, t float32) mgl32.Vec4 {
	return mgl32.Vec4{
		lerp(a.X(), b.X(), t),
		lerp(a.Y(), b.Y(), t),
		lerp(a.Z(), b.Z(), t),
		lerp(a.W(), b.W(), t),
	}
}
