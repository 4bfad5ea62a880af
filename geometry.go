package spright

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BuildQuads expands sprites into the vertices and indices one prepared
// group draws: four vertices per sprite (top-left, bottom-left, top-right,
// bottom-right) and two triangles over them.
//
// Destination coordinates are doubled on the way in. The shader maps
// positions through p/size - 1, so pixel (0,0) has to arrive as (0,0) and
// pixel (w,h) as (2w,2h) to span the full clip-space range.
//
// A sprite's tint multiplies whatever is sampled; a zero-value tint renders
// nothing, use White for untinted sprites.
func BuildQuads(sprites []Sprite) ([]Vertex, []uint16) {
	vertices := make([]Vertex, 0, len(sprites)*4)
	indices := make([]uint16, 0, len(sprites)*6)

	for i, s := range sprites {
		vertices = append(vertices,
			Vertex{
				Position:  mgl32.Vec3{2 * s.Dest.Left(), 2 * s.Dest.Top(), s.Z},
				TexCoords: mgl32.Vec2{s.Src.Left(), s.Src.Top()},
				Tint:      s.Tint,
			},
			Vertex{
				Position:  mgl32.Vec3{2 * s.Dest.Left(), 2 * s.Dest.Bottom(), s.Z},
				TexCoords: mgl32.Vec2{s.Src.Left(), s.Src.Bottom()},
				Tint:      s.Tint,
			},
			Vertex{
				Position:  mgl32.Vec3{2 * s.Dest.Right(), 2 * s.Dest.Top(), s.Z},
				TexCoords: mgl32.Vec2{s.Src.Right(), s.Src.Top()},
				Tint:      s.Tint,
			},
			Vertex{
				Position:  mgl32.Vec3{2 * s.Dest.Right(), 2 * s.Dest.Bottom(), s.Z},
				TexCoords: mgl32.Vec2{s.Src.Right(), s.Src.Bottom()},
				Tint:      s.Tint,
			},
		)

		base := uint16(i * 4)
		indices = append(indices,
			base+0, base+1, base+2,
			base+1, base+2, base+3,
		)
	}

	return vertices, indices
}
