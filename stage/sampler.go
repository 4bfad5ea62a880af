package stage

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

type AddressMode int

const (
	AddressClampToEdge AddressMode = iota
	AddressRepeat
	AddressMirrorRepeat
)

// Sampler reads texels from an RGBA image the way a GPU sampler would,
// including filtering and out-of-range addressing. The shader never clamps
// texture coordinates; whatever policy is configured here resolves them,
// matching the wgpu sampler the host binds at group 0 binding 1.
type Sampler struct {
	Filter       FilterMode
	AddressModeU AddressMode
	AddressModeV AddressMode
}

// Sample reads the image at normalized coordinates uv, where (0,0)-(1,1)
// spans the whole image. Channels are returned in [0,1].
func (s Sampler) Sample(img *image.RGBA, uv mgl32.Vec2) mgl32.Vec4 {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	if s.Filter == FilterNearest {
		x := s.wrap(int(math.Floor(float64(uv.X())*float64(w))), w, s.AddressModeU)
		y := s.wrap(int(math.Floor(float64(uv.Y())*float64(h))), h, s.AddressModeV)
		return texel(img, x, y)
	}

	// Bilinear: sample centers sit half a texel in from the coordinate grid.
	fx := float64(uv.X())*float64(w) - 0.5
	fy := float64(uv.Y())*float64(h) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := float32(fx - math.Floor(fx))
	ty := float32(fy - math.Floor(fy))

	c00 := texel(img, s.wrap(x0, w, s.AddressModeU), s.wrap(y0, h, s.AddressModeV))
	c10 := texel(img, s.wrap(x0+1, w, s.AddressModeU), s.wrap(y0, h, s.AddressModeV))
	c01 := texel(img, s.wrap(x0, w, s.AddressModeU), s.wrap(y0+1, h, s.AddressModeV))
	c11 := texel(img, s.wrap(x0+1, w, s.AddressModeU), s.wrap(y0+1, h, s.AddressModeV))

	top := lerp4(c00, c10, tx)
	bottom := lerp4(c01, c11, tx)
	return lerp4(top, bottom, ty)
}

func (s Sampler) wrap(i, n int, mode AddressMode) int {
	switch mode {
	case AddressRepeat:
		i %= n
		if i < 0 {
			i += n
		}
		return i
	case AddressMirrorRepeat:
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
		return i
	default: // clamp to edge
		if i < 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	}
}

func texel(img *image.RGBA, x, y int) mgl32.Vec4 {
	off := img.PixOffset(img.Bounds().Min.X+x, img.Bounds().Min.Y+y)
	return mgl32.Vec4{
		float32(img.Pix[off]) / 255.0,
		float32(img.Pix[off+1]) / 255.0,
		float32(img.Pix[off+2]) / 255.0,
		float32(img.Pix[off+3]) / 255.0,
	}
}
