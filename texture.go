package spright

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Texture pairs an uploaded wgpu texture with the dimensions the pipeline's
// texture_size uniform is filled from.
type Texture struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	width   uint32
	height  uint32
}

func (t *Texture) Width() uint32  { return t.width }
func (t *Texture) Height() uint32 { return t.height }

func (t *Texture) Size() mgl32.Vec2 {
	return mgl32.Vec2{float32(t.width), float32(t.height)}
}

func (t *Texture) Release() {
	t.view.Release()
	t.texture.Release()
}

// UploadTexture creates a device texture from an asset and writes its
// texels through the queue.
func UploadTexture(device *wgpu.Device, queue *wgpu.Queue, asset TextureAsset) (*Texture, error) {
	extent := wgpu.Extent3D{
		Width:              asset.width,
		Height:             asset.height,
		DepthOrArrayLayers: 1,
	}
	texture, err := device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "spright: texture",
		Size:          extent,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        asset.format,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}

	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, err
	}

	err = queue.WriteTexture(
		texture.AsImageCopy(),
		asset.texels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  asset.width * bytesPerPixel(asset.format),
			RowsPerImage: asset.height,
		},
		&extent,
	)
	if err != nil {
		view.Release()
		texture.Release()
		return nil, err
	}

	return &Texture{
		texture: texture,
		view:    view,
		width:   asset.width,
		height:  asset.height,
	}, nil
}
