package spright

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/google/uuid"
)

type AssetId string

// TextureAsset is CPU-side texel data waiting to be uploaded.
type TextureAsset struct {
	texels []uint8
	width  uint32
	height uint32
	format wgpu.TextureFormat
}

func (a TextureAsset) Width() uint32 { return a.width }

func (a TextureAsset) Height() uint32 { return a.height }

func (a TextureAsset) Format() wgpu.TextureFormat { return a.format }

// SamplerSpec captures the sampling policy a host wants bound at group 0
// binding 1. The shader never clamps or filters on its own.
type SamplerSpec struct {
	MagFilter    wgpu.FilterMode
	MinFilter    wgpu.FilterMode
	AddressModeU wgpu.AddressMode
	AddressModeV wgpu.AddressMode
}

// Assets stores texture and sampler descriptions by id, decoupled from any
// device. Upload happens separately via UploadTexture.
type Assets struct {
	textures map[AssetId]TextureAsset
	samplers map[AssetId]SamplerSpec
}

func NewAssets() *Assets {
	return &Assets{
		textures: map[AssetId]TextureAsset{},
		samplers: map[AssetId]SamplerSpec{},
	}
}

// CreateTexture registers raw texels. Dimensions must be strictly positive:
// both uniforms feed shader-side divisions that are never validated there.
func (a *Assets) CreateTexture(texels []uint8, width, height uint32, format wgpu.TextureFormat) (AssetId, error) {
	if width == 0 || height == 0 {
		return "", fmt.Errorf("texture dimensions must be positive, got %dx%d", width, height)
	}
	expected := int(width) * int(height) * int(bytesPerPixel(format))
	if len(texels) != expected {
		return "", fmt.Errorf("texture data is %d bytes, want %d for %dx%d", len(texels), expected, width, height)
	}

	id := makeAssetId()
	a.textures[id] = TextureAsset{
		texels: texels,
		width:  width,
		height: height,
		format: format,
	}
	return id, nil
}

// LoadTexture decodes a PNG file into an RGBA texture asset.
func (a *Assets) LoadTexture(filename string) (AssetId, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", filename, err)
	}

	return a.LoadTextureImage(img)
}

// LoadTextureImage registers a decoded image as an RGBA8 texture asset,
// converting from whatever color model it carries.
func (a *Assets) LoadTextureImage(img image.Image) (AssetId, error) {
	bounds := img.Bounds()

	rgbaImg, ok := img.(*image.RGBA)
	if !ok {
		rgbaImg = image.NewRGBA(bounds)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				rgbaImg.Set(x, y, img.At(x, y))
			}
		}
	}

	return a.CreateTexture(
		rgbaImg.Pix,
		uint32(bounds.Dx()),
		uint32(bounds.Dy()),
		wgpu.TextureFormatRGBA8Unorm,
	)
}

func (a *Assets) Texture(id AssetId) (TextureAsset, bool) {
	asset, ok := a.textures[id]
	return asset, ok
}

// CreateSampler registers a sampling policy.
func (a *Assets) CreateSampler(spec SamplerSpec) AssetId {
	id := makeAssetId()
	a.samplers[id] = spec
	return id
}

func (a *Assets) Sampler(id AssetId) (SamplerSpec, bool) {
	spec, ok := a.samplers[id]
	return spec, ok
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

func bytesPerPixel(format wgpu.TextureFormat) uint32 {
	switch format {
	case wgpu.TextureFormatR8Unorm, wgpu.TextureFormatR8Uint:
		return 1
	case wgpu.TextureFormatRGBA8Unorm, wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8Unorm:
		return 4
	default:
		panic(fmt.Sprintf("unsupported texture format: %v", format))
	}
}
