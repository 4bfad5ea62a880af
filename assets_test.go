package spright

import (
	"image"
	"image/color"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssets_CreateTexture(t *testing.T) {
	assets := NewAssets()

	id, err := assets.CreateTexture(make([]uint8, 4*4*4), 4, 4, wgpu.TextureFormatRGBA8Unorm)
	require.NoError(t, err)

	asset, ok := assets.Texture(id)
	require.True(t, ok)
	assert.Equal(t, uint32(4), asset.Width())
	assert.Equal(t, uint32(4), asset.Height())
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm, asset.Format())
}

func TestAssets_CreateTexture_RejectsZeroSize(t *testing.T) {
	assets := NewAssets()

	// The shader divides by texture_size unchecked; zero-sized textures
	// must never reach it.
	_, err := assets.CreateTexture(nil, 0, 4, wgpu.TextureFormatRGBA8Unorm)
	assert.Error(t, err)

	_, err = assets.CreateTexture(nil, 4, 0, wgpu.TextureFormatRGBA8Unorm)
	assert.Error(t, err)
}

func TestAssets_CreateTexture_RejectsWrongLength(t *testing.T) {
	assets := NewAssets()

	_, err := assets.CreateTexture(make([]uint8, 10), 4, 4, wgpu.TextureFormatRGBA8Unorm)
	assert.Error(t, err)

	_, err = assets.CreateTexture(make([]uint8, 4*4), 4, 4, wgpu.TextureFormatR8Unorm)
	assert.NoError(t, err, "R8 is one byte per texel")
}

func TestAssets_LoadTextureImage_ConvertsToRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})

	assets := NewAssets()
	id, err := assets.LoadTextureImage(img)
	require.NoError(t, err)

	asset, ok := assets.Texture(id)
	require.True(t, ok)
	assert.Equal(t, uint32(2), asset.Width())
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm, asset.Format())
	assert.Equal(t, uint8(255), asset.texels[0])
}

func TestAssets_Samplers(t *testing.T) {
	assets := NewAssets()

	spec := SamplerSpec{
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeLinear,
		AddressModeU: wgpu.AddressModeRepeat,
		AddressModeV: wgpu.AddressModeRepeat,
	}
	id := assets.CreateSampler(spec)

	got, ok := assets.Sampler(id)
	require.True(t, ok)
	assert.Equal(t, spec, got)

	_, ok = assets.Sampler("missing")
	assert.False(t, ok)
}

func TestAssetIds_Unique(t *testing.T) {
	assets := NewAssets()
	a, err := assets.CreateTexture(make([]uint8, 4), 1, 1, wgpu.TextureFormatRGBA8Unorm)
	require.NoError(t, err)
	b, err := assets.CreateTexture(make([]uint8, 4), 1, 1, wgpu.TextureFormatRGBA8Unorm)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
