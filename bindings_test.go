package spright

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineBindings_WireContract(t *testing.T) {
	// Any host sharing the shader has to populate exactly these slots in
	// this order.
	want := []Binding{
		{Group: 0, Binding: 0, Kind: BindingTexture, Visibility: wgpu.ShaderStageFragment},
		{Group: 0, Binding: 1, Kind: BindingSampler, Visibility: wgpu.ShaderStageFragment},
		{Group: 1, Binding: 0, Kind: BindingUniform, Visibility: wgpu.ShaderStageVertex},
		{Group: 2, Binding: 0, Kind: BindingUniform, Visibility: wgpu.ShaderStageVertex},
	}
	assert.Equal(t, want, PipelineBindings)
}

func TestBindGroupCount(t *testing.T) {
	assert.Equal(t, 3, bindGroupCount())
}

func TestLayoutEntry_Texture(t *testing.T) {
	entry := layoutEntry(PipelineBindings[0])

	assert.Equal(t, uint32(0), entry.Binding)
	assert.Equal(t, wgpu.ShaderStageFragment, entry.Visibility)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, entry.Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, entry.Texture.ViewDimension)
	assert.False(t, entry.Texture.Multisampled)
}

func TestLayoutEntry_Sampler(t *testing.T) {
	entry := layoutEntry(PipelineBindings[1])

	assert.Equal(t, uint32(1), entry.Binding)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, entry.Sampler.Type)
}

func TestLayoutEntry_Uniforms(t *testing.T) {
	for _, b := range PipelineBindings[2:] {
		entry := layoutEntry(b)
		require.Equal(t, uint32(0), entry.Binding)
		require.Equal(t, wgpu.ShaderStageVertex, entry.Visibility)
		require.Equal(t, wgpu.BufferBindingTypeUniform, entry.Buffer.Type)
		require.False(t, entry.Buffer.HasDynamicOffset)
	}
}
