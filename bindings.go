package spright

import (
	"strconv"

	"github.com/cogentcore/webgpu/wgpu"
)

type BindingKind int

const (
	BindingTexture BindingKind = iota
	BindingSampler
	BindingUniform
)

// Binding describes one slot of the pipeline's resource layout.
type Binding struct {
	Group      uint32
	Binding    uint32
	Kind       BindingKind
	Visibility wgpu.ShaderStage
}

// PipelineBindings is the wire contract with shaders/sprite.wgsl. Any host
// that records draws against the sprite pipeline has to populate exactly
// these slots: the sprite texture and its sampler in group 0, the screen
// size uniform in group 1, the texture size uniform in group 2.
var PipelineBindings = []Binding{
	{Group: 0, Binding: 0, Kind: BindingTexture, Visibility: wgpu.ShaderStageFragment},
	{Group: 0, Binding: 1, Kind: BindingSampler, Visibility: wgpu.ShaderStageFragment},
	{Group: 1, Binding: 0, Kind: BindingUniform, Visibility: wgpu.ShaderStageVertex},
	{Group: 2, Binding: 0, Kind: BindingUniform, Visibility: wgpu.ShaderStageVertex},
}

// bindGroupCount is the number of bind groups PipelineBindings spans.
func bindGroupCount() int {
	max := uint32(0)
	for _, b := range PipelineBindings {
		if b.Group > max {
			max = b.Group
		}
	}
	return int(max) + 1
}

func layoutEntry(b Binding) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    b.Binding,
		Visibility: b.Visibility,
	}
	switch b.Kind {
	case BindingTexture:
		entry.Texture = wgpu.TextureBindingLayout{
			SampleType:    wgpu.TextureSampleTypeFloat,
			ViewDimension: wgpu.TextureViewDimension2D,
			Multisampled:  false,
		}
	case BindingSampler:
		entry.Sampler = wgpu.SamplerBindingLayout{
			Type: wgpu.SamplerBindingTypeFiltering,
		}
	case BindingUniform:
		entry.Buffer = wgpu.BufferBindingLayout{
			Type:             wgpu.BufferBindingTypeUniform,
			HasDynamicOffset: false,
		}
	}
	return entry
}

// createBindGroupLayouts materializes PipelineBindings into one
// wgpu.BindGroupLayout per group, in group order.
func createBindGroupLayouts(device *wgpu.Device) ([]*wgpu.BindGroupLayout, error) {
	entries := make([][]wgpu.BindGroupLayoutEntry, bindGroupCount())
	for _, b := range PipelineBindings {
		entries[b.Group] = append(entries[b.Group], layoutEntry(b))
	}

	layouts := make([]*wgpu.BindGroupLayout, 0, len(entries))
	for group, groupEntries := range entries {
		layout, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
			Label:   "spright: bind group layout " + strconv.Itoa(group),
			Entries: groupEntries,
		})
		if err != nil {
			for _, l := range layouts {
				l.Release()
			}
			return nil, err
		}
		layouts = append(layouts, layout)
	}
	return layouts, nil
}
