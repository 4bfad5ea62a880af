package spright

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/spright/shaders"
)

// maxSpritesPerGroup is bounded by the uint16 index range: four vertices
// per sprite.
const maxSpritesPerGroup = 1 << 14

type Option func(*Renderer)

func WithLogger(l Logger) Option {
	return func(r *Renderer) { r.log = l }
}

// WithSampler overrides the default nearest/clamp-to-edge sampling policy.
func WithSampler(spec SamplerSpec) Option {
	return func(r *Renderer) { r.samplerSpec = spec }
}

type preparedGroup struct {
	textureBindGroup     *wgpu.BindGroup
	textureSizeBuffer    *wgpu.Buffer
	textureSizeBindGroup *wgpu.BindGroup
	vertexBuffer         *wgpu.Buffer
	indexBuffer          *wgpu.Buffer
	numIndices           uint32
}

func (g *preparedGroup) release() {
	g.textureBindGroup.Release()
	g.textureSizeBindGroup.Release()
	g.textureSizeBuffer.Release()
	g.vertexBuffer.Release()
	g.indexBuffer.Release()
}

// Renderer owns the sprite pipeline and everything bound to it: the bind
// group layouts derived from PipelineBindings, the screen size uniform, the
// sampler and the per-group buffers built by Prepare. The host owns the
// device, queue and render pass.
type Renderer struct {
	log              Logger
	samplerSpec      SamplerSpec
	pipeline         *wgpu.RenderPipeline
	bindGroupLayouts []*wgpu.BindGroupLayout
	screenSizeBuffer *wgpu.Buffer
	screenSizeGroup  *wgpu.BindGroup
	sampler          *wgpu.Sampler
	prepared         []preparedGroup
}

// New builds the sprite pipeline against the given target format.
// screenSize is the render target size in pixels; both components must be
// strictly positive, the shader divides by them unchecked.
func New(device *wgpu.Device, format wgpu.TextureFormat, screenSize mgl32.Vec2, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		log: NewNopLogger(),
		samplerSpec: SamplerSpec{
			MagFilter:    wgpu.FilterModeNearest,
			MinFilter:    wgpu.FilterModeNearest,
			AddressModeU: wgpu.AddressModeClampToEdge,
			AddressModeV: wgpu.AddressModeClampToEdge,
		},
	}
	for _, opt := range opts {
		opt(r)
	}

	if screenSize.X() <= 0 || screenSize.Y() <= 0 {
		return nil, fmt.Errorf("screen size must be positive, got %v", screenSize)
	}

	shader, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "spright: sprite shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.SpriteWGSL},
	})
	if err != nil {
		return nil, err
	}
	defer shader.Release()

	r.bindGroupLayouts, err = createBindGroupLayouts(device)
	if err != nil {
		return nil, err
	}

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "spright: pipeline layout",
		BindGroupLayouts: r.bindGroupLayouts,
	})
	if err != nil {
		r.Release()
		return nil, err
	}
	defer pipelineLayout.Release()

	r.pipeline, err = device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "spright: render pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{createVertexBufferLayout(Vertex{})},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						},
						Alpha: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						},
					},
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
			// Quad triangles alternate winding, so no face culling.
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: nil,
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		r.Release()
		return nil, err
	}

	r.screenSizeBuffer, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "spright: screen size uniform",
		Contents: wgpu.ToBytes(screenSize[:]),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		r.Release()
		return nil, err
	}

	r.screenSizeGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "spright: screen size bind group",
		Layout: r.bindGroupLayouts[1],
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: r.screenSizeBuffer, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		r.Release()
		return nil, err
	}

	r.sampler, err = device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "spright: sampler",
		AddressModeU:  r.samplerSpec.AddressModeU,
		AddressModeV:  r.samplerSpec.AddressModeV,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     r.samplerSpec.MagFilter,
		MinFilter:     r.samplerSpec.MinFilter,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		MaxAnisotropy: 1,
	})
	if err != nil {
		r.Release()
		return nil, err
	}

	r.log.Debugf("sprite pipeline created, target format %v, screen %gx%g", format, screenSize.X(), screenSize.Y())
	return r, nil
}

// Resize rewrites the screen size uniform. Call when the render target
// changes dimensions; constant for the duration of a render pass otherwise.
func (r *Renderer) Resize(queue *wgpu.Queue, screenSize mgl32.Vec2) error {
	if screenSize.X() <= 0 || screenSize.Y() <= 0 {
		return fmt.Errorf("screen size must be positive, got %v", screenSize)
	}
	r.log.Debugf("resize to %gx%g", screenSize.X(), screenSize.Y())
	return queue.WriteBuffer(r.screenSizeBuffer, 0, wgpu.ToBytes(screenSize[:]))
}

// Prepare uploads vertex and index buffers plus per-texture bind groups for
// the given groups, replacing whatever was prepared before. Buffers are
// read-only for the duration of any draw recorded afterward.
func (r *Renderer) Prepare(device *wgpu.Device, groups []Group) error {
	for i := range r.prepared {
		r.prepared[i].release()
	}
	r.prepared = r.prepared[:0]

	for _, g := range groups {
		if len(g.Sprites) == 0 {
			continue
		}
		if len(g.Sprites) > maxSpritesPerGroup {
			return fmt.Errorf("group has %d sprites, max %d per group", len(g.Sprites), maxSpritesPerGroup)
		}

		prepared, err := r.prepareOne(device, g)
		if err != nil {
			return err
		}
		r.prepared = append(r.prepared, prepared)
		r.log.Debugf("prepared group: %d sprites, %d indices", len(g.Sprites), prepared.numIndices)
	}
	return nil
}

func (r *Renderer) prepareOne(device *wgpu.Device, g Group) (preparedGroup, error) {
	vertices, indices := BuildQuads(g.Sprites)

	vertexBuffer, err := device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "spright: vertex buffer",
		Contents: wgpu.ToBytes(vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return preparedGroup{}, err
	}

	indexBuffer, err := device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "spright: index buffer",
		Contents: wgpu.ToBytes(indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		vertexBuffer.Release()
		return preparedGroup{}, err
	}

	textureBindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "spright: texture bind group",
		Layout: r.bindGroupLayouts[0],
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: g.Texture.view, Size: wgpu.WholeSize},
			{Binding: 1, Sampler: r.sampler, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		vertexBuffer.Release()
		indexBuffer.Release()
		return preparedGroup{}, err
	}

	size := g.Texture.Size()
	textureSizeBuffer, err := device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "spright: texture size uniform",
		Contents: wgpu.ToBytes(size[:]),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		textureBindGroup.Release()
		vertexBuffer.Release()
		indexBuffer.Release()
		return preparedGroup{}, err
	}

	textureSizeBindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "spright: texture size bind group",
		Layout: r.bindGroupLayouts[2],
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: textureSizeBuffer, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		textureSizeBuffer.Release()
		textureBindGroup.Release()
		vertexBuffer.Release()
		indexBuffer.Release()
		return preparedGroup{}, err
	}

	return preparedGroup{
		textureBindGroup:     textureBindGroup,
		textureSizeBuffer:    textureSizeBuffer,
		textureSizeBindGroup: textureSizeBindGroup,
		vertexBuffer:         vertexBuffer,
		indexBuffer:          indexBuffer,
		numIndices:           uint32(len(indices)),
	}, nil
}

// Render records draws for all prepared groups. Bind group order is the
// wire contract: 0 texture+sampler, 1 screen size, 2 texture size.
func (r *Renderer) Render(pass *wgpu.RenderPassEncoder) {
	pass.SetPipeline(r.pipeline)
	for i := range r.prepared {
		g := &r.prepared[i]
		pass.SetVertexBuffer(0, g.vertexBuffer, 0, g.vertexBuffer.GetSize())
		pass.SetIndexBuffer(g.indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
		pass.SetBindGroup(0, g.textureBindGroup, nil)
		pass.SetBindGroup(1, r.screenSizeGroup, nil)
		pass.SetBindGroup(2, g.textureSizeBindGroup, nil)
		pass.DrawIndexed(g.numIndices, 1, 0, 0, 0)
	}
}

// Release frees everything the renderer owns. Prepared groups are released
// too; textures belong to the host.
func (r *Renderer) Release() {
	for i := range r.prepared {
		r.prepared[i].release()
	}
	r.prepared = nil

	if r.sampler != nil {
		r.sampler.Release()
		r.sampler = nil
	}
	if r.screenSizeGroup != nil {
		r.screenSizeGroup.Release()
		r.screenSizeGroup = nil
	}
	if r.screenSizeBuffer != nil {
		r.screenSizeBuffer.Release()
		r.screenSizeBuffer = nil
	}
	if r.pipeline != nil {
		r.pipeline.Release()
		r.pipeline = nil
	}
	for _, l := range r.bindGroupLayouts {
		l.Release()
	}
	r.bindGroupLayouts = nil
}
