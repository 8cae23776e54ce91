package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/engine/renderable"
	"github.com/cogentcore/webgpu/wgpu"
)

// gpuResident is implemented by drawables whose buffers were uploaded through a WGPUSink.
type gpuResident interface {
	GPUBuffers() *renderable.GPUBuffers
}

// WGPUSink encodes submissions into caller-owned WebGPU passes.
//
// The caller creates the command encoder and passes for the frame, hands them to BeginFrame,
// lets the scene manager flush, then calls EndFrame and finishes its own encoder.
// Pipelines are created elsewhere and registered here per technique.
type WGPUSink interface {
	Sink

	// RegisterRenderPipeline binds a technique key to a render pipeline. Bind groups are set
	// in order starting at group 0 before any per-mesh bind groups.
	//
	// Parameters:
	//   - technique: the technique key drawables report
	//   - p: the render pipeline
	//   - bindGroups: shared bind groups for the technique
	RegisterRenderPipeline(technique string, p *wgpu.RenderPipeline, bindGroups ...*wgpu.BindGroup)

	// RegisterComputePipeline binds a technique key to a compute pipeline.
	//
	// Parameters:
	//   - technique: the technique key compute drawables report
	//   - p: the compute pipeline
	//   - bindGroups: shared bind groups for the technique
	RegisterComputePipeline(technique string, p *wgpu.ComputePipeline, bindGroups ...*wgpu.BindGroup)

	// HasTechnique reports whether a pipeline is registered for the technique key.
	HasTechnique(technique string) bool

	// UploadMesh creates vertex and index buffers for the mesh and attaches them, which
	// flips the mesh to hardware-ready.
	//
	// Parameters:
	//   - m: the mesh to upload
	//
	// Returns:
	//   - error: an error if buffer creation fails
	UploadMesh(m renderable.Mesh) error

	// BeginFrame sets the passes subsequent submissions encode into. Either may be nil when
	// the frame has no work of that kind.
	//
	// Parameters:
	//   - render: the open render pass
	//   - compute: the open compute pass
	BeginFrame(render *wgpu.RenderPassEncoder, compute *wgpu.ComputePassEncoder)

	// EndFrame clears the passes set by BeginFrame. The passes are not ended.
	EndFrame()

	// Release frees every buffer created by UploadMesh.
	Release()
}

type techniquePipeline struct {
	render     *wgpu.RenderPipeline
	compute    *wgpu.ComputePipeline
	bindGroups []*wgpu.BindGroup
}

type wgpuSink struct {
	mu *sync.Mutex

	device *wgpu.Device
	queue  *wgpu.Queue
	label  string

	instanceCount uint32

	pipelines map[string]techniquePipeline
	uploaded  []renderable.Mesh

	renderPass  *wgpu.RenderPassEncoder
	computePass *wgpu.ComputePassEncoder
}

var _ WGPUSink = &wgpuSink{}

// NewWGPUSink creates a WGPUSink that uploads through device and queue.
//
// Parameters:
//   - device: the device buffers are created on
//   - queue: the queue buffer contents are written through
//   - options: functional options to configure the sink
//
// Returns:
//   - WGPUSink: the new sink
func NewWGPUSink(device *wgpu.Device, queue *wgpu.Queue, options ...WGPUSinkBuilderOption) WGPUSink {
	s := &wgpuSink{
		mu:            &sync.Mutex{},
		device:        device,
		queue:         queue,
		label:         "oxy-scene",
		instanceCount: 1,
		pipelines:     make(map[string]techniquePipeline),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *wgpuSink) RegisterRenderPipeline(technique string, p *wgpu.RenderPipeline, bindGroups ...*wgpu.BindGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pipelines[technique] = techniquePipeline{render: p, bindGroups: bindGroups}
}

func (s *wgpuSink) RegisterComputePipeline(technique string, p *wgpu.ComputePipeline, bindGroups ...*wgpu.BindGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pipelines[technique] = techniquePipeline{compute: p, bindGroups: bindGroups}
}

func (s *wgpuSink) HasTechnique(technique string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pipelines[technique]
	return ok
}

func (s *wgpuSink) UploadMesh(m renderable.Mesh) error {
	if s.device == nil || s.queue == nil {
		return fmt.Errorf("renderer: upload %q: sink has no device", m.Name())
	}

	vertexData := m.VertexData()
	indexData := m.IndexData()
	g := &renderable.GPUBuffers{
		VertexCount: m.NumVertices(),
		IndexCount:  uint32(len(m.Indices())),
	}

	if len(vertexData) > 0 {
		buf, err := s.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            s.label + " " + m.Name() + " Vertex Buffer",
			Size:             uint64(len(vertexData)),
			Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			return fmt.Errorf("renderer: upload %q vertex buffer: %w", m.Name(), err)
		}
		s.queue.WriteBuffer(buf, 0, vertexData)
		g.VertexBuffer = buf
	}

	if len(indexData) > 0 {
		buf, err := s.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            s.label + " " + m.Name() + " Index Buffer",
			Size:             uint64(len(indexData)),
			Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			g.Release()
			return fmt.Errorf("renderer: upload %q index buffer: %w", m.Name(), err)
		}
		s.queue.WriteBuffer(buf, 0, indexData)
		g.IndexBuffer = buf
	}

	m.SetGPUBuffers(g)

	s.mu.Lock()
	s.uploaded = append(s.uploaded, m)
	s.mu.Unlock()
	return nil
}

func (s *wgpuSink) BeginFrame(render *wgpu.RenderPassEncoder, compute *wgpu.ComputePassEncoder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderPass = render
	s.computePass = compute
}

func (s *wgpuSink) EndFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderPass = nil
	s.computePass = nil
}

func (s *wgpuSink) Release() {
	s.mu.Lock()
	uploaded := s.uploaded
	s.uploaded = nil
	s.mu.Unlock()

	for _, m := range uploaded {
		m.GPUBuffers().Release()
		m.SetGPUBuffers(nil)
	}
}

func (s *wgpuSink) Submit(sub Submission) (SubmitStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate everything first so a bad batch never leaves a half-encoded pass.
	for _, b := range sub.Batches {
		if len(b.Renderables) == 0 {
			continue
		}
		tp, ok := s.pipelines[b.Technique]
		if !ok {
			return SubmitStats{}, fmt.Errorf("%w: %q", ErrUnknownTechnique, b.Technique)
		}
		if tp.render != nil && s.renderPass == nil {
			return SubmitStats{}, fmt.Errorf("%w: render technique %q", ErrNoPass, b.Technique)
		}
		if tp.compute != nil && s.computePass == nil {
			return SubmitStats{}, fmt.Errorf("%w: compute technique %q", ErrNoPass, b.Technique)
		}
	}

	var stats SubmitStats
	for _, b := range sub.Batches {
		if len(b.Renderables) == 0 {
			continue
		}
		tp := s.pipelines[b.Technique]
		if tp.compute != nil {
			stats.DispatchCalls += s.encodeCompute(tp, b.Renderables)
		} else {
			stats.DrawCalls += s.encodeDraws(tp, b.Renderables)
		}
	}
	return stats, nil
}

// encodeDraws binds the technique once and issues one draw per resident drawable.
func (s *wgpuSink) encodeDraws(tp techniquePipeline, rs []renderable.Renderable) uint32 {
	pass := s.renderPass
	pass.SetPipeline(tp.render)
	for i, bg := range tp.bindGroups {
		pass.SetBindGroup(uint32(i), bg, nil)
	}

	var draws uint32
	for _, r := range rs {
		res, ok := r.(gpuResident)
		if !ok {
			continue
		}
		g := res.GPUBuffers()
		if g == nil || g.VertexBuffer == nil {
			continue
		}
		for i, bg := range g.BindGroups {
			pass.SetBindGroup(uint32(len(tp.bindGroups)+i), bg, nil)
		}
		pass.SetVertexBuffer(0, g.VertexBuffer, 0, wgpu.WholeSize)
		if g.IndexBuffer != nil {
			pass.SetIndexBuffer(g.IndexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
			pass.DrawIndexed(g.IndexCount, s.instanceCount, 0, 0, 0)
		} else {
			pass.Draw(g.VertexCount, s.instanceCount, 0, 0)
		}
		draws++
	}
	return draws
}

// encodeCompute binds the technique once and dispatches every compute drawable.
func (s *wgpuSink) encodeCompute(tp techniquePipeline, rs []renderable.Renderable) uint32 {
	pass := s.computePass
	pass.SetPipeline(tp.compute)
	for i, bg := range tp.bindGroups {
		pass.SetBindGroup(uint32(i), bg, nil)
	}

	var dispatches uint32
	for _, r := range rs {
		c, ok := r.(renderable.ComputeRenderable)
		if !ok {
			continue
		}
		groups := c.WorkgroupCount()
		if groups[0] == 0 || groups[1] == 0 || groups[2] == 0 {
			continue
		}
		pass.DispatchWorkgroups(groups[0], groups[1], groups[2])
		dispatches++
	}
	return dispatches
}
