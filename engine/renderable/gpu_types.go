package renderable

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// GPUBuffers holds the device resources a mesh is drawn from.
// A mesh with GPUBuffers attached reports HWResourceReady.
type GPUBuffers struct {
	// VertexBuffer holds tightly packed vec3 positions.
	VertexBuffer *wgpu.Buffer

	// IndexBuffer holds uint32 indices. Nil for non-indexed meshes.
	IndexBuffer *wgpu.Buffer

	// VertexCount is the number of vertices in VertexBuffer.
	VertexCount uint32

	// IndexCount is the number of indices in IndexBuffer.
	IndexCount uint32

	// BindGroups are bound in order starting at group 0 before drawing.
	BindGroups []*wgpu.BindGroup
}

// Release frees the buffers. Safe to call on a nil receiver.
func (g *GPUBuffers) Release() {
	if g == nil {
		return
	}
	if g.VertexBuffer != nil {
		g.VertexBuffer.Release()
		g.VertexBuffer = nil
	}
	if g.IndexBuffer != nil {
		g.IndexBuffer.Release()
		g.IndexBuffer = nil
	}
}
