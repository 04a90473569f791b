// package geometry owns mesh lifetime on the GPU. A GeometryStore turns
// marshalled vertex and index data into device buffers and hands back an
// immutable Mesh describing how to draw them.
package geometry

import (
	"fmt"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/Carmen-Shannon/prism/engine/graphics"
	"github.com/cogentcore/webgpu/wgpu"
)

// Mesh describes uploaded geometry. IndexBuffer is nil for non-indexed
// meshes, in which case draws use VertexCount directly.
type Mesh struct {
	Label        string
	VertexBuffer *wgpu.Buffer
	IndexBuffer  *wgpu.Buffer
	VertexCount  uint32
	IndexCount   uint32
}

// Indexed reports whether the mesh draws through an index buffer.
//
// Returns:
//   - bool: true when an index buffer is present.
func (m *Mesh) Indexed() bool {
	return m.IndexBuffer != nil
}

// Release frees the GPU buffers owned by the mesh.
func (m *Mesh) Release() {
	if m.IndexBuffer != nil {
		m.IndexBuffer.Release()
		m.IndexBuffer = nil
	}
	if m.VertexBuffer != nil {
		m.VertexBuffer.Release()
		m.VertexBuffer = nil
	}
}

type geometryStoreImpl struct {
	device *wgpu.Device
	queue  *wgpu.Queue
}

// GeometryStore uploads mesh data into GPU buffers.
type GeometryStore interface {
	// UploadMesh creates the vertex buffer (and index buffer when indices are
	// provided) for one mesh and writes the supplied data into them.
	//
	// Parameters:
	//   - label: human-readable tag applied to the GPU buffers
	//   - vertexData: marshalled vertex records, already in GPU layout
	//   - vertexCount: number of vertices in vertexData
	//   - indices: triangle list indices, or nil for a non-indexed mesh
	//
	// Returns:
	//   - *Mesh: the uploaded mesh
	//   - error: if buffer creation or the upload failed
	UploadMesh(label string, vertexData []byte, vertexCount int, indices []uint16) (*Mesh, error)
}

var _ GeometryStore = &geometryStoreImpl{}

// NewGeometryStore creates a GeometryStore backed by the context's device and queue.
//
// Parameters:
//   - graphicsCtx: the graphics context whose device owns the buffers
//
// Returns:
//   - GeometryStore: the new store
func NewGeometryStore(graphicsCtx graphics.GraphicsContext) GeometryStore {
	if graphicsCtx == nil {
		panic("geometry: NewGeometryStore requires a non-nil GraphicsContext")
	}
	return &geometryStoreImpl{
		device: graphicsCtx.Device(),
		queue:  graphicsCtx.Queue(),
	}
}

func (g *geometryStoreImpl) UploadMesh(label string, vertexData []byte, vertexCount int, indices []uint16) (*Mesh, error) {
	if len(vertexData) == 0 || vertexCount <= 0 {
		return nil, fmt.Errorf("mesh %s has no vertex data", label)
	}

	vertexBuffer, err := g.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label + " Vertex Buffer",
		Size:             uint64(len(vertexData)),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex buffer for %s: %w", label, err)
	}
	if err := g.queue.WriteBuffer(vertexBuffer, 0, vertexData); err != nil {
		vertexBuffer.Release()
		return nil, fmt.Errorf("failed to write vertex buffer for %s: %w", label, err)
	}

	mesh := &Mesh{
		Label:        label,
		VertexBuffer: vertexBuffer,
		VertexCount:  uint32(vertexCount),
	}
	if len(indices) == 0 {
		return mesh, nil
	}

	indexData := marshalIndices(indices)
	indexBuffer, err := g.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label + " Index Buffer",
		Size:             uint64(len(indexData)),
		Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		mesh.Release()
		return nil, fmt.Errorf("failed to create index buffer for %s: %w", label, err)
	}
	if err := g.queue.WriteBuffer(indexBuffer, 0, indexData); err != nil {
		indexBuffer.Release()
		mesh.Release()
		return nil, fmt.Errorf("failed to write index buffer for %s: %w", label, err)
	}
	mesh.IndexBuffer = indexBuffer
	mesh.IndexCount = uint32(len(indices))
	return mesh, nil
}

// marshalIndices views 16-bit indices as bytes, padded to the 4-byte
// alignment queue writes require. Padding indices are never drawn because
// IndexCount keeps the logical count. The unpadded view aliases the input;
// padding appends into a fresh buffer.
func marshalIndices(indices []uint16) []byte {
	buf := common.SliceToBytes(indices)
	if len(buf)%4 != 0 {
		buf = append(buf, 0, 0)
	}
	return buf
}
