package geometry

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPUColorVertex is the GPU-aligned vertex for per-vertex colored geometry.
// Matches the shader VertexInput struct layout exactly (locations 0 and 1).
// Size: 24 bytes.
type GPUColorVertex struct {
	Position [3]float32 // offset 0, size 12 (vec3<f32>, location 0)
	Color    [3]float32 // offset 12, size 12 (vec3<f32>, location 1)
}

// Size returns the size of the GPUColorVertex struct in bytes.
//
// Returns:
//   - int: The size of the struct in bytes.
func (v *GPUColorVertex) Size() int {
	return int(unsafe.Sizeof(*v))
}

// Marshal serializes the GPUColorVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 24-byte buffer ready for GPU upload.
func (v *GPUColorVertex) Marshal() []byte {
	buf := make([]byte, 24)
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(v.Position[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[12+i*4:12+(i+1)*4], math.Float32bits(v.Color[i]))
	}
	return buf
}

// MarshalColorVertices serializes a slice of color vertices into one
// contiguous vertex buffer payload.
//
// Parameters:
//   - vertices: the vertices to serialize
//
// Returns:
//   - []byte: concatenated 24-byte vertex records
func MarshalColorVertices(vertices []GPUColorVertex) []byte {
	buf := make([]byte, 0, len(vertices)*24)
	for i := range vertices {
		buf = append(buf, vertices[i].Marshal()...)
	}
	return buf
}

// ColorVertexLayout returns the vertex buffer layout matching GPUColorVertex.
//
// Returns:
//   - wgpu.VertexBufferLayout: stride 24, Float32x3 position at location 0, Float32x3 color at location 1
func ColorVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 24,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		},
	}
}

// GPUTexturedVertex is the GPU-aligned vertex for textured geometry.
// Matches the shader VertexInput struct layout exactly (locations 0 and 1).
// Size: 20 bytes.
type GPUTexturedVertex struct {
	Position [3]float32 // offset 0, size 12 (vec3<f32>, location 0)
	UV       [2]float32 // offset 12, size 8 (vec2<f32>, location 1)
}

// Size returns the size of the GPUTexturedVertex struct in bytes.
//
// Returns:
//   - int: The size of the struct in bytes.
func (v *GPUTexturedVertex) Size() int {
	return int(unsafe.Sizeof(*v))
}

// Marshal serializes the GPUTexturedVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 20-byte buffer ready for GPU upload.
func (v *GPUTexturedVertex) Marshal() []byte {
	buf := make([]byte, 20)
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(v.Position[i]))
	}
	for i := range 2 {
		binary.LittleEndian.PutUint32(buf[12+i*4:12+(i+1)*4], math.Float32bits(v.UV[i]))
	}
	return buf
}

// MarshalTexturedVertices serializes a slice of textured vertices into one
// contiguous vertex buffer payload.
//
// Parameters:
//   - vertices: the vertices to serialize
//
// Returns:
//   - []byte: concatenated 20-byte vertex records
func MarshalTexturedVertices(vertices []GPUTexturedVertex) []byte {
	buf := make([]byte, 0, len(vertices)*20)
	for i := range vertices {
		buf = append(buf, vertices[i].Marshal()...)
	}
	return buf
}

// TexturedVertexLayout returns the vertex buffer layout matching GPUTexturedVertex.
//
// Returns:
//   - wgpu.VertexBufferLayout: stride 20, Float32x3 position at location 0, Float32x2 UV at location 1
func TexturedVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: 20,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
		},
	}
}
