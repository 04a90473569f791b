package animator

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPUTransformData is the GPU-aligned model matrix payload streamed into the
// instance buffer each tick. Matches mat4x4<f32> in the shader.
// Size: 64 bytes.
type GPUTransformData struct {
	Model [16]float32 // offset 0, size 64 (mat4x4<f32>, column-major)
}

// NewGPUTransformData converts a Transform into its GPU payload.
//
// Parameters:
//   - t: the transform to serialize
//
// Returns:
//   - GPUTransformData: the column-major matrix payload.
func NewGPUTransformData(t Transform) GPUTransformData {
	m := t.Matrix()
	var d GPUTransformData
	copy(d.Model[:], m[:])
	return d
}

// Size returns the size of the GPUTransformData struct in bytes.
//
// Returns:
//   - int: The size of the struct in bytes.
func (d *GPUTransformData) Size() int {
	return int(unsafe.Sizeof(*d))
}

// Marshal serializes the GPUTransformData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (d *GPUTransformData) Marshal() []byte {
	buf := make([]byte, 64)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(d.Model[i]))
	}
	return buf
}

// Unmarshal reads a 64-byte payload back into the struct. Used to verify
// round-trips; the render path only ever marshals.
//
// Parameters:
//   - buf: a buffer of at least 64 bytes
func (d *GPUTransformData) Unmarshal(buf []byte) {
	for i := range 16 {
		d.Model[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4 : (i+1)*4]))
	}
}

// InstanceMatrixLayout returns the instance-stepped vertex buffer layout that
// carries one model matrix per instance as four float32x4 attributes.
//
// Parameters:
//   - firstLocation: shader location of the first matrix column; the
//     remaining columns occupy the next three locations
//
// Returns:
//   - wgpu.VertexBufferLayout: stride 64, step mode instance.
func InstanceMatrixLayout(firstLocation uint32) wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, 4)
	for i := range attrs {
		attrs[i] = wgpu.VertexAttribute{
			Format:         wgpu.VertexFormatFloat32x4,
			Offset:         uint64(i) * 16,
			ShaderLocation: firstLocation + uint32(i),
		}
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: 64,
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes:  attrs,
	}
}
