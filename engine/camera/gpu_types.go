package camera

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMatrixUniform is the GPU-aligned payload for one 4x4 matrix uniform.
// Matches mat4x4<f32> in the shader (minimum binding size 64).
// Size: 64 bytes.
type GPUMatrixUniform struct {
	Matrix [16]float32 // offset 0, size 64 (mat4x4<f32>, column-major)
}

// Size returns the size of the GPUMatrixUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPUMatrixUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMatrixUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUMatrixUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Matrix[i]))
	}
	return buf
}
