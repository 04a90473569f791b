// package camera computes the view and projection matrices for the animated
// variants. The camera is fixed at construction; only the aspect ratio
// changes afterwards, when the surface is resized. It is owned by the render
// loop and is not safe for concurrent use.
package camera

import (
	"math"

	"github.com/Carmen-Shannon/prism/common"
)

type cameraImpl struct {
	eye    [3]float32
	target [3]float32
	up     [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix       [16]float32
	projectionMatrix [16]float32
}

// Camera holds perspective settings and exposes view/projection matrices in
// column-major order, plus their GPU uniform payloads.
type Camera interface {
	// Eye returns the camera position in world space.
	//
	// Returns:
	//   - x, y, z: eye position components
	Eye() (x, y, z float32)

	// Target returns the point the camera looks at.
	//
	// Returns:
	//   - x, y, z: target position components
	Target() (x, y, z float32)

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewData returns the view matrix serialized as a 64-byte uniform payload.
	//
	// Returns:
	//   - []byte: the view matrix bytes
	ViewData() []byte

	// ProjectionData returns the projection matrix serialized as a 64-byte
	// uniform payload.
	//
	// Returns:
	//   - []byte: the projection matrix bytes
	ProjectionData() []byte

	// SetAspect sets the aspect ratio (width / height) and recomputes the
	// projection matrix. Called on surface resize.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera with the demo defaults: eye (0,0,3) looking at
// (0,1,0) with +Y up, 45 degree vertical fov, near 0.1, far 40.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		eye:    [3]float32{0, 0, 3},
		target: [3]float32{0, 1, 0},
		up:     [3]float32{0, 1, 0},
		fov:    45.0 * (math.Pi / 180.0), // radians
		aspect: 1.0,
		near:   0.1,
		far:    40.0,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Eye() (x, y, z float32) {
	return c.eye[0], c.eye[1], c.eye[2]
}

func (c *cameraImpl) Target() (x, y, z float32) {
	return c.target[0], c.target[1], c.target[2]
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	return c.aspect
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	return c.projectionMatrix
}

func (c *cameraImpl) ViewData() []byte {
	u := GPUMatrixUniform{Matrix: c.viewMatrix}
	return u.Marshal()
}

func (c *cameraImpl) ProjectionData() []byte {
	u := GPUMatrixUniform{Matrix: c.projectionMatrix}
	return u.Marshal()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
	c.updateMatrices()
}

// updateMatrices recalculates the view and projection matrices from the
// current settings.
func (c *cameraImpl) updateMatrices() {
	common.LookAt(c.viewMatrix[:],
		c.eye[0], c.eye[1], c.eye[2],
		c.target[0], c.target[1], c.target[2],
		c.up[0], c.up[1], c.up[2],
	)

	common.Perspective(c.projectionMatrix[:],
		c.fov, c.aspect, c.near, c.far,
	)
}
