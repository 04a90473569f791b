package surface

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeUpdatesConfigBeforeAcquire(t *testing.T) {
	s := &surfaceManagerImpl{}
	s.setSize(1280, 720)
	require.Equal(t, uint32(1280), s.Config().Width)
	require.Equal(t, uint32(720), s.Config().Height)

	// An unconfigured manager must never touch the GPU on resize, but the
	// pending configuration still has to carry the new size.
	s.OnResize(800, 600)
	assert.Equal(t, uint32(800), s.Config().Width)
	assert.Equal(t, uint32(600), s.Config().Height)
}

func TestResizeIgnoresZeroSize(t *testing.T) {
	s := &surfaceManagerImpl{}
	s.setSize(1280, 720)

	s.OnResize(0, 0)
	assert.Equal(t, uint32(1280), s.Config().Width)
	assert.Equal(t, uint32(720), s.Config().Height)

	s.OnResize(-1, 600)
	assert.Equal(t, uint32(1280), s.Config().Width)
}

func TestAcquireFrameRequiresConfiguration(t *testing.T) {
	s := &surfaceManagerImpl{}
	_, err := s.AcquireFrame()
	assert.Error(t, err)
}

func TestClassifyAcquireError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"timeout status", errors.New("wgpu: GetCurrentTexture: Timeout"), ErrSurfaceTimeout},
		{"timed out text", errors.New("surface acquire timed out after 1s"), ErrSurfaceTimeout},
		{"outdated", errors.New("surface is Outdated"), ErrSurfaceLost},
		{"lost", errors.New("surface Lost"), ErrSurfaceLost},
		{"out of memory", errors.New("OutOfMemory"), ErrSurfaceOutOfMemory},
		{"spaced out of memory", errors.New("device out of memory"), ErrSurfaceOutOfMemory},
		{"unknown classifies as lost", errors.New("some novel failure"), ErrSurfaceLost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyAcquireError(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.Contains(t, got.Error(), tt.err.Error(), "original error text should be preserved")
		})
	}
}

func TestNewSurfaceManagerRejectsNilContext(t *testing.T) {
	assert.Panics(t, func() {
		NewSurfaceManager(nil)
	})
}
