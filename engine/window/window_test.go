package window

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestWindowBuilderOptions(t *testing.T) {
	w := &engineWindow{title: "Prism", width: 800, height: 600}

	WithTitle("Demo")(w)
	WithSize(1024, 768)(w)
	WithMinSize(320, 240)(w)
	WithMaxSize(1920, 1080)(w)

	assert.Equal(t, "Demo", w.title)
	assert.Equal(t, 1024, w.width)
	assert.Equal(t, 768, w.height)
	assert.Equal(t, 320, w.minWidth)
	assert.Equal(t, 240, w.minHeight)
	assert.Equal(t, 1920, w.maxWidth)
	assert.Equal(t, 1080, w.maxHeight)
}

func TestWindowBuilderOptionsIgnoreInvalidValues(t *testing.T) {
	w := &engineWindow{title: "Prism", width: 800, height: 600}

	WithTitle("")(w)
	WithSize(0, -1)(w)

	assert.Equal(t, "Prism", w.title)
	assert.Equal(t, 800, w.width)
	assert.Equal(t, 600, w.height)
}

func TestBoundOrDontCare(t *testing.T) {
	assert.Equal(t, glfw.DontCare, boundOrDontCare(0))
	assert.Equal(t, glfw.DontCare, boundOrDontCare(-5))
	assert.Equal(t, 640, boundOrDontCare(640))
}
