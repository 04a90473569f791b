package renderer

import (
	"fmt"
	"strings"
)

// RenderVariant selects one of the fixed demo configurations: shader pair,
// vertex layout, bind groups, mesh, and clear color.
type RenderVariant int

const (
	// RenderVariantClear clears the surface to a green background and draws
	// no geometry.
	RenderVariantClear RenderVariant = iota

	// RenderVariantTriangle draws a static triangle with per-vertex colors.
	RenderVariantTriangle

	// RenderVariantBanded draws the triangle with color bands derived from
	// clip-space position.
	RenderVariantBanded

	// RenderVariantTexture draws a quad sampling an embedded texture.
	RenderVariantTexture

	// RenderVariantSpin draws the textured quad with an animated transform
	// streamed per frame and a perspective camera.
	RenderVariantSpin
)

// String returns the variant's command-line name.
//
// Returns:
//   - string: the variant name
func (v RenderVariant) String() string {
	switch v {
	case RenderVariantClear:
		return "clear"
	case RenderVariantTriangle:
		return "triangle"
	case RenderVariantBanded:
		return "banded"
	case RenderVariantTexture:
		return "texture"
	case RenderVariantSpin:
		return "spin"
	default:
		return fmt.Sprintf("RenderVariant(%d)", int(v))
	}
}

// VariantNames returns the recognized variant names in display order.
//
// Returns:
//   - []string: the variant names
func VariantNames() []string {
	return []string{
		RenderVariantClear.String(),
		RenderVariantTriangle.String(),
		RenderVariantBanded.String(),
		RenderVariantTexture.String(),
		RenderVariantSpin.String(),
	}
}

// UnknownVariantError reports a variant identifier that does not name any
// demo configuration.
type UnknownVariantError struct {
	Name string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown render variant %q (valid: %s)", e.Name, strings.Join(VariantNames(), ", "))
}

// ParseRenderVariant resolves a command-line identifier to a RenderVariant.
// Matching is case-insensitive and ignores surrounding whitespace.
//
// Parameters:
//   - name: the variant identifier to resolve
//
// Returns:
//   - RenderVariant: the resolved variant
//   - error: an *UnknownVariantError when the identifier is not recognized
func ParseRenderVariant(name string) (RenderVariant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "clear":
		return RenderVariantClear, nil
	case "triangle":
		return RenderVariantTriangle, nil
	case "banded":
		return RenderVariantBanded, nil
	case "texture":
		return RenderVariantTexture, nil
	case "spin":
		return RenderVariantSpin, nil
	default:
		return 0, &UnknownVariantError{Name: name}
	}
}
