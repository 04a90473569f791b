package graphics

// GraphicsContextBuilderOption is a functional option for configuring the
// graphics context during construction.
type GraphicsContextBuilderOption func(*graphicsContextImpl)

// WithForceFallbackAdapter forces adapter selection to the software fallback
// adapter, if the platform provides one. Useful on machines without a usable
// hardware GPU and in headless environments.
//
// Parameters:
//   - force: true to require the fallback adapter
//
// Returns:
//   - GraphicsContextBuilderOption: the option to apply
func WithForceFallbackAdapter(force bool) GraphicsContextBuilderOption {
	return func(g *graphicsContextImpl) {
		g.forceFallbackAdapter = force
	}
}

// WithDeviceLabel overrides the debug label attached to the GPU device.
//
// Parameters:
//   - label: the label reported by graphics debuggers and validation layers
//
// Returns:
//   - GraphicsContextBuilderOption: the option to apply
func WithDeviceLabel(label string) GraphicsContextBuilderOption {
	return func(g *graphicsContextImpl) {
		if label != "" {
			g.deviceLabel = label
		}
	}
}
