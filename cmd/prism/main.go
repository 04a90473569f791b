// Prism renders one of the fixed demo variants in a native window.
//
// Usage:
//
//	prism -variant spin -width 800 -height 600 -profile
//
// Close the window or press Escape to exit.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/Carmen-Shannon/prism/engine"
	"github.com/Carmen-Shannon/prism/engine/geometry"
	"github.com/Carmen-Shannon/prism/engine/graphics"
	"github.com/Carmen-Shannon/prism/engine/renderer"
	"github.com/Carmen-Shannon/prism/engine/renderer/binder"
	"github.com/Carmen-Shannon/prism/engine/scene"
	"github.com/Carmen-Shannon/prism/engine/surface"
	"github.com/Carmen-Shannon/prism/engine/window"
)

// appConfig is the resolved command-line configuration.
type appConfig struct {
	variant  renderer.RenderVariant
	width    int
	height   int
	title    string
	fallback bool
	profile  bool
}

func main() {
	variantName := flag.String("variant", "spin", "render variant: "+strings.Join(renderer.VariantNames(), ", "))
	width := flag.Int("width", 800, "initial window width in pixels")
	height := flag.Int("height", 600, "initial window height in pixels")
	title := flag.String("title", "Prism", "window title")
	fallback := flag.Bool("fallback-adapter", false, "force the software fallback adapter")
	profile := flag.Bool("profile", false, "log frame and memory statistics while running")
	flag.Parse()

	variant, err := renderer.ParseRenderVariant(*variantName)
	if err != nil {
		log.Fatalf("prism: %v", err)
	}

	cfg := appConfig{
		variant:  variant,
		width:    *width,
		height:   *height,
		title:    *title,
		fallback: *fallback,
		profile:  *profile,
	}

	// run owns the deferred teardown; Fatalf here would skip it.
	if err := run(cfg); err != nil {
		log.Fatalf("prism: %v", err)
	}
}

// run builds the window, GPU stack, scene, and engine, then blocks in the
// render loop until the window closes or a fatal render error occurs.
//
// Parameters:
//   - cfg: the resolved command-line configuration
//
// Returns:
//   - error: a fatal startup or render error, nil on a clean shutdown
func run(cfg appConfig) error {
	win := window.NewWindow(
		window.WithTitle(cfg.title),
		window.WithSize(cfg.width, cfg.height),
	)
	defer win.Close()

	graphicsCtx, err := graphics.NewGraphicsContext(win.SurfaceDescriptor(),
		graphics.WithForceFallbackAdapter(cfg.fallback),
		graphics.WithDeviceLabel("Prism Device"),
	)
	if err != nil {
		return fmt.Errorf("acquiring graphics context: %w", err)
	}
	defer graphicsCtx.Release()

	surfaceManager := surface.NewSurfaceManager(graphicsCtx,
		surface.WithPresentMode(surface.PresentModeVSync),
	)
	surfaceManager.Configure(win.Width(), win.Height())

	resourceBinder := binder.NewResourceBinder(graphicsCtx)
	geometryStore := geometry.NewGeometryStore(graphicsCtx)

	demoScene, err := scene.NewScene(cfg.variant, graphicsCtx, resourceBinder, geometryStore,
		surfaceManager.Format(),
		scene.WithCameraAspect(float32(win.Width())/float32(win.Height())),
	)
	if err != nil {
		return fmt.Errorf("building %s scene: %w", cfg.variant, err)
	}
	defer demoScene.Release()

	frameRenderer := renderer.NewFrameRenderer(graphicsCtx, surfaceManager, resourceBinder, demoScene.Bundle())

	eng := engine.NewEngine(win, frameRenderer, engine.WithProfiling(cfg.profile))

	log.Printf("[Prism] rendering %s at %dx%d (press Escape to exit)", cfg.variant, win.Width(), win.Height())
	return eng.Run()
}
