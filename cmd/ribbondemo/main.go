// Command ribbondemo renders polyline ribbons to a PNG with the software
// device.
//
// Usage:
//
//	ribbondemo -config scene.yaml -output ribbons.png -width 800 -height 600
package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/ribbon"
	"github.com/gogpu/ribbon/render"
	"github.com/gogpu/ribbon/viewport"
)

func main() {
	var (
		config  = flag.String("config", "", "scene file (YAML); built-in scene if empty")
		output  = flag.String("output", "ribbons.png", "output file")
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		frames  = flag.Int("frames", 1, "frames to render; the last one is saved")
		debug   = flag.Bool("debug", false, "draw the debug overlay")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		ribbon.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	scene := DefaultScene()
	if *config != "" {
		s, err := LoadScene(*config)
		if err != nil {
			log.Fatalf("Failed to load scene: %v", err)
		}
		scene = s
	}

	target := render.NewPixmapTarget(*width, *height)
	if err := renderScene(scene, target, *frames, *debug); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if err := savePNG(*output, target); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Ribbons saved to %s (%dx%d)\n", *output, *width, *height)
}

// renderScene draws frames of scene into target. Curves are reassigned
// every frame; their buffers persist across frames.
func renderScene(scene *Scene, target *render.PixmapTarget, frames int, debug bool) error {
	if frames < 1 {
		frames = 1
	}
	dev := render.NewSoftwareDevice(target)
	host := ribbon.Host{
		Device:   dev,
		Viewport: sceneViewport(scene, target),
		Surface:  target,
	}
	if debug {
		host.Debug = render.NewPixmapLines(target)
	}

	curves := make([]*ribbon.Curve, 0, len(scene.Curves))
	defer func() {
		for _, c := range curves {
			c.Destroy()
		}
	}()
	for i := range scene.Curves {
		cc := &scene.Curves[i]
		c, err := ribbon.NewCurve(host, cc.material(), cc.options(debug)...)
		if err != nil {
			return fmt.Errorf("curve %s: %w", cc.Name, err)
		}
		curves = append(curves, c)
	}

	frame := render.NewFrame(scene.Passes...)
	for f := 0; f < frames; f++ {
		target.Clear(scene.Background.RGBA)
		frame.Begin()
		for i, c := range curves {
			cc := &scene.Curves[i]
			if err := c.SetPoints(cc.pointsAt(f)); err != nil {
				return fmt.Errorf("curve %s: %w", cc.Name, err)
			}
			if err := c.Draw(frame); err != nil {
				return fmt.Errorf("curve %s: %w", cc.Name, err)
			}
		}
		if err := frame.Execute(); err != nil {
			return fmt.Errorf("frame %d: %w", f, err)
		}
	}

	ribbon.Logger().Debug("ribbondemo: rendered",
		"frames", frames, "curves", len(curves), "stats", fmt.Sprintf("%+v", dev.Stats()))
	return nil
}

func sceneViewport(scene *Scene, target *render.PixmapTarget) viewport.Mapper {
	if scene.Virtual.Width <= 0 || scene.Virtual.Height <= 0 {
		return viewport.Identity{}
	}
	sw, sh := float64(target.Width()), float64(target.Height())
	if scene.Fit == "stretch" {
		return viewport.NewStretch(scene.Virtual.Width, scene.Virtual.Height, sw, sh)
	}
	return viewport.NewLetterbox(scene.Virtual.Width, scene.Virtual.Height, sw, sh)
}

func savePNG(path string, target *render.PixmapTarget) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, target.Image()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
