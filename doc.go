// Package ribbon draws polylines as constant-width triangle-strip ribbons.
//
// # Overview
//
// A [Curve] holds an ordered sequence of points. Every frame it rebuilds a
// strip of two vertices per point, offset on both sides of the polyline
// along the unit perpendicular of each segment, maps the vertices to device
// pixels and uploads them with one indexed triangle-strip draw.
//
// The curve owns exactly one vertex buffer and one index buffer on the
// host's device. Buffers are created lazily at the first draw, reused while
// the point count stays the same, and released by [Curve.Destroy].
//
// # Quick Start
//
//	target := render.NewPixmapTarget(800, 600)
//	host := ribbon.Host{
//	    Device:   render.NewSoftwareDevice(target),
//	    Viewport: viewport.NewLetterbox(400, 300, 800, 600),
//	    Surface:  target,
//	}
//	curve, err := ribbon.NewCurve(host, ribbon.Material{Pass: "world"},
//	    ribbon.WithColor(color.RGBA{R: 255, A: 255}))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer curve.Destroy()
//
//	_ = curve.SetPoints([]ribbon.Point{{X: 10, Y: 10}, {X: 200, Y: 40}, {X: 390, Y: 290}})
//
//	frame := render.NewFrame("world")
//	frame.Begin()
//	_ = curve.Draw(frame)
//	_ = frame.Execute()
//
// # Host Context
//
// Everything a curve needs from its environment is passed explicitly in a
// [Host]: the [render.Device] that owns buffers, the [viewport.Mapper] from
// builder space to pixels, the [viewport.Surface] describing the render
// target, and an optional [render.LineDrawer] for the debug overlay. There
// is no global lookup.
//
// # Threading
//
// A Curve is not safe for concurrent use. It is driven from the thread that
// owns the graphics device, once per frame.
//
// # Logging
//
// ribbon is silent by default. Call [SetLogger] to enable diagnostics.
package ribbon
