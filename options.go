package ribbon

import (
	"image/color"
	"log/slog"
)

// CurveOption configures a Curve during creation.
//
// Example:
//
//	c, err := ribbon.NewCurve(host, mat,
//	    ribbon.WithColor(color.RGBA{R: 255, A: 255}),
//	    ribbon.WithPriority(10),
//	)
type CurveOption func(*curveOptions)

type curveOptions struct {
	color      color.RGBA
	depth      float32
	priority   int
	debug      bool
	debugColor color.RGBA
	logger     *slog.Logger

	alternateLastRow bool
}

// DefaultDepth is the Z written into every vertex unless WithDepth is used.
const DefaultDepth float32 = 1.0

func defaultCurveOptions() curveOptions {
	return curveOptions{
		color:      color.RGBA{R: 255, G: 255, B: 255, A: 255},
		depth:      DefaultDepth,
		debugColor: color.RGBA{R: 255, A: 255},
	}
}

// WithColor sets the vertex colour (premultiplied). Default opaque white.
func WithColor(c color.RGBA) CurveOption {
	return func(o *curveOptions) {
		o.color = c
	}
}

// WithDepth sets the depth plane the ribbon is drawn at.
func WithDepth(z float32) CurveOption {
	return func(o *curveOptions) {
		o.depth = z
	}
}

// WithPriority sets the priority the curve registers with in its pass.
// Lower priorities draw first.
func WithPriority(p int) CurveOption {
	return func(o *curveOptions) {
		o.priority = p
	}
}

// WithDebug enables the debug overlay: after every draw one line per curve
// segment is handed to the host's LineDrawer.
func WithDebug(enabled bool) CurveOption {
	return func(o *curveOptions) {
		o.debug = enabled
	}
}

// WithDebugColor sets the overlay line colour. Default opaque red.
func WithDebugColor(c color.RGBA) CurveOption {
	return func(o *curveOptions) {
		o.debugColor = c
	}
}

// WithAlternatingLastRow makes the closing vertex pair continue the
// alternating texture rows. By default it uses row 1, which stretches the
// last texture tile on curves with an odd point count.
func WithAlternatingLastRow(on bool) CurveOption {
	return func(o *curveOptions) {
		o.alternateLastRow = on
	}
}

// WithLogger sets a logger for this curve instead of the package logger.
func WithLogger(l *slog.Logger) CurveOption {
	return func(o *curveOptions) {
		o.logger = l
	}
}
