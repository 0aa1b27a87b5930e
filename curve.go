package ribbon

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/gogpu/ribbon/render"
	"github.com/gogpu/ribbon/tessellate"
	"github.com/gogpu/ribbon/viewport"
)

// FrameScheduler accepts drawables for the current frame.
// *render.Frame implements it.
type FrameScheduler interface {
	// FrameNumber identifies the frame being assembled.
	FrameNumber() uint64

	// Register queues d in the named pass at priority.
	Register(pass string, d render.Drawable, priority int) error
}

// Curve is a drawable polyline ribbon.
//
// The vertex array returned by the builder is overwritten in place on every
// draw; it is never shared with the caller.
type Curve struct {
	host     Host
	material Material
	opts     curveOptions
	log      *slog.Logger

	points    []Point
	builder   *tessellate.Builder
	transform *viewport.Transformer
	buffers   bufferManager

	// registered holds the last frame registered with each scheduler.
	registered []registration

	destroyed bool
}

type registration struct {
	scheduler FrameScheduler
	frame     uint64
}

// NewCurve creates a curve drawing on host with material. No points are
// set and no buffers exist until SetPoints and the first draw.
func NewCurve(host Host, material Material, opts ...CurveOption) (*Curve, error) {
	if err := host.validate(); err != nil {
		return nil, err
	}
	if material.Pass == "" {
		return nil, ErrNoPass
	}

	o := defaultCurveOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}
	propagateLogger(host.Device, log)

	builder := tessellate.NewBuilder(o.depth, o.color)
	builder.SetAlternateLastRow(o.alternateLastRow)

	return &Curve{
		host:      host,
		material:  material,
		opts:      o,
		log:       log,
		builder:   builder,
		transform: viewport.NewTransformer(host.Viewport, host.Surface, o.depth),
		buffers:   bufferManager{device: host.Device, log: log},
	}, nil
}

// SetPoints replaces the curve. points is copied.
//
// Fewer than two points fail with ErrOutOfRange and more than
// tessellate.MaxPoints with ErrTooManyPoints; in both cases the previous
// curve and its geometry are kept. When the point count changes, vertex
// storage is reallocated and the device buffers are marked stale; they are
// released and recreated at the next draw, never by SetPoints itself.
// Same-length replacement keeps both.
func (c *Curve) SetPoints(points []Point) error {
	if c.destroyed {
		return ErrDestroyed
	}
	n := len(points)
	if n < tessellate.MinPoints {
		return fmt.Errorf("%w: got %d points, need at least %d", ErrOutOfRange, n, tessellate.MinPoints)
	}
	if n > tessellate.MaxPoints {
		return fmt.Errorf("%w: got %d, max %d", ErrTooManyPoints, n, tessellate.MaxPoints)
	}

	if n != c.builder.Allocated() {
		if err := c.builder.Allocate(n); err != nil {
			return err
		}
		c.buffers.invalidate()
		c.log.Debug("ribbon: curve storage allocated", "points", n, "vertices", 2*n)
	}
	c.points = append(c.points[:0], points...)
	return nil
}

// Points returns a copy of the current curve.
func (c *Curve) Points() []Point {
	if c.points == nil {
		return nil
	}
	out := make([]Point, len(c.points))
	copy(out, c.points)
	return out
}

// Len returns the number of points in the curve.
func (c *Curve) Len() int {
	return len(c.points)
}

// HasCurve reports whether points have been set.
func (c *Curve) HasCurve() bool {
	return len(c.points) >= tessellate.MinPoints
}

// Material returns the curve material.
func (c *Curve) Material() Material {
	return c.material
}

// SetColor changes the vertex colour from the next draw on.
func (c *Curve) SetColor(col color.RGBA) {
	c.opts.color = col
	c.builder.SetColor(col)
}

// Draw registers the curve with s for the current frame. Without a curve
// it does nothing. Repeated calls within one frame of the same scheduler
// register only once; separate schedulers are tracked independently.
// Schedulers are compared by identity, so s must be a comparable value
// such as *render.Frame.
func (c *Curve) Draw(s FrameScheduler) error {
	if c.destroyed {
		return ErrDestroyed
	}
	if !c.HasCurve() {
		return nil
	}
	frame := s.FrameNumber()
	r := c.registrationFor(s)
	if r != nil && r.frame == frame {
		return nil
	}
	if err := s.Register(c.material.Pass, c, c.opts.priority); err != nil {
		return fmt.Errorf("ribbon: register with pass %q: %w", c.material.Pass, err)
	}
	if r == nil {
		c.registered = append(c.registered, registration{scheduler: s, frame: frame})
	} else {
		r.frame = frame
	}
	return nil
}

func (c *Curve) registrationFor(s FrameScheduler) *registration {
	for i := range c.registered {
		if c.registered[i].scheduler == s {
			return &c.registered[i]
		}
	}
	return nil
}

// DrawUnit rebuilds, transforms, uploads and draws the ribbon. It is
// called by the render pass the curve registered with.
func (c *Curve) DrawUnit(ctx render.PassContext) error {
	if c.destroyed || !c.HasCurve() {
		return nil
	}
	if err := c.builder.Rebuild(c.points); err != nil {
		return err
	}
	vertices := c.builder.Vertices()
	c.transform.Apply(vertices)

	if err := c.buffers.upload(c.builder.Indices(), vertices); err != nil {
		return err
	}
	if err := c.host.Device.ApplyMaterial(c.material.device()); err != nil {
		return fmt.Errorf("ribbon: apply material: %w", err)
	}
	if err := c.buffers.draw(len(vertices)); err != nil {
		c.log.Warn("ribbon: draw failed", "frame", ctx.Frame, "pass", ctx.Pass, "err", err)
		return err
	}

	if c.opts.debug {
		c.DrawDebugLines()
	}
	return nil
}

// DrawDebugLines hands one line per curve segment, in device pixels, to the
// host's LineDrawer. It does nothing without a LineDrawer.
func (c *Curve) DrawDebugLines() {
	if c.host.Debug == nil || !c.HasCurve() {
		return
	}
	x0, y0 := c.transform.Point(c.points[0].X, c.points[0].Y)
	for _, p := range c.points[1:] {
		x1, y1 := c.transform.Point(p.X, p.Y)
		c.host.Debug.DrawLine(x0, y0, x1, y1, c.opts.debugColor)
		x0, y0 = x1, y1
	}
}

// Destroy releases the device buffers. It is safe to call at any time and
// any number of times. A destroyed curve rejects SetPoints and Draw.
func (c *Curve) Destroy() {
	c.buffers.release()
	c.registered = nil
	c.destroyed = true
}

// Ensure Curve implements render.Drawable.
var _ render.Drawable = (*Curve)(nil)
