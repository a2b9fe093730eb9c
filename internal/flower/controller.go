package flower

import (
	"fmt"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/bloom/internal/engine/mesh"
	"github.com/Faultbox/bloom/internal/noise"
	"github.com/Faultbox/bloom/pkg/math"
)

// PetalFrame is one petal's output for a tick.
type PetalFrame struct {
	Index     int
	Placement Placement
	Mesh      *mesh.Mesh // deformed positions and normals; valid until the next tick
	Color     Color
}

// Frame is everything the renderer needs to draw one tick of the flower.
type Frame struct {
	Petals []PetalFrame
	Params ShapeParameters // the sanitized snapshot the frame was built from
}

// Bounds returns the flower-space bounding box of all petals.
func (f Frame) Bounds() mesh.Bounds {
	var b mesh.Bounds
	for i, p := range f.Petals {
		pb := placedBounds(p)
		if i == 0 {
			b = pb
			continue
		}
		b = b.Union(pb)
	}
	return b
}

func placedBounds(p PetalFrame) mesh.Bounds {
	local := p.Mesh.Bounds()
	m := p.Placement.ModelMatrix()

	var b mesh.Bounds
	for i := 0; i < 8; i++ {
		corner := [3]float32{local.Min[0], local.Min[1], local.Min[2]}
		if i&1 != 0 {
			corner[0] = local.Max[0]
		}
		if i&2 != 0 {
			corner[1] = local.Max[1]
		}
		if i&4 != 0 {
			corner[2] = local.Max[2]
		}
		w := m.TransformPoint(corner)
		if i == 0 {
			b = mesh.Bounds{Min: w, Max: w}
			continue
		}
		b = b.Union(mesh.Bounds{Min: w, Max: w})
	}
	return b
}

// Sink receives published frames. The frame and its meshes are only valid
// during Consume.
type Sink interface {
	Consume(Frame) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Frame) error

// Consume calls f.
func (f SinkFunc) Consume(frame Frame) error {
	return f(frame)
}

// Option configures a Controller.
type Option func(*Controller)

// WithMeshResolution sets the sphere resolution of new petals.
func WithMeshResolution(widthSegs, heightSegs int) Option {
	return func(c *Controller) {
		c.widthSegs = widthSegs
		c.heightSegs = heightSegs
	}
}

// WithParallel deforms petals concurrently, one goroutine per petal up to
// GOMAXPROCS.
func WithParallel(parallel bool) Option {
	return func(c *Controller) {
		c.parallel = parallel
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

type layoutKey struct {
	count int
	size  float32
}

// Controller drives a whole flower: one PetalDeformer and Placement per
// petal slot, reconciled against the parameters passed to each Tick.
//
// Adding petals creates fresh deformers with a new base mesh and zero
// phase; removing petals discards their phase. The layout is recomputed
// only when the petal count or size changes, and a size change never
// resets a petal's phase.
//
// Controller is not safe for concurrent use; call Tick from the frame loop.
type Controller struct {
	field      noise.Field
	widthSegs  int
	heightSegs int
	parallel   bool
	log        *zap.Logger

	template *mesh.Mesh

	petals     []*PetalDeformer
	placements []Placement
	layout     layoutKey
	layoutOK   bool
	layoutGen  int

	lastGood   ShapeParameters
	lastWarned string

	frames []PetalFrame
}

// NewController creates a controller with no petals; the first Tick
// creates them.
func NewController(field noise.Field, opts ...Option) *Controller {
	c := &Controller{
		field:      field,
		widthSegs:  mesh.DefaultWidthSegments,
		heightSegs: mesh.DefaultHeightSegments,
		log:        zap.NewNop(),
		lastGood:   DefaultParameters(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.field == nil {
		c.field = noise.Zero{}
	}
	c.template = mesh.BuildSphere(1, c.widthSegs, c.heightSegs)
	return c
}

// PetalCount returns the number of live petals.
func (c *Controller) PetalCount() int {
	return len(c.petals)
}

// Phase returns the noise phase of petal i, or 0 if there is no such petal.
func (c *Controller) Phase(i int) float64 {
	if i < 0 || i >= len(c.petals) {
		return 0
	}
	return c.petals[i].Phase()
}

// Placements returns the current layout. The slice must not be modified.
func (c *Controller) Placements() []Placement {
	return c.placements
}

// LayoutGeneration counts how many times the layout has been computed.
func (c *Controller) LayoutGeneration() int {
	return c.layoutGen
}

// VerticesPerPetal returns the vertex count of every petal mesh.
func (c *Controller) VerticesPerPetal() int {
	return c.template.VertexCount()
}

// Indices returns the triangle list shared by every petal mesh.
func (c *Controller) Indices() []uint32 {
	return c.template.Indices
}

// Reset discards every petal. The next Tick recreates them with zero phase.
func (c *Controller) Reset() {
	c.petals = nil
	c.layoutOK = false
}

// Tick advances the flower by dt seconds under p and returns the frame.
// The frame's meshes are reused by the next Tick.
func (c *Controller) Tick(dt float32, p ShapeParameters) Frame {
	p = c.sanitize(p)
	if !math.IsFinite(dt) || dt < 0 {
		dt = 0
	}

	c.reconcile(p.PetalCount)
	c.updateLayout(p.PetalCount, p.PetalSize)
	c.advance(dt, p)

	return Frame{Petals: c.frames, Params: p}
}

// Publish ticks and hands the frame to sink.
func (c *Controller) Publish(dt float32, p ShapeParameters, sink Sink) error {
	frame := c.Tick(dt, p)
	if err := sink.Consume(frame); err != nil {
		return fmt.Errorf("publishing frame: %w", err)
	}
	return nil
}

func (c *Controller) sanitize(p ShapeParameters) ShapeParameters {
	clean, replaced := Sanitize(p, c.lastGood)
	c.lastGood = clean
	if len(replaced) == 0 {
		c.lastWarned = ""
		return clean
	}

	// Warn once per distinct set of bad fields rather than every frame.
	if key := strings.Join(replaced, ","); key != c.lastWarned {
		c.lastWarned = key
		c.log.Warn("replaced invalid shape parameters", zap.Strings("fields", replaced))
	}
	return clean
}

// reconcile grows or shrinks the petal slots to count.
func (c *Controller) reconcile(count int) {
	have := len(c.petals)
	switch {
	case count > have:
		for i := have; i < count; i++ {
			c.petals = append(c.petals, NewPetalDeformer(c.template.Clone(), c.field))
		}
		c.log.Debug("petals added", zap.Int("from", have), zap.Int("to", count))
	case count < have:
		clear(c.petals[count:])
		c.petals = c.petals[:count]
		c.log.Debug("petals removed", zap.Int("from", have), zap.Int("to", count))
	}
}

func (c *Controller) updateLayout(count int, size float32) {
	key := layoutKey{count: count, size: size}
	if c.layoutOK && key == c.layout {
		return
	}
	c.placements = Layout(count, size)
	c.layout = key
	c.layoutOK = true
	c.layoutGen++
	c.log.Debug("layout recomputed", zap.Int("petals", count), zap.Float32("size", size))
}

func (c *Controller) advance(dt float32, p ShapeParameters) {
	if cap(c.frames) < len(c.petals) {
		c.frames = make([]PetalFrame, len(c.petals))
	}
	c.frames = c.frames[:len(c.petals)]

	emit := func(i int) {
		c.frames[i] = PetalFrame{
			Index:     i,
			Placement: c.placements[i],
			Mesh:      c.petals[i].Advance(dt, p),
			Color:     p.Color,
		}
	}

	if !c.parallel || len(c.petals) < 2 {
		for i := range c.petals {
			emit(i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range c.petals {
		g.Go(func() error {
			emit(i)
			return nil
		})
	}
	_ = g.Wait()
}
