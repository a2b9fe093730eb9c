// Package renderer draws flower frames with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/bloom/internal/engine/debug"
	"github.com/Faultbox/bloom/internal/engine/lighting"
	"github.com/Faultbox/bloom/internal/engine/shader"
	"github.com/Faultbox/bloom/internal/flower"
	"github.com/Faultbox/bloom/internal/logger"
	"github.com/Faultbox/bloom/pkg/math"
)

// floatsPerVertex is position (3) + normal (3).
const floatsPerVertex = 6

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	// VerticesPerPetal and Indices describe the shared petal topology.
	VerticesPerPetal int
	Indices          []uint32

	Sun lighting.Sun
}

// petalSlot holds the GPU buffers of one petal.
type petalSlot struct {
	vao uint32
	vbo uint32
}

// Renderer handles all OpenGL rendering. It implements flower.Sink.
type Renderer struct {
	config Config

	program     *shader.Program
	lineProgram *shader.Program

	// Shared index buffer, attached to every petal VAO
	ebo        uint32
	indexCount int32

	slots   []petalSlot
	scratch []float32

	// Bounds overlay
	boxVAO uint32
	boxVBO uint32

	view       math.Mat4
	projection math.Mat4
	eye        math.Vec3

	Sun lighting.Sun
}

var _ flower.Sink = (*Renderer)(nil)

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if cfg.VerticesPerPetal <= 0 || len(cfg.Indices) == 0 {
		return nil, fmt.Errorf("empty petal topology (%d vertices, %d indices)", cfg.VerticesPerPetal, len(cfg.Indices))
	}

	r := &Renderer{
		config:     cfg,
		view:       math.Identity(),
		projection: math.Identity(),
		Sun:        cfg.Sun,
		scratch:    make([]float32, cfg.VerticesPerPetal*floatsPerVertex),
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	// Setup default OpenGL state
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.08, 0.09, 0.12, 1.0)

	var err error
	r.program, err = shader.Compile(shader.PetalVertex, shader.PetalFragment)
	if err != nil {
		return nil, fmt.Errorf("failed to create petal shader: %w", err)
	}
	r.lineProgram, err = shader.Compile(shader.LineVertex, shader.LineFragment)
	if err != nil {
		r.program.Delete()
		return nil, fmt.Errorf("failed to create line shader: %w", err)
	}
	r.createBox()

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(cfg.Indices)*4, unsafe.Pointer(&cfg.Indices[0]), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	r.indexCount = int32(len(cfg.Indices))

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	logger.Debug("petal renderer created",
		zap.Uint32("program", r.program.ID),
		zap.Int("vertices_per_petal", cfg.VerticesPerPetal),
		zap.Int32("indices", r.indexCount),
	)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, s := range r.slots {
		gl.DeleteVertexArrays(1, &s.vao)
		gl.DeleteBuffers(1, &s.vbo)
	}
	r.slots = nil
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.boxVAO != 0 {
		gl.DeleteVertexArrays(1, &r.boxVAO)
		gl.DeleteBuffers(1, &r.boxVBO)
	}
	if r.program != nil {
		r.program.Delete()
	}
	if r.lineProgram != nil {
		r.lineProgram.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the current viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetCamera sets the view and projection used by the next Consume.
func (r *Renderer) SetCamera(view, projection math.Mat4, eye math.Vec3) {
	r.view = view
	r.projection = projection
	r.eye = eye
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
}

// Consume uploads and draws every petal of the frame.
func (r *Renderer) Consume(frame flower.Frame) error {
	r.ensureSlots(len(frame.Petals))

	r.program.Use()
	r.program.SetMat4("uView", r.view)
	r.program.SetMat4("uProjection", r.projection)
	r.program.SetVec3("uLightDir", r.Sun.Direction().Array())
	r.program.SetVec3("uCameraPos", r.eye.Array())
	r.program.SetFloat("uAmbient", r.Sun.ClampedAmbient())

	for i, p := range frame.Petals {
		if p.Mesh.VertexCount() != r.config.VerticesPerPetal {
			return fmt.Errorf("petal %d has %d vertices, renderer expects %d", i, p.Mesh.VertexCount(), r.config.VerticesPerPetal)
		}

		r.scratch = interleave(r.scratch, p.Mesh.Positions, p.Mesh.Normals)

		slot := r.slots[i]
		gl.BindBuffer(gl.ARRAY_BUFFER, slot.vbo)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.scratch)*4, unsafe.Pointer(&r.scratch[0]))

		r.program.SetMat4("uModel", p.Placement.ModelMatrix())
		r.program.SetVec3("uColor", p.Color.Array())

		gl.BindVertexArray(slot.vao)
		gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return nil
}

// DrawBounds outlines the box from lo to hi in world space.
func (r *Renderer) DrawBounds(lo, hi [3]float32) {
	vertices := debug.BoxWireframe(lo, hi, debug.DefaultBoxPadding)

	r.lineProgram.Use()
	r.lineProgram.SetMat4("uView", r.view)
	r.lineProgram.SetMat4("uProjection", r.projection)
	r.lineProgram.SetVec3("uColor", [3]float32{0.9, 0.9, 0.3})

	gl.BindVertexArray(r.boxVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.boxVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, unsafe.Pointer(&vertices[0]))
	gl.DrawArrays(gl.LINES, 0, debug.BoxVertexCount)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

func (r *Renderer) createBox() {
	gl.GenVertexArrays(1, &r.boxVAO)
	gl.BindVertexArray(r.boxVAO)

	gl.GenBuffers(1, &r.boxVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.boxVBO)
	gl.BufferData(gl.ARRAY_BUFFER, debug.BoxVertexCount*3*4, nil, gl.DYNAMIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// ensureSlots creates GPU buffers until there are at least n petal slots.
// Slots are never released while the renderer lives, so shrinking and
// regrowing the flower does not churn buffers.
func (r *Renderer) ensureSlots(n int) {
	for len(r.slots) < n {
		var s petalSlot
		gl.GenVertexArrays(1, &s.vao)
		gl.BindVertexArray(s.vao)

		gl.GenBuffers(1, &s.vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, r.config.VerticesPerPetal*floatsPerVertex*4, nil, gl.DYNAMIC_DRAW)

		stride := int32(floatsPerVertex * 4)

		// Position attribute (location = 0)
		gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
		gl.EnableVertexAttribArray(0)

		// Normal attribute (location = 1)
		gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
		gl.EnableVertexAttribArray(1)

		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

		gl.BindVertexArray(0)
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)

		r.slots = append(r.slots, s)
		logger.Debug("petal slot created",
			zap.Int("slot", len(r.slots)-1),
			zap.Uint32("vao", s.vao),
			zap.Uint32("vbo", s.vbo),
		)
	}
}

// interleave packs positions and normals as [px py pz nx ny nz ...] into dst,
// growing it if needed.
func interleave(dst []float32, positions, normals [][3]float32) []float32 {
	n := len(positions) * floatsPerVertex
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]

	for i, p := range positions {
		o := i * floatsPerVertex
		copy(dst[o:o+3], p[:])
		if i < len(normals) {
			copy(dst[o+3:o+6], normals[i][:])
		} else {
			dst[o+3], dst[o+4], dst[o+5] = 0, 1, 0
		}
	}
	return dst
}
