// pkg/render/gl/renderer.go

// Package gl draws the world through the OpenGL 2.1 fixed-function
// pipeline. All mesh data lives in two static device buffers uploaded
// once at startup; per frame the backend only issues matrix, material
// and indexed draw calls.
package gl

import (
	"fmt"
	"math"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/opd-ai/go-asteroids/pkg/engine"
	"github.com/opd-ai/go-asteroids/pkg/model"
	"github.com/opd-ai/go-asteroids/pkg/physics"
	"github.com/opd-ai/go-asteroids/pkg/render"
)

const (
	fovDeg   = 70
	nearClip = 0.25
	farClip  = 1600

	// Linear fog band applied to the arena boundary only.
	fogStart = 200
	fogEnd   = 300

	radPerDeg = math.Pi / 180

	// Half-extent of the vector marker drawn for text.
	markerSize = 0.5
)

// Renderer is the fixed-function display backend. It implements both
// render.Renderer and model.Uploader. Not safe for concurrent use; all
// calls must come from the thread owning the GL context.
type Renderer struct {
	models map[string]*model.Model

	width  int
	height int

	vertexBuf uint32
	indexBuf  uint32

	view    physics.Mat4
	inWorld bool
}

// New initializes the GL function pointers and the fixed pipeline state.
// A current GL context is required.
func New(width, height int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	r := &Renderer{models: make(map[string]*model.Model)}
	r.Resize(width, height)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.LIGHTING)
	gl.Enable(gl.LIGHT0)
	// Models are drawn scaled by mass, so normals need renormalizing.
	gl.Enable(gl.NORMALIZE)
	gl.ShadeModel(gl.SMOOTH)
	gl.ClearColor(0, 0, 0, 1)

	lightPos := [4]float32{1, 1, 1, 0}
	gl.Lightfv(gl.LIGHT0, gl.POSITION, &lightPos[0])

	gl.Fogi(gl.FOG_MODE, gl.LINEAR)
	gl.Fogf(gl.FOG_START, fogStart)
	gl.Fogf(gl.FOG_END, fogEnd)

	return r, nil
}

// Resize updates the viewport after a framebuffer size change.
func (r *Renderer) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	r.width = width
	r.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// UploadBuffers copies the packed mesh data into device memory. The
// buffers stay bound for the lifetime of the renderer; draw calls
// address meshes by byte offset.
func (r *Renderer) UploadBuffers(vertices []float32, indices []uint32) error {
	gl.GenBuffers(1, &r.vertexBuf)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vertexBuf)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.indexBuf)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.indexBuf)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	if errno := gl.GetError(); errno != gl.NO_ERROR {
		return fmt.Errorf("uploading mesh buffers: GL error 0x%04x", errno)
	}
	return nil
}

// SetModels registers the packed models the draw calls may reference.
func (r *Renderer) SetModels(models []*model.Model) {
	for _, m := range models {
		r.models[m.Name] = m
	}
}

// BeginFrame clears the targets and builds the projection and the eye
// half of the modelview: the seat offset and the drift roll. The world
// rotation and translation are deferred so the cockpit model can be
// drawn fixed to the camera first.
func (r *Renderer) BeginFrame(pose engine.CameraPose) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	top := math.Tan(float64(fovDeg*pose.FOVMod)*radPerDeg*0.5) * nearClip
	right := top * float64(r.width) / float64(r.height)
	gl.Frustum(-right, right, -top, top, nearClip, farClip)

	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()
	gl.Translatef(pose.Offset.X, pose.Offset.Y, pose.Offset.Z)
	gl.Rotatef(pose.Roll, 0, 0, 1)

	view := pose.Basis
	view[12] = -pose.Pos.X
	view[13] = -pose.Pos.Y
	view[14] = -pose.Pos.Z
	r.view = view
	r.inWorld = false
}

// DrawPlayer draws the cockpit ship in front of the eye, before the
// world transform applies, so it never moves in the frame.
func (r *Renderer) DrawPlayer() {
	m, ok := r.models[render.ModelPlayer]
	if !ok {
		return
	}
	setMaterial(render.TintPlayer, 1)
	drawMesh(m)
}

func (r *Renderer) enterWorld() {
	if !r.inWorld {
		gl.MultMatrixf(&r.view[0])
		r.inWorld = true
	}
}

// DrawModel draws one world object with its model transform, uniform
// scale and material tint.
func (r *Renderer) DrawModel(name string, transform physics.Mat4, scale float32, tint render.Tint) {
	m, ok := r.models[name]
	if !ok {
		return
	}
	r.enterWorld()

	gl.PushMatrix()
	gl.MultMatrixf(&transform[0])
	gl.Scalef(scale, scale, scale)

	switch name {
	case render.ModelBounds:
		gl.Disable(gl.LIGHTING)
		gl.Enable(gl.FOG)
		gl.Color3f(tint[0], tint[1], tint[2])
		drawMesh(m)
		gl.Disable(gl.FOG)
		gl.Enable(gl.LIGHTING)

	case render.ModelProjectile:
		emission := [4]float32{tint[0], tint[1], tint[2], 1}
		gl.Materialfv(gl.FRONT, gl.EMISSION, &emission[0])
		drawMesh(m)
		dark := [4]float32{0, 0, 0, 1}
		gl.Materialfv(gl.FRONT, gl.EMISSION, &dark[0])

	case render.ModelBlast:
		specular := [4]float32{1, 1, 0, 1}
		gl.Materialfv(gl.FRONT, gl.SPECULAR, &specular[0])
		setMaterial(tint, scale)
		drawMesh(m)
		none := [4]float32{0, 0, 0, 1}
		gl.Materialfv(gl.FRONT, gl.SPECULAR, &none[0])

	default:
		setMaterial(tint, scale)
		drawMesh(m)
	}

	gl.PopMatrix()
}

// DrawText draws a flat cross marker at pos. Mesh-based glyphs are not
// carried; the marker stands in for popup and reticle text.
func (r *Renderer) DrawText(pos physics.Vec3, color render.Tint, text string) {
	r.enterWorld()

	gl.Disable(gl.LIGHTING)
	gl.Color3f(color[0], color[1], color[2])
	gl.PushMatrix()
	gl.Translatef(pos.X, pos.Y, pos.Z)
	gl.Begin(gl.LINES)
	gl.Vertex3f(-markerSize, 0, 0)
	gl.Vertex3f(markerSize, 0, 0)
	gl.Vertex3f(0, -markerSize, 0)
	gl.Vertex3f(0, markerSize, 0)
	gl.End()
	gl.PopMatrix()
	gl.Enable(gl.LIGHTING)
	_ = text
}

// EndFrame flushes the pipeline and reports any error the frame raised.
// Buffer swapping belongs to the window owner.
func (r *Renderer) EndFrame() error {
	gl.Flush()
	if errno := gl.GetError(); errno != gl.NO_ERROR {
		return fmt.Errorf("frame raised GL error 0x%04x", errno)
	}
	return nil
}

func setMaterial(tint render.Tint, scale float32) {
	color := [4]float32{tint[0] * scale, tint[1] * scale, tint[2] * scale, 1}
	gl.Materialfv(gl.FRONT, gl.AMBIENT_AND_DIFFUSE, &color[0])
}

func drawMesh(m *model.Model) {
	mode := uint32(gl.TRIANGLES)
	if m.Topology == model.Lines {
		mode = gl.LINES
	}
	gl.InterleavedArrays(gl.N3F_V3F, 0, gl.PtrOffset(m.VertexOffset))
	gl.DrawElements(mode, int32(m.IndexCount), gl.UNSIGNED_INT, gl.PtrOffset(m.IndexOffset))
}
