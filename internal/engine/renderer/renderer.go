// Package renderer provides OpenGL rendering for the streamed city.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"skyroam/internal/config"
	"skyroam/internal/engine/shader"
	"skyroam/internal/logger"
)

// skyColor doubles as the fog color so distant geometry fades into
// the horizon.
var skyColor = mgl32.Vec3{0.53, 0.75, 0.92}

// Morning sun from the south-east.
var lightDir = mgl32.Vec3{-0.4, -1.0, -0.6}

// Renderer owns the GL state shared by all chunk meshes: the scene
// program with its fog and lighting uniforms, and a flat overlay
// program for the loading bar.
type Renderer struct {
	cfg config.RenderConfig

	scene        *shader.Program
	locViewProj  int32
	locCameraPos int32
	locLightDir  int32
	locFogColor  int32
	locFogStart  int32
	locFogEnd    int32

	flat     *shader.Program
	locRect  int32
	locColor int32
	quadVAO  uint32
	quadVBO  uint32
}

// New creates a renderer. Must be called after the OpenGL context
// exists.
func New(cfg config.RenderConfig) (*Renderer, error) {
	r := &Renderer{cfg: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(skyColor.X(), skyColor.Y(), skyColor.Z(), 1.0)

	var err error
	r.scene, err = shader.Compile(sceneVertexShader, sceneFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("scene program: %w", err)
	}
	r.locViewProj = r.scene.Uniform("uViewProj")
	r.locCameraPos = r.scene.Uniform("uCameraPos")
	r.locLightDir = r.scene.Uniform("uLightDir")
	r.locFogColor = r.scene.Uniform("uFogColor")
	r.locFogStart = r.scene.Uniform("uFogStart")
	r.locFogEnd = r.scene.Uniform("uFogEnd")

	r.flat, err = shader.Compile(flatVertexShader, flatFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("flat program: %w", err)
	}
	r.locRect = r.flat.Uniform("uRect")
	r.locColor = r.flat.Uniform("uColor")
	r.createQuad()

	return r, nil
}

// Close frees all renderer-owned GL objects. Chunk meshes are owned
// by the world and released separately.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
	}
	if r.quadVBO != 0 {
		gl.DeleteBuffers(1, &r.quadVBO)
	}
	if r.scene != nil {
		r.scene.Delete()
	}
	if r.flat != nil {
		r.flat.Delete()
	}
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin clears the frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// BeginScene binds the scene program and sets the per-frame uniforms.
func (r *Renderer) BeginScene(viewProj mgl32.Mat4, cameraPos mgl32.Vec3) {
	r.scene.Use()
	gl.UniformMatrix4fv(r.locViewProj, 1, false, &viewProj[0])
	gl.Uniform3f(r.locCameraPos, cameraPos.X(), cameraPos.Y(), cameraPos.Z())
	gl.Uniform3f(r.locLightDir, lightDir.X(), lightDir.Y(), lightDir.Z())
	gl.Uniform3f(r.locFogColor, skyColor.X(), skyColor.Y(), skyColor.Z())
	gl.Uniform1f(r.locFogStart, r.cfg.FogStart)
	gl.Uniform1f(r.locFogEnd, r.cfg.FogEnd)
}

// DrawLoadingScreen renders the progress bar overlay. Progress is in
// [0,1].
func (r *Renderer) DrawLoadingScreen(progress float32) {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	gl.Disable(gl.DEPTH_TEST)
	r.flat.Use()
	gl.BindVertexArray(r.quadVAO)

	// Track background, then the filled part.
	r.drawRect(-0.5, -0.05, 1.0, 0.1, mgl32.Vec3{0.25, 0.25, 0.28})
	r.drawRect(-0.5, -0.05, progress, 0.1, mgl32.Vec3{0.85, 0.85, 0.9})

	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

// DrawCrosshair renders a small cross at the screen center.
func (r *Renderer) DrawCrosshair(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	// A pixel in NDC units per axis.
	px := 2.0 / float32(width)
	py := 2.0 / float32(height)

	gl.Disable(gl.DEPTH_TEST)
	r.flat.Use()
	gl.BindVertexArray(r.quadVAO)

	color := mgl32.Vec3{0.95, 0.95, 0.95}
	r.drawRect(-8*px, -1*py, 16*px, 2*py, color)
	r.drawRect(-1*px, -8*py, 2*px, 16*py, color)

	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}

func (r *Renderer) drawRect(x, y, w, h float32, color mgl32.Vec3) {
	gl.Uniform4f(r.locRect, x, y, w, h)
	gl.Uniform3f(r.locColor, color.X(), color.Y(), color.Z())
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
}

// createQuad uploads the unit quad used by the overlay.
func (r *Renderer) createQuad() {
	quad := []float32{
		0, 0,
		1, 0,
		0, 1,
		1, 1,
	}

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)

	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
}
