package render

import (
	"fmt"

	"classroom/internal/config"
	"classroom/internal/graphics"
	"classroom/internal/profiling"
	"classroom/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const (
	ShadersDir = "assets/shaders"

	DepthVertShader = "depth.vert"
	DepthFragShader = "depth.frag"

	LightingVertShader = "lighting.vert"
	LightingFragShader = "lighting.frag"
)

// Renderer owns the GL pipeline state shared by both passes and runs
// them in order each frame: shadows first, then the lit scene.
type Renderer struct {
	vao uint32

	shadow  *ShadowPass
	forward *ForwardPass

	shading ShadingModel
}

// NewRenderer sets up global GL state and both render passes. The shadow
// map size and layer count come from the render settings at startup.
func NewRenderer(s *scene.Scene) (*Renderer, error) {
	r := &Renderer{shading: ShadingPhong}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.ClearColor(0.0, 0.0, 0.4, 0.0)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)

	shadow, err := NewShadowPass(config.GetShadowMapSize(), s.Lights().Count())
	if err != nil {
		r.Dispose()
		return nil, fmt.Errorf("failed to create shadow pass: %w", err)
	}
	r.shadow = shadow

	forward, err := NewForwardPass()
	if err != nil {
		r.Dispose()
		return nil, fmt.Errorf("failed to create forward pass: %w", err)
	}
	r.forward = forward

	return r, nil
}

// ShadingModel reports the active lighting mode.
func (r *Renderer) ShadingModel() ShadingModel {
	return r.shading
}

// ToggleShadingModel switches between Phong and Gouraud lighting and
// returns the newly active mode.
func (r *Renderer) ToggleShadingModel() ShadingModel {
	if r.shading == ShadingPhong {
		r.shading = ShadingGouraud
	} else {
		r.shading = ShadingPhong
	}
	return r.shading
}

// Render draws one frame: every shadow layer, then the forward pass at
// the window's framebuffer size.
func (r *Renderer) Render(s *scene.Scene, cam *graphics.Camera, width, height int) {
	func() {
		defer profiling.Track("render.shadow")()
		r.shadow.Render(s)
	}()

	defer profiling.Track("render.forward")()
	r.forward.Render(s, cam, r.shadow, width, height, r.shading)
}

// Dispose releases both passes and the shared vertex array. Safe to call
// on a partially constructed renderer.
func (r *Renderer) Dispose() {
	if r.forward != nil {
		r.forward.Dispose()
		r.forward = nil
	}
	if r.shadow != nil {
		r.shadow.Dispose()
		r.shadow = nil
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
}
