package render

import (
	"path/filepath"

	"classroom/internal/graphics"
	"classroom/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Texture unit assignments shared with the lighting shader.
const (
	unitDiffuse = 0
	unitShadow  = 1
	unitNormal  = 2
	unitAux     = 3 // specular map for normal-mapped batches, smudge for glass
)

// Glass panes blend at a fixed coverage.
const glassAlpha = 0.25

// ShadingModel selects the lighting computation mode.
type ShadingModel int32

const (
	ShadingPhong   ShadingModel = 0 // per-fragment
	ShadingGouraud ShadingModel = 1 // per-vertex
)

func (m ShadingModel) String() string {
	if m == ShadingGouraud {
		return "Gouraud"
	}
	return "Phong"
}

// ForwardPass produces the final image: all lights, all shadow layers,
// opaque then normal-mapped then unlit then transparent.
type ForwardPass struct {
	shader *graphics.Shader
}

// NewForwardPass compiles the lighting shader.
func NewForwardPass() (*ForwardPass, error) {
	shader, err := graphics.NewShader(
		filepath.Join(ShadersDir, LightingVertShader),
		filepath.Join(ShadersDir, LightingFragShader),
	)
	if err != nil {
		return nil, err
	}
	return &ForwardPass{shader: shader}, nil
}

// Render draws the scene to the default framebuffer from the camera's
// point of view, sampling every shadow layer written by the shadow pass
// earlier in the same frame.
func (fp *ForwardPass) Render(s *scene.Scene, cam *graphics.Camera, shadow *ShadowPass, width, height int, model ShadingModel) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()
	vp := proj.Mul4(view)
	lights := s.Lights()

	fp.shader.Use()
	fp.shader.SetInt("uShadingModel", int32(model))
	fp.shader.SetMatrix4("V", view)
	fp.shader.SetInt("uLightCount", int32(lights.Count()))
	fp.shader.SetVec3Array("uLightPositionsCam", lights.CameraSpacePositions(view))
	fp.shader.SetMatrix4Array("uDepthBiasVP", shadow.DepthBiasMatrices())

	shadow.BindDepthArray(unitShadow)
	fp.shader.SetInt("uShadowMaps", unitShadow)
	fp.shader.SetBool("uIsUnlit", false)
	fp.shader.SetBool("uIsGlass", false)

	for _, b := range s.Opaque() {
		fp.drawBatch(b, vp, 1.0)
	}
	for _, b := range s.NormalMapped() {
		fp.drawBatch(b, vp, 1.0)
	}

	// Light panels render at full brightness regardless of lighting
	fp.shader.SetBool("uIsUnlit", true)
	for _, b := range s.Markers() {
		fp.drawBatch(b, vp, 1.0)
	}
	fp.shader.SetBool("uIsUnlit", false)

	// Transparency last: depth reads stay on so glass sits behind opaque
	// geometry, but depth writes are off so panes never occlude each other.
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	fp.shader.SetBool("uIsGlass", true)

	for _, b := range s.Transparent() {
		gl.ActiveTexture(gl.TEXTURE0 + unitAux)
		gl.BindTexture(gl.TEXTURE_2D, b.DiffuseTexture())
		fp.shader.SetInt("uSmudgeSampler", unitAux)
		fp.drawBatch(b, vp, glassAlpha)
	}

	// Restore state so the next frame's opaque pass is unaffected
	fp.shader.SetBool("uIsGlass", false)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

func (fp *ForwardPass) drawBatch(b *scene.Batch, vp mgl32.Mat4, alpha float32) {
	if b.InstanceCount() == 0 {
		return
	}

	gl.ActiveTexture(gl.TEXTURE0 + unitDiffuse)
	gl.BindTexture(gl.TEXTURE_2D, b.DiffuseTexture())
	fp.shader.SetInt("uDiffuseSampler", unitDiffuse)

	if b.HasNormalMap() {
		fp.shader.SetBool("uUseNormalMap", true)
		fp.shader.SetBool("uUseSpecularMap", true)

		gl.ActiveTexture(gl.TEXTURE0 + unitNormal)
		gl.BindTexture(gl.TEXTURE_2D, b.NormalTexture())
		fp.shader.SetInt("uNormalSampler", unitNormal)

		gl.ActiveTexture(gl.TEXTURE0 + unitAux)
		gl.BindTexture(gl.TEXTURE_2D, b.SpecularTexture())
		fp.shader.SetInt("uSpecularSampler", unitAux)
	} else {
		fp.shader.SetBool("uUseNormalMap", false)
		fp.shader.SetBool("uUseSpecularMap", false)
	}

	b.BindGeometry()
	fp.shader.SetFloat("uAlpha", alpha)

	// One draw per instance. The batch keeps instances grouped, so moving
	// to hardware instancing stays a local change.
	for _, model := range b.Instances() {
		mvp := vp.Mul4(model)
		fp.shader.SetMatrix4("MVP", mvp)
		fp.shader.SetMatrix4("M", model)
		gl.DrawElementsWithOffset(gl.TRIANGLES, b.IndexCount(), gl.UNSIGNED_SHORT, 0)
	}

	b.UnbindGeometry()
}

// Dispose releases the lighting shader.
func (fp *ForwardPass) Dispose() {
	if fp.shader != nil {
		fp.shader.Delete()
		fp.shader = nil
	}
}
