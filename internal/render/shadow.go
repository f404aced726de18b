package render

import (
	"fmt"
	"path/filepath"

	"classroom/internal/graphics"
	"classroom/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// ShadowPass renders scene depth from every light into one layer of a
// depth-only texture array. Layer order follows the light list and is
// identical every frame, so the lighting pass can index its uniform arrays
// by layer.
type ShadowPass struct {
	fbo        uint32
	depthArray uint32
	size       int32
	layers     int32

	shader    *graphics.Shader
	depthBias []mgl32.Mat4
}

// NewShadowPass builds the depth framebuffer and compiles the depth shader.
// An incomplete framebuffer is a fatal setup error.
func NewShadowPass(size, layers int) (*ShadowPass, error) {
	shader, err := graphics.NewShader(
		filepath.Join(ShadersDir, DepthVertShader),
		filepath.Join(ShadersDir, DepthFragShader),
	)
	if err != nil {
		return nil, err
	}

	sp := &ShadowPass{
		size:      int32(size),
		layers:    int32(layers),
		shader:    shader,
		depthBias: make([]mgl32.Mat4, 0, layers),
	}

	gl.GenFramebuffers(1, &sp.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, sp.fbo)

	// One depth map per light, in a single texture object
	gl.GenTextures(1, &sp.depthArray)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, sp.depthArray)
	gl.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, gl.DEPTH_COMPONENT16,
		sp.size, sp.size, sp.layers, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)

	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	// Hardware comparison sampling: texture() returns the shadow factor
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_COMPARE_FUNC, gl.LEQUAL)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)

	gl.FramebufferTextureLayer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, sp.depthArray, 0, 0)
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		sp.Dispose()
		return nil, fmt.Errorf("shadow framebuffer incomplete: status=0x%X", status)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)
	return sp, nil
}

// Render rewrites every shadow layer from its light's point of view and
// refreshes the depth-bias matrix list the lighting pass consumes.
func (sp *ShadowPass) Render(s *scene.Scene) {
	lights := s.Lights()
	casters := s.ShadowCasters()
	proj := lights.ProjectionMatrix()

	gl.BindFramebuffer(gl.FRAMEBUFFER, sp.fbo)
	gl.Viewport(0, 0, sp.size, sp.size)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	sp.shader.Use()
	sp.depthBias = sp.depthBias[:0]

	for layer := 0; layer < lights.Count(); layer++ {
		gl.FramebufferTextureLayer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, sp.depthArray, 0, int32(layer))
		gl.Clear(gl.DEPTH_BUFFER_BIT)

		view := lights.ViewMatrix(layer)
		lightVP := proj.Mul4(view)

		for _, b := range casters {
			if b.InstanceCount() == 0 {
				continue
			}
			b.BindPositionOnly()
			for _, model := range b.Instances() {
				depthMVP := lightVP.Mul4(model)
				sp.shader.SetMatrix4("depthMVP", depthMVP)
				gl.DrawElementsWithOffset(gl.TRIANGLES, b.IndexCount(), gl.UNSIGNED_SHORT, 0)
			}
			gl.DisableVertexAttribArray(0)
		}

		sp.depthBias = append(sp.depthBias, lights.DepthBias(layer))
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// DepthBiasMatrices returns the per-layer world-to-shadow-texture
// matrices recorded by the latest Render, in layer order.
func (sp *ShadowPass) DepthBiasMatrices() []mgl32.Mat4 {
	return sp.depthBias
}

// BindDepthArray binds the shadow texture array to the given texture unit.
func (sp *ShadowPass) BindDepthArray(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, sp.depthArray)
}

// Dispose releases the framebuffer, depth array and depth shader. Safe to
// call more than once.
func (sp *ShadowPass) Dispose() {
	if sp.fbo != 0 {
		gl.DeleteFramebuffers(1, &sp.fbo)
		sp.fbo = 0
	}
	if sp.depthArray != 0 {
		gl.DeleteTextures(1, &sp.depthArray)
		sp.depthArray = 0
	}
	if sp.shader != nil {
		sp.shader.Delete()
		sp.shader = nil
	}
}
