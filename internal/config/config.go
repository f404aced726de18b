package config

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Window dimensions and title
const (
	WindowWidth  = 1536
	WindowHeight = 1152
	WindowTitle  = "Classroom"
)

// MaxLights bounds the uniform arrays in the lighting shader. The runtime
// light grid may be smaller, never larger.
const MaxLights = 9

// LightGrid describes the ceiling light layout: a RowsxCols lattice on the
// XZ plane, row-major order.
type LightGrid struct {
	Rows, Cols int
	Spacing    float32
	Origin     mgl32.Vec3
}

// Count returns the number of lights the grid produces.
func (g LightGrid) Count() int {
	return g.Rows * g.Cols
}

// RenderSettings holds render configuration
type RenderSettings struct {
	mu            sync.RWMutex
	shadowMapSize int
	lightGrid     LightGrid
}

var globalRenderSettings = &RenderSettings{
	shadowMapSize: 1024,
	lightGrid: LightGrid{
		Rows:    3,
		Cols:    3,
		Spacing: 25.76,
		Origin:  mgl32.Vec3{-22.54, 38.6, -25.76},
	},
}

// GetShadowMapSize returns the shadow depth map resolution (square).
func GetShadowMapSize() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.shadowMapSize
}

// SetShadowMapSize sets the shadow depth map resolution.
func SetShadowMapSize(size int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values
	if size < 256 {
		size = 256
	}
	if size > 4096 {
		size = 4096
	}
	globalRenderSettings.shadowMapSize = size
}

// GetLightGrid returns the configured ceiling light layout.
func GetLightGrid() LightGrid {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.lightGrid
}

// SetLightGrid sets the ceiling light layout. Grids larger than MaxLights
// are clamped by shrinking rows, then columns.
func SetLightGrid(g LightGrid) {
	if g.Rows < 1 {
		g.Rows = 1
	}
	if g.Cols < 1 {
		g.Cols = 1
	}
	for g.Rows*g.Cols > MaxLights && g.Rows > 1 {
		g.Rows--
	}
	for g.Rows*g.Cols > MaxLights && g.Cols > 1 {
		g.Cols--
	}

	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.lightGrid = g
}
