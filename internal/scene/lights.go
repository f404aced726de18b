package scene

import (
	"classroom/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

// Shadow projection shared by every light: wide FOV tuned to cover the room
// from the ceiling.
const (
	shadowFOVDeg = 120.0
	shadowAspect = 1.5
	shadowNear   = 5.0
	shadowFar    = 1000.0
)

// biasMatrix remaps clip space [-1,1] to shadow texture space [0,1].
// Column-major, same layout mgl32 stores.
var biasMatrix = mgl32.Mat4{
	0.5, 0.0, 0.0, 0.0,
	0.0, 0.5, 0.0, 0.0,
	0.0, 0.0, 0.5, 0.0,
	0.5, 0.5, 0.5, 1.0,
}

// BiasMatrix returns the constant clip-to-texture remapping.
func BiasMatrix() mgl32.Mat4 {
	return biasMatrix
}

// Lights is the fixed world-space light set, in stable row-major grid
// order. The order defines the shadow array layer each light owns.
type Lights struct {
	positions []mgl32.Vec3
}

// NewLightsFromGrid lays lights out on the configured ceiling lattice.
func NewLightsFromGrid(g config.LightGrid) *Lights {
	grid := Grid{
		Origin: g.Origin,
		StepI:  mgl32.Vec3{g.Spacing, 0, 0},
		StepJ:  mgl32.Vec3{0, 0, g.Spacing},
		CountI: g.Rows,
		CountJ: g.Cols,
	}
	return &Lights{positions: grid.Positions()}
}

// Count returns the number of lights.
func (l *Lights) Count() int {
	return len(l.positions)
}

// Position returns the world-space position of light i.
func (l *Lights) Position(i int) mgl32.Vec3 {
	return l.positions[i]
}

// Positions returns all light positions in layer order.
func (l *Lights) Positions() []mgl32.Vec3 {
	return l.positions
}

// ViewMatrix looks straight down from light i, with -Z as the up reference.
func (l *Lights) ViewMatrix(i int) mgl32.Mat4 {
	pos := l.positions[i]
	return mgl32.LookAtV(pos, pos.Add(mgl32.Vec3{0, -1, 0}), mgl32.Vec3{0, 0, -1})
}

// ProjectionMatrix returns the shadow projection shared by all lights.
func (l *Lights) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(shadowFOVDeg), shadowAspect, shadowNear, shadowFar)
}

// DepthBias returns bias * projection * view for light i: the matrix the
// lighting pass uses to project world space into layer i's texture space.
func (l *Lights) DepthBias(i int) mgl32.Mat4 {
	return biasMatrix.Mul4(l.ProjectionMatrix()).Mul4(l.ViewMatrix(i))
}

// CameraSpacePositions transforms every light position by the given view
// matrix, in layer order.
func (l *Lights) CameraSpacePositions(view mgl32.Mat4) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(l.positions))
	for i, p := range l.positions {
		out[i] = view.Mul4x1(p.Vec4(1)).Vec3()
	}
	return out
}
