package scene

import "github.com/go-gl/mathgl/mgl32"

var (
	// YAxis is the default rotation axis for placements.
	YAxis = mgl32.Vec3{0, 1, 0}
	// NoScale is the identity scale.
	NoScale = mgl32.Vec3{1, 1, 1}
)

// Transform composes a model matrix in the fixed order
// translate -> rotate -> scale. Zero rotation and identity scale are skipped.
func Transform(pos mgl32.Vec3, rotDeg float32, axis mgl32.Vec3, scale mgl32.Vec3) mgl32.Mat4 {
	m := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z())
	if rotDeg != 0 {
		m = m.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(rotDeg), axis))
	}
	if scale != NoScale {
		m = m.Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
	}
	return m
}

// Grid is a rectangular placement lattice walked in row-major order
// (i outer, j inner). Cells where Skip reports true are left out.
type Grid struct {
	Origin mgl32.Vec3
	StepI  mgl32.Vec3
	StepJ  mgl32.Vec3
	CountI int
	CountJ int
	Skip   func(i, j int) bool
}

// Each calls fn for every included cell. Iteration order is deterministic
// and stable across runs.
func (g Grid) Each(fn func(i, j int, pos mgl32.Vec3)) {
	for i := 0; i < g.CountI; i++ {
		for j := 0; j < g.CountJ; j++ {
			if g.Skip != nil && g.Skip(i, j) {
				continue
			}
			pos := g.Origin.Add(g.StepI.Mul(float32(i))).Add(g.StepJ.Mul(float32(j)))
			fn(i, j, pos)
		}
	}
}

// Positions returns every included cell position in iteration order.
func (g Grid) Positions() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, 0, g.CountI*g.CountJ)
	g.Each(func(_, _ int, pos mgl32.Vec3) {
		out = append(out, pos)
	})
	return out
}
