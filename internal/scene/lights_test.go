package scene

import (
	"math"
	"testing"

	"classroom/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

func defaultGrid() config.LightGrid {
	return config.LightGrid{
		Rows:    3,
		Cols:    3,
		Spacing: 25.76,
		Origin:  mgl32.Vec3{-22.54, 38.6, -25.76},
	}
}

func vecNear(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() < eps
}

func TestLightGridPositions(t *testing.T) {
	lights := NewLightsFromGrid(defaultGrid())

	if lights.Count() != 9 {
		t.Fatalf("Expected 9 lights, got %d", lights.Count())
	}

	// center light (i=1, j=1) is layer 4 in row-major order
	if got := lights.Position(4); !vecNear(got, mgl32.Vec3{3.22, 38.6, 0}, 1e-4) {
		t.Errorf("Light 4 at %v, want (3.22, 38.6, 0)", got)
	}
	if got := lights.Position(0); !vecNear(got, mgl32.Vec3{-22.54, 38.6, -25.76}, 1e-4) {
		t.Errorf("Light 0 at %v, want the grid origin", got)
	}
	if got := lights.Position(8); !vecNear(got, mgl32.Vec3{28.98, 38.6, 25.76}, 1e-4) {
		t.Errorf("Light 8 at %v, want (28.98, 38.6, 25.76)", got)
	}
}

func TestBiasMatrixMapsClipToTexture(t *testing.T) {
	bias := BiasMatrix()
	cases := []struct {
		clip, tex mgl32.Vec3
	}{
		{mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{0, 0, 0}},
		{mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1}},
		{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0.5, 0.5, 0.5}},
	}
	for _, c := range cases {
		got := bias.Mul4x1(c.clip.Vec4(1)).Vec3()
		if !vecNear(got, c.tex, 1e-6) {
			t.Errorf("Bias(%v) = %v, want %v", c.clip, got, c.tex)
		}
	}
}

func TestLightViewLooksStraightDown(t *testing.T) {
	lights := NewLightsFromGrid(defaultGrid())
	view := lights.ViewMatrix(4)

	// the light itself maps to the eye origin
	eye := view.Mul4x1(lights.Position(4).Vec4(1)).Vec3()
	if eye.Len() > 1e-4 {
		t.Errorf("Light position maps to %v, want origin", eye)
	}

	// a point straight below the light lands on the -Z view axis
	below := lights.Position(4).Sub(mgl32.Vec3{0, 10, 0})
	got := view.Mul4x1(below.Vec4(1)).Vec3()
	if !vecNear(got, mgl32.Vec3{0, 0, -10}, 1e-4) {
		t.Errorf("Point below light maps to %v, want (0,0,-10)", got)
	}
}

func TestDepthBiasStableOrder(t *testing.T) {
	lights := NewLightsFromGrid(defaultGrid())

	for i := 0; i < lights.Count(); i++ {
		a := lights.DepthBias(i)
		b := lights.DepthBias(i)
		if a != b {
			t.Fatalf("DepthBias(%d) not stable", i)
		}
	}

	// distinct lights yield distinct matrices
	if lights.DepthBias(0) == lights.DepthBias(8) {
		t.Error("Different lights share a depth-bias matrix")
	}
}

func TestCameraSpacePositions(t *testing.T) {
	lights := NewLightsFromGrid(defaultGrid())

	ident := mgl32.Ident4()
	got := lights.CameraSpacePositions(ident)
	if len(got) != 9 {
		t.Fatalf("Expected 9 transformed positions, got %d", len(got))
	}
	for i := range got {
		if !vecNear(got[i], lights.Position(i), 1e-6) {
			t.Errorf("Identity view moved light %d: %v", i, got[i])
		}
	}

	// translate-only view shifts every light equally
	view := mgl32.Translate3D(0, 0, -5)
	shifted := lights.CameraSpacePositions(view)
	for i := range shifted {
		want := lights.Position(i).Add(mgl32.Vec3{0, 0, -5})
		if !vecNear(shifted[i], want, 1e-5) {
			t.Errorf("Light %d camera-space = %v, want %v", i, shifted[i], want)
		}
	}

	if diff := math.Abs(float64(lights.ProjectionMatrix().Det())); diff == 0 {
		t.Error("Shadow projection is singular")
	}
}
