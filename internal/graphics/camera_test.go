package graphics

import (
	"math"
	"testing"
)

func TestScrollClampsFOV(t *testing.T) {
	c := NewCamera(1536, 1152)

	for i := 0; i < 100; i++ {
		c.HandleScroll(1) // zoom in
	}
	if c.FOV != MinFOV {
		t.Errorf("FOV = %g, want clamp at %g", c.FOV, float32(MinFOV))
	}

	for i := 0; i < 100; i++ {
		c.HandleScroll(-1) // zoom out
	}
	if c.FOV != MaxFOV {
		t.Errorf("FOV = %g, want clamp at %g", c.FOV, float32(MaxFOV))
	}
}

func TestDirectionIsUnitLength(t *testing.T) {
	c := NewCamera(1536, 1152)
	for _, angles := range [][2]float32{{0, 0}, {0.59, -0.48}, {3.1, 1.2}, {-2.5, -1.0}} {
		c.HorizontalAngle, c.VerticalAngle = angles[0], angles[1]
		if l := c.Direction().Len(); math.Abs(float64(l)-1) > 1e-5 {
			t.Errorf("angles %v: |direction| = %g", angles, l)
		}
		if l := c.Right().Len(); math.Abs(float64(l)-1) > 1e-5 {
			t.Errorf("angles %v: |right| = %g", angles, l)
		}
	}
}

func TestRightIsHorizontalAndOrthogonal(t *testing.T) {
	c := NewCamera(1536, 1152)
	c.HorizontalAngle, c.VerticalAngle = 0.59, -0.48

	right := c.Right()
	if right.Y() != 0 {
		t.Errorf("Right vector not horizontal: %v", right)
	}
	if d := math.Abs(float64(right.Dot(c.Direction()))); d > 1e-5 {
		t.Errorf("Right not orthogonal to direction: dot=%g", d)
	}
}

func TestZeroAnglesLookDownPlusZ(t *testing.T) {
	c := NewCamera(1536, 1152)
	c.HorizontalAngle, c.VerticalAngle = 0, 0

	dir := c.Direction()
	if math.Abs(float64(dir.Z()-1)) > 1e-5 || math.Abs(float64(dir.X())) > 1e-5 || math.Abs(float64(dir.Y())) > 1e-5 {
		t.Errorf("Direction at zero angles = %v, want (0,0,1)", dir)
	}
}
