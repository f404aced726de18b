package graphics

import (
	"math"

	"classroom/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Field-of-view zoom range for the scroll wheel, in degrees.
const (
	MinFOV = 20.0
	MaxFOV = 60.0
)

// Camera is a free-flying first-person camera. It owns all view state; the
// render passes receive it by reference and never touch globals.
type Camera struct {
	Position        mgl32.Vec3
	HorizontalAngle float32 // radians, 0 looks toward +Z
	VerticalAngle   float32 // radians

	FOV         float32 // degrees
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32

	MoveSpeed  float32 // units per second
	BoostScale float32 // speed multiplier while the boost key is held
	MouseSpeed float32 // radians per pixel of cursor travel
}

// NewCamera places the camera at the back corner of the room, looking in.
func NewCamera(width, height int) *Camera {
	return &Camera{
		Position:        mgl32.Vec3{-32, 30, -48},
		HorizontalAngle: 0.59,
		VerticalAngle:   -0.48,
		FOV:             45.0,
		AspectRatio:     float32(width) / float32(height),
		NearPlane:       0.1,
		FarPlane:        200.0,
		MoveSpeed:       10.0,
		BoostScale:      2.5,
		MouseSpeed:      0.005,
	}
}

// Direction returns the unit view direction from the spherical angles.
func (c *Camera) Direction() mgl32.Vec3 {
	ch := math.Cos(float64(c.VerticalAngle))
	return mgl32.Vec3{
		float32(ch * math.Sin(float64(c.HorizontalAngle))),
		float32(math.Sin(float64(c.VerticalAngle))),
		float32(ch * math.Cos(float64(c.HorizontalAngle))),
	}
}

// Right returns the unit right vector, always horizontal.
func (c *Camera) Right() mgl32.Vec3 {
	a := float64(c.HorizontalAngle) - math.Pi/2
	return mgl32.Vec3{float32(math.Sin(a)), 0, float32(math.Cos(a))}
}

// Up returns the camera-relative up vector.
func (c *Camera) Up() mgl32.Vec3 {
	return c.Right().Cross(c.Direction())
}

// ViewMatrix returns the world-to-camera transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Direction()), c.Up())
}

// ProjectionMatrix returns the camera-to-clip transform.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// HandleScroll applies a scroll-wheel zoom step, clamped to [MinFOV, MaxFOV].
func (c *Camera) HandleScroll(yoffset float64) {
	c.FOV -= float32(yoffset) * 2.0
	if c.FOV < MinFOV {
		c.FOV = MinFOV
	}
	if c.FOV > MaxFOV {
		c.FOV = MaxFOV
	}
}

// Update integrates one frame of mouse look and keyboard movement. The
// cursor is recentered every frame so look rotation is unbounded.
func (c *Camera) Update(window *glfw.Window, im *input.Manager, dt float64) {
	width, height := window.GetSize()
	cx, cy := float64(width)/2, float64(height)/2

	xpos, ypos := window.GetCursorPos()
	window.SetCursorPos(cx, cy)

	c.HorizontalAngle += c.MouseSpeed * float32(cx-xpos)
	c.VerticalAngle += c.MouseSpeed * float32(cy-ypos)

	speed := c.MoveSpeed
	if im.IsActive(input.ActionSpeedBoost) {
		speed *= c.BoostScale
	}
	step := speed * float32(dt)

	dir := c.Direction()
	right := c.Right()
	up := c.Up()

	if im.IsActive(input.ActionMoveForward) {
		c.Position = c.Position.Add(dir.Mul(step))
	}
	if im.IsActive(input.ActionMoveBackward) {
		c.Position = c.Position.Sub(dir.Mul(step))
	}
	if im.IsActive(input.ActionStrafeRight) {
		c.Position = c.Position.Add(right.Mul(step))
	}
	if im.IsActive(input.ActionStrafeLeft) {
		c.Position = c.Position.Sub(right.Mul(step))
	}
	if im.IsActive(input.ActionAscend) {
		c.Position = c.Position.Add(up.Mul(step))
	}
	if im.IsActive(input.ActionDescend) {
		c.Position = c.Position.Sub(up.Mul(step))
	}
}
