package geometry

import (
	"github.com/df07/go-raycast-tracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Position    core.Vec3 `json:"position"`    // Eye position
	Direction   core.Vec3 `json:"direction"`   // View direction (need not be unit length)
	Up          core.Vec3 `json:"up"`          // Approximate up vector
	FocalLength float64   `json:"focalLength"` // Distance to the image plane (0 = 1.0)
}

// DefaultCameraConfig looks down +Y with +Z up, two units above the ground plane
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position:    core.NewVec3(0, -5, 2),
		Direction:   core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 0, 1),
		FocalLength: 1,
	}
}

// Camera holds an orthonormal basis and generates primary rays through a unit-height
// image plane. The projection matrix is kept for callers that rasterize; ray
// generation does not use it.
type Camera struct {
	position    core.Vec3
	forward     core.Vec3
	up          core.Vec3
	right       core.Vec3
	focalLength float64
	projection  core.Mat4
}

// NewCamera creates a camera from configuration
func NewCamera(config CameraConfig) *Camera {
	focal := config.FocalLength
	if focal <= 0 {
		focal = 1
	}
	c := &Camera{
		position:    config.Position,
		focalLength: focal,
		projection:  core.Identity(),
	}
	c.SetOrientation(config.Direction, config.Up)
	return c
}

// SetOrientation rebuilds the basis: right = forward x up, then up = right x forward
func (c *Camera) SetOrientation(direction, up core.Vec3) {
	c.forward = direction.Normalize()
	c.right = c.forward.Cross(up.Normalize()).Normalize()
	c.up = c.right.Cross(c.forward)
}

// Move translates the camera by delta
func (c *Camera) Move(delta core.Vec3) {
	c.position = c.position.Add(delta)
}

// Rotate turns the view direction and up vector by q
func (c *Camera) Rotate(q core.Quat) {
	c.SetOrientation(q.Rotate(c.forward), q.Rotate(c.up))
}

// SetPerspective sets the projection matrix. fovY is in radians.
func (c *Camera) SetPerspective(fovY, ratio, near, far float64) {
	c.projection = core.Perspective(fovY, ratio, near, far)
}

// Projection returns the projection matrix
func (c *Camera) Projection() core.Mat4 {
	return c.projection
}

// View returns the world-to-camera matrix
func (c *Camera) View() core.Mat4 {
	return core.LookAt(c.position, c.forward, c.up)
}

// ViewProjection returns Projection * View
func (c *Camera) ViewProjection() core.Mat4 {
	return c.projection.Multiply(c.View())
}

// Position returns the eye position
func (c *Camera) Position() core.Vec3 { return c.position }

// Forward returns the unit view direction
func (c *Camera) Forward() core.Vec3 { return c.forward }

// Up returns the unit up vector, orthogonal to Forward
func (c *Camera) Up() core.Vec3 { return c.up }

// Right returns the unit right vector, Forward x Up
func (c *Camera) Right() core.Vec3 { return c.right }

// GetRay returns the primary ray through image coordinates (x, y) of a width x height
// image, y growing downward. The image plane spans the aspect ratio horizontally and
// one unit vertically. Integer coordinates hit pixel corners; callers jitter or add 0.5.
func (c *Camera) GetRay(x, y float64, width, height int) core.Ray {
	w := float64(width)
	h := float64(height)
	ratio := w / h
	px := (x - w/2) * ratio / w
	pz := (h/2 - y) / h

	direction := c.right.Multiply(px).
		Add(c.forward.Multiply(c.focalLength)).
		Add(c.up.Multiply(pz)).
		Normalize()
	return core.NewRay(c.position, direction)
}
