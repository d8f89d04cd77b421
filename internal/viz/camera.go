package viz

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

const (
	defaultTilt = 0.55
	defaultTurn = -0.65
)

// Camera is an orbiting perspective camera looking at the origin from +Z.
type Camera struct {
	Distance, Near   float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

// NewCamera returns a camera tilted to look down onto the unit surface.
func NewCamera() *Camera {
	return &Camera{Distance: 4, Near: 0.1, RotX: defaultTilt, RotY: defaultTurn, Zoom: 1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) Reset() {
	*c = *NewCamera()
}

// Rotate applies the Y (turn), X (tilt) and Z (roll) rotations in that order.
func (c *Camera) Rotate(p Vec3) Vec3 {
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project maps p onto a w×h viewport. depth grows towards the camera, and
// ok is false for points behind the near plane.
func (c *Camera) Project(p Vec3, w, h float64) (sx, sy, depth float64, ok bool) {
	rot := c.Rotate(p).Scale(c.Zoom)
	if rot.Z >= c.Distance-c.Near {
		return 0, 0, 0, false
	}
	persp := c.Distance / (c.Distance - rot.Z)
	unit := math.Min(w, h) * 0.8
	sx = w/2 + rot.X*persp*unit
	sy = h/2 - rot.Y*persp*unit
	return sx, sy, rot.Z, true
}
