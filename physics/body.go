package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Body is a dynamic box in the world.
type Body struct {
	body  *cp.Body
	shape *cp.Shape

	halfWidth  float64
	halfDepth  float64
	y          float64
	vy         float64
	halfHeight float64
	grounded   bool
}

// Position returns the centre of the body.
func (b *Body) Position() mgl64.Vec3 {
	p := b.body.Position()
	return mgl64.Vec3{p.X, b.y, p.Y}
}

// SetPosition teleports the body.
func (b *Body) SetPosition(pos mgl64.Vec3) {
	b.body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Z()})
	b.y = pos.Y()
	b.grounded = false
}

func (b *Body) Velocity() mgl64.Vec3 {
	v := b.body.Velocity()
	return mgl64.Vec3{v.X, b.vy, v.Y}
}

// SetVelocity replaces the body velocity. Horizontal motion into an obstacle
// the body is already touching is dropped so the body slides along it.
func (b *Body) SetVelocity(v mgl64.Vec3) {
	h := cp.Vector{X: v.X(), Y: v.Z()}
	b.body.EachArbiter(func(arb *cp.Arbiter) {
		shapeA, shapeB := arb.Shapes()
		n := arb.Normal()
		other := shapeB
		if shapeA.Body() != b.body {
			n = n.Neg()
			other = shapeA
		}
		if o, ok := other.UserData.(*Obstacle); ok && b.Bottom() >= o.Top()-1e-9 {
			return
		}
		if d := h.Dot(n); d > 0 {
			h = h.Sub(n.Mult(d))
		}
	})
	b.body.SetVelocityVector(h)
	b.vy = v.Y()
}

// Quaternion returns the body orientation. Rotation is locked, so this is the
// Chipmunk angle about +Y (always zero unless set externally).
func (b *Body) Quaternion() mgl64.Quat {
	return mgl64.QuatRotate(b.body.Angle(), mgl64.Vec3{0, 1, 0})
}

// Grounded reports whether the body rested on a surface after the last step.
func (b *Body) Grounded() bool {
	return b.grounded
}

func (b *Body) footprint() cp.BB {
	p := b.body.Position()
	return cp.BB{L: p.X - b.halfWidth, B: p.Y - b.halfDepth, R: p.X + b.halfWidth, T: p.Y + b.halfDepth}
}

// Bottom returns the height of the underside of the body.
func (b *Body) Bottom() float64 {
	return b.y - b.halfHeight
}

func (b *Body) integrateVertical(dt float64, w *World) {
	b.vy += w.gravityY * dt
	b.y += b.vy * dt
	b.grounded = false

	support := w.supportHeight(b, b.Bottom()-b.vy*dt)
	if b.Bottom() < support {
		b.y = support + b.halfHeight
		if b.vy < 0 {
			b.vy = 0
		}
		b.grounded = true
	}
}

// Obstacle is a static box.
type Obstacle struct {
	Name   string
	Center mgl64.Vec3
	Size   mgl64.Vec3

	bb    cp.BB
	shape *cp.Shape
}

// Top returns the height of the obstacle's upper face.
func (o *Obstacle) Top() float64 {
	return o.Center.Y() + o.Size.Y()/2
}
