package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeObstacle
)

// DefaultTickRate matches a 60Hz display.
const DefaultTickRate = 60

// Config describes the world the player moves in.
type Config struct {
	// TickRate is the number of fixed steps per simulated second.
	TickRate int
	Gravity  mgl64.Vec3
	// GroundY is the height of the infinite ground plane.
	GroundY float64
}

// World is a fixed-step rigid body world with +Y up.
//
// The horizontal plane is simulated by a Chipmunk space (space X = world X,
// space Y = world Z) so bodies slide against obstacles there. The vertical
// axis is integrated here against the ground plane and obstacle tops, so a
// body above an obstacle passes over it.
type World struct {
	space    *cp.Space
	dt       float64
	gravityY float64
	groundY  float64

	bodies    []*Body
	obstacles []*Obstacle
	steps     int
}

// NewWorld creates an empty world.
func NewWorld(cfg Config) *World {
	rate := cfg.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: cfg.Gravity.X(), Y: cfg.Gravity.Z()})

	w := &World{
		space:    space,
		dt:       1.0 / float64(rate),
		gravityY: cfg.Gravity.Y(),
		groundY:  cfg.GroundY,
	}
	w.setupHandlers()
	return w
}

// TimeStep returns the duration of one fixed step in seconds.
func (w *World) TimeStep() float64 {
	return w.dt
}

// Steps returns how many fixed steps have run.
func (w *World) Steps() int {
	return w.steps
}

// Bodies returns the dynamic bodies in insertion order.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Obstacles returns the static obstacles in insertion order.
func (w *World) Obstacles() []*Obstacle {
	return w.obstacles
}

// FixedStep advances the world by one fixed time step.
func (w *World) FixedStep() {
	w.Step(w.dt)
}

// Step advances the world by dt seconds.
func (w *World) Step(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	for _, b := range w.bodies {
		b.integrateVertical(dt, w)
	}
	w.space.Step(dt)
	w.steps++
}

// AddBox adds a dynamic box body centred at pos with the given half extents.
// Rotation is locked; heading is owned by whoever renders the body.
func (w *World) AddBox(pos, halfExtents mgl64.Vec3, mass float64) *Body {
	if mass <= 0 {
		mass = 1
	}
	width := halfExtents.X() * 2
	depth := halfExtents.Z() * 2

	cpBody := cp.NewBody(mass, math.Inf(1))
	cpBody.SetPosition(cp.Vector{X: pos.X(), Y: pos.Z()})
	shape := cp.NewBox(cpBody, width, depth, 0)
	// slippery against everything, like a character capsule
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeBody)

	b := &Body{
		body:       cpBody,
		shape:      shape,
		halfWidth:  halfExtents.X(),
		halfDepth:  halfExtents.Z(),
		y:          pos.Y(),
		halfHeight: halfExtents.Y(),
	}
	cpBody.UserData = b

	w.space.AddBody(cpBody)
	w.space.AddShape(shape)
	w.bodies = append(w.bodies, b)
	return b
}

// AddObstacle adds a static axis-aligned box centred at center.
func (w *World) AddObstacle(name string, center, size mgl64.Vec3) *Obstacle {
	half := size.Mul(0.5)
	bb := cp.BB{
		L: center.X() - half.X(),
		B: center.Z() - half.Z(),
		R: center.X() + half.X(),
		T: center.Z() + half.Z(),
	}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeObstacle)

	o := &Obstacle{
		Name:   name,
		Center: center,
		Size:   size,
		bb:     bb,
		shape:  shape,
	}
	shape.UserData = o
	w.space.AddShape(shape)
	w.obstacles = append(w.obstacles, o)
	return o
}

// supportHeight returns the highest surface under a body footprint that its
// bottom has already cleared.
func (w *World) supportHeight(b *Body, bottom float64) float64 {
	support := w.groundY
	bb := b.footprint()
	for _, o := range w.obstacles {
		top := o.Top()
		if top <= support || bottom < top-1e-9 {
			continue
		}
		if o.bb.Intersects(bb) {
			support = top
		}
	}
	return support
}

func (w *World) setupHandlers() {
	handler := w.space.NewCollisionHandler(collisionTypeBody, collisionTypeObstacle)
	handler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		shapeA, shapeB := arb.Shapes()
		body, okA := shapeA.Body().UserData.(*Body)
		obstacle, okB := shapeB.UserData.(*Obstacle)
		if !okA || !okB {
			body, okA = shapeB.Body().UserData.(*Body)
			obstacle, okB = shapeA.UserData.(*Obstacle)
		}
		if !okA || !okB {
			return true
		}
		// a body resting on top (or above) doesn't collide sideways
		return body.Bottom() < obstacle.Top()-1e-9
	}
}
