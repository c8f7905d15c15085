package system

import "github.com/milk9111/doggo/ecs"

// Stepper advances a physics world by one fixed step.
type Stepper interface {
	FixedStep()
}

// PhysicsSystem steps the physics world once per frame.
type PhysicsSystem struct {
	world Stepper
}

func NewPhysicsSystem(world Stepper) *PhysicsSystem {
	return &PhysicsSystem{world: world}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.world == nil {
		return
	}
	ps.world.FixedStep()
}
