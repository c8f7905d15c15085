package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/doggo/ecs"
	"github.com/milk9111/doggo/ecs/component"
)

// ResolveVelocity maps held directions and a yaw to a horizontal velocity.
//
// Forward is (sin yaw, 0, cos yaw) and left is (cos yaw, 0, -sin yaw). When
// more than one direction is held every contribution is scaled by
// diagonalMult. Opposing directions held together contribute nothing.
func ResolveVelocity(in component.InputState, yaw, speed, diagonalMult float64) mgl64.Vec3 {
	mult := 1.0
	if in.Active() > 1 {
		mult = diagonalMult
	}
	if math.IsNaN(yaw) || math.IsInf(yaw, 0) {
		return mgl64.Vec3{}
	}

	sin, cos := math.Sincos(yaw)
	forward := mgl64.Vec3{sin, 0, cos}.Mul(speed * mult)
	left := mgl64.Vec3{cos, 0, -sin}.Mul(speed * mult)

	var v mgl64.Vec3
	if in.Forward && !in.Back {
		v = v.Add(forward)
	}
	if in.Left && !in.Right {
		v = v.Add(left)
	}
	if in.Back && !in.Forward {
		v = v.Sub(forward)
	}
	if in.Right && !in.Left {
		v = v.Sub(left)
	}
	return v
}

// MovementSystem writes the resolved velocity into the player's body each
// physics tick. Horizontal velocity is replaced, not accumulated; vertical
// velocity is left to the integrator.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (m *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.PointerLookComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	)
	for _, e := range entities {
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		state, _ := ecs.Get(w, e, component.InputComponent.Kind())
		look, _ := ecs.Get(w, e, component.PointerLookComponent.Kind())
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if player == nil || state == nil || look == nil || bodyComp == nil || bodyComp.Body == nil {
			continue
		}

		v := ResolveVelocity(state.Snapshot(), look.Yaw, player.MoveSpeed, player.DiagonalMultiplier)
		v[1] = bodyComp.Body.Velocity().Y()
		bodyComp.Body.SetVelocity(v)
	}
}
