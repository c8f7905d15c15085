package component

import "github.com/go-gl/mathgl/mgl64"

// Body is the slice of a rigid body the controller talks to. Position and
// orientation are owned by the physics integrator; callers only write velocity.
type Body interface {
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	Position() mgl64.Vec3
	Quaternion() mgl64.Quat
}

// PhysicsBody links an entity to its body in the physics world.
type PhysicsBody struct {
	Body Body
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
