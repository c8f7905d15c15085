package loop

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/doggo/ecs/component"
	"github.com/milk9111/doggo/physics"
)

// Pose is the player and camera state at the end of a frame.
type Pose struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Facing   float64
	Yaw      float64
	Pitch    float64
	Spins    int
	Locked   bool
	Grounded bool

	CameraEye    mgl64.Vec3
	CameraLookAt mgl64.Vec3
	CameraLocked bool
}

func (p Pose) String() string {
	return fmt.Sprintf(
		"pos=(%.3f, %.3f, %.3f) vel=(%.3f, %.3f, %.3f) yaw=%.4f pitch=%.4f spins=%d lock=%t eye=(%.3f, %.3f, %.3f) look=(%.3f, %.3f, %.3f)",
		p.Position.X(), p.Position.Y(), p.Position.Z(),
		p.Velocity.X(), p.Velocity.Y(), p.Velocity.Z(),
		p.Yaw, p.Pitch, p.Spins, p.Locked,
		p.CameraEye.X(), p.CameraEye.Y(), p.CameraEye.Z(),
		p.CameraLookAt.X(), p.CameraLookAt.Y(), p.CameraLookAt.Z(),
	)
}

// Frame is everything a renderer needs for one draw.
type Frame struct {
	Number int64
	Pose   Pose

	Camera component.Camera
	Rig    component.CameraRig

	// Model and ModelTransform are nil until the player model has loaded.
	Model          *component.Model
	ModelTransform *component.Transform

	Physics *physics.World
}

// Renderer draws a frame.
type Renderer interface {
	Render(f Frame)
}

// NopRenderer discards frames.
type NopRenderer struct{}

func (NopRenderer) Render(Frame) {}

// RecordingRenderer keeps the most recent frame.
type RecordingRenderer struct {
	Last  Frame
	Count int
}

func (r *RecordingRenderer) Render(f Frame) {
	r.Last = f
	r.Count++
}
