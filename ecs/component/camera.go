package component

import "github.com/go-gl/mathgl/mgl64"

type Camera struct {
	BackDistance float64
	Height       float64
	LookDistance float64
	// Follow is the interpolation factor toward the ideal eye each frame;
	// 1 snaps.
	Follow      float64
	LockEnabled bool

	FOV  float64
	Near float64
	Far  float64
}

var CameraComponent = NewComponent[Camera]()

// CameraRig is the camera transform resolved for the current frame.
type CameraRig struct {
	Eye    mgl64.Vec3
	LookAt mgl64.Vec3
	Pitch  float64
}

var CameraRigComponent = NewComponent[CameraRig]()
