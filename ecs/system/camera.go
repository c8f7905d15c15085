package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/doggo/common"
	"github.com/milk9111/doggo/ecs"
	"github.com/milk9111/doggo/ecs/component"
)

// FollowCamera returns the ideal eye position behind and above target and the
// point ahead of it to look at, for a target facing yaw.
func FollowCamera(target mgl64.Vec3, yaw float64, cam component.Camera) (eye, lookAt mgl64.Vec3) {
	sin, cos := math.Sincos(yaw)
	eye = mgl64.Vec3{
		target.X() - cam.BackDistance*sin,
		target.Y() + cam.Height,
		target.Z() - cam.BackDistance*cos,
	}
	lookAt = mgl64.Vec3{
		target.X() + cam.LookDistance*sin,
		target.Y(),
		target.Z() + cam.LookDistance*cos,
	}
	return eye, lookAt
}

// CameraSystem moves the camera rig to follow the player's model each render
// frame while camera lock is enabled. With Follow = 1 the rig snaps.
type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if !w.IsAlive(cs.camEntity) {
		cs.camEntity, _ = w.First(component.CameraTagComponent.Kind())
	}
	if !w.IsAlive(cs.targetEntity) {
		cs.targetEntity, _ = w.First(component.PlayerTagComponent.Kind())
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok || !cam.LockEnabled {
		return
	}
	rig, ok := ecs.Get(w, cs.camEntity, component.CameraRigComponent.Kind())
	if !ok {
		return
	}
	// no model, nothing to follow
	t, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	yaw, pitch := 0.0, 0.0
	if look, ok := ecs.Get(w, cs.targetEntity, component.PointerLookComponent.Kind()); ok {
		yaw, pitch = look.Yaw, look.Pitch
	}

	follow := cam.Follow
	if follow <= 0 {
		follow = 1
	}
	eye, lookAt := FollowCamera(t.Position, yaw, *cam)
	rig.Eye = common.LerpVec3(rig.Eye, eye, follow)
	rig.LookAt = lookAt
	rig.Pitch = pitch
}
