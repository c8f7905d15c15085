package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/doggo/ecs"
	"github.com/milk9111/doggo/ecs/component"
)

func TestFollowCamera(t *testing.T) {
	cam := component.Camera{BackDistance: 250, Height: 200, LookDistance: 100}

	tests := []struct {
		name       string
		target     mgl64.Vec3
		yaw        float64
		wantEye    mgl64.Vec3
		wantLookAt mgl64.Vec3
	}{
		{
			name:       "origin facing +z",
			wantEye:    mgl64.Vec3{0, 200, -250},
			wantLookAt: mgl64.Vec3{0, 0, 100},
		},
		{
			name:       "facing +x",
			target:     mgl64.Vec3{10, 5, -3},
			yaw:        math.Pi / 2,
			wantEye:    mgl64.Vec3{10 - 250, 205, -3},
			wantLookAt: mgl64.Vec3{110, 5, -3},
		},
		{
			name:       "turned around",
			yaw:        math.Pi,
			wantEye:    mgl64.Vec3{0, 200, 250},
			wantLookAt: mgl64.Vec3{0, 0, -100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eye, lookAt := FollowCamera(tt.target, tt.yaw, cam)
			if !eye.ApproxEqualThreshold(tt.wantEye, 1e-9) {
				t.Fatalf("eye = %v, want %v", eye, tt.wantEye)
			}
			if !lookAt.ApproxEqualThreshold(tt.wantLookAt, 1e-9) {
				t.Fatalf("lookAt = %v, want %v", lookAt, tt.wantLookAt)
			}
		})
	}
}

func newCamera(t *testing.T, w *ecs.World, cam component.Camera, eye mgl64.Vec3) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.CameraComponent.Kind(), &cam); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.CameraRigComponent.Kind(), &component.CameraRig{Eye: eye}); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestCameraSystem(t *testing.T) {
	start := mgl64.Vec3{100, 300, -100}
	cam := component.Camera{BackDistance: 250, Height: 250, LookDistance: 250, Follow: 1, LockEnabled: true}

	t.Run("hard follow", func(t *testing.T) {
		w := ecs.NewWorld()
		player := newPlayer(t, w, &fakeBody{}, component.Player{})
		camera := newCamera(t, w, cam, start)
		if err := ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
			t.Fatal(err)
		}

		NewCameraSystem().Update(w)
		rig, _ := ecs.Get(w, camera, component.CameraRigComponent.Kind())
		if rig.Eye != (mgl64.Vec3{0, 250, -250}) {
			t.Fatalf("eye = %v, want exact (0, 250, -250)", rig.Eye)
		}
		if rig.LookAt != (mgl64.Vec3{0, 0, 250}) {
			t.Fatalf("lookAt = %v, want exact (0, 0, 250)", rig.LookAt)
		}
	})

	t.Run("no model", func(t *testing.T) {
		w := ecs.NewWorld()
		newPlayer(t, w, &fakeBody{}, component.Player{})
		camera := newCamera(t, w, cam, start)

		NewCameraSystem().Update(w)
		rig, _ := ecs.Get(w, camera, component.CameraRigComponent.Kind())
		if rig.Eye != start {
			t.Fatalf("camera moved without a model: %v", rig.Eye)
		}
	})

	t.Run("lock disabled", func(t *testing.T) {
		w := ecs.NewWorld()
		player := newPlayer(t, w, &fakeBody{}, component.Player{})
		unlocked := cam
		unlocked.LockEnabled = false
		camera := newCamera(t, w, unlocked, start)
		if err := ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
			t.Fatal(err)
		}

		NewCameraSystem().Update(w)
		rig, _ := ecs.Get(w, camera, component.CameraRigComponent.Kind())
		if rig.Eye != start {
			t.Fatalf("camera moved with lock disabled: %v", rig.Eye)
		}
	})

	t.Run("partial follow", func(t *testing.T) {
		w := ecs.NewWorld()
		player := newPlayer(t, w, &fakeBody{}, component.Player{})
		smooth := cam
		smooth.Follow = 0.5
		camera := newCamera(t, w, smooth, mgl64.Vec3{0, 0, 0})
		if err := ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
			t.Fatal(err)
		}

		NewCameraSystem().Update(w)
		rig, _ := ecs.Get(w, camera, component.CameraRigComponent.Kind())
		if !rig.Eye.ApproxEqualThreshold(mgl64.Vec3{0, 125, -125}, 1e-9) {
			t.Fatalf("eye = %v, want halfway", rig.Eye)
		}
	})
}
