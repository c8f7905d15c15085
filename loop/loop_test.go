package loop

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/doggo/ecs/component"
	"github.com/milk9111/doggo/input"
	"github.com/milk9111/doggo/prefabs"
)

const eps = 1e-6

func newTestLoop(t *testing.T) (*GameLoop, *RecordingRenderer) {
	t.Helper()
	spec := &prefabs.GameSpec{}
	// start on the ground so nothing falls during the test
	spec.Player.Spawn = &prefabs.Vec3Spec{Y: 1}
	rec := &RecordingRenderer{}
	g, err := New(spec, nil, rec)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g, rec
}

func testModel() *prefabs.PlayerModelSpec {
	return &prefabs.PlayerModelSpec{Name: "test", HalfExtents: prefabs.Vec3Spec{X: 1, Y: 1, Z: 1}}
}

func TestForwardForNFrames(t *testing.T) {
	g, _ := newTestLoop(t)
	g.Queue().Push(input.KeyEvent{Direction: component.DirectionForward, Pressed: true})

	const n = 30
	start := g.Pose().Position
	for i := 0; i < n; i++ {
		g.Frame()
	}
	got := g.Pose().Position

	want := 300 * g.TimeStep() * n
	if !mgl64.FloatEqualThreshold(got.Z()-start.Z(), want, eps) {
		t.Fatalf("z moved %v, want %v", got.Z()-start.Z(), want)
	}
	if !mgl64.FloatEqualThreshold(got.X(), start.X(), eps) {
		t.Fatalf("x drifted to %v", got.X())
	}
}

func TestReleaseStopsImmediately(t *testing.T) {
	g, _ := newTestLoop(t)
	g.Queue().Push(input.KeyEvent{Direction: component.DirectionForward, Pressed: true})
	g.Frame()
	g.Queue().Push(input.KeyEvent{Direction: component.DirectionForward, Pressed: false})
	g.Frame()

	if v := g.Pose().Velocity; !mgl64.FloatEqualThreshold(v.X(), 0, eps) || !mgl64.FloatEqualThreshold(v.Z(), 0, eps) {
		t.Fatalf("velocity after release = %v, want zero horizontal", v)
	}
}

func TestPointerLockGatesYaw(t *testing.T) {
	g, _ := newTestLoop(t)

	g.Queue().Push(input.MouseDeltaEvent{DX: 100})
	g.Frame()
	if yaw := g.Pose().Yaw; yaw != 0 {
		t.Fatalf("yaw changed without lock: %v", yaw)
	}

	g.Queue().Push(input.PointerLockEvent{Locked: true})
	g.Queue().Push(input.MouseDeltaEvent{DX: 100})
	g.Frame()
	if yaw := g.Pose().Yaw; !mgl64.FloatEqualThreshold(yaw, -0.1, eps) {
		t.Fatalf("yaw = %v, want -0.1", yaw)
	}

	g.Queue().Push(input.PointerLockEvent{Locked: false})
	g.Queue().Push(input.MouseDeltaEvent{DX: 100})
	g.Frame()
	if yaw := g.Pose().Yaw; !mgl64.FloatEqualThreshold(yaw, -0.1, eps) {
		t.Fatalf("yaw changed after release: %v", yaw)
	}
}

func TestMissingModelSkipsFollow(t *testing.T) {
	g, rec := newTestLoop(t)
	g.Frame()

	if rec.Last.Model != nil || rec.Last.ModelTransform != nil {
		t.Fatalf("expected no model before attach")
	}
	want := mgl64.Vec3{100, 300, -100}
	if eye := rec.Last.Rig.Eye; !eye.ApproxEqualThreshold(want, eps) {
		t.Fatalf("camera moved without a model: %v", eye)
	}

	if err := g.AttachModel(testModel()); err != nil {
		t.Fatalf("AttachModel: %v", err)
	}
	g.Frame()
	if rec.Last.Model == nil {
		t.Fatalf("expected model after attach")
	}
	// model sits 2 below the body, camera 250 above and behind it
	body := g.Pose().Position
	wantEye := mgl64.Vec3{body.X(), body.Y() - 2 + 250, body.Z() - 250}
	if eye := rec.Last.Rig.Eye; !eye.ApproxEqualThreshold(wantEye, eps) {
		t.Fatalf("eye = %v, want %v", eye, wantEye)
	}
	wantLook := mgl64.Vec3{body.X(), body.Y() - 2, body.Z() + 250}
	if look := rec.Last.Rig.LookAt; !look.ApproxEqualThreshold(wantLook, eps) {
		t.Fatalf("look at = %v, want %v", look, wantLook)
	}
}

func TestCameraLockToggle(t *testing.T) {
	g, rec := newTestLoop(t)
	if err := g.AttachModel(testModel()); err != nil {
		t.Fatalf("AttachModel: %v", err)
	}
	g.Frame()
	frozen := rec.Last.Rig.Eye

	g.Queue().Push(input.ToggleCameraLockEvent{})
	g.Queue().Push(input.KeyEvent{Direction: component.DirectionForward, Pressed: true})
	for i := 0; i < 10; i++ {
		g.Frame()
	}
	if rec.Last.Pose.CameraLocked {
		t.Fatalf("camera lock should be off")
	}
	if eye := rec.Last.Rig.Eye; !eye.ApproxEqualThreshold(frozen, eps) {
		t.Fatalf("camera followed while unlocked: %v -> %v", frozen, eye)
	}

	g.Queue().Push(input.ToggleCameraLockEvent{})
	g.Frame()
	if eye := rec.Last.Rig.Eye; eye.ApproxEqualThreshold(frozen, eps) {
		t.Fatalf("camera did not catch up after relock")
	}
}

func TestFrameCounterAndRender(t *testing.T) {
	g, rec := newTestLoop(t)
	for i := 0; i < 5; i++ {
		g.Frame()
	}
	if g.FrameCount() != 5 || rec.Count != 5 || rec.Last.Number != 5 {
		t.Fatalf("frames = %d, renders = %d, last = %d", g.FrameCount(), rec.Count, rec.Last.Number)
	}
}

func TestFallsToGround(t *testing.T) {
	g, err := New(nil, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if y := g.Pose().Position.Y(); y != 10 {
		t.Fatalf("spawn y = %v, want 10", y)
	}
	for i := 0; i < 600; i++ {
		g.Frame()
	}
	p := g.Pose()
	if !mgl64.FloatEqualThreshold(p.Position.Y(), 1, 1e-9) || !p.Grounded {
		t.Fatalf("expected resting on ground, got y=%v grounded=%t", p.Position.Y(), p.Grounded)
	}
}

func TestApplyTuning(t *testing.T) {
	g, _ := newTestLoop(t)
	spec := prefabs.DefaultGameSpec()
	spec.Player.MoveSpeed = prefabs.Float64(60)
	g.ApplyTuning(spec)

	g.Queue().Push(input.KeyEvent{Direction: component.DirectionForward, Pressed: true})
	g.Frame()
	if v := g.Pose().Velocity.Z(); !mgl64.FloatEqualThreshold(v, 60, eps) {
		t.Fatalf("velocity z = %v, want 60", v)
	}
}

func TestApplyTuningReclampsPitch(t *testing.T) {
	g, _ := newTestLoop(t)
	g.Queue().Push(input.PointerLockEvent{Locked: true})
	// look up 1.2 rad at sensitivity 0.001
	g.Queue().Push(input.MouseDeltaEvent{DY: -1200})
	g.Frame()
	if p := g.Pose().Pitch; !mgl64.FloatEqualThreshold(p, 1.2, eps) {
		t.Fatalf("pitch = %v, want 1.2", p)
	}

	spec := prefabs.DefaultGameSpec()
	spec.Look.MaxPitch = prefabs.Float64(0.5)
	g.ApplyTuning(spec)
	if p := g.Pose().Pitch; p != 0.5 {
		t.Fatalf("pitch after reload = %v, want 0.5", p)
	}
}

func TestZeroSpeedFromConfig(t *testing.T) {
	spec := &prefabs.GameSpec{}
	spec.Player.Spawn = &prefabs.Vec3Spec{Y: 1}
	spec.Player.MoveSpeed = prefabs.Float64(0)
	g, err := New(spec, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.Queue().Push(input.KeyEvent{Direction: component.DirectionForward, Pressed: true})
	g.Frame()
	if v := g.Pose().Velocity; v.X() != 0 || v.Z() != 0 {
		t.Fatalf("velocity = %v, want no horizontal motion at speed 0", v)
	}
}

func TestYawWrapThroughLoop(t *testing.T) {
	g, _ := newTestLoop(t)
	g.Queue().Push(input.PointerLockEvent{Locked: true})
	// 2.5 turns left at sensitivity 0.001
	g.Queue().Push(input.MouseDeltaEvent{DX: -5000 * math.Pi})
	g.Frame()

	p := g.Pose()
	if p.Spins != 2 {
		t.Fatalf("spins = %d, want 2", p.Spins)
	}
	if !mgl64.FloatEqualThreshold(p.Yaw, math.Pi, 1e-9) {
		t.Fatalf("yaw = %v, want pi", p.Yaw)
	}
	if math.Abs(p.Yaw) > 2*math.Pi {
		t.Fatalf("yaw out of range: %v", p.Yaw)
	}
}

func TestLoadModelAsync(t *testing.T) {
	g, rec := newTestLoop(t)
	ch := LoadModelAsync()

	res := <-ch
	if res.Err != nil {
		t.Fatalf("load: %v", res.Err)
	}
	// hand the result back through a fresh channel, as the frame loop sees it
	replay := make(chan ModelResult, 1)
	if g.PollModel(replay) {
		t.Fatalf("PollModel should not finish on an empty channel")
	}
	replay <- res
	if !g.PollModel(replay) {
		t.Fatalf("PollModel should consume a ready result")
	}
	g.Frame()
	if rec.Last.Model == nil || rec.Last.Model.Name != res.Spec.Name {
		t.Fatalf("model not attached: %+v", rec.Last.Model)
	}
}
