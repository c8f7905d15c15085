package loop

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/doggo/ecs"
	"github.com/milk9111/doggo/ecs/component"
	"github.com/milk9111/doggo/ecs/system"
	"github.com/milk9111/doggo/input"
	"github.com/milk9111/doggo/logger"
	"github.com/milk9111/doggo/physics"
	"github.com/milk9111/doggo/prefabs"
)

// GameLoop runs one physics stage and one render stage per frame.
//
// The physics stage drains input, writes the player's velocity and advances
// the physics world one fixed step. The render stage syncs the model to the
// body, moves the camera and hands the frame to the renderer.
type GameLoop struct {
	world   *ecs.World
	physics *physics.World
	queue   *input.Queue

	physicsStage *ecs.Scheduler
	renderStage  *ecs.Scheduler
	renderer     Renderer

	player ecs.Entity
	camera ecs.Entity
	body   *physics.Body

	frame int64
}

// New builds the world described by spec. Input sources push into queue.
func New(spec *prefabs.GameSpec, queue *input.Queue, renderer Renderer) (*GameLoop, error) {
	if spec == nil {
		spec = prefabs.DefaultGameSpec()
	} else {
		s := *spec
		s.ApplyDefaults()
		spec = &s
	}
	if queue == nil {
		queue = &input.Queue{}
	}
	if renderer == nil {
		renderer = NopRenderer{}
	}

	g := &GameLoop{
		world:    ecs.NewWorld(),
		queue:    queue,
		renderer: renderer,
	}
	g.physics = physics.NewWorld(physics.Config{
		TickRate: spec.Physics.TickRate,
		Gravity:  spec.Physics.Gravity.Vec3(),
		GroundY:  spec.Physics.GroundY,
	})

	for _, o := range spec.Level.Obstacles {
		g.physics.AddObstacle(o.Name, o.Center.Vec3(), o.Size.Vec3())
	}

	if err := g.buildPlayer(spec); err != nil {
		return nil, err
	}
	if err := g.buildCamera(spec); err != nil {
		return nil, err
	}

	g.physicsStage = ecs.NewScheduler(
		system.NewInputSystem(queue),
		system.NewMovementSystem(),
		system.NewPhysicsSystem(g.physics),
	)
	g.renderStage = ecs.NewScheduler(
		system.NewVisualSyncSystem(),
		system.NewCameraSystem(),
	)
	return g, nil
}

func (g *GameLoop) buildPlayer(spec *prefabs.GameSpec) error {
	ps := spec.Player
	half := mgl64.Vec3{ps.HalfExtent, ps.HalfExtent, ps.HalfExtent}
	g.body = g.physics.AddBox(ps.Spawn.Vec3(), half, ps.Mass)

	look := &component.PointerLook{
		Sensitivity: spec.Look.Sensitivity,
		MaxPitch:    *spec.Look.MaxPitch,
	}
	look.SetFacing(ps.Facing)

	e := g.world.CreateEntity()
	g.player = e
	if err := ecs.Add(g.world, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return fmt.Errorf("loop: add player tag: %w", err)
	}
	if err := ecs.Add(g.world, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:          *ps.MoveSpeed,
		DiagonalMultiplier: *ps.DiagonalMultiplier,
		VisualOffsetY:      *ps.VisualOffsetY,
	}); err != nil {
		return fmt.Errorf("loop: add player: %w", err)
	}
	if err := ecs.Add(g.world, e, component.InputComponent.Kind(), &component.InputState{}); err != nil {
		return fmt.Errorf("loop: add input state: %w", err)
	}
	if err := ecs.Add(g.world, e, component.PointerLookComponent.Kind(), look); err != nil {
		return fmt.Errorf("loop: add pointer look: %w", err)
	}
	if err := ecs.Add(g.world, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: g.body}); err != nil {
		return fmt.Errorf("loop: add physics body: %w", err)
	}
	return nil
}

func (g *GameLoop) buildCamera(spec *prefabs.GameSpec) error {
	cs := spec.Camera
	e := g.world.CreateEntity()
	g.camera = e
	if err := ecs.Add(g.world, e, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return fmt.Errorf("loop: add camera tag: %w", err)
	}
	if err := ecs.Add(g.world, e, component.CameraComponent.Kind(), &component.Camera{
		BackDistance: cs.BackDistance,
		Height:       cs.Height,
		LookDistance: cs.LookDistance,
		Follow:       cs.Follow,
		LockEnabled:  *cs.Lock,
		FOV:          cs.FOV,
		Near:         cs.Near,
		Far:          cs.Far,
	}); err != nil {
		return fmt.Errorf("loop: add camera: %w", err)
	}
	if err := ecs.Add(g.world, e, component.CameraRigComponent.Kind(), &component.CameraRig{
		Eye: cs.Start.Vec3(),
	}); err != nil {
		return fmt.Errorf("loop: add camera rig: %w", err)
	}
	return nil
}

// AttachModel gives the player its visual model. Until it is called the
// model is treated as still loading: nothing is synced or followed.
func (g *GameLoop) AttachModel(spec *prefabs.PlayerModelSpec) error {
	if spec == nil {
		return component.ErrNilComponent
	}
	model := &component.Model{
		Name:        spec.Name,
		HalfExtents: spec.HalfExtents.Vec3(),
		NoseLength:  spec.NoseLength,
		Color:       spec.Color.RGBA8(),
	}
	if err := ecs.Add(g.world, g.player, component.ModelComponent.Kind(), model); err != nil {
		return fmt.Errorf("loop: attach model: %w", err)
	}
	if err := ecs.Add(g.world, g.player, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
		return fmt.Errorf("loop: attach model transform: %w", err)
	}
	logger.L().Info("player model attached", "model", spec.Name)
	return nil
}

// ApplyTuning re-applies tunable values from a reloaded spec. World layout
// and runtime toggles such as camera lock are left alone.
func (g *GameLoop) ApplyTuning(spec *prefabs.GameSpec) {
	if spec == nil {
		return
	}
	s := *spec
	s.ApplyDefaults()
	spec = &s
	if p, ok := ecs.Get(g.world, g.player, component.PlayerComponent.Kind()); ok {
		p.MoveSpeed = *spec.Player.MoveSpeed
		p.DiagonalMultiplier = *spec.Player.DiagonalMultiplier
		p.VisualOffsetY = *spec.Player.VisualOffsetY
	}
	if look, ok := ecs.Get(g.world, g.player, component.PointerLookComponent.Kind()); ok {
		look.Sensitivity = spec.Look.Sensitivity
		look.MaxPitch = *spec.Look.MaxPitch
		look.ClampPitch()
	}
	if cam, ok := ecs.Get(g.world, g.camera, component.CameraComponent.Kind()); ok {
		cam.BackDistance = spec.Camera.BackDistance
		cam.Height = spec.Camera.Height
		cam.LookDistance = spec.Camera.LookDistance
		cam.Follow = spec.Camera.Follow
		cam.FOV = spec.Camera.FOV
		cam.Near = spec.Camera.Near
		cam.Far = spec.Camera.Far
	}
	logger.L().Info("tuning reloaded",
		"move_speed", *spec.Player.MoveSpeed,
		"sensitivity", spec.Look.Sensitivity,
		"back_distance", spec.Camera.BackDistance,
	)
}

// Frame runs one iteration: the physics stage, then the render stage.
func (g *GameLoop) Frame() {
	g.frame++
	g.physicsStage.Update(g.world)
	g.renderStage.Update(g.world)
	g.renderer.Render(g.snapshot())
}

// FrameCount returns the number of frames run.
func (g *GameLoop) FrameCount() int64 {
	return g.frame
}

// TimeStep returns the fixed physics step in seconds.
func (g *GameLoop) TimeStep() float64 {
	return g.physics.TimeStep()
}

func (g *GameLoop) Queue() *input.Queue {
	return g.queue
}

func (g *GameLoop) World() *ecs.World {
	return g.world
}

func (g *GameLoop) Physics() *physics.World {
	return g.physics
}

// Pose reports the current player and camera state.
func (g *GameLoop) Pose() Pose {
	p := Pose{
		Position: g.body.Position(),
		Velocity: g.body.Velocity(),
		Grounded: g.body.Grounded(),
	}
	if look, ok := ecs.Get(g.world, g.player, component.PointerLookComponent.Kind()); ok {
		p.Facing = look.Facing
		p.Yaw = look.Yaw
		p.Pitch = look.Pitch
		p.Spins = look.Spins
		p.Locked = look.Locked
	}
	if rig, ok := ecs.Get(g.world, g.camera, component.CameraRigComponent.Kind()); ok {
		p.CameraEye = rig.Eye
		p.CameraLookAt = rig.LookAt
	}
	if cam, ok := ecs.Get(g.world, g.camera, component.CameraComponent.Kind()); ok {
		p.CameraLocked = cam.LockEnabled
	}
	return p
}

func (g *GameLoop) snapshot() Frame {
	f := Frame{Number: g.frame, Pose: g.Pose(), Physics: g.physics}
	if cam, ok := ecs.Get(g.world, g.camera, component.CameraComponent.Kind()); ok {
		f.Camera = *cam
	}
	if rig, ok := ecs.Get(g.world, g.camera, component.CameraRigComponent.Kind()); ok {
		f.Rig = *rig
	}
	if m, ok := ecs.Get(g.world, g.player, component.ModelComponent.Kind()); ok {
		f.Model = m
	}
	if t, ok := ecs.Get(g.world, g.player, component.TransformComponent.Kind()); ok {
		f.ModelTransform = t
	}
	return f
}
