package system

import (
	"github.com/milk9111/doggo/ecs"
	"github.com/milk9111/doggo/ecs/component"
	"github.com/milk9111/doggo/input"
	"github.com/milk9111/doggo/logger"
)

// InputSystem drains the frame's input events into the player's InputState
// and PointerLook. It is the only writer of either component.
type InputSystem struct {
	queue *input.Queue
}

func NewInputSystem(queue *input.Queue) *InputSystem {
	return &InputSystem{queue: queue}
}

func (s *InputSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	events := s.queue.Drain()
	if len(events) == 0 {
		return
	}

	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	state, _ := ecs.Get(w, player, component.InputComponent.Kind())
	look, _ := ecs.Get(w, player, component.PointerLookComponent.Kind())

	for _, evt := range events {
		switch e := evt.(type) {
		case input.KeyEvent:
			state.SetDirection(e.Direction, e.Pressed)
		case input.PointerLockEvent:
			if look != nil {
				look.Locked = e.Locked
				logger.L().Debug("pointer lock changed", "locked", e.Locked)
			}
		case input.MouseDeltaEvent:
			look.OnMouseDelta(e.DX, e.DY)
		case input.ToggleCameraLockEvent:
			ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, cam *component.Camera) {
				cam.LockEnabled = !cam.LockEnabled
				logger.L().Debug("camera lock changed", "enabled", cam.LockEnabled)
			})
		}
	}
}
