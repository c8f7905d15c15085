package system

import (
	"github.com/milk9111/doggo/ecs"
	"github.com/milk9111/doggo/ecs/component"
)

// VisualSyncSystem places the player's model at its body position and turns
// it to face the look heading. Entities without a Transform (model not loaded
// yet) are skipped.
type VisualSyncSystem struct{}

func NewVisualSyncSystem() *VisualSyncSystem {
	return &VisualSyncSystem{}
}

func (s *VisualSyncSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w,
		component.PlayerComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, player *component.Player, bodyComp *component.PhysicsBody, t *component.Transform) {
			if bodyComp.Body == nil {
				return
			}
			t.Position = bodyComp.Body.Position()
			t.Position[1] -= player.VisualOffsetY

			if look, ok := ecs.Get(w, e, component.PointerLookComponent.Kind()); ok {
				t.Yaw = look.Facing
			}
		},
	)
}
