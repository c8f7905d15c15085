package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Model is the loaded visual for an entity. Until it is attached the entity
// has no Transform and is neither synced nor followed.
type Model struct {
	Name        string
	HalfExtents mgl64.Vec3
	NoseLength  float64
	Color       color.RGBA
}

var ModelComponent = NewComponent[Model]()
