package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is the render-side placement of a visual model.
type Transform struct {
	Position mgl64.Vec3
	// Yaw is the heading around +Y in radians.
	Yaw float64
}

var TransformComponent = NewComponent[Transform]()
