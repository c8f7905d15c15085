package component

type Player struct {
	MoveSpeed          float64
	DiagonalMultiplier float64
	// VisualOffsetY is subtracted from the body position when placing the
	// model, since the collision box origin sits above the model's feet.
	VisualOffsetY float64
}

var PlayerComponent = NewComponent[Player]()
