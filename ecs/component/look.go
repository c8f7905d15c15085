package component

import "math"

// TurnThreshold is one full turn around the vertical axis.
const TurnThreshold = 2 * math.Pi

// PointerLook accumulates mouse look while pointer lock is engaged.
//
// Facing is the unbounded yaw accumulator and drives the visual model's
// heading. Yaw is Facing folded into (-2π, 2π) and is what movement and the
// camera consume. Spins counts the full turns folded away, signed.
type PointerLook struct {
	Sensitivity float64
	// MaxPitch clamps Pitch to [-MaxPitch, MaxPitch]. Zero leaves it unclamped.
	MaxPitch float64

	Locked bool
	Facing float64
	Yaw    float64
	Pitch  float64
	Spins  int
}

// OnMouseDelta applies one relative motion event. It returns false when the
// event was ignored because lock is released or the delta is not finite.
func (l *PointerLook) OnMouseDelta(dx, dy float64) bool {
	if l == nil || !l.Locked {
		return false
	}
	if !isFinite(dx) || !isFinite(dy) {
		return false
	}

	l.Pitch -= dy * l.Sensitivity
	l.ClampPitch()

	l.Facing -= dx * l.Sensitivity
	l.normalize()
	return true
}

// SetFacing replaces the accumulator, e.g. when restoring a spawn heading.
func (l *PointerLook) SetFacing(facing float64) {
	if l == nil || !isFinite(facing) {
		return
	}
	l.Facing = facing
	l.normalize()
}

// ClampPitch pulls Pitch back inside [-MaxPitch, MaxPitch], e.g. after
// MaxPitch was lowered.
func (l *PointerLook) ClampPitch() {
	if l == nil || l.MaxPitch <= 0 {
		return
	}
	l.Pitch = math.Max(-l.MaxPitch, math.Min(l.MaxPitch, l.Pitch))
}

func (l *PointerLook) normalize() {
	if !isFinite(l.Facing) {
		// overflowed accumulator: restart from the last good heading
		l.Facing = l.Yaw
		l.Spins = 0
		return
	}
	l.Yaw = math.Mod(l.Facing, TurnThreshold)
	turns := math.Trunc(l.Facing / TurnThreshold)
	if math.Abs(turns) > math.MaxInt32 {
		// too many turns to count: keep the heading, drop the history
		l.Facing = l.Yaw
		l.Spins = 0
		return
	}
	l.Spins = int(turns)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

var PointerLookComponent = NewComponent[PointerLook]()
