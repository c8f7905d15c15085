package common

import "github.com/go-gl/mathgl/mgl64"

func Lerp(a, b, t float64) float64 {
	if t >= 1 {
		return b
	}
	if t <= 0 {
		return a
	}
	return a + t*(b-a)
}

// LerpVec3 interpolates componentwise. t >= 1 returns b exactly.
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return mgl64.Vec3{Lerp(a.X(), b.X(), t), Lerp(a.Y(), b.Y(), t), Lerp(a.Z(), b.Z(), t)}
}
