package common

import "github.com/go-gl/mathgl/mgl64"

var worldUp = mgl64.Vec3{0, 1, 0}

// ViewMatrix looks from eye toward lookAt, then tilts by pitch about the
// camera's own X axis. Positive pitch looks up.
func ViewMatrix(eye, lookAt mgl64.Vec3, pitch float64) mgl64.Mat4 {
	view := mgl64.LookAtV(eye, lookAt, worldUp)
	if pitch == 0 {
		return view
	}
	return mgl64.HomogRotate3DX(-pitch).Mul4(view)
}

// ViewProjection combines a perspective projection (fov in degrees) with
// ViewMatrix.
func ViewProjection(eye, lookAt mgl64.Vec3, pitch, fovDeg, aspect, near, far float64) mgl64.Mat4 {
	proj := mgl64.Perspective(mgl64.DegToRad(fovDeg), aspect, near, far)
	return proj.Mul4(ViewMatrix(eye, lookAt, pitch))
}

// ProjectSegment maps a world-space segment to screen pixels, clipping it
// against the near plane. ok is false when the whole segment is behind the
// camera.
func ProjectSegment(vp mgl64.Mat4, a, b mgl64.Vec3, width, height float64) (x0, y0, x1, y1 float64, ok bool) {
	ca := vp.Mul4x1(a.Vec4(1))
	cb := vp.Mul4x1(b.Vec4(1))

	// inside the near plane when z + w >= 0
	da := ca.Z() + ca.W()
	db := cb.Z() + cb.W()
	if da < 0 && db < 0 {
		return 0, 0, 0, 0, false
	}
	if da < 0 {
		ca = clipLerp(ca, cb, da/(da-db))
	} else if db < 0 {
		cb = clipLerp(cb, ca, db/(db-da))
	}
	if ca.W() <= 0 || cb.W() <= 0 {
		return 0, 0, 0, 0, false
	}

	x0, y0 = toScreen(ca, width, height)
	x1, y1 = toScreen(cb, width, height)
	return x0, y0, x1, y1, true
}

// ProjectPoint maps a world-space point to screen pixels.
func ProjectPoint(vp mgl64.Mat4, p mgl64.Vec3, width, height float64) (x, y float64, ok bool) {
	c := vp.Mul4x1(p.Vec4(1))
	if c.Z()+c.W() < 0 || c.W() <= 0 {
		return 0, 0, false
	}
	x, y = toScreen(c, width, height)
	return x, y, true
}

func clipLerp(a, b mgl64.Vec4, t float64) mgl64.Vec4 {
	return a.Add(b.Sub(a).Mul(t))
}

func toScreen(c mgl64.Vec4, width, height float64) (float64, float64) {
	nx := c.X() / c.W()
	ny := c.Y() / c.W()
	return (nx + 1) / 2 * width, (1 - ny) / 2 * height
}
