// Package scene builds the wireframe line segments the renderer projects.
package scene

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/doggo/ecs/component"
	"github.com/milk9111/doggo/physics"
	"github.com/milk9111/doggo/prefabs"
)

// Segment is a coloured world-space line.
type Segment struct {
	A, B  mgl64.Vec3
	Color color.RGBA
}

// Static builds the segments for everything in the level that never moves.
func Static(level prefabs.LevelSpec) []Segment {
	var out []Segment
	out = append(out, Grid(level.Grid.Size, level.Grid.Divisions, level.Grid.Color.RGBA8())...)
	for _, o := range level.Obstacles {
		out = append(out, Box(o.Center.Vec3(), o.Size.Vec3().Mul(0.5), 0, o.Color.RGBA8())...)
	}
	for _, p := range level.Props {
		switch p.Kind {
		case "torus":
			out = append(out, Torus(p.Center.Vec3(), p.Radius, p.Tube, p.TiltX, p.Segments, p.Color.RGBA8())...)
		case "box":
			half := mgl64.Vec3{p.Radius, p.Radius, p.Radius}
			out = append(out, Box(p.Center.Vec3(), half, p.TiltX, p.Color.RGBA8())...)
		}
	}
	return out
}

// Grid is a size x size square on y = 0 split into divisions cells per side.
func Grid(size float64, divisions int, c color.RGBA) []Segment {
	if size <= 0 || divisions <= 0 {
		return nil
	}
	half := size / 2
	step := size / float64(divisions)
	out := make([]Segment, 0, 2*(divisions+1))
	for i := 0; i <= divisions; i++ {
		v := -half + float64(i)*step
		out = append(out,
			Segment{A: mgl64.Vec3{v, 0, -half}, B: mgl64.Vec3{v, 0, half}, Color: c},
			Segment{A: mgl64.Vec3{-half, 0, v}, B: mgl64.Vec3{half, 0, v}, Color: c},
		)
	}
	return out
}

// Box returns the 12 edges of a box centred at center, turned by yaw about +Y.
func Box(center, half mgl64.Vec3, yaw float64, c color.RGBA) []Segment {
	rot := mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0})
	var corners [8]mgl64.Vec3
	for i := range corners {
		local := mgl64.Vec3{half.X(), half.Y(), half.Z()}
		if i&1 != 0 {
			local[0] = -local[0]
		}
		if i&2 != 0 {
			local[1] = -local[1]
		}
		if i&4 != 0 {
			local[2] = -local[2]
		}
		corners[i] = center.Add(rot.Rotate(local))
	}

	out := make([]Segment, 0, 12)
	for i := 0; i < 8; i++ {
		for _, bit := range [...]int{1, 2, 4} {
			if i&bit == 0 {
				out = append(out, Segment{A: corners[i], B: corners[i|bit], Color: c})
			}
		}
	}
	return out
}

// Torus is a wire torus around +Y, tilted by tilt radians about +X.
func Torus(center mgl64.Vec3, radius, tube, tilt float64, segments int, c color.RGBA) []Segment {
	if segments < 3 {
		segments = 3
	}
	const sides = 8
	rot := mgl64.QuatRotate(tilt, mgl64.Vec3{1, 0, 0})
	point := func(i, j int) mgl64.Vec3 {
		u := 2 * math.Pi * float64(i%segments) / float64(segments)
		v := 2 * math.Pi * float64(j%sides) / sides
		r := radius + tube*math.Cos(v)
		local := mgl64.Vec3{r * math.Cos(u), tube * math.Sin(v), r * math.Sin(u)}
		return center.Add(rot.Rotate(local))
	}

	out := make([]Segment, 0, 2*segments*sides)
	for i := 0; i < segments; i++ {
		for j := 0; j < sides; j++ {
			p := point(i, j)
			out = append(out,
				Segment{A: p, B: point(i+1, j), Color: c},
				Segment{A: p, B: point(i, j+1), Color: c},
			)
		}
	}
	return out
}

// Model draws the player's box resting on its transform, with a nose line
// showing the facing direction.
func Model(m component.Model, t component.Transform) []Segment {
	center := t.Position.Add(mgl64.Vec3{0, m.HalfExtents.Y(), 0})
	out := Box(center, m.HalfExtents, t.Yaw, m.Color)
	if m.NoseLength > 0 {
		sin, cos := math.Sincos(t.Yaw)
		forward := mgl64.Vec3{sin, 0, cos}
		front := center.Add(forward.Mul(m.HalfExtents.Z()))
		out = append(out, Segment{A: front, B: front.Add(forward.Mul(m.NoseLength)), Color: m.Color})
	}
	return out
}

// FromPhysics converts collision outlines for drawing.
func FromPhysics(debug []physics.DebugSegment) []Segment {
	out := make([]Segment, len(debug))
	for i, d := range debug {
		out[i] = Segment{A: d.A, B: d.B, Color: d.Color}
	}
	return out
}
