package physics

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// DebugSegment is one edge of a collision outline in world space.
type DebugSegment struct {
	A, B  mgl64.Vec3
	Color color.RGBA
}

// DebugDraw returns the outlines of every collision shape, lifted from the
// horizontal space into 3D boxes using each shape's vertical extent.
func (w *World) DebugDraw() []DebugSegment {
	if w == nil || w.space == nil {
		return nil
	}
	d := &debugDrawer{}
	cp.DrawSpace(w.space, d)
	return d.out
}

type debugDrawer struct {
	out []DebugSegment
	// cp asks for the shape colour right before drawing it
	bottom, top float64
}

func (d *debugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	const steps = 20
	prev := cp.Vector{X: pos.X + radius, Y: pos.Y}
	for i := 1; i <= steps; i++ {
		th := float64(i) * (2 * math.Pi / steps)
		cur := cp.Vector{X: pos.X + math.Cos(th)*radius, Y: pos.Y + math.Sin(th)*radius}
		d.flat(prev, cur, c)
		prev = cur
	}
}

func (d *debugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.flat(a, b, fcolorToRGBA(fill))
}

func (d *debugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.flat(a, b, fcolorToRGBA(outline))
}

func (d *debugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	for i := 0; i < count; i++ {
		a, b := verts[i], verts[(i+1)%count]
		d.flat(a, b, c)
		d.out = append(d.out, DebugSegment{
			A:     mgl64.Vec3{a.X, d.bottom, a.Y},
			B:     mgl64.Vec3{a.X, d.top, a.Y},
			Color: c,
		})
	}
}

func (d *debugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	l := size / 2
	c := fcolorToRGBA(fill)
	d.flat(cp.Vector{X: pos.X - l, Y: pos.Y}, cp.Vector{X: pos.X + l, Y: pos.Y}, c)
	d.flat(cp.Vector{X: pos.X, Y: pos.Y - l}, cp.Vector{X: pos.X, Y: pos.Y + l}, c)
}

// flat adds the edge a-b at the bottom and top of the current shape.
func (d *debugDrawer) flat(a, b cp.Vector, c color.RGBA) {
	d.out = append(d.out,
		DebugSegment{A: mgl64.Vec3{a.X, d.bottom, a.Y}, B: mgl64.Vec3{b.X, d.bottom, b.Y}, Color: c},
		DebugSegment{A: mgl64.Vec3{a.X, d.top, a.Y}, B: mgl64.Vec3{b.X, d.top, b.Y}, Color: c},
	)
}

func (d *debugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *debugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1.0, B: 0.2, A: 1.0}
}

func (d *debugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	d.bottom, d.top = 0, 0
	if shape == nil {
		return cp.FColor{R: 1, G: 1, B: 1, A: 1}
	}
	if o, ok := shape.UserData.(*Obstacle); ok {
		d.bottom = o.Center.Y() - o.Size.Y()/2
		d.top = o.Top()
	}
	body := shape.Body()
	if body == nil {
		return cp.FColor{R: 1, G: 1, B: 1, A: 1}
	}
	if b, ok := body.UserData.(*Body); ok {
		d.bottom = b.Bottom()
		d.top = b.y + b.halfHeight
	}
	if body.GetType() == cp.BODY_STATIC {
		return cp.FColor{R: 0.4, G: 0.7, B: 1.0, A: 1.0}
	}
	return cp.FColor{R: 0.9, G: 0.4, B: 0.9, A: 1.0}
}

func (d *debugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *debugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *debugDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		return uint8(math.Round(float64(max(0, min(1, v))) * 255))
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
