package scene

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/doggo/ecs/component"
	"github.com/milk9111/doggo/prefabs"
)

var white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func TestGrid(t *testing.T) {
	segs := Grid(2000, 50, white)
	if len(segs) != 102 {
		t.Fatalf("got %d segments, want 102", len(segs))
	}
	for _, s := range segs {
		if s.A.Y() != 0 || s.B.Y() != 0 {
			t.Fatalf("grid line off the ground: %v", s)
		}
		if math.Abs(s.A.X()) > 1000 || math.Abs(s.A.Z()) > 1000 {
			t.Fatalf("grid line outside bounds: %v", s)
		}
	}
	if Grid(0, 10, white) != nil || Grid(10, 0, white) != nil {
		t.Fatalf("degenerate grid should be empty")
	}
}

func TestBoxEdges(t *testing.T) {
	segs := Box(mgl64.Vec3{200, 50, 100}, mgl64.Vec3{50, 50, 50}, 0, white)
	if len(segs) != 12 {
		t.Fatalf("got %d edges, want 12", len(segs))
	}
	for _, s := range segs {
		if l := s.B.Sub(s.A).Len(); !mgl64.FloatEqualThreshold(l, 100, 1e-9) {
			t.Fatalf("edge length %v, want 100", l)
		}
		if s.A.Y() < 0 || s.B.Y() > 100 {
			t.Fatalf("edge outside cube: %v", s)
		}
	}
}

func TestTorusRadius(t *testing.T) {
	segs := Torus(mgl64.Vec3{}, 10, 2, 0, 20, white)
	if len(segs) != 2*20*8 {
		t.Fatalf("got %d segments", len(segs))
	}
	for _, s := range segs {
		d := math.Hypot(s.A.X(), s.A.Z())
		if d < 8-1e-9 || d > 12+1e-9 {
			t.Fatalf("vertex at distance %v outside the tube", d)
		}
	}
}

func TestModelNoseFollowsYaw(t *testing.T) {
	m := component.Model{HalfExtents: mgl64.Vec3{1, 1, 1}, NoseLength: 3, Color: white}
	segs := Model(m, component.Transform{Yaw: math.Pi / 2})
	if len(segs) != 13 {
		t.Fatalf("got %d segments, want 13", len(segs))
	}
	nose := segs[12]
	dir := nose.B.Sub(nose.A).Normalize()
	if !dir.ApproxEqualThreshold(mgl64.Vec3{1, 0, 0}, 1e-9) {
		t.Fatalf("nose points %v, want +X", dir)
	}
}

func TestStaticLevel(t *testing.T) {
	spec, err := prefabs.LoadGameSpec("")
	if err != nil {
		t.Fatalf("LoadGameSpec: %v", err)
	}
	segs := Static(spec.Level)
	want := 2*(spec.Level.Grid.Divisions+1) + 12*len(spec.Level.Obstacles)
	for _, p := range spec.Level.Props {
		want += 2 * p.Segments * 8
	}
	if len(segs) != want {
		t.Fatalf("got %d segments, want %d", len(segs), want)
	}
}
