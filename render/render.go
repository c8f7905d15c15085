// Package render draws frames produced by the game loop with ebiten.
package render

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/doggo/common"
	"github.com/milk9111/doggo/loop"
	"github.com/milk9111/doggo/prefabs"
	"github.com/milk9111/doggo/render/scene"
	"golang.org/x/image/colornames"
)

const lineWidth = 1

// Renderer keeps the latest frame from the loop and draws it on demand.
type Renderer struct {
	background color.Color
	static     []scene.Segment
	composer   *Composer

	frame    loop.Frame
	hasFrame bool
	debug    bool
}

func NewRenderer(spec *prefabs.GameSpec, debug bool) *Renderer {
	return &Renderer{
		background: spec.Render.Background.Color,
		static:     scene.Static(spec.Level),
		composer:   NewComposer(spec.Render.Post),
		debug:      debug,
	}
}

// Render records f for the next Draw.
func (r *Renderer) Render(f loop.Frame) {
	r.frame = f
	r.hasFrame = true
}

// SetPost swaps post-processing settings, e.g. after a config reload.
func (r *Renderer) SetPost(post prefabs.PostSpec) {
	r.composer.SetPost(post)
}

func (r *Renderer) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	w, h := b.Dx(), b.Dy()
	target := r.composer.Begin(w, h)
	target.Fill(r.background)

	if r.hasFrame {
		f := r.frame
		vp := common.ViewProjection(
			f.Rig.Eye, f.Rig.LookAt, f.Rig.Pitch,
			f.Camera.FOV, float64(w)/float64(h), f.Camera.Near, f.Camera.Far,
		)
		drawSegments(target, r.static, vp, float64(w), float64(h))
		if f.Model != nil && f.ModelTransform != nil {
			drawSegments(target, scene.Model(*f.Model, *f.ModelTransform), vp, float64(w), float64(h))
		}
		if r.debug && f.Physics != nil {
			drawSegments(target, scene.FromPhysics(f.Physics.DebugDraw()), vp, float64(w), float64(h))
		}
	}

	r.composer.Finish(screen, r.frame.Number)

	if r.debug {
		r.drawHUD(screen)
	}
}

func drawSegments(dst *ebiten.Image, segs []scene.Segment, vp mgl64.Mat4, w, h float64) {
	for _, s := range segs {
		x0, y0, x1, y1, ok := common.ProjectSegment(vp, s.A, s.B, w, h)
		if !ok {
			continue
		}
		vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), lineWidth, s.Color, true)
	}
}

func (r *Renderer) drawHUD(screen *ebiten.Image) {
	p := r.frame.Pose
	msg := fmt.Sprintf(
		"Frames: %d    FPS: %.2f\npos: %.1f %.1f %.1f\nyaw: %.3f  pitch: %.3f  spins: %d\npointer lock: %t  camera lock: %t",
		r.frame.Number, ebiten.ActualFPS(),
		p.Position.X(), p.Position.Y(), p.Position.Z(),
		p.Yaw, p.Pitch, p.Spins,
		p.Locked, p.CameraLocked,
	)
	if r.frame.Model == nil {
		msg += "\nloading model..."
	}
	ebitenutil.DebugPrint(screen, msg)

	// crosshair
	cx, cy := float32(screen.Bounds().Dx())/2, float32(screen.Bounds().Dy())/2
	vector.StrokeLine(screen, cx-4, cy, cx+4, cy, 1, colornames.Lightgrey, false)
	vector.StrokeLine(screen, cx, cy-4, cx, cy+4, 1, colornames.Lightgrey, false)
}

var _ loop.Renderer = (*Renderer)(nil)
