package render

import (
	"embed"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/doggo/logger"
	"github.com/milk9111/doggo/prefabs"
)

//go:embed shaders/*.kage
var shaderFS embed.FS

type pass struct {
	name    string
	shader  *ebiten.Shader
	enabled bool
}

// Composer renders the scene offscreen and runs it through the enabled
// post-processing passes on the way to the screen.
type Composer struct {
	chroma pass
	grain  pass
	post   prefabs.PostSpec

	scene *ebiten.Image
	swap  *ebiten.Image
}

func NewComposer(post prefabs.PostSpec) *Composer {
	c := &Composer{
		chroma: loadPass("chroma"),
		grain:  loadPass("grain"),
	}
	c.SetPost(post)
	return c
}

// loadPass compiles a shader. A pass that fails to compile is logged and
// left disabled for the rest of the session.
func loadPass(name string) pass {
	src, err := shaderFS.ReadFile("shaders/" + name + ".kage")
	if err != nil {
		logger.L().Error("failed to read shader", "shader", name, "err", err)
		return pass{name: name}
	}
	shader, err := ebiten.NewShader(src)
	if err != nil {
		logger.L().Error("failed to compile shader", "shader", name, "err", err)
		return pass{name: name}
	}
	return pass{name: name, shader: shader}
}

// SetPost applies pass toggles and strengths.
func (c *Composer) SetPost(post prefabs.PostSpec) {
	c.post = post
	c.chroma.enabled = c.chroma.shader != nil && (post.Chroma == nil || *post.Chroma)
	c.grain.enabled = c.grain.shader != nil && (post.Grain == nil || *post.Grain)
}

// Begin returns the offscreen target for a w x h frame, cleared.
func (c *Composer) Begin(w, h int) *ebiten.Image {
	c.scene = ensureImage(c.scene, w, h)
	c.swap = ensureImage(c.swap, w, h)
	c.scene.Clear()
	return c.scene
}

// Finish runs the passes and draws the result onto screen.
func (c *Composer) Finish(screen *ebiten.Image, frame int64) {
	if c.scene == nil {
		return
	}
	b := c.scene.Bounds()
	w, h := b.Dx(), b.Dy()
	src, dst := c.scene, c.swap

	if c.chroma.enabled {
		dst.Clear()
		op := &ebiten.DrawRectShaderOptions{}
		op.Images[0] = src
		op.Uniforms = map[string]any{
			"Resolution": []float32{float32(w), float32(h)},
			"Spread":     float32(c.post.ChromaSpread),
			"Intensity":  float32(c.post.ChromaIntensity),
		}
		dst.DrawRectShader(w, h, c.chroma.shader, op)
		src, dst = dst, src
	}
	if c.grain.enabled {
		dst.Clear()
		op := &ebiten.DrawRectShaderOptions{}
		op.Images[0] = src
		op.Uniforms = map[string]any{
			"Frame":  float32(frame % 4096),
			"Amount": float32(c.post.GrainAmount),
		}
		dst.DrawRectShader(w, h, c.grain.shader, op)
		src = dst
	}

	screen.DrawImage(src, nil)
}

func ensureImage(img *ebiten.Image, w, h int) *ebiten.Image {
	if img != nil {
		b := img.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return img
		}
		img.Deallocate()
	}
	return ebiten.NewImage(w, h)
}
