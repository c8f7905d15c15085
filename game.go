package main

import (
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/doggo/input"
	"github.com/milk9111/doggo/logger"
	"github.com/milk9111/doggo/loop"
	"github.com/milk9111/doggo/prefabs"
	"github.com/milk9111/doggo/render"
	"golang.design/x/clipboard"
)

type Game struct {
	loop     *loop.GameLoop
	renderer *render.Renderer
	source   *input.EbitenSource
	script   *input.ScriptSource
	ui       *ebitenui.UI

	configName string
	scriptName string
	watcher    *prefabs.Watcher
	models     <-chan loop.ModelResult

	clipboardOK bool
	debug       bool
	quit        bool
}

type GameOptions struct {
	ConfigName string
	ScriptName string
	Debug      bool
}

func NewGame(spec *prefabs.GameSpec, opts GameOptions) (*Game, error) {
	keys, err := input.ParseKeyMap(spec.Input)
	if err != nil {
		logger.L().Warn("bad key bindings, using defaults", "err", err)
		keys = input.DefaultKeyMap()
	}

	renderer := render.NewRenderer(spec, opts.Debug)
	gl, err := loop.New(spec, &input.Queue{}, renderer)
	if err != nil {
		return nil, err
	}

	g := &Game{
		loop:       gl,
		renderer:   renderer,
		source:     input.NewEbitenSource(keys),
		configName: opts.ConfigName,
		scriptName: opts.ScriptName,
		debug:      opts.Debug,
		models:     loop.LoadModelAsync(),
	}

	if opts.ScriptName != "" {
		src, err := prefabs.LoadScript(opts.ScriptName)
		if err != nil {
			return nil, err
		}
		script, err := input.NewScriptSource(opts.ScriptName, src)
		if err != nil {
			return nil, err
		}
		g.script = script
		logger.L().Info("autopilot script loaded", "script", opts.ScriptName)
	}

	if err := clipboard.Init(); err != nil {
		logger.L().Warn("clipboard unavailable", "err", err)
	} else {
		g.clipboardOK = true
	}

	dirs := []string{prefabs.Dir}
	if g.script != nil {
		dirs = append(dirs, prefabs.ScriptDir())
	}
	if w, err := prefabs.NewWatcher(dirs...); err != nil {
		// no prefabs directory next to the binary; embedded specs only
		logger.L().Debug("prefab hot reload disabled", "dir", prefabs.Dir, "err", err)
	} else {
		g.watcher = w
	}

	g.ui = NewPauseUI(g)
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	g.pollReload()
	if g.models != nil && g.loop.PollModel(g.models) {
		g.models = nil
	}

	q := g.loop.Queue()
	if g.script != nil {
		g.script.Poll(q)
	} else {
		g.source.Poll(q)
		if !g.source.Locked() {
			g.ui.Update()
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.copyPose()
	}

	g.loop.Frame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
	if g.script == nil && !g.source.Locked() {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return outsideWidth, outsideHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close stops background work.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

// pollReload applies any prefab edits seen since the last frame.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if ok {
				logger.L().Warn("prefab watcher error", "err", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	switch name {
	case filepath.Base(g.configName):
		spec, err := prefabs.LoadGameSpec(g.configName)
		if err != nil {
			logger.L().Error("failed to reload config", "file", name, "err", err)
			return
		}
		g.loop.ApplyTuning(spec)
		g.renderer.SetPost(spec.Render.Post)
		if keys, err := input.ParseKeyMap(spec.Input); err != nil {
			logger.L().Warn("bad key bindings, keeping previous", "err", err)
		} else {
			g.source.SetKeys(keys)
		}
		logger.Init(loggerConfig(spec, g.debug))
	case prefabs.PlayerSpecFile:
		g.models = loop.LoadModelAsync()
	case prefabs.ScriptFile(g.scriptName):
		if g.script == nil {
			return
		}
		src, err := prefabs.LoadScript(g.scriptName)
		if err != nil {
			logger.L().Error("failed to reload script", "file", name, "err", err)
			return
		}
		if err := g.script.Reload(src); err != nil {
			logger.L().Error("failed to reload script", "file", name, "err", err)
			return
		}
		logger.L().Info("autopilot script reloaded", "script", g.scriptName)
	default:
		logger.L().Debug("ignoring prefab change", "file", name)
	}
}

func (g *Game) copyPose() {
	pose := g.loop.Pose().String()
	if !g.clipboardOK {
		logger.L().Info("pose", "pose", pose)
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(pose))
	logger.L().Info("pose copied to clipboard")
}

func (g *Game) requestQuit() {
	g.quit = true
}
