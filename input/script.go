package input

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/doggo/ecs/component"
	"github.com/milk9111/doggo/logger"
)

// scriptDispatch calls the script's tick function with the frame number and
// leaves the returned map in __out.
const scriptDispatch = `
__out := tick(__frame)
`

// ScriptSource replays input from a tengo script. The script defines
//
//	tick := func(frame) { return {forward: true, dx: 2.5, lock: true} }
//
// Recognised keys: forward, left, back, right, lock (bools, held state),
// dx, dy (numbers, relative motion this frame) and toggle_camera (bool, edge).
type ScriptSource struct {
	name     string
	compiled *tengo.Compiled
	frame    int64
	held     component.InputState
	locked   bool
	failed   bool
}

// NewScriptSource compiles src. The name is used in log lines only.
func NewScriptSource(name string, src []byte) (*ScriptSource, error) {
	compiled, err := compileScript(name, src)
	if err != nil {
		return nil, err
	}
	return &ScriptSource{name: name, compiled: compiled}, nil
}

// Reload swaps in a new version of the script. The frame counter and the
// held keys carry over, so the next poll only reports what changed. On a
// compile error the running script is kept.
func (s *ScriptSource) Reload(src []byte) error {
	compiled, err := compileScript(s.name, src)
	if err != nil {
		return err
	}
	s.compiled = compiled
	s.failed = false
	return nil
}

func compileScript(name string, src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), []byte(scriptDispatch)...))
	if err := script.Add("__frame", 0); err != nil {
		return nil, fmt.Errorf("input: script %s: %w", name, err)
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("input: compile script %s: %w", name, err)
	}
	return compiled, nil
}

// Frame returns the number of frames polled so far.
func (s *ScriptSource) Frame() int64 {
	return s.frame
}

func (s *ScriptSource) Poll(q *Queue) {
	if s == nil || q == nil || s.failed {
		return
	}
	frame := s.frame
	s.frame++

	out, err := s.run(frame)
	if err != nil {
		// one bad frame would repeat every frame after it
		s.failed = true
		logger.L().Error("input script stopped", "script", s.name, "frame", frame, "err", err)
		return
	}

	want := component.InputState{
		Forward: boolField(out, "forward"),
		Left:    boolField(out, "left"),
		Back:    boolField(out, "back"),
		Right:   boolField(out, "right"),
	}
	for _, d := range [...]struct {
		dir      component.Direction
		was, now bool
	}{
		{component.DirectionForward, s.held.Forward, want.Forward},
		{component.DirectionLeft, s.held.Left, want.Left},
		{component.DirectionBack, s.held.Back, want.Back},
		{component.DirectionRight, s.held.Right, want.Right},
	} {
		if d.was != d.now {
			q.Push(KeyEvent{Direction: d.dir, Pressed: d.now})
		}
	}
	s.held = want

	if locked := boolField(out, "lock"); locked != s.locked {
		s.locked = locked
		q.Push(PointerLockEvent{Locked: locked})
	}
	if boolField(out, "toggle_camera") {
		q.Push(ToggleCameraLockEvent{})
	}

	dx, dy := numberField(out, "dx"), numberField(out, "dy")
	if dx != 0 || dy != 0 {
		q.Push(MouseDeltaEvent{DX: dx, DY: dy})
	}
}

func (s *ScriptSource) run(frame int64) (map[string]any, error) {
	if err := s.compiled.Set("__frame", frame); err != nil {
		return nil, err
	}
	if err := s.compiled.Run(); err != nil {
		return nil, err
	}
	v := s.compiled.Get("__out")
	if v == nil || v.IsUndefined() {
		return nil, nil
	}
	out := v.Map()
	if out == nil {
		return nil, fmt.Errorf("tick returned %s, want map", v.ValueType())
	}
	return out, nil
}

func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func numberField(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}
