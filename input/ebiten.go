package input

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	cameraLockKey = ebiten.KeyC
	releaseKey    = ebiten.KeyEscape
)

// EbitenSource reads the keyboard and, while the cursor is captured, relative
// mouse motion.
type EbitenSource struct {
	keys  KeyMap
	order []ebiten.Key

	lockRequested bool
	locked        bool
	haveCursor    bool
	lastX         int
	lastY         int
}

func NewEbitenSource(keys KeyMap) *EbitenSource {
	s := &EbitenSource{}
	s.SetKeys(keys)
	return s
}

// SetKeys replaces the key bindings. A nil map restores the defaults.
func (s *EbitenSource) SetKeys(keys KeyMap) {
	if keys == nil {
		keys = DefaultKeyMap()
	}
	order := make([]ebiten.Key, 0, len(keys))
	for key := range keys {
		order = append(order, key)
	}
	// releases and presses of one frame are reported in key order
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })
	s.keys = keys
	s.order = order
}

// RequestLock captures the cursor on the next poll.
func (s *EbitenSource) RequestLock() {
	s.lockRequested = true
}

// Locked reports the lock state seen at the last poll.
func (s *EbitenSource) Locked() bool {
	return s.locked
}

func (s *EbitenSource) Poll(q *Queue) {
	if s == nil || q == nil {
		return
	}

	for _, key := range s.order {
		dir := s.keys[key]
		if inpututil.IsKeyJustPressed(key) {
			q.Push(KeyEvent{Direction: dir, Pressed: true})
		}
		if inpututil.IsKeyJustReleased(key) {
			q.Push(KeyEvent{Direction: dir, Pressed: false})
		}
	}

	if inpututil.IsKeyJustPressed(cameraLockKey) {
		q.Push(ToggleCameraLockEvent{})
	}

	if s.lockRequested {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		s.lockRequested = false
	}
	locked := ebiten.CursorMode() == ebiten.CursorModeCaptured
	if locked && inpututil.IsKeyJustPressed(releaseKey) {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		locked = false
	}
	if locked != s.locked {
		s.locked = locked
		s.haveCursor = false
		q.Push(PointerLockEvent{Locked: locked})
	}
	if !locked {
		return
	}

	x, y := ebiten.CursorPosition()
	if s.haveCursor && (x != s.lastX || y != s.lastY) {
		q.Push(MouseDeltaEvent{DX: float64(x - s.lastX), DY: float64(y - s.lastY)})
	}
	s.lastX, s.lastY = x, y
	s.haveCursor = true
}
