package input

import "github.com/milk9111/doggo/ecs/component"

// Event is anything an input source can report.
type Event interface {
	isEvent()
}

// KeyEvent is a press or release of a logical movement key.
type KeyEvent struct {
	Direction component.Direction
	Pressed   bool
}

// MouseDeltaEvent is relative mouse motion reported under pointer lock.
type MouseDeltaEvent struct {
	DX float64
	DY float64
}

// PointerLockEvent reports the pointer lock being engaged or released.
type PointerLockEvent struct {
	Locked bool
}

// ToggleCameraLockEvent flips whether the camera follows the player.
type ToggleCameraLockEvent struct{}

func (KeyEvent) isEvent()              {}
func (MouseDeltaEvent) isEvent()       {}
func (PointerLockEvent) isEvent()      {}
func (ToggleCameraLockEvent) isEvent() {}

// Queue is a FIFO of input events. Sources push during polling and the
// input system drains it once per frame.
type Queue struct {
	items []Event
}

// Push adds an event.
func (q *Queue) Push(evt Event) {
	if q == nil || evt == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events in arrival order and clears the queue.
func (q *Queue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Source produces events for the current frame.
type Source interface {
	Poll(q *Queue)
}
