package component

// Direction is one of the four logical movement buttons.
type Direction uint8

const (
	DirectionForward Direction = iota
	DirectionLeft
	DirectionBack
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionLeft:
		return "left"
	case DirectionBack:
		return "back"
	case DirectionRight:
		return "right"
	default:
		return "unknown"
	}
}

// InputState stores the held directional buttons for an entity.
type InputState struct {
	Forward bool
	Left    bool
	Back    bool
	Right   bool
}

// SetDirection records a press or release. Repeated presses are idempotent.
func (s *InputState) SetDirection(d Direction, pressed bool) {
	if s == nil {
		return
	}
	switch d {
	case DirectionForward:
		s.Forward = pressed
	case DirectionLeft:
		s.Left = pressed
	case DirectionBack:
		s.Back = pressed
	case DirectionRight:
		s.Right = pressed
	}
}

// Snapshot returns a copy of the flags for one movement resolution.
func (s *InputState) Snapshot() InputState {
	if s == nil {
		return InputState{}
	}
	return *s
}

// Active returns how many directions are held.
func (s InputState) Active() int {
	n := 0
	for _, held := range [...]bool{s.Forward, s.Left, s.Back, s.Right} {
		if held {
			n++
		}
	}
	return n
}

var InputComponent = NewComponent[InputState]()
