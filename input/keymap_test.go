package input

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/doggo/ecs/component"
)

func TestParseKeyMap(t *testing.T) {
	tests := []struct {
		name     string
		bindings map[string][]string
		want     KeyMap
		wantErr  bool
	}{
		{name: "empty uses defaults", bindings: nil, want: DefaultKeyMap()},
		{
			name:     "custom",
			bindings: map[string][]string{"forward": {"I", " arrowup "}, "Back": {"k"}},
			want: KeyMap{
				ebiten.KeyI:       component.DirectionForward,
				ebiten.KeyArrowUp: component.DirectionForward,
				ebiten.KeyK:       component.DirectionBack,
			},
		},
		{name: "unknown direction", bindings: map[string][]string{"up": {"w"}}, wantErr: true},
		{name: "unknown key", bindings: map[string][]string{"forward": {"f13"}}, wantErr: true},
		{name: "key bound twice", bindings: map[string][]string{"forward": {"w"}, "back": {"w"}}, wantErr: true},
		{name: "camera toggle key", bindings: map[string][]string{"left": {"c"}}, wantErr: true},
		{name: "release key", bindings: map[string][]string{"back": {"Escape"}}, wantErr: true},
		{name: "pose copy key", bindings: map[string][]string{"right": {"f2"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKeyMap(tt.bindings)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKeyMap: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d bindings, want %d", len(got), len(tt.want))
			}
			for k, d := range tt.want {
				if got[k] != d {
					t.Fatalf("key %v bound to %v, want %v", k, got[k], d)
				}
			}
		})
	}
}

func TestDefaultKeyMapAvoidsReservedKeys(t *testing.T) {
	for key := range DefaultKeyMap() {
		if use, ok := ReservedKeys[key]; ok {
			t.Fatalf("default binding %v collides with %s", key, use)
		}
	}
}

func TestQueueDrainOrder(t *testing.T) {
	q := &Queue{}
	q.Push(KeyEvent{Direction: component.DirectionLeft, Pressed: true})
	q.Push(nil)
	q.Push(MouseDeltaEvent{DX: 1})
	q.Push(PointerLockEvent{Locked: true})

	if q.Len() != 3 {
		t.Fatalf("len = %d, want 3", q.Len())
	}
	events := q.Drain()
	if _, ok := events[0].(KeyEvent); !ok {
		t.Fatalf("first event = %T", events[0])
	}
	if _, ok := events[2].(PointerLockEvent); !ok {
		t.Fatalf("last event = %T", events[2])
	}
	if q.Len() != 0 || q.Drain() != nil {
		t.Fatalf("queue not empty after drain")
	}

	var nilQueue *Queue
	nilQueue.Push(ToggleCameraLockEvent{})
	if nilQueue.Len() != 0 || nilQueue.Drain() != nil {
		t.Fatalf("nil queue should stay empty")
	}
}
