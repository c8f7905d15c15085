package input

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/doggo/ecs/component"
)

// KeyMap binds physical keys to logical movement directions.
type KeyMap map[ebiten.Key]component.Direction

// DefaultKeyMap binds WASD and the arrow keys.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ebiten.KeyW:          component.DirectionForward,
		ebiten.KeyArrowUp:    component.DirectionForward,
		ebiten.KeyA:          component.DirectionLeft,
		ebiten.KeyArrowLeft:  component.DirectionLeft,
		ebiten.KeyS:          component.DirectionBack,
		ebiten.KeyArrowDown:  component.DirectionBack,
		ebiten.KeyD:          component.DirectionRight,
		ebiten.KeyArrowRight: component.DirectionRight,
	}
}

var keyNames = map[string]ebiten.Key{
	"arrowup":    ebiten.KeyArrowUp,
	"arrowdown":  ebiten.KeyArrowDown,
	"arrowleft":  ebiten.KeyArrowLeft,
	"arrowright": ebiten.KeyArrowRight,
	"space":      ebiten.KeySpace,
	"shift":      ebiten.KeyShift,
	"escape":     ebiten.KeyEscape,
	"f2":         ebiten.KeyF2,
	"a":          ebiten.KeyA,
	"b":          ebiten.KeyB,
	"c":          ebiten.KeyC,
	"d":          ebiten.KeyD,
	"e":          ebiten.KeyE,
	"f":          ebiten.KeyF,
	"g":          ebiten.KeyG,
	"h":          ebiten.KeyH,
	"i":          ebiten.KeyI,
	"j":          ebiten.KeyJ,
	"k":          ebiten.KeyK,
	"l":          ebiten.KeyL,
	"m":          ebiten.KeyM,
	"n":          ebiten.KeyN,
	"o":          ebiten.KeyO,
	"p":          ebiten.KeyP,
	"q":          ebiten.KeyQ,
	"r":          ebiten.KeyR,
	"s":          ebiten.KeyS,
	"t":          ebiten.KeyT,
	"u":          ebiten.KeyU,
	"v":          ebiten.KeyV,
	"w":          ebiten.KeyW,
	"x":          ebiten.KeyX,
	"y":          ebiten.KeyY,
	"z":          ebiten.KeyZ,
}

// ReservedKeys are handled outside the movement bindings and can't be
// rebound.
var ReservedKeys = map[ebiten.Key]string{
	ebiten.KeyC:      "camera lock toggle",
	ebiten.KeyEscape: "pointer release",
	ebiten.KeyF2:     "pose copy",
}

var directionNames = map[string]component.Direction{
	"forward": component.DirectionForward,
	"left":    component.DirectionLeft,
	"back":    component.DirectionBack,
	"right":   component.DirectionRight,
}

// ParseKeyMap builds a key map from direction names to key identifiers, e.g.
// {"forward": ["w", "arrowup"]}. Identifiers are matched case-insensitively.
func ParseKeyMap(bindings map[string][]string) (KeyMap, error) {
	if len(bindings) == 0 {
		return DefaultKeyMap(), nil
	}
	km := make(KeyMap)
	for dirName, keys := range bindings {
		dir, ok := directionNames[strings.ToLower(dirName)]
		if !ok {
			return nil, fmt.Errorf("input: unknown direction %q", dirName)
		}
		for _, name := range keys {
			key, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
			if !ok {
				return nil, fmt.Errorf("input: unknown key %q for %s", name, dirName)
			}
			if use, reserved := ReservedKeys[key]; reserved {
				return nil, fmt.Errorf("input: key %q is reserved for %s", name, use)
			}
			if prev, dup := km[key]; dup && prev != dir {
				return nil, fmt.Errorf("input: key %q bound to both %s and %s", name, prev, dir)
			}
			km[key] = dir
		}
	}
	return km, nil
}
