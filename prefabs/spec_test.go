package prefabs

import (
	"image/color"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadGameSpecEmbedded(t *testing.T) {
	spec, err := LoadGameSpec("")
	if err != nil {
		t.Fatalf("LoadGameSpec: %v", err)
	}

	if *spec.Player.MoveSpeed != 300 {
		t.Fatalf("move speed = %v, want 300", *spec.Player.MoveSpeed)
	}
	if *spec.Player.DiagonalMultiplier != 0.5 {
		t.Fatalf("diagonal multiplier = %v, want 0.5", *spec.Player.DiagonalMultiplier)
	}
	if got := spec.Physics.Gravity.Vec3(); got.Y() != -9.82 {
		t.Fatalf("gravity = %v", got)
	}
	if spec.Camera.Lock == nil || !*spec.Camera.Lock {
		t.Fatalf("camera lock should default on")
	}
	if len(spec.Level.Obstacles) != 1 || spec.Level.Obstacles[0].Name != "cube" {
		t.Fatalf("obstacles = %+v", spec.Level.Obstacles)
	}
	if got := spec.Level.Obstacles[0].Center.Vec3(); got.X() != 200 || got.Y() != 50 || got.Z() != 100 {
		t.Fatalf("cube center = %v", got)
	}
	if len(spec.Input["forward"]) != 2 {
		t.Fatalf("forward bindings = %v", spec.Input["forward"])
	}
}

func TestLoadPlayerModelSpecEmbedded(t *testing.T) {
	spec, err := LoadPlayerModelSpec()
	if err != nil {
		t.Fatalf("LoadPlayerModelSpec: %v", err)
	}
	if spec.Name == "" {
		t.Fatalf("expected a model name")
	}
	if spec.HalfExtents.IsZero() {
		t.Fatalf("expected half extents")
	}
}

func TestLoadSpecMissingFile(t *testing.T) {
	if _, err := LoadSpec[GameSpec]("nope.yaml"); err == nil {
		t.Fatalf("expected error for missing spec")
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Run("zero spec", func(t *testing.T) {
		spec := DefaultGameSpec()
		if spec.Physics.TickRate != 60 {
			t.Fatalf("tick rate = %d", spec.Physics.TickRate)
		}
		if spec.Camera.BackDistance != 250 || spec.Camera.Height != 250 || spec.Camera.LookDistance != 250 {
			t.Fatalf("camera = %+v", spec.Camera)
		}
		if spec.Camera.Follow != 1 {
			t.Fatalf("follow = %v, want 1", spec.Camera.Follow)
		}
		if *spec.Look.MaxPitch != 1.45 {
			t.Fatalf("max pitch = %v", *spec.Look.MaxPitch)
		}
		if *spec.Player.VisualOffsetY != 2 {
			t.Fatalf("visual offset = %v", *spec.Player.VisualOffsetY)
		}
		if got := spec.Player.Spawn.Vec3(); got.Y() != 10 {
			t.Fatalf("spawn = %v, want (0, 10, 0)", got)
		}
		if got := spec.Camera.Start.Vec3(); got.X() != 100 || got.Y() != 300 || got.Z() != -100 {
			t.Fatalf("camera start = %v", got)
		}
	})

	t.Run("explicit zeros survive", func(t *testing.T) {
		var spec GameSpec
		src := []byte(`player:
  spawn: {x: 0, y: 0, z: 0}
  move_speed: 0
  diagonal_multiplier: 0
  visual_offset_y: 0
camera:
  start: {x: 0, y: 0, z: 0}
`)
		if err := yaml.Unmarshal(src, &spec); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		spec.ApplyDefaults()

		tests := []struct {
			name string
			got  float64
		}{
			{"spawn y", spec.Player.Spawn.Y},
			{"move speed", *spec.Player.MoveSpeed},
			{"diagonal multiplier", *spec.Player.DiagonalMultiplier},
			{"visual offset", *spec.Player.VisualOffsetY},
			{"camera start y", spec.Camera.Start.Y},
		}
		for _, tt := range tests {
			if tt.got != 0 {
				t.Fatalf("%s = %v, want explicit 0", tt.name, tt.got)
			}
		}
	})

	t.Run("explicit values survive", func(t *testing.T) {
		var spec GameSpec
		src := []byte("look:\n  max_pitch: 0\ncamera:\n  lock: false\nrender:\n  post:\n    grain: false\n")
		if err := yaml.Unmarshal(src, &spec); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		spec.ApplyDefaults()
		if *spec.Look.MaxPitch != 0 {
			t.Fatalf("max pitch = %v, want 0 (unclamped)", *spec.Look.MaxPitch)
		}
		if *spec.Camera.Lock {
			t.Fatalf("camera lock should stay off")
		}
		if *spec.Render.Post.Grain {
			t.Fatalf("grain should stay off")
		}
		if !*spec.Render.Post.Chroma {
			t.Fatalf("chroma should default on")
		}
	})
}

func TestYAMLColor(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{name: "rgb", in: `"#ff8000"`, want: color.RGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}},
		{name: "no hash", in: `"00ff00"`, want: color.RGBA{G: 0xff, A: 0xff}},
		{name: "opaque rgba", in: `"#0000ffff"`, want: color.RGBA{B: 0xff, A: 0xff}},
		{name: "short", in: `"#fff"`, wantErr: true},
		{name: "not hex", in: `"#gggggg"`, wantErr: true},
		{name: "not scalar", in: `[1, 2]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c YAMLColor
			err := yaml.Unmarshal([]byte(tt.in), &c)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := c.RGBA8(); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCleanScriptPath(t *testing.T) {
	tests := map[string]string{
		"circle":                       "scripts/circle.tengo",
		"circle.tengo":                 "scripts/circle.tengo",
		"scripts/circle.tengo":         "scripts/circle.tengo",
		"prefabs/scripts/circle.tengo": "scripts/circle.tengo",
	}
	for in, want := range tests {
		if got := cleanScriptPath(in); got != want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", in, got, want)
		}
		if got := ScriptFile(in); got != "circle.tengo" {
			t.Fatalf("ScriptFile(%q) = %q, want circle.tengo", in, got)
		}
	}
	if _, err := LoadScript("circle"); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
}
