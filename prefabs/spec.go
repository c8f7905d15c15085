package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

const (
	GameSpecFile   = "game.yaml"
	PlayerSpecFile = "player.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameSpec is the tuning for one session. Zero fields take defaults.
type GameSpec struct {
	Physics PhysicsSpec         `yaml:"physics"`
	Player  PlayerSpec          `yaml:"player"`
	Look    LookSpec            `yaml:"look"`
	Camera  CameraSpec          `yaml:"camera"`
	Input   map[string][]string `yaml:"input"`
	Render  RenderSpec          `yaml:"render"`
	Level   LevelSpec           `yaml:"level"`
	Logging LoggingSpec         `yaml:"logging"`
}

type PhysicsSpec struct {
	TickRate int       `yaml:"tick_rate"`
	Gravity  *Vec3Spec `yaml:"gravity"`
	GroundY  float64   `yaml:"ground_y"`
}

// PlayerSpec tunes the player body. Pointer fields are nil when unset so an
// explicit zero survives ApplyDefaults.
type PlayerSpec struct {
	Spawn              *Vec3Spec `yaml:"spawn"`
	HalfExtent         float64   `yaml:"half_extent"`
	Mass               float64   `yaml:"mass"`
	MoveSpeed          *float64  `yaml:"move_speed"`
	DiagonalMultiplier *float64  `yaml:"diagonal_multiplier"`
	VisualOffsetY      *float64  `yaml:"visual_offset_y"`
	Facing             float64   `yaml:"facing"`
}

type LookSpec struct {
	Sensitivity float64  `yaml:"sensitivity"`
	MaxPitch    *float64 `yaml:"max_pitch"`
}

type CameraSpec struct {
	BackDistance float64   `yaml:"back_distance"`
	Height       float64   `yaml:"height"`
	LookDistance float64   `yaml:"look_distance"`
	Follow       float64   `yaml:"follow"`
	Lock         *bool     `yaml:"lock"`
	FOV          float64   `yaml:"fov"`
	Near         float64   `yaml:"near"`
	Far          float64   `yaml:"far"`
	Start        *Vec3Spec `yaml:"start"`
}

type RenderSpec struct {
	Width      int       `yaml:"width"`
	Height     int       `yaml:"height"`
	Title      string    `yaml:"title"`
	Background YAMLColor `yaml:"background"`
	Post       PostSpec  `yaml:"post"`
}

type PostSpec struct {
	Chroma          *bool   `yaml:"chroma"`
	ChromaSpread    float64 `yaml:"chroma_spread"`
	ChromaIntensity float64 `yaml:"chroma_intensity"`
	Grain           *bool   `yaml:"grain"`
	GrainAmount     float64 `yaml:"grain_amount"`
}

type LevelSpec struct {
	Grid      GridSpec       `yaml:"grid"`
	Obstacles []ObstacleSpec `yaml:"obstacles"`
	Props     []PropSpec     `yaml:"props"`
}

type GridSpec struct {
	Size      float64   `yaml:"size"`
	Divisions int       `yaml:"divisions"`
	Color     YAMLColor `yaml:"color"`
}

// ObstacleSpec is a static box the player collides with.
type ObstacleSpec struct {
	Name   string    `yaml:"name"`
	Center Vec3Spec  `yaml:"center"`
	Size   Vec3Spec  `yaml:"size"`
	Color  YAMLColor `yaml:"color"`
}

// PropSpec is decoration only.
type PropSpec struct {
	Name     string    `yaml:"name"`
	Kind     string    `yaml:"kind"`
	Center   Vec3Spec  `yaml:"center"`
	Radius   float64   `yaml:"radius"`
	Tube     float64   `yaml:"tube"`
	TiltX    float64   `yaml:"tilt_x"`
	Segments int       `yaml:"segments"`
	Color    YAMLColor `yaml:"color"`
}

type LoggingSpec struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// PlayerModelSpec describes the player's wireframe model.
type PlayerModelSpec struct {
	Name        string    `yaml:"name"`
	HalfExtents Vec3Spec  `yaml:"half_extents"`
	NoseLength  float64   `yaml:"nose_length"`
	Color       YAMLColor `yaml:"color"`
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3Spec) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func (v Vec3Spec) IsZero() bool {
	return v == Vec3Spec{}
}

func LoadGameSpec(filename string) (*GameSpec, error) {
	if filename == "" {
		filename = GameSpecFile
	}
	spec, err := LoadSpec[GameSpec](filename)
	if err != nil {
		return nil, err
	}
	spec.ApplyDefaults()
	return &spec, nil
}

func LoadPlayerModelSpec() (*PlayerModelSpec, error) {
	spec, err := LoadSpec[PlayerModelSpec](PlayerSpecFile)
	if err != nil {
		return nil, err
	}
	if spec.HalfExtents.IsZero() {
		spec.HalfExtents = Vec3Spec{X: 1, Y: 1, Z: 1}
	}
	if spec.Color.Color == nil {
		spec.Color.Color = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return &spec, nil
}

// DefaultGameSpec returns the spec used when no config file is available.
func DefaultGameSpec() *GameSpec {
	spec := &GameSpec{}
	spec.ApplyDefaults()
	return spec
}

// ApplyDefaults fills unset fields.
func (s *GameSpec) ApplyDefaults() {
	if s.Physics.TickRate <= 0 {
		s.Physics.TickRate = 60
	}
	if s.Physics.Gravity == nil {
		s.Physics.Gravity = &Vec3Spec{Y: -9.82}
	}

	p := &s.Player
	if p.Spawn == nil {
		p.Spawn = &Vec3Spec{Y: 10}
	}
	if p.HalfExtent <= 0 {
		p.HalfExtent = 1
	}
	if p.Mass <= 0 {
		p.Mass = 10
	}
	if p.MoveSpeed == nil {
		p.MoveSpeed = Float64(300)
	}
	if p.DiagonalMultiplier == nil {
		p.DiagonalMultiplier = Float64(0.5)
	}
	if p.VisualOffsetY == nil {
		p.VisualOffsetY = Float64(2)
	}

	if s.Look.Sensitivity == 0 {
		s.Look.Sensitivity = 0.001
	}
	if s.Look.MaxPitch == nil {
		s.Look.MaxPitch = Float64(1.45)
	}

	c := &s.Camera
	if c.BackDistance == 0 {
		c.BackDistance = 250
	}
	if c.Height == 0 {
		c.Height = 250
	}
	if c.LookDistance == 0 {
		c.LookDistance = 250
	}
	if c.Follow <= 0 {
		c.Follow = 1
	}
	if c.Lock == nil {
		lock := true
		c.Lock = &lock
	}
	if c.FOV <= 0 {
		c.FOV = 90
	}
	if c.Near <= 0 {
		c.Near = 0.1
	}
	if c.Far <= 0 {
		c.Far = 1000
	}
	if c.Start == nil {
		c.Start = &Vec3Spec{X: 100, Y: 300, Z: -100}
	}

	r := &s.Render
	if r.Width <= 0 {
		r.Width = 1280
	}
	if r.Height <= 0 {
		r.Height = 720
	}
	if r.Title == "" {
		r.Title = "doggo"
	}
	if r.Background.Color == nil {
		r.Background.Color = color.NRGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff}
	}
	if r.Post.Chroma == nil {
		on := true
		r.Post.Chroma = &on
	}
	if r.Post.ChromaSpread == 0 {
		r.Post.ChromaSpread = 0.3
	}
	if r.Post.ChromaIntensity == 0 {
		r.Post.ChromaIntensity = 1
	}
	if r.Post.Grain == nil {
		on := true
		r.Post.Grain = &on
	}
	if r.Post.GrainAmount == 0 {
		r.Post.GrainAmount = 0.1
	}

	g := &s.Level.Grid
	if g.Size <= 0 {
		g.Size = 2000
	}
	if g.Divisions <= 0 {
		g.Divisions = 50
	}
	if g.Color.Color == nil {
		g.Color.Color = color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
	}
	for i := range s.Level.Obstacles {
		if s.Level.Obstacles[i].Color.Color == nil {
			s.Level.Obstacles[i].Color.Color = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		}
	}
	for i := range s.Level.Props {
		prop := &s.Level.Props[i]
		if prop.Segments <= 0 {
			prop.Segments = 24
		}
		if prop.Color.Color == nil {
			prop.Color.Color = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		}
	}

	if s.Logging.Level == "" {
		s.Logging.Level = "info"
	}
	if s.Logging.Format == "" {
		s.Logging.Format = "console"
	}
}

// Float64 returns a pointer to v, for filling optional spec fields.
func Float64(v float64) *float64 {
	return &v
}

type YAMLColor struct {
	color.Color
}

// RGBA8 returns the colour as 8-bit premultiplied channels, or opaque white
// when unset.
func (c YAMLColor) RGBA8() color.RGBA {
	if c.Color == nil {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return color.RGBAModel.Convert(c.Color).(color.RGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
