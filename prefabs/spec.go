package prefabs

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	GameFile    = "game.yaml"
	PlayerFile  = "player.yaml"
	EnemiesFile = "enemies.yaml"
	ItemsFile   = "items.yaml"
)

var ErrUnknownSpec = errors.New("prefabs: unknown spec file")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := ReadSpecFile(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Size is a [width, height] pair.
type Size [2]float64

func (s Size) W() float64 { return s[0] }
func (s Size) H() float64 { return s[1] }

type GameSpec struct {
	Scale      int            `yaml:"scale"`
	StartLevel int            `yaml:"start_level"`
	TimeStop   TimeStopSpec   `yaml:"time_stop"`
	Shake      ShakeSpec      `yaml:"screen_shake"`
	Transition TransitionSpec `yaml:"transition"`
	Death      DeathSpec      `yaml:"death"`
	Camera     CameraSpec     `yaml:"camera"`
	Clouds     CloudsSpec     `yaml:"clouds"`
	Leaves     LeavesSpec     `yaml:"leaves"`
	Audio      AudioSpec      `yaml:"audio"`
}

type TimeStopSpec struct {
	Max    float64 `yaml:"max"`
	Drain  float64 `yaml:"drain"`
	Refill float64 `yaml:"refill"`
}

type ShakeSpec struct {
	OnHit    float64 `yaml:"on_hit"`
	OnDefeat float64 `yaml:"on_defeat"`
}

type TransitionSpec struct {
	Length int `yaml:"length"`
}

type DeathSpec struct {
	CloseAfter  int `yaml:"close_after"`
	ReloadAfter int `yaml:"reload_after"`
}

type CameraSpec struct {
	Smoothing float64 `yaml:"smoothing"`
}

type CloudsSpec struct {
	Count int `yaml:"count"`
}

type LeavesSpec struct {
	AreaDivisor float64    `yaml:"area_divisor"`
	Inset       [2]float64 `yaml:"inset"`
	Size        Size       `yaml:"size"`
	Velocity    [2]float64 `yaml:"velocity"`
	Sway        float64    `yaml:"sway"`
}

type AudioSpec struct {
	Music   string             `yaml:"music"`
	Ambient string             `yaml:"ambience"`
	Volumes map[string]float64 `yaml:"volumes"`
}

type PlayerSpec struct {
	Size    Size            `yaml:"size"`
	Physics PhysicsSpec     `yaml:"physics"`
	Jump    JumpSpec        `yaml:"jump"`
	Dash    DashSpec        `yaml:"dash"`
	Wall    WallSpec        `yaml:"wall"`
	Shoot   ShootSpec       `yaml:"shoot"`
	Health  HealthSpec      `yaml:"health"`
	Ability map[string]bool `yaml:"abilities"`
}

type PhysicsSpec struct {
	Gravity          float64 `yaml:"gravity"`
	TerminalVelocity float64 `yaml:"terminal_velocity"`
	Friction         float64 `yaml:"friction"`
}

type JumpSpec struct {
	Velocity float64 `yaml:"velocity"`
	AirTime  int     `yaml:"air_time"`
}

type DashSpec struct {
	Duration         int     `yaml:"duration"`
	Speed            float64 `yaml:"speed"`
	BurstUntil       int     `yaml:"burst_until"`
	InvulnerableFrom int     `yaml:"invulnerable_from"`
	Settle           float64 `yaml:"settle"`
}

type WallSpec struct {
	SlideSpeed    float64 `yaml:"slide_speed"`
	KickX         float64 `yaml:"kick_x"`
	KickY         float64 `yaml:"kick_y"`
	AirborneAfter int     `yaml:"airborne_after"`
}

type ShootSpec struct {
	Speed    float64 `yaml:"speed"`
	Cooldown int     `yaml:"cooldown"`
}

type HealthSpec struct {
	MaxHits     int `yaml:"max_hits"`
	IFrames     int `yaml:"iframes"`
	FallAirTime int `yaml:"fall_air_time"`
}

type EnemySpec struct {
	Variant         int     `yaml:"variant"`
	Anim            string  `yaml:"anim"`
	Size            Size    `yaml:"size"`
	Speed           float64 `yaml:"speed"`
	ChargeSpeed     float64 `yaml:"charge_speed"`
	WalkMin         int     `yaml:"walk_min"`
	WalkMax         int     `yaml:"walk_max"`
	IdleChance      float64 `yaml:"idle_chance"`
	SightY          float64 `yaml:"sight_y"`
	SightX          float64 `yaml:"sight_x"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	Patrol          bool    `yaml:"patrol"`
	Contact         bool    `yaml:"contact"`
	Float           bool    `yaml:"float"`
	Script          string  `yaml:"script"`
}

type EnemiesSpec map[string]EnemySpec

// ByVariant returns the enemy whose spawner variant is v.
func (e EnemiesSpec) ByVariant(v int) (string, EnemySpec, bool) {
	for _, name := range e.Names() {
		if e[name].Variant == v {
			return name, e[name], true
		}
	}
	return "", EnemySpec{}, false
}

// Names returns the enemy names sorted by variant.
func (e EnemiesSpec) Names() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return e[names[i]].Variant < e[names[j]].Variant })
	return names
}

type ItemsSpec struct {
	Size          Size           `yaml:"size"`
	SparkInterval int            `yaml:"spark_interval"`
	SparkOffset   float64        `yaml:"spark_offset"`
	Kinds         map[int]string `yaml:"kinds"`
}

// Specs bundles every tuning file the game reads.
type Specs struct {
	Game    GameSpec
	Player  PlayerSpec
	Enemies EnemiesSpec
	Items   ItemsSpec
}

// LoadAll reads every tuning file.
func LoadAll() (*Specs, error) {
	s := &Specs{}
	for _, name := range []string{GameFile, PlayerFile, EnemiesFile, ItemsFile} {
		if err := s.Reload(name); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Reload re-reads a single tuning file into s.
func (s *Specs) Reload(name string) error {
	if s == nil {
		return fmt.Errorf("prefabs: reload %s into nil specs", name)
	}
	var err error
	switch specPath(name) {
	case GameFile:
		s.Game, err = LoadSpec[GameSpec](GameFile)
	case PlayerFile:
		s.Player, err = LoadSpec[PlayerSpec](PlayerFile)
	case EnemiesFile:
		s.Enemies, err = LoadSpec[EnemiesSpec](EnemiesFile)
	case ItemsFile:
		s.Items, err = LoadSpec[ItemsSpec](ItemsFile)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownSpec, name)
	}
	return err
}
