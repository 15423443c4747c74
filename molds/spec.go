package molds

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/milk9111/rangedcombat/common"
	"github.com/milk9111/rangedcombat/component"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidMold = errors.New("molds: invalid mold")
	ErrUnknownMold = errors.New("molds: unknown mold")
)

// FireMode selects how an attack spends its cooldown.
type FireMode string

const (
	FireSingle FireMode = "single"
	FireBurst  FireMode = "burst"
)

// Spread is a symmetric angular range in degrees.
type Spread struct {
	Horizontal float64 `yaml:"horizontal"`
	Vertical   float64 `yaml:"vertical"`
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3Spec) Vec3() common.Vec3 {
	return common.V3(v.X, v.Y, v.Z)
}

// AttackMold parameterizes one weapon's cadence, spread and targeting.
// Times are in seconds, angles in degrees.
type AttackMold struct {
	Name               string   `yaml:"name"`
	Mode               FireMode `yaml:"mode"`
	Cooldown           float64  `yaml:"cooldown"`
	BurstSize          int      `yaml:"burst_size"`
	ShotDelay          float64  `yaml:"shot_delay"`
	BurstPause         float64  `yaml:"burst_pause"`
	MinSpread          Spread   `yaml:"min_spread"`
	MaxSpread          Spread   `yaml:"max_spread"`
	SpreadCurve        Curve    `yaml:"spread_curve"`
	ProjectilesPerShot int      `yaml:"projectiles_per_shot"`
	ProjectileSpeed    float64  `yaml:"projectile_speed"`
	RotationSpeed      float64  `yaml:"rotation_speed"`
	MinAngleToShoot    float64  `yaml:"min_angle_to_shoot"`
	FiringRadius       float64  `yaml:"firing_radius"`
	Projectile         string   `yaml:"projectile"`
	Targets            []string `yaml:"targets"`
	Gates              []string `yaml:"gates"`
	TargetOffset       Vec3Spec `yaml:"target_offset"`

	targetMask component.TargetMask
}

func (m *AttackMold) CooldownDuration() time.Duration   { return seconds(m.Cooldown) }
func (m *AttackMold) ShotDelayDuration() time.Duration  { return seconds(m.ShotDelay) }
func (m *AttackMold) BurstPauseDuration() time.Duration { return seconds(m.BurstPause) }

// TargetMask returns the parsed Targets list.
func (m *AttackMold) TargetMask() component.TargetMask {
	return m.targetMask
}

// Volleys returns how many volleys one trigger fires.
func (m *AttackMold) Volleys() int {
	if m.Mode == FireBurst {
		return m.BurstSize
	}
	return 1
}

func (m *AttackMold) validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: attack without name", ErrInvalidMold)
	}
	switch m.Mode {
	case "":
		m.Mode = FireSingle
	case FireSingle, FireBurst:
	default:
		return fmt.Errorf("%w: attack %q: unknown mode %q", ErrInvalidMold, m.Name, m.Mode)
	}
	if m.Mode == FireBurst && m.BurstSize < 1 {
		return fmt.Errorf("%w: attack %q: burst_size must be >= 1", ErrInvalidMold, m.Name)
	}
	if m.Cooldown < 0 || m.ShotDelay < 0 || m.BurstPause < 0 {
		return fmt.Errorf("%w: attack %q: negative duration", ErrInvalidMold, m.Name)
	}
	if m.ProjectilesPerShot < 0 {
		return fmt.Errorf("%w: attack %q: negative projectiles_per_shot", ErrInvalidMold, m.Name)
	}
	if m.FiringRadius <= 0 {
		return fmt.Errorf("%w: attack %q: firing_radius must be > 0", ErrInvalidMold, m.Name)
	}
	mask, err := ParseTargets(m.Targets)
	if err != nil {
		return fmt.Errorf("%w: attack %q: %v", ErrInvalidMold, m.Name, err)
	}
	m.targetMask = mask
	return nil
}

// ProjectileMold parameterizes a projectile kind.
type ProjectileMold struct {
	Name             string               `yaml:"name"`
	Damage           int                  `yaml:"damage"`
	Radius           float64              `yaml:"radius"`
	Impact           component.ImpactKind `yaml:"impact"`
	LifetimeAfterHit float64              `yaml:"lifetime_after_hit"`
	MaxFlightTime    float64              `yaml:"max_flight_time"`
	PushForce        float64              `yaml:"push_force"`
	ImpactParticles  string               `yaml:"impact_particles"`
	CollideWith      []string             `yaml:"collide_with"`
	AfterHitCollide  []string             `yaml:"after_hit_collide_with"`
	PoolSize         int                  `yaml:"pool_size"`

	before component.Layer
	after  component.Layer
}

const (
	defaultProjectileRadius = 0.05
	defaultMaxFlightTime    = 5.0
	defaultPoolSize         = 64
)

func (m *ProjectileMold) LifetimeAfterHitDuration() time.Duration {
	return seconds(m.LifetimeAfterHit)
}

func (m *ProjectileMold) MaxFlightDuration() time.Duration {
	return seconds(m.MaxFlightTime)
}

// BeforeCollision is the layer mask a flying projectile interacts with.
func (m *ProjectileMold) BeforeCollision() component.Layer { return m.before }

// AfterCollision is the layer mask a lingering projectile interacts with.
func (m *ProjectileMold) AfterCollision() component.Layer { return m.after }

func (m *ProjectileMold) validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: projectile without name", ErrInvalidMold)
	}
	if m.Damage < 0 {
		return fmt.Errorf("%w: projectile %q: negative damage", ErrInvalidMold, m.Name)
	}
	switch m.Impact {
	case "":
		m.Impact = component.ImpactSharp
	case component.ImpactSharp, component.ImpactBlunt:
	default:
		return fmt.Errorf("%w: projectile %q: unknown impact %q", ErrInvalidMold, m.Name, m.Impact)
	}
	if m.LifetimeAfterHit < 0 || m.MaxFlightTime < 0 || m.PushForce < 0 {
		return fmt.Errorf("%w: projectile %q: negative value", ErrInvalidMold, m.Name)
	}
	if m.Radius <= 0 {
		m.Radius = defaultProjectileRadius
	}
	if m.MaxFlightTime == 0 {
		m.MaxFlightTime = defaultMaxFlightTime
	}
	if m.PoolSize <= 0 {
		m.PoolSize = defaultPoolSize
	}

	var err error
	if len(m.CollideWith) == 0 {
		m.before = component.LayerEnvironment | component.LayerActors | component.LayerProjectiles
	} else if m.before, err = ParseLayers(m.CollideWith); err != nil {
		return fmt.Errorf("%w: projectile %q: %v", ErrInvalidMold, m.Name, err)
	}
	if len(m.AfterHitCollide) == 0 {
		m.after = component.LayerEnvironment
	} else if m.after, err = ParseLayers(m.AfterHitCollide); err != nil {
		return fmt.Errorf("%w: projectile %q: %v", ErrInvalidMold, m.Name, err)
	}
	return nil
}

var layerNames = map[string]component.Layer{
	"environment":         component.LayerEnvironment,
	"friendly":            component.LayerFriendly,
	"enemy":               component.LayerEnemy,
	"neutral":             component.LayerNeutral,
	"friendly_projectile": component.LayerFriendlyProjectile,
	"enemy_projectile":    component.LayerEnemyProjectile,
	"debris":              component.LayerDebris,
	"actors":              component.LayerActors,
	"projectiles":         component.LayerProjectiles,
}

// ParseLayers combines named collision layers into a mask.
func ParseLayers(names []string) (component.Layer, error) {
	var mask component.Layer
	for _, n := range names {
		l, ok := layerNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, fmt.Errorf("unknown layer %q", n)
		}
		mask |= l
	}
	return mask, nil
}

var targetNames = map[string]component.TargetMask{
	"friendly":       component.TargetFriendly,
	"enemy":          component.TargetEnemy,
	"training_dummy": component.TargetTrainingDummy,
	"dummy":          component.TargetTrainingDummy,
}

// ParseTargets combines named target kinds into a mask. An empty list is
// malformed: a weapon must be able to acquire something.
func ParseTargets(names []string) (component.TargetMask, error) {
	var mask component.TargetMask
	for _, n := range names {
		t, ok := targetNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, fmt.Errorf("unknown target kind %q", n)
		}
		mask |= t
	}
	if !mask.Valid() {
		return 0, fmt.Errorf("empty target mask")
	}
	return mask, nil
}

// LoadSpec reads and decodes one mold file.
func LoadSpec[T any](l Loader, filename string) (T, error) {
	var zero T
	data, err := l.Load(filename)
	if err != nil {
		return zero, fmt.Errorf("molds: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("molds: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
