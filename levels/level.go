package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/milk9111/rangedcombat/component"
	"github.com/milk9111/rangedcombat/molds"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

// DefaultLevel is loaded when no level is named.
const DefaultLevel = "range"

var ErrInvalidLevel = errors.New("levels: invalid level")

// Level is an arena layout: static walls, armed turrets and targets.
type Level struct {
	Name    string   `yaml:"name"`
	Walls   []Wall   `yaml:"walls"`
	Turrets []Turret `yaml:"turrets"`
	Targets []Target `yaml:"targets"`
}

type Wall struct {
	Min molds.Vec3Spec `yaml:"min"`
	Max molds.Vec3Spec `yaml:"max"`
}

type Turret struct {
	Name     string         `yaml:"name"`
	Attack   string         `yaml:"attack"`
	Faction  string         `yaml:"faction"`
	Position molds.Vec3Spec `yaml:"position"`
	Facing   molds.Vec3Spec `yaml:"facing"`
	Health   int            `yaml:"health"`
}

type Target struct {
	Name     string         `yaml:"name"`
	Faction  string         `yaml:"faction"`
	Health   int            `yaml:"health"`
	Position molds.Vec3Spec `yaml:"position"`
	Velocity molds.Vec3Spec `yaml:"velocity"`
	Radius   float64        `yaml:"radius"`
	Height   float64        `yaml:"height"`
	Mass     float64        `yaml:"mass"`
}

// LoadLevelFromFS loads an embedded level by base name; the .yaml suffix is
// optional.
func LoadLevelFromFS(name string) (*Level, error) {
	if name == "" {
		name = DefaultLevel
	}
	if !strings.HasSuffix(name, ".yaml") {
		name += ".yaml"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return Parse(data)
}

// LoadLevel loads a level from disk.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a level.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if err := lvl.validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Names lists the embedded levels without their suffix.
func Names() []string {
	entries, err := fs.Glob(LevelsFS, "*.yaml")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(path.Base(e), ".yaml"))
	}
	sort.Strings(names)
	return names
}

func (l *Level) validate() error {
	for i, w := range l.Walls {
		if w.Min.X >= w.Max.X || w.Min.Y >= w.Max.Y || w.Min.Z >= w.Max.Z {
			return fmt.Errorf("%w: wall %d: min must be below max on every axis", ErrInvalidLevel, i)
		}
	}
	seen := make(map[string]bool)
	for _, t := range l.Turrets {
		if t.Name == "" || t.Attack == "" {
			return fmt.Errorf("%w: turret needs a name and an attack", ErrInvalidLevel)
		}
		if seen[t.Name] {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidLevel, t.Name)
		}
		seen[t.Name] = true
		if _, err := ParseFaction(t.Faction); err != nil {
			return fmt.Errorf("%w: turret %q: %v", ErrInvalidLevel, t.Name, err)
		}
	}
	for _, t := range l.Targets {
		if t.Name == "" {
			return fmt.Errorf("%w: target without name", ErrInvalidLevel)
		}
		if seen[t.Name] {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidLevel, t.Name)
		}
		seen[t.Name] = true
		if _, err := ParseFaction(t.Faction); err != nil {
			return fmt.Errorf("%w: target %q: %v", ErrInvalidLevel, t.Name, err)
		}
	}
	return nil
}

// ParseFaction maps a faction name onto its value. Empty means neutral.
func ParseFaction(name string) (component.Faction, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "neutral", "training_dummy", "dummy":
		return component.FactionNeutral, nil
	case "friendly":
		return component.FactionFriendly, nil
	case "enemy":
		return component.FactionEnemy, nil
	default:
		return 0, fmt.Errorf("unknown faction %q", name)
	}
}
