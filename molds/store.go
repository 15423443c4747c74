package molds

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
)

const (
	AttacksFile     = "weapons.yaml"
	ProjectilesFile = "projectiles.yaml"
)

type attacksFile struct {
	Attacks []*AttackMold `yaml:"attacks"`
}

type projectilesFile struct {
	Projectiles []*ProjectileMold `yaml:"projectiles"`
}

// Store holds the read-only molds of a session. Lookups return shared
// pointers; callers must not modify them.
type Store struct {
	loader      Loader
	log         *slog.Logger
	attacks     map[string]*AttackMold
	projectiles map[string]*ProjectileMold
}

// NewStore returns an empty store reading overrides from dir.
func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		loader:      Loader{Dir: dir},
		log:         logger.With("component", "molds"),
		attacks:     make(map[string]*AttackMold),
		projectiles: make(map[string]*ProjectileMold),
	}
}

// LoadStore loads both mold files.
func LoadStore(dir string, logger *slog.Logger) (*Store, error) {
	s := NewStore(dir, logger)
	if err := s.loadProjectiles(); err != nil {
		return nil, err
	}
	if err := s.loadAttacks(); err != nil {
		return nil, err
	}
	s.checkReferences()
	return s, nil
}

// Attack returns the attack mold called name.
func (s *Store) Attack(name string) (*AttackMold, bool) {
	if s == nil {
		return nil, false
	}
	m, ok := s.attacks[name]
	return m, ok
}

// Projectile returns the projectile mold called name.
func (s *Store) Projectile(name string) (*ProjectileMold, bool) {
	if s == nil {
		return nil, false
	}
	m, ok := s.projectiles[name]
	return m, ok
}

// PutAttack validates and registers m, replacing any mold of the same name.
func (s *Store) PutAttack(m *AttackMold) error {
	if err := s.prepareAttack(m); err != nil {
		return err
	}
	s.attacks[m.Name] = m
	return nil
}

func (s *Store) prepareAttack(m *AttackMold) error {
	if m == nil {
		return fmt.Errorf("%w: nil attack", ErrInvalidMold)
	}
	if err := m.validate(); err != nil {
		return err
	}
	if err := m.SpreadCurve.bake(s.loader); err != nil {
		return fmt.Errorf("%w: attack %q: %v", ErrInvalidMold, m.Name, err)
	}
	return nil
}

// PutProjectile validates and registers m, replacing any mold of the same name.
func (s *Store) PutProjectile(m *ProjectileMold) error {
	if m == nil {
		return fmt.Errorf("%w: nil projectile", ErrInvalidMold)
	}
	if err := m.validate(); err != nil {
		return err
	}
	s.projectiles[m.Name] = m
	return nil
}

// Names returns the registered attack and projectile mold names, sorted.
func (s *Store) Names() (attacks, projectiles []string) {
	for n := range s.attacks {
		attacks = append(attacks, n)
	}
	for n := range s.projectiles {
		projectiles = append(projectiles, n)
	}
	slices.Sort(attacks)
	slices.Sort(projectiles)
	return attacks, projectiles
}

// Reload re-reads the file at path after a change on disk. Curve scripts
// reload the attack molds that may reference them. A failed reload keeps
// the previous molds.
func (s *Store) Reload(path string) error {
	name := filepath.ToSlash(path)
	if s.loader.Dir != "" {
		if rel, err := filepath.Rel(s.loader.Dir, path); err == nil && !strings.HasPrefix(rel, "..") {
			name = filepath.ToSlash(rel)
		}
	}
	name = cleanMoldPath(name)

	var err error
	switch {
	case name == ProjectilesFile:
		err = s.loadProjectiles()
	case name == AttacksFile, strings.HasSuffix(name, ".tengo"):
		err = s.loadAttacks()
	default:
		return nil
	}
	if err != nil {
		s.log.Warn("reload failed, keeping previous molds", "file", name, "err", err)
		return err
	}
	s.checkReferences()
	s.log.Info("molds reloaded", "file", name)
	return nil
}

func (s *Store) loadAttacks() error {
	spec, err := LoadSpec[attacksFile](s.loader, AttacksFile)
	if err != nil {
		return err
	}
	attacks := make(map[string]*AttackMold, len(spec.Attacks))
	for _, m := range spec.Attacks {
		if err := s.prepareAttack(m); err != nil {
			return fmt.Errorf("molds: %s: %w", AttacksFile, err)
		}
		attacks[m.Name] = m
	}
	s.attacks = attacks
	return nil
}

func (s *Store) loadProjectiles() error {
	spec, err := LoadSpec[projectilesFile](s.loader, ProjectilesFile)
	if err != nil {
		return err
	}
	projectiles := make(map[string]*ProjectileMold, len(spec.Projectiles))
	for _, m := range spec.Projectiles {
		if m == nil {
			return fmt.Errorf("molds: %s: %w: nil projectile", ProjectilesFile, ErrInvalidMold)
		}
		if err := m.validate(); err != nil {
			return fmt.Errorf("molds: %s: %w", ProjectilesFile, err)
		}
		projectiles[m.Name] = m
	}
	s.projectiles = projectiles
	return nil
}

// checkReferences warns about attacks naming projectiles that do not exist.
// Such attacks still load and fire empty volleys.
func (s *Store) checkReferences() {
	for name, a := range s.attacks {
		if _, ok := s.projectiles[a.Projectile]; !ok {
			s.log.Warn("attack references unknown projectile", "attack", name, "projectile", a.Projectile)
		}
	}
}
