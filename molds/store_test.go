package molds

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/milk9111/rangedcombat/component"
)

func TestLoadStoreEmbedded(t *testing.T) {
	s, err := LoadStore("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	rifle, ok := s.Attack("rifle")
	if !ok {
		t.Fatalf("rifle missing")
	}
	if rifle.Mode != FireSingle || rifle.CooldownDuration() != time.Second {
		t.Fatalf("rifle = %+v", rifle)
	}
	if rifle.TargetMask() != component.TargetEnemy|component.TargetTrainingDummy {
		t.Fatalf("rifle mask = %b", rifle.TargetMask())
	}

	burst, ok := s.Attack("smg_burst")
	if !ok {
		t.Fatalf("smg_burst missing")
	}
	if burst.Volleys() != 3 || burst.ShotDelayDuration() != 100*time.Millisecond || burst.BurstPauseDuration() != time.Second {
		t.Fatalf("smg_burst = %+v", burst)
	}

	bullet, ok := s.Projectile("bullet")
	if !ok {
		t.Fatalf("bullet missing")
	}
	if bullet.BeforeCollision() != component.LayerEnvironment|component.LayerActors|component.LayerProjectiles {
		t.Fatalf("bullet before mask = %b", bullet.BeforeCollision())
	}
	bolt, _ := s.Projectile("bolt")
	if bolt.AfterCollision() != component.LayerEnvironment || bolt.LifetimeAfterHitDuration() != 3*time.Second {
		t.Fatalf("bolt = %+v", bolt)
	}

	attacks, projectiles := s.Names()
	if !slices.IsSorted(attacks) || !slices.Contains(attacks, "rifle") || !slices.Contains(attacks, "smg_burst") {
		t.Fatalf("attack names = %v", attacks)
	}
	if !slices.IsSorted(projectiles) || !slices.Contains(projectiles, "bolt") {
		t.Fatalf("projectile names = %v", projectiles)
	}
}

func TestCurveEvaluate(t *testing.T) {
	s, err := LoadStore("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cases := []struct {
		attack string
		x      float64
		want   float64
	}{
		{"rifle", 0.5, 0.5},
		{"rifle", 2, 1},
		{"smg_burst", 0.5, 0.25},
		{"shotgun", 0.25, 0.5},
		{"crossbow", 0.3, 0.3},
	}
	for _, c := range cases {
		m, ok := s.Attack(c.attack)
		if !ok {
			t.Fatalf("%s missing", c.attack)
		}
		got := m.SpreadCurve.Evaluate(c.x)
		if math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("%s curve(%v) = %v, want %v", c.attack, c.x, got, c.want)
		}
	}
}

func TestKeyedCurveInterpolates(t *testing.T) {
	c := Curve{Keys: [][2]float64{{1, 0.2}, {0, 1}, {0.5, 0.6}}}
	if err := c.bake(Loader{}); err != nil {
		t.Fatalf("bake: %v", err)
	}
	if got := c.Evaluate(0.25); math.Abs(got-0.8) > 1e-9 {
		t.Fatalf("curve(0.25) = %v, want 0.8", got)
	}
	if got := c.Evaluate(0.75); math.Abs(got-0.4) > 1e-9 {
		t.Fatalf("curve(0.75) = %v, want 0.4", got)
	}
}

func TestPutAttackRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		mold AttackMold
	}{
		{"no_name", AttackMold{FiringRadius: 1, Targets: []string{"enemy"}}},
		{"bad_mode", AttackMold{Name: "x", Mode: "auto", FiringRadius: 1, Targets: []string{"enemy"}}},
		{"burst_zero", AttackMold{Name: "x", Mode: FireBurst, FiringRadius: 1, Targets: []string{"enemy"}}},
		{"no_radius", AttackMold{Name: "x", Targets: []string{"enemy"}}},
		{"no_targets", AttackMold{Name: "x", FiringRadius: 1}},
		{"bad_target", AttackMold{Name: "x", FiringRadius: 1, Targets: []string{"pigeons"}}},
		{"bad_script", AttackMold{Name: "x", FiringRadius: 1, Targets: []string{"enemy"}, SpreadCurve: Curve{Script: "x +"}}},
	}
	s := NewStore("", nil)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := c.mold
			err := s.PutAttack(&m)
			if !errors.Is(err, ErrInvalidMold) {
				t.Fatalf("err = %v, want ErrInvalidMold", err)
			}
		})
	}
}

func TestPutProjectileDefaults(t *testing.T) {
	s := NewStore("", nil)
	m := &ProjectileMold{Name: "dart", Damage: 3}
	if err := s.PutProjectile(m); err != nil {
		t.Fatalf("put: %v", err)
	}
	if m.Impact != component.ImpactSharp || m.PoolSize != defaultPoolSize || m.MaxFlightDuration() != 5*time.Second {
		t.Fatalf("defaults not applied: %+v", m)
	}
	if err := s.PutProjectile(&ProjectileMold{Name: "bad", CollideWith: []string{"lava"}}); !errors.Is(err, ErrInvalidMold) {
		t.Fatalf("err = %v, want ErrInvalidMold", err)
	}
}

const overrideAttacks = `attacks:
  - name: rifle
    mode: single
    cooldown: 0.5
    firing_radius: 10
    projectile: bullet
    targets: [enemy]
`

func TestDiskOverrideAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, AttacksFile)
	if err := os.WriteFile(path, []byte(overrideAttacks), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := LoadStore(dir, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rifle, _ := s.Attack("rifle")
	if rifle.FiringRadius != 10 {
		t.Fatalf("override not applied: %+v", rifle)
	}
	if _, ok := s.Attack("shotgun"); ok {
		t.Fatalf("override file should replace embedded attacks")
	}

	updated := overrideAttacks + `  - name: pistol
    firing_radius: 8
    projectile: bullet
    targets: [enemy]
`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Reload(path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, ok := s.Attack("pistol"); !ok {
		t.Fatalf("pistol missing after reload")
	}

	if err := os.WriteFile(path, []byte("attacks: [{name: broken}]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Reload(path); !errors.Is(err, ErrInvalidMold) {
		t.Fatalf("reload err = %v, want ErrInvalidMold", err)
	}
	if _, ok := s.Attack("pistol"); !ok {
		t.Fatalf("failed reload must keep previous molds")
	}
}

func TestWatcherReportsMoldChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	target := filepath.Join(dir, AttacksFile)
	if err := os.WriteFile(target, []byte(overrideAttacks), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case got := <-w.Changes:
		if got != target {
			t.Fatalf("change = %q, want %q", got, target)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no change reported")
	}
}
