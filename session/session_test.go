package session

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/rangedcombat/common"
	"github.com/milk9111/rangedcombat/component"
	"github.com/milk9111/rangedcombat/levels"
	"github.com/milk9111/rangedcombat/molds"
	"github.com/milk9111/rangedcombat/targeting"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	store, err := molds.LoadStore("", nil)
	if err != nil {
		t.Fatalf("load molds: %v", err)
	}
	s, err := New(DefaultConfig(), store, nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func (s *Session) rifle(t *testing.T) *Turret {
	t.Helper()
	turret, err := s.Arm(TurretSpec{
		Name:     "rifle",
		Attack:   "rifle",
		Faction:  component.FactionFriendly,
		Position: common.V3(0, 1, 0),
	})
	if err != nil {
		t.Fatalf("arm: %v", err)
	}
	return turret
}

func TestConfig(t *testing.T) {
	d := DefaultConfig()
	if d.AimInterval != 25*time.Millisecond || d.ScanCapacity != targeting.MaxCandidates || d.Step() != time.Second/60 {
		t.Fatalf("defaults = %+v", d)
	}

	path := filepath.Join(t.TempDir(), "session.yaml")
	src := "tick_rate: 30\naim_interval: 50ms\nscan_capacity: 99\nseed: 7\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TickRate != 30 || cfg.AimInterval != 50*time.Millisecond || cfg.Seed != 7 {
		t.Fatalf("config = %+v", cfg)
	}
	if cfg.ScanCapacity != targeting.MaxCandidates {
		t.Fatalf("scan capacity = %d, want it capped", cfg.ScanCapacity)
	}
	if cfg.Level() != slog.LevelDebug || cfg.Gravity != common.Gravity {
		t.Fatalf("level %v gravity %v", cfg.Level(), cfg.Gravity)
	}
	if (Config{LogLevel: "loud"}).Level() != slog.LevelInfo {
		t.Fatalf("bad level not defaulted")
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatalf("missing config loaded")
	}
}

func TestNewRequiresStore(t *testing.T) {
	if _, err := New(DefaultConfig(), nil, nil); !errors.Is(err, ErrNoStore) {
		t.Fatalf("err = %v", err)
	}
}

func TestArmUnknownMold(t *testing.T) {
	s := newSession(t)
	if _, err := s.Arm(TurretSpec{Attack: "trebuchet"}); !errors.Is(err, ErrNoMold) {
		t.Fatalf("err = %v, want ErrNoMold", err)
	}
	if len(s.Turrets()) != 0 {
		t.Fatalf("failed arm registered a turret")
	}
}

func TestRifleShootsStationaryEnemy(t *testing.T) {
	s := newSession(t)
	target := s.SpawnTarget(TargetSpec{Name: "grunt", Faction: component.FactionEnemy, Position: common.V3(0, 1, 10)})
	turret := s.rifle(t)
	turret.Start()

	s.Run(3500 * time.Millisecond)

	stats := turret.Pattern().Stats()
	if stats.Volleys != 4 {
		t.Fatalf("volleys = %d, want 4 with a 1s cooldown", stats.Volleys)
	}
	hits := s.Impacts().Hits
	if hits < 3 || hits > stats.Volleys {
		t.Fatalf("hits = %d of %d volleys", hits, stats.Volleys)
	}
	if got := target.Health.CurrentHealth(); got != 100-10*hits || target.DamageTaken != 10*hits {
		t.Fatalf("health = %d damage = %d after %d hits", got, target.DamageTaken, hits)
	}
}

func TestTurretStopsShootingDeadTarget(t *testing.T) {
	s := newSession(t)
	target := s.SpawnTarget(TargetSpec{Name: "weak", Faction: component.FactionEnemy, Health: 20, Position: common.V3(0, 1, 8), Velocity: common.V3(0.1, 0, 0)})
	turret := s.rifle(t)
	turret.Start()

	s.Run(6 * time.Second)

	if target.Health.IsAlive() {
		t.Fatalf("target survived: %s", s.Report())
	}
	if got := turret.Pattern().Stats().Volleys; got < 2 || got > 3 {
		t.Fatalf("volleys = %d, want the turret to stop once the target died", got)
	}
	if turret.Aim().State() != targeting.StateAcquiring || turret.Pattern().Looping() {
		t.Fatalf("turret still engaged")
	}
	if !target.Body.Velocity().IsZero() {
		t.Fatalf("dead target kept moving")
	}
	if s.Alive() != 0 {
		t.Fatalf("alive = %d", s.Alive())
	}
}

func TestTurretRotatesBeforeFiring(t *testing.T) {
	s := newSession(t)
	s.SpawnTarget(TargetSpec{Name: "flank", Faction: component.FactionEnemy, Position: common.V3(10, 1, 0)})
	turret := s.rifle(t)
	turret.Start()

	s.Run(400 * time.Millisecond)
	if got := turret.Pattern().Stats().Volleys; got != 0 {
		t.Fatalf("fired %d volleys before facing the target", got)
	}
	if a := common.Degrees(common.Angle(turret.FirePoint().Forward, common.Forward)); a < 50 || a > 85 {
		t.Fatalf("turned %.1f degrees after 0.4s", a)
	}

	s.Run(800 * time.Millisecond)
	if got := turret.Pattern().Stats().Volleys; got != 1 {
		t.Fatalf("volleys = %d after turning, want 1", got)
	}
}

func TestLoadLevelAndReport(t *testing.T) {
	s := newSession(t)
	lvl, err := levels.LoadLevelFromFS("range")
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	if err := s.Load(lvl); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(s.Turrets()) != 2 || len(s.Targets()) != 3 || len(s.Space().Walls()) != 1 {
		t.Fatalf("turrets %d targets %d walls %d", len(s.Turrets()), len(s.Targets()), len(s.Space().Walls()))
	}

	s.Run(8 * time.Second)

	r := s.Report()
	if r.Elapsed < 8*time.Second || r.Turrets[0].Stats.Volleys == 0 || r.Impacts.Hits == 0 {
		t.Fatalf("nothing happened: %s", r)
	}
	out := r.String()
	for _, want := range []string{"north_rifle", "east_smg", "grunt", "dummy"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report misses %q:\n%s", want, out)
		}
	}
}

func TestLoadRejectsUnknownAttack(t *testing.T) {
	s := newSession(t)
	lvl := &levels.Level{Name: "bad", Turrets: []levels.Turret{{Name: "x", Attack: "ghost"}}}
	if err := s.Load(lvl); !errors.Is(err, ErrNoMold) {
		t.Fatalf("err = %v, want ErrNoMold", err)
	}
	if err := s.Load(nil); err == nil {
		t.Fatalf("nil level loaded")
	}
}

func TestRefreshSwapsMolds(t *testing.T) {
	s := newSession(t)
	turret := s.rifle(t)
	before := turret.Pattern().Mold()

	faster := *before
	faster.Cooldown = 0.2
	if err := s.Store().PutAttack(&faster); err != nil {
		t.Fatalf("put: %v", err)
	}
	s.Refresh()
	if turret.Pattern().Mold().Cooldown != 0.2 {
		t.Fatalf("turret kept the old mold")
	}
}

func TestTurretDiesAndStops(t *testing.T) {
	s := newSession(t)
	turret, err := s.Arm(TurretSpec{Name: "post", Attack: "rifle", Faction: component.FactionFriendly, Position: common.V3(0, 1, 0), Health: 30})
	if err != nil {
		t.Fatalf("arm: %v", err)
	}
	s.SpawnTarget(TargetSpec{Name: "grunt", Faction: component.FactionEnemy, Position: common.V3(0, 1, 10)})
	turret.Start()
	s.Run(100 * time.Millisecond)
	if turret.Aim().State() != targeting.StateTracking {
		t.Fatalf("aim = %v", turret.Aim().State())
	}

	turret.Health().ChangeHealthBy(-30)
	if turret.Aim().State() != targeting.StateStopped {
		t.Fatalf("dead turret still aiming")
	}
	turret.Start()
	if turret.Aim().State() != targeting.StateStopped {
		t.Fatalf("dead turret restarted")
	}
}

func TestCloseReleasesEverything(t *testing.T) {
	s := newSession(t)
	lvl, _ := levels.LoadLevelFromFS("skirmish")
	if err := s.Load(lvl); err != nil {
		t.Fatalf("load: %v", err)
	}
	s.Run(2 * time.Second)
	s.Close()
	if len(s.Turrets()) != 0 || len(s.Targets()) != 0 {
		t.Fatalf("close left turrets or targets")
	}
	s.Run(10 * time.Second)
	if n := s.Scheduler().Len(); n != 0 {
		t.Fatalf("%d tasks alive after close", n)
	}
	if n := len(s.Pool().Active()); n != 0 {
		t.Fatalf("%d projectiles still out", n)
	}
}
