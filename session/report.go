package session

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/milk9111/rangedcombat/common"
	"github.com/milk9111/rangedcombat/weapon"
)

// Report is a snapshot of a session for logs, the viewer HUD and the
// clipboard.
type Report struct {
	Elapsed     time.Duration
	Ticks       uint64
	Projectiles int
	Impacts     ImpactTally
	Turrets     []TurretReport
	Targets     []TargetReport
}

type TurretReport struct {
	Name    string
	Attack  string
	State   string
	Aim     string
	Forward common.Vec3
	Stats   weapon.Stats
}

type TargetReport struct {
	Name     string
	Health   int
	Max      int
	Alive    bool
	Position common.Vec3
	Damage   int
}

func (s *Session) Report() Report {
	r := Report{
		Elapsed:     s.sched.Now(),
		Ticks:       s.sched.Ticks(),
		Projectiles: len(s.pool.Active()),
		Impacts:     s.impacts,
	}
	for _, t := range s.turrets {
		r.Turrets = append(r.Turrets, TurretReport{
			Name:    t.name,
			Attack:  t.attack,
			State:   t.pattern.State().String(),
			Aim:     t.aim.State().String(),
			Forward: t.pose.Forward,
			Stats:   t.pattern.Stats(),
		})
	}
	for _, t := range s.targets {
		r.Targets = append(r.Targets, TargetReport{
			Name:     t.Name,
			Health:   t.Health.CurrentHealth(),
			Max:      t.Health.Max,
			Alive:    t.Health.IsAlive(),
			Position: t.Body.Position(),
			Damage:   t.DamageTaken,
		})
	}
	return r
}

func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "t=%v ticks=%d projectiles=%d hits=%d misses=%d damage=%d\n",
		r.Elapsed, r.Ticks, r.Projectiles, r.Impacts.Hits, r.Impacts.Misses, r.Impacts.Damage)

	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "turret\tattack\tweapon\taim\tvolleys\tshots\tskipped\taborted")
	for _, t := range r.Turrets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			t.Name, t.Attack, t.State, t.Aim, t.Stats.Volleys, t.Stats.Shots, t.Stats.Skipped, t.Stats.Aborted)
	}
	fmt.Fprintln(w, "target\thealth\tdamage\tposition")
	for _, t := range r.Targets {
		health := fmt.Sprintf("%d/%d", t.Health, t.Max)
		if !t.Alive {
			health += " dead"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%v\n", t.Name, health, t.Damage, t.Position)
	}
	_ = w.Flush()
	return b.String()
}
