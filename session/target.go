package session

import (
	"github.com/milk9111/rangedcombat/common"
	"github.com/milk9111/rangedcombat/component"
	"github.com/milk9111/rangedcombat/physics"
)

// TargetSpec describes a shootable actor. Neutral targets are training
// dummies.
type TargetSpec struct {
	Name     string
	Faction  component.Faction
	Health   int
	Position common.Vec3
	Velocity common.Vec3
	Radius   float64
	Height   float64
	Mass     float64
}

// Target is an actor with health and a kinematic body.
type Target struct {
	Name    string
	Faction component.Faction
	Health  *component.Health
	Body    *physics.Body

	// DamageTaken sums every hit, including the killing one.
	DamageTaken int
}

func (s *Session) SpawnTarget(spec TargetSpec) *Target {
	if spec.Health <= 0 {
		spec.Health = 100
	}
	if spec.Radius <= 0 {
		spec.Radius = 0.5
	}
	if spec.Height <= 0 {
		spec.Height = 2
	}

	t := &Target{Name: spec.Name, Faction: spec.Faction, Health: component.NewHealth(spec.Health)}
	t.Health.Extent = common.V3(spec.Radius, spec.Height/2, spec.Radius)
	t.Body = s.space.AddActor(physics.ActorSpec{
		Position:   spec.Position,
		Velocity:   spec.Velocity,
		Radius:     spec.Radius,
		Height:     spec.Height,
		Mass:       spec.Mass,
		Layer:      spec.Faction.ActorLayer(),
		Damageable: t.Health,
	})
	t.Health.Body = t.Body
	t.Health.OnChange.Subscribe(func(c component.HealthChange) {
		if c.Delta < 0 {
			t.DamageTaken -= c.Delta
		}
	})
	t.Health.OnDeath.Subscribe(func(*component.Health) {
		t.Body.SetVelocity(common.Vec3{})
		s.log.Info("target down", "target", t.Name, "at", s.sched.Now())
	})

	s.targets = append(s.targets, t)
	return t
}

// Alive counts the targets still alive.
func (s *Session) Alive() int {
	n := 0
	for _, t := range s.targets {
		if t.Health.IsAlive() {
			n++
		}
	}
	return n
}
