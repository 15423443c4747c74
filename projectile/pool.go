// Package projectile implements pooled projectiles: launch, first-contact
// resolution with at-most-once damage, lingering after impact and return to
// the pool.
package projectile

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/milk9111/rangedcombat/component"
	"github.com/milk9111/rangedcombat/molds"
	"github.com/milk9111/rangedcombat/physics"
	"github.com/milk9111/rangedcombat/sched"
)

// Pool owns every projectile instance, keyed by projectile mold name. Each
// kind holds at most its mold's pool_size instances.
type Pool struct {
	space *physics.Space
	sched *sched.Scheduler
	molds *molds.Store
	log   *slog.Logger

	free      map[string][]*Projectile
	allocated map[string]int
	active    []*Projectile

	// OnImpact sees every impact of every projectile the pool hands out.
	OnImpact component.Emitter[Impact]
}

func NewPool(space *physics.Space, scheduler *sched.Scheduler, store *molds.Store, logger *slog.Logger) *Pool {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{
		space:     space,
		sched:     scheduler,
		molds:     store,
		log:       logger.With("component", "projectile"),
		free:      make(map[string][]*Projectile),
		allocated: make(map[string]int),
	}
}

// Acquire hands out an idle projectile of kind. It fails when the kind has
// no mold or its pool is exhausted.
func (p *Pool) Acquire(kind string) (*Projectile, bool) {
	if p == nil {
		return nil, false
	}
	mold, ok := p.molds.Projectile(kind)
	if !ok {
		p.log.Warn("unknown projectile mold", "kind", kind)
		return nil, false
	}

	var pr *Projectile
	if free := p.free[kind]; len(free) > 0 {
		pr = free[len(free)-1]
		p.free[kind] = free[:len(free)-1]
	} else {
		if p.allocated[kind] >= mold.PoolSize {
			p.log.Warn("projectile pool exhausted", "kind", kind, "capacity", mold.PoolSize)
			return nil, false
		}
		pr = &Projectile{
			kind:   kind,
			pool:   p,
			ignore: make(map[component.Shape]struct{}),
		}
		pr.body = p.space.NewProjectileBody(mold.Radius, pr)
		p.allocated[kind]++
	}

	pr.id = uuid.New()
	pr.mold = mold
	pr.state = StateAcquired
	p.active = append(p.active, pr)
	return pr, true
}

// Release resets pr and returns it to its pool. Releasing an idle or
// foreign projectile does nothing.
func (p *Pool) Release(pr *Projectile) {
	if p == nil || pr == nil || pr.pool != p || pr.state == StateIdle {
		return
	}
	pr.reset()
	for i, a := range p.active {
		if a == pr {
			p.active = append(p.active[:i], p.active[i+1:]...)
			break
		}
	}
	p.free[pr.kind] = append(p.free[pr.kind], pr)
}

// Active returns the projectiles currently out of the pool. The slice is
// owned by the pool and only valid until the next Acquire or Release.
func (p *Pool) Active() []*Projectile {
	if p == nil {
		return nil
	}
	return p.active
}

// Allocated returns how many instances of kind exist.
func (p *Pool) Allocated(kind string) int {
	return p.allocated[kind]
}

// Idle returns how many instances of kind are waiting in the pool.
func (p *Pool) Idle(kind string) int {
	return len(p.free[kind])
}
