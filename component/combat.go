package component

// Faction identifies teams for friendly-fire checks.
type Faction int

const (
	FactionNeutral Faction = iota
	FactionFriendly
	FactionEnemy
)

func (f Faction) String() string {
	switch f {
	case FactionFriendly:
		return "friendly"
	case FactionEnemy:
		return "enemy"
	default:
		return "neutral"
	}
}

// ProjectileLayer returns the collision layer projectiles fired by f live on.
func (f Faction) ProjectileLayer() Layer {
	if f == FactionFriendly {
		return LayerFriendlyProjectile
	}
	return LayerEnemyProjectile
}

// ActorLayer returns the collision layer actors of f live on.
func (f Faction) ActorLayer() Layer {
	switch f {
	case FactionFriendly:
		return LayerFriendly
	case FactionEnemy:
		return LayerEnemy
	default:
		return LayerNeutral
	}
}

// TargetMask selects which kinds of actors a weapon may acquire.
type TargetMask uint8

const (
	TargetFriendly TargetMask = 1 << iota
	TargetEnemy
	TargetTrainingDummy

	targetAll = TargetFriendly | TargetEnemy | TargetTrainingDummy
)

// Valid reports whether m selects at least one kind and no unknown bits.
func (m TargetMask) Valid() bool {
	return m != 0 && m&^targetAll == 0
}

// Layers maps the mask onto the disjoint world collision layers.
func (m TargetMask) Layers() Layer {
	var l Layer
	if m&TargetFriendly != 0 {
		l |= LayerFriendly
	}
	if m&TargetEnemy != 0 {
		l |= LayerEnemy
	}
	if m&TargetTrainingDummy != 0 {
		l |= LayerNeutral
	}
	return l
}

// Layer is a collision category bit. Masks combine several layers.
type Layer uint32

const (
	LayerEnvironment Layer = 1 << iota
	LayerFriendly
	LayerEnemy
	LayerNeutral
	LayerFriendlyProjectile
	LayerEnemyProjectile
	LayerDebris

	LayerActors      = LayerFriendly | LayerEnemy | LayerNeutral
	LayerProjectiles = LayerFriendlyProjectile | LayerEnemyProjectile
	LayerAll         = LayerEnvironment | LayerActors | LayerProjectiles | LayerDebris
)

// Has reports whether any bit of o is set in l.
func (l Layer) Has(o Layer) bool {
	return l&o != 0
}

// ImpactKind selects what a projectile does after it strikes something.
type ImpactKind string

const (
	// ImpactSharp projectiles embed and freeze at the contact point.
	ImpactSharp ImpactKind = "sharp"
	// ImpactBlunt projectiles drop under gravity.
	ImpactBlunt ImpactKind = "blunt"
)
