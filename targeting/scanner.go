// Package targeting finds and tracks targets for a weapon: a bounded
// proximity scan with line of sight, the gate table consulted before each
// volley, and the periodic aiming loop that ties them to an attack pattern.
package targeting

import (
	"log/slog"

	"github.com/milk9111/rangedcombat/common"
	"github.com/milk9111/rangedcombat/component"
)

// MaxCandidates bounds how many colliders one scan inspects.
const MaxCandidates = 20

// AimContext is rebuilt from the muzzle every tick.
type AimContext struct {
	Origin       common.Pose
	TargetMask   component.TargetMask
	TargetOffset common.Vec3
	FiringRadius float64
}

// Scanner picks the first valid target around an origin. It owns its
// candidate buffer, so a scan does not allocate.
type Scanner struct {
	prox   component.Proximity
	occ    component.Occlusion
	buf    []component.Shape
	log    *slog.Logger
	warned map[string]bool
}

// NewScanner returns a scanner using buf for candidates. A nil or empty buf
// gets a MaxCandidates buffer; a longer one is truncated to MaxCandidates.
func NewScanner(prox component.Proximity, occ component.Occlusion, buf []component.Shape, logger *slog.Logger) *Scanner {
	if len(buf) == 0 {
		buf = make([]component.Shape, MaxCandidates)
	}
	if len(buf) > MaxCandidates {
		buf = buf[:MaxCandidates]
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		prox: prox,
		occ:  occ,
		buf:  buf,
		log:  logger.With("component", "scanner"),
	}
}

// Scan returns the first candidate, in proximity query order, that has a
// damageable, is alive and standing, lies within the firing radius and can
// be seen from the origin.
func (s *Scanner) Scan(ctx AimContext) (component.Damageable, bool) {
	if s.prox == nil || s.occ == nil {
		s.warnOnce("missing capability", "scanner needs proximity and occlusion")
		return nil, false
	}
	if !ctx.TargetMask.Valid() {
		s.warnOnce("bad mask", "invalid target mask", "mask", ctx.TargetMask)
		return nil, false
	}
	if ctx.FiringRadius <= 0 {
		s.warnOnce("bad radius", "firing radius must be positive", "radius", ctx.FiringRadius)
		return nil, false
	}

	origin := ctx.Origin.Position
	n := s.prox.OverlapSphere(origin, ctx.FiringRadius, ctx.TargetMask.Layers(), s.buf)
	n = max(0, min(n, len(s.buf)))
	defer clear(s.buf[:n])

	for _, shape := range s.buf[:n] {
		if shape == nil {
			continue
		}
		d := shape.Damageable()
		if d == nil || !d.IsAlive() || !d.IsStanding() {
			continue
		}
		pos := component.PositionOf(d)
		if pos.Distance(origin) > ctx.FiringRadius {
			continue
		}
		if !s.Visible(origin, pos, ctx.TargetOffset) {
			continue
		}
		return d, true
	}
	return nil, false
}

// Visible reports whether nothing on the environment layer blocks the line
// from origin to target+offset.
func (s *Scanner) Visible(origin, target, offset common.Vec3) bool {
	if s.occ == nil {
		return false
	}
	dir := target.Add(offset).Sub(origin)
	dist := dir.Len()
	if dist < 1e-9 {
		return true
	}
	return !s.occ.Raycast(origin, dir, dist, component.LayerEnvironment)
}

// Capacity returns the size of the candidate buffer.
func (s *Scanner) Capacity() int {
	return len(s.buf)
}

func (s *Scanner) warnOnce(key, msg string, args ...any) {
	if s.warned[key] {
		return
	}
	if s.warned == nil {
		s.warned = make(map[string]bool)
	}
	s.warned[key] = true
	s.log.Warn(msg, args...)
}
