package components

import (
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/strategy"
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

// ProjectileData is the per instance state of a spawned projectile. Config
// is shared between instances and never written.
type ProjectileData struct {
	Config *cfg.ProjectileConfig

	Movement strategy.Movement
	Lifetime strategy.Lifetime

	Traveled     float64 // px, sum of frame to frame displacement
	HitCount     int
	MoveTime     float64 // seconds of movement since launch
	LastPosition dmath.Vec2

	// Executions per action kind, budgeted by ActionConfig.MaxExecutions
	ActionCounts map[cfg.ActionKind]int

	// Armed is set at launch. A disarmed projectile has no volume in the
	// space and is ignored by every system.
	Armed   bool
	Stopped bool

	// Volumes currently overlapping, used to report only new contacts
	Touching map[donburi.Entity]struct{}
}

// Direction returns the current unit heading.
func (p *ProjectileData) Direction() dmath.Vec2 {
	if p.Movement == nil {
		return dmath.Vec2{}
	}
	return p.Movement.Direction()
}

// Speed returns the current speed in px/s.
func (p *ProjectileData) Speed() float64 {
	if p.Movement == nil {
		return 0
	}
	return p.Movement.Speed()
}

// Reset clears all transient state while keeping the maps allocated.
func (p *ProjectileData) Reset() {
	p.Config = nil
	p.Movement = nil
	p.Lifetime = nil
	p.Traveled = 0
	p.HitCount = 0
	p.MoveTime = 0
	p.LastPosition = dmath.Vec2{}
	if p.ActionCounts == nil {
		p.ActionCounts = make(map[cfg.ActionKind]int)
	}
	clear(p.ActionCounts)
	if p.Touching == nil {
		p.Touching = make(map[donburi.Entity]struct{})
	}
	clear(p.Touching)
	p.Armed = false
	p.Stopped = false
}

var Projectile = donburi.NewComponentType[ProjectileData]()
