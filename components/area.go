package components

import (
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/yohamta/donburi"
)

// ExplosionData damages each eligible target at most once while it lives.
type ExplosionData struct {
	Config  cfg.ExplosionConfig
	Elapsed float64
	Hit     map[donburi.Entity]struct{}
	Armed   bool
}

func (e *ExplosionData) Reset() {
	e.Config = cfg.ExplosionConfig{}
	e.Elapsed = 0
	if e.Hit == nil {
		e.Hit = make(map[donburi.Entity]struct{})
	}
	clear(e.Hit)
	e.Armed = false
}

// FieldData damages every eligible target inside it once per interval.
type FieldData struct {
	Config    cfg.FieldConfig
	Elapsed   float64
	SinceTick float64
	Armed     bool
}

func (f *FieldData) Reset() {
	*f = FieldData{}
}

var (
	Explosion = donburi.NewComponentType[ExplosionData]()
	Field     = donburi.NewComponentType[FieldData]()
)
