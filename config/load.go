package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/viper"
)

// Load reads a JSON, YAML or TOML file and overlays its sim, combat and
// pool sections on the defaults. Keys missing from the file keep their
// default values.
func Load(path string) error {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	sim, combat, pool := Sim, Combat, Pool
	if err := v.UnmarshalKey("sim", &sim); err != nil {
		return fmt.Errorf("decode sim: %w", err)
	}
	if err := v.UnmarshalKey("combat", &combat); err != nil {
		return fmt.Errorf("decode combat: %w", err)
	}
	if v.IsSet("pool") {
		if err := v.UnmarshalKey("pool", &pool); err != nil {
			return fmt.Errorf("decode pool: %w", err)
		}
	}

	if sim.TickRate <= 0 {
		return fmt.Errorf("sim.tickRate must be positive, got %d", sim.TickRate)
	}
	if sim.CellSize <= 0 {
		return fmt.Errorf("sim.cellSize must be positive, got %d", sim.CellSize)
	}

	Sim, Combat, Pool = sim, combat, pool
	return nil
}

// ValidateArchetypes validates every registered projectile archetype.
func ValidateArchetypes() error {
	names := make([]string, 0, len(Projectiles))
	for name := range Projectiles {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := Projectiles[name].Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
