package components

import (
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

// PhysicsData is the body state the physics step integrates. Velocity is in
// px/s.
type PhysicsData struct {
	Velocity dmath.Vec2
	Friction float64 // px/s^2 of decay, 0 keeps momentum
	MaxSpeed float64 // 0 is unbounded
}

var Physics = donburi.NewComponentType[PhysicsData]()
