package components

import (
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

// TransformData holds the center position and rotation in radians. The
// collision volume is kept in sync with it after every move.
type TransformData struct {
	Position dmath.Vec2
	Rotation float64
}

var Transform = donburi.NewComponentType[TransformData]()
