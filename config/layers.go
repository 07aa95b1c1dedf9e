package config

// Layer is a collision category. Each combatant, wall and transient volume
// belongs to exactly one.
type Layer uint8

const (
	LayerDefault Layer = iota
	LayerPlayer
	LayerEnemy
	LayerObstacle
	LayerProjectile
	LayerEffect
)

// LayerMask is a bit set of layers.
type LayerMask uint32

// MaskAll matches every layer.
const MaskAll = ^LayerMask(0)

// Mask builds a mask containing the given layers.
func Mask(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= 1 << l
	}
	return m
}

// Has reports whether l is set in m.
func (m LayerMask) Has(l Layer) bool {
	return m&(1<<l) != 0
}
