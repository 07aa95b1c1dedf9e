package components

import "github.com/yohamta/donburi"

// PooledData ties an instance to the pool template it was built from.
type PooledData struct {
	Template string
	InPool   bool
}

var Pooled = donburi.NewComponentType[PooledData]()
