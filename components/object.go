package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

type ObjectData struct {
	*resolv.Object
}

var Object = donburi.NewComponentType[ObjectData]()

// Space is the collision space every volume is registered in.
var Space = donburi.NewComponentType[resolv.Space]()

// AddToSpace registers obj in the world's collision space if there is one.
func AddToSpace(w donburi.World, obj *resolv.Object) {
	if entry, ok := Space.First(w); ok {
		Space.Get(entry).Add(obj)
	}
}

// CenterOn moves the volume so its center sits at p.
func (o *ObjectData) CenterOn(x, y float64) {
	if o == nil || o.Object == nil {
		return
	}
	o.X = x - o.W/2
	o.Y = y - o.H/2
	o.Update()
}

// Detach removes the volume from its space, if it is in one.
func (o *ObjectData) Detach() {
	if o == nil || o.Object == nil || o.Space == nil {
		return
	}
	o.Space.Remove(o.Object)
}
