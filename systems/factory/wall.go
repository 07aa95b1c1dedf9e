package factory

import (
	"github.com/automoto/doomerang-combat/archetypes"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateWall(ecs *ecs.ECS, x, y, w, h float64) *donburi.Entry {
	wall := archetypes.Wall.Spawn(ecs)

	// Create collision object
	obj := resolv.NewObject(x, y, w, h, tags.ResolvSolid)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	obj.Data = wall // Link for O(1) lookup

	components.Object.SetValue(wall, components.ObjectData{Object: obj})
	components.Layer.SetValue(wall, components.LayerData{Layer: cfg.LayerObstacle})

	components.AddToSpace(ecs.World, obj)

	return wall
}

// CreateArenaBounds walls in the whole space with walls of the given
// thickness.
func CreateArenaBounds(ecs *ecs.ECS, width, height, thickness float64) []*donburi.Entry {
	return []*donburi.Entry{
		CreateWall(ecs, 0, 0, width, thickness),
		CreateWall(ecs, 0, height-thickness, width, thickness),
		CreateWall(ecs, 0, thickness, thickness, height-2*thickness),
		CreateWall(ecs, width-thickness, thickness, thickness, height-2*thickness),
	}
}
