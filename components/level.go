package components

import (
	"github.com/automoto/slide2d/shared/leveldata"
	"github.com/yohamta/donburi"
)

type LevelData struct {
	Name string
	*leveldata.CollisionData
}

var Level = donburi.NewComponentType[LevelData]()
