package components

import (
	"github.com/automoto/slide2d/motion"
	"github.com/automoto/slide2d/physics"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

// SpaceData is the singleton holding the physics space of a world.
type SpaceData struct {
	Space    physics.Space
	Resolver *motion.Resolver
	Log      logrus.FieldLogger

	// Delta is the fixed step of the current tick, in seconds.
	Delta float64
	Tick  uint64
}

var Space = donburi.NewComponentType[SpaceData]()
