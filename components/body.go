package components

import (
	"github.com/automoto/slide2d/motion"
	"github.com/yohamta/donburi"
)

type BodyData struct {
	*motion.Character
}

var Body = donburi.NewComponentType[BodyData]()
