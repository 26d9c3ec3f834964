package tags

import "github.com/yohamta/donburi"

var (
	Character = donburi.NewTag().SetName("Character")
	Platform  = donburi.NewTag().SetName("Platform")
	Solid     = donburi.NewTag().SetName("Solid")
	Ramp      = donburi.NewTag().SetName("Ramp")
)
