// Package leveldata parses Tiled levels into plain collision data. It has no
// dependency on the physics backends or the ECS.
package leveldata

// Layer and object group names read from .tmx files.
const (
	SolidLayer     = "wg-tiles"
	SpawnGroup     = "PlayerSpawn"
	PlatformsGroup = "Platforms"
)

// DefaultPlatformDuration is the one-way travel time of a moving platform
// that does not set one, in seconds.
const DefaultPlatformDuration = 2.0

// CollisionData holds everything the simulation needs from a level.
type CollisionData struct {
	SolidRects  []SolidRect
	Platforms   []Platform
	SpawnPoints []SpawnPoint
	MapWidth    int
	MapHeight   int
}

// SolidRect is a static collision box. Runs of plain tiles in a row are
// merged into one rect; ramp tiles stay single.
type SolidRect struct {
	X, Y, W, H float64
	SlopeType  string // "", "45_up_right", "45_up_left"
}

// Platform is a box that travels from its position by (MoveX, MoveY) and
// back, taking Duration seconds each way.
type Platform struct {
	X, Y, W, H   float64
	MoveX, MoveY float64
	Duration     float64
}

// SpawnPoint is where a character starts.
type SpawnPoint struct {
	X, Y  float64
	Index int
}
