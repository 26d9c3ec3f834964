package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// LoadCollisionData parses a TMX file from fsys.
func LoadCollisionData(fsys fs.FS, tmxPath string) (*CollisionData, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("leveldata: load TMX %s: %w", tmxPath, err)
	}

	data := &CollisionData{
		MapWidth:  levelMap.Width * levelMap.TileWidth,
		MapHeight: levelMap.Height * levelMap.TileHeight,
	}

	for _, layer := range levelMap.Layers {
		if layer.Name != SolidLayer {
			continue
		}
		data.SolidRects = solidRects(levelMap, layer)
		break
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case SpawnGroup:
			for _, o := range og.Objects {
				data.SpawnPoints = append(data.SpawnPoints, SpawnPoint{
					X:     o.X,
					Y:     o.Y,
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
		case PlatformsGroup:
			for _, o := range og.Objects {
				p := Platform{
					X:        o.X,
					Y:        o.Y,
					W:        o.Width,
					H:        o.Height,
					MoveX:    o.Properties.GetFloat("moveX"),
					MoveY:    o.Properties.GetFloat("moveY"),
					Duration: o.Properties.GetFloat("duration"),
				}
				if p.Duration <= 0 {
					p.Duration = DefaultPlatformDuration
				}
				if p.W <= 0 || p.H <= 0 {
					return nil, fmt.Errorf("leveldata: %s: platform %d has no size", tmxPath, o.ID)
				}
				data.Platforms = append(data.Platforms, p)
			}
		}
	}

	// Left to right keeps spawn assignment stable.
	sort.SliceStable(data.SpawnPoints, func(i, j int) bool {
		return data.SpawnPoints[i].X < data.SpawnPoints[j].X
	})

	return data, nil
}

func solidRects(levelMap *tiled.Map, layer *tiled.Layer) []SolidRect {
	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)

	var rects []SolidRect
	for y := 0; y < levelMap.Height; y++ {
		run := -1
		flush := func(end int) {
			if run < 0 {
				return
			}
			rects = append(rects, SolidRect{
				X: float64(run) * tileW,
				Y: float64(y) * tileH,
				W: float64(end-run) * tileW,
				H: tileH,
			})
			run = -1
		}

		for x := 0; x < levelMap.Width; x++ {
			tile := layer.Tiles[y*levelMap.Width+x]
			if tile.IsNil() {
				flush(x)
				continue
			}

			var slopeType string
			if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
				slopeType = tilesetTile.Properties.GetString("slope")
			}
			if slopeType == "" {
				if run < 0 {
					run = x
				}
				continue
			}

			flush(x)
			rects = append(rects, SolidRect{
				X:         float64(x) * tileW,
				Y:         float64(y) * tileH,
				W:         tileW,
				H:         tileH,
				SlopeType: slopeType,
			})
		}
		flush(levelMap.Width)
	}
	return rects
}

// LoadAllLevels loads every .tmx file in levelsDir, keyed by file stem, and
// returns the sorted stems.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*CollisionData, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("leveldata: glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("leveldata: no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*CollisionData, len(matches))
	names := make([]string, 0, len(matches))
	for _, path := range matches {
		data, err := LoadCollisionData(fsys, path)
		if err != nil {
			return nil, nil, err
		}
		stem := strings.TrimSuffix(filepath.Base(path), ".tmx")
		levels[stem] = data
		names = append(names, stem)
	}

	sort.Strings(names)
	return levels, names, nil
}
