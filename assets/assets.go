// Package assets embeds the bundled levels and controller scripts.
package assets

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/automoto/slide2d/scripting"
	"github.com/automoto/slide2d/shared/leveldata"
)

const (
	LevelsDir  = "levels"
	ScriptsDir = "scripts"
)

var (
	//go:embed levels scripts
	assetFS embed.FS
)

// FS returns the embedded files.
func FS() fs.FS { return assetFS }

// LoadLevels loads every bundled level, keyed by name, and the sorted
// names.
func LoadLevels() (map[string]*leveldata.CollisionData, []string, error) {
	return leveldata.LoadAllLevels(assetFS, LevelsDir)
}

// LoadScript compiles a bundled controller script by name, without the
// .tengo extension.
func LoadScript(name string) (*scripting.Controller, error) {
	path := ScriptsDir + "/" + name + ".tengo"
	src, err := assetFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: script %s: %w", name, err)
	}
	return scripting.New(path, src)
}
