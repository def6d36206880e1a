package bramble

import (
	"fmt"
	"io/fs"
	"strconv"

	"github.com/lafriks/go-tiled"
)

// LoadTiledMap builds a map node from one tile layer of a Tiled TMX file.
// Each non-empty cell is cloned from the template keyed by its global tile
// ID (tileset first GID + local ID) and placed at (column, row). Empty cells
// are skipped. A GID without a template aborts with an *UnknownTileError.
// Size is the TMX map size in tiles.
func (t *Tree) LoadTiledMap(fsys fs.FS, path, layerName string, templates map[uint32]NodeID) (NodeID, error) {
	levelMap, err := tiled.LoadFile(path, tiled.WithFileSystem(fsys))
	if err != nil {
		return None, fmt.Errorf("bramble: load TMX %s: %w", path, err)
	}

	layerIndex := -1
	for i := range levelMap.Layers {
		if levelMap.Layers[i].Name == layerName {
			layerIndex = i
			break
		}
	}
	if layerIndex < 0 {
		return None, fmt.Errorf("bramble: TMX %s has no tile layer %q", path, layerName)
	}
	tiles := levelMap.Layers[layerIndex].Tiles

	m := &Node{Name: path, Type: NodeTypeMap, Map: &MapInfo{
		Size: Vec2{float64(levelMap.Width), float64(levelMap.Height)},
	}}
	nodeDefaults(m)
	id := t.insert(m)

	for y := 0; y < levelMap.Height; y++ {
		for x := 0; x < levelMap.Width; x++ {
			i := y*levelMap.Width + x
			if i >= len(tiles) {
				continue
			}
			tile := tiles[i]
			if tile == nil || tile.IsNil() {
				continue
			}
			gid := tile.ID
			if tile.Tileset != nil {
				gid += tile.Tileset.FirstGID
			}
			tmpl, ok := templates[gid]
			if !ok {
				t.Remove(id)
				return None, &UnknownTileError{Key: strconv.FormatUint(uint64(gid), 10), Row: y, Column: x}
			}
			t.placeTile(id, tmpl, x, y)
		}
	}
	return id, nil
}
