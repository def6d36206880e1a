package bramble

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"strings"
)

// MapInfo is the payload of a map node.
type MapInfo struct {
	// Size is (widest row, row count) in grid units.
	Size Vec2
}

// UnknownTileError reports a grid cell with no template.
type UnknownTileError struct {
	Key         string // quoted rune for text maps, decimal GID for Tiled maps
	Row, Column int
}

func (e *UnknownTileError) Error() string {
	return fmt.Sprintf("bramble: no template for tile %s at row %d, column %d", e.Key, e.Row, e.Column)
}

// NewMap reads a text grid from r (one row per line, one rune per cell) and
// returns a detached map node whose children are clones of templates placed
// at (column, row). Ragged rows are kept as-is. The first rune without a
// template aborts construction with an *UnknownTileError and no map is
// left in the tree.
func (t *Tree) NewMap(name string, r io.Reader, templates map[rune]NodeID) (NodeID, error) {
	m := &Node{Name: name, Type: NodeTypeMap, Map: &MapInfo{}}
	nodeDefaults(m)
	id := t.insert(m)

	var width, row int
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		col := 0
		for _, ch := range line {
			tmpl, ok := templates[ch]
			if !ok {
				t.Remove(id)
				return None, &UnknownTileError{Key: fmt.Sprintf("%q", ch), Row: row, Column: col}
			}
			t.placeTile(id, tmpl, col, row)
			col++
		}
		width = max(width, col)
		row++
	}
	if err := sc.Err(); err != nil {
		t.Remove(id)
		return None, fmt.Errorf("bramble: failed to read map %q: %w", name, err)
	}

	m.Map.Size = Vec2{float64(width), float64(row)}
	return id, nil
}

// LoadMap reads a text grid file from fsys. See NewMap.
func (t *Tree) LoadMap(fsys fs.FS, path string, templates map[rune]NodeID) (NodeID, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return None, fmt.Errorf("bramble: failed to open map %s: %w", path, err)
	}
	defer f.Close()
	return t.NewMap(path, f, templates)
}

// placeTile clones tmpl under the map node at grid cell (col, row), depth 0.
func (t *Tree) placeTile(mapID, tmpl NodeID, col, row int) {
	tile := t.Clone(tmpl)
	n := t.mustNode(tile, "placeTile")
	n.SetPosition(float64(col), float64(row))
	n.SetZ(0)
	t.AddChild(mapID, tile)
}
