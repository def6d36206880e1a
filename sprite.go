package bramble

import (
	"fmt"
	"image"
	_ "image/png" // atlas pages are PNG
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
)

// Sprite references one square cell of a sprite atlas, counted from the
// atlas' top-left corner. It is a value type stored directly on Node.
type Sprite struct {
	Column, Row int
}

// Atlas is a sprite sheet split into square cells of CellSize pixels.
type Atlas struct {
	Image    *ebiten.Image
	CellSize int
}

// NewAtlas wraps an already-loaded image.
func NewAtlas(img *ebiten.Image, cellSize int) *Atlas {
	return &Atlas{Image: img, CellSize: cellSize}
}

// LoadAtlas decodes an atlas image from fsys.
func LoadAtlas(fsys fs.FS, path string, cellSize int) (*Atlas, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("bramble: atlas cell size must be positive, got %d", cellSize)
	}
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bramble: failed to open atlas %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("bramble: failed to decode atlas %s: %w", path, err)
	}
	return NewAtlas(ebiten.NewImageFromImage(img), cellSize), nil
}

// cellRect returns the pixel rectangle of s within the atlas.
func (a *Atlas) cellRect(s Sprite) image.Rectangle {
	x := s.Column * a.CellSize
	y := s.Row * a.CellSize
	return image.Rect(x, y, x+a.CellSize, y+a.CellSize)
}

// Cell returns the sub-image for s, or nil if s lies outside the atlas.
func (a *Atlas) Cell(s Sprite) *ebiten.Image {
	r := a.cellRect(s)
	if s.Column < 0 || s.Row < 0 || !r.In(a.Image.Bounds()) {
		return nil
	}
	return a.Image.SubImage(r).(*ebiten.Image)
}
