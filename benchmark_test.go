package bramble

import (
	"strings"
	"testing"
)

// setupBenchTree builds a rows x cols brick map with a player on top.
func setupBenchTree(b *testing.B, rows, cols int) *Engine {
	b.Helper()
	e := NewEngine(nil, nil)
	tr := e.Tree()
	brick := tr.NewRigidbody("brick", NewRectangleShape(1, 1))
	tr.Body(brick).IsKinematic = true
	tr.AddChild(brick, tr.NewSprite("brick_sprite", Sprite{Column: 1, Row: 1}))

	line := strings.Repeat("#", cols)
	grid := strings.Repeat(line+"\n", rows)
	m, err := tr.NewMap("bench", strings.NewReader(grid), map[rune]NodeID{'#': brick})
	if err != nil {
		b.Fatal(err)
	}
	tr.AddChild(tr.Root(), m)

	p := tr.NewPlayer("player", DefaultPlayerConfig())
	tr.Node(p).SetPosition(float64(cols)/2, float64(rows)+1)
	tr.AddChild(tr.Root(), p)
	return e
}

func BenchmarkStep_100Bricks(b *testing.B) {
	e := setupBenchTree(b, 5, 20)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		e.Step(float64(i)*testDelta, testDelta)
	}
}

func BenchmarkDetectOverlaps_400Bricks(b *testing.B) {
	e := setupBenchTree(b, 10, 40)
	tr := e.Tree()
	tr.CalculateWorldTransform()
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		tr.detectOverlaps()
	}
}

func BenchmarkDraw_400Bricks(b *testing.B) {
	e := setupBenchTree(b, 10, 40)
	tr := e.Tree()
	tr.CalculateWorldTransform()
	r := NewSpriteRenderer(nil)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		tr.Draw(r)
		r.Flush(nil, identityTransform)
	}
}
