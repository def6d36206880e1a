// Package bramble is a small 2D platformer engine for [Ebitengine].
//
// A scene is a [Tree] of nodes addressed by [NodeID] handles. Nodes carry a
// local transform (position, depth, scale, rotation) and an optional payload:
// a [Sprite] cell to draw, a [Rigidbody] with a collision shape, a [Player]
// controller or a grid [MapInfo]. World transforms compose parent to child.
// The world is Y-up; the [Camera] flips it onto the screen.
//
// # Quick start
//
//	atlas, err := bramble.LoadAtlas(os.DirFS("res"), "TileMap.png", 32)
//	// ...
//	engine := bramble.NewEngine(bramble.NewSpriteRenderer(atlas), bramble.NewKeyboardInput())
//	t := engine.Tree()
//	player := t.NewPlayer("player", bramble.DefaultPlayerConfig())
//	t.AddChild(t.Root(), player)
//	engine.Camera().Follow(player, 0, 0, 1)
//	bramble.Run(engine, bramble.RunConfig{Title: "Game", Width: 640, Height: 480})
//
// # Frame order
//
// Each frame [Engine.Step] rebuilds overlap sets, runs the update traversal
// (player input and gravity, integration, OnUpdate hooks, children), refreshes
// world transforms, pushes solid bodies apart and moves the camera. Drawing
// submits every visible sprite to the renderer, which sorts by world depth.
//
// # Physics
//
// Bodies are circles or axis-aligned rectangles centered on their node.
// Overlap is inclusive: shapes that only touch overlap. Kinematic bodies
// never move on their own; drive them with [TweenPosition] or [PingPong].
// Triggers report overlaps but never block.
//
// # Maps
//
// [Tree.NewMap] builds a grid from text, one rune per cell, by cloning a
// template node per rune. [Tree.LoadTiledMap] does the same for a layer of a
// Tiled TMX file, keyed by global tile ID.
//
// Overlap changes can be forwarded to an ECS world through the Donburi
// adapter in bramble/ecs.
//
// [Ebitengine]: https://ebitengine.org
package bramble
