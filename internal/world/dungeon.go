package world

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeoncaster/internal/telemetry"
)

const (
	// DefaultSize is the side length of generated levels.
	DefaultSize = 32

	// BSP parameters
	minRoomSize = 3
	maxRoomSize = 8
	minLeafSize = 6
)

// Generator carves a random level of rooms, corridors and doors using
// binary space partitioning.
type Generator struct {
	Size  int
	Scale float64
	rng   *rand.Rand

	cells []Cell
	rooms []Room
}

// NewGenerator creates a generator. Passing the same rng seed yields the same level.
func NewGenerator(size int, scale float64, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		Size:  size,
		Scale: scale,
		rng:   rng,
	}
}

// Level is a generated grid plus the rooms it was carved from.
type Level struct {
	Grid  *Grid
	Rooms []Room
}

// Spawn returns the world coordinates of the first room's center.
func (l *Level) Spawn() (x, y float64) {
	scale := l.Grid.Scale()
	if len(l.Rooms) == 0 {
		half := l.Grid.Extent() / 2
		return half, half
	}
	cx, cy := l.Rooms[0].Center()
	return (float64(cx) + 0.5) * scale, (float64(cy) + 0.5) * scale
}

// Generate builds a new level. The outer ring is always solid wall.
func (gen *Generator) Generate(ctx context.Context) (*Level, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	if gen.Size < minLeafSize {
		return nil, fmt.Errorf("generate: size %d below minimum %d", gen.Size, minLeafSize)
	}

	gen.cells = make([]Cell, gen.Size*gen.Size)
	for i := range gen.cells {
		gen.cells[i] = CellWall
	}
	gen.rooms = gen.rooms[:0]

	root := &bspNode{
		x:      1,
		y:      1,
		width:  gen.Size - 2,
		height: gen.Size - 2,
	}
	gen.splitNode(root)
	gen.createRooms(root)
	gen.connectRooms(root)
	doors := gen.placeDoors()

	grid, err := NewGrid(gen.Size, gen.Scale, CellDoor, gen.cells)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	span.SetAttributes(
		attribute.Int("dungeon.size", gen.Size),
		attribute.Int("dungeon.room_count", len(gen.rooms)),
		attribute.Int("dungeon.door_count", doors),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)

	rooms := make([]Room, len(gen.rooms))
	copy(rooms, gen.rooms)
	return &Level{Grid: grid, Rooms: rooms}, nil
}

func (gen *Generator) at(x, y int) Cell {
	if x < 0 || x >= gen.Size || y < 0 || y >= gen.Size {
		return CellWall
	}
	return gen.cells[y*gen.Size+x]
}

func (gen *Generator) set(x, y int, c Cell) {
	if x > 0 && x < gen.Size-1 && y > 0 && y < gen.Size-1 {
		gen.cells[y*gen.Size+x] = c
	}
}

// bspNode represents a node in the BSP tree.
type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
	room          *Room
}

// isLeaf returns true if this node has no children.
func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// splitNode recursively splits a BSP node.
func (gen *Generator) splitNode(node *bspNode) {
	if node.width < minLeafSize*2 && node.height < minLeafSize*2 {
		return
	}

	var splitHorizontally bool
	switch {
	case node.width > node.height && node.width >= minLeafSize*2:
		splitHorizontally = false
	case node.height >= minLeafSize*2:
		splitHorizontally = true
	case node.width >= minLeafSize*2:
		splitHorizontally = false
	default:
		return
	}

	extent := node.width
	if splitHorizontally {
		extent = node.height
	}
	lo, hi := minLeafSize, extent-minLeafSize
	if hi <= lo {
		return
	}
	splitPos := lo + gen.rng.Intn(hi-lo+1)

	if splitHorizontally {
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPos}
		node.right = &bspNode{x: node.x, y: node.y + splitPos, width: node.width, height: node.height - splitPos}
	} else {
		node.left = &bspNode{x: node.x, y: node.y, width: splitPos, height: node.height}
		node.right = &bspNode{x: node.x + splitPos, y: node.y, width: node.width - splitPos, height: node.height}
	}

	gen.splitNode(node.left)
	gen.splitNode(node.right)
}

// createRooms carves one room per leaf.
func (gen *Generator) createRooms(node *bspNode) {
	if node == nil {
		return
	}
	if !node.isLeaf() {
		gen.createRooms(node.left)
		gen.createRooms(node.right)
		return
	}

	maxW := min(maxRoomSize, node.width-2)
	maxH := min(maxRoomSize, node.height-2)
	if maxW < minRoomSize || maxH < minRoomSize {
		return
	}
	roomWidth := minRoomSize + gen.rng.Intn(maxW-minRoomSize+1)
	roomHeight := minRoomSize + gen.rng.Intn(maxH-minRoomSize+1)

	room := Room{
		X:      node.x + 1 + gen.rng.Intn(node.width-roomWidth-1),
		Y:      node.y + 1 + gen.rng.Intn(node.height-roomHeight-1),
		Width:  roomWidth,
		Height: roomHeight,
	}
	node.room = &room
	gen.rooms = append(gen.rooms, room)

	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			gen.set(x, y, CellOpen)
		}
	}
}

// connectRooms joins sibling subtrees with L-shaped corridors.
func (gen *Generator) connectRooms(node *bspNode) {
	if node == nil || node.isLeaf() {
		return
	}
	gen.connectRooms(node.left)
	gen.connectRooms(node.right)

	a, b := gen.firstRoom(node.left), gen.firstRoom(node.right)
	if a == nil || b == nil {
		return
	}
	x1, y1 := a.Center()
	x2, y2 := b.Center()
	if gen.rng.Intn(2) == 0 {
		gen.carveLine(x1, y1, x2, y1)
		gen.carveLine(x2, y1, x2, y2)
	} else {
		gen.carveLine(x1, y1, x1, y2)
		gen.carveLine(x1, y2, x2, y2)
	}
}

// firstRoom returns any room from a subtree, preferring the left side.
func (gen *Generator) firstRoom(node *bspNode) *Room {
	if node == nil {
		return nil
	}
	if node.room != nil {
		return node.room
	}
	if room := gen.firstRoom(node.left); room != nil {
		return room
	}
	return gen.firstRoom(node.right)
}

// carveLine opens an axis-aligned run of cells, inclusive of both ends.
func (gen *Generator) carveLine(x1, y1, x2, y2 int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			gen.set(x, y, CellOpen)
		}
	}
}

// placeDoors puts a framed door where a one-cell corridor leaves a room.
func (gen *Generator) placeDoors() int {
	doors := 0
	for _, room := range gen.rooms {
		for y := room.Y - 1; y <= room.Y+room.Height; y++ {
			for x := room.X - 1; x <= room.X+room.Width; x++ {
				if !room.OnEdge(x, y) || gen.at(x, y) != CellOpen {
					continue
				}
				if gen.frameDoor(x, y) {
					doors++
				}
			}
		}
	}
	return doors
}

// frameDoor turns (x, y) into a door if it sits in a corridor mouth with
// walls on both sides. The side walls get the frame textures.
func (gen *Generator) frameDoor(x, y int) bool {
	switch {
	case gen.at(x-1, y) == CellWall && gen.at(x+1, y) == CellWall &&
		gen.at(x, y-1) == CellOpen && gen.at(x, y+1) == CellOpen:
		gen.set(x-1, y, CellDoorLeft)
		gen.set(x+1, y, CellDoorRight)
	case gen.at(x, y-1) == CellWall && gen.at(x, y+1) == CellWall &&
		gen.at(x-1, y) == CellOpen && gen.at(x+1, y) == CellOpen:
		gen.set(x, y-1, CellDoorLeft)
		gen.set(x, y+1, CellDoorRight)
	default:
		return false
	}
	gen.set(x, y, CellDoor)
	return true
}
