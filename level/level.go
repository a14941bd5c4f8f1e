// Package level turns tile layouts into static wall footprints and actor spawn points
package level

import (
	"errors"

	"github.com/lixenwraith/arena/parameter"
	"github.com/lixenwraith/arena/physics"
	"github.com/lixenwraith/arena/vmath"
)

// ErrMalformedLevel reports a layout that cannot be loaded
var ErrMalformedLevel = errors.New("malformed level")

// Footprint is a wall tile handed to the static collider index
type Footprint = physics.Footprint

// Tile addresses a grid cell, X across columns and Z down rows
type Tile struct {
	X, Z int
}

// Patrol is an obstacle spawn with its second waypoint
type Patrol struct {
	From, To vmath.Vec3
}

// Level is a loaded arena: one footprint per wall tile plus floor-level spawn points
type Level struct {
	Cols, Rows int
	TileSize   float64
	WallHeight float64

	// Grid[r][c] marks wall tiles
	Grid [][]bool

	Walls     []Footprint
	Player    vmath.Vec3
	Obstacles []Patrol
	Triggers  []vmath.Vec3
}

// newLevel allocates an all-floor grid
func newLevel(cols, rows int, tileSize, wallHeight float64) *Level {
	if tileSize <= 0 {
		tileSize = parameter.DefaultTileSize
	}
	if wallHeight <= 0 {
		wallHeight = parameter.DefaultWallHeight
	}
	grid := make([][]bool, rows)
	for r := range grid {
		grid[r] = make([]bool, cols)
	}
	return &Level{
		Cols:       cols,
		Rows:       rows,
		TileSize:   tileSize,
		WallHeight: wallHeight,
		Grid:       grid,
	}
}

// TileCenter returns the floor-level center of a tile
func (l *Level) TileCenter(t Tile) vmath.Vec3 {
	return vmath.Vec3{(float64(t.X) + 0.5) * l.TileSize, 0, (float64(t.Z) + 0.5) * l.TileSize}
}

// TileAt maps a world position to its tile; ok is false outside the grid
func (l *Level) TileAt(p vmath.Vec3) (Tile, bool) {
	if p[0] < 0 || p[2] < 0 {
		return Tile{}, false
	}
	t := Tile{X: int(p[0] / l.TileSize), Z: int(p[2] / l.TileSize)}
	return t, t.X < l.Cols && t.Z < l.Rows
}

// IsWall reports whether a tile blocks; outside the grid counts as open
func (l *Level) IsWall(t Tile) bool {
	if t.X < 0 || t.Z < 0 || t.X >= l.Cols || t.Z >= l.Rows {
		return false
	}
	return l.Grid[t.Z][t.X]
}

// buildWalls emits exactly one full-height footprint per wall tile, row-major
func (l *Level) buildWalls() {
	l.Walls = l.Walls[:0]
	half := vmath.Vec3{l.TileSize / 2, l.WallHeight / 2, l.TileSize / 2}
	for z, row := range l.Grid {
		for x, wall := range row {
			if !wall {
				continue
			}
			center := l.TileCenter(Tile{X: x, Z: z})
			center[1] = l.WallHeight / 2
			l.Walls = append(l.Walls, Footprint{Center: center, HalfExtents: half})
		}
	}
}

// patrolRun returns the far end of the open run from t along +X, or t itself
func (l *Level) patrolRun(t Tile) Tile {
	end := t
	for next := (Tile{X: end.X + 1, Z: end.Z}); next.X < l.Cols && !l.IsWall(next); next.X++ {
		end = next
	}
	if end == t {
		for next := (Tile{X: t.X, Z: t.Z + 1}); next.Z < l.Rows && !l.IsWall(next); next.Z++ {
			end = next
		}
	}
	return end
}

// BuildIndex creates the static collider index for the level walls
func (l *Level) BuildIndex(cellSize float64) (*physics.StaticIndex, error) {
	return physics.BuildStaticIndex(l.Walls, cellSize)
}
