package level

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Layout glyphs
const (
	GlyphWall     = '#'
	GlyphFloor    = '.'
	GlyphPlayer   = 'P'
	GlyphObstacle = 'O'
	GlyphTrigger  = 'T'
)

// Parse reads an ASCII layout, one text line per row
// Short rows are padded with floor; blank lines are skipped
// Exactly one player spawn is required
func Parse(r io.Reader, tileSize, wallHeight float64) (*Level, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrMalformedLevel)
	}

	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}

	l := newLevel(cols, len(rows), tileSize, wallHeight)
	var players, obstacles []Tile
	for z, row := range rows {
		for x, ch := range []byte(row) {
			t := Tile{X: x, Z: z}
			switch ch {
			case GlyphWall:
				l.Grid[z][x] = true
			case GlyphFloor, ' ':
			case GlyphPlayer:
				players = append(players, t)
			case GlyphObstacle:
				obstacles = append(obstacles, t)
			case GlyphTrigger:
				l.Triggers = append(l.Triggers, l.TileCenter(t))
			default:
				return nil, fmt.Errorf("%w: row %d col %d: unknown glyph %q", ErrMalformedLevel, z+1, x+1, ch)
			}
		}
	}

	switch len(players) {
	case 0:
		return nil, fmt.Errorf("%w: no player spawn %q", ErrMalformedLevel, GlyphPlayer)
	case 1:
		l.Player = l.TileCenter(players[0])
	default:
		return nil, fmt.Errorf("%w: %d player spawns, want 1", ErrMalformedLevel, len(players))
	}

	for _, t := range obstacles {
		l.Obstacles = append(l.Obstacles, Patrol{From: l.TileCenter(t), To: l.TileCenter(l.patrolRun(t))})
	}

	l.buildWalls()
	return l, nil
}

// ParseString is Parse over an in-memory layout
func ParseString(layout string, tileSize, wallHeight float64) (*Level, error) {
	return Parse(strings.NewReader(layout), tileSize, wallHeight)
}

// LoadFile parses the layout stored at path
func LoadFile(path string, tileSize, wallHeight float64) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open level: %w", err)
	}
	defer f.Close()

	l, err := Parse(f, tileSize, wallHeight)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}
