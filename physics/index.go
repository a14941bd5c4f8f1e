// Package physics holds the static collider index, the capsule query and the sliding resolver
package physics

import (
	"fmt"
	"math"
	"slices"

	"github.com/lixenwraith/arena/core"
	"github.com/lixenwraith/arena/parameter"
	"github.com/lixenwraith/arena/vmath"
)

// Footprint is one static obstacle tile as delivered by level loading
type Footprint struct {
	Center      vmath.Vec3
	HalfExtents vmath.Vec3
}

// Box returns the world-space AABB of the footprint
func (f Footprint) Box() vmath.AABB {
	return vmath.AABBFromCenter(f.Center, f.HalfExtents)
}

// StaticIndex is the immutable set of static boxes for one loaded level
// Boxes are kept in build order; a uniform XZ grid narrows the candidates per query
// Safe for concurrent readers once built
type StaticIndex struct {
	boxes []vmath.AABB
	mode  parameter.OverlapMode

	// Grid broadphase over the XZ plane, cells hold box indices in build order
	cellSize float64
	originX  float64
	originZ  float64
	cols     int
	rows     int
	cells    [][]int32
}

// BuildStaticIndex creates one box per footprint, merging nothing
// Non-positive or non-finite extents and duplicate footprints fail with ErrDegenerateGeometry
func BuildStaticIndex(footprints []Footprint, cellSize float64) (*StaticIndex, error) {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return nil, fmt.Errorf("%w: grid cell size must be positive, got %v", core.ErrConfiguration, cellSize)
	}

	idx := &StaticIndex{
		boxes:    make([]vmath.AABB, 0, len(footprints)),
		mode:     parameter.OverlapEndpoints,
		cellSize: cellSize,
	}

	seen := make(map[vmath.AABB]int, len(footprints))
	for i, f := range footprints {
		box := f.Box()
		if !finite(box.Min) || !finite(box.Max) || !box.Valid() {
			return nil, fmt.Errorf("footprint %d: %w: extents %v", i, core.ErrDegenerateGeometry, f.HalfExtents)
		}
		if first, dup := seen[box]; dup {
			return nil, fmt.Errorf("footprint %d duplicates footprint %d: %w", i, first, core.ErrDegenerateGeometry)
		}
		seen[box] = i
		idx.boxes = append(idx.boxes, box)
	}

	idx.buildGrid()
	return idx, nil
}

func finite(v vmath.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// buildGrid registers every box in each XZ cell its footprint touches
func (idx *StaticIndex) buildGrid() {
	if len(idx.boxes) == 0 {
		return
	}
	minX, minZ := math.Inf(1), math.Inf(1)
	maxX, maxZ := math.Inf(-1), math.Inf(-1)
	for _, b := range idx.boxes {
		minX = math.Min(minX, b.Min[0])
		minZ = math.Min(minZ, b.Min[2])
		maxX = math.Max(maxX, b.Max[0])
		maxZ = math.Max(maxZ, b.Max[2])
	}
	idx.originX, idx.originZ = minX, minZ
	idx.cols = int(math.Floor((maxX-minX)/idx.cellSize)) + 1
	idx.rows = int(math.Floor((maxZ-minZ)/idx.cellSize)) + 1
	idx.cells = make([][]int32, idx.cols*idx.rows)

	for i, b := range idx.boxes {
		x0, z0, x1, z1, ok := idx.cellRange(b)
		if !ok {
			continue
		}
		for z := z0; z <= z1; z++ {
			for x := x0; x <= x1; x++ {
				c := z*idx.cols + x
				idx.cells[c] = append(idx.cells[c], int32(i))
			}
		}
	}
}

// cellRange maps an AABB to the inclusive grid cell range it covers, clipped to the grid
func (idx *StaticIndex) cellRange(b vmath.AABB) (x0, z0, x1, z1 int, ok bool) {
	x0 = int(math.Floor((b.Min[0] - idx.originX) / idx.cellSize))
	z0 = int(math.Floor((b.Min[2] - idx.originZ) / idx.cellSize))
	x1 = int(math.Floor((b.Max[0] - idx.originX) / idx.cellSize))
	z1 = int(math.Floor((b.Max[2] - idx.originZ) / idx.cellSize))
	if x1 < 0 || z1 < 0 || x0 >= idx.cols || z0 >= idx.rows {
		return 0, 0, 0, 0, false
	}
	return max(x0, 0), max(z0, 0), min(x1, idx.cols-1), min(z1, idx.rows-1), true
}

// WithOverlapMode returns a copy of the index using the given overlap test
// The box set and grid are shared
func (idx *StaticIndex) WithOverlapMode(mode parameter.OverlapMode) *StaticIndex {
	cp := *idx
	cp.mode = mode
	return &cp
}

// Mode returns the overlap test in use
func (idx *StaticIndex) Mode() parameter.OverlapMode {
	return idx.mode
}

// Len returns the number of static boxes
func (idx *StaticIndex) Len() int {
	return len(idx.boxes)
}

// Boxes returns a copy of all boxes in build order
func (idx *StaticIndex) Boxes() []vmath.AABB {
	return slices.Clone(idx.boxes)
}

// overlaps applies the configured capsule-vs-box test
func (idx *StaticIndex) overlaps(c vmath.Capsule, box vmath.AABB) bool {
	if idx.mode == parameter.OverlapSegment {
		return c.SegmentOverlaps(box)
	}
	return c.EndpointsOverlap(box)
}

// QueryOverlapping appends every box the capsule overlaps to dst, in build order
// No overlap returns dst unchanged
func (idx *StaticIndex) QueryOverlapping(c vmath.Capsule, dst []vmath.AABB) []vmath.AABB {
	if len(idx.boxes) == 0 {
		return dst
	}
	x0, z0, x1, z1, ok := idx.cellRange(c.Bounds())
	if !ok {
		return dst
	}

	var buf [32]int32
	candidates := buf[:0]
	for z := z0; z <= z1; z++ {
		for x := x0; x <= x1; x++ {
			candidates = append(candidates, idx.cells[z*idx.cols+x]...)
		}
	}
	slices.Sort(candidates)
	candidates = slices.Compact(candidates)

	for _, i := range candidates {
		if box := idx.boxes[i]; idx.overlaps(c, box) {
			dst = append(dst, box)
		}
	}
	return dst
}

// scan is the flat O(N) reference query the grid must agree with
func (idx *StaticIndex) scan(c vmath.Capsule, dst []vmath.AABB) []vmath.AABB {
	for _, box := range idx.boxes {
		if idx.overlaps(c, box) {
			dst = append(dst, box)
		}
	}
	return dst
}
