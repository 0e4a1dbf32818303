// Package systems provides the per-tick ECS systems of the flock simulation.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flock/components"
	"github.com/pthm-cable/flock/vmath"
)

// GridPoint is one entry of the pair scanner.
type GridPoint struct {
	E   ecs.Entity
	Pos vmath.Vec2
}

// PairFunc receives one unordered pair (i, j) with d = pos[i] - pos[j].
type PairFunc func(i, j int, d vmath.Vec2, distSq float32)

// SpatialGrid buckets points into square cells so that pair scans only
// compare points in the same or adjacent cells. Points outside the covered
// area are clamped into the border cells.
type SpatialGrid struct {
	cellSize float32
	cols     int
	rows     int
	origin   vmath.Vec2
	cells    [][]int32 // indices into points
	points   []GridPoint
}

// NewSpatialGrid creates a grid covering area with the given cell size.
func NewSpatialGrid(area vmath.Rect, cellSize float32) *SpatialGrid {
	cols := int(area.Width()/cellSize) + 1
	rows := int(area.Height()/cellSize) + 1

	cells := make([][]int32, cols*rows)
	for i := range cells {
		cells[i] = make([]int32, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		origin:   area.Min,
		cells:    cells,
	}
}

// CellSize returns the cell edge length.
func (g *SpatialGrid) CellSize() float32 { return g.cellSize }

// Clear removes all points from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.points = g.points[:0]
}

// Insert adds a point and returns its index.
func (g *SpatialGrid) Insert(e ecs.Entity, pos vmath.Vec2) int {
	idx := len(g.points)
	g.points = append(g.points, GridPoint{E: e, Pos: pos})
	c := g.cellIndex(pos)
	g.cells[c] = append(g.cells[c], int32(idx))
	return idx
}

// Len returns the number of inserted points.
func (g *SpatialGrid) Len() int { return len(g.points) }

// Point returns the i-th inserted point.
func (g *SpatialGrid) Point(i int) GridPoint { return g.points[i] }

// Points returns all inserted points in insertion order.
func (g *SpatialGrid) Points() []GridPoint { return g.points }

// halfNeighborhood lists the forward cells visited from each cell so that
// every pair of adjacent cells is compared exactly once.
var halfNeighborhood = [4][2]int{{1, 0}, {-1, 1}, {0, 1}, {1, 1}}

// ForEachPair calls fn once for every unordered pair whose distance is at
// most radius. Radii larger than the cell size fall back to a full scan.
func (g *SpatialGrid) ForEachPair(radius float32, fn PairFunc) {
	if radius > g.cellSize {
		ScanPairs(g.points, radius, fn)
		return
	}
	radiusSq := radius * radius

	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			cell := g.cells[row*g.cols+col]
			if len(cell) == 0 {
				continue
			}

			// Pairs inside the cell.
			for a := 0; a < len(cell); a++ {
				for b := a + 1; b < len(cell); b++ {
					g.visit(int(cell[a]), int(cell[b]), radiusSq, fn)
				}
			}

			for _, off := range halfNeighborhood {
				nc, nr := col+off[0], row+off[1]
				if nc < 0 || nc >= g.cols || nr >= g.rows {
					continue
				}
				other := g.cells[nr*g.cols+nc]
				for _, a := range cell {
					for _, b := range other {
						g.visit(int(a), int(b), radiusSq, fn)
					}
				}
			}
		}
	}
}

func (g *SpatialGrid) visit(i, j int, radiusSq float32, fn PairFunc) {
	// Keep pair orientation stable (lower insertion index first).
	if j < i {
		i, j = j, i
	}
	d := g.points[i].Pos.Sub(g.points[j].Pos)
	distSq := d.LenSq()
	if distSq <= radiusSq {
		fn(i, j, d, distSq)
	}
}

// ScanPairs is the brute-force pair scan over points.
func ScanPairs(points []GridPoint, radius float32, fn PairFunc) {
	radiusSq := radius * radius
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			d := points[i].Pos.Sub(points[j].Pos)
			distSq := d.LenSq()
			if distSq <= radiusSq {
				fn(i, j, d, distSq)
			}
		}
	}
}

// cellIndex returns the flat index for a world position.
func (g *SpatialGrid) cellIndex(p vmath.Vec2) int {
	col := int((p.X - g.origin.X) / g.cellSize)
	row := int((p.Y - g.origin.Y) / g.cellSize)

	// Clamp to valid range
	if p.X < g.origin.X || col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if p.Y < g.origin.Y || row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return row*g.cols + col
}

// Flock is the shared spatial index over every sheep. Each system that
// scans pairs rebuilds it from current positions at the start of its phase.
type Flock struct {
	grid   *SpatialGrid
	filter *ecs.Filter1[components.Position]
}

// NewFlock creates the shared index. The grid covers area; sheep outside it
// are clamped into the border cells.
func NewFlock(w *ecs.World, area vmath.Rect, cellSize float32) *Flock {
	return &Flock{
		grid:   NewSpatialGrid(area, cellSize),
		filter: ecs.NewFilter1[components.Position](w).With(ecs.C[components.Sheep]()),
	}
}

// Rebuild snapshots every sheep position into the grid.
func (f *Flock) Rebuild() {
	f.grid.Clear()
	query := f.filter.Query()
	for query.Next() {
		pos := query.Get()
		f.grid.Insert(query.Entity(), pos.Vec2)
	}
}

// Grid exposes the underlying grid.
func (f *Flock) Grid() *SpatialGrid { return f.grid }
