// Package spatial provides cache-efficient spatial data structures for
// broad-phase radar and collision candidate queries.
//
// All structures use preallocated slices with integer indices (not
// pointers) to minimize GC pressure and maximize cache locality.
package spatial

import "math"

// Grid provides O(1) average spatial queries via fixed-size cells.
//
// Optimal cell size equals the largest query radius used against it (e.g.
// the widest radar detection range, or the largest collision envelope).
//
// Memory layout: cells are stored in row-major order (cells[row*cols+col]).
type Grid struct {
	cellSize    float64
	invCellSize float64
	cols, rows  int
	cells       [][]uint32 // cells[row*cols+col] = list of entity indices
	scratch     []uint32   // reusable buffer for query results
	maxEntities int
}

// NewGrid creates a grid for the given world bounds. cellSize should equal
// the largest query radius for optimal performance. maxEntities is used to
// preallocate cell capacity.
func NewGrid(worldWidth, worldHeight, cellSize float64, maxEntities int) *Grid {
	cols := int(math.Ceil(worldWidth / cellSize))
	rows := int(math.Ceil(worldHeight / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	cells := make([][]uint32, cols*rows)
	avgPerCell := maxEntities / len(cells)
	if avgPerCell < 4 {
		avgPerCell = 4
	}
	for i := range cells {
		cells[i] = make([]uint32, 0, avgPerCell)
	}

	return &Grid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       cells,
		scratch:     make([]uint32, 0, 64),
		maxEntities: maxEntities,
	}
}

// Clear resets all cells without deallocating underlying memory. O(cells),
// not O(entities).
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity at position (x, y). entityID is the caller's own
// index (e.g. a ship arena slot index). O(1).
func (g *Grid) Insert(entityID uint32, x, y float64) {
	idx := g.cellIndex(x, y)
	g.cells[idx] = append(g.cells[idx], entityID)
}

func (g *Grid) cellIndex(x, y float64) int {
	col := int(x * g.invCellSize)
	row := int(y * g.invCellSize)
	if col < 0 {
		col = 0
	}
	if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= g.rows {
		row = g.rows - 1
	}
	return row*g.cols + col
}

// QueryRadius returns all entity IDs potentially within radius of (cx, cy).
// Uses an internal scratch buffer reused across calls — copy the result if
// you need to retain it past the next query. The returned candidates may
// lie outside the radius; the caller performs the precise (narrow-phase)
// check.
func (g *Grid) QueryRadius(cx, cy, radius float64) []uint32 {
	g.scratch = g.scratch[:0]

	minCol := int((cx - radius) * g.invCellSize)
	maxCol := int((cx + radius) * g.invCellSize)
	minRow := int((cy - radius) * g.invCellSize)
	maxRow := int((cy + radius) * g.invCellSize)

	if minCol < 0 {
		minCol = 0
	}
	if maxCol >= g.cols {
		maxCol = g.cols - 1
	}
	if minRow < 0 {
		minRow = 0
	}
	if maxRow >= g.rows {
		maxRow = g.rows - 1
	}

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			idx := row*g.cols + col
			g.scratch = append(g.scratch, g.cells[idx]...)
		}
	}
	return g.scratch
}

// Stats reports grid occupancy for debugging/profiling.
type Stats struct {
	TotalCells     int
	NonEmptyCells  int
	TotalEntities  int
	MaxInCell      int
	AvgPerNonEmpty float64
}

func (g *Grid) Stats() Stats {
	var totalEntities, maxInCell, nonEmpty int
	for _, cell := range g.cells {
		count := len(cell)
		totalEntities += count
		if count > maxInCell {
			maxInCell = count
		}
		if count > 0 {
			nonEmpty++
		}
	}
	avgPerCell := 0.0
	if nonEmpty > 0 {
		avgPerCell = float64(totalEntities) / float64(nonEmpty)
	}
	return Stats{
		TotalCells:     len(g.cells),
		NonEmptyCells:  nonEmpty,
		TotalEntities:  totalEntities,
		MaxInCell:      maxInCell,
		AvgPerNonEmpty: avgPerCell,
	}
}

// Dimensions returns the grid's column/row count and cell size.
func (g *Grid) Dimensions() (cols, rows int, cellSize float64) {
	return g.cols, g.rows, g.cellSize
}
