// Package world implements the infinite tile grid the drill descends
// through. Rows are generated lazily ahead of the scroll position and
// evicted once they fall far enough behind it, so memory stays bounded
// on long runs while row indices remain stable.
package world

import (
	"math"

	"github.com/vovakirdan/drilldown/internal/config"
)

// LookAhead is the number of rows generated past the bottom of the viewport.
const LookAhead = 2

// World is the sliding-window tile grid.
//
// Logical row r covers world pixel-Y band [r*tile, (r+1)*tile). The window
// holds rows [offset, offset+len(rows)). Rows below offset have been evicted
// and read as Empty; rows at or past RowCount have not been generated yet
// and read as Rock.
type World struct {
	cfg         config.WorldConfig
	tile        float64
	cols        int
	visibleRows int
	gen         *generator

	rows   [][]Tile
	offset int
}

// New creates a world and generates the initial screen plus a buffer.
// The first StartClearRows rows are emptied for the start area.
func New(cfg config.WorldConfig, seed int64) *World {
	cols := int(math.Ceil(float64(cfg.CanvasWidth) / float64(cfg.TileSize)))
	visible := int(math.Ceil(float64(cfg.CanvasHeight) / float64(cfg.TileSize)))

	w := &World{
		cfg:         cfg,
		tile:        float64(cfg.TileSize),
		cols:        cols,
		visibleRows: visible,
		gen:         newGenerator(cfg, cols, seed),
	}

	for i := 0; i < visible+5; i++ {
		w.appendRow()
	}
	for r := 0; r < cfg.StartClearRows && r < len(w.rows); r++ {
		for c := range w.rows[r] {
			w.rows[r][c] = Empty
		}
	}
	return w
}

func (w *World) appendRow() {
	w.rows = append(w.rows, w.gen.row(w.RowCount()))
}

// Cols returns the grid width in tiles.
func (w *World) Cols() int { return w.cols }

// VisibleRows returns the number of rows that fit on the canvas.
func (w *World) VisibleRows() int { return w.visibleRows }

// TileSize returns the tile edge in pixels.
func (w *World) TileSize() float64 { return w.tile }

// Width returns the canvas width in pixels.
func (w *World) Width() float64 { return float64(w.cfg.CanvasWidth) }

// Height returns the canvas height in pixels.
func (w *World) Height() float64 { return float64(w.cfg.CanvasHeight) }

// RowCount returns the number of rows generated so far, evicted ones
// included. It never decreases.
func (w *World) RowCount() int { return w.offset + len(w.rows) }

// Offset returns the logical index of the oldest retained row.
func (w *World) Offset() int { return w.offset }

// Retained returns the number of rows currently held in memory.
func (w *World) Retained() int { return len(w.rows) }

// EnsureGenerated grows the grid to cover the look-ahead window for the
// given scroll position and evicts rows that scrolled out of the trailing
// margin. It returns RowCount.
func (w *World) EnsureGenerated(scrollY float64) int {
	scrollRow := int(math.Floor(scrollY / w.tile))
	target := scrollRow + w.visibleRows + LookAhead

	for w.RowCount() < target {
		w.appendRow()
	}

	keepFrom := scrollRow - w.cfg.TrailingRows
	if drop := keepFrom - w.offset; drop > 0 {
		if drop > len(w.rows) {
			drop = len(w.rows)
		}
		// Copy into a fresh slice so the evicted rows can be collected.
		kept := make([][]Tile, len(w.rows)-drop, cap(w.rows))
		copy(kept, w.rows[drop:])
		w.rows = kept
		w.offset += drop
	}
	return w.RowCount()
}

// CellOf maps world pixel coordinates to a column and logical row.
func (w *World) CellOf(x, y float64) (col, row int) {
	return int(math.Floor(x / w.tile)), int(math.Floor(y / w.tile))
}

// CellCenter returns the world pixel center of a cell.
func (w *World) CellCenter(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * w.tile, (float64(row) + 0.5) * w.tile
}

// CellOrigin returns the world pixel top-left of a cell.
func (w *World) CellOrigin(col, row int) (x, y float64) {
	return float64(col) * w.tile, float64(row) * w.tile
}

// TileAt returns the tile at world pixel coordinates.
// Columns outside the grid are Rock walls, rows above the top are open sky,
// rows not yet generated are Rock.
func (w *World) TileAt(x, y float64) Tile {
	col, row := w.CellOf(x, y)
	return w.Cell(col, row)
}

// Cell returns the tile at a grid address with the same fallbacks as TileAt.
// Evicted rows read as Empty.
func (w *World) Cell(col, row int) Tile {
	if col < 0 || col >= w.cols {
		return Rock
	}
	if row < w.offset {
		return Empty
	}
	if row >= w.RowCount() {
		return Rock
	}
	return w.rows[row-w.offset][col]
}

// cellRef returns a pointer to a retained cell, or nil when the address is
// outside the window.
func (w *World) cellRef(col, row int) *Tile {
	if col < 0 || col >= w.cols || row < w.offset || row >= w.RowCount() {
		return nil
	}
	return &w.rows[row-w.offset][col]
}

// Dig empties the cell at world pixel coordinates. It returns true if the
// cell was in range and not already Empty. Dig does not check whether the
// removal is allowed; callers decide that.
func (w *World) Dig(x, y float64) bool {
	col, row := w.CellOf(x, y)
	return w.DigCell(col, row)
}

// DigCell is Dig by grid address.
func (w *World) DigCell(col, row int) bool {
	ref := w.cellRef(col, row)
	if ref == nil || *ref == Empty {
		return false
	}
	*ref = Empty
	return true
}

// SetTile overwrites the cell at world pixel coordinates.
// It returns false when the address is outside the window.
func (w *World) SetTile(x, y float64, t Tile) bool {
	col, row := w.CellOf(x, y)
	return w.SetCell(col, row, t)
}

// SetCell is SetTile by grid address.
func (w *World) SetCell(col, row int, t Tile) bool {
	ref := w.cellRef(col, row)
	if ref == nil {
		return false
	}
	*ref = t
	return true
}

// Degrade turns HardRock at world pixel coordinates into Rock.
// It returns false if the cell was not HardRock.
func (w *World) Degrade(x, y float64) bool {
	col, row := w.CellOf(x, y)
	ref := w.cellRef(col, row)
	if ref == nil || *ref != HardRock {
		return false
	}
	*ref = Rock
	return true
}

// ForEachInRadius calls fn for every retained cell whose center lies within
// Euclidean distance r of (cx, cy). Cells are visited row by row.
func (w *World) ForEachInRadius(cx, cy, r float64, fn func(col, row int, t Tile)) {
	if r < 0 {
		return
	}
	minCol, minRow := w.CellOf(cx-r, cy-r)
	maxCol, maxRow := w.CellOf(cx+r, cy+r)
	if minCol < 0 {
		minCol = 0
	}
	if maxCol >= w.cols {
		maxCol = w.cols - 1
	}
	if minRow < w.offset {
		minRow = w.offset
	}
	if maxRow >= w.RowCount() {
		maxRow = w.RowCount() - 1
	}

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			x, y := w.CellCenter(col, row)
			if math.Hypot(x-cx, y-cy) <= r {
				fn(col, row, w.rows[row-w.offset][col])
			}
		}
	}
}
