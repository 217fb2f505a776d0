package entity

import (
	"fmt"
	"strings"
)

// Grid is a worksheet as rows of raw cell values. Rows may be ragged.
type Grid [][]interface{}

// Rows returns the number of rows in the grid.
func (g Grid) Rows() int {
	return len(g)
}

// Cell returns the value at the 1-based row and column, or nil when the
// position lies outside the grid.
func (g Grid) Cell(row, col int) interface{} {
	if row < 1 || row > len(g) {
		return nil
	}
	cells := g[row-1]
	if col < 1 || col > len(cells) {
		return nil
	}
	return cells[col-1]
}

// Text returns the trimmed string form of a cell, empty for nil.
func (g Grid) Text(row, col int) string {
	v := g.Cell(row, col)
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
