package view

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/textcore/internal/renderer/core"
)

// replacementRune is drawn for clusters with no display width, such as
// control characters.
const replacementRune = '�'

// rowLayout maps the columns of one document row to terminal cells.
type rowLayout struct {
	// cells holds the unstyled cells of the row.
	cells []core.Cell

	// cellCol is the document column drawn in each cell.
	cellCol []int

	// colCell is the first cell of each column. It has one extra entry
	// for the end of the row.
	colCell []int
}

// layoutRow splits text into grapheme clusters and assigns each one cell
// per unit of display width. Tabs expand to the next multiple of
// tabWidth.
func layoutRow(text string, numColumns, tabWidth int) rowLayout {
	l := rowLayout{colCell: make([]int, 0, numColumns+1)}
	col := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		x := len(l.cells)
		for range runes {
			l.colCell = append(l.colCell, x)
		}

		switch width := g.Width(); {
		case runes[0] == '\t':
			for n := tabWidth - x%tabWidth; n > 0; n-- {
				l.add(core.Cell{Rune: ' ', Width: 1}, col)
			}
		case width == 0:
			l.add(core.Cell{Rune: replacementRune, Width: 1}, col)
		default:
			l.add(core.Cell{Rune: runes[0], Combining: runes[1:], Width: width}, col)
			for n := width; n > 1; n-- {
				l.add(core.Cell{}, col)
			}
		}
		col += len(runes)
	}
	l.colCell = append(l.colCell, len(l.cells))
	return l
}

func (l *rowLayout) add(c core.Cell, col int) {
	if len(c.Combining) == 0 {
		c.Combining = nil
	}
	l.cells = append(l.cells, c)
	l.cellCol = append(l.cellCol, col)
}

// cellOf returns the first cell of col, clamping past the end.
func (l *rowLayout) cellOf(col int) int {
	if col < 0 {
		return 0
	}
	if col >= len(l.colCell) {
		return l.colCell[len(l.colCell)-1]
	}
	return l.colCell[col]
}

// columnAt returns the column drawn in cell x. Cells past the end map to
// the end of the row.
func (l *rowLayout) columnAt(x int) int {
	if x < 0 {
		return 0
	}
	if x >= len(l.cellCol) {
		return len(l.colCell) - 1
	}
	return l.cellCol[x]
}

// width returns the number of cells in the row.
func (l *rowLayout) width() int {
	return len(l.cells)
}
