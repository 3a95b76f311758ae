package grid

// ComputeEntries re-derives every across and down entry on the grid and
// assigns clue numbers: a letter-cell (r,c) starts an across entry iff
// it has no letter-cell to its left and has one to its right; the
// analogous rule applies vertically. A cell that starts either (or
// both) gets the next number from a counter that starts at 1 and is
// never reused.
func ComputeEntries(g *Grid) {
	g.Entries = nil

	clueNumber := 1
	numberAt := make(map[[2]int]int)

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			g.Cells[row][col].Number = 0
		}
	}

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			cell := g.Cells[row][col]
			if cell.IsBlack {
				continue
			}

			startsAcross := (col == 0 || g.Cells[row][col-1].IsBlack) &&
				col+1 < g.Cols && !g.Cells[row][col+1].IsBlack
			startsDown := (row == 0 || g.Cells[row-1][col].IsBlack) &&
				row+1 < g.Rows && !g.Cells[row+1][col].IsBlack

			if startsAcross || startsDown {
				numberAt[[2]int{row, col}] = clueNumber
				cell.Number = clueNumber
				clueNumber++
			}
		}
	}

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			cell := g.Cells[row][col]
			if cell.IsBlack {
				continue
			}
			if col == 0 || g.Cells[row][col-1].IsBlack {
				cells := collectRun(g, row, col, 0, 1)
				if len(cells) >= 2 {
					g.Entries = append(g.Entries, &Entry{
						Number:    numberAt[[2]int{row, col}],
						Direction: ACROSS,
						StartRow:  row,
						StartCol:  col,
						Length:    len(cells),
						Cells:     cells,
					})
				}
			}
		}
	}

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			cell := g.Cells[row][col]
			if cell.IsBlack {
				continue
			}
			if row == 0 || g.Cells[row-1][col].IsBlack {
				cells := collectRun(g, row, col, 1, 0)
				if len(cells) >= 2 {
					g.Entries = append(g.Entries, &Entry{
						Number:    numberAt[[2]int{row, col}],
						Direction: DOWN,
						StartRow:  row,
						StartCol:  col,
						Length:    len(cells),
						Cells:     cells,
					})
				}
			}
		}
	}
}

// collectRun walks from (row, col) in steps of (dRow, dCol), gathering
// consecutive non-black cells.
func collectRun(g *Grid, row, col, dRow, dCol int) []*Cell {
	var cells []*Cell
	r, c := row, col
	for g.InBounds(r, c) && !g.Cells[r][c].IsBlack {
		cells = append(cells, g.Cells[r][c])
		r += dRow
		c += dCol
	}
	return cells
}
