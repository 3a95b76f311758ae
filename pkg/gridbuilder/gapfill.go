package gridbuilder

import (
	"sort"

	"github.com/lesmotsdatche/crossgen/pkg/grid"
)

type emptyRun struct {
	row, col, length int
	dir              grid.Direction
}

// gapFill iteratively densifies the grid: each pass finds every
// maximal empty run (length >= 2) inside the current bounding box,
// shortest first, and tries to drop a word of that exact length into
// it, falling back to decreasing-length prefixes. The word pool is the
// union of the original candidate list (already-used words excluded)
// and the built-in short-word vocabulary. Stops after a pass places
// nothing, or after maxGapFillPasses passes.
func (b *Builder) gapFill(candidates []string) {
	pool := b.buildGapFillPool(candidates)

	for pass := 0; pass < maxGapFillPasses; pass++ {
		gaps := b.findEmptyRuns()
		if len(gaps) == 0 {
			return
		}
		sort.SliceStable(gaps, func(i, j int) bool { return gaps[i].length < gaps[j].length })

		placedAny := false
		for _, gap := range gaps {
			if b.fillGap(gap, pool) {
				placedAny = true
			}
		}
		if !placedAny {
			return
		}
	}
}

func (b *Builder) buildGapFillPool(candidates []string) map[int][]string {
	pool := make(map[int][]string)
	add := func(w string) {
		if len(w) < 2 || b.usedWords[w] {
			return
		}
		pool[len(w)] = append(pool[len(w)], w)
	}
	for _, w := range candidates {
		add(w)
	}
	for _, w := range shortWordPool {
		add(w)
	}
	return pool
}

// fillGap tries the gap's exact length first, then strict prefixes of
// decreasing length down to 2, returning true if anything was placed.
func (b *Builder) fillGap(gap emptyRun, pool map[int][]string) bool {
	for length := gap.length; length >= 2; length-- {
		for _, word := range pool[length] {
			if b.usedWords[word] {
				continue
			}
			if b.validPlacement(word, gap.row, gap.col, gap.dir) {
				b.place(word, gap.row, gap.col, gap.dir)
				return true
			}
		}
	}
	return false
}

// findEmptyRuns scans the current bounding box of placed letters for
// maximal horizontal and vertical runs of still-black cells, length
// >= 2, that could host a new word without requiring bounds outside
// the builder's placement area.
func (b *Builder) findEmptyRuns() []emptyRun {
	minR, maxR, minC, maxC := b.boundingBoxOfLetters()
	if minR > maxR {
		return nil
	}

	var gaps []emptyRun
	for row := minR; row <= maxR; row++ {
		col := minC
		for col <= maxC {
			if !b.g.Cells[row][col].IsBlack || !b.inPlacementBounds(row, col) {
				col++
				continue
			}
			start := col
			for col <= maxC && b.g.Cells[row][col].IsBlack && b.inPlacementBounds(row, col) {
				col++
			}
			if length := col - start; length >= 2 {
				gaps = append(gaps, emptyRun{row: row, col: start, length: length, dir: grid.ACROSS})
			}
		}
	}
	for col := minC; col <= maxC; col++ {
		row := minR
		for row <= maxR {
			if !b.g.Cells[row][col].IsBlack || !b.inPlacementBounds(row, col) {
				row++
				continue
			}
			start := row
			for row <= maxR && b.g.Cells[row][col].IsBlack && b.inPlacementBounds(row, col) {
				row++
			}
			if length := row - start; length >= 2 {
				gaps = append(gaps, emptyRun{row: start, col: col, length: length, dir: grid.DOWN})
			}
		}
	}
	return gaps
}
