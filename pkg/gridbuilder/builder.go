// Package gridbuilder implements the word-first, dense grid placement
// pass: a greedy crossing-maximising placement loop seeded from a
// central pair of words, followed by a gap-fill pass that densifies
// whatever empty runs remain.
package gridbuilder

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/lesmotsdatche/crossgen/pkg/grid"
)

// ErrSparseBuild is returned when fewer than 8 words were placed.
// Recoverable: the orchestrator retries with a new seed.
var ErrSparseBuild = errors.New("gridbuilder: fewer than 8 words placed")

const (
	minWordLen   = 3
	maxWordLen   = 8
	maxCandidates = 40
	maxPerLength  = 6
	maxPlaced     = 20
	minSuccessWords = 8
	maxGapFillPasses = 10
)

// Config configures one build.
type Config struct {
	MaxRows     int
	MaxCols     int
	TargetWords int // advisory, unused by the algorithm itself
	Seed        int64
}

// PlacedWord records one word's final position in the working grid.
type PlacedWord struct {
	Word      string
	Row       int
	Col       int
	Direction grid.Direction
}

// Result is what Build returns.
type Result struct {
	Grid    *grid.Grid
	Placed  []PlacedWord
	Success bool
}

type occurrence struct {
	wordIndex int
	offset    int
}

// Builder owns one build's working grid, letter index, and candidate
// pool. Not safe for concurrent use; discard after Build returns.
type Builder struct {
	cfg         Config
	rng         *rand.Rand
	targetRows  int
	targetCols  int
	workingRows int
	workingCols int
	centerRow   int
	centerCol   int

	g           *grid.Grid
	placed      []PlacedWord
	usedWords   map[string]bool
	letterIndex map[rune][]occurrence
	remaining   []string
}

// New creates a builder for one build. MaxRows/MaxCols below 7 are
// raised to 7, leaving room for a one-cell border around placed words.
func New(cfg Config) *Builder {
	targetRows := cfg.MaxRows
	if targetRows < 7 {
		targetRows = 7
	}
	targetCols := cfg.MaxCols
	if targetCols < 7 {
		targetCols = 7
	}
	workingRows := targetRows + 1
	workingCols := targetCols + 1

	return &Builder{
		cfg:         cfg,
		rng:         rand.New(rand.NewSource(cfg.Seed)),
		targetRows:  targetRows,
		targetCols:  targetCols,
		workingRows: workingRows,
		workingCols: workingCols,
		centerRow:   targetRows / 2,
		centerCol:   targetCols / 2,
		g:           grid.NewEmptyGrid(workingRows, workingCols),
		usedWords:   make(map[string]bool),
		letterIndex: make(map[rune][]occurrence),
	}
}

// Build runs the full word-first placement pipeline against candidates
// and returns the trimmed result grid. Success requires at least 8
// placed words; on failure the grid is still returned (for
// diagnostics) alongside ErrSparseBuild.
func (b *Builder) Build(candidates []string) (*Result, error) {
	selected := selectCandidates(candidates, b.rng)
	b.remaining = append([]string(nil), selected...)

	b.placeSeedPair()
	b.greedyMainLoop()
	b.gapFill(candidates)

	trimmed := b.trim()
	success := len(b.placed) >= minSuccessWords
	result := &Result{Grid: trimmed, Placed: b.placed, Success: success}
	if !success {
		return result, ErrSparseBuild
	}
	return result, nil
}

// selectCandidates scores, filters, caps, and orders the candidate
// pool: exclude lengths outside [3,8], score by vowel ratio x
// length-band multiplier x length, keep the top ~40 capped at 6 per
// length bucket, shuffle ties with rng, then sort so lengths near 5
// come first.
func selectCandidates(words []string, rng *rand.Rand) []string {
	type scored struct {
		word  string
		score float64
	}

	var pool []scored
	seen := make(map[string]bool)
	for _, raw := range words {
		w := strings.ToUpper(strings.TrimSpace(raw))
		if w == "" || seen[w] {
			continue
		}
		n := len(w)
		if n < minWordLen || n > maxWordLen {
			continue
		}
		seen[w] = true
		mult := 1.0
		if n >= 4 && n <= 6 {
			mult = 1.5
		}
		pool = append(pool, scored{w, vowelRatio(w) * mult * float64(n)})
	}

	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].score > pool[j].score })

	counts := make(map[int]int)
	var capped []scored
	for _, sw := range pool {
		l := len(sw.word)
		if counts[l] >= maxPerLength {
			continue
		}
		counts[l]++
		capped = append(capped, sw)
		if len(capped) >= maxCandidates {
			break
		}
	}

	sort.SliceStable(capped, func(i, j int) bool {
		return abs(len(capped[i].word)-5) < abs(len(capped[j].word)-5)
	})

	out := make([]string, len(capped))
	for i, sw := range capped {
		out[i] = sw.word
	}
	return out
}

func vowelRatio(w string) float64 {
	const vowels = "AEIOUY"
	count := 0
	for _, r := range w {
		if strings.ContainsRune(vowels, r) {
			count++
		}
	}
	return float64(count) / float64(len(w))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// placeSeedPair places the first length-5..7 candidate horizontally
// across the grid centre, then looks for the first length-4..6
// candidate sharing a letter with it and places it vertically at that
// crossing. Either phase may fail to find a fit; the build proceeds
// regardless.
func (b *Builder) placeSeedPair() {
	seedIdx := indexWhere(b.remaining, func(w string) bool { return len(w) >= 5 && len(w) <= 7 })
	if seedIdx == -1 {
		return
	}
	seed := b.remaining[seedIdx]
	row := b.centerRow
	col := b.centerCol - len(seed)/2
	if !b.validPlacement(seed, row, col, grid.ACROSS) {
		return
	}
	b.place(seed, row, col, grid.ACROSS)
	b.removeRemaining(seedIdx)

	for idx, cand := range b.remaining {
		if len(cand) < 4 || len(cand) > 6 {
			continue
		}
		placedRow, placedCol, ok := crossingFit(seed, row, col, grid.ACROSS, cand, b)
		if !ok {
			continue
		}
		b.place(cand, placedRow, placedCol, grid.DOWN)
		b.removeRemaining(idx)
		return
	}
}

// crossingFit looks for a shared letter between owner (already placed
// at ownerRow,ownerCol,ownerDir) and cand, and returns the first
// position where placing cand perpendicular to owner validates.
func crossingFit(owner string, ownerRow, ownerCol int, ownerDir grid.Direction, cand string, b *Builder) (int, int, bool) {
	perpDir := grid.DOWN
	if ownerDir == grid.DOWN {
		perpDir = grid.ACROSS
	}
	for j, oc := range owner {
		for i, cc := range cand {
			if oc != cc {
				continue
			}
			sharedRow, sharedCol := ownerCellAt(ownerRow, ownerCol, ownerDir, j)
			row, col := candStartFor(sharedRow, sharedCol, perpDir, i)
			if b.validPlacement(cand, row, col, perpDir) {
				return row, col, true
			}
		}
	}
	return 0, 0, false
}

func ownerCellAt(row, col int, dir grid.Direction, offset int) (int, int) {
	if dir == grid.ACROSS {
		return row, col + offset
	}
	return row + offset, col
}

func candStartFor(sharedRow, sharedCol int, dir grid.Direction, offset int) (int, int) {
	if dir == grid.ACROSS {
		return sharedRow, sharedCol - offset
	}
	return sharedRow - offset, sharedCol
}

func indexWhere(words []string, pred func(string) bool) int {
	for i, w := range words {
		if pred(w) {
			return i
		}
	}
	return -1
}

func (b *Builder) removeRemaining(idx int) {
	b.remaining = append(b.remaining[:idx], b.remaining[idx+1:]...)
}

// greedyMainLoop repeatedly places the single highest-scoring
// (word, position) across the whole remaining candidate set, stopping
// when the pool is empty, more than 20 words are placed, or the
// failure budget (~3x remaining candidates) is exhausted.
func (b *Builder) greedyMainLoop() {
	failures := 0
	for len(b.remaining) > 0 && len(b.placed) <= maxPlaced && failures < 3*len(b.remaining)+1 {
		bestScore := math.Inf(-1)
		bestIdx := -1
		var bestWord string
		var bestRow, bestCol int
		var bestDir grid.Direction

		for idx, w := range b.remaining {
			for i, ch := range w {
				for _, occ := range b.letterIndex[ch] {
					owner := b.placed[occ.wordIndex]
					perpDir := grid.DOWN
					if owner.Direction == grid.DOWN {
						perpDir = grid.ACROSS
					}
					sharedRow, sharedCol := ownerCellAt(owner.Row, owner.Col, owner.Direction, occ.offset)
					row, col := candStartFor(sharedRow, sharedCol, perpDir, i)
					if !b.validPlacement(w, row, col, perpDir) {
						continue
					}
					crossings := b.countCrossings(w, row, col, perpDir)
					if len(b.placed) >= 2 && crossings == 0 {
						continue // rejected: parasitic placement with zero crossings
					}
					score := 100*float64(crossings) + 2*(20-manhattan(row, col, b.centerRow, b.centerCol))
					if score > bestScore {
						bestScore = score
						bestIdx = idx
						bestWord = w
						bestRow, bestCol, bestDir = row, col, perpDir
					}
				}
			}
		}

		if bestIdx == -1 {
			failures++
			if len(b.remaining) > 0 {
				b.remaining = append(b.remaining[1:], b.remaining[0])
			}
			continue
		}

		b.place(bestWord, bestRow, bestCol, bestDir)
		b.removeRemaining(bestIdx)
		failures = 0
	}
}

func manhattan(row, col, centerRow, centerCol int) float64 {
	dr := row - centerRow
	if dr < 0 {
		dr = -dr
	}
	dc := col - centerCol
	if dc < 0 {
		dc = -dc
	}
	return float64(dr + dc)
}

func (b *Builder) countCrossings(word string, row, col int, dir grid.Direction) int {
	dRow, dCol := deltas(dir)
	count := 0
	for i := range word {
		cell := b.g.At(row+dRow*i, col+dCol*i)
		if cell != nil && !cell.IsBlack && cell.Letter != 0 {
			count++
		}
	}
	return count
}

func deltas(dir grid.Direction) (int, int) {
	if dir == grid.ACROSS {
		return 0, 1
	}
	return 1, 0
}

func (b *Builder) inPlacementBounds(row, col int) bool {
	return row >= 1 && row <= b.targetRows-2 && col >= 1 && col <= b.targetCols-2
}

func (b *Builder) isBlockedOrOOB(row, col int) bool {
	cell := b.g.At(row, col)
	if cell == nil {
		return true
	}
	return cell.IsBlack
}

// validPlacement checks bounds, distinctness, crossing-letter
// agreement, and the adjacency rule against the current working grid,
// without mutating it.
func (b *Builder) validPlacement(word string, row, col int, dir grid.Direction) bool {
	if len(word) < 2 || b.usedWords[word] {
		return false
	}
	dRow, dCol := deltas(dir)
	n := len(word)
	endRow, endCol := row+dRow*(n-1), col+dCol*(n-1)
	if !b.inPlacementBounds(row, col) || !b.inPlacementBounds(endRow, endCol) {
		return false
	}

	for i, ch := range word {
		r, c := row+dRow*i, col+dCol*i
		cell := b.g.At(r, c)
		if cell == nil {
			return false
		}

		isCrossing := false
		if !cell.IsBlack && cell.Letter != 0 {
			if cell.Letter != ch {
				return false
			}
			isCrossing = true
		}

		if i == 0 && !b.isBlockedOrOOB(r-dRow, c-dCol) {
			return false
		}
		if i == n-1 && !b.isBlockedOrOOB(r+dRow, c+dCol) {
			return false
		}

		if !isCrossing {
			var p1r, p1c, p2r, p2c int
			if dir == grid.ACROSS {
				p1r, p1c, p2r, p2c = r-1, c, r+1, c
			} else {
				p1r, p1c, p2r, p2c = r, c-1, r, c+1
			}
			if !b.isBlockedOrOOB(p1r, p1c) || !b.isBlockedOrOOB(p2r, p2c) {
				return false
			}
		}
	}
	return true
}

func (b *Builder) place(word string, row, col int, dir grid.Direction) {
	dRow, dCol := deltas(dir)
	wordIndex := len(b.placed)
	for i, ch := range word {
		r, c := row+dRow*i, col+dCol*i
		cell := b.g.At(r, c)
		cell.IsBlack = false
		cell.Letter = ch
		b.letterIndex[ch] = append(b.letterIndex[ch], occurrence{wordIndex: wordIndex, offset: i})
	}
	b.placed = append(b.placed, PlacedWord{Word: word, Row: row, Col: col, Direction: dir})
	b.usedWords[word] = true
}

func (b *Builder) trim() *grid.Grid {
	minR, maxR, minC, maxC := b.boundingBoxOfLetters()
	if minR > maxR {
		return grid.NewEmptyGrid(1, 1)
	}
	if minR > 0 {
		minR--
	}
	if maxR < b.workingRows-1 {
		maxR++
	}
	if minC > 0 {
		minC--
	}
	if maxC < b.workingCols-1 {
		maxC++
	}

	rows, cols := maxR-minR+1, maxC-minC+1
	out := grid.NewEmptyGrid(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			src := b.g.Cells[minR+r][minC+c]
			out.Cells[r][c].IsBlack = src.IsBlack
			out.Cells[r][c].Letter = src.Letter
		}
	}
	return out
}

func (b *Builder) boundingBoxOfLetters() (int, int, int, int) {
	minR, minC := b.workingRows, b.workingCols
	maxR, maxC := -1, -1
	for r := 0; r < b.workingRows; r++ {
		for c := 0; c < b.workingCols; c++ {
			cell := b.g.Cells[r][c]
			if cell.IsBlack {
				continue
			}
			if r < minR {
				minR = r
			}
			if r > maxR {
				maxR = r
			}
			if c < minC {
				minC = c
			}
			if c > maxC {
				maxC = c
			}
		}
	}
	return minR, maxR, minC, maxC
}
