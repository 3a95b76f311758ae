package output

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/lesmotsdatche/crossgen/internal/domain"
)

// FormatPuz converts a domain.Puzzle to .puz binary format. The .puz
// format is used by AcrossLite and compatible solvers; it stores one
// byte per cell, so the grid's normalised (accent-free) Solution runes
// round-trip cleanly.
func FormatPuz(puzzle *domain.Puzzle) ([]byte, error) {
	rows, cols := puzzle.GridDimensions()

	solution := buildSolutionString(puzzle)
	state := strings.Repeat("-", len(solution))

	title := puzzle.Title
	author := puzzle.Author
	copyright := fmt.Sprintf("© %s", author)
	clues := buildClueStrings(puzzle)
	notes := ""

	width := byte(cols)
	height := byte(rows)
	numClues := uint16(len(puzzle.Clues.Across) + len(puzzle.Clues.Down))

	cib := computeCIB(width, height, numClues, 0x0001, 0x0000)

	buf := new(bytes.Buffer)

	if err := writeHeader(buf, width, height, numClues, cib, solution, state); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	if err := writeStrings(buf, title, author, copyright, clues, notes); err != nil {
		return nil, fmt.Errorf("failed to write strings: %w", err)
	}

	return buf.Bytes(), nil
}

// buildSolutionString creates the solution string from the puzzle grid.
func buildSolutionString(puzzle *domain.Puzzle) string {
	rows, cols := puzzle.GridDimensions()
	var solution strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			cell := puzzle.Grid[y][x]
			if cell.IsLetter() && cell.Solution != 0 {
				solution.WriteRune(cell.Solution)
			} else {
				solution.WriteByte('.')
			}
		}
	}
	return solution.String()
}

// buildClueStrings creates the clue strings in the correct order:
// ascending number, across before down when numbers tie.
func buildClueStrings(puzzle *domain.Puzzle) []string {
	type numberedClue struct {
		number int
		text   string
		dir    domain.Direction
	}

	var allClues []numberedClue
	for _, clue := range puzzle.Clues.Across {
		allClues = append(allClues, numberedClue{clue.Number, clue.Prompt, domain.Across})
	}
	for _, clue := range puzzle.Clues.Down {
		allClues = append(allClues, numberedClue{clue.Number, clue.Prompt, domain.Down})
	}

	for i := 0; i < len(allClues)-1; i++ {
		for j := i + 1; j < len(allClues); j++ {
			if allClues[i].number > allClues[j].number {
				allClues[i], allClues[j] = allClues[j], allClues[i]
			} else if allClues[i].number == allClues[j].number {
				if allClues[i].dir == domain.Down && allClues[j].dir == domain.Across {
					allClues[i], allClues[j] = allClues[j], allClues[i]
				}
			}
		}
	}

	clueTexts := make([]string, len(allClues))
	for i, clue := range allClues {
		clueTexts[i] = clue.text
	}

	return clueTexts
}

// writeHeader writes the .puz file header.
func writeHeader(buf *bytes.Buffer, width, height byte, numClues uint16, cib uint16, solution, state string) error {
	globalCksum := uint16(0)

	buf.WriteString("ACROSS&DOWN\x00")
	binary.Write(buf, binary.LittleEndian, globalCksum)
	buf.WriteString("ICHEATED")
	binary.Write(buf, binary.LittleEndian, uint16(0))

	for i := 0; i < 4; i++ {
		binary.Write(buf, binary.LittleEndian, uint16(0))
	}

	buf.WriteString("1.3\x00")
	binary.Write(buf, binary.LittleEndian, uint16(0))
	binary.Write(buf, binary.LittleEndian, uint16(0))
	buf.Write(make([]byte, 4))

	buf.WriteByte(width)
	buf.WriteByte(height)
	binary.Write(buf, binary.LittleEndian, numClues)
	binary.Write(buf, binary.LittleEndian, uint16(0x0001))
	binary.Write(buf, binary.LittleEndian, uint16(0x0000))

	buf.WriteString(solution)
	buf.WriteString(state)

	return nil
}

// writeStrings writes the strings section (null-terminated strings).
func writeStrings(buf *bytes.Buffer, title, author, copyright string, clues []string, notes string) error {
	buf.WriteString(title)
	buf.WriteByte(0)

	buf.WriteString(author)
	buf.WriteByte(0)

	buf.WriteString(copyright)
	buf.WriteByte(0)

	for _, clue := range clues {
		buf.WriteString(clue)
		buf.WriteByte(0)
	}

	if notes != "" {
		buf.WriteString(notes)
		buf.WriteByte(0)
	}

	return nil
}

// computeCIB computes the CIB checksum.
func computeCIB(width, height byte, numClues, puzzleType, scrambledState uint16) uint16 {
	cksum := uint16(0)

	cksum = checksumRegion(cksum, []byte{width, height})

	numCluesBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(numCluesBytes, numClues)
	cksum = checksumRegion(cksum, numCluesBytes)

	puzzleTypeBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(puzzleTypeBytes, puzzleType)
	cksum = checksumRegion(cksum, puzzleTypeBytes)

	scrambledStateBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(scrambledStateBytes, scrambledState)
	cksum = checksumRegion(cksum, scrambledStateBytes)

	return cksum
}

// checksumRegion computes a checksum over a byte region.
func checksumRegion(cksum uint16, data []byte) uint16 {
	for _, b := range data {
		if cksum&0x0001 != 0 {
			cksum = (cksum >> 1) + 0x8000
		} else {
			cksum = cksum >> 1
		}
		cksum = (cksum + uint16(b)) & 0xFFFF
	}
	return cksum
}
