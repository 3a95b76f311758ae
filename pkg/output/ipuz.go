package output

import (
	"encoding/json"
	"fmt"

	"github.com/lesmotsdatche/crossgen/internal/domain"
)

// IPuzDimensions represents the puzzle dimensions.
type IPuzDimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// IPuzClue represents a clue in ipuz format [number, "clue text"].
type IPuzClue []interface{}

// IPuzClues represents the clues section with Across and Down.
type IPuzClues struct {
	Across []IPuzClue `json:"Across"`
	Down   []IPuzClue `json:"Down"`
}

// IPuzPuzzle represents the complete ipuz format structure.
type IPuzPuzzle struct {
	Version    string          `json:"version"`
	Kind       []string        `json:"kind"`
	Title      string          `json:"title,omitempty"`
	Author     string          `json:"author,omitempty"`
	Copyright  string          `json:"copyright,omitempty"`
	Difficulty int             `json:"difficulty,omitempty"`
	Dimensions IPuzDimensions  `json:"dimensions"`
	Puzzle     [][]interface{} `json:"puzzle"`
	Solution   [][]interface{} `json:"solution"`
	Clues      IPuzClues       `json:"clues"`
}

// FormatIPuz converts a domain.Puzzle to ipuz JSON format. The ipuz
// format is used by modern web solvers and follows the specification
// at http://ipuz.org/
func FormatIPuz(puzzle *domain.Puzzle) (*IPuzPuzzle, error) {
	if puzzle == nil {
		return nil, fmt.Errorf("puzzle cannot be nil")
	}

	rows, cols := puzzle.GridDimensions()
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid grid dimensions: %dx%d", cols, rows)
	}

	puzzleGrid := make([][]interface{}, rows)
	solutionGrid := make([][]interface{}, rows)
	for y := 0; y < rows; y++ {
		if len(puzzle.Grid[y]) != cols {
			return nil, fmt.Errorf("grid width mismatch at row %d: expected %d, got %d", y, cols, len(puzzle.Grid[y]))
		}

		puzzleGrid[y] = make([]interface{}, cols)
		solutionGrid[y] = make([]interface{}, cols)
		for x := 0; x < cols; x++ {
			cell := puzzle.Grid[y][x]
			if cell.IsBlock() {
				puzzleGrid[y][x] = "#"
				solutionGrid[y][x] = "#"
				continue
			}
			if cell.Number > 0 {
				puzzleGrid[y][x] = cell.Number
			} else {
				puzzleGrid[y][x] = 0
			}
			if cell.IsLetter() && cell.Solution != 0 {
				solutionGrid[y][x] = string(cell.Solution)
			} else {
				solutionGrid[y][x] = "#"
			}
		}
	}

	toClue := func(c domain.Clue) IPuzClue { return IPuzClue{c.Number, c.Prompt} }

	acrossClues := make([]IPuzClue, 0, len(puzzle.Clues.Across))
	for _, c := range puzzle.Clues.Across {
		acrossClues = append(acrossClues, toClue(c))
	}
	downClues := make([]IPuzClue, 0, len(puzzle.Clues.Down))
	for _, c := range puzzle.Clues.Down {
		downClues = append(downClues, toClue(c))
	}

	copyright := fmt.Sprintf("© %s", puzzle.Author)
	if !puzzle.PublishedAt.IsZero() {
		copyright = fmt.Sprintf("© %d %s", puzzle.PublishedAt.Year(), puzzle.Author)
	}

	return &IPuzPuzzle{
		Version:    "http://ipuz.org/v2",
		Kind:       []string{"http://ipuz.org/crossword#1"},
		Title:      puzzle.Title,
		Author:     puzzle.Author,
		Copyright:  copyright,
		Difficulty: puzzle.Difficulty,
		Dimensions: IPuzDimensions{Width: cols, Height: rows},
		Puzzle:     puzzleGrid,
		Solution:   solutionGrid,
		Clues: IPuzClues{
			Across: acrossClues,
			Down:   downClues,
		},
	}, nil
}

// ToIPuz converts a domain.Puzzle to ipuz JSON bytes.
func ToIPuz(puzzle *domain.Puzzle) ([]byte, error) {
	ipuzPuzzle, err := FormatIPuz(puzzle)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(ipuzPuzzle, "", "  ")
}

// FromIPuz parses ipuz JSON bytes into a domain.Puzzle. Clue answers
// are not recoverable from the ipuz clue text alone, so Answer and
// Start are left zero-valued; callers that need them should keep the
// original domain.Puzzle rather than round-tripping through ipuz.
func FromIPuz(data []byte) (*domain.Puzzle, error) {
	var ipuz IPuzPuzzle
	if err := json.Unmarshal(data, &ipuz); err != nil {
		return nil, fmt.Errorf("failed to parse ipuz: %w", err)
	}

	rows, cols := ipuz.Dimensions.Height, ipuz.Dimensions.Width
	grid := make([][]domain.Cell, rows)
	for y := 0; y < rows; y++ {
		grid[y] = make([]domain.Cell, cols)
		for x := 0; x < cols; x++ {
			cell := domain.Cell{Type: domain.CellBlock}

			if y < len(ipuz.Solution) && x < len(ipuz.Solution[y]) {
				if sol, ok := ipuz.Solution[y][x].(string); ok && sol != "#" && sol != "" {
					cell.Type = domain.CellLetter
					cell.Solution = []rune(sol)[0]
				}
			}

			if y < len(ipuz.Puzzle) && x < len(ipuz.Puzzle[y]) {
				if num, ok := ipuz.Puzzle[y][x].(float64); ok && num > 0 {
					cell.Number = int(num)
				}
			}

			grid[y][x] = cell
		}
	}

	parseClues := func(raw []IPuzClue, dir domain.Direction) []domain.Clue {
		out := make([]domain.Clue, 0, len(raw))
		for _, c := range raw {
			if len(c) < 2 {
				continue
			}
			clue := domain.Clue{Direction: dir}
			if num, ok := c[0].(float64); ok {
				clue.Number = int(num)
			}
			if txt, ok := c[1].(string); ok {
				clue.Prompt = txt
			}
			out = append(out, clue)
		}
		return out
	}

	return &domain.Puzzle{
		Title:      ipuz.Title,
		Author:     ipuz.Author,
		Difficulty: ipuz.Difficulty,
		Status:     domain.StatusDraft,
		Grid:       grid,
		Clues: domain.Clues{
			Across: parseClues(ipuz.Clues.Across, domain.Across),
			Down:   parseClues(ipuz.Clues.Down, domain.Down),
		},
	}, nil
}

// ValidateIPuz validates that a puzzle can be converted to ipuz format.
func ValidateIPuz(puzzle *domain.Puzzle) error {
	if puzzle == nil {
		return fmt.Errorf("puzzle cannot be nil")
	}
	if puzzle.Title == "" {
		return fmt.Errorf("puzzle title is required")
	}
	if puzzle.Author == "" {
		return fmt.Errorf("puzzle author is required")
	}

	rows, cols := puzzle.GridDimensions()
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("invalid grid dimensions: %dx%d", cols, rows)
	}
	for y := 0; y < rows; y++ {
		if len(puzzle.Grid[y]) != cols {
			return fmt.Errorf("grid width mismatch at row %d: expected %d, got %d", y, cols, len(puzzle.Grid[y]))
		}
	}

	if len(puzzle.Clues.Across) == 0 && len(puzzle.Clues.Down) == 0 {
		return fmt.Errorf("puzzle must have at least one clue")
	}

	return nil
}
