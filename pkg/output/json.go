package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lesmotsdatche/crossgen/internal/domain"
)

// ClueJSON represents a clue in the JSON format.
type ClueJSON struct {
	Number     int    `json:"number"`
	Text       string `json:"text"`
	Answer     string `json:"answer"`
	Length     int    `json:"length"`
	Row        int    `json:"row"`
	Col        int    `json:"col"`
	WordBreaks []int  `json:"wordBreaks,omitempty"`
}

// PuzzleJSON represents a puzzle in the JSON format for export.
type PuzzleJSON struct {
	ID          string     `json:"id"`
	Date        string     `json:"date,omitempty"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Difficulty  int        `json:"difficulty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`

	// Grid is a 2D array with uppercase letters, "." for black cells,
	// and "" for a clue cell.
	Grid [][]string `json:"grid"`

	Across []ClueJSON `json:"across"`
	Down   []ClueJSON `json:"down"`

	ThemeTags []string `json:"themeTags,omitempty"`
}

// FormatJSON converts a domain.Puzzle into its JSON export shape.
func FormatJSON(puzzle *domain.Puzzle) *PuzzleJSON {
	rows, cols := puzzle.GridDimensions()
	gridOut := make([][]string, rows)
	for y := 0; y < rows; y++ {
		gridOut[y] = make([]string, cols)
		for x := 0; x < cols; x++ {
			cell := puzzle.Grid[y][x]
			switch {
			case cell.IsBlock():
				gridOut[y][x] = "."
			case cell.IsLetter() && cell.Solution != 0:
				gridOut[y][x] = string(cell.Solution)
			default:
				gridOut[y][x] = ""
			}
		}
	}

	toClueJSON := func(c domain.Clue) ClueJSON {
		return ClueJSON{
			Number:     c.Number,
			Text:       c.Prompt,
			Answer:     c.Answer,
			Length:     c.Length,
			Row:        c.Start.Row,
			Col:        c.Start.Col,
			WordBreaks: c.WordBreaks(),
		}
	}

	across := make([]ClueJSON, len(puzzle.Clues.Across))
	for i, c := range puzzle.Clues.Across {
		across[i] = toClueJSON(c)
	}

	down := make([]ClueJSON, len(puzzle.Clues.Down))
	for i, c := range puzzle.Clues.Down {
		down[i] = toClueJSON(c)
	}

	var publishedAt *time.Time
	if !puzzle.PublishedAt.IsZero() {
		t := puzzle.PublishedAt
		publishedAt = &t
	}

	return &PuzzleJSON{
		ID:          puzzle.ID,
		Date:        puzzle.Date,
		Title:       puzzle.Title,
		Author:      puzzle.Author,
		Difficulty:  puzzle.Difficulty,
		Status:      string(puzzle.Status),
		CreatedAt:   puzzle.CreatedAt,
		PublishedAt: publishedAt,
		Grid:        gridOut,
		Across:      across,
		Down:        down,
		ThemeTags:   puzzle.Metadata.ThemeTags,
	}
}

// MarshalJSON serialises a PuzzleJSON to JSON bytes.
func (p *PuzzleJSON) MarshalJSON() ([]byte, error) {
	type Alias PuzzleJSON
	return json.Marshal((*Alias)(p))
}

// ToJSON converts a domain.Puzzle directly to indented JSON bytes.
func ToJSON(puzzle *domain.Puzzle) ([]byte, error) {
	return json.MarshalIndent(FormatJSON(puzzle), "", "  ")
}

// FromJSON parses the JSON export shape back into a domain.Puzzle.
func FromJSON(data []byte) (*domain.Puzzle, error) {
	var parsed PuzzleJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse puzzle JSON: %w", err)
	}

	rows := len(parsed.Grid)
	cols := 0
	if rows > 0 {
		cols = len(parsed.Grid[0])
	}
	grid := make([][]domain.Cell, rows)
	for y := 0; y < rows; y++ {
		grid[y] = make([]domain.Cell, cols)
		for x := 0; x < cols; x++ {
			letter := parsed.Grid[y][x]
			switch letter {
			case ".":
				grid[y][x] = domain.Cell{Type: domain.CellBlock}
			case "":
				grid[y][x] = domain.Cell{Type: domain.CellClue}
			default:
				grid[y][x] = domain.Cell{Type: domain.CellLetter, Solution: []rune(letter)[0]}
			}
		}
	}

	fromClueJSON := func(c ClueJSON, dir domain.Direction) domain.Clue {
		return domain.Clue{
			Direction: dir,
			Number:    c.Number,
			Prompt:    c.Text,
			Answer:    c.Answer,
			Start:     domain.Position{Row: c.Row, Col: c.Col},
			Length:    c.Length,
		}
	}

	across := make([]domain.Clue, len(parsed.Across))
	for i, c := range parsed.Across {
		across[i] = fromClueJSON(c, domain.Across)
	}
	down := make([]domain.Clue, len(parsed.Down))
	for i, c := range parsed.Down {
		down[i] = fromClueJSON(c, domain.Down)
	}

	var publishedAt time.Time
	if parsed.PublishedAt != nil {
		publishedAt = *parsed.PublishedAt
	}

	return &domain.Puzzle{
		ID:          parsed.ID,
		Date:        parsed.Date,
		Title:       parsed.Title,
		Author:      parsed.Author,
		Difficulty:  parsed.Difficulty,
		Status:      domain.PuzzleStatus(parsed.Status),
		Grid:        grid,
		Clues:       domain.Clues{Across: across, Down: down},
		Metadata:    domain.Metadata{ThemeTags: parsed.ThemeTags},
		CreatedAt:   parsed.CreatedAt,
		PublishedAt: publishedAt,
	}, nil
}
