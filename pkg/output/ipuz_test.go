package output

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lesmotsdatche/crossgen/internal/domain"
)

func TestFormatIPuz(t *testing.T) {
	now := time.Now()
	publishedAt := now.Add(24 * time.Hour)

	puzzle := &domain.Puzzle{
		ID:          "test-puzzle-123",
		Title:       "Test Puzzle",
		Author:      "Test Author",
		Difficulty:  3,
		CreatedAt:   now,
		PublishedAt: publishedAt,
		Grid: [][]domain.Cell{
			{letterCell('A', 1), letterCell('C', 0), letterCell('E', 0)},
			{blockCell(), blockCell(), blockCell()},
			{letterCell('T', 2), letterCell('E', 0), letterCell('A', 0)},
		},
		Clues: domain.Clues{
			Across: []domain.Clue{
				{Number: 1, Prompt: "Expert", Answer: "ACE", Length: 3, Direction: domain.Across},
				{Number: 2, Prompt: "Boisson", Answer: "TEA", Length: 3, Direction: domain.Across},
			},
			Down: []domain.Clue{
				{Number: 1, Prompt: "Consomme", Answer: "ATE", Length: 3, Direction: domain.Down},
			},
		},
	}

	result, err := FormatIPuz(puzzle)
	if err != nil {
		t.Fatalf("FormatIPuz failed: %v", err)
	}

	if result.Version != "http://ipuz.org/v2" {
		t.Errorf("Version = %q, want http://ipuz.org/v2", result.Version)
	}
	if len(result.Kind) != 1 || result.Kind[0] != "http://ipuz.org/crossword#1" {
		t.Errorf("Kind = %v, unexpected", result.Kind)
	}
	if result.Difficulty != 3 {
		t.Errorf("Difficulty = %d, want 3", result.Difficulty)
	}
	if result.Dimensions.Width != 3 || result.Dimensions.Height != 3 {
		t.Errorf("Dimensions = %+v, want 3x3", result.Dimensions)
	}

	expectedSolution := [][]string{
		{"A", "C", "E"},
		{"#", "#", "#"},
		{"T", "E", "A"},
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if result.Solution[y][x] != expectedSolution[y][x] {
				t.Errorf("solution[%d][%d] = %v, want %q", y, x, result.Solution[y][x], expectedSolution[y][x])
			}
		}
	}

	firstCellNumber, ok := result.Puzzle[0][0].(int)
	if !ok || firstCellNumber != 1 {
		t.Errorf("puzzle[0][0] = %v (%T), want int(1)", result.Puzzle[0][0], result.Puzzle[0][0])
	}

	if len(result.Clues.Across) != 2 || result.Clues.Across[0][0] != 1 || result.Clues.Across[0][1] != "Expert" {
		t.Errorf("unexpected across clues: %+v", result.Clues.Across)
	}
	if len(result.Clues.Down) != 1 || result.Clues.Down[0][1] != "Consomme" {
		t.Errorf("unexpected down clues: %+v", result.Clues.Down)
	}
}

func TestFormatIPuz_AllBlackCells(t *testing.T) {
	puzzle := &domain.Puzzle{
		ID:         "test-all-black",
		Title:      "All Black",
		Author:     "Tester",
		Difficulty: 1,
		CreatedAt:  time.Now(),
		Grid: [][]domain.Cell{
			{blockCell(), blockCell()},
			{blockCell(), blockCell()},
		},
		Clues: domain.Clues{
			Across: []domain.Clue{{Number: 1, Prompt: "Factice", Answer: "X", Length: 1, Direction: domain.Across}},
		},
	}

	result, err := FormatIPuz(puzzle)
	if err != nil {
		t.Fatalf("FormatIPuz failed: %v", err)
	}

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if result.Puzzle[y][x] != "#" {
				t.Errorf("puzzle[%d][%d] = %v, want '#'", y, x, result.Puzzle[y][x])
			}
			if result.Solution[y][x] != "#" {
				t.Errorf("solution[%d][%d] = %v, want '#'", y, x, result.Solution[y][x])
			}
		}
	}
}

func TestFormatIPuz_NilPuzzle(t *testing.T) {
	_, err := FormatIPuz(nil)
	if err == nil {
		t.Fatal("expected error for nil puzzle")
	}
	if err.Error() != "puzzle cannot be nil" {
		t.Errorf("err = %q, want 'puzzle cannot be nil'", err)
	}
}

func TestFormatIPuz_InvalidDimensions(t *testing.T) {
	puzzle := &domain.Puzzle{
		ID:         "test-invalid",
		Title:      "Invalid",
		Author:     "Tester",
		Difficulty: 1,
		CreatedAt:  time.Now(),
		Grid:       [][]domain.Cell{},
	}

	_, err := FormatIPuz(puzzle)
	if err == nil {
		t.Fatal("expected error for invalid dimensions")
	}
}

func TestFormatIPuz_GridMismatch(t *testing.T) {
	puzzle := &domain.Puzzle{
		ID:         "test-mismatch",
		Title:      "Mismatch",
		Author:     "Tester",
		Difficulty: 1,
		CreatedAt:  time.Now(),
		Grid: [][]domain.Cell{
			{letterCell('A', 0)},
			{letterCell('A', 0), letterCell('B', 0)},
		},
	}

	_, err := FormatIPuz(puzzle)
	if err == nil {
		t.Fatal("expected error for grid mismatch")
	}
}

func TestToIPuz(t *testing.T) {
	puzzle := &domain.Puzzle{
		ID:         "ipuz-test",
		Title:      "IPUZ Test",
		Author:     "IPUZ Author",
		Difficulty: 1,
		CreatedAt:  time.Now(),
		Grid:       [][]domain.Cell{{letterCell('H', 1), letterCell('I', 0)}},
		Clues: domain.Clues{
			Across: []domain.Clue{{Number: 1, Prompt: "Salutation", Answer: "HI", Length: 2, Direction: domain.Across}},
		},
	}

	jsonBytes, err := ToIPuz(puzzle)
	if err != nil {
		t.Fatalf("ToIPuz failed: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &parsed); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}

	if parsed["version"] != "http://ipuz.org/v2" {
		t.Errorf("version = %v, want http://ipuz.org/v2", parsed["version"])
	}
	if parsed["difficulty"].(float64) != 1 {
		t.Errorf("difficulty = %v, want 1", parsed["difficulty"])
	}

	dimensions, ok := parsed["dimensions"].(map[string]interface{})
	if !ok || dimensions["width"] != float64(2) || dimensions["height"] != float64(1) {
		t.Errorf("unexpected dimensions: %v", parsed["dimensions"])
	}

	solution, ok := parsed["solution"].([]interface{})
	if !ok || len(solution) != 1 {
		t.Fatalf("expected solution with 1 row, got %v", parsed["solution"])
	}
	row := solution[0].([]interface{})
	if row[0] != "H" || row[1] != "I" {
		t.Errorf("expected solution row [H, I], got %v", row)
	}

	clues, ok := parsed["clues"].(map[string]interface{})
	if !ok {
		t.Fatal("expected clues object")
	}
	across, ok := clues["Across"].([]interface{})
	if !ok || len(across) != 1 {
		t.Fatalf("expected 1 across clue, got %v", clues["Across"])
	}
}

func TestValidateIPuz(t *testing.T) {
	validPuzzle := &domain.Puzzle{
		ID:         "valid",
		Title:      "Valid Puzzle",
		Author:     "Valid Author",
		Difficulty: 1,
		CreatedAt:  time.Now(),
		Grid:       [][]domain.Cell{{letterCell('A', 1)}},
		Clues: domain.Clues{
			Across: []domain.Clue{{Number: 1, Prompt: "Lettre", Answer: "A", Length: 1, Direction: domain.Across}},
		},
	}
	if err := ValidateIPuz(validPuzzle); err != nil {
		t.Errorf("expected valid puzzle to pass validation, got: %v", err)
	}

	if err := ValidateIPuz(nil); err == nil {
		t.Error("expected error for nil puzzle")
	}

	noTitle := &domain.Puzzle{
		Author: "Author",
		Grid:   [][]domain.Cell{{letterCell('A', 0)}},
		Clues:  domain.Clues{Across: []domain.Clue{{Number: 1, Prompt: "Clue", Answer: "A", Length: 1}}},
	}
	if err := ValidateIPuz(noTitle); err == nil {
		t.Error("expected error for missing title")
	}

	noAuthor := &domain.Puzzle{
		Title: "Title",
		Grid:  [][]domain.Cell{{letterCell('A', 0)}},
		Clues: domain.Clues{Across: []domain.Clue{{Number: 1, Prompt: "Clue", Answer: "A", Length: 1}}},
	}
	if err := ValidateIPuz(noAuthor); err == nil {
		t.Error("expected error for missing author")
	}

	invalidDims := &domain.Puzzle{
		Title:  "Title",
		Author: "Author",
		Grid:   [][]domain.Cell{},
	}
	if err := ValidateIPuz(invalidDims); err == nil {
		t.Error("expected error for invalid dimensions")
	}

	noClues := &domain.Puzzle{
		Title:  "Title",
		Author: "Author",
		Grid:   [][]domain.Cell{{letterCell('A', 0)}},
	}
	if err := ValidateIPuz(noClues); err == nil {
		t.Error("expected error for missing clues")
	}
}

func TestFormatIPuz_LargePuzzle(t *testing.T) {
	grid := make([][]domain.Cell, 15)
	for y := 0; y < 15; y++ {
		grid[y] = make([]domain.Cell, 15)
		for x := 0; x < 15; x++ {
			if (y*15+x)%5 == 0 {
				grid[y][x] = blockCell()
			} else {
				grid[y][x] = letterCell('A', 0)
			}
		}
	}

	puzzle := &domain.Puzzle{
		ID:         "large-puzzle",
		Title:      "Large Puzzle",
		Author:     "Large Author",
		Difficulty: 5,
		CreatedAt:  time.Now(),
		Grid:       grid,
		Clues: domain.Clues{
			Across: []domain.Clue{{Number: 1, Prompt: "Indice factice", Answer: "TEST", Length: 4, Direction: domain.Across}},
		},
	}

	result, err := FormatIPuz(puzzle)
	if err != nil {
		t.Fatalf("FormatIPuz failed: %v", err)
	}

	if result.Dimensions.Width != 15 || result.Dimensions.Height != 15 {
		t.Errorf("expected 15x15 dimensions, got %dx%d", result.Dimensions.Width, result.Dimensions.Height)
	}
	if len(result.Puzzle) != 15 || len(result.Solution) != 15 {
		t.Fatalf("expected grid height 15, got puzzle=%d solution=%d", len(result.Puzzle), len(result.Solution))
	}
	for i := 0; i < 15; i++ {
		if len(result.Puzzle[i]) != 15 || len(result.Solution[i]) != 15 {
			t.Fatalf("expected row width 15 at row %d", i)
		}
	}
}
