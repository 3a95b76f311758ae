package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lesmotsdatche/crossgen/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testPuzzle() *domain.Puzzle {
	return &domain.Puzzle{
		ID:         "puzzle-1",
		Date:       "2026-08-01",
		Language:   "fr",
		Title:      "Test Puzzle",
		Author:     "crossgen",
		Difficulty: 3,
		Status:     domain.StatusPublished,
		Grid: [][]domain.Cell{
			{
				{Type: domain.CellLetter, Solution: 'C', Number: 1},
				{Type: domain.CellLetter, Solution: 'A'},
			},
			{
				{Type: domain.CellBlock},
				{Type: domain.CellLetter, Solution: 'T'},
			},
		},
		Clues: domain.Clues{
			Across: []domain.Clue{
				{ID: "1A", Direction: domain.Across, Number: 1, Prompt: "Feline", Answer: "CA", OriginalAnswer: "CA"},
			},
			Down: []domain.Clue{
				{ID: "1D", Direction: domain.Down, Number: 1, Prompt: "Letter", Answer: "CT", OriginalAnswer: "CT"},
			},
		},
		CreatedAt: time.Now(),
	}
}

func TestSanitizeForClient_StripsAnswers(t *testing.T) {
	puzzle := testPuzzle()

	sanitized := sanitizeForClient(puzzle)

	if len(sanitized.Clues.Across) != 1 {
		t.Fatalf("expected 1 across clue, got %d", len(sanitized.Clues.Across))
	}
	if sanitized.Clues.Across[0].Answer != "" {
		t.Errorf("expected empty across answer, got %q", sanitized.Clues.Across[0].Answer)
	}
	if sanitized.Clues.Across[0].OriginalAnswer != "" {
		t.Errorf("expected empty across original answer, got %q", sanitized.Clues.Across[0].OriginalAnswer)
	}
	if sanitized.Clues.Down[0].Answer != "" {
		t.Errorf("expected empty down answer, got %q", sanitized.Clues.Down[0].Answer)
	}

	if sanitized.Clues.Across[0].Prompt != "Feline" {
		t.Errorf("expected prompt preserved, got %q", sanitized.Clues.Across[0].Prompt)
	}
	if sanitized.Clues.Across[0].Number != 1 {
		t.Errorf("expected clue number preserved, got %d", sanitized.Clues.Across[0].Number)
	}
}

func TestSanitizeForClient_StripsSolutions(t *testing.T) {
	puzzle := testPuzzle()

	sanitized := sanitizeForClient(puzzle)

	for r, row := range sanitized.Grid {
		for c, cell := range row {
			if cell.Solution != 0 {
				t.Errorf("cell (%d,%d) solution not stripped: %q", r, c, cell.Solution)
			}
			if cell.Type != puzzle.Grid[r][c].Type {
				t.Errorf("cell (%d,%d) type changed: got %v, want %v", r, c, cell.Type, puzzle.Grid[r][c].Type)
			}
		}
	}
}

func TestSanitizeForClient_DoesNotMutateOriginal(t *testing.T) {
	puzzle := testPuzzle()

	sanitizeForClient(puzzle)

	if puzzle.Clues.Across[0].Answer != "CA" {
		t.Errorf("original puzzle answer mutated: %q", puzzle.Clues.Across[0].Answer)
	}
	if puzzle.Grid[0][0].Solution != 'C' {
		t.Errorf("original puzzle solution mutated: %q", puzzle.Grid[0][0].Solution)
	}
}

func TestHealth(t *testing.T) {
	h := &Handlers{}

	router := gin.New()
	router.GET("/health", h.Health)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestTriggerGeneration_RejectsMissingBody(t *testing.T) {
	h := &Handlers{}

	router := gin.New()
	router.POST("/api/admin/generate", h.TriggerGeneration)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/generate", nil)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestTriggerGeneration_RejectsInvalidDifficulty(t *testing.T) {
	h := &Handlers{}

	router := gin.New()
	router.POST("/api/admin/generate", h.TriggerGeneration)

	body := `{"date": "2026-08-01", "difficulty": 9}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}
