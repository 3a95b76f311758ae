package qa

import (
	"testing"

	"github.com/lesmotsdatche/crossgen/internal/domain"
)

func letterCell(solution rune) domain.Cell {
	return domain.Cell{Type: domain.CellLetter, Solution: solution}
}

func blockCell() domain.Cell {
	return domain.Cell{Type: domain.CellBlock}
}

func simplePuzzle() domain.Puzzle {
	return domain.Puzzle{
		Grid: [][]domain.Cell{
			{letterCell('C'), letterCell('A'), letterCell('T')},
			{letterCell('A'), blockCell(), blockCell()},
			{letterCell('R'), blockCell(), blockCell()},
		},
		Clues: domain.Clues{
			Across: []domain.Clue{
				{ID: "across-0-0", Direction: domain.Across, Number: 1, Answer: "CAT", Start: domain.Position{Row: 0, Col: 0}, Length: 3},
			},
			Down: []domain.Clue{
				{ID: "down-0-0", Direction: domain.Down, Number: 1, Answer: "CAR", Start: domain.Position{Row: 0, Col: 0}, Length: 3},
			},
		},
	}
}

func TestScore_FillScoreReflectsLetterDensity(t *testing.T) {
	report := Score(simplePuzzle())
	// 5 letter cells out of 9 total
	want := (5 * 100) / 9
	if report.FillScore != want {
		t.Errorf("FillScore = %d, want %d", report.FillScore, want)
	}
}

func TestScore_EmptyPuzzleDoesNotPanic(t *testing.T) {
	report := Score(domain.Puzzle{})
	if report.FillScore != 0 {
		t.Errorf("FillScore = %d, want 0 for an empty grid", report.FillScore)
	}
}

func TestScore_FreshnessScoreRewardsModernAnswers(t *testing.T) {
	p := simplePuzzle()
	p.Clues.Across[0].Answer = "NETFLIX"
	report := Score(p)
	if report.FreshnessScore <= 50 {
		t.Errorf("FreshnessScore = %d, want > 50 when a modern answer is present", report.FreshnessScore)
	}
}

func TestScore_FreshnessScoreDefaultsToFiftyWithNoAnswers(t *testing.T) {
	report := Score(domain.Puzzle{})
	if report.FreshnessScore != 50 {
		t.Errorf("FreshnessScore = %d, want 50 for a puzzle with no answers", report.FreshnessScore)
	}
}

func TestScore_FlagsDuplicateAnswers(t *testing.T) {
	p := simplePuzzle()
	p.Clues.Down[0].Answer = "CAT"
	report := Score(p)
	found := false
	for _, flag := range report.RiskFlags {
		if contains(flag, "duplicate") {
			found = true
		}
	}
	if !found {
		t.Errorf("RiskFlags = %v, want a duplicate-answer flag", report.RiskFlags)
	}
}

func TestScore_FlagsDisconnectedGrid(t *testing.T) {
	p := domain.Puzzle{
		Grid: [][]domain.Cell{
			{letterCell('A'), blockCell(), letterCell('B')},
		},
	}
	report := Score(p)
	found := false
	for _, flag := range report.RiskFlags {
		if contains(flag, "isolated") {
			found = true
		}
	}
	if !found {
		t.Errorf("RiskFlags = %v, want an isolated-section flag", report.RiskFlags)
	}
}

func TestScore_NoFlagsForAConnectedDuplicateFreeGrid(t *testing.T) {
	report := Score(simplePuzzle())
	if len(report.RiskFlags) != 0 {
		t.Errorf("RiskFlags = %v, want none for a clean puzzle", report.RiskFlags)
	}
}

func TestScore_FlagsTabooAnswers(t *testing.T) {
	p := simplePuzzle()
	p.Clues.Across[0].Answer = "CONNARD"
	report := Score(p)
	if len(report.LanguageChecks.TabooHits) == 0 {
		t.Errorf("TabooHits = %v, want at least one hit", report.LanguageChecks.TabooHits)
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
