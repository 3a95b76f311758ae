// Package orchestrator is the coordinating shell for puzzle generation:
// it retries the full pipeline against the external theme/candidate/clue
// collaborators, delegating the actual grid construction to
// pkg/gridbuilder and pkg/solver.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lesmotsdatche/crossgen/internal/domain"
	"github.com/lesmotsdatche/crossgen/internal/qa"
	"github.com/lesmotsdatche/crossgen/pkg/french"
	"github.com/lesmotsdatche/crossgen/pkg/grid"
	"github.com/lesmotsdatche/crossgen/pkg/gridbuilder"
	"github.com/lesmotsdatche/crossgen/pkg/lexicon"
	"github.com/lesmotsdatche/crossgen/pkg/solver"
)

var (
	ErrInvalidConfig        = errors.New("orchestrator: invalid configuration")
	ErrGridGenerationFailed = errors.New("orchestrator: grid generation failed")
	ErrFillFailed           = errors.New("orchestrator: grid fill failed")
	ErrClueGenerationFailed = errors.New("orchestrator: clue generation failed")
	ErrAttemptsExhausted    = errors.New("orchestrator: max attempts exhausted")
)

const (
	defaultMaxAttempts   = 3
	defaultRows          = 13
	defaultCols          = 13
	defaultCandidateGoal = 60
)

// Config configures one orchestrator instance.
type Config struct {
	Theme       ThemeGenerator
	Candidates  CandidateGenerator
	Clues       ClueGeneratorCollaborator
	FallbackWords []string // seeds the lexicon's fallback tier; DefaultFrenchFallback if nil
}

// Request is one generation request.
type Request struct {
	Date        string // YYYY-MM-DD
	Difficulty  int    // 1-5
	Rows, Cols  int    // advisory grid size; defaults applied if zero
	Seed        int64
	MaxAttempts int // defaults to 3
}

// Orchestrator runs the retry loop and assembles the final puzzle.
type Orchestrator struct {
	theme      ThemeGenerator
	candidates CandidateGenerator
	clues      ClueGeneratorCollaborator
	fallback   []string
}

func New(cfg Config) *Orchestrator {
	fallback := cfg.FallbackWords
	if fallback == nil {
		fallback = lexicon.DefaultFrenchFallback
	}
	return &Orchestrator{
		theme:      cfg.Theme,
		candidates: cfg.Candidates,
		clues:      cfg.Clues,
		fallback:   fallback,
	}
}

// Generate runs the pipeline up to req.MaxAttempts times, bumping the
// seed each attempt, and returns the first successful draft bundle.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*domain.DraftBundle, error) {
	if err := validateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	req = applyDefaults(req)

	var lastErr error
	for attempt := 0; attempt < req.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		bundle, err := o.attempt(ctx, req, req.Seed+int64(attempt))
		if err == nil {
			return bundle, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: %v", ErrAttemptsExhausted, lastErr)
}

func (o *Orchestrator) attempt(ctx context.Context, req Request, seed int64) (*domain.DraftBundle, error) {
	theme, err := o.theme.GenerateForDate(ctx, req.Date, req.Difficulty, seasonalHint(req.Date))
	if err != nil {
		return nil, err
	}

	candidateWords, err := o.candidates.ExpandSeedWords(ctx, theme.SeedWords, theme.Title, defaultCandidateGoal)
	if err != nil {
		return nil, err
	}
	candidateWords = filterTaboo(candidateWords)

	lex := lexicon.NewHybridLexicon(candidateWords, o.fallback)

	builder := gridbuilder.New(gridbuilder.Config{MaxRows: req.Rows, MaxCols: req.Cols, Seed: seed})
	buildResult, err := builder.Build(candidateWords)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGridGenerationFailed, err)
	}

	workingGrid := buildResult.Grid
	if hasEmptyLetterCells(workingGrid) {
		solveResult, err := solver.Solve(workingGrid, lex)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFillFailed, err)
		}
		workingGrid = solveResult.Grid
	}

	grid.ComputeEntries(workingGrid)

	clues, err := o.generateClues(ctx, workingGrid, req.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClueGenerationFailed, err)
	}

	puzzle := assemblePuzzle(req, workingGrid, clues, theme)
	report := qa.Score(puzzle)

	return &domain.DraftBundle{Puzzle: puzzle, Report: report}, nil
}

func (o *Orchestrator) generateClues(ctx context.Context, g *grid.Grid, difficulty int) ([]domain.Clue, error) {
	var clues []domain.Clue
	for _, e := range g.Entries {
		answer := e.Answer()
		variants, err := o.clues.Generate(ctx, answer, difficulty)
		var prompt string
		var ambiguity string
		var gotDifficulty int
		if err != nil || len(variants) == 0 {
			prompt = fallbackClueText(answer)
			gotDifficulty = difficulty
		} else {
			best, selErr := SelectBestClue(variants, difficulty)
			if selErr != nil {
				prompt = fallbackClueText(answer)
				gotDifficulty = difficulty
			} else {
				prompt = best.Prompt
				ambiguity = best.AmbiguityNotes
				gotDifficulty = best.Difficulty
			}
		}

		dir := domain.Across
		if e.Direction == grid.DOWN {
			dir = domain.Down
		}
		clues = append(clues, domain.Clue{
			ID:             domain.EntryID(dir, e.StartRow, e.StartCol),
			Direction:      dir,
			Number:         e.Number,
			Prompt:         prompt,
			Answer:         answer,
			OriginalAnswer: answer,
			Start:          domain.Position{Row: e.StartRow, Col: e.StartCol},
			Length:         e.Length,
			Difficulty:     gotDifficulty,
			AmbiguityNotes: ambiguity,
		})
	}
	return clues, nil
}

func fallbackClueText(answer string) string {
	return fmt.Sprintf("Mot de %d lettres", len(answer))
}

func filterTaboo(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !french.IsTaboo(w) {
			out = append(out, w)
		}
	}
	return out
}

func hasEmptyLetterCells(g *grid.Grid) bool {
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			cell := g.Cells[r][c]
			if !cell.IsBlack && cell.Letter == 0 {
				return true
			}
		}
	}
	return false
}

func assemblePuzzle(req Request, g *grid.Grid, clues []domain.Clue, theme ThemeResult) domain.Puzzle {
	cells := make([][]domain.Cell, g.Rows)
	for r := 0; r < g.Rows; r++ {
		cells[r] = make([]domain.Cell, g.Cols)
		for c := 0; c < g.Cols; c++ {
			src := g.Cells[r][c]
			if src.IsBlack {
				cells[r][c] = domain.Cell{Type: domain.CellBlock}
				continue
			}
			cells[r][c] = domain.Cell{Type: domain.CellLetter, Solution: src.Letter, Number: src.Number}
		}
	}

	var across, down []domain.Clue
	for _, c := range clues {
		if c.Direction == domain.Across {
			across = append(across, c)
		} else {
			down = append(down, c)
		}
	}

	return domain.Puzzle{
		ID:         uuid.New().String(),
		Date:       req.Date,
		Language:   "fr",
		Title:      theme.Title,
		Author:     "Les Mots d'Atché",
		Difficulty: req.Difficulty,
		Status:     domain.StatusDraft,
		Grid:       cells,
		Clues: domain.Clues{
			Across: domain.SortClues(across),
			Down:   domain.SortClues(down),
		},
		Metadata: domain.Metadata{
			ThemeTags: theme.Keywords,
		},
		CreatedAt: time.Now(),
	}
}

func validateRequest(req Request) error {
	if req.Difficulty < 1 || req.Difficulty > 5 {
		return errors.New("difficulty must be between 1 and 5")
	}
	return nil
}

func applyDefaults(req Request) Request {
	if req.Rows == 0 {
		req.Rows = defaultRows
	}
	if req.Cols == 0 {
		req.Cols = defaultCols
	}
	if req.MaxAttempts == 0 {
		req.MaxAttempts = defaultMaxAttempts
	}
	return req
}

// seasonalHint derives a coarse season label from a YYYY-MM-DD date,
// passed to the theme generator as a soft nudge. Parse failures yield
// an empty hint rather than an error -- the theme stage tolerates it.
func seasonalHint(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	switch t.Month() {
	case time.December, time.January, time.February:
		return "hiver"
	case time.March, time.April, time.May:
		return "printemps"
	case time.June, time.July, time.August:
		return "ete"
	default:
		return "automne"
	}
}
