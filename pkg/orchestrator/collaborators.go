package orchestrator

import "context"

// ThemeGenerator is the external, LLM-backed theme stage. May fail with
// a transient error; the orchestrator retries the whole attempt.
type ThemeGenerator interface {
	GenerateForDate(ctx context.Context, date string, difficulty int, seasonalHint string) (ThemeResult, error)
}

// ThemeResult is what a theme generation call returns.
type ThemeResult struct {
	Title       string
	Description string
	Keywords    []string
	SeedWords   []string
	Difficulty  int
}

// CandidateGenerator expands a theme's seed words into a pool of
// normalised French candidate words.
type CandidateGenerator interface {
	ExpandSeedWords(ctx context.Context, seeds []string, title string, count int) ([]string, error)
}

// ClueVariant is one candidate clue for an answer.
type ClueVariant struct {
	Prompt         string
	Difficulty     int
	AmbiguityNotes string
}

// ClueGeneratorCollaborator generates clue variants for a solved
// answer. Named distinctly from pkg/clues.Generator, which
// implements this interface against a real LLM client.
type ClueGeneratorCollaborator interface {
	Generate(ctx context.Context, answer string, difficulty int) ([]ClueVariant, error)
}
