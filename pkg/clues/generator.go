// Package clues generates French crossword clue variants through a
// language model, backed by a sqlite cache keyed on answer, target
// difficulty, and locale.
package clues

import (
	"context"
	"fmt"

	"github.com/lesmotsdatche/crossgen/pkg/llm"
	"github.com/lesmotsdatche/crossgen/pkg/orchestrator"
)

const locale = "fr"

// Generator generates clue variants with caching, implementing
// orchestrator.ClueGeneratorCollaborator.
type Generator struct {
	cache  *ClueCache
	client llm.Client
}

// NewGenerator creates a clue Generator. cache may be nil, in which
// case every call goes to the model.
func NewGenerator(cache *ClueCache, client llm.Client) *Generator {
	return &Generator{cache: cache, client: client}
}

// Generate returns clue variants for answer at the requested
// difficulty, checking the cache before calling the model and saving
// any newly generated variants for next time.
func (g *Generator) Generate(ctx context.Context, answer string, difficulty int) ([]orchestrator.ClueVariant, error) {
	if g.cache != nil {
		if cached, ok := g.cache.GetVariants(answer, difficulty, locale); ok {
			return toOrchestratorVariants(cached), nil
		}
	}

	prompt := buildPrompt(answer, difficulty, nil)

	var resp clueResponse
	if err := llm.CompleteJSON(ctx, g.client, prompt, &resp); err != nil {
		return nil, fmt.Errorf("clues: %w", err)
	}
	if len(resp.Variants) == 0 {
		return nil, fmt.Errorf("clues: model returned no variants for %q", answer)
	}

	variants := make([]orchestrator.ClueVariant, 0, len(resp.Variants))
	for _, v := range resp.Variants {
		variant := orchestrator.ClueVariant{
			Prompt:         v.Prompt,
			Difficulty:     v.Difficulty,
			AmbiguityNotes: v.AmbiguityNotes,
		}
		if variant.Difficulty == 0 {
			variant.Difficulty = difficulty
		}
		variants = append(variants, variant)

		if g.cache != nil {
			_ = g.cache.SaveVariant(answer, locale, CachedVariant{
				Prompt:         variant.Prompt,
				Difficulty:     variant.Difficulty,
				AmbiguityNotes: variant.AmbiguityNotes,
			})
		}
	}

	return variants, nil
}

func toOrchestratorVariants(cached []CachedVariant) []orchestrator.ClueVariant {
	out := make([]orchestrator.ClueVariant, len(cached))
	for i, c := range cached {
		out[i] = orchestrator.ClueVariant{
			Prompt:         c.Prompt,
			Difficulty:     c.Difficulty,
			AmbiguityNotes: c.AmbiguityNotes,
		}
	}
	return out
}
