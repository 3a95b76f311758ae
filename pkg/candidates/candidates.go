// Package candidates expands a theme's seed words into a larger pool
// of normalised French candidate words through a language model.
package candidates

import (
	"context"
	"fmt"
	"strings"

	"github.com/lesmotsdatche/crossgen/pkg/french"
	"github.com/lesmotsdatche/crossgen/pkg/llm"
)

const expandPromptTemplate = `Tu es un expert en vocabulaire français.

Thème: %s
Mots de départ: %s

Génère %d mots SUPPLÉMENTAIRES liés à ce thème.

IMPORTANT:
- Ne répète PAS les mots de départ
- MAJUSCULES uniquement, SANS accents
- Inclus des références modernes (2020s)
- Variété de longueurs (3-10 lettres)

Format JSON exact:
{"candidates":[{"word":"EXEMPLE","score":0.8,"difficulty":2,"is_thematic":true}]}`

type wordCandidate struct {
	Word       string  `json:"word"`
	Score      float64 `json:"score"`
	Difficulty int     `json:"difficulty"`
	IsThematic bool    `json:"is_thematic"`
}

type candidatesResponse struct {
	Candidates []wordCandidate `json:"candidates"`
}

// Generator expands seed words into candidate pools, implementing
// orchestrator.CandidateGenerator.
type Generator struct {
	client llm.Client
}

// New builds a candidate Generator against client.
func New(client llm.Client) *Generator {
	return &Generator{client: client}
}

// ExpandSeedWords asks the model for count additional words related to
// seeds and title, returning the seed words plus the normalised,
// de-duplicated, taboo-filtered expansion.
func (g *Generator) ExpandSeedWords(ctx context.Context, seeds []string, title string, count int) ([]string, error) {
	prompt := fmt.Sprintf(expandPromptTemplate, title, strings.Join(seeds, ", "), count)

	var resp candidatesResponse
	if err := llm.CompleteJSON(ctx, g.client, prompt, &resp); err != nil {
		return nil, fmt.Errorf("candidates: %w", err)
	}

	seen := make(map[string]bool, len(seeds))
	result := make([]string, 0, len(seeds)+len(resp.Candidates))
	for _, s := range seeds {
		if seen[s] {
			continue
		}
		seen[s] = true
		result = append(result, s)
	}

	for _, c := range resp.Candidates {
		word := french.Normalize(c.Word)
		if len(word) < 2 || seen[word] || french.IsTaboo(word) {
			continue
		}
		seen[word] = true
		result = append(result, word)
	}

	return result, nil
}
