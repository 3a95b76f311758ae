// Package theme generates date-aware crossword themes through a
// language model, normalising and filtering its seed-word output the
// same way the candidate and clue stages do.
package theme

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lesmotsdatche/crossgen/pkg/french"
	"github.com/lesmotsdatche/crossgen/pkg/llm"
	"github.com/lesmotsdatche/crossgen/pkg/orchestrator"
)

const promptPreamble = `Tu es un expert en thèmes de mots croisés français.

Génère un thème de difficulté %d/5.

%s

IMPORTANT: Inclus des références modernes (culture pop 2020s, actualités, technologie).
Les seed_words doivent mélanger vocabulaire classique et termes contemporains.

Exemples de thèmes modernes:
- "Le Streaming" avec des mots comme NETFLIX, SERIE, PODCAST
- "La Tech" avec des mots comme APPLI, CLOUD, CRYPTO
- "Les Réseaux" avec des mots comme TWEET, STORY, VIRAL

Génère un thème original, moderne et, si une saison est indiquée ci-dessus, approprié pour elle.

Format JSON exact:
{"title":"...","description":"...","keywords":["..."],"seed_words":["..."],"difficulty":%d}`

// themeResponse mirrors the JSON object the prompt asks the model for.
type themeResponse struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	SeedWords   []string `json:"seed_words"`
	Difficulty  int      `json:"difficulty"`
}

// Generator produces orchestrator.ThemeResult values from an LLM
// client, implementing orchestrator.ThemeGenerator.
type Generator struct {
	client llm.Client
}

// New builds a theme Generator against client.
func New(client llm.Client) *Generator {
	return &Generator{client: client}
}

// GenerateForDate asks the model for a theme, seeding the prompt with
// both the orchestrator's coarse season label and this package's own
// month/day-specific French calendar hints.
func (g *Generator) GenerateForDate(ctx context.Context, date string, difficulty int, seasonalHint string) (orchestrator.ThemeResult, error) {
	hints := calendarHints(date)
	if seasonalHint != "" {
		hints = strings.TrimSpace(hints + "\nSaison: " + seasonalHint)
	}

	prompt := fmt.Sprintf(promptPreamble, difficulty, hints, difficulty)

	var resp themeResponse
	if err := llm.CompleteJSON(ctx, g.client, prompt, &resp); err != nil {
		return orchestrator.ThemeResult{}, fmt.Errorf("theme: %w", err)
	}

	seedWords := make([]string, 0, len(resp.SeedWords))
	for _, w := range resp.SeedWords {
		norm := french.Normalize(w)
		if len(norm) >= 2 && !french.IsTaboo(norm) {
			seedWords = append(seedWords, norm)
		}
	}

	keywords := make([]string, 0, len(resp.Keywords))
	for _, k := range resp.Keywords {
		if norm := french.Normalize(k); norm != "" {
			keywords = append(keywords, norm)
		}
	}

	result := orchestrator.ThemeResult{
		Title:       resp.Title,
		Description: resp.Description,
		Keywords:    keywords,
		SeedWords:   seedWords,
		Difficulty:  resp.Difficulty,
	}
	if result.Difficulty == 0 {
		result.Difficulty = difficulty
	}
	return result, nil
}

// calendarHints mirrors the original generator's month/day-specific
// seasonal nudges -- it parses the date defensively and returns an
// empty string rather than erroring, since a missing hint is harmless.
func calendarHints(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	month, day := int(t.Month()), t.Day()

	var hints []string
	switch month {
	case 1:
		hints = append(hints, "C'est janvier, début d'année. Thèmes possibles: nouvel an, hiver, bonnes résolutions.")
		if day == 1 {
			hints = append(hints, "C'est le Jour de l'An !")
		}
	case 2:
		hints = append(hints, "C'est février. Thèmes possibles: Saint-Valentin, carnaval, hiver.")
		if day == 14 {
			hints = append(hints, "C'est la Saint-Valentin !")
		}
	case 3:
		hints = append(hints, "C'est mars, le printemps arrive. Thèmes possibles: printemps, jardinage.")
	case 4:
		hints = append(hints, "C'est avril. Thèmes possibles: Pâques, poisson d'avril, printemps.")
	case 5:
		hints = append(hints, "C'est mai. Thèmes possibles: muguet, Fête du Travail, printemps.")
	case 6:
		hints = append(hints, "C'est juin, début de l'été. Thèmes possibles: été, vacances, Fête de la Musique.")
		if day == 21 {
			hints = append(hints, "C'est la Fête de la Musique !")
		}
	case 7:
		hints = append(hints, "C'est juillet. Thèmes possibles: 14 juillet, vacances, été, Tour de France.")
		if day == 14 {
			hints = append(hints, "C'est le 14 juillet, fête nationale !")
		}
	case 8:
		hints = append(hints, "C'est août, plein été. Thèmes possibles: vacances, plage, chaleur.")
	case 9:
		hints = append(hints, "C'est septembre. Thèmes possibles: rentrée, automne, vendanges.")
	case 10:
		hints = append(hints, "C'est octobre. Thèmes possibles: automne, Halloween, vendanges.")
		if day == 31 {
			hints = append(hints, "C'est Halloween !")
		}
	case 11:
		hints = append(hints, "C'est novembre. Thèmes possibles: Toussaint, automne, Beaujolais.")
	case 12:
		hints = append(hints, "C'est décembre. Thèmes possibles: Noël, fêtes, hiver, réveillon.")
		if day == 25 {
			hints = append(hints, "C'est Noël !")
		}
		if day == 31 {
			hints = append(hints, "C'est le réveillon du Nouvel An !")
		}
	}

	return strings.Join(hints, "\n")
}
