package clues

import (
	"fmt"
	"strings"
)

// clueVariantResponse is one entry in the JSON array the prompt below
// asks the model for.
type clueVariantResponse struct {
	Prompt         string `json:"prompt"`
	Difficulty     int    `json:"difficulty"`
	AmbiguityNotes string `json:"ambiguity_notes"`
}

type clueResponse struct {
	Variants []clueVariantResponse `json:"variants"`
}

const promptTemplate = `Tu es un cruciverbiste expert en français.

Écris des définitions pour ce mot de mots croisés:
- Mot: %s
- Tags de référence: %s
- Difficulté cible: %d/5

Règles:
- Définitions claires mais pas triviales
- Style moderne et élégant
- Plusieurs variantes de difficulté
- Courtes (3-10 mots max)
- Signaler si la définition est ambiguë

IMPORTANT: Réponds UNIQUEMENT en JSON valide, sans backticks ni markdown.

Format JSON exact:
{"variants":[{"prompt":"La définition","difficulty":2,"ambiguity_notes":"note optionnelle si ambigu"}]}

Propose 3-5 variantes de difficulté croissante.`

// buildPrompt constructs the clue-generation prompt for a single
// answer and target difficulty.
func buildPrompt(answer string, difficulty int, tags []string) string {
	tagsStr := "aucun"
	if len(tags) > 0 {
		tagsStr = strings.Join(tags, ", ")
	}
	return fmt.Sprintf(promptTemplate, answer, tagsStr, difficulty)
}
