// Package qa scores a freshly generated puzzle before it is considered
// publishable: a fill-density score, a coarse clue-count score, a
// freshness score based on modern-reference answers, plus risk flags
// surfaced from grid connectivity and duplicate-answer checks.
package qa

import (
	"fmt"
	"strings"

	"github.com/lesmotsdatche/crossgen/internal/domain"
	"github.com/lesmotsdatche/crossgen/pkg/french"
)

// modernWords indicates freshness: a puzzle built mostly from answers
// in this set skews towards contemporary rather than archival themes.
var modernWords = map[string]bool{
	"NETFLIX": true, "SPOTIFY": true, "TIKTOK": true, "INSTAGRAM": true,
	"TWITTER": true, "PODCAST": true, "SELFIE": true, "HASHTAG": true,
	"VIRAL": true, "STREAM": true, "APPLI": true, "CLOUD": true,
	"EMOJI": true, "MEME": true, "TREND": true, "WIFI": true,
	"DRONE": true, "CRYPTO": true, "GAMING": true, "VLOG": true,
}

// Score builds the QA scorecard for a generated puzzle.
func Score(p domain.Puzzle) domain.DraftReport {
	answers := allAnswers(p)

	report := domain.DraftReport{
		FillScore:      fillScore(p),
		ClueScore:      clueScore(p),
		FreshnessScore: freshnessScore(answers),
		LanguageChecks: languageChecks(answers),
	}

	if !isConnected(p) {
		report.RiskFlags = append(report.RiskFlags, "grid has isolated sections")
	}
	if dups := duplicateAnswers(answers); len(dups) > 0 {
		report.RiskFlags = append(report.RiskFlags, fmt.Sprintf("duplicate answers: %v", dups))
	}
	if len(report.LanguageChecks.TabooHits) > 0 {
		report.RiskFlags = append(report.RiskFlags, fmt.Sprintf("taboo answers: %v", report.LanguageChecks.TabooHits))
	}

	return report
}

// fillScore is the percentage of non-block cells in the grid.
func fillScore(p domain.Puzzle) int {
	rows, cols := p.GridDimensions()
	total := rows * cols
	if total == 0 {
		return 0
	}
	letters := 0
	for _, row := range p.Grid {
		for _, cell := range row {
			if cell.IsLetter() {
				letters++
			}
		}
	}
	return (letters * 100) / total
}

// clueScore is a coarse proxy for clue coverage: a puzzle with more
// than 10 entries is assumed to carry enough variety to read well.
func clueScore(p domain.Puzzle) int {
	total := len(p.Clues.Across) + len(p.Clues.Down)
	if total > 10 {
		return 80
	}
	return 60
}

// freshnessScore rates the proportion of answers drawn from
// modernWords, scaled into [50,100]; an empty answer set scores 50.
func freshnessScore(answers []string) int {
	if len(answers) == 0 {
		return 50
	}
	modern := 0
	for _, a := range answers {
		if modernWords[a] {
			modern++
		}
	}
	ratio := float64(modern) / float64(len(answers))
	score := 50 + int(ratio*100)
	if score > 100 {
		score = 100
	}
	return score
}

func languageChecks(answers []string) domain.LanguageChecks {
	var checks domain.LanguageChecks
	for _, a := range answers {
		if french.IsTaboo(a) {
			checks.TabooHits = append(checks.TabooHits, a)
		}
	}
	return checks
}

func allAnswers(p domain.Puzzle) []string {
	var answers []string
	for _, c := range p.Clues.Across {
		answers = append(answers, strings.ToUpper(c.Answer))
	}
	for _, c := range p.Clues.Down {
		answers = append(answers, strings.ToUpper(c.Answer))
	}
	return answers
}

func duplicateAnswers(answers []string) []string {
	counts := make(map[string]int, len(answers))
	for _, a := range answers {
		counts[a]++
	}
	var dups []string
	for a, n := range counts {
		if n > 1 {
			dups = append(dups, a)
		}
	}
	return dups
}

// isConnected reports whether every letter cell is reachable from the
// first letter cell via orthogonal letter-to-letter steps, adapted from
// this lineage's rotational-symmetry grid checker with the
// symmetry-specific assumptions stripped.
func isConnected(p domain.Puzzle) bool {
	rows, cols := p.GridDimensions()
	if rows == 0 || cols == 0 {
		return true
	}

	type pos struct{ row, col int }
	var start pos
	found := false
	total := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !p.Grid[r][c].IsLetter() {
				continue
			}
			total++
			if !found {
				start = pos{r, c}
				found = true
			}
		}
	}
	if !found {
		return true
	}

	visited := map[pos]bool{start: true}
	queue := []pos{start}
	deltas := []pos{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range deltas {
			next := pos{cur.row + d.row, cur.col + d.col}
			if next.row < 0 || next.row >= rows || next.col < 0 || next.col >= cols {
				continue
			}
			if visited[next] || !p.Grid[next.row][next.col].IsLetter() {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return len(visited) == total
}
