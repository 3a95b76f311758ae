package orchestrator

import "errors"

// ErrNoClueVariants is returned by SelectBestClue when given an empty
// variant list -- a programming error in a collaborator, not a
// recoverable generation failure.
var ErrNoClueVariants = errors.New("orchestrator: no clue variants to select from")

// SelectBestClue picks the variant whose difficulty is closest to
// target; ties prefer the variant with no ambiguity notes.
func SelectBestClue(variants []ClueVariant, target int) (ClueVariant, error) {
	if len(variants) == 0 {
		return ClueVariant{}, ErrNoClueVariants
	}

	best := variants[0]
	bestDiff := abs(best.Difficulty - target)
	for _, v := range variants[1:] {
		diff := abs(v.Difficulty - target)
		switch {
		case diff < bestDiff:
			best, bestDiff = v, diff
		case diff == bestDiff && best.AmbiguityNotes != "" && v.AmbiguityNotes == "":
			best = v
		}
	}
	return best, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
