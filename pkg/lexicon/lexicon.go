// Package lexicon stores candidate words bucketed by length and answers
// pattern queries, layered across a task-specific primary tier and a
// static fallback tier.
package lexicon

import (
	"strings"
	"sync"

	"github.com/lesmotsdatche/crossgen/pkg/french"
)

// Lexicon answers pattern queries over a bucketed word store. It never
// fails: an empty result set is a valid answer.
type Lexicon interface {
	Words() []string
	Match(pattern string) []string
	Contains(word string) bool
	AddWords(words []string)
	WordsByLength(length int) []string
}

// MemoryLexicon is a single-tier, in-process word store with a
// length-bucketed index and a pattern-match cache invalidated on every
// insertion.
type MemoryLexicon struct {
	mu         sync.RWMutex
	words      map[string]bool
	byLength   map[int]map[string]bool
	matchCache map[string][]string
}

// NewMemoryLexicon builds a lexicon seeded with words, normalising and
// deduplicating as it goes. Words whose normalised form is shorter than
// 2 characters are rejected.
func NewMemoryLexicon(words []string) *MemoryLexicon {
	l := &MemoryLexicon{
		words:      make(map[string]bool),
		byLength:   make(map[int]map[string]bool),
		matchCache: make(map[string][]string),
	}
	l.AddWords(words)
	return l
}

func (l *MemoryLexicon) Words() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, 0, len(l.words))
	for w := range l.words {
		out = append(out, w)
	}
	return out
}

// Match returns every stored word of len(pattern) whose letters equal
// pattern's non-'.' characters at the same position. Results are
// memoised by pattern string.
func (l *MemoryLexicon) Match(pattern string) []string {
	l.mu.RLock()
	if cached, ok := l.matchCache[pattern]; ok {
		l.mu.RUnlock()
		return cached
	}
	bucket := l.byLength[len(pattern)]
	l.mu.RUnlock()

	var matches []string
	for w := range bucket {
		if matchesPattern(w, pattern) {
			matches = append(matches, w)
		}
	}

	l.mu.Lock()
	l.matchCache[pattern] = matches
	l.mu.Unlock()
	return matches
}

func (l *MemoryLexicon) Contains(word string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.words[french.Normalize(word)]
}

// AddWords normalises and inserts words, rejecting any that normalise
// to fewer than 2 characters, and invalidates the match cache.
func (l *MemoryLexicon) AddWords(words []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, w := range words {
		n := french.Normalize(w)
		if len(n) < 2 {
			continue
		}
		if l.words[n] {
			continue
		}
		l.words[n] = true
		bucket := l.byLength[len(n)]
		if bucket == nil {
			bucket = make(map[string]bool)
			l.byLength[len(n)] = bucket
		}
		bucket[n] = true
	}
	l.matchCache = make(map[string][]string)
}

func (l *MemoryLexicon) WordsByLength(length int) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	bucket := l.byLength[length]
	out := make([]string, 0, len(bucket))
	for w := range bucket {
		out = append(out, w)
	}
	return out
}

func matchesPattern(word, pattern string) bool {
	if len(word) != len(pattern) {
		return false
	}
	for i := 0; i < len(word); i++ {
		if pattern[i] != '.' && pattern[i] != word[i] {
			return false
		}
	}
	return true
}

// HybridLexicon composes a replaceable primary tier (task-specific
// candidates) and a static fallback tier (gap-fill vocabulary). Match
// prefers primary results; Contains checks both.
type HybridLexicon struct {
	mu       sync.RWMutex
	primary  *MemoryLexicon
	fallback *MemoryLexicon
}

// NewHybridLexicon builds a hybrid lexicon from an initial primary word
// set and a fallback word set.
func NewHybridLexicon(primaryWords, fallbackWords []string) *HybridLexicon {
	return &HybridLexicon{
		primary:  NewMemoryLexicon(primaryWords),
		fallback: NewMemoryLexicon(fallbackWords),
	}
}

// SetPrimary atomically replaces the entire primary tier.
func (h *HybridLexicon) SetPrimary(words []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.primary = NewMemoryLexicon(words)
}

// AddFallbackWords inserts additional words into the fallback tier.
func (h *HybridLexicon) AddFallbackWords(words []string) {
	h.mu.RLock()
	fallback := h.fallback
	h.mu.RUnlock()
	fallback.AddWords(words)
}

func (h *HybridLexicon) Words() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, w := range h.primary.Words() {
		seen[w] = true
		out = append(out, w)
	}
	for _, w := range h.fallback.Words() {
		if !seen[w] {
			out = append(out, w)
		}
	}
	return out
}

// Match returns primary matches first, followed by fallback matches not
// already present among the primary results.
func (h *HybridLexicon) Match(pattern string) []string {
	h.mu.RLock()
	primary, fallback := h.primary, h.fallback
	h.mu.RUnlock()

	primaryMatches := primary.Match(pattern)
	seen := make(map[string]bool, len(primaryMatches))
	for _, w := range primaryMatches {
		seen[w] = true
	}

	out := make([]string, 0, len(primaryMatches))
	out = append(out, primaryMatches...)
	for _, w := range fallback.Match(pattern) {
		if !seen[w] {
			out = append(out, w)
			seen[w] = true
		}
	}
	return out
}

func (h *HybridLexicon) Contains(word string) bool {
	h.mu.RLock()
	primary, fallback := h.primary, h.fallback
	h.mu.RUnlock()
	n := french.Normalize(word)
	return primary.Contains(n) || fallback.Contains(n)
}

// AddWords inserts into the primary tier.
func (h *HybridLexicon) AddWords(words []string) {
	h.mu.RLock()
	primary := h.primary
	h.mu.RUnlock()
	primary.AddWords(words)
}

func (h *HybridLexicon) WordsByLength(length int) []string {
	h.mu.RLock()
	primary, fallback := h.primary, h.fallback
	h.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, w := range primary.WordsByLength(length) {
		seen[w] = true
		out = append(out, w)
	}
	for _, w := range fallback.WordsByLength(length) {
		if !seen[w] {
			out = append(out, w)
		}
	}
	return out
}

// LoadFallbackWords reads a newline-separated word list, ignoring blank
// lines and lines beginning with '#'. Callers fall back to
// DefaultFrenchFallback when no file is configured.
func LoadFallbackWords(lines []string) []string {
	var words []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words
}
