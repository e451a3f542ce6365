// suggest.go - Spelling and close-match suggestions for query words
package relevance

import (
	"sort"
	"strings"

	"github.com/schema-scout/backend/internal/models"
)

const (
	closeMatchCutoff = 0.6
	maxSuggestions   = 3
)

// levenshteinRatio calculates the similarity ratio of two strings in
// [0,1] based on edit distance.
func levenshteinRatio(s1, s2 string) float64 {
	s1 = strings.ToLower(s1)
	s2 = strings.ToLower(s2)
	maxLen := len(s1)
	if len(s2) > maxLen {
		maxLen = len(s2)
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(s1, s2))/float64(maxLen)
}

func levenshtein(s1, s2 string) int {
	r1, r2 := []rune(s1), []rune(s2)
	len1, len2 := len(r1), len(r2)

	row := make([]int, len2+1)
	for i := 0; i <= len2; i++ {
		row[i] = i
	}

	for i := 1; i <= len1; i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len2; j++ {
			cur := row[j]
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			row[j] = minOf(row[j]+1, row[j-1]+1, prev+cost)
			prev = cur
		}
	}

	return row[len2]
}

func minOf(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// closeMatches returns up to n words from the candidate set with a
// similarity ratio of at least cutoff, best first. Ties break
// alphabetically so output is stable across runs.
func closeMatches(word string, candidates map[string]struct{}, n int, cutoff float64) []string {
	type scored struct {
		word  string
		ratio float64
	}

	matches := make([]scored, 0, len(candidates))
	for c := range candidates {
		if r := levenshteinRatio(word, c); r >= cutoff {
			matches = append(matches, scored{c, r})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].ratio != matches[j].ratio {
			return matches[i].ratio > matches[j].ratio
		}
		return matches[i].word < matches[j].word
	})

	if len(matches) > n {
		matches = matches[:n]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.word
	}
	return out
}

// wordSuggestions ranks correction candidates for a single query word.
// Exact vocabulary hits short-circuit at full confidence; otherwise
// close matches against schema words outrank context words, which
// outrank plain spelling candidates.
func wordSuggestions(word string, vocab *vocabulary) []models.Suggestion {
	wordLower := strings.ToLower(word)

	if vocab.contains(wordLower) {
		return []models.Suggestion{{Text: wordLower, Confidence: 1.0, Source: "exact"}}
	}

	var suggestions []models.Suggestion
	seen := make(map[string]struct{})

	add := func(text string, confidence float64, source string) {
		if _, dup := seen[text]; dup {
			return
		}
		seen[text] = struct{}{}
		suggestions = append(suggestions, models.Suggestion{Text: text, Confidence: confidence, Source: source})
	}

	for _, m := range closeMatches(wordLower, vocab.schemaWords, maxSuggestions, closeMatchCutoff) {
		add(m, 0.9, "schema")
	}
	for _, m := range closeMatches(wordLower, vocab.contextWords, maxSuggestions, closeMatchCutoff) {
		add(m, 0.8, "context")
	}
	// Looser spelling candidates from the combined vocabulary.
	combined := make(map[string]struct{}, len(vocab.schemaWords)+len(vocab.contextWords))
	for w := range vocab.schemaWords {
		combined[w] = struct{}{}
	}
	for w := range vocab.contextWords {
		combined[w] = struct{}{}
	}
	for _, m := range closeMatches(wordLower, combined, maxSuggestions, closeMatchCutoff-0.1) {
		add(m, 0.7, "spelling")
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Confidence != suggestions[j].Confidence {
			return suggestions[i].Confidence > suggestions[j].Confidence
		}
		return suggestions[i].Text < suggestions[j].Text
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// isAlpha reports whether the word is purely alphabetic.
func isAlpha(word string) bool {
	for _, r := range word {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return len(word) > 0
}
